package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/xyproto/joskilo"
)

func configPath() string {
	if p := os.Getenv("JOSKILO_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "joskilo", "config.toml")
}

// run owns the terminal so that it is restored before main exits.
func run(filename string) error {
	cfg, err := joskilo.LoadConfig(configPath())
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	tty, err := joskilo.OpenTTY()
	if err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer tty.Close()

	e := joskilo.New(tty, cfg)
	if name := os.Getenv("JOSKILO_LOG"); name != "" {
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		e.SetLogger(log.New(f, "joskilo: ", log.LstdFlags))
	}
	if filename != "" {
		// A file that cannot be opened is reported on the message bar.
		e.Open(filename)
	}
	return e.Run()
}

func main() {
	log.SetFlags(0)
	if len(os.Args) > 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s [filename]\n", filepath.Base(os.Args[0]))
		os.Exit(1)
	}
	var filename string
	if len(os.Args) == 2 {
		filename = os.Args[1]
	}
	if err := run(filename); err != nil {
		log.Fatalf("Error: %s", err)
	}
}
