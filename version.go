package joskilo

// Version is shown on the welcome line.
const Version = "0.1.0"
