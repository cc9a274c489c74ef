package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		slog.Error("planar", "error", err)
		os.Exit(1)
	}
}
