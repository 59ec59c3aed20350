package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"aptqueue/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	listPath := flag.String("list", "", "override package list path (optional)")
	debug := flag.Bool("debug", false, "write debug logs to aptqueue.log")
	flag.Parse()

	if *debug {
		f, err := tea.LogToFile("aptqueue.log", "debug")
		if err != nil {
			fmt.Fprintf(os.Stderr, "aptqueue: %v\n", err)
			return 1
		}
		defer f.Close()
	} else {
		// Keep stray log output off the terminal the TUI owns.
		log.SetOutput(io.Discard)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, ListPath: *listPath}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "aptqueue: %v\n", err)
		return 1
	}
	return 0
}
