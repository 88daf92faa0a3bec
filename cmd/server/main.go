// Package main implements the entry point for the Stagehand API server,
// which runs the asynchronous production-planning task pipeline: script
// breakdown, schedule optimization, casting recommendations, and marketing
// content generation.
package main

import (
	"log"
)

// main loads configuration, wires the application, and runs the HTTP server
// until a shutdown signal arrives.
func main() {
	app, err := newApplication()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
