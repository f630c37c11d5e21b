package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gcbaptista/go-composer-engine/api"
	"github.com/gcbaptista/go-composer-engine/internal/engine"
	"github.com/gin-gonic/gin"
)

func main() {
	// Define command-line flags
	var (
		help    = flag.Bool("help", false, "Show help message")
		version = flag.Bool("version", false, "Show version information")
		port    = flag.String("port", "8080", "Port to run the server on")
		dataDir = flag.String("data-dir", "./composer_data", "Directory to store dictionary data")
	)

	flag.Parse()

	// Handle help flag
	if *help {
		fmt.Printf("Go Composer Engine - A phonetic input method composition engine\n\n")
		fmt.Printf("Usage: %s [options]\n\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		fmt.Printf("\nExamples:\n")
		fmt.Printf("  %s                            # Start server on default port 8080\n", os.Args[0])
		fmt.Printf("  %s --port 9000                # Start server on port 9000\n", os.Args[0])
		fmt.Printf("  %s --data-dir /tmp/composer   # Use custom data directory\n", os.Args[0])
		return
	}

	// Handle version flag
	if *version {
		fmt.Printf("Go Composer Engine v1.0.0\n")
		fmt.Printf("Reading-grid composition with candidate overrides and async dictionary imports\n")
		return
	}

	// Initialize the composer engine
	log.Printf("Using data directory: %s", *dataDir)
	composerEngine := engine.NewEngine(*dataDir)
	defer composerEngine.Stop()

	// Initialize Gin router
	router := gin.Default()

	// Setup API routes
	api.SetupRoutes(router, composerEngine, *dataDir)

	// Start the server
	log.Printf("Starting server on port %s...", *port)
	if err := router.Run(":" + *port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
