package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/hiring-agent/internal/config"
	"github.com/jonathan/hiring-agent/internal/logger"
	"github.com/jonathan/hiring-agent/internal/semantic"
	"github.com/jonathan/hiring-agent/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for evaluating and ranking candidates.`,
	RunE:  runServe,
}

var (
	servePort        int
	serveThreshold   float64
	serveLanguage    string
	serveWorkers     int
	serveSnapshotDir string
	serveJSONLogs    bool
	serveVerbose     bool
)

func init() {
	defaults := config.Default()
	serveCmd.Flags().IntVar(&servePort, "port", defaults.Port, "Port to listen on")
	serveCmd.Flags().Float64Var(&serveThreshold, "threshold", defaults.Threshold, "Semantic match threshold (0-1)")
	serveCmd.Flags().StringVar(&serveLanguage, "language", defaults.RequiredLanguage, "Required programming language")
	serveCmd.Flags().IntVar(&serveWorkers, "workers", defaults.Workers, "Concurrent resume evaluations")
	serveCmd.Flags().StringVar(&serveSnapshotDir, "snapshot-dir", "", "Directory for session snapshots (optional)")
	serveCmd.Flags().BoolVar(&serveJSONLogs, "json-logs", false, "Emit logs as JSON")
	serveCmd.Flags().BoolVarP(&serveVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	log, err := logger.New(serveJSONLogs, serveVerbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	defaults := config.Default()
	embedderURL := os.Getenv("EMBEDDER_URL")
	if embedderURL == "" {
		embedderURL = defaults.EmbedderURL
	}
	embeddingModel := os.Getenv("EMBEDDING_MODEL")
	if embeddingModel == "" {
		embeddingModel = defaults.EmbeddingModel
	}

	embedder := semantic.NewOllamaEmbedder(embedderURL, embeddingModel)
	if err := embedder.Ping(context.Background()); err != nil {
		return fmt.Errorf("embedding backend not reachable at %s: %w", embedderURL, err)
	}

	srv, err := server.New(server.Config{
		Port:             servePort,
		APIKey:           os.Getenv("API_KEY"),
		Threshold:        serveThreshold,
		RequiredLanguage: serveLanguage,
		Workers:          serveWorkers,
		SnapshotDir:      serveSnapshotDir,
		Embedder:         embedder,
		Logger:           log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
