package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"textlens/internal/api"
	"textlens/internal/auth"
	"textlens/internal/classifier"
	"textlens/internal/config"
	"textlens/internal/database"
	"textlens/internal/reddit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the TextLens server",
	Long:  `Start the TextLens server to classify submitted text and Reddit post titles and collect user feedback.`,
	Example: `textlens serve --config config.yml
textlens serve -c /path/to/config.yml --log-level debug
`,
	Run: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func startServer(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	clf, err := classifier.New(cfg.Models)
	if err != nil {
		log.Fatalf("failed to load classifier artifacts: %v", err)
	}

	svc := auth.New(db)
	redditClient := reddit.New(cfg.Reddit)

	server, err := api.New(cfg, db, svc, clf, redditClient, log.GetLevel() == log.DebugLevel)
	if err != nil {
		log.Fatalf("failed to create API server: %v", err)
	}

	// Start the API server in a goroutine
	go func() {
		log.Info("starting API server", "listen", cfg.Listen)
		if err := server.Run(); err != nil {
			log.Error("API server error", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	log.Info("textlens started successfully")
	<-c
	log.Info("shutting down gracefully...")

	// Give time for graceful shutdown
	time.Sleep(2 * time.Second)
}
