package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/comment-pr/internal/api"
	"github.com/comment-pr/internal/config"
	"github.com/comment-pr/internal/repository"
	"github.com/comment-pr/internal/service"
	"github.com/comment-pr/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the comment receiver HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	return cmd
}

func runServer(envFile string) error {
	// Load configuration
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	log.Info().
		Str("repository", cfg.CommentInfo().Repo.FullName()).
		Msg("Starting comment receiver...")

	// Initialize GitHub client and repositories
	client, err := repository.NewGitHubClient(&cfg.GitHub)
	if err != nil {
		return err
	}
	repos := repository.New(client, log)

	// Initialize services
	services := service.NewServices(repos, cfg.CommentInfo(), log)

	// Initialize router
	router := api.NewRouter(services, cfg, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := newHTTPServer(&cfg.Server, router)

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}
	log.Info().Str("port", cfg.Server.Port).Msg("Server listening")

	return serve(ctx, srv, ln, cfg.Server.ShutdownTimeout, log)
}

// newHTTPServer creates the HTTP server. Request contexts are not tied to
// process signals, so Shutdown lets in-flight pipelines finish.
func newHTTPServer(cfg *config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.ReadTimeout,
	}
}

// serve runs srv on ln until ctx is done, then shuts it down gracefully
func serve(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration, log zerolog.Logger) error {
	// Start server in goroutine
	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Graceful shutdown
	select {
	case err := <-serveErr:
		log.Error().Err(err).Msg("Server failed")
		return err
	case <-ctx.Done():
	}
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}

	log.Info().Msg("Server exited gracefully")
	return nil
}
