package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/ericfisherdev/prbell/internal/domain/model"
)

// CLI is the command-line interface. Configuration comes from PRBELL_
// environment variables; see internal/config.
type CLI struct {
	Version kong.VersionFlag `help:"Show version information"`

	Serve ServeCmd `cmd:"" help:"Poll GitHub on an interval and serve the API (default)" default:"1"`
	Once  OnceCmd  `cmd:"" help:"Run a single polling cycle and print its summary"`
}

// ServeCmd runs the polling loop and the HTTP API until interrupted.
type ServeCmd struct{}

// Run executes the serve command.
func (s *ServeCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	cycles := runInBackground(ctx, a.orchestrator.Start)

	srv := &http.Server{
		Addr:              a.cfg.ListenAddr,
		Handler:           a.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// A manual refresh waits for a full cycle including fetch retries.
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", a.cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	a.logger.Info("prbell started",
		"version", Version,
		"listen_addr", a.cfg.ListenAddr,
		"poll_interval", a.cfg.PollInterval,
	)

	select {
	case <-ctx.Done():
		a.logger.Info("shutting down")
	case err := <-serveErr:
		a.logger.Error("http server error", "error", err)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", "error", err)
	}

	// The database closes on return; let an in-flight cycle finish persisting.
	<-cycles

	a.logger.Info("shutdown complete")
	return nil
}

// runInBackground runs fn in its own goroutine. The returned channel is
// closed once fn has returned.
func runInBackground(ctx context.Context, fn func(context.Context)) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(ctx)
	}()
	return done
}

// OnceCmd runs one manual cycle and exits non-zero if it failed.
type OnceCmd struct {
	JSON bool `help:"Print the unreviewed pull requests as JSON"`
}

// Run executes the once command.
func (o *OnceCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	res := a.orchestrator.RunCycle(ctx, model.TriggerManual)
	if !res.OK() {
		return fmt.Errorf("cycle %s failed: %w", res.CycleID, res.Err)
	}

	return printCycle(os.Stdout, res, o.JSON)
}

func printCycle(w io.Writer, res model.CycleResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res.Unreviewed)
	}

	fmt.Fprintf(w, "%d pull request(s) awaiting your review, %d new\n", len(res.Unreviewed), len(res.ToNotify))
	for _, pr := range res.Unreviewed {
		fmt.Fprintf(w, "  %s  %s (%s)\n", pr.URL, pr.Title, pr.Author)
	}
	return nil
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
