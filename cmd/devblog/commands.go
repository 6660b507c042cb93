package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/luisacerv/devblog"
	"github.com/luisacerv/devblog/content"
	"github.com/luisacerv/devblog/internal/config"
	"github.com/luisacerv/devblog/internal/logger"
	"github.com/luisacerv/devblog/posts"
)

func newApp(cfg *config.Config, log *zap.Logger) *devblog.App {
	return devblog.New(cfg.Site(), devblog.ViewFuncs{},
		devblog.WithEntries(content.Entries()...),
		devblog.WithLogger(log),
	)
}

func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)
	defer log.Sync()

	app := newApp(cfg, log)
	defer app.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- app.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.Shutdown(shutdownCtx)
}

func runPosts(args []string) error {
	fs := flag.NewFlagSet("posts", flag.ContinueOnError)
	tag := fs.String("tag", "", "only list posts carrying this tag")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	app := newApp(cfg, zap.NewNop())
	defer app.Close()
	if err := app.LoadRegistry(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tSLUG\tTITLE")
	for _, e := range app.Registry.Tagged(*tag) {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.DateString(), e.Slug, e.Title)
	}
	return w.Flush()
}

func runImport(dir string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DatabasePath == "" {
		return errors.New("DATABASE_PATH is not set")
	}

	entries, err := posts.Discover(os.DirFS(dir))
	if err != nil {
		return fmt.Errorf("discover %s: %w", dir, err)
	}
	store, err := devblog.NewStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	n, err := store.Import(ctx, entries)
	fmt.Printf("Imported %d of %d posts into %s\n", n, len(entries), cfg.DatabasePath)
	return err
}
