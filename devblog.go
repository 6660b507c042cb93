// Package devblog serves a personal blog: a registry of articles whose
// bodies load lazily, rendered with templ on top of Echo.
//
// Articles come from entries declared in code (see the content package),
// a content directory of post.yaml descriptors, and an optional SQLite
// archive. The registry is assembled once at startup and never changes
// while the server runs.
package devblog

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/luisacerv/devblog/posts"
	"github.com/luisacerv/devblog/share"
)

// App is the central devblog application. It wires together the registry,
// archive, handlers, middleware, and templates.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Registry *posts.Registry
	Store    *Store
	Views    ViewFuncs
	Logger   *zap.Logger

	composer     share.Composer
	loadLimiter  *LoadLimiter
	avatar       []byte
	entries      []posts.Entry
	httpClient   *resty.Client
	customRoutes []func(*App)
	staticDir    string
}

// New creates a devblog App with the given configuration and views. Nil
// view functions fall back to the views package.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		Logger:    zap.NewNop(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	a.Views.fillDefaults(cfg.Site())
	a.composer = share.Composer{Handle: cfg.ShareHandle}
	return a
}

// LoadRegistry opens the archive (when configured) and assembles the
// registry from every content source, newest first. An archived post is
// skipped when code or the content directory already declares its slug.
func (a *App) LoadRegistry() error {
	entries := append([]posts.Entry(nil), a.entries...)

	if a.Config.ContentDir != "" {
		var opts []posts.DiscoverOption
		if a.httpClient != nil {
			opts = append(opts, posts.WithHTTPClient(a.httpClient))
		}
		found, err := posts.Discover(os.DirFS(a.Config.ContentDir), opts...)
		if err != nil {
			return fmt.Errorf("devblog: discover %s: %w", a.Config.ContentDir, err)
		}
		entries = append(entries, found...)
	}

	if a.Config.DatabasePath != "" && a.Store == nil {
		store, err := NewStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("devblog: init store: %w", err)
		}
		a.Store = store
	}
	if a.Store != nil {
		archived, err := a.Store.Entries()
		if err != nil {
			return fmt.Errorf("devblog: list archive: %w", err)
		}
		seen := make(map[string]bool, len(entries))
		for _, e := range entries {
			seen[e.Slug] = true
		}
		for _, e := range archived {
			if seen[e.Slug] {
				a.Logger.Debug("archived post shadowed", zap.String("slug", e.Slug))
				continue
			}
			entries = append(entries, e)
		}
	}

	posts.SortByDate(entries)
	reg, err := posts.NewRegistry(entries...)
	if err != nil {
		return fmt.Errorf("devblog: build registry: %w", err)
	}
	a.Registry = reg
	return nil
}

// Init builds the registry, avatar, middleware and routes without starting
// the listener.
func (a *App) Init() error {
	if err := a.LoadRegistry(); err != nil {
		return err
	}
	if err := a.loadAvatar(); err != nil {
		return fmt.Errorf("devblog: avatar: %w", err)
	}
	a.loadLimiter = NewLoadLimiter(a.Config.LoadLimit, a.Config.LoadWindow)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.Logger.Info("registry loaded",
		zap.Int("posts", a.Registry.Len()),
		zap.Strings("tags", a.Registry.Tags()),
	)
	return nil
}

// Start initializes the App and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	a.Logger.Info("listening", zap.String("addr", a.Config.Addr), zap.String("url", a.Config.URL))
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	assets, _ := fs.Sub(EmbeddedAssets, "assets")
	assetHandler := http.StripPrefix("/public/", http.FileServer(http.FS(assets)))
	e.GET("/public/style.css", echo.WrapHandler(assetHandler))
	e.GET("/public/avatar.jpg", a.handleAvatar)

	// User's static assets
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loadLimiter != nil {
		a.loadLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
