package devblog

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/luisacerv/devblog/posts"
	"github.com/luisacerv/devblog/share"
	"github.com/luisacerv/devblog/views"
)

// SiteConfig holds all configuration for a devblog site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD
	ShareHandle string // Attribution handle in share texts (default share.DefaultHandle)

	Addr         string // Listen address (default ":3000")
	ContentDir   string // Directory of post.yaml articles; empty disables
	DatabasePath string // SQLite archive path; empty disables
	AvatarPath   string // Source image for /public/avatar.jpg; empty serves from the static dir

	LoadTimeout time.Duration // Upper bound on awaiting a document (default 10s)
	LoadLimit   int           // Document loads allowed per IP per LoadWindow (default 60)
	LoadWindow  time.Duration // default 1min
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.ShareHandle == "" {
		c.ShareHandle = share.DefaultHandle
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.LoadTimeout <= 0 {
		c.LoadTimeout = 10 * time.Second
	}
	if c.LoadLimit <= 0 {
		c.LoadLimit = 60
	}
	if c.LoadWindow <= 0 {
		c.LoadWindow = time.Minute
	}
}

// Site returns the subset of the configuration templates render.
func (c SiteConfig) Site() views.SiteConfig {
	return views.SiteConfig{
		Name:        c.Name,
		URL:         c.URL,
		Description: c.Description,
		Author:      c.Author,
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithEntries registers entries declared in code, such as the embedded
// articles of the content package.
func WithEntries(entries ...posts.Entry) Option {
	return func(a *App) {
		a.entries = append(a.entries, entries...)
	}
}

// WithLogger sets the logger (default zap.NewNop).
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithHTTPClient sets the client used for posts whose descriptor names a
// remote source.
func WithHTTPClient(c *resty.Client) Option {
	return func(a *App) {
		a.httpClient = c
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
