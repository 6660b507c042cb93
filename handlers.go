package devblog

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/luisacerv/devblog/views"
)

func (a *App) handleHome(c echo.Context) error {
	tag := c.QueryParam("tag")
	entries := a.Registry.Tagged(tag)
	return Render(c, a.Views.Home(entries, tag, a.Registry.Tags()))
}

// handlePost resolves the entry, awaits its document and renders it with
// share buttons pointing at the post's canonical URL.
func (a *App) handlePost(c echo.Context) error {
	entry, ok := a.Registry.Lookup(c.Param("slug"))
	if !ok {
		return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
	}
	if !a.loadLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many requests. Try again later.")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), a.Config.LoadTimeout)
	defer cancel()
	doc, err := entry.Load(ctx).Await(ctx)
	if err != nil {
		return fmt.Errorf("render post: %w", err)
	}

	location := views.PostURL(a.Config.Site(), entry)
	payload := a.composer.Compose(entry.Title, entry.Tags, location)
	return Render(c, a.Views.Post(entry, doc, payload, a.Registry.Related(entry)))
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c, a.Registry.Entries())
}

func (a *App) handleFeed(c echo.Context) error {
	return a.renderRSS(c, a.Registry.Entries())
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

// handleRobots generates robots.txt pointing at the sitemap.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Logger.Error("server error",
			zap.Error(err),
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
		)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
