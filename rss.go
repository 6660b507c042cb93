package devblog

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/luisacerv/devblog/posts"
	"github.com/luisacerv/devblog/views"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	Description string   `xml:"description"`
	Categories  []string `xml:"category,omitempty"`
	PubDate     string   `xml:"pubDate,omitempty"`
	GUID        string   `xml:"guid"`
}

// renderRSS writes an RSS 2.0 feed with the entries' spoilers as item
// descriptions. Bodies are not loaded.
func (a *App) renderRSS(c echo.Context, entries []posts.Entry) error {
	site := a.Config.Site()
	items := make([]rssItem, 0, len(entries))
	for _, e := range entries {
		pubDate := ""
		if !e.Date.IsZero() {
			pubDate = e.Date.Format(time.RFC1123Z)
		}
		postURL := views.PostURL(site, e)
		items = append(items, rssItem{
			Title:       e.Title,
			Link:        postURL,
			Description: e.Spoiler,
			Categories:  e.Tags,
			PubDate:     pubDate,
			GUID:        postURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       site.Name,
			Link:        views.BuildURL(site.URL),
			Description: site.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
