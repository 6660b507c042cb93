package views

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/luisacerv/devblog/markdown"
	"github.com/luisacerv/devblog/posts"
	"github.com/luisacerv/devblog/share"
)

func layout(cfg SiteConfig, meta PageMeta, body templ.Component) templ.Component {
	return component(func(h *htmlWriter) {
		title := cfg.Name
		if meta.Title != "" && meta.Title != cfg.Name {
			title = meta.Title + " | " + cfg.Name
		}
		h.raw("<!doctype html>")
		h.open("html", "lang", "en")
		h.raw("<head>")
		h.open("meta", "charset", "utf-8")
		h.open("meta", "name", "viewport", "content", "width=device-width, initial-scale=1")
		h.elem("title", title)
		if meta.Description != "" {
			h.open("meta", "name", "description", "content", meta.Description)
			h.open("meta", "property", "og:description", "content", meta.Description)
		}
		if meta.URL != "" {
			h.open("link", "rel", "canonical", "href", meta.URL)
			h.open("meta", "property", "og:url", "content", meta.URL)
		}
		h.open("meta", "property", "og:title", "content", title)
		h.open("meta", "property", "og:type", "content", meta.OGType)
		if meta.Image != "" {
			h.open("meta", "property", "og:image", "content", meta.Image)
			h.open("meta", "name", "twitter:card", "content", "summary_large_image")
		}
		h.open("link", "rel", "stylesheet", "href", "/public/style.css")
		h.open("link", "rel", "alternate", "type", "application/rss+xml", "title", cfg.Name, "href", "/feed.xml")
		if meta.JSONLD != "" {
			// json.Marshal escapes <, > and &, so the payload cannot close the script.
			h.raw(`<script type="application/ld+json">` + meta.JSONLD + `</script>`)
		}
		h.raw("</head><body>")
		h.raw("<header>")
		h.elem("a", cfg.Name, "href", "/", "class", "site-name")
		h.raw("</header><main>")
		h.component(body)
		h.raw("</main><footer>")
		h.elem("a", "RSS", "href", "/feed.xml")
		h.raw("</footer></body></html>")
	})
}

func tagList(h *htmlWriter, tags []string, activeTag string) {
	if len(tags) == 0 {
		return
	}
	h.open("ul", "class", "tags")
	for _, t := range tags {
		h.raw("<li>")
		h.elem("a", t, "href", TagURL(t), "class", TagClass(activeTag != "" && strings.EqualFold(t, activeTag)))
		h.raw("</li>")
	}
	h.close("ul")
}

func entryList(h *htmlWriter, entries []posts.Entry) {
	h.open("ol", "class", "posts")
	for _, e := range entries {
		h.open("li", "class", "post-card")
		h.open("h2")
		h.elem("a", e.Title, "href", e.Link())
		h.close("h2")
		if d := e.DateString(); d != "" {
			h.elem("time", d, "datetime", d)
		}
		h.elem("p", e.Spoiler, "class", "spoiler")
		tagList(h, e.Tags, "")
		h.close("li")
	}
	h.close("ol")
}

// Home lists entries, optionally narrowed to activeTag, with the tag cloud.
func Home(cfg SiteConfig, entries []posts.Entry, activeTag string, tags []string) templ.Component {
	meta := PageMeta{
		Title:       cfg.Name,
		Description: cfg.Description,
		URL:         BuildURL(cfg.URL),
		OGType:      "website",
		JSONLD:      WebsiteJsonLD(cfg),
	}
	return layout(cfg, meta, component(func(h *htmlWriter) {
		h.component(Bio(""))
		h.open("nav", "class", "tag-cloud")
		tagList(h, tags, activeTag)
		h.close("nav")
		if activeTag != "" {
			h.open("p", "class", "filter")
			h.text("Posts tagged #" + activeTag + " · ")
			h.elem("a", "show all", "href", "/")
			h.close("p")
		}
		if len(entries) == 0 {
			h.elem("p", "Nothing here yet.", "class", "empty")
			return
		}
		entryList(h, entries)
	}))
}

// Post renders one article with its share buttons, author bio and
// related posts. The document's front matter may set "image" (OpenGraph
// preview) and "reading_time" (minutes).
func Post(cfg SiteConfig, e posts.Entry, doc posts.Document, payload share.Payload, related []posts.Entry) templ.Component {
	meta := PageMeta{
		Title:       e.Title,
		Description: e.Spoiler,
		URL:         PostURL(cfg, e),
		OGType:      "article",
		JSONLD:      BlogPostingJsonLD(cfg, e),
	}
	if img, ok := doc.MetaString("image"); ok {
		meta.Image = absoluteURL(cfg, img)
	}
	return layout(cfg, meta, component(func(h *htmlWriter) {
		h.open("article", "class", "post")
		h.elem("h1", e.Title)
		if d := e.DateString(); d != "" {
			h.elem("time", d, "datetime", d)
		}
		if mins, ok := doc.MetaInt("reading_time"); ok && mins > 0 {
			h.elem("span", strconv.Itoa(mins)+" min read", "class", "reading-time")
		}
		tagList(h, e.Tags, "")
		h.open("div", "class", "content")
		h.component(markdown.Markdown(doc.Body))
		h.close("div")
		h.component(ShareButtons(payload))
		h.close("article")
		h.component(Bio("post-bio"))
		if len(related) > 0 {
			h.open("section", "class", "related")
			h.elem("h2", "Related posts")
			entryList(h, related)
			h.close("section")
		}
	}))
}

// NotFound is the 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	return layout(cfg, PageMeta{Title: "Not found", OGType: "website"}, component(func(h *htmlWriter) {
		h.elem("h1", "Page not found")
		h.open("p")
		h.text("The page you are looking for does not exist. ")
		h.elem("a", "Back to all posts", "href", "/")
		h.close("p")
	}))
}

// ServerError is the 500 page, also shown when a post fails to load.
func ServerError(cfg SiteConfig) templ.Component {
	return layout(cfg, PageMeta{Title: "Something went wrong", OGType: "website"}, component(func(h *htmlWriter) {
		h.elem("h1", "Something went wrong")
		h.elem("p", "This page could not be loaded. Please try again in a moment.")
	}))
}
