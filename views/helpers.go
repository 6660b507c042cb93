package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/luisacerv/devblog/posts"
)

// BuildURL joins path segments onto a base URL, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PostURL is the canonical absolute URL of an entry.
func PostURL(cfg SiteConfig, e posts.Entry) string {
	return BuildURL(cfg.URL, "blog", e.Slug)
}

// absoluteURL resolves a site-relative path against cfg.URL and leaves
// absolute URLs alone.
func absoluteURL(cfg SiteConfig, ref string) string {
	if strings.HasPrefix(ref, "/") {
		return strings.TrimSuffix(cfg.URL, "/") + ref
	}
	return ref
}

// TagURL links to the home page filtered by tag.
func TagURL(tag string) string {
	return "/?tag=" + url.QueryEscape(strings.ToLower(tag))
}

// TagClass returns CSS classes for a tag pill, with active variant.
func TagClass(active bool) string {
	if active {
		return "tag tag-active"
	}
	return "tag"
}

// JoinTags formats a tag slice as a comma-separated string.
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      BuildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{"@type": "Person", "name": cfg.Author}
	}
	return marshalJSONLD(data)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for an entry.
func BlogPostingJsonLD(cfg SiteConfig, e posts.Entry) string {
	postURL := PostURL(cfg, e)
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    e.Title,
		"description": e.Spoiler,
		"url":         postURL,
		"publisher":   map[string]string{"@type": "Organization", "name": cfg.Name},
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if d := e.DateString(); d != "" {
		data["datePublished"] = d
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{"@type": "Person", "name": cfg.Author}
	}
	if len(e.Tags) > 0 {
		data["keywords"] = JoinTags(e.Tags)
	}
	return marshalJSONLD(data)
}

func marshalJSONLD(data map[string]interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
