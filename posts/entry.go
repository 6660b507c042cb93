// Package posts holds the blog's post registry: static per-article
// descriptors whose bodies are fetched lazily on demand.
package posts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when no entry is registered under a slug.
	ErrNotFound = errors.New("posts: not found")
	// ErrInvalidEntry is returned for entries missing a required field.
	ErrInvalidEntry = errors.New("posts: invalid entry")
	// ErrDuplicateSlug is returned when two entries share a slug.
	ErrDuplicateSlug = errors.New("posts: duplicate slug")
)

// Entry describes one article. It is declared once, at registration time,
// and never mutated afterwards.
type Entry struct {
	Slug    string
	Title   string
	Date    time.Time
	Tags    []string
	Spoiler string
	Content Loader
}

// Link returns the site-relative path of the entry.
func (e Entry) Link() string {
	return "/blog/" + e.Slug + "/"
}

// DateString formats Date as YYYY-MM-DD, or "" when unknown.
func (e Entry) DateString() string {
	if e.Date.IsZero() {
		return ""
	}
	return e.Date.Format("2006-01-02")
}

// HasTag reports whether the entry carries tag, ignoring case.
func (e Entry) HasTag(tag string) bool {
	tag = normalizeTag(tag)
	for _, t := range e.Tags {
		if normalizeTag(t) == tag {
			return true
		}
	}
	return false
}

// Load starts retrieving the entry's document and returns at once.
// Each call starts a new retrieval; results are never shared between calls.
func (e Entry) Load(ctx context.Context) *Pending {
	p := newPending()
	go func() {
		doc, err := e.Content.Load(ctx)
		if err != nil {
			p.resolve(Document{}, fmt.Errorf("posts: load %s: %w", e.Slug, err))
			return
		}
		doc.Slug = e.Slug
		p.resolve(doc, nil)
	}()
	return p
}

func (e Entry) validate() error {
	switch {
	case strings.TrimSpace(e.Slug) == "":
		return fmt.Errorf("%w: empty slug (title %q)", ErrInvalidEntry, e.Title)
	case strings.TrimSpace(e.Title) == "":
		return fmt.Errorf("%w: %s: empty title", ErrInvalidEntry, e.Slug)
	case strings.TrimSpace(e.Spoiler) == "":
		return fmt.Errorf("%w: %s: empty spoiler", ErrInvalidEntry, e.Slug)
	case e.Content == nil:
		return fmt.Errorf("%w: %s: no content loader", ErrInvalidEntry, e.Slug)
	}
	return nil
}

func (e Entry) clone() Entry {
	if e.Tags != nil {
		e.Tags = append([]string(nil), e.Tags...)
	}
	return e
}

func normalizeTag(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}
