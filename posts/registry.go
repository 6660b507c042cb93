package posts

import (
	"fmt"
	"sort"
)

// Registry is the ordered, read-only set of entries the site serves. It is
// built once at startup and safe for concurrent use.
type Registry struct {
	entries []Entry
	bySlug  map[string]int
	tags    []string
}

// NewRegistry validates entries and returns them as a registry, keeping the
// order they were given in.
func NewRegistry(entries ...Entry) (*Registry, error) {
	r := &Registry{
		entries: make([]Entry, 0, len(entries)),
		bySlug:  make(map[string]int, len(entries)),
	}
	tagSet := make(map[string]struct{})
	for _, e := range entries {
		if err := e.validate(); err != nil {
			return nil, err
		}
		if _, dup := r.bySlug[e.Slug]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSlug, e.Slug)
		}
		r.bySlug[e.Slug] = len(r.entries)
		r.entries = append(r.entries, e.clone())
		for _, t := range e.Tags {
			if t = normalizeTag(t); t != "" {
				tagSet[t] = struct{}{}
			}
		}
	}
	for t := range tagSet {
		r.tags = append(r.tags, t)
	}
	sort.Strings(r.tags)
	return r, nil
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries returns a copy of all entries in registration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.clone()
	}
	return out
}

// Lookup returns the entry registered under slug.
func (r *Registry) Lookup(slug string) (Entry, bool) {
	i, ok := r.bySlug[slug]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i].clone(), true
}

// Get is Lookup with an error for callers that propagate failures.
func (r *Registry) Get(slug string) (Entry, error) {
	e, ok := r.Lookup(slug)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return e, nil
}

// Tagged returns the entries carrying tag, ignoring case. An empty tag
// returns every entry.
func (r *Registry) Tagged(tag string) []Entry {
	if normalizeTag(tag) == "" {
		return r.Entries()
	}
	var out []Entry
	for _, e := range r.entries {
		if e.HasTag(tag) {
			out = append(out, e.clone())
		}
	}
	return out
}

// Tags returns every tag in use, lowercased, deduplicated and sorted.
func (r *Registry) Tags() []string {
	return append([]string(nil), r.tags...)
}

// Related returns the other entries sharing at least one tag with e.
func (r *Registry) Related(e Entry) []Entry {
	var out []Entry
	for _, p := range r.entries {
		if p.Slug == e.Slug {
			continue
		}
		for _, t := range p.Tags {
			if normalizeTag(t) != "" && e.HasTag(t) {
				out = append(out, p.clone())
				break
			}
		}
	}
	return out
}

// SortByDate orders entries newest first. Entries without a date sort last;
// ties keep their relative order.
func SortByDate(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		di, dj := entries[i].Date, entries[j].Date
		if di.IsZero() != dj.IsZero() {
			return dj.IsZero()
		}
		return di.After(dj)
	})
}
