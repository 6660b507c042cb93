package posts

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"gopkg.in/yaml.v3"
)

// DescriptorFile is the per-article metadata file Discover looks for.
const DescriptorFile = "post.yaml"

// defaultDocuments are tried in order when a descriptor names no document.
var defaultDocuments = []string{"document.md", "document.mdx"}

// descriptor is the on-disk form of an Entry.
type descriptor struct {
	Title    string   `yaml:"title"`
	Date     string   `yaml:"date"`
	Tags     []string `yaml:"tags"`
	Spoiler  string   `yaml:"spoiler"`
	Document string   `yaml:"document"`
	Source   string   `yaml:"source"`
}

// DiscoverOption configures Discover.
type DiscoverOption func(*discoverer)

type discoverer struct {
	client *resty.Client
}

// WithHTTPClient sets the client used by loaders for remote sources.
func WithHTTPClient(c *resty.Client) DiscoverOption {
	return func(d *discoverer) {
		d.client = c
	}
}

// Discover builds entries from the top-level directories of fsys that
// contain a post.yaml descriptor, in directory-name order. Directories
// without a descriptor are skipped.
func Discover(fsys fs.FS, opts ...DiscoverOption) ([]Entry, error) {
	d := &discoverer{}
	for _, opt := range opts {
		opt(d)
	}

	dirs, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read content root: %w", err)
	}
	var entries []Entry
	for _, dir := range dirs {
		if !dir.IsDir() || strings.HasPrefix(dir.Name(), ".") {
			continue
		}
		raw, err := fs.ReadFile(fsys, path.Join(dir.Name(), DescriptorFile))
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %s descriptor: %w", dir.Name(), err)
		}
		e, err := d.entry(fsys, dir.Name(), raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", dir.Name(), err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (d *discoverer) entry(fsys fs.FS, dir string, raw []byte) (Entry, error) {
	var desc descriptor
	if err := yaml.Unmarshal(raw, &desc); err != nil {
		return Entry{}, fmt.Errorf("parse %s: %w", DescriptorFile, err)
	}
	slug, date := SlugFromDir(dir)
	if desc.Date != "" {
		t, err := time.Parse("2006-01-02", desc.Date)
		if err != nil {
			return Entry{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", desc.Date)
		}
		date = t
	}
	e := Entry{
		Slug:    slug,
		Title:   strings.TrimSpace(desc.Title),
		Date:    date,
		Tags:    filterEmpty(desc.Tags),
		Spoiler: strings.TrimSpace(desc.Spoiler),
	}

	switch {
	case desc.Source != "":
		e.Content = HTTPLoader{Client: d.client, URL: desc.Source}
	case desc.Document != "":
		e.Content = FSLoader{FS: fsys, Path: path.Join(dir, desc.Document)}
	default:
		for _, name := range defaultDocuments {
			p := path.Join(dir, name)
			if _, err := fs.Stat(fsys, p); err == nil {
				e.Content = FSLoader{FS: fsys, Path: p}
				break
			}
		}
		if e.Content == nil {
			return Entry{}, fmt.Errorf("no document: add %s or set document/source in %s",
				strings.Join(defaultDocuments, " or "), DescriptorFile)
		}
	}
	return e, nil
}

// SlugFromDir derives a slug from a content directory name, splitting off
// a leading YYYY-MM-DD- date when present.
//
//	SlugFromDir("2019-08-04-problem_solvers") // "problem_solvers", 2019-08-04
func SlugFromDir(name string) (string, time.Time) {
	if len(name) > 11 && name[10] == '-' {
		if t, err := time.Parse("2006-01-02", name[:10]); err == nil {
			return name[11:], t
		}
	}
	return name, time.Time{}
}

func filterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}
