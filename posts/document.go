package posts

import (
	"bytes"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// Document is the loaded body of an article.
type Document struct {
	Slug string
	Meta map[string]any // front matter, nil when absent
	Body string         // Markdown or MDX source
}

// MetaString returns the front matter value under key when it is a
// non-empty string.
func (d Document) MetaString(key string) (string, bool) {
	s, ok := d.Meta[key].(string)
	return s, ok && s != ""
}

// MetaInt returns the front matter value under key when it is an integer.
func (d Document) MetaInt(key string) (int, bool) {
	switch v := d.Meta[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		return int(v), v <= math.MaxInt
	}
	return 0, false
}

var frontMatterDelim = []byte("---")

// ParseDocument splits an optional YAML front matter block, fenced by
// "---" lines at the very top of raw, from the Markdown body.
func ParseDocument(slug string, raw []byte) (Document, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	doc := Document{Slug: slug}

	first, rest, ok := cutLine(raw)
	if !ok || !bytes.Equal(bytes.TrimSpace(first), frontMatterDelim) {
		doc.Body = string(raw)
		return doc, nil
	}

	var head []byte
	for {
		line, next, more := cutLine(rest)
		if bytes.Equal(bytes.TrimSpace(line), frontMatterDelim) {
			rest = next
			break
		}
		if !more {
			// No closing fence: treat the whole file as body.
			doc.Body = string(raw)
			return doc, nil
		}
		head = append(head, line...)
		head = append(head, '\n')
		rest = next
	}

	if len(bytes.TrimSpace(head)) > 0 {
		var meta map[string]any
		if err := yaml.Unmarshal(head, &meta); err != nil {
			return Document{}, fmt.Errorf("parse front matter: %w", err)
		}
		doc.Meta = meta
	}
	doc.Body = string(bytes.TrimLeft(rest, "\r\n"))
	return doc, nil
}

// cutLine returns the first line of b (without its terminator) and the
// remainder. more is false when b held no line terminator.
func cutLine(b []byte) (line, rest []byte, more bool) {
	i := bytes.IndexByte(b, '\n')
	if i < 0 {
		return bytes.TrimRight(b, "\r"), nil, false
	}
	return bytes.TrimRight(b[:i], "\r"), b[i+1:], true
}
