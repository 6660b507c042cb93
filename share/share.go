// Package share composes the text and links used by the social share
// buttons under each post.
package share

import (
	"net/url"
	"strings"
)

// DefaultHandle is the author attribution appended to every share text.
const DefaultHandle = "luis_acervantes"

// Payload is what every share target receives: the page URL and the text
// to share alongside it.
type Payload struct {
	URL  string
	Text string
}

// Composer builds payloads attributed to Handle (without the leading "@").
type Composer struct {
	Handle string
}

// Compose builds a payload with DefaultHandle.
func Compose(title string, tags []string, location string) Payload {
	return Composer{Handle: DefaultHandle}.Compose(title, tags, location)
}

// Compose builds the share text for a post at location:
//
//	<title>... #<tag1> #<tag2>  - <location> by @<handle>
//
// Only the first two tags are used. Missing tags are left out rather than
// rendered as placeholders.
func (c Composer) Compose(title string, tags []string, location string) Payload {
	handle := strings.TrimPrefix(c.Handle, "@")
	if handle == "" {
		handle = DefaultHandle
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("...")
	for i := 0; i < len(tags) && i < 2; i++ {
		b.WriteString(" #")
		b.WriteString(tags[i])
	}
	b.WriteString("  - ")
	b.WriteString(location)
	b.WriteString(" by @")
	b.WriteString(handle)

	return Payload{URL: location, Text: b.String()}
}

// Target is a platform a post can be shared to.
type Target struct {
	Name  string // stable identifier, e.g. "twitter"
	Label string // button text
	href  func(Payload) string
}

// Href returns the platform's share-intent URL for p.
func (t Target) Href(p Payload) string {
	return t.href(p)
}

var (
	// Twitter opens a prefilled tweet.
	Twitter = Target{
		Name:  "twitter",
		Label: "Twitter",
		href: func(p Payload) string {
			q := url.Values{}
			q.Set("text", p.Text)
			q.Set("url", p.URL)
			return "https://twitter.com/intent/tweet/?" + q.Encode()
		},
	}
	// Facebook opens the sharer dialog. Facebook reads the text from the
	// page's OpenGraph tags, so only the URL is passed.
	Facebook = Target{
		Name:  "facebook",
		Label: "Facebook",
		href: func(p Payload) string {
			return "https://facebook.com/sharer/sharer.php?u=" + url.QueryEscape(p.URL)
		},
	}
)

// Targets returns the platforms rendered under each post, in display order.
func Targets() []Target {
	return []Target{Twitter, Facebook}
}
