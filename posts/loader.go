package posts

import (
	"context"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-resty/resty/v2"
)

// Loader fetches an article body. Implementations may block; Entry.Load
// runs them off the caller's goroutine.
type Loader interface {
	Load(ctx context.Context) (Document, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) (Document, error)

// Load calls f(ctx).
func (f LoaderFunc) Load(ctx context.Context) (Document, error) {
	return f(ctx)
}

// FSLoader reads a document from a file system, typically an embed.FS or
// os.DirFS over the content directory.
type FSLoader struct {
	FS   fs.FS
	Path string
}

// Load reads and parses the file at l.Path.
func (l FSLoader) Load(ctx context.Context) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	raw, err := fs.ReadFile(l.FS, l.Path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", l.Path, err)
	}
	return ParseDocument("", raw)
}

const maxRemoteDocumentBytes = 2 << 20 // 2MB

var defaultHTTPClient = resty.New().
	SetTimeout(15*time.Second).
	SetResponseBodyLimit(maxRemoteDocumentBytes).
	SetHeader("User-Agent", "devblog/1.0")

// HTTPLoader fetches a remote Markdown document with a plain GET. Failed
// fetches are reported as-is; there is no retry.
type HTTPLoader struct {
	Client *resty.Client // nil uses a shared client with a 15s timeout
	URL    string
}

// Load fetches and parses the document at l.URL.
func (l HTTPLoader) Load(ctx context.Context) (Document, error) {
	client := l.Client
	if client == nil {
		client = defaultHTTPClient
	}
	// The limit is enforced while the body is read, also for caller clients.
	resp, err := client.R().
		SetContext(ctx).
		SetResponseBodyLimit(maxRemoteDocumentBytes).
		SetHeader("Accept", "text/markdown, text/plain;q=0.9, */*;q=0.1").
		Get(l.URL)
	if err != nil {
		return Document{}, fmt.Errorf("fetch %s: %w", l.URL, err)
	}
	if resp.IsError() {
		return Document{}, fmt.Errorf("fetch %s: unexpected status %s", l.URL, resp.Status())
	}
	return ParseDocument("", resp.Body())
}
