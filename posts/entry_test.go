package posts

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func staticLoader(body string) LoaderFunc {
	return func(ctx context.Context) (Document, error) {
		return Document{Body: body}, nil
	}
}

func TestLoadTwiceReturnsIndependentResults(t *testing.T) {
	var calls atomic.Int32
	e := Entry{
		Slug:    "bitcoin-api",
		Title:   "Bitcoin API",
		Spoiler: "GraphQL",
		Content: LoaderFunc(func(ctx context.Context) (Document, error) {
			calls.Add(1)
			return Document{Body: "# Hello"}, nil
		}),
	}

	ctx := context.Background()
	first := e.Load(ctx)
	second := e.Load(ctx)
	if first == second {
		t.Fatal("expected two distinct pending results")
	}

	d1, err := first.Await(ctx)
	if err != nil {
		t.Fatalf("first Await: %v", err)
	}
	d2, err := second.Await(ctx)
	if err != nil {
		t.Fatalf("second Await: %v", err)
	}
	if d1.Body != d2.Body || d1.Slug != d2.Slug {
		t.Errorf("documents differ: %+v vs %+v", d1, d2)
	}
	if d1.Slug != "bitcoin-api" {
		t.Errorf("Slug = %q, want %q", d1.Slug, "bitcoin-api")
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("loader called %d times, want 2", got)
	}
}

func TestLoadDoesNotBlockCaller(t *testing.T) {
	release := make(chan struct{})
	e := Entry{
		Slug:    "slow",
		Title:   "Slow",
		Spoiler: "s",
		Content: LoaderFunc(func(ctx context.Context) (Document, error) {
			<-release
			return Document{Body: "done"}, nil
		}),
	}

	p := e.Load(context.Background())
	if p.Ready() {
		t.Fatal("pending resolved before loader returned")
	}
	close(release)
	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatal("pending never resolved")
	}
	if !p.Ready() {
		t.Error("Ready should be true after Done is closed")
	}
}

func TestLoadFailureWrapsSlug(t *testing.T) {
	boom := errors.New("boom")
	e := Entry{
		Slug:    "broken",
		Title:   "Broken",
		Spoiler: "s",
		Content: LoaderFunc(func(ctx context.Context) (Document, error) {
			return Document{}, boom
		}),
	}
	_, err := e.Load(context.Background()).Await(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if want := "posts: load broken: boom"; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestAwaitHonoursContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	e := Entry{
		Slug:    "stuck",
		Title:   "Stuck",
		Spoiler: "s",
		Content: LoaderFunc(func(ctx context.Context) (Document, error) {
			<-release
			return Document{}, nil
		}),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := e.Load(context.Background()).Await(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
}

func TestEntryHelpers(t *testing.T) {
	e := Entry{
		Slug: "problem-solvers",
		Date: time.Date(2019, 8, 4, 0, 0, 0, 0, time.UTC),
		Tags: []string{"Entrepreneur", " life "},
	}
	if got := e.Link(); got != "/blog/problem-solvers/" {
		t.Errorf("Link = %q", got)
	}
	if got := e.DateString(); got != "2019-08-04" {
		t.Errorf("DateString = %q", got)
	}
	if !e.HasTag("entrepreneur") || !e.HasTag("LIFE") {
		t.Error("HasTag should ignore case and surrounding space")
	}
	if e.HasTag("bitcoin") {
		t.Error("HasTag matched a tag the entry does not carry")
	}
	if (Entry{}).DateString() != "" {
		t.Error("zero date should format as empty string")
	}
}
