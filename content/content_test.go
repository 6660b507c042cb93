package content

import (
	"context"
	"strings"
	"testing"

	"github.com/luisacerv/devblog/posts"
	"github.com/luisacerv/devblog/share"
)

func TestEntriesRegister(t *testing.T) {
	reg, err := posts.NewRegistry(Entries()...)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("Len = %d, want 2", reg.Len())
	}

	e, ok := reg.Lookup("how-to-create-a-bitcoin-api-gql")
	if !ok {
		t.Fatal("bitcoin post not registered")
	}
	if e.DateString() != "2019-08-06" {
		t.Errorf("Date = %s, want 2019-08-06", e.DateString())
	}
	if got := reg.Tagged("GraphQL"); len(got) != 1 || got[0].Slug != e.Slug {
		t.Errorf("Tagged(GraphQL) = %v", got)
	}
}

func TestEntriesLoadEmbeddedDocuments(t *testing.T) {
	for _, e := range Entries() {
		doc, err := e.Load(context.Background()).Await(context.Background())
		if err != nil {
			t.Fatalf("%s: %v", e.Slug, err)
		}
		if doc.Slug != e.Slug {
			t.Errorf("doc.Slug = %q, want %q", doc.Slug, e.Slug)
		}
		if strings.TrimSpace(doc.Body) == "" {
			t.Errorf("%s: empty body", e.Slug)
		}
	}
}

func TestBitcoinShareText(t *testing.T) {
	var e posts.Entry
	for _, c := range Entries() {
		if c.Slug == "how-to-create-a-bitcoin-api-gql" {
			e = c
		}
	}
	p := share.Compose(e.Title, e.Tags, "https://x.test/p")
	want := "How to create a simple Bitcoin API with Node.js & GraphQL... #bitcoin #graphql  - https://x.test/p by @luis_acervantes"
	if p.Text != want {
		t.Errorf("Text = %q\nwant %q", p.Text, want)
	}
}
