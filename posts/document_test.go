package posts

import "testing"

func TestParseDocumentFrontMatter(t *testing.T) {
	raw := []byte("---\ntitle: Problem solvers\nreading_time: 4\n---\n\n# Problem solvers\n\nBody text.\n")
	doc, err := ParseDocument("problem_solvers", raw)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if doc.Slug != "problem_solvers" {
		t.Errorf("Slug = %q", doc.Slug)
	}
	if doc.Meta["title"] != "Problem solvers" {
		t.Errorf("Meta[title] = %v", doc.Meta["title"])
	}
	if doc.Meta["reading_time"] != 4 {
		t.Errorf("Meta[reading_time] = %v", doc.Meta["reading_time"])
	}
	if doc.Body != "# Problem solvers\n\nBody text.\n" {
		t.Errorf("Body = %q", doc.Body)
	}
}

func TestParseDocumentWithoutFrontMatter(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"plain", "# Title\n\ntext"},
		{"horizontal rule later", "intro\n---\nmore"},
		{"unterminated fence", "---\ntitle: x\nno closing fence"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseDocument("", []byte(tt.raw))
			if err != nil {
				t.Fatalf("ParseDocument: %v", err)
			}
			if doc.Meta != nil {
				t.Errorf("Meta = %v, want nil", doc.Meta)
			}
			if doc.Body != tt.raw {
				t.Errorf("Body = %q, want %q", doc.Body, tt.raw)
			}
		})
	}
}

func TestParseDocumentCRLFAndEmptyFrontMatter(t *testing.T) {
	doc, err := ParseDocument("", []byte("---\r\n---\r\nbody"))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if doc.Meta != nil {
		t.Errorf("Meta = %v, want nil", doc.Meta)
	}
	if doc.Body != "body" {
		t.Errorf("Body = %q, want %q", doc.Body, "body")
	}
}

func TestParseDocumentInvalidFrontMatter(t *testing.T) {
	_, err := ParseDocument("", []byte("---\ntitle: [unclosed\n---\nbody"))
	if err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}

func TestDocumentMetaAccessors(t *testing.T) {
	doc, err := ParseDocument("", []byte("---\nimage: /public/cover.jpg\nreading_time: 4\nempty: \"\"\nratio: 0.5\n---\nbody"))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if got, ok := doc.MetaString("image"); !ok || got != "/public/cover.jpg" {
		t.Errorf("MetaString(image) = %q, %v", got, ok)
	}
	if _, ok := doc.MetaString("empty"); ok {
		t.Error("MetaString(empty) should report false")
	}
	if _, ok := doc.MetaString("reading_time"); ok {
		t.Error("MetaString on an integer should report false")
	}
	if got, ok := doc.MetaInt("reading_time"); !ok || got != 4 {
		t.Errorf("MetaInt(reading_time) = %d, %v", got, ok)
	}
	if _, ok := doc.MetaInt("ratio"); ok {
		t.Error("MetaInt on a float should report false")
	}
	if _, ok := (Document{}).MetaInt("missing"); ok {
		t.Error("MetaInt on nil meta should report false")
	}
}
