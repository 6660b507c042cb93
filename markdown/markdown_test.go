package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func render(md string) string {
	var buf bytes.Buffer
	RenderMarkdown(&buf, md)
	return buf.String()
}

func TestFormatInline(t *testing.T) {
	const linkClass = `class="underline decoration-2 underline-offset-4"`
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bold", "**bold**", "<strong>bold</strong>"},
		{"bold underscore", "__bold__", "<strong>bold</strong>"},
		{"italic", "text *italic* more", "text <em>italic</em> more"},
		{"italic underscore", "_italic_", "<em>italic</em>"},
		{"italic underscore in sentence", "an _emphasis_.", "an <em>emphasis</em>."},
		{"two italic spans", "_a_ and _b_", "<em>a</em> and <em>b</em>"},
		{"snake case untouched", "my_var and other_var", "my_var and other_var"},
		{"nested", "**bold *italic* text**", "<strong>bold <em>italic</em> text</strong>"},
		{"escapes html", "<script>", "&lt;script&gt;"},
		{"code", "use `fmt.Println` here", "use <code>fmt.Println</code> here"},
		{"code is not formatted", "`**not bold**`", "<code>**not bold**</code>"},
		{"link", "[Wikipedia](https://en.wikipedia.org/wiki/Some_Article_Title)",
			`<a href="https://en.wikipedia.org/wiki/Some_Article_Title" ` + linkClass + `>Wikipedia</a>`},
		{"link new tab", "Check [this](https://example.com)^ out",
			`Check <a href="https://example.com" ` + linkClass + ` target="_blank" rel="noopener noreferrer">this</a> out`},
		{"unsafe link drops href", "[click](javascript:void)", "click"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatInline(tt.input, new(int)); got != tt.want {
				t.Errorf("FormatInline(%q)\n  got:  %q\n  want: %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatInlineImages(t *testing.T) {
	count := 0
	first := FormatInline("![avatar](/public/avatar.jpg)", &count)
	if !strings.Contains(first, `fetchpriority="high"`) || !strings.Contains(first, `src="/public/avatar.jpg"`) {
		t.Errorf("first image = %q", first)
	}
	if strings.Contains(first, "style=") {
		t.Errorf("image without style block should have no style attribute: %q", first)
	}
	second := FormatInline("![chart](https://example.com/c.png){max-width:100%|640|480}", &count)
	for _, want := range []string{`loading="lazy"`, `width="640"`, `height="480"`, `style="max-width:100%"`} {
		if !strings.Contains(second, want) {
			t.Errorf("second image %q missing %s", second, want)
		}
	}
	if count != 2 {
		t.Errorf("imageCount = %d, want 2", count)
	}
}

func TestRenderMarkdownBlocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"heading 1", "# Heading 1", "<h1>Heading 1</h1>"},
		{"heading 2", "## Heading 2", "<h2>Heading 2</h2>"},
		{"heading 3", "### Heading 3", "<h3>Heading 3</h3>"},
		{"paragraph joins lines", "one\ntwo", "<p>one\n two\n</p>"},
		{"list", "- item 1\n- item 2", "<ul><li>item 1</li><li>item 2</li></ul>"},
		{"star list", "* a\n* b", "<ul><li>a</li><li>b</li></ul>"},
		{"ordered list", "1. first\n2. second", "<ol><li>first</li><li>second</li></ol>"},
		{"quote", "> quoted", "<blockquote>quoted</blockquote>"},
		{"heading 4", "#### Heading 4", "<h4>Heading 4</h4>"},
		{"heading 6", "###### Heading 6", "<h6>Heading 6</h6>"},
		{"hashtag is text", "#go", "<p>#go\n</p>"},
		{"rule", "---", "<hr/>"},
		{"long rule", "----- ", "<hr/>"},
		{"dashes with text are a paragraph", "--- not a rule", "<p>--- not a rule\n</p>"},
		{"table", "| a | b |\n|---|:-:|\n| 1 | 2 |",
			"<table><thead><tr><th>a</th><th>b</th></tr></thead><tbody><tr><td>1</td><td>2</td></tr></tbody></table>"},
		{"list then paragraph", "- item\ntext", "<ul><li>item</li></ul><p>text\n</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := render(tt.input); got != tt.want {
				t.Errorf("RenderMarkdown(%q)\n  got:  %q\n  want: %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRenderMarkdownCodeBlock(t *testing.T) {
	got := render("```go\nfmt.Println(\"<hi>\")\n```")
	for _, want := range []string{
		`<div class="code-block-wrapper">`,
		`<span class="code-lang code-lang-go">go</span>`,
		`<code class="language-go">`,
		`fmt.Println(&#34;&lt;hi&gt;&#34;)`,
		"</code></pre></div>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("code block %q missing %q", got, want)
		}
	}

	plain := render("```\nplain **code**\n```")
	if strings.Contains(plain, "code-block-wrapper") || strings.Contains(plain, "<strong>") {
		t.Errorf("plain code block rendered unexpectedly: %q", plain)
	}
}

func TestStripMDX(t *testing.T) {
	src := strings.Join([]string{
		`import Bio from "../../components/Bio"`,
		`export const meta = { draft: false }`,
		``,
		`# Problem solvers`,
		`<Bio className="inline" />`,
		"```js",
		`import express from "express"`,
		"```",
	}, "\n")
	got := StripMDX(src)
	if strings.Contains(got, "components/Bio") || strings.Contains(got, "export const") {
		t.Errorf("module lines survived: %q", got)
	}
	if strings.Contains(got, "<Bio") {
		t.Errorf("JSX component survived: %q", got)
	}
	if !strings.Contains(got, `import express from "express"`) {
		t.Errorf("import inside a code fence was stripped: %q", got)
	}
	if !strings.Contains(got, "# Problem solvers") {
		t.Errorf("markdown was stripped: %q", got)
	}
}

func TestMarkdownComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Markdown("import X from 'x'\n\n**hello**").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := buf.String(); got != "<p><strong>hello</strong>\n</p>" {
		t.Errorf("Markdown = %q", got)
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/blog/x/", "/blog/x/"},
		{"#section", "#section"},
		{"https://example.com/?a=1&b=2", "https://example.com/?a=1&amp;b=2"},
		{"mailto:me@example.com", "mailto:me@example.com"},
		{"javascript:alert(1)", ""},
		{"relative/path", ""},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := SafeURL(tt.in); got != tt.want {
			t.Errorf("SafeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
