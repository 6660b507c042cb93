// Package markdown renders the Markdown/MDX article bodies as templ
// components.
package markdown

import (
	"bytes"
	"context"
	"html"
	"io"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/a-h/templ"
)

var (
	reBold             = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBoldUnderscore   = regexp.MustCompile(`__(.+?)__`)
	reItalic           = regexp.MustCompile(`\*([^*]+)\*`)
	reItalicUnderscore = regexp.MustCompile(`_([^_]+)_`)
	reInlineCode       = regexp.MustCompile("`([^`]+)`")
	reLink             = regexp.MustCompile(`\[(.*?)\]\((.*?)\)(\^)?`)
	reOrderedList      = regexp.MustCompile(`^(\d+)\.\s`)
	reHeading          = regexp.MustCompile(`^(#{1,6})\s+(.*)$`)
	reRule             = regexp.MustCompile(`^-{3,}\s*$`)
	// ![alt](url) with an optional {style} or {style|width|height} suffix
	reImg = regexp.MustCompile(`\!\[(.*?)\]\((.*?)\)(?:\{([^|}]*?)(?:\|(\d+)\|(\d+))?\})?`)
	// MDX module lines: import X from "y" / export const meta = ...
	reMDXModule = regexp.MustCompile(`^(import|export)\s`)
	// Self-closing JSX components on their own line, e.g. <Bio />
	reJSXComponent = regexp.MustCompile(`^<[A-Z][A-Za-z0-9.]*(\s[^>]*)?/>$`)
)

// Markdown returns a templ.Component that renders md as HTML.
func Markdown(content string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		RenderMarkdown(&buf, content)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

// StripMDX removes MDX-only lines (import/export statements and
// self-closing JSX components) outside fenced code blocks, leaving plain
// Markdown.
func StripMDX(src string) string {
	lines := strings.Split(src, "\n")
	out := lines[:0]
	inCode := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inCode = !inCode
			out = append(out, line)
			continue
		}
		if !inCode && (reMDXModule.MatchString(trimmed) || reJSXComponent.MatchString(trimmed)) {
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// blockState tracks which block-level element is open while rendering.
type blockState int

const (
	blockNone blockState = iota
	blockPara
	blockList
	blockOrderedList
	blockQuote
	blockTable
	blockTableBody
)

type renderer struct {
	buf        *bytes.Buffer
	open       blockState
	imageCount int
}

// close ends whichever block is open.
func (r *renderer) close() {
	switch r.open {
	case blockPara:
		r.buf.WriteString("</p>")
	case blockList:
		r.buf.WriteString("</ul>")
	case blockOrderedList:
		r.buf.WriteString("</ol>")
	case blockQuote:
		r.buf.WriteString("</blockquote>")
	case blockTable:
		r.buf.WriteString("</table>")
	case blockTableBody:
		r.buf.WriteString("</tbody></table>")
	}
	r.open = blockNone
}

// enter closes the open block unless it is already s, then opens s with tag.
func (r *renderer) enter(s blockState, tag string) bool {
	if r.open == s {
		return false
	}
	r.close()
	r.buf.WriteString(tag)
	r.open = s
	return true
}

func (r *renderer) inline(s string) string {
	return FormatInline(s, &r.imageCount)
}

func (r *renderer) heading(level int, text string) {
	r.close()
	n := strconv.Itoa(level)
	r.buf.WriteString("<h" + n + ">")
	r.buf.WriteString(r.inline(strings.TrimSpace(text)))
	r.buf.WriteString("</h" + n + ">")
}

func (r *renderer) tableRow(line string) {
	if r.open != blockTable && r.open != blockTableBody {
		r.close()
		r.buf.WriteString("<table><thead><tr>")
		for _, cell := range parseTableCells(line) {
			r.buf.WriteString("<th>" + r.inline(cell) + "</th>")
		}
		r.buf.WriteString("</tr></thead>")
		r.open = blockTable
		return
	}
	if r.open == blockTable {
		r.buf.WriteString("<tbody>")
		r.open = blockTableBody
	}
	if isTableSeparator(line) {
		return
	}
	r.buf.WriteString("<tr>")
	for _, cell := range parseTableCells(line) {
		r.buf.WriteString("<td>" + r.inline(cell) + "</td>")
	}
	r.buf.WriteString("</tr>")
}

func (r *renderer) codeFence(lang string) {
	r.close()
	lang = strings.TrimSpace(lang)
	if lang == "" {
		r.buf.WriteString(`<pre class="code-block"><code>`)
		return
	}
	l := html.EscapeString(lang)
	r.buf.WriteString(`<div class="code-block-wrapper"><span class="code-lang code-lang-` + l + `">` + l + `</span>`)
	r.buf.WriteString(`<pre class="code-block"><code class="language-` + l + `">`)
}

// RenderMarkdown writes the HTML representation of md to buf. MDX-only
// lines are dropped first.
func RenderMarkdown(buf *bytes.Buffer, md string) {
	r := &renderer{buf: buf}
	inCode, codeHasLang := false, false

	for _, raw := range strings.Split(StripMDX(md), "\n") {
		line := strings.TrimRight(raw, "\r")

		if strings.HasPrefix(line, "```") {
			if inCode {
				buf.WriteString("</code></pre>")
				if codeHasLang {
					buf.WriteString("</div>")
				}
				inCode = false
			} else {
				lang := line[3:]
				r.codeFence(lang)
				inCode, codeHasLang = true, strings.TrimSpace(lang) != ""
			}
			continue
		}
		if inCode {
			buf.WriteString(html.EscapeString(line))
			buf.WriteString("\n")
			continue
		}
		if strings.TrimSpace(line) == "" {
			r.close()
			continue
		}

		switch {
		case reRule.MatchString(line):
			r.close()
			buf.WriteString("<hr/>")
		case reHeading.MatchString(line):
			m := reHeading.FindStringSubmatch(line)
			r.heading(len(m[1]), m[2])
		case strings.HasPrefix(line, "|"):
			r.tableRow(line)
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			r.enter(blockList, "<ul>")
			buf.WriteString("<li>" + r.inline(strings.TrimSpace(line[2:])) + "</li>")
		case reOrderedList.MatchString(line):
			r.enter(blockOrderedList, "<ol>")
			item := reOrderedList.ReplaceAllString(line, "")
			buf.WriteString("<li>" + r.inline(strings.TrimSpace(item)) + "</li>")
		case strings.HasPrefix(line, "> "):
			r.enter(blockQuote, "<blockquote>")
			buf.WriteString(r.inline(strings.TrimSpace(line[2:])))
		default:
			if !r.enter(blockPara, "<p>") {
				buf.WriteString(" ")
			}
			buf.WriteString(r.inline(strings.TrimSpace(line)) + "\n")
		}
	}
	r.close()
	if inCode {
		buf.WriteString("</code></pre>")
		if codeHasLang {
			buf.WriteString("</div>")
		}
	}
}

func parseTableCells(line string) []string {
	line = strings.Trim(strings.TrimSpace(line), "|")
	parts := strings.Split(line, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func isTableSeparator(line string) bool {
	line = strings.Trim(strings.TrimSpace(line), "|")
	for _, cell := range strings.Split(line, "|") {
		if strings.Trim(strings.TrimSpace(cell), "-:") != "" {
			return false
		}
	}
	return true
}

// ApplyOutsideTags applies fn only to text segments outside HTML tags,
// so that formatting regexes never touch URLs inside href attributes.
func ApplyOutsideTags(s string, fn func(string) string) string {
	var buf strings.Builder
	for len(s) > 0 {
		lt := strings.Index(s, "<")
		if lt < 0 {
			buf.WriteString(fn(s))
			break
		}
		if lt > 0 {
			buf.WriteString(fn(s[:lt]))
		}
		gt := strings.Index(s[lt:], ">")
		if gt < 0 {
			buf.WriteString(s[lt:])
			break
		}
		buf.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
	return buf.String()
}

// FormatInline applies inline formatting (code, bold, italic, links,
// images) to s. imageCount carries the number of images already emitted on
// the page so only the first one is fetched with high priority.
func FormatInline(s string, imageCount *int) string {
	escaped := html.EscapeString(s)

	// Inline code first, so nothing inside backticks is formatted.
	var codeSpans []string
	escaped = reInlineCode.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reInlineCode.FindStringSubmatch(m)
		codeSpans = append(codeSpans, "<code>"+match[1]+"</code>")
		return "\x00IC" + strconv.Itoa(len(codeSpans)-1) + "\x00"
	})

	escaped = reImg.ReplaceAllStringFunc(escaped, func(m string) string {
		return imageTag(reImg.FindStringSubmatch(m), imageCount)
	})
	escaped = reLink.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reLink.FindStringSubmatch(m)
		href := SafeURL(match[2])
		if href == "" {
			return match[1]
		}
		attrs := `class="underline decoration-2 underline-offset-4"`
		if match[3] == "^" {
			attrs += ` target="_blank" rel="noopener noreferrer"`
		}
		return `<a href="` + href + `" ` + attrs + `>` + match[1] + `</a>`
	})
	escaped = ApplyOutsideTags(escaped, func(seg string) string {
		seg = reBold.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reBoldUnderscore.ReplaceAllString(seg, "<strong>$1</strong>")
		seg = reItalic.ReplaceAllString(seg, "<em>$1</em>")
		seg = emphasizeUnderscores(seg)
		return seg
	})
	for i, code := range codeSpans {
		escaped = strings.Replace(escaped, "\x00IC"+strconv.Itoa(i)+"\x00", code, 1)
	}
	return escaped
}

// emphasizeUnderscores wraps _text_ in <em> only when neither underscore
// touches a letter or digit outside the span, so snake_case identifiers
// stay intact.
func emphasizeUnderscores(s string) string {
	matches := reItalicUnderscore.FindAllStringSubmatchIndex(s, -1)
	if matches == nil {
		return s
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		if wordRuneBefore(s, m[0]) || wordRuneAfter(s, m[1]) {
			continue
		}
		b.WriteString(s[last:m[0]])
		b.WriteString("<em>" + s[m[2]:m[3]] + "</em>")
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func wordRuneBefore(s string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return isWordRune(r)
}

func wordRuneAfter(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return isWordRune(r)
}

func imageTag(match []string, imageCount *int) string {
	src := SafeURL(match[2])
	if src == "" {
		return match[1]
	}
	width, height := "1024", "768"
	if match[4] != "" && match[5] != "" {
		width, height = match[4], match[5]
	}
	*imageCount++
	loadAttr := `loading="lazy"`
	if *imageCount == 1 {
		loadAttr = `fetchpriority="high"`
	}
	tag := `<img ` + loadAttr + ` width="` + width + `" height="` + height + `" alt="` + match[1] + `" src="` + src + `"`
	if match[3] != "" {
		tag += ` style="` + match[3] + `"`
	}
	return tag + ` decoding="async"/>`
}

// SafeURL validates and sanitizes a URL for use in HTML attributes.
// Relative paths, fragments and http(s)/mailto/tel URLs pass; anything
// else yields "".
func SafeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return html.EscapeString(val)
	default:
		return ""
	}
}
