// Package content turns downloaded novel text into EPUB-ready XHTML.
package content

import (
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/Gavin1937/pbd-epub-builder/pkg/data"
	"github.com/PuerkitoBio/goquery"
)

var ErrUnknownImageMarker = errors.New("no embedded image registered for marker")

// imageMarker matches pixiv's inline image syntax. The leading group
// is greedy, so a line with several markers resolves the last one,
// matching the upstream exporter's own rendering.
var imageMarker = regexp.MustCompile(`^(.*)\[uploadedimage:(\d+)\](.*)$`)

// ImagePaths carries the EPUB-internal paths a chapter's images were
// registered under.
type ImagePaths struct {
	Cover    string
	Embedded map[string]string
}

// RenderChapter produces the XHTML body for one novel: a meta header
// (cover, title, description), a rule, and the transformed text.
// index numbers the title when positive.
func RenderChapter(novel *data.Novel, text string, paths ImagePaths, index int) (string, error) {
	body, err := renderText(text, paths)
	if err != nil {
		return "", err
	}

	title := novel.Title
	if index > 0 {
		title = fmt.Sprintf("%d. %s", index, novel.Title)
	}

	description, err := CleanDescription(novel.Description)
	if err != nil {
		return "", fmt.Errorf("failed to clean description: %w", err)
	}

	var b strings.Builder
	b.WriteString(`<div class="novel_meta">`)
	b.WriteString(fmt.Sprintf(`<img src="%s"/>`, paths.Cover))
	b.WriteString(fmt.Sprintf(`<p>%s</p>`, html.EscapeString(title)))
	b.WriteString(fmt.Sprintf(`<p>%s</p>`, description))
	b.WriteString(`</div>`)
	b.WriteString(`<hr/>`)
	b.WriteString(`<div class="novel_content">`)
	b.WriteString(body)
	b.WriteString(`</div>`)

	return b.String(), nil
}

// renderText converts plain chapter text line by line: blank lines
// become <br/>, everything else a paragraph, with image markers
// replaced by <img> tags.
func renderText(text string, paths ImagePaths) (string, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			b.WriteString("<br/>")
			continue
		}

		b.WriteString("<p>")
		if m := imageMarker.FindStringSubmatch(line); m != nil {
			marker := m[2]
			imgPath, ok := paths.Embedded[marker]
			if !ok {
				return "", fmt.Errorf("%w: %s", ErrUnknownImageMarker, marker)
			}
			b.WriteString(html.EscapeString(m[1]))
			b.WriteString(fmt.Sprintf(`<img src="%s"/>`, imgPath))
			b.WriteString(html.EscapeString(m[3]))
		} else {
			b.WriteString(html.EscapeString(line))
		}
		b.WriteString("</p>")
	}

	return b.String(), nil
}

// CleanDescription renders a pixiv description as HTML with active
// content stripped. Descriptions carry markup (line breaks, links)
// that should survive into the book.
func CleanDescription(description string) (string, error) {
	if description == "" {
		return "", nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
	if err != nil {
		return "", err
	}
	doc.Find("script, style, iframe, object, embed").Remove()

	cleaned, err := doc.Find("body").Html()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(cleaned), nil
}
