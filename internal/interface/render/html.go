package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/dyatlov/go-opengraph/opengraph"
)

const (
	strippedSelector = "script, style, noscript, template, svg, iframe, nav, header, footer, aside, form"
	blockSelector    = "h1, h2, h3, h4, h5, h6, p, li, pre, blockquote, dt, dd, td, th"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// HTML はマークアップを除去してテキストブロックを返す.
// タイトルと説明文があれば先頭に付ける.
func HTML(body []byte) (string, error) {
	og := opengraph.NewOpenGraph()
	// metaタグが無い・壊れている場合はタイトルが空になるだけ
	_ = og.ProcessHTML(bytes.NewReader(body))

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	title := og.Title
	if title == "" {
		title = extractTitle(doc)
	}
	description := og.Description
	if description == "" {
		description, _ = doc.Find("meta[name='description']").First().Attr("content")
	}

	doc.Find(strippedSelector).Remove()
	blocks := extractBlocks(doc)

	var out []string
	if title = collapse(title); title != "" {
		out = append(out, title, strings.Repeat("=", min(len([]rune(title)), 80)))
	}
	if description = collapse(description); description != "" {
		out = append(out, description)
	}
	out = append(out, blocks...)

	return strings.Join(out, "\n\n"), nil
}

func extractTitle(doc *goquery.Document) string {
	if title := doc.Find("title").First().Text(); strings.TrimSpace(title) != "" {
		return title
	}
	return doc.Find("h1").First().Text()
}

func extractBlocks(doc *goquery.Document) []string {
	var blocks []string
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		// 入れ子のブロックは一番外側のブロックの一部として出力
		if s.ParentsFiltered(blockSelector).Length() > 0 {
			return
		}

		tag := goquery.NodeName(s)
		if tag == "pre" {
			if text := strings.Trim(s.Text(), "\n"); strings.TrimSpace(text) != "" {
				blocks = append(blocks, text)
			}
			return
		}

		text := collapse(s.Text())
		if text == "" {
			return
		}
		switch tag {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			text = strings.Repeat("#", int(tag[1]-'0')) + " " + text
		case "li", "dd":
			text = "  - " + text
		case "blockquote":
			text = "> " + text
		}
		blocks = append(blocks, text)
	})

	if len(blocks) == 0 {
		if text := collapse(doc.Find("body").Text()); text != "" {
			blocks = append(blocks, text)
		}
	}
	return blocks
}

func collapse(text string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(text, " "))
}
