// Package render turns generated markdown into HTML or plain text.
package render

import (
	"bytes"
	"strings"

	"github.com/russross/blackfriday/v2"
)

const extensions = blackfriday.CommonExtensions | blackfriday.AutoHeadingIDs

// HTML renders md as an HTML fragment. Raw HTML in the source is dropped.
func HTML(md string) []byte {
	r := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.CommonHTMLFlags | blackfriday.SkipHTML,
	})
	return blackfriday.Run([]byte(md), blackfriday.WithExtensions(extensions), blackfriday.WithRenderer(r))
}

// Page renders md as a standalone HTML document titled title.
func Page(title, md string) []byte {
	r := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{
		Flags: blackfriday.CommonHTMLFlags | blackfriday.SkipHTML | blackfriday.CompletePage,
		Title: title,
	})
	return blackfriday.Run([]byte(md), blackfriday.WithExtensions(extensions), blackfriday.WithRenderer(r))
}

// PlainText strips markdown markup, keeping headings, paragraphs, list items
// and code as plain lines.
func PlainText(md string) string {
	root := blackfriday.New(blackfriday.WithExtensions(extensions)).Parse([]byte(md))

	var buf bytes.Buffer
	root.Walk(func(n *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		switch n.Type {
		case blackfriday.Text, blackfriday.Code:
			buf.Write(n.Literal)
		case blackfriday.CodeBlock:
			buf.Write(n.Literal)
			buf.WriteString("\n")
		case blackfriday.Softbreak, blackfriday.Hardbreak:
			buf.WriteString("\n")
		case blackfriday.Item:
			if entering {
				buf.WriteString("- ")
			}
		case blackfriday.TableCell:
			if !entering {
				buf.WriteString("\t")
			}
		case blackfriday.TableRow:
			if !entering {
				buf.WriteString("\n")
			}
		case blackfriday.Heading:
			if !entering {
				buf.WriteString("\n\n")
			}
		case blackfriday.Paragraph:
			if !entering {
				buf.WriteString("\n")
				if n.Parent == nil || n.Parent.Type != blackfriday.Item {
					buf.WriteString("\n")
				}
			}
		case blackfriday.List:
			if !entering && (n.Parent == nil || n.Parent.Type != blackfriday.Item) {
				buf.WriteString("\n")
			}
		}
		return blackfriday.GoToNext
	})

	text := strings.TrimSpace(buf.String())
	if text == "" {
		return ""
	}
	return text + "\n"
}
