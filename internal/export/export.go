// Package export writes markdown content to downloadable files.
package export

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"edugen/internal/domain"
	"edugen/internal/render"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
)

// Format of an exported file
type Format string

const (
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatPDF      Format = "pdf"
)

var Formats = []Format{FormatMarkdown, FormatText, FormatPDF}

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatMarkdown, "markdown":
		return FormatMarkdown, nil
	case FormatText, "text":
		return FormatText, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	allowed := make([]string, len(Formats))
	for i, f := range Formats {
		allowed[i] = string(f)
	}
	return "", domain.NewInvalidChoiceError("format", s, allowed)
}

func (f Format) ContentType() string {
	switch f {
	case FormatText:
		return "text/plain; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	default:
		return "text/markdown; charset=utf-8"
	}
}

// Filename derives a file name from the topic, e.g. "newtons-laws.pdf".
func Filename(topic string, f Format) string {
	lower := cases.Lower(language.Und).String(topic)
	var b strings.Builder
	dash := false
	for _, r := range lower {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
			dash = false
		case r == '\'' || r == '’':
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		slug = "content"
	}
	return slug + "." + string(f)
}

// Title is the heading placed on top of every export.
func Title(topic string) string {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return "Teaching Material"
	}
	return cases.Title(language.English, cases.NoLower).String(topic)
}

// Write renders md in format f to w.
func Write(w io.Writer, f Format, topic, md string) error {
	switch f {
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(topic, md))
		return err
	case FormatText:
		_, err := io.WriteString(w, Text(topic, md))
		return err
	case FormatPDF:
		return PDF(w, topic, md)
	default:
		return fmt.Errorf("unsupported export format %q", f)
	}
}

// Markdown returns md under a topic heading.
func Markdown(topic, md string) string {
	return "# " + Title(topic) + "\n\n" + strings.TrimSpace(md) + "\n"
}

// Text returns md with markup removed.
func Text(topic, md string) string {
	title := Title(topic)
	return title + "\n" + strings.Repeat("=", len([]rune(title))) + "\n\n" + render.PlainText(md)
}

// PDF lays the plain text out on A4 pages with a core font. The core fonts
// only cover cp1252, so text in any other script is refused before anything
// is written to w.
func PDF(w io.Writer, topic, md string) error {
	title, body := Title(topic), render.PlainText(md)
	if r, ok := firstUnencodable(title + body); ok {
		return domain.NewUnsupportedScriptError(string(FormatPDF), r)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(title, true)
	pdf.SetCreator("edugen", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, tr(title), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			pdf.Ln(3)
			continue
		}
		pdf.MultiCell(0, 6, tr(strings.ReplaceAll(line, "\t", "    ")), "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to lay out PDF: %w", err)
	}
	return pdf.Output(w)
}

func firstUnencodable(s string) (rune, bool) {
	for _, r := range s {
		if _, ok := charmap.Windows1252.EncodeRune(r); !ok {
			return r, true
		}
	}
	return 0, false
}
