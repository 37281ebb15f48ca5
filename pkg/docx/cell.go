package docx

import (
	"bytes"
	"strings"
)

// Cell addresses the inner content of one table cell inside
// word/document.xml. Offsets are invalidated by any document mutation;
// re-fetch the cell via Document.Cell after calling SetText or AddImage.
type Cell struct {
	d     *Document
	start int // offset of the first byte after the opening <w:tc> tag
	end   int // offset of the matching </w:tc>
}

type cellSpan struct {
	start, end int
}

// CellCount returns the number of top-level table cells in the document.
func (d *Document) CellCount() int {
	return len(d.cellSpans())
}

// Cell returns the i-th top-level table cell in document order, or nil if
// the index is out of range.
func (d *Document) Cell(i int) *Cell {
	spans := d.cellSpans()
	if i < 0 || i >= len(spans) {
		return nil
	}
	return &Cell{d: d, start: spans[i].start, end: spans[i].end}
}

// cellSpans scans document.xml for w:tc elements. Cells of tables nested
// inside another cell are skipped, matching how the substitution pass treats
// only outer table cells.
func (d *Document) cellSpans() []cellSpan {
	var (
		spans []cellSpan
		depth int
		start int
		pos   int
	)
	body := d.body
	for {
		open := indexTag(body, pos, "<w:tc")
		close_ := indexAt(body, pos, "</w:tc>")
		if open == -1 && close_ == -1 {
			break
		}
		if open != -1 && (close_ == -1 || open < close_) {
			tagEnd := bytes.IndexByte(body[open:], '>')
			if tagEnd == -1 {
				break
			}
			tagEnd += open
			if body[tagEnd-1] == '/' { // self-closing, empty cell
				pos = tagEnd + 1
				continue
			}
			if depth == 0 {
				start = tagEnd + 1
			}
			depth++
			pos = tagEnd + 1
			continue
		}
		// closing tag
		if depth > 0 {
			depth--
			if depth == 0 {
				spans = append(spans, cellSpan{start: start, end: close_})
			}
		}
		pos = close_ + len("</w:tc>")
	}
	return spans
}

// Text returns the cell's visible text: paragraphs joined by newlines, with
// explicit line breaks and tabs preserved.
func (c *Cell) Text() string {
	inner := c.d.body[c.start:c.end]
	var (
		paragraphs []string
		current    strings.Builder
		pos        int
	)
	for pos < len(inner) {
		lt := bytes.IndexByte(inner[pos:], '<')
		if lt == -1 {
			break
		}
		lt += pos
		gt := bytes.IndexByte(inner[lt:], '>')
		if gt == -1 {
			break
		}
		gt += lt
		tag := string(inner[lt : gt+1])
		switch {
		case strings.HasPrefix(tag, "<w:t>") || (strings.HasPrefix(tag, "<w:t ") && !strings.HasSuffix(tag, "/>")):
			endTag := bytes.Index(inner[gt+1:], []byte("</w:t>"))
			if endTag == -1 {
				pos = gt + 1
				continue
			}
			current.WriteString(unescapeXML(string(inner[gt+1 : gt+1+endTag])))
			pos = gt + 1 + endTag + len("</w:t>")
			continue
		case strings.HasPrefix(tag, "<w:br") && strings.HasSuffix(tag, "/>"):
			current.WriteString("\n")
		case strings.HasPrefix(tag, "<w:cr") && strings.HasSuffix(tag, "/>"):
			current.WriteString("\n")
		case tag == "<w:tab/>":
			current.WriteString("\t")
		case tag == "</w:p>":
			paragraphs = append(paragraphs, current.String())
			current.Reset()
		}
		pos = gt + 1
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}
	return strings.Join(paragraphs, "\n")
}

// SetText replaces the cell content with a single paragraph holding the
// given text; newlines become explicit line breaks. Cell properties
// (w:tcPr) are preserved, run formatting is not.
func (c *Cell) SetText(text string) {
	inner := c.d.body[c.start:c.end]

	var out strings.Builder
	if pr := tcPr(inner); pr != nil {
		out.Write(pr)
	}
	if text == "" {
		out.WriteString("<w:p/>")
	} else {
		out.WriteString("<w:p><w:r>")
		for i, line := range strings.Split(text, "\n") {
			if i > 0 {
				out.WriteString("<w:br/>")
			}
			out.WriteString(`<w:t xml:space="preserve">`)
			out.WriteString(escapeXML(line))
			out.WriteString("</w:t>")
		}
		out.WriteString("</w:r></w:p>")
	}

	c.d.splice(c.start, c.end, []byte(out.String()))
}

// appendInner inserts raw XML at the end of the cell content.
func (c *Cell) appendInner(xmlFragment string) {
	c.d.splice(c.end, c.end, []byte(xmlFragment))
}

// splice replaces body[start:end] with repl.
func (d *Document) splice(start, end int, repl []byte) {
	next := make([]byte, 0, len(d.body)-(end-start)+len(repl))
	next = append(next, d.body[:start]...)
	next = append(next, repl...)
	next = append(next, d.body[end:]...)
	d.body = next
}

// tcPr returns the cell properties element at the start of the inner
// content, if present.
func tcPr(inner []byte) []byte {
	if !bytes.HasPrefix(inner, []byte("<w:tcPr")) {
		return nil
	}
	if bytes.HasPrefix(inner, []byte("<w:tcPr/>")) {
		return inner[:len("<w:tcPr/>")]
	}
	end := bytes.Index(inner, []byte("</w:tcPr>"))
	if end == -1 {
		return nil
	}
	return inner[:end+len("</w:tcPr>")]
}

// indexTag finds the next occurrence of prefix that starts an XML tag of
// exactly that name (followed by '>', ' ' or '/').
func indexTag(body []byte, from int, prefix string) int {
	for {
		i := indexAt(body, from, prefix)
		if i == -1 {
			return -1
		}
		rest := i + len(prefix)
		if rest < len(body) {
			switch body[rest] {
			case '>', ' ', '/':
				return i
			}
		}
		from = i + len(prefix)
	}
}

func indexAt(body []byte, from int, sub string) int {
	if from >= len(body) {
		return -1
	}
	i := bytes.Index(body[from:], []byte(sub))
	if i == -1 {
		return -1
	}
	return i + from
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

var xmlUnescaper = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&apos;", "'",
	"&amp;", "&",
)

func escapeXML(s string) string   { return xmlEscaper.Replace(s) }
func unescapeXML(s string) string { return xmlUnescaper.Replace(s) }
