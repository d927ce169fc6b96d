package printer

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// ESC/POS command bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character size
const (
	FontNormal = 0x00
	FontDouble = 0x11
)

// Width58mm and Width80mm are the character widths of common paper rolls
const (
	Width58mm = 32
	Width80mm = 48
)

// Document builds an ESC/POS byte stream. Widths are counted in runes so
// item names outside ASCII do not break column alignment.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument creates a document for a printer that fits width characters per
// line. A non-positive width selects 58mm paper.
func NewDocument(width int) *Document {
	if width <= 0 {
		width = Width58mm
	}
	d := &Document{width: width}
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// Width returns the characters per line
func (d *Document) Width() int {
	return d.width
}

// FeedLines sends n line feeds
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// SetAlign sets text alignment
func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

// SetBold enables or disables emphasis
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

// SetFontSize sets the character size
func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text writes s followed by a line feed, wrapping lines longer than the
// paper width.
func (d *Document) Text(s string) *Document {
	for _, line := range wrap(s, d.width) {
		d.buf.WriteString(line)
		d.buf.WriteByte(LF)
	}
	return d
}

// Separator prints a full-width rule of char
func (d *Document) Separator(char rune) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// Row prints left flush left and right flush right on one line. A left part
// that does not fit is truncated so the right column stays intact.
func (d *Document) Row(left, right string) *Document {
	room := d.width - utf8.RuneCountInString(right) - 1
	if room < 1 {
		room = 1
	}
	left = truncate(left, room)
	spaces := d.width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if spaces < 1 {
		spaces = 1
	}
	d.buf.WriteString(left)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.buf.WriteString(right)
	d.buf.WriteByte(LF)
	return d
}

// PartialCut feeds and partially cuts the paper
func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the accumulated byte stream
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "."
}

func wrap(s string, width int) []string {
	r := []rune(s)
	if len(r) <= width {
		return []string{s}
	}
	var lines []string
	for len(r) > width {
		lines = append(lines, string(r[:width]))
		r = r[width:]
	}
	if len(r) > 0 {
		lines = append(lines, string(r))
	}
	return lines
}
