package printer

import (
	"bytes"
	"fmt"
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

// Font size
const (
	FontNormal = 0x00
	FontDouble = 0x11 // double width + double height
)

// DefaultWidth fits 58mm paper. 80mm paper takes 48.
const DefaultWidth = 32

// Document builds an ESC/POS byte stream and, alongside it, a plain-text
// rendering of the same receipt for previews and spool files.
type Document struct {
	buf   bytes.Buffer
	text  strings.Builder
	width int
	align int
}

// NewDocument creates a document for a printer charWidth characters wide.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = DefaultWidth
	}
	d := &Document{width: charWidth}
	d.buf.Write([]byte{ESC, '@'})
	d.buf.WriteByte(LF)
	return d
}

// Width is the line width in characters.
func (d *Document) Width() int {
	return d.width
}

func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	d.text.WriteByte('\n')
	return d
}

// FeedLines advances the paper n lines. The plain text copy is not padded.
func (d *Document) FeedLines(n int) *Document {
	d.buf.Write([]byte{ESC, 'd', byte(n)})
	return d
}

func (d *Document) SetAlign(align int) *Document {
	d.align = align
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

func (d *Document) SetBold(on bool) *Document {
	var v byte
	if on {
		v = 1
	}
	d.buf.Write([]byte{ESC, 'E', v})
	return d
}

func (d *Document) SetFontSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Text prints s on its own line, wrapping at the document width.
func (d *Document) Text(s string) *Document {
	for _, line := range wrap(s, d.width) {
		d.buf.WriteString(line)
		d.buf.WriteByte(LF)
		d.writeText(line)
	}
	return d
}

func (d *Document) TextF(format string, args ...interface{}) *Document {
	return d.Text(fmt.Sprintf(format, args...))
}

// Separator prints a full-width rule such as "--------------------------------".
func (d *Document) Separator(char byte) *Document {
	line := strings.Repeat(string(char), d.width)
	d.buf.WriteString(line)
	d.buf.WriteByte(LF)
	d.text.WriteString(line + "\n")
	return d
}

// KeyValue prints key on the left and value flush right.
func (d *Document) KeyValue(key, value string) *Document {
	line := spread(key, value, d.width)
	d.buf.WriteString(line)
	d.buf.WriteByte(LF)
	d.text.WriteString(line + "\n")
	return d
}

// ItemLine prints "qty x name" with the total flush right, e.g.
// "250 g x Rice              1.25". A name too long for one line gets the
// total on a line of its own.
func (d *Document) ItemLine(qty, name, total string) *Document {
	prefix := fmt.Sprintf("%s x %s", qty, name)
	if utf8.RuneCountInString(prefix)+1+utf8.RuneCountInString(total) > d.width {
		for _, line := range wrap(prefix, d.width) {
			d.buf.WriteString(line)
			d.buf.WriteByte(LF)
			d.text.WriteString(line + "\n")
		}
		return d.KeyValue("", total)
	}
	return d.KeyValue(prefix, total)
}

func (d *Document) PartialCut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

// Bytes returns the ESC/POS stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// String returns the plain-text rendering.
func (d *Document) String() string {
	return d.text.String()
}

func (d *Document) writeText(line string) {
	pad := d.width - utf8.RuneCountInString(line)
	if pad > 0 {
		switch d.align {
		case AlignCenter:
			line = strings.Repeat(" ", pad/2) + line
		case AlignRight:
			line = strings.Repeat(" ", pad) + line
		}
	}
	d.text.WriteString(line + "\n")
}

func spread(left, right string, width int) string {
	spaces := width - utf8.RuneCountInString(left) - utf8.RuneCountInString(right)
	if spaces < 1 {
		spaces = 1
	}
	return left + strings.Repeat(" ", spaces) + right
}

// wrap breaks s on spaces so no line exceeds width; longer words are split.
func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	var cur []rune
	for _, w := range words {
		word := []rune(w)
		for len(word) > width {
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = nil
			}
			lines = append(lines, string(word[:width]))
			word = word[width:]
		}
		switch {
		case len(cur) == 0:
			cur = word
		case len(cur)+1+len(word) <= width:
			cur = append(append(cur, ' '), word...)
		default:
			lines = append(lines, string(cur))
			cur = word
		}
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}
