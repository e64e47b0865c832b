package printer

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

// ESC/POS command constants
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
	FontDouble = 0x11 // Double width + double height
	FontWide   = 0x10 // Double width only
	FontTall   = 0x01 // Double height only
)

// Document builds a fixed-width receipt. An ESC/POS document emits printer
// commands; a plain document ignores them and pads text itself, so the same
// layout code can produce both a thermal job and a text preview.
type Document struct {
	buf   bytes.Buffer
	width int // print width in characters (32 for 58mm, 48 for 80mm)
	plain bool
	align int
}

// NewDocument creates a new ESC/POS document with the given character width.
func NewDocument(charWidth int) *Document {
	d := &Document{width: normalizeWidth(charWidth)}
	d.Init()
	return d
}

// NewTextDocument creates a plain text document with the given character width.
func NewTextDocument(charWidth int) *Document {
	return &Document{width: normalizeWidth(charWidth), plain: true}
}

func normalizeWidth(w int) int {
	if w <= 0 {
		return 32
	}
	return w
}

// Width returns the character width of a line.
func (d *Document) Width() int {
	return d.width
}

// Init sends the ESC @ (initialize printer) command.
func (d *Document) Init() *Document {
	d.command(ESC, '@')
	return d
}

func (d *Document) command(b ...byte) {
	if !d.plain {
		d.buf.Write(b)
	}
}

// LineFeed sends a line feed.
func (d *Document) LineFeed() *Document {
	d.buf.WriteByte(LF)
	return d
}

// FeedLines sends n line feeds.
func (d *Document) FeedLines(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// SetAlign sets text alignment: AlignLeft, AlignCenter, AlignRight.
func (d *Document) SetAlign(align int) *Document {
	d.align = align
	d.command(ESC, 'a', byte(align))
	return d
}

// SetBold enables or disables bold text.
func (d *Document) SetBold(on bool) *Document {
	b := byte(0)
	if on {
		b = 1
	}
	d.command(ESC, 'E', b)
	return d
}

// SetFontSize sets the character size. Use FontNormal, FontDouble, FontWide, or FontTall.
func (d *Document) SetFontSize(size byte) *Document {
	d.command(GS, '!', size)
	return d
}

// Text writes a line of text followed by a line feed. Lines longer than the
// width are wrapped on spaces.
func (d *Document) Text(s string) *Document {
	for _, line := range wrap(s, d.width) {
		d.writeLine(line)
	}
	return d
}

func (d *Document) writeLine(s string) {
	if d.plain {
		pad := d.width - utf8.RuneCountInString(s)
		switch {
		case pad <= 0:
		case d.align == AlignCenter:
			s = strings.Repeat(" ", pad/2) + s
		case d.align == AlignRight:
			s = strings.Repeat(" ", pad) + s
		}
	}
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
}

// Separator prints a full-width separator line.
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte(LF)
	return d
}

// KeyValue prints a left-aligned key and right-aligned value on the same line.
// When both do not fit, the value moves to its own right-aligned line.
func (d *Document) KeyValue(key, value string) *Document {
	spaces := d.width - utf8.RuneCountInString(key) - utf8.RuneCountInString(value)
	if spaces < 1 {
		d.buf.WriteString(key)
		d.buf.WriteByte(LF)
		spaces = d.width - utf8.RuneCountInString(value)
		if spaces < 0 {
			spaces = 0
		}
		key = ""
	}
	d.buf.WriteString(key)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.buf.WriteString(value)
	d.buf.WriteByte(LF)
	return d
}

// ItemLine prints a receipt item: the description, then "qty x unit price"
// with the right-aligned line total.
//
//	Aluminium profile 6m
//	  4 x 12.50                      50.00
func (d *Document) ItemLine(qty, name, unitPrice, total string) *Document {
	for _, line := range wrap(name, d.width) {
		d.buf.WriteString(line)
		d.buf.WriteByte(LF)
	}
	return d.KeyValue("  "+qty+" x "+unitPrice, total)
}

// Cut sends the paper cut command (full cut).
func (d *Document) Cut() *Document {
	d.command(GS, 'V', 0x00)
	return d
}

// PartialCut sends the partial cut command.
func (d *Document) PartialCut() *Document {
	d.command(GS, 'V', 0x01)
	return d
}

// Bytes returns the accumulated byte stream.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// String returns the accumulated output; meaningful for plain documents.
func (d *Document) String() string {
	return d.buf.String()
}

// Reset clears the buffer and reinitializes the document.
func (d *Document) Reset() *Document {
	d.buf.Reset()
	d.align = AlignLeft
	d.Init()
	return d
}

// wrap splits s into lines of at most width runes, breaking on spaces where
// possible.
func wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var (
		lines []string
		cur   string
	)
	for _, w := range words {
		for utf8.RuneCountInString(w) > width {
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			r := []rune(w)
			lines = append(lines, string(r[:width]))
			w = string(r[width:])
		}
		switch {
		case cur == "":
			cur = w
		case utf8.RuneCountInString(cur)+1+utf8.RuneCountInString(w) <= width:
			cur += " " + w
		default:
			lines = append(lines, cur)
			cur = w
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}
