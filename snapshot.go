package vtcore

import "fmt"

// SnapshotDetail selects how much per-cell detail a Snapshot carries.
type SnapshotDetail string

const (
	SnapshotDetailText   SnapshotDetail = "text"
	SnapshotDetailStyled SnapshotDetail = "styled"
	SnapshotDetailFull   SnapshotDetail = "full"
)

// Snapshot is a read-only capture of the terminal's visible state: a
// view over lines, cursor, title, and modes, suitable for rendering or
// serialization without holding a reference into live buffer internals.
type Snapshot struct {
	Size   SnapshotSize   `json:"size"`
	Cursor SnapshotCursor `json:"cursor"`
	Title  string         `json:"title"`
	Lines  []SnapshotLine `json:"lines"`
}

type SnapshotSize struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

type SnapshotCursor struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Visible bool   `json:"visible"`
	Style   string `json:"style"`
}

type SnapshotLine struct {
	Text     string            `json:"text"`
	Segments []SnapshotSegment `json:"segments,omitempty"`
	Cells    []SnapshotCell    `json:"cells,omitempty"`
}

type SnapshotSegment struct {
	Text       string        `json:"text"`
	Fg         string        `json:"fg,omitempty"`
	Bg         string        `json:"bg,omitempty"`
	Attributes SnapshotAttrs `json:"attrs,omitempty"`
	Hyperlink  *SnapshotLink `json:"hyperlink,omitempty"`
}

type SnapshotCell struct {
	Char       string        `json:"char"`
	Fg         string        `json:"fg"`
	Bg         string        `json:"bg"`
	Attributes SnapshotAttrs `json:"attrs,omitempty"`
	Hyperlink  *SnapshotLink `json:"hyperlink,omitempty"`
	Wide       bool          `json:"wide,omitempty"`
	WideSpacer bool          `json:"wide_spacer,omitempty"`
}

type SnapshotAttrs struct {
	Bold          bool `json:"bold,omitempty"`
	Dim           bool `json:"dim,omitempty"`
	Italic        bool `json:"italic,omitempty"`
	Underline     bool `json:"underline,omitempty"`
	Blink         bool `json:"blink,omitempty"`
	Reverse       bool `json:"reverse,omitempty"`
	Hidden        bool `json:"hidden,omitempty"`
	Strikethrough bool `json:"strikethrough,omitempty"`
}

type SnapshotLink struct {
	ID  string `json:"id,omitempty"`
	URI string `json:"uri"`
}

// Snapshot captures the current terminal state at the requested detail level.
func (t *Terminal) Snapshot(detail SnapshotDetail) *Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, col := t.activeBuffer.CursorPosition()
	snap := &Snapshot{
		Size:  SnapshotSize{Rows: t.rows, Cols: t.cols},
		Title: t.title,
		Cursor: SnapshotCursor{
			Row:     row,
			Col:     col,
			Visible: t.modes&ModeShowCursor != 0,
			Style:   cursorStyleToString(t.cursorStyle),
		},
		Lines: make([]SnapshotLine, t.rows),
	}
	for r := 0; r < t.rows; r++ {
		snap.Lines[r] = t.snapshotLine(r, detail)
	}
	return snap
}

func (t *Terminal) snapshotLine(row int, detail SnapshotDetail) SnapshotLine {
	line := SnapshotLine{Text: t.activeBuffer.LineContent(row)}
	switch detail {
	case SnapshotDetailStyled:
		line.Segments = t.lineToSegments(row)
	case SnapshotDetailFull:
		line.Cells = t.lineToCells(row)
	}
	return line
}

func (t *Terminal) lineToSegments(row int) []SnapshotSegment {
	var segments []SnapshotSegment
	var current *SnapshotSegment
	var chars []byte

	flush := func() {
		if current != nil && len(chars) > 0 {
			current.Text = string(chars)
			segments = append(segments, *current)
		}
	}

	for col := 0; col < t.cols; col++ {
		cell := t.activeBuffer.Cell(row, col)
		if cell == nil || cell.IsSpacer() {
			continue
		}
		fg := t.colorToHex(cell.Style.Fg, true)
		bg := t.colorToHex(cell.Style.Bg, false)
		attrs := styleToAttrs(cell.Style)
		link := hyperlinkToSnapshot(cell.Hyperlink)

		if current == nil || current.Fg != fg || current.Bg != bg || current.Attributes != attrs || !linksMatch(current.Hyperlink, link) {
			flush()
			current = &SnapshotSegment{Fg: fg, Bg: bg, Attributes: attrs, Hyperlink: link}
			chars = nil
		}
		if cell.Glyph == "" {
			chars = append(chars, ' ')
		} else {
			chars = append(chars, cell.Glyph...)
		}
	}
	flush()
	return segments
}

func (t *Terminal) lineToCells(row int) []SnapshotCell {
	cells := make([]SnapshotCell, 0, t.cols)
	for col := 0; col < t.cols; col++ {
		cell := t.activeBuffer.Cell(row, col)
		if cell == nil {
			cells = append(cells, SnapshotCell{Char: " "})
			continue
		}
		ch := cell.Glyph
		if ch == "" {
			ch = " "
		}
		cells = append(cells, SnapshotCell{
			Char:       ch,
			Fg:         t.colorToHex(cell.Style.Fg, true),
			Bg:         t.colorToHex(cell.Style.Bg, false),
			Attributes: styleToAttrs(cell.Style),
			Hyperlink:  hyperlinkToSnapshot(cell.Hyperlink),
			Wide:       cell.IsWide(),
			WideSpacer: cell.IsSpacer(),
		})
	}
	return cells
}

func linksMatch(a, b *SnapshotLink) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.URI == b.URI && a.ID == b.ID
}

func colorToHex(c Color, fg bool) string {
	if c.IsDefault() {
		return ""
	}
	rgb := ResolveColor(c, fg)
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// colorToHex resolves c against this terminal's own palette, reflecting
// any OSC 4/10/11/12 mutations, instead of the package-level defaults.
func (t *Terminal) colorToHex(c Color, fg bool) string {
	if c.IsDefault() {
		return ""
	}
	rgb := t.palette.resolve(c, fg)
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

func styleToAttrs(s Style) SnapshotAttrs {
	return SnapshotAttrs{
		Bold:          s.Has(AttrBold),
		Dim:           s.Has(AttrDim),
		Italic:        s.Has(AttrItalic),
		Underline:     s.Has(AttrUnderline),
		Blink:         s.Has(AttrBlink),
		Reverse:       s.Has(AttrInverse),
		Hidden:        s.Has(AttrHidden),
		Strikethrough: s.Has(AttrStrike),
	}
}

func hyperlinkToSnapshot(h *Hyperlink) *SnapshotLink {
	if h == nil {
		return nil
	}
	return &SnapshotLink{ID: h.ID, URI: h.URI}
}

func cursorStyleToString(style CursorStyle) string {
	switch style {
	case CursorStyleBlinkingBlock, CursorStyleSteadyBlock:
		return "block"
	case CursorStyleBlinkingUnderline, CursorStyleSteadyUnderline:
		return "underline"
	case CursorStyleBlinkingBar, CursorStyleSteadyBar:
		return "bar"
	default:
		return "block"
	}
}
