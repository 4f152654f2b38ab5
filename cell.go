package vtcore

// Hyperlink associates a cell with a clickable link (OSC 8). Adjacent
// cells sharing an ID belong to the same link region.
type Hyperlink struct {
	ID  string
	URI string
}

// Cell is the unit of screen content: a single grapheme (which may occupy
// more than one column, per Width), its style, and an optional hyperlink.
// Glyph is a string rather than a rune so multi-codepoint graphemes (e.g.
// combining marks, ZWJ emoji sequences) can be stored without a separate
// combining-mark side table.
type Cell struct {
	Glyph     string
	Width     int
	Style     Style
	Hyperlink *Hyperlink
	Dirty     bool
}

// NewCell returns a blank cell: a single space, default style, width 1.
func NewCell() Cell {
	return Cell{Glyph: " ", Width: 1}
}

// WideSpacer is the placeholder cell occupying the column to the right of
// a wide glyph; it carries no content of its own and must never be
// printed or measured independently.
func WideSpacer() Cell {
	return Cell{Glyph: "", Width: 0}
}

// Reset restores c to a blank cell, discarding style, hyperlink, and any
// dirty marking.
func (c *Cell) Reset() {
	*c = NewCell()
}

// IsWide reports whether this cell occupies two display columns.
func (c *Cell) IsWide() bool { return c.Width == 2 }

// IsSpacer reports whether this cell is the trailing half of a wide glyph.
func (c *Cell) IsSpacer() bool { return c.Width == 0 }

// IsDirty reports whether the cell changed since the last ClearDirty.
func (c *Cell) IsDirty() bool { return c.Dirty }

// MarkDirty flags the cell as changed since the last ClearDirty.
func (c *Cell) MarkDirty() { c.Dirty = true }

// ClearDirty resets the dirty flag.
func (c *Cell) ClearDirty() { c.Dirty = false }

// Copy returns a value copy of c. Cell has no pointer fields that need
// deep copying except Hyperlink, which is shared intentionally: cells
// spanning the same link reference the same Hyperlink value.
func (c Cell) Copy() Cell { return c }
