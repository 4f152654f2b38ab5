package vtcore

import "testing"

func TestNewCell(t *testing.T) {
	c := NewCell()
	if c.Glyph != " " {
		t.Errorf("Glyph = %q, want %q", c.Glyph, " ")
	}
	if c.Width != 1 {
		t.Errorf("Width = %d, want 1", c.Width)
	}
	if c.Style != DefaultStyle {
		t.Errorf("Style = %+v, want default", c.Style)
	}
	if c.Hyperlink != nil {
		t.Errorf("Hyperlink = %+v, want nil", c.Hyperlink)
	}
}

func TestWideSpacer(t *testing.T) {
	c := WideSpacer()
	if c.Glyph != "" {
		t.Errorf("Glyph = %q, want empty", c.Glyph)
	}
	if c.Width != 0 {
		t.Errorf("Width = %d, want 0", c.Width)
	}
	if !c.IsSpacer() {
		t.Error("IsSpacer() = false, want true")
	}
}

func TestCellReset(t *testing.T) {
	c := Cell{
		Glyph:     "A",
		Width:     1,
		Style:     Style{Attrs: AttrBold},
		Hyperlink: &Hyperlink{ID: "1", URI: "http://example.com"},
		Dirty:     true,
	}
	c.Reset()
	if c.Glyph != " " || c.Width != 1 {
		t.Errorf("Reset left Glyph=%q Width=%d, want blank cell", c.Glyph, c.Width)
	}
	if c.Style != DefaultStyle {
		t.Errorf("Reset left Style=%+v, want default", c.Style)
	}
	if c.Hyperlink != nil {
		t.Error("Reset left Hyperlink set, want nil")
	}
	if c.Dirty {
		t.Error("Reset left Dirty=true, want false")
	}
}

func TestCellDirty(t *testing.T) {
	c := NewCell()
	if c.IsDirty() {
		t.Error("new cell is dirty, want clean")
	}
	c.MarkDirty()
	if !c.IsDirty() {
		t.Error("MarkDirty did not set dirty flag")
	}
	c.ClearDirty()
	if c.IsDirty() {
		t.Error("ClearDirty did not clear dirty flag")
	}
}

func TestCellWide(t *testing.T) {
	wide := Cell{Glyph: "中", Width: 2}
	if !wide.IsWide() {
		t.Error("IsWide() = false for width-2 cell")
	}
	if wide.IsSpacer() {
		t.Error("IsSpacer() = true for width-2 cell")
	}

	spacer := WideSpacer()
	if spacer.IsWide() {
		t.Error("IsWide() = true for spacer cell")
	}
	if !spacer.IsSpacer() {
		t.Error("IsSpacer() = false for spacer cell")
	}

	narrow := NewCell()
	if narrow.IsWide() || narrow.IsSpacer() {
		t.Error("narrow cell reports wide or spacer")
	}
}

func TestCellCopy(t *testing.T) {
	link := &Hyperlink{ID: "1", URI: "http://example.com"}
	orig := Cell{Glyph: "A", Width: 1, Style: Style{Attrs: AttrBold}, Hyperlink: link}

	cp := orig.Copy()
	if cp.Glyph != orig.Glyph || cp.Width != orig.Width || cp.Style != orig.Style {
		t.Errorf("Copy() = %+v, want value equal to %+v", cp, orig)
	}
	if cp.Hyperlink != orig.Hyperlink {
		t.Error("Copy() did not share the Hyperlink pointer")
	}

	cp.Glyph = "B"
	if orig.Glyph == "B" {
		t.Error("mutating the copy's Glyph affected the original")
	}
}
