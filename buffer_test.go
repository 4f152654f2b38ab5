package vtcore

import "testing"

func TestNewBuffer(t *testing.T) {
	b := NewBuffer(24, 80)

	if b.Rows() != 24 {
		t.Errorf("expected 24 rows, got %d", b.Rows())
	}
	if b.Cols() != 80 {
		t.Errorf("expected 80 cols, got %d", b.Cols())
	}
	row, col := b.CursorPosition()
	if row != 0 || col != 0 {
		t.Errorf("expected cursor at origin, got (%d,%d)", row, col)
	}
	if !b.AutoWrap() {
		t.Error("expected auto-wrap on by default")
	}
}

func TestBufferCell(t *testing.T) {
	b := NewBuffer(24, 80)

	cell := b.Cell(0, 0)
	if cell == nil {
		t.Fatal("expected cell at (0,0)")
	}

	b.SetCell(0, 0, Cell{Glyph: "A", Width: 1})

	retrieved := b.Cell(0, 0)
	if retrieved.Glyph != "A" {
		t.Errorf("expected 'A', got %q", retrieved.Glyph)
	}
}

func TestBufferCellOutOfBounds(t *testing.T) {
	b := NewBuffer(24, 80)

	if b.Cell(-1, 0) != nil {
		t.Error("expected nil for negative row")
	}
	if b.Cell(0, -1) != nil {
		t.Error("expected nil for negative col")
	}
	if b.Cell(24, 0) != nil {
		t.Error("expected nil for row >= rows")
	}
	if b.Cell(0, 80) != nil {
		t.Error("expected nil for col >= cols")
	}
}

func TestBufferClearRow(t *testing.T) {
	b := NewBuffer(24, 80)

	b.SetCell(0, 0, Cell{Glyph: "A", Width: 1})
	b.SetCell(0, 1, Cell{Glyph: "B", Width: 1})

	b.ClearRow(0)

	if b.Cell(0, 0).Glyph != " " {
		t.Error("expected cell to be cleared")
	}
	if b.Cell(0, 1).Glyph != " " {
		t.Error("expected cell to be cleared")
	}
}

func TestBufferScrollUp(t *testing.T) {
	b := NewBuffer(5, 10)

	for row := 0; row < 5; row++ {
		b.SetCell(row, 0, Cell{Glyph: string(rune('0' + row)), Width: 1})
	}

	b.ScrollUp(0, 5, 1)

	if b.Cell(0, 0).Glyph != "1" {
		t.Errorf("expected '1', got %q", b.Cell(0, 0).Glyph)
	}
	if b.Cell(4, 0).Glyph != " " {
		t.Errorf("expected space, got %q", b.Cell(4, 0).Glyph)
	}
}

func TestBufferScrollDown(t *testing.T) {
	b := NewBuffer(5, 10)

	for row := 0; row < 5; row++ {
		b.SetCell(row, 0, Cell{Glyph: string(rune('0' + row)), Width: 1})
	}

	b.ScrollDown(0, 5, 1)

	if b.Cell(1, 0).Glyph != "0" {
		t.Errorf("expected '0', got %q", b.Cell(1, 0).Glyph)
	}
	if b.Cell(0, 0).Glyph != " " {
		t.Errorf("expected space, got %q", b.Cell(0, 0).Glyph)
	}
}

func TestBufferLineContent(t *testing.T) {
	b := NewBuffer(24, 80)

	for i, r := range "Hello" {
		b.SetCell(0, i, Cell{Glyph: string(r), Width: 1})
	}

	content := b.LineContent(0)
	if content != "Hello" {
		t.Errorf("expected 'Hello', got %q", content)
	}
}

func TestBufferLineContentSkipsWideSpacer(t *testing.T) {
	b := NewBuffer(24, 80)

	b.SetCell(0, 0, Cell{Glyph: "中", Width: 2})
	b.SetCell(0, 1, WideSpacer())
	b.SetCell(0, 2, Cell{Glyph: "!", Width: 1})

	content := b.LineContent(0)
	if content != "中!" {
		t.Errorf("expected '中!', got %q", content)
	}
}

func TestBufferTabStops(t *testing.T) {
	b := NewBuffer(24, 80)

	next := b.NextTabStop(0)
	if next != 8 {
		t.Errorf("expected next tab at 8, got %d", next)
	}

	next = b.NextTabStop(8)
	if next != 16 {
		t.Errorf("expected next tab at 16, got %d", next)
	}

	prev := b.PrevTabStop(16)
	if prev != 8 {
		t.Errorf("expected prev tab at 8, got %d", prev)
	}
}

func TestBufferClearAllTabStops(t *testing.T) {
	b := NewBuffer(24, 80)

	b.ClearAllTabStops()
	if b.NextTabStop(0) != b.Cols()-1 {
		t.Errorf("expected no tab stops left, got next=%d", b.NextTabStop(0))
	}

	b.SetTabStop(20)
	if b.NextTabStop(0) != 20 {
		t.Errorf("expected next tab at 20, got %d", b.NextTabStop(0))
	}

	b.ClearTabStop(20)
	if b.NextTabStop(0) != b.Cols()-1 {
		t.Errorf("expected tab stop cleared, got next=%d", b.NextTabStop(0))
	}
}

func TestBufferResize(t *testing.T) {
	b := NewBuffer(10, 20)

	b.SetCell(0, 0, Cell{Glyph: "A", Width: 1})
	b.SetCell(5, 10, Cell{Glyph: "B", Width: 1})

	b.Resize(20, 40)

	if b.Rows() != 20 || b.Cols() != 40 {
		t.Errorf("expected 20x40, got %dx%d", b.Rows(), b.Cols())
	}

	if b.Cell(0, 0).Glyph != "A" {
		t.Error("expected content to be preserved")
	}
	if b.Cell(5, 10).Glyph != "B" {
		t.Error("expected content to be preserved")
	}
}

func TestBufferResizeClampsCursor(t *testing.T) {
	b := NewBuffer(10, 20)
	b.SetCursorPosition(9, 19)

	b.Resize(5, 10)

	row, col := b.CursorPosition()
	if row != 4 || col != 9 {
		t.Errorf("expected cursor clamped to (4,9), got (%d,%d)", row, col)
	}
}

func TestBufferDirtyTracking(t *testing.T) {
	b := NewBuffer(24, 80)

	b.ClearAllDirty()

	if b.HasDirty() {
		t.Error("expected no dirty cells")
	}

	b.MarkDirty(0, 0)

	if !b.HasDirty() {
		t.Error("expected dirty cells")
	}

	dirty := b.DirtyCells()
	if len(dirty) != 1 {
		t.Errorf("expected 1 dirty cell, got %d", len(dirty))
	}
	if dirty[0].Row != 0 || dirty[0].Col != 0 {
		t.Error("expected dirty cell at (0,0)")
	}
}

func TestBufferInsertBlanks(t *testing.T) {
	b := NewBuffer(24, 80)

	b.SetCell(0, 0, Cell{Glyph: "A", Width: 1})
	b.SetCell(0, 1, Cell{Glyph: "B", Width: 1})
	b.SetCell(0, 2, Cell{Glyph: "C", Width: 1})

	b.InsertBlanks(0, 1, 2)

	if b.Cell(0, 0).Glyph != "A" {
		t.Errorf("expected 'A', got %q", b.Cell(0, 0).Glyph)
	}
	if b.Cell(0, 1).Glyph != " " {
		t.Errorf("expected space, got %q", b.Cell(0, 1).Glyph)
	}
	if b.Cell(0, 2).Glyph != " " {
		t.Errorf("expected space, got %q", b.Cell(0, 2).Glyph)
	}
	if b.Cell(0, 3).Glyph != "B" {
		t.Errorf("expected 'B', got %q", b.Cell(0, 3).Glyph)
	}
}

func TestBufferDeleteChars(t *testing.T) {
	b := NewBuffer(24, 80)

	b.SetCell(0, 0, Cell{Glyph: "A", Width: 1})
	b.SetCell(0, 1, Cell{Glyph: "B", Width: 1})
	b.SetCell(0, 2, Cell{Glyph: "C", Width: 1})
	b.SetCell(0, 3, Cell{Glyph: "D", Width: 1})

	b.DeleteChars(0, 1, 2)

	if b.Cell(0, 0).Glyph != "A" {
		t.Errorf("expected 'A', got %q", b.Cell(0, 0).Glyph)
	}
	if b.Cell(0, 1).Glyph != "D" {
		t.Errorf("expected 'D', got %q", b.Cell(0, 1).Glyph)
	}
}

func TestBufferWrappedLineTracking(t *testing.T) {
	b := NewBuffer(5, 10)

	if b.IsWrapped(0) {
		t.Error("expected line 0 not wrapped initially")
	}

	b.SetWrapped(0, true)
	if !b.IsWrapped(0) {
		t.Error("expected line 0 to be wrapped")
	}

	b.SetWrapped(0, false)
	if b.IsWrapped(0) {
		t.Error("expected line 0 not wrapped after clear")
	}

	b.SetWrapped(-1, true)
	b.SetWrapped(100, true)
	if b.IsWrapped(-1) {
		t.Error("expected false for out of bounds")
	}
	if b.IsWrapped(100) {
		t.Error("expected false for out of bounds")
	}
}

func TestBufferWriteCharAdvancesCursor(t *testing.T) {
	b := NewBuffer(5, 10)

	b.WriteChar("A", 1)
	row, col := b.CursorPosition()
	if row != 0 || col != 1 {
		t.Errorf("expected cursor at (0,1), got (%d,%d)", row, col)
	}
	if b.Cell(0, 0).Glyph != "A" {
		t.Errorf("expected 'A' written, got %q", b.Cell(0, 0).Glyph)
	}
}

func TestBufferWriteCharWide(t *testing.T) {
	b := NewBuffer(5, 10)

	b.WriteChar("中", 2)
	row, col := b.CursorPosition()
	if row != 0 || col != 2 {
		t.Errorf("expected cursor at (0,2), got (%d,%d)", row, col)
	}
	if !b.Cell(0, 0).IsWide() {
		t.Error("expected wide cell at (0,0)")
	}
	if !b.Cell(0, 1).IsSpacer() {
		t.Error("expected spacer cell at (0,1)")
	}
}

func TestBufferPendingWrapDeferred(t *testing.T) {
	b := NewBuffer(2, 3)

	b.WriteChar("A", 1)
	b.WriteChar("B", 1)
	b.WriteChar("C", 1)

	row, col := b.CursorPosition()
	if row != 0 || col != 2 {
		t.Errorf("expected cursor still resting at (0,2), got (%d,%d)", row, col)
	}
	if !b.PendingWrap() {
		t.Error("expected pending wrap armed after filling the last column")
	}

	b.WriteChar("D", 1)
	row, col = b.CursorPosition()
	if row != 1 || col != 1 {
		t.Errorf("expected wrap to fire on next write, cursor at (1,1), got (%d,%d)", row, col)
	}
	if b.Cell(1, 0).Glyph != "D" {
		t.Errorf("expected 'D' on the wrapped line, got %q", b.Cell(1, 0).Glyph)
	}
	if !b.IsWrapped(0) {
		t.Error("expected line 0 marked as wrapped")
	}
}

func TestBufferCursorPositioningCancelsPendingWrap(t *testing.T) {
	b := NewBuffer(2, 3)

	b.WriteChar("A", 1)
	b.WriteChar("B", 1)
	b.WriteChar("C", 1)
	if !b.PendingWrap() {
		t.Fatal("expected pending wrap armed")
	}

	b.SetCursorPosition(0, 0)
	if b.PendingWrap() {
		t.Error("expected SetCursorPosition to cancel pending wrap")
	}

	b.WriteChar("C", 1)
	b.WriteChar("D", 1)
	b.WriteChar("E", 1)
	if !b.PendingWrap() {
		t.Fatal("expected pending wrap armed again")
	}
	b.CarriageReturn()
	if b.PendingWrap() {
		t.Error("expected CarriageReturn to cancel pending wrap")
	}
}

func TestBufferScrollRegion(t *testing.T) {
	b := NewBuffer(10, 20)

	b.SetScrollRegion(2, 8)
	top, bottom := b.ScrollRegion()
	if top != 2 || bottom != 8 {
		t.Errorf("expected region [2,8), got [%d,%d)", top, bottom)
	}

	// Invalid region resets to full screen.
	b.SetScrollRegion(8, 2)
	top, bottom = b.ScrollRegion()
	if top != 0 || bottom != 10 {
		t.Errorf("expected region reset to [0,10), got [%d,%d)", top, bottom)
	}
}

func TestBufferOriginMode(t *testing.T) {
	b := NewBuffer(10, 20)
	b.SetScrollRegion(2, 8)

	b.SetOriginMode(true)
	row, _ := b.CursorPosition()
	if row != 2 {
		t.Errorf("expected cursor repositioned to region top (2), got %d", row)
	}

	b.MoveCursorAbsolute(1, 0)
	row, _ = b.CursorPosition()
	if row != 3 {
		t.Errorf("expected origin-relative move to row 3, got %d", row)
	}
}

func TestBufferSaveRestoreCursor(t *testing.T) {
	b := NewBuffer(10, 20)

	b.SetCursorPosition(4, 5)
	b.SetPen(Style{Attrs: AttrBold})
	b.SaveCursor()

	b.SetCursorPosition(0, 0)
	b.SetPen(DefaultStyle)

	b.RestoreCursor()
	row, col := b.CursorPosition()
	if row != 4 || col != 5 {
		t.Errorf("expected restored cursor (4,5), got (%d,%d)", row, col)
	}
	if !b.Pen().Has(AttrBold) {
		t.Error("expected restored pen to be bold")
	}
}

func TestBufferRestoreCursorWithoutSaveResetsToOrigin(t *testing.T) {
	b := NewBuffer(10, 20)
	b.SetCursorPosition(4, 5)

	b.RestoreCursor()
	row, col := b.CursorPosition()
	if row != 0 || col != 0 {
		t.Errorf("expected cursor reset to origin, got (%d,%d)", row, col)
	}
}

func TestBufferInsertMode(t *testing.T) {
	b := NewBuffer(5, 10)
	b.SetInsertMode(true)

	b.WriteChar("A", 1)
	b.WriteChar("B", 1)
	b.SetCursorPosition(0, 0)
	b.WriteChar("X", 1)

	if b.Cell(0, 0).Glyph != "X" {
		t.Errorf("expected 'X' at (0,0), got %q", b.Cell(0, 0).Glyph)
	}
	if b.Cell(0, 1).Glyph != "A" {
		t.Errorf("expected 'A' shifted to (0,1), got %q", b.Cell(0, 1).Glyph)
	}
	if b.Cell(0, 2).Glyph != "B" {
		t.Errorf("expected 'B' shifted to (0,2), got %q", b.Cell(0, 2).Glyph)
	}
}
