package vtcore

import "github.com/ttygroup/vtcore/internal/vte"

// Print handles a single decoded grapheme from the parser's Ground
// state, measuring its display width and writing it through the active
// buffer's deferred-wrap cursor advance.
func (t *Terminal) Print(r rune) {
	buf := t.activeBuffer
	_, col := buf.CursorPosition()
	if buf.PendingWrap() {
		col = 0
	}
	buf.WriteChar(string(r), runeWidth(r))
	if t.currentHyperlink != nil {
		row, _ := buf.CursorPosition()
		if cell := buf.Cell(row, col); cell != nil {
			cell.Hyperlink = t.currentHyperlink
		}
	}
	t.lastPrintedRune = r
	t.hasLastPrinted = true
}

// Execute handles a C0 control byte.
func (t *Terminal) Execute(b byte) {
	switch b {
	case '\a': // BEL
		t.bellProvider.Ring()
	case '\b': // BS
		row, col := t.activeBuffer.CursorPosition()
		if col > 0 {
			t.activeBuffer.SetCursorPosition(row, col-1)
		}
	case '\t': // HT
		row, col := t.activeBuffer.CursorPosition()
		t.activeBuffer.SetCursorPosition(row, t.activeBuffer.NextTabStop(col))
	case 0x0e: // SO: invoke G1 onto GL
		t.activeBuffer.InvokeCharset(CharsetIndexG1)
	case 0x0f: // SI: invoke G0 onto GL
		t.activeBuffer.InvokeCharset(CharsetIndexG0)
	case '\n', '\v', '\f': // LF, VT, FF
		t.activeBuffer.LineFeed()
	case '\r': // CR
		t.activeBuffer.CarriageReturn()
	}
}

// EscDispatch handles a final ESC sequence (not CSI/DCS/OSC): charset
// designation, cursor save/restore, index/reverse-index, and the
// alignment test pattern.
func (t *Terminal) EscDispatch(intermediates []byte, final byte) {
	if len(intermediates) == 1 {
		switch intermediates[0] {
		case '(', ')', '*', '+':
			t.designateCharset(intermediates[0], final)
		case '#':
			if final == '8' { // DECALN
				t.activeBuffer.FillWithE()
			}
		}
		return
	}
	switch final {
	case '7': // DECSC
		t.activeBuffer.SaveCursor()
	case '8': // DECRC
		t.activeBuffer.RestoreCursor()
	case 'D': // IND
		t.activeBuffer.LineFeed()
	case 'M': // RI: reverse index
		row, _ := t.activeBuffer.CursorPosition()
		top, _ := t.activeBuffer.ScrollRegion()
		if row <= top {
			t.activeBuffer.ScrollDown(top, t.scrollBottomOf(), 1)
		} else {
			row2, col := t.activeBuffer.CursorPosition()
			t.activeBuffer.SetCursorPosition(row2-1, col)
		}
	case 'E': // NEL
		t.activeBuffer.LineFeed()
		t.activeBuffer.CarriageReturn()
	case 'c': // RIS: full reset
		t.fullReset()
	}
}

func (t *Terminal) scrollBottomOf() int {
	_, bottom := t.activeBuffer.ScrollRegion()
	return bottom
}

// designateCharset maps "ESC ( B" / "ESC ) 0" / etc. to a G-set slot assignment.
func (t *Terminal) designateCharset(intermediate, final byte) {
	var idx CharsetIndex
	switch intermediate {
	case '(':
		idx = CharsetIndexG0
	case ')':
		idx = CharsetIndexG1
	case '*':
		idx = CharsetIndexG2
	case '+':
		idx = CharsetIndexG3
	default:
		return
	}
	cs := CharsetASCII
	if final == '0' {
		cs = CharsetLineDrawing
	}
	t.activeBuffer.DesignateCharset(idx, cs)
}

func (t *Terminal) fullReset() {
	t.primaryBuffer = NewBuffer(t.rows, t.cols)
	t.alternateBuffer = NewBuffer(t.rows, t.cols)
	t.activeBuffer = t.primaryBuffer
	t.modes = ModeShowCursor
	t.title = ""
	t.titleStack = nil
	t.currentHyperlink = nil
	t.selection = Selection{}
	t.hasLastPrinted = false
	t.palette = DefaultColorPalette()
}

// Hook, Put, and Unhook implement the DCS passthrough path. Per the
// data model's resolution of DCS handling, device control strings
// (Sixel, DECRQSS, terminfo queries, ...) are parsed structurally by
// the byte-stream parser but never interpreted here: all three are
// no-ops and nothing is accumulated, so a DCS sequence can never be
// mistaken for a Sixel/Kitty image payload.
func (t *Terminal) Hook(private byte, params *vte.Params, intermediates []byte, final byte) {}
func (t *Terminal) Put(b byte)                                                              {}
func (t *Terminal) Unhook()                                                                 {}
