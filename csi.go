package vtcore

import (
	"fmt"

	"github.com/ttygroup/vtcore/internal/vte"
)

// CsiDispatch handles one complete CSI sequence: cursor movement,
// erase/insert/delete, repeat (REP), scroll-region and scrolling, SGR,
// soft reset (DECSTR), DEC private mode set/reset, device status
// reports, and window operations.
func (t *Terminal) CsiDispatch(private byte, params *vte.Params, intermediates []byte, final byte) {
	buf := t.activeBuffer

	if private == '?' {
		t.csiPrivateMode(params, final)
		return
	}
	if len(intermediates) == 1 && intermediates[0] == ' ' && final == 'q' {
		t.setCursorStyle(params.ParamOr(0, 1, 1))
		return
	}
	if len(intermediates) == 1 && intermediates[0] == '!' && final == 'p' {
		t.softReset()
		return
	}

	switch final {
	case 'b': // REP: repeat the previous printable character
		t.repeatPreviousChar(params.ParamOr(0, 1, 1))
	case 'A': // CUU
		row, col := buf.CursorPosition()
		buf.SetCursorPosition(row-params.ParamOr(0, 1, 1), col)
	case 'B', 'e': // CUD, VPR
		row, col := buf.CursorPosition()
		buf.SetCursorPosition(row+params.ParamOr(0, 1, 1), col)
	case 'C', 'a': // CUF, HPR
		row, col := buf.CursorPosition()
		buf.SetCursorPosition(row, col+params.ParamOr(0, 1, 1))
	case 'D': // CUB
		row, col := buf.CursorPosition()
		buf.SetCursorPosition(row, col-params.ParamOr(0, 1, 1))
	case 'E': // CNL
		row, _ := buf.CursorPosition()
		buf.SetCursorPosition(row+params.ParamOr(0, 1, 1), 0)
	case 'F': // CPL
		row, _ := buf.CursorPosition()
		buf.SetCursorPosition(row-params.ParamOr(0, 1, 1), 0)
	case 'G', '`': // CHA, HPA
		row, _ := buf.CursorPosition()
		buf.SetCursorPosition(row, params.ParamOr(0, 1, 1)-1)
	case 'd': // VPA
		_, col := buf.CursorPosition()
		buf.SetCursorPosition(params.ParamOr(0, 1, 1)-1, col)
	case 'H', 'f': // CUP, HVP
		row := params.ParamOr(0, 1, 1) - 1
		col := params.ParamOr(1, 1, 1) - 1
		buf.MoveCursorAbsolute(row, col)
	case 'J': // ED
		t.eraseInDisplay(params.ParamOr(0, 0, 0))
	case 'K': // EL
		t.eraseInLine(params.ParamOr(0, 0, 0))
	case 'L': // IL
		row, _ := buf.CursorPosition()
		_, bottom := buf.ScrollRegion()
		buf.InsertLines(row, params.ParamOr(0, 1, 1), bottom)
	case 'M': // DL
		row, _ := buf.CursorPosition()
		_, bottom := buf.ScrollRegion()
		buf.DeleteLines(row, params.ParamOr(0, 1, 1), bottom)
	case 'P': // DCH
		row, col := buf.CursorPosition()
		buf.DeleteChars(row, col, params.ParamOr(0, 1, 1))
	case '@': // ICH
		row, col := buf.CursorPosition()
		buf.InsertBlanks(row, col, params.ParamOr(0, 1, 1))
	case 'X': // ECH
		row, col := buf.CursorPosition()
		buf.ClearRowRange(row, col, col+params.ParamOr(0, 1, 1))
	case 'S': // SU
		top, bottom := buf.ScrollRegion()
		buf.ScrollUp(top, bottom, params.ParamOr(0, 1, 1))
	case 'T': // SD
		top, bottom := buf.ScrollRegion()
		buf.ScrollDown(top, bottom, params.ParamOr(0, 1, 1))
	case 'I': // CHT
		row, col := buf.CursorPosition()
		n := params.ParamOr(0, 1, 1)
		for i := 0; i < n; i++ {
			col = buf.NextTabStop(col)
		}
		buf.SetCursorPosition(row, col)
	case 'Z': // CBT
		row, col := buf.CursorPosition()
		n := params.ParamOr(0, 1, 1)
		for i := 0; i < n; i++ {
			col = buf.PrevTabStop(col)
		}
		buf.SetCursorPosition(row, col)
	case 'g': // TBC
		t.tabClear(params.ParamOr(0, 0, 0))
	case 'm': // SGR
		pen := buf.Pen()
		ApplySGR(&pen, params)
		buf.SetPen(pen)
	case 'r': // DECSTBM
		top := params.ParamOr(0, 1, 1) - 1
		bottom := params.ParamOr(1, buf.Rows(), buf.Rows())
		buf.SetScrollRegion(top, bottom)
		buf.SetCursorPosition(buf.originTop(), 0)
	case 'h': // SM
		t.setAnsiMode(params, true)
	case 'l': // RM
		t.setAnsiMode(params, false)
	case 'n': // DSR
		t.deviceStatusReport(params.ParamOr(0, 0, 0))
	case 'c': // DA
		t.writeResponseString("\x1b[?62;1c")
	case 's': // SCOSC (plain CSI s, no private marker)
		buf.SaveCursor()
	case 'u': // SCORC
		buf.RestoreCursor()
	case 't': // window ops
		t.windowOp(params)
	}
}

func (t *Terminal) eraseInDisplay(mode int) {
	buf := t.activeBuffer
	row, _ := buf.CursorPosition()
	switch mode {
	case 0:
		buf.ClearRowRange(row, colOf(buf), buf.Cols())
		for r := row + 1; r < buf.Rows(); r++ {
			buf.ClearRow(r)
		}
	case 1:
		for r := 0; r < row; r++ {
			buf.ClearRow(r)
		}
		buf.ClearRowRange(row, 0, colOf(buf)+1)
	case 2, 3:
		buf.ClearAll()
	}
}

func (t *Terminal) eraseInLine(mode int) {
	buf := t.activeBuffer
	row, col := buf.CursorPosition()
	switch mode {
	case 0:
		buf.ClearRowRange(row, col, buf.Cols())
	case 1:
		buf.ClearRowRange(row, 0, col+1)
	case 2:
		buf.ClearRow(row)
	}
}

func colOf(buf *Buffer) int {
	_, col := buf.CursorPosition()
	return col
}

func (t *Terminal) tabClear(mode int) {
	buf := t.activeBuffer
	_, col := buf.CursorPosition()
	switch mode {
	case 0:
		buf.ClearTabStop(col)
	case 3:
		buf.ClearAllTabStops()
	}
}

func (t *Terminal) setCursorStyle(n int) {
	styles := []CursorStyle{
		CursorStyleBlinkingBlock, CursorStyleBlinkingBlock, CursorStyleSteadyBlock,
		CursorStyleBlinkingUnderline, CursorStyleSteadyUnderline,
		CursorStyleBlinkingBar, CursorStyleSteadyBar,
	}
	if n >= 0 && n < len(styles) {
		t.cursorStyle = styles[n]
	}
}

func (t *Terminal) deviceStatusReport(mode int) {
	switch mode {
	case 5:
		t.writeResponseString("\x1b[0n")
	case 6:
		row, col := t.activeBuffer.CursorPosition()
		top := 0
		if t.activeBuffer.OriginMode() {
			top, _ = t.activeBuffer.ScrollRegion()
		}
		t.writeResponseString(fmt.Sprintf("\x1b[%d;%dR", row-top+1, col+1))
	}
}

func (t *Terminal) windowOp(params *vte.Params) {
	switch params.ParamOr(0, 0, 0) {
	case 8:
		cols := params.ParamOr(2, t.cols, t.cols)
		rows := params.ParamOr(1, t.rows, t.rows)
		t.resizeObserver.ResizeRequested(cols, rows)
	case 22:
		t.PushTitle()
	case 23:
		t.PopTitle()
	}
}

// setAnsiMode handles non-private CSI h/l (ANSI standard modes); the
// only one honored is IRM (insert mode), the rest (e.g. SRM, LNM) are
// accepted and ignored.
func (t *Terminal) setAnsiMode(params *vte.Params, set bool) {
	for i := 0; i < params.Len(); i++ {
		if params.Param(i, 0) == 4 { // IRM
			t.activeBuffer.SetInsertMode(set)
		}
	}
}

// csiPrivateMode handles DECSET/DECRST (CSI ? Pm h/l).
func (t *Terminal) csiPrivateMode(params *vte.Params, final byte) {
	set := final == 'h'
	for i := 0; i < params.Len(); i++ {
		switch params.Param(i, 0) {
		case 1: // DECCKM
			t.setMode(ModeCursorKeys, set)
		case 3: // DECCOLM
			t.setMode(ModeColumnMode, set)
			cols := 80
			if set {
				cols = 132
			}
			t.resizeLocked(t.rows, cols)
		case 5: // DECSCNM handled as a pass-through no-op (reverse video screen)
		case 6: // DECOM
			t.activeBuffer.SetOriginMode(set)
		case 7: // DECAWM
			t.activeBuffer.SetAutoWrap(set)
		case 9:
			t.setMode(ModeMouseX10, set)
		case 25: // DECTCEM
			t.setMode(ModeShowCursor, set)
		case 12:
			t.setMode(ModeBlinkingCursor, set)
		case 1000:
			t.setMode(ModeMouseNormal, set)
		case 1002:
			t.setMode(ModeMouseButtonEvent, set)
		case 1003:
			t.setMode(ModeMouseAnyEvent, set)
		case 1004:
			t.setMode(ModeFocusReporting, set)
		case 1005:
			t.setMouseEncoding(MouseEncodingUTF8, set)
		case 1006:
			t.setMouseEncoding(MouseEncodingSGR, set)
		case 1015:
			t.setMouseEncoding(MouseEncodingURXVT, set)
		case 47, 1047, 1049:
			t.switchAlternateScreen(set, params.Param(i, 0) == 1049)
		case 1048:
			if set {
				t.activeBuffer.SaveCursor()
			} else {
				t.activeBuffer.RestoreCursor()
			}
		case 2004:
			t.setMode(ModeBracketedPaste, set)
		}
	}
}

// repeatPreviousChar implements REP (CSI Pn b): print the last printed
// character again n times. A no-op before anything has been printed.
func (t *Terminal) repeatPreviousChar(n int) {
	if !t.hasLastPrinted {
		return
	}
	for i := 0; i < n; i++ {
		t.Print(t.lastPrintedRune)
	}
}

// softReset implements DECSTR (CSI ! p): origin mode off, auto-wrap on,
// insert mode off, full scroll region, cursor to home, and the pen back
// to its default SGR attributes. Unlike RIS it never touches buffer
// contents or the title/selection state.
func (t *Terminal) softReset() {
	buf := t.activeBuffer
	buf.SetOriginMode(false)
	buf.SetAutoWrap(true)
	buf.SetInsertMode(false)
	buf.SetScrollRegion(0, buf.Rows())
	buf.SetPen(DefaultStyle)
	buf.SetCursorPosition(0, 0)
	t.setMode(ModeCursorKeys, false)
	t.setMode(ModeKeypadApplication, false)
}

func (t *Terminal) setMode(m TerminalMode, set bool) {
	if set {
		t.modes |= m
	} else {
		t.modes &^= m
	}
}

func (t *Terminal) setMouseEncoding(enc MouseEncoding, set bool) {
	if set {
		t.mouseEncoding = enc
	} else if t.mouseEncoding == enc {
		t.mouseEncoding = MouseEncodingDefault
	}
}

// switchAlternateScreen implements DECSET/DECRST 47/1047/1049. Mode 1049
// additionally saves/restores the cursor and clears the alternate
// screen on entry; crucially, switching buffers never carries cursor
// or mode state between them — each Buffer already owns its own.
func (t *Terminal) switchAlternateScreen(enter, withCursor bool) {
	if enter {
		if withCursor {
			t.primaryBuffer.SaveCursor()
		}
		t.activeBuffer = t.alternateBuffer
		if withCursor {
			t.activeBuffer.ClearAll()
		}
	} else {
		t.activeBuffer = t.primaryBuffer
		if withCursor {
			t.primaryBuffer.RestoreCursor()
		}
	}
}
