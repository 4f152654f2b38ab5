package vtcore

import (
	"sync"

	"github.com/ttygroup/vtcore/internal/vte"
)

var _ vte.Handler = (*Terminal)(nil)

// TerminalMode is a bitmask of modes that apply to the terminal as a
// whole rather than to a single screen buffer (contrast with the
// per-buffer origin/auto-wrap/insert modes on Buffer).
type TerminalMode uint32

const (
	ModeCursorKeys TerminalMode = 1 << iota // DECCKM: cursor keys send SS3 vs CSI
	ModeKeypadApplication
	ModeShowCursor
	ModeBlinkingCursor
	ModeBracketedPaste
	ModeFocusReporting
	ModeColumnMode // DECCOLM: 80/132 column switch
	ModeAlternateScroll
	ModeMouseX10
	ModeMouseNormal
	ModeMouseButtonEvent
	ModeMouseAnyEvent
	ModeMouseUTF8
	ModeMouseSGR
	ModeMouseURXVT
)

const (
	DefaultRows = 24
	DefaultCols = 80
)

// Selection is a text region selected in the active buffer, running in
// reading order from Start to End (rows between them are taken whole).
// Start is normalized to be before or equal to End.
type Selection struct {
	Start  Position
	End    Position
	Active bool
}

// Terminal is the top-level state machine (C5): it owns both screen
// buffers, dispatches parsed escape sequences into buffer and mode
// changes, and exposes a read-only view for rendering. Public methods
// are safe for concurrent use, except the parser callbacks (Print,
// Execute, EscDispatch, CsiDispatch, OscDispatch, Hook, Put, Unhook) and
// PushTitle/PopTitle, which take no lock and are meant to run under the
// lock Write holds while feeding the parser.
type Terminal struct {
	mu sync.RWMutex

	rows, cols int

	primaryBuffer   *Buffer
	alternateBuffer *Buffer
	activeBuffer    *Buffer

	modes TerminalMode

	cursorStyle   CursorStyle
	mouseEncoding MouseEncoding

	title      string
	titleStack []string

	currentHyperlink *Hyperlink

	selection Selection

	palette Palette

	lastPrintedRune rune
	hasLastPrinted  bool

	parser *vte.Parser

	responseProvider  ResponseProvider
	bellProvider      BellProvider
	titleProvider     TitleProvider
	clipboardProvider ClipboardProvider
	recordingProvider RecordingProvider
	resizeObserver    ResizeObserver

	encoder *InputEncoder
}

// Option configures a Terminal during construction.
type Option func(*Terminal)

// WithSize sets the terminal dimensions, replacing values <= 0 with the defaults (24x80).
func WithSize(rows, cols int) Option {
	if rows <= 0 {
		rows = DefaultRows
	}
	if cols <= 0 {
		cols = DefaultCols
	}
	return func(t *Terminal) {
		t.rows = rows
		t.cols = cols
	}
}

// WithResponse sets the writer for terminal responses (DSR, cursor
// position reports, clipboard replies). Discarded if nil.
func WithResponse(p ResponseProvider) Option {
	return func(t *Terminal) { t.responseProvider = p }
}

// WithBell sets the handler for BEL.
func WithBell(p BellProvider) Option {
	return func(t *Terminal) { t.bellProvider = p }
}

// WithTitle sets the handler for window title/icon-name changes.
func WithTitle(p TitleProvider) Option {
	return func(t *Terminal) { t.titleProvider = p }
}

// WithClipboard sets the handler for OSC 52 clipboard access.
func WithClipboard(p ClipboardProvider) Option {
	return func(t *Terminal) { t.clipboardProvider = p }
}

// WithRecording sets the handler capturing raw input bytes before parsing.
func WithRecording(p RecordingProvider) Option {
	return func(t *Terminal) { t.recordingProvider = p }
}

// WithResizeObserver sets the handler notified when a window-ops CSI
// requests the embedder resize the PTY.
func WithResizeObserver(p ResizeObserver) Option {
	return func(t *Terminal) { t.resizeObserver = p }
}

// WithPalette seeds the terminal's mutable 256-color palette and default
// foreground/background/cursor colors, overriding the xterm-style
// defaults. OSC 4/10/11/12/104 mutate this copy, never the package-level
// defaults other terminals start from.
func WithPalette(p Palette) Option {
	return func(t *Terminal) { t.palette = p }
}

// New creates a terminal with the given options, defaulting to 24x80
// with line wrap, insert mode off, and the cursor visible.
func New(opts ...Option) *Terminal {
	t := &Terminal{
		rows:              DefaultRows,
		cols:              DefaultCols,
		bellProvider:      NoopBell{},
		titleProvider:     NoopTitle{},
		clipboardProvider: NoopClipboard{},
		recordingProvider: NoopRecording{},
		resizeObserver:    NoopResize{},
		mouseEncoding:     MouseEncodingDefault,
		palette:           DefaultColorPalette(),
	}
	for _, opt := range opts {
		opt(t)
	}

	t.primaryBuffer = NewBuffer(t.rows, t.cols)
	t.alternateBuffer = NewBuffer(t.rows, t.cols)
	t.activeBuffer = t.primaryBuffer

	t.modes = ModeShowCursor
	t.cursorStyle = CursorStyleBlinkingBlock

	t.parser = vte.New(t)
	t.encoder = NewInputEncoder()

	return t
}

// Rows returns the terminal height in character rows.
func (t *Terminal) Rows() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.rows
}

// Cols returns the terminal width in character columns.
func (t *Terminal) Cols() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cols
}

// Cell returns the cell at (row, col) in the active buffer, or nil if out of bounds.
func (t *Terminal) Cell(row, col int) *Cell {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeBuffer.Cell(row, col)
}

// CursorPos returns the cursor position in the active buffer (0-based).
func (t *Terminal) CursorPos() (row, col int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeBuffer.CursorPosition()
}

// CursorVisible reports whether the cursor should currently be rendered.
func (t *Terminal) CursorVisible() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.modes&ModeShowCursor != 0
}

// CursorStyle returns the current cursor rendering style.
func (t *Terminal) CursorStyle() CursorStyle {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cursorStyle
}

// Title returns the current window title.
func (t *Terminal) Title() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.title
}

// HasMode reports whether a terminal-global mode flag is set.
func (t *Terminal) HasMode(mode TerminalMode) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.modes&mode != 0
}

// IsAlternateScreen reports whether the alternate buffer is active.
func (t *Terminal) IsAlternateScreen() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeBuffer == t.alternateBuffer
}

// ScrollRegion returns the active buffer's scroll region.
func (t *Terminal) ScrollRegion() (top, bottom int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeBuffer.ScrollRegion()
}

// Resize changes the terminal's dimensions, applying to both buffers.
// Invalid dimensions (<= 0) are ignored.
func (t *Terminal) Resize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resizeLocked(rows, cols)
}

// resizeLocked is Resize's body without the lock acquisition, for callers
// that already hold t.mu (e.g. DECCOLM handling inside CsiDispatch, which
// runs under the lock Write took before feeding the parser).
func (t *Terminal) resizeLocked(rows, cols int) {
	t.rows, t.cols = rows, cols
	t.primaryBuffer.Resize(rows, cols)
	t.alternateBuffer.Resize(rows, cols)
}

// Write feeds raw bytes (e.g. PTY output) through the parser, updating
// terminal state. Implements io.Writer.
func (t *Terminal) Write(data []byte) (int, error) {
	t.recordingProvider.Record(data)
	t.mu.Lock()
	t.parser.Feed(data)
	t.mu.Unlock()
	return len(data), nil
}

// WriteString is a convenience wrapper around Write.
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// --- Dirty tracking ---

// HasDirty reports whether any cell in the active buffer changed since the last ClearDirty.
func (t *Terminal) HasDirty() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeBuffer.HasDirty()
}

// DirtyCells returns the positions modified since the last ClearDirty.
func (t *Terminal) DirtyCells() []Position {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeBuffer.DirtyCells()
}

// ClearDirty resets the active buffer's dirty tracking.
func (t *Terminal) ClearDirty() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeBuffer.ClearAllDirty()
}

// --- Selection ---

// SetSelection sets the active selection, normalizing start/end order.
func (t *Terminal) SetSelection(start, end Position) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if end.Before(start) {
		start, end = end, start
	}
	t.selection = Selection{Start: start, End: end, Active: true}
}

// ClearSelection deactivates the current selection.
func (t *Terminal) ClearSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selection.Active = false
}

// GetSelection returns the current selection state.
func (t *Terminal) GetSelection() Selection {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selection
}

// IsSelected reports whether (row, col) falls within the active selection.
func (t *Terminal) IsSelected(row, col int) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.selection.Active {
		return false
	}
	pos := Position{Row: row, Col: col}
	if pos.Before(t.selection.Start) || t.selection.End.Before(pos) {
		return false
	}
	return true
}

// GetSelectedText extracts the text within the active selection, rows
// joined by newlines and empty cells rendered as spaces.
func (t *Terminal) GetSelectedText() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.selection.Active {
		return ""
	}
	start, end := t.selection.Start, t.selection.End
	var out []byte
	for row := start.Row; row <= end.Row && row < t.rows; row++ {
		startCol, endCol := 0, t.cols
		if row == start.Row {
			startCol = start.Col
		}
		if row == end.Row {
			endCol = end.Col + 1
		}
		for col := startCol; col < endCol && col < t.cols; col++ {
			cell := t.activeBuffer.Cell(row, col)
			if cell == nil || cell.IsSpacer() {
				continue
			}
			if cell.Glyph == "" {
				out = append(out, ' ')
			} else {
				out = append(out, cell.Glyph...)
			}
		}
		if row < end.Row {
			out = append(out, '\n')
		}
	}
	return string(out)
}

// --- Convenience accessors ---

// LineContent returns the text of one row of the active buffer.
func (t *Terminal) LineContent(row int) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.activeBuffer.LineContent(row)
}

// String returns the visible screen as a newline-joined string with
// trailing blank lines omitted. Implements fmt.Stringer.
func (t *Terminal) String() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	lines := make([]string, t.rows)
	last := -1
	for row := 0; row < t.rows; row++ {
		lines[row] = t.activeBuffer.LineContent(row)
		if lines[row] != "" {
			last = row
		}
	}
	if last < 0 {
		return ""
	}
	out := lines[0]
	for _, l := range lines[1 : last+1] {
		out += "\n" + l
	}
	return out
}

// Search finds all occurrences of pattern in the visible screen,
// returning the position of each match's first character.
func (t *Terminal) Search(pattern string) []Position {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if pattern == "" {
		return nil
	}
	var matches []Position
	pr := []rune(pattern)
	for row := 0; row < t.rows; row++ {
		lr := []rune(t.activeBuffer.LineContent(row))
		for col := 0; col <= len(lr)-len(pr); col++ {
			if runesEqual(lr[col:col+len(pr)], pr) {
				matches = append(matches, Position{Row: row, Col: col})
			}
		}
	}
	return matches
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

func (t *Terminal) writeResponse(data []byte) {
	if t.responseProvider != nil {
		t.responseProvider.Write(data)
	}
}

func (t *Terminal) writeResponseString(s string) {
	t.writeResponse([]byte(s))
}

// EncodeKey encodes a key event per the terminal's current cursor-keys
// mode, for feeding back to the PTY. The keypad mode is passed to the
// encoder but changes no output (see InputEncoder.EncodeKey).
func (t *Terminal) EncodeKey(ev KeyEvent) []byte {
	t.mu.RLock()
	appCursor := t.modes&ModeCursorKeys != 0
	appKeypad := t.modes&ModeKeypadApplication != 0
	t.mu.RUnlock()
	return t.encoder.EncodeKey(ev, appCursor, appKeypad)
}

// EncodeMouse encodes a mouse event per the terminal's active mouse
// tracking mode and encoding, or nil if mouse reporting is off or the
// event isn't reportable under the active mode.
func (t *Terminal) EncodeMouse(ev MouseEvent) []byte {
	t.mu.RLock()
	defer t.mu.RUnlock()
	mode := t.mouseTrackingMode()
	if mode == MouseTrackingOff {
		return nil
	}
	return t.encoder.EncodeMouse(ev, mode, t.mouseEncoding)
}

func (t *Terminal) mouseTrackingMode() MouseTrackingMode {
	switch {
	case t.modes&ModeMouseAnyEvent != 0:
		return MouseTrackingAnyEvent
	case t.modes&ModeMouseButtonEvent != 0:
		return MouseTrackingButtonEvent
	case t.modes&ModeMouseNormal != 0:
		return MouseTrackingNormal
	case t.modes&ModeMouseX10 != 0:
		return MouseTrackingX10
	default:
		return MouseTrackingOff
	}
}

// WrapPaste wraps data in bracketed-paste markers if bracketed paste is
// enabled, otherwise returns data unchanged.
func (t *Terminal) WrapPaste(data []byte) []byte {
	t.mu.RLock()
	bracketed := t.modes&ModeBracketedPaste != 0
	t.mu.RUnlock()
	if !bracketed {
		return data
	}
	return WrapPaste(data)
}
