package vtcore

import "fmt"

// Modifiers is a bitset of held keyboard modifiers, applied the way
// xterm's modifyOtherKeys / CSI-u parameter encoding does.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
	ModSuper
)

// KeyName identifies a non-printable key the encoder knows how to
// translate into a control sequence.
type KeyName int

const (
	KeyUp KeyName = iota
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyBackspace
	KeyEnter
	KeyTab
	KeyEscape
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// KeyEvent is an abstract key press, independent of any particular UI toolkit.
type KeyEvent struct {
	Name KeyName
	Mods Modifiers
}

// MouseButton identifies which mouse button an event concerns.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonMiddle
	MouseButtonRight
	MouseButtonNone // motion-only event under any-event tracking
	MouseWheelUp
	MouseWheelDown
)

// MouseEventKind distinguishes press, release, and motion.
type MouseEventKind int

const (
	MousePress MouseEventKind = iota
	MouseRelease
	MouseMotion
)

// MouseEvent is an abstract mouse action at a 0-based cell position.
type MouseEvent struct {
	Kind   MouseEventKind
	Button MouseButton
	Row    int
	Col    int
	Mods   Modifiers
}

// MouseTrackingMode mirrors the DEC private modes that enable mouse reporting.
type MouseTrackingMode int

const (
	MouseTrackingOff MouseTrackingMode = iota
	MouseTrackingX10
	MouseTrackingNormal // mode 1000: press+release only
	MouseTrackingButtonEvent
	MouseTrackingAnyEvent
)

// MouseEncoding selects how a reportable mouse event is serialized.
type MouseEncoding int

const (
	MouseEncodingDefault MouseEncoding = iota // classic X10 3-byte encoding
	MouseEncodingUTF8
	MouseEncodingSGR
	MouseEncodingURXVT
)

// InputEncoder implements C6: it turns abstract key/mouse/paste events
// into the exact byte sequences a terminal sends upstream to the PTY,
// the mirror image of the parser's escape-sequence decoding. Grounded
// on the GLFW-key-driven translator in the example pack, generalized
// away from any specific windowing toolkit's key type.
type InputEncoder struct{}

// NewInputEncoder returns a stateless input encoder.
func NewInputEncoder() *InputEncoder { return &InputEncoder{} }

var cursorKeyFinal = map[KeyName]byte{
	KeyUp: 'A', KeyDown: 'B', KeyRight: 'C', KeyLeft: 'D',
}

var vtEditSeq = map[KeyName]string{
	KeyHome: "1~", KeyInsert: "2~", KeyDelete: "3~", KeyEnd: "4~",
	KeyPageUp: "5~", KeyPageDown: "6~",
}

var functionKeySeq = map[KeyName]string{
	KeyF1: "11~", KeyF2: "12~", KeyF3: "13~", KeyF4: "14~",
	KeyF5: "15~", KeyF6: "17~", KeyF7: "18~", KeyF8: "19~",
	KeyF9: "20~", KeyF10: "21~", KeyF11: "23~", KeyF12: "24~",
}

// EncodeKey encodes ev per the current cursor-keys (DECCKM) mode.
// Modified cursor/edit keys get the CSI "1;<modifier+1>" parameter form
// xterm uses (e.g. Shift+Up → "\x1b[1;2A"). appKeypad has no effect: none
// of the keys in KeyName is a keypad key.
func (e *InputEncoder) EncodeKey(ev KeyEvent, appCursor, appKeypad bool) []byte {
	_ = appKeypad
	if final, ok := cursorKeyFinal[ev.Name]; ok {
		if ev.Mods != 0 {
			return []byte(fmt.Sprintf("\x1b[1;%d%c", modifierParam(ev.Mods), final))
		}
		if appCursor {
			return []byte{0x1b, 'O', final}
		}
		return []byte{0x1b, '[', final}
	}

	switch ev.Name {
	case KeyBackspace:
		return []byte{0x7f}
	case KeyEnter:
		return []byte{'\r'}
	case KeyTab:
		if ev.Mods&ModShift != 0 {
			return []byte("\x1b[Z")
		}
		return []byte{'\t'}
	case KeyEscape:
		return []byte{0x1b}
	}

	if seq, ok := vtEditSeq[ev.Name]; ok {
		if ev.Mods != 0 {
			return []byte(fmt.Sprintf("\x1b[%s;%d~", seq[:len(seq)-1], modifierParam(ev.Mods)))
		}
		return append([]byte("\x1b["), seq...)
	}
	if seq, ok := functionKeySeq[ev.Name]; ok {
		return append([]byte("\x1b["), seq...)
	}

	return nil
}

// EncodeRune encodes a printable character, applying the Alt-sends-ESC
// convention when Alt is held.
func (e *InputEncoder) EncodeRune(r rune, mods Modifiers) []byte {
	buf := make([]byte, 0, 5)
	if mods&ModAlt != 0 {
		buf = append(buf, 0x1b)
	}
	if mods&ModCtrl != 0 && r >= 'a' && r <= 'z' {
		return append(buf, byte(r-'a'+1))
	}
	if mods&ModCtrl != 0 && r >= 'A' && r <= 'Z' {
		return append(buf, byte(r-'A'+1))
	}
	return append(buf, []byte(string(r))...)
}

func modifierParam(m Modifiers) int {
	n := 1
	if m&ModShift != 0 {
		n += 1
	}
	if m&ModAlt != 0 {
		n += 2
	}
	if m&ModCtrl != 0 {
		n += 4
	}
	return n
}

// EncodeMouse encodes a mouse event per the active tracking mode and
// encoding, or nil if the event isn't reportable under that mode (e.g.
// plain motion under MouseTrackingNormal).
func (e *InputEncoder) EncodeMouse(ev MouseEvent, mode MouseTrackingMode, enc MouseEncoding) []byte {
	if mode == MouseTrackingOff {
		return nil
	}
	if ev.Kind == MouseMotion && mode != MouseTrackingAnyEvent && mode != MouseTrackingButtonEvent {
		return nil
	}
	if ev.Kind == MouseMotion && mode == MouseTrackingButtonEvent && ev.Button == MouseButtonNone {
		return nil
	}

	cb := mouseButtonCode(ev)
	if ev.Mods&ModShift != 0 {
		cb |= 4
	}
	if ev.Mods&ModAlt != 0 {
		cb |= 8
	}
	if ev.Mods&ModCtrl != 0 {
		cb |= 16
	}
	if ev.Kind == MouseMotion {
		cb |= 32
	}

	switch enc {
	case MouseEncodingSGR:
		final := byte('M')
		if ev.Kind == MouseRelease {
			final = 'm'
		}
		return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", cb, ev.Col+1, ev.Row+1, final))
	default:
		if ev.Kind == MouseRelease {
			cb = 3
		}
		return []byte{0x1b, '[', 'M', byte(cb + 32), byte(clampByte(ev.Col+1+32)), byte(clampByte(ev.Row + 1 + 32))}
	}
}

func mouseButtonCode(ev MouseEvent) int {
	switch ev.Button {
	case MouseButtonMiddle:
		return 1
	case MouseButtonRight:
		return 2
	case MouseWheelUp:
		return 64
	case MouseWheelDown:
		return 65
	default:
		return 0
	}
}

func clampByte(v int) int {
	if v > 255 {
		return 255
	}
	return v
}

// WrapPaste wraps data in the bracketed-paste start/end markers.
func WrapPaste(data []byte) []byte {
	out := make([]byte, 0, len(data)+12)
	out = append(out, "\x1b[200~"...)
	out = append(out, data...)
	out = append(out, "\x1b[201~"...)
	return out
}
