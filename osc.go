package vtcore

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// OscDispatch handles one complete OSC sequence: window title/icon name
// (0/1/2), palette entries (4), hyperlinks (8), default foreground/
// background/cursor colors (10/11/12), clipboard access (52), and
// palette reset (104). Unrecognized OSC codes are accepted and discarded,
// matching the no-op default for unimplemented out-of-band channels.
func (t *Terminal) OscDispatch(fields [][]byte, bellTerminated bool) {
	_ = bellTerminated
	if len(fields) == 0 {
		return
	}
	code, err := strconv.Atoi(string(fields[0]))
	if err != nil {
		return
	}
	switch code {
	case 0:
		if len(fields) > 1 {
			t.setTitle(string(fields[1]))
			t.titleProvider.SetIconName(string(fields[1]))
		}
	case 2:
		if len(fields) > 1 {
			t.setTitle(string(fields[1]))
		}
	case 1:
		if len(fields) > 1 {
			t.titleProvider.SetIconName(string(fields[1]))
		}
	case 4:
		t.setPaletteEntries(fields[1:])
	case 8:
		t.setHyperlink(fields)
	case 10:
		t.setOrQueryDefaultColor(10, &t.palette.Foreground, fields)
	case 11:
		t.setOrQueryDefaultColor(11, &t.palette.Background, fields)
	case 12:
		t.setOrQueryDefaultColor(12, &t.palette.Cursor, fields)
	case 52:
		t.clipboardOp(fields)
	case 104:
		t.resetPalette(fields[1:])
	}
}

// setPaletteEntries handles "OSC 4 ; n ; color ; n ; color ... ST",
// accepting one or more index/color pairs in a single sequence.
func (t *Terminal) setPaletteEntries(fields [][]byte) {
	for i := 0; i+1 < len(fields); i += 2 {
		n, err := strconv.Atoi(string(fields[i]))
		if err != nil || n < 0 || n > 255 {
			continue
		}
		if rgb, ok := parseColorSpec(string(fields[i+1])); ok {
			t.palette.Colors[n] = rgb
		}
	}
}

// setOrQueryDefaultColor handles "OSC {10,11,12} ; color ST", setting
// target, or "OSC {10,11,12} ; ? ST", which reports target's current
// value back through the response provider in the same color-spec form.
func (t *Terminal) setOrQueryDefaultColor(code int, target *RGBColor, fields [][]byte) {
	if len(fields) < 2 {
		return
	}
	spec := string(fields[1])
	if spec == "?" {
		t.writeResponseString(fmt.Sprintf("\x1b]%d;rgb:%02x/%02x/%02x\x07", code, target.R, target.G, target.B))
		return
	}
	if rgb, ok := parseColorSpec(spec); ok {
		*target = rgb
	}
}

// resetPalette handles "OSC 104 ST" (reset the whole palette) and
// "OSC 104 ; n ; n ... ST" (reset only the named indices).
func (t *Terminal) resetPalette(fields [][]byte) {
	if len(fields) == 0 {
		t.palette.Colors = DefaultPalette
		return
	}
	for _, f := range fields {
		n, err := strconv.Atoi(string(f))
		if err != nil || n < 0 || n > 255 {
			continue
		}
		t.palette.Colors[n] = DefaultPalette[n]
	}
}

// parseColorSpec parses an XParseColor-style "rgb:RR/GG/BB" color spec
// (only the first two hex digits of each channel group are used, so
// wider forms like "rgb:RRRR/GGGG/BBBB" degrade gracefully), the format
// OSC 4/10/11/12 use.
func parseColorSpec(s string) (RGBColor, bool) {
	s = strings.TrimPrefix(s, "rgb:")
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return RGBColor{}, false
	}
	var vals [3]uint8
	for i, p := range parts {
		if len(p) > 2 {
			p = p[:2]
		}
		v, err := strconv.ParseUint(p, 16, 8)
		if err != nil {
			return RGBColor{}, false
		}
		vals[i] = uint8(v)
	}
	return RGBColor{vals[0], vals[1], vals[2]}, true
}

func (t *Terminal) setTitle(title string) {
	t.title = title
	t.titleProvider.SetTitle(title)
}

// PushTitle saves the current title onto the window-title stack
// (driven by CSI "22 t"), and PopTitle restores the most recently
// pushed one (CSI "23 t").
func (t *Terminal) PushTitle() {
	t.titleStack = append(t.titleStack, t.title)
}

func (t *Terminal) PopTitle() {
	if len(t.titleStack) == 0 {
		return
	}
	n := len(t.titleStack) - 1
	t.setTitle(t.titleStack[n])
	t.titleStack = t.titleStack[:n]
}

// setHyperlink handles "OSC 8 ; params ; uri ST". An empty uri closes
// the current hyperlink region.
func (t *Terminal) setHyperlink(fields [][]byte) {
	if len(fields) < 3 || len(fields[2]) == 0 {
		t.currentHyperlink = nil
		return
	}
	id := ""
	for _, kv := range strings.Split(string(fields[1]), ":") {
		if strings.HasPrefix(kv, "id=") {
			id = strings.TrimPrefix(kv, "id=")
		}
	}
	t.currentHyperlink = &Hyperlink{ID: id, URI: string(fields[2])}
}

// clipboardOp handles "OSC 52 ; selection ; base64-data ST". A "?"
// payload requests a read; any other payload is a write.
func (t *Terminal) clipboardOp(fields [][]byte) {
	if len(fields) < 3 {
		return
	}
	selection := byte('c')
	if len(fields[1]) > 0 {
		selection = fields[1][0]
	}
	payload := string(fields[2])
	if payload == "?" {
		data := t.clipboardProvider.Read(selection)
		t.writeResponseString("\x1b]52;" + string(selection) + ";" + base64.StdEncoding.EncodeToString([]byte(data)) + "\x07")
		return
	}
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return
	}
	t.clipboardProvider.Write(selection, decoded)
}
