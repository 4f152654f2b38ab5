package vtcore

import "github.com/ttygroup/vtcore/internal/vte"

// AttrMask is a bitset of text attributes set by SGR parameters.
type AttrMask uint16

const (
	AttrBold AttrMask = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrInverse
	AttrHidden
	AttrStrike
	AttrOverline
)

// UnderlineStyle distinguishes the SGR 4:n underline variants.
type UnderlineStyle uint8

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
)

// Style holds the rendering attributes of a cell: colors, attribute bits,
// and underline styling. It is a plain value type so cells can copy it
// by assignment (spec.md §3: style is part of a cell's value, not shared).
type Style struct {
	Fg             Color
	Bg             Color
	UnderlineColor Color
	Attrs          AttrMask
	Underline      UnderlineStyle
}

// DefaultStyle is the zero-value style: default colors, no attributes.
var DefaultStyle = Style{}

// Has reports whether any bit in m is set.
func (s Style) Has(m AttrMask) bool { return s.Attrs&m != 0 }

func (s *Style) set(m AttrMask)   { s.Attrs |= m }
func (s *Style) clear(m AttrMask) { s.Attrs &^= m }

// ApplySGR folds one CSI "m" sequence's parameters into style, implementing
// the Select Graphic Rendition table (spec.md §4.1), including the
// colon-separated truecolor/indexed sub-parameter forms (38:2::r:g:b,
// 38:5:n) and the SGR 4:n underline-style extension. Unrecognized
// parameters are silently ignored; out-of-range color values are clamped
// to 0..255.
func ApplySGR(s *Style, params *vte.Params) {
	if params.Len() == 0 {
		*s = DefaultStyle
		return
	}
	i := 0
	n := params.Len()
	for i < n {
		p := params.Param(i, 0)
		if p < 0 {
			p = 0
		}
		switch {
		case p == 0:
			*s = DefaultStyle
		case p == 1:
			s.set(AttrBold)
		case p == 2:
			s.set(AttrDim)
		case p == 3:
			s.set(AttrItalic)
		case p == 4:
			if sub := params.SubParams(i); len(sub) > 0 {
				s.Underline = underlineStyleFromSub(sub[0])
			} else {
				s.Underline = UnderlineSingle
			}
			s.set(AttrUnderline)
		case p == 5 || p == 6:
			s.set(AttrBlink)
		case p == 7:
			s.set(AttrInverse)
		case p == 8:
			s.set(AttrHidden)
		case p == 9:
			s.set(AttrStrike)
		case p == 21:
			s.Underline = UnderlineDouble
			s.set(AttrUnderline)
		case p == 22:
			s.clear(AttrBold)
			s.clear(AttrDim)
		case p == 23:
			s.clear(AttrItalic)
		case p == 24:
			s.clear(AttrUnderline)
			s.Underline = UnderlineNone
		case p == 25:
			s.clear(AttrBlink)
		case p == 27:
			s.clear(AttrInverse)
		case p == 28:
			s.clear(AttrHidden)
		case p == 29:
			s.clear(AttrStrike)
		case p == 53:
			s.set(AttrOverline)
		case p == 55:
			s.clear(AttrOverline)
		case p >= 30 && p <= 37:
			s.Fg = Indexed(uint8(p - 30))
		case p == 38:
			c, consumed := parseExtendedColor(params, i)
			s.Fg = c
			i += consumed
			continue
		case p == 39:
			s.Fg = DefaultColor
		case p >= 40 && p <= 47:
			s.Bg = Indexed(uint8(p - 40))
		case p == 48:
			c, consumed := parseExtendedColor(params, i)
			s.Bg = c
			i += consumed
			continue
		case p == 49:
			s.Bg = DefaultColor
		case p == 58:
			c, consumed := parseExtendedColor(params, i)
			s.UnderlineColor = c
			i += consumed
			continue
		case p == 59:
			s.UnderlineColor = DefaultColor
		case p >= 90 && p <= 97:
			s.Fg = Indexed(uint8(p-90) + 8)
		case p >= 100 && p <= 107:
			s.Bg = Indexed(uint8(p-100) + 8)
		}
		i++
	}
}

func underlineStyleFromSub(v int32) UnderlineStyle {
	switch v {
	case 0:
		return UnderlineNone
	case 2:
		return UnderlineDouble
	case 3:
		return UnderlineCurly
	case 4:
		return UnderlineDotted
	case 5:
		return UnderlineDashed
	default:
		return UnderlineSingle
	}
}

// parseExtendedColor handles the 38/48/58 "extended color" forms in both
// their classic ';'-separated shape (38;5;n or 38;2;r;g;b) and their
// colon-subparameter shape (38:5:n or 38:2::r:g:b, the latter with an
// empty color-space id field that is ignored). It returns the resolved
// color and how many top-level parameter slots were consumed starting
// at i (always at least 1).
func parseExtendedColor(params *vte.Params, i int) (Color, int) {
	if sub := params.SubParams(i); len(sub) > 0 {
		switch sub[0] {
		case 5:
			if len(sub) >= 2 {
				return Indexed(clamp8(sub[1])), 1
			}
		case 2:
			// sub may be [2, r, g, b] or [2, cs, r, g, b] (empty cs slot
			// still occupies a position in SubParams as 0/-1).
			vals := sub[1:]
			if len(vals) >= 4 {
				vals = vals[1:]
			}
			if len(vals) >= 3 {
				return RGB(clamp8(vals[0]), clamp8(vals[1]), clamp8(vals[2])), 1
			}
		}
		return DefaultColor, 1
	}

	mode := params.Param(i+1, -1)
	switch mode {
	case 5:
		n := params.Param(i+2, 0)
		return Indexed(clamp8(int32(n))), 3
	case 2:
		r := params.Param(i+2, 0)
		g := params.Param(i+3, 0)
		b := params.Param(i+4, 0)
		return RGB(clamp8(int32(r)), clamp8(int32(g)), clamp8(int32(b))), 5
	default:
		return DefaultColor, 1
	}
}

func clamp8(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
