package vtcore

// ColorKind tags which variant of the Color union is populated.
type ColorKind uint8

const (
	// ColorDefault is the terminal's default foreground/background (SGR 39/49).
	ColorDefault ColorKind = iota
	// ColorIndexed selects one of the 256 palette entries (SGR 38:5:n / 48:5:n).
	ColorIndexed
	// ColorRGB is a 24-bit truecolor value (SGR 38:2:r:g:b / 48:2:r:g:b).
	ColorRGB
)

// Color is a tagged union over {Default, Indexed(0..=255), RGB(r,g,b)}.
// It is a plain comparable struct (spec.md §3: "Equality is structural"),
// unlike the teacher's image/color.Color-interface encoding which loses
// structural comparability behind pointer-typed variants.
type Color struct {
	Kind    ColorKind
	Index   uint8 // valid when Kind == ColorIndexed
	R, G, B uint8 // valid when Kind == ColorRGB
}

// DefaultColor is the zero value and the Default variant.
var DefaultColor = Color{Kind: ColorDefault}

// Indexed constructs an indexed-palette color.
func Indexed(i uint8) Color { return Color{Kind: ColorIndexed, Index: i} }

// RGB constructs a 24-bit truecolor value.
func RGB(r, g, b uint8) Color { return Color{Kind: ColorRGB, R: r, G: g, B: b} }

// IsDefault reports whether c is the Default variant.
func (c Color) IsDefault() bool { return c.Kind == ColorDefault }

// DefaultPalette is the standard 256-color palette: 16 named ANSI colors
// (0-15), a 6x6x6 color cube (16-231), and 24 grayscale steps (232-255).
// Values and generation match xterm's defaults, as the teacher package
// ported them (colors.go).
var DefaultPalette [256]RGBColor

// RGBColor is a resolved 24-bit color used for rendering output, kept
// distinct from Color so palette resolution has a single concrete target
// type regardless of which Color variant produced it.
type RGBColor struct{ R, G, B uint8 }

func init() {
	standard := [16]RGBColor{
		{0, 0, 0}, {205, 49, 49}, {13, 188, 121}, {229, 229, 16},
		{36, 114, 200}, {188, 63, 188}, {17, 168, 205}, {229, 229, 229},
		{102, 102, 102}, {241, 76, 76}, {35, 209, 139}, {245, 245, 67},
		{59, 142, 234}, {214, 112, 214}, {41, 184, 219}, {255, 255, 255},
	}
	copy(DefaultPalette[:16], standard[:])

	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				DefaultPalette[i] = RGBColor{R: uint8(r * 51), G: uint8(g * 51), B: uint8(b * 51)}
				i++
			}
		}
	}

	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		DefaultPalette[232+j] = RGBColor{gray, gray, gray}
	}
}

// DefaultForeground is the default text color (light gray), xterm-style.
var DefaultForeground = RGBColor{229, 229, 229}

// DefaultBackground is the default background color (black).
var DefaultBackground = RGBColor{0, 0, 0}

// ResolveColor converts a Color to a concrete RGBColor for rendering,
// using fg to pick which default applies to the Default variant. It
// always resolves against the package-level defaults; a Terminal with
// its own OSC 4/10/11/12-mutated palette resolves through Palette.resolve
// instead (see Terminal.resolveColor).
func ResolveColor(c Color, fg bool) RGBColor {
	switch c.Kind {
	case ColorIndexed:
		return DefaultPalette[c.Index]
	case ColorRGB:
		return RGBColor{c.R, c.G, c.B}
	default:
		if fg {
			return DefaultForeground
		}
		return DefaultBackground
	}
}

// Palette holds one terminal's resolvable colors: the 256-slot indexed
// palette plus default foreground/background/cursor colors. OSC 4 (set
// palette entry), OSC 10/11/12 (default fg/bg/cursor), and OSC 104
// (reset palette) mutate a Terminal's own copy, never the package-level
// defaults other terminals start from.
type Palette struct {
	Colors                         [256]RGBColor
	Foreground, Background, Cursor RGBColor
}

// DefaultColorPalette returns a fresh copy of the built-in xterm-style
// palette and default colors.
func DefaultColorPalette() Palette {
	return Palette{
		Colors:     DefaultPalette,
		Foreground: DefaultForeground,
		Background: DefaultBackground,
		Cursor:     DefaultForeground,
	}
}

// resolve is Palette's own version of ResolveColor, resolving Indexed
// and Default variants against this palette's entries rather than the
// package-level defaults.
func (p Palette) resolve(c Color, fg bool) RGBColor {
	switch c.Kind {
	case ColorIndexed:
		return p.Colors[c.Index]
	case ColorRGB:
		return RGBColor{c.R, c.G, c.B}
	default:
		if fg {
			return p.Foreground
		}
		return p.Background
	}
}
