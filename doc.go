// Package vtcore implements a headless VT100/ANSI terminal core: a
// resumable byte-stream parser, a dual-buffer cell grid, and the
// dispatch logic that turns escape sequences into grid and mode
// changes. It has no display of its own, making it suitable for:
//
//   - Driving terminal applications from tests without a real PTY display
//   - Terminal multiplexers, recorders, and web-based terminals
//   - Screen scraping and automation of CLI tools
//
// # Quick Start
//
//	term := vtcore.New()
//	term.WriteString("\x1b[31mHello \x1b[32mWorld\x1b[0m!")
//	fmt.Println(term.String()) // "Hello World!"
//
// # Architecture
//
//   - [Terminal]: dispatches parsed sequences into buffer/mode state (C5)
//   - [Buffer]: one screen's grid plus its own cursor/scroll/charset state (C3)
//   - [Cell]: one grapheme with style and optional hyperlink (C2)
//   - [Style] / [Color]: SGR attributes and the color tagged union (C1)
//   - internal/vte: the Williams-style byte parser feeding Terminal (C4)
//   - [InputEncoder]: encodes key/mouse/paste events back to PTY bytes (C6)
//
// # Dual Buffers
//
// Terminal holds a primary and an alternate buffer; CSI ?1047/?1049
// switches which is active. Each Buffer owns its own cursor, saved
// cursor, scroll region, tab stops, and charset state, so switching
// buffers never leaks state between them:
//
//	if term.IsAlternateScreen() {
//	    // a full-screen app (vim, less, htop) is running
//	}
//
// # Colors and Attributes
//
//	cell := term.Cell(row, col)
//	if cell != nil {
//	    fmt.Printf("glyph=%q bold=%v fg=%+v\n", cell.Glyph, cell.Style.Has(vtcore.AttrBold), cell.Style.Fg)
//	}
//
// # Providers
//
// Providers handle out-of-band events; all default to no-ops:
//
//   - [BellProvider], [TitleProvider], [ClipboardProvider], [RecordingProvider], [ResizeObserver]
//
//	term := vtcore.New(
//	    vtcore.WithResponse(ptyWriter),
//	    vtcore.WithBell(&MyBellHandler{}),
//	    vtcore.WithTitle(&MyTitleHandler{}),
//	)
//
// # Dirty Tracking, Selection, Search, Snapshots
//
//	if term.HasDirty() {
//	    for _, pos := range term.DirtyCells() {
//	        // redraw pos
//	    }
//	    term.ClearDirty()
//	}
//
//	term.SetSelection(vtcore.Position{Row: 0, Col: 0}, vtcore.Position{Row: 2, Col: 10})
//	text := term.GetSelectedText()
//
//	matches := term.Search("error")
//
//	snap := term.Snapshot(vtcore.SnapshotDetailStyled)
//	data, _ := json.Marshal(snap)
//
// # Thread Safety
//
// Terminal methods are safe for concurrent use; Terminal guards its
// state with an internal RWMutex. The exceptions are the parser callbacks
// (Print, Execute, EscDispatch, CsiDispatch, OscDispatch, Hook, Put,
// Unhook) and PushTitle/PopTitle, which take no lock themselves.
package vtcore
