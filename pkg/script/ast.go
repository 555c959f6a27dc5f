package script

import "github.com/alecthomas/participle/v2/lexer"

// Script is a parsed gesture script.
type Script struct {
	Statements []*Statement `( @@ | EOL )*`
}

// Statement is one line of a script.
type Statement struct {
	Pos lexer.Position

	Sync *SyncStmt `  @@`
	Tool *ToolStmt `| @@`
	Zoom *ZoomStmt `| @@`
	Fit  *FitStmt  `| @@`
	Pan  *PanStmt  `| @@`
	Down *DownStmt `| @@`
	Move *MoveStmt `| @@`
	Up   *UpStmt   `| @@`
}

// Coord is a pair of numbers: a screen position or a size.
type Coord struct {
	X float64 `@Number`
	Y float64 `@Number`
}

// Mods lists modifier names.
// Example: with ctrl+shift
type Mods struct {
	Names []string `"with" @Ident ( Plus @Ident )*`
}

// SyncStmt toggles viewport sync.
// Example: sync on
type SyncStmt struct {
	State string `"sync" @( "on" | "off" )`
}

// ToolStmt selects the tool for presses on empty space.
// Example: tool draw
type ToolStmt struct {
	Name string `"tool" @Ident`
}

// ZoomStmt zooms one viewport.
// Example: zoom translated at 400 300 by 1.1
type ZoomStmt struct {
	View   string  `"zoom" @Ident`
	Action string  `( @( "in" | "out" | "reset" )`
	At     *Coord  `  | "at" @@`
	Factor float64 `    "by" @Number )`
}

// FitStmt fits the page into a viewport of the given size.
// Example: fit original 800 600
type FitStmt struct {
	View string `"fit" @Ident`
	Size *Coord `@@`
}

// PanStmt drags a viewport in one step.
// Example: pan original from 10 10 to 60 40
type PanStmt struct {
	View string `"pan" @Ident`
	From *Coord `"from" @@`
	To   *Coord `"to" @@`
}

// DownStmt presses the pointer in a viewport.
// Example: down original 200 150 with ctrl
type DownStmt struct {
	View string `"down" @Ident`
	At   *Coord `@@`
	Mods *Mods  `@@?`
}

// MoveStmt moves the pointer within the viewport of the last press.
type MoveStmt struct {
	At   *Coord `"move" @@`
	Mods *Mods  `@@?`
}

// UpStmt releases the pointer, at the last position if none is given.
type UpStmt struct {
	Keyword string `@"up"`
	At      *Coord `@@?`
	Mods    *Mods  `@@?`
}
