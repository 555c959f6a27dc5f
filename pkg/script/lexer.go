package script

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// ScriptLexer tokenizes gesture scripts. Newlines are significant and
// separate statements.
var ScriptLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Comments run to end of line
	{Name: "Comment", Pattern: `#[^\n]*`},

	{Name: "EOL", Pattern: `[\r\n]+`},
	{Name: "Whitespace", Pattern: `[ \t]+`},

	// Numbers (screen coordinates, sizes, factors)
	{Name: "Number", Pattern: `[-+]?(\d*\.)?\d+`},

	// Keywords, viewport names and modifier names
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},

	// Modifier separator (ctrl+shift)
	{Name: "Plus", Pattern: `\+`},
})
