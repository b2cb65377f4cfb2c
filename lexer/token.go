// SPDX-License-Identifier: MIT
package lexer

import "fmt"

type (
	// TokenID int holding an identifier for the Token kinds.
	TokenID int

	// Token type holding the kind, value & position of a lexeme.
	Token struct {
		Val string  // The value of this Token, set for TokenWord & TokenDigits only
		ID  TokenID // The type of this Token
		Pos int     // The starting position, (in bytes) of this Token
	}
)

// iota is used to define an incrementing number sequence for const
// declarations
const (
	_                 TokenID = iota // Consume 0 to start actual numbering at 1.
	TokenX                           // 'x' used as a multiplier marker.
	TokenLeftBracket                 // '['.
	TokenRightBracket                // ']'.
	TokenTab                         // '\t'.
	TokenSpace                       // ' '.
	TokenComma                       // ','.
	TokenWord                        // Item name fragment.
	TokenDigits                      // Run of decimal digits.
	TokenEOF                         // End of the line.
)

var tokenNames = [...]string{
	TokenX:            "x",
	TokenLeftBracket:  "'['",
	TokenRightBracket: "']'",
	TokenTab:          "tab",
	TokenSpace:        "space",
	TokenComma:        "','",
	TokenWord:         "word",
	TokenDigits:       "digits",
	TokenEOF:          "end of line",
}

// String is the fmt.Stringer implementation for TokenID.
func (id TokenID) String() string {
	if id > 0 && int(id) < len(tokenNames) {
		return tokenNames[id]
	}

	return "unknown"
}

// String is the fmt.Stringer implementation for Token.
func (t Token) String() string {
	switch t.ID {
	case TokenWord, TokenDigits:
		return fmt.Sprintf("%s %q", t.ID, t.Val)
	default:
		return t.ID.String()
	}
}
