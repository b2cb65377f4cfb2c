// SPDX-License-Identifier: MIT
package eveitems

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gitlab.com/fisherprime/eveitems/lexer"
)

type (
	// grammar is a recursive descent parser over the tokens of a single line.
	grammar struct {
		tokens []lexer.Token
		index  int
	}
)

const (
	// offlineMarker is appended by the fitting window to offline modules.
	offlineMarker = "/OFFLINE"

	// groupBase is the weight of a comma separated digit group.
	groupBase = 1000
)

// Grammar errors.
var (
	ErrEmptyName       = errors.New("empty name")
	ErrUnexpectedToken = errors.New("unexpected token")
	ErrMissingToken    = errors.New("missing token")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrInvalidCharge   = errors.New("invalid loaded charge")
	ErrInvalidStart    = errors.New("invalid starting token")
)

// emptySlots are fitting placeholders for unequipped slots.
var emptySlots = map[string]struct{}{
	"Empty High slot":      {},
	"Empty Med slot":       {},
	"Empty Low slot":       {},
	"Empty Rig slot":       {},
	"Empty Subsystem slot": {},
}

// peek obtains the current token.
func (g *grammar) peek() lexer.Token { return g.peekN(0) }

// peekN obtains the token n places after the current one; TokenEOF past the end.
func (g *grammar) peekN(n int) lexer.Token {
	if index := g.index + n; index < len(g.tokens) {
		return g.tokens[index]
	}

	return g.tokens[len(g.tokens)-1]
}

// advance consumes the current token; the final TokenEOF is never consumed.
func (g *grammar) advance() (t lexer.Token) {
	if t = g.peek(); t.ID != lexer.TokenEOF {
		g.index++
	}

	return
}

// expect consumes the current token if it is of the given kind.
func (g *grammar) expect(id lexer.TokenID) (t lexer.Token, err error) {
	if t = g.peek(); t.ID != id {
		err = fmt.Errorf("%w: want %v, got %v at offset %d", ErrMissingToken, id, t, t.Pos)
		return
	}
	g.advance()

	return
}

// expectEnd checks that the line has been consumed.
func (g *grammar) expectEnd() error {
	if t := g.peek(); t.ID != lexer.TokenEOF {
		return fmt.Errorf("%w: trailing %v at offset %d", ErrUnexpectedToken, t, t.Pos)
	}

	return nil
}

// item parses a line into zero, one or two (module & loaded charge) items.
//
// charge is set while parsing the charge loaded into a module.
func (g *grammar) item(charge bool) (items []Item, err error) {
	switch start := g.peek(); start.ID {
	case lexer.TokenLeftBracket:
		return g.fitting()
	case lexer.TokenWord, lexer.TokenDigits:
		return g.plain(charge)
	default:
		err = fmt.Errorf("%w: %v at offset %d", ErrInvalidStart, start, start.Pos)
	}

	return
}

// fitting parses a fitting header ("[Paladin, Joe's Paladin]") or an empty slot.
//
// Only the ship type is kept; the ship's own name is not validated.
func (g *grammar) fitting() (items []Item, err error) {
	g.advance()

	name, err := g.fullName()
	if err != nil {
		return
	}
	if _, ok := emptySlots[name]; ok {
		return
	}

	if _, err = g.expect(lexer.TokenComma); err != nil {
		return
	}
	if g.peek().ID == lexer.TokenSpace {
		g.advance()
	}
	items = []Item{{Name: name, Quantity: 1}}

	return
}

// plain parses the name-first line shapes.
func (g *grammar) plain(charge bool) (items []Item, err error) {
	name, err := g.fullName()
	if err != nil {
		return
	}
	item := Item{Name: name, Quantity: 1}

	switch next := g.peek(); next.ID {
	case lexer.TokenEOF:
	case lexer.TokenComma:
		if charge {
			err = fmt.Errorf("%w: %q carries a further charge", ErrInvalidCharge, name)
			return
		}

		var loaded Item
		if loaded, err = g.charge(); err != nil {
			return
		}
		items = []Item{item, loaded}

		return
	case lexer.TokenSpace:
		g.advance()
		if item.Quantity, err = g.quantity(); err != nil {
			return
		}
		if err = g.expectEnd(); err != nil {
			return
		}
	case lexer.TokenTab:
		g.advance()
		if g.peek().ID != lexer.TokenDigits {
			// name<TAB>group<TAB>category<TAB>quantity
			for column := 0; column < 2; column++ {
				if _, err = g.fullName(); err != nil {
					return
				}
				if _, err = g.expect(lexer.TokenTab); err != nil {
					return
				}
			}
		}

		if item.Quantity, err = g.quantity(); err != nil {
			return
		}
		g.skipColumns()
		if err = g.expectEnd(); err != nil {
			return
		}
	default:
		err = fmt.Errorf("%w following name %q: %v at offset %d", ErrUnexpectedToken, name, next, next.Pos)
		return
	}
	items = []Item{item}

	return
}

// charge parses the ", charge" suffix of a module line.
func (g *grammar) charge() (loaded Item, err error) {
	g.advance()
	if _, err = g.expect(lexer.TokenSpace); err != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidCharge, err)
		return
	}

	items, err := g.item(true)
	if err != nil {
		return
	}
	if len(items) != 1 {
		err = fmt.Errorf("%w: got %d items, want 1", ErrInvalidCharge, len(items))
		return
	}
	if end := g.peek(); end.ID != lexer.TokenEOF {
		err = fmt.Errorf("%w: trailing %v at offset %d", ErrInvalidCharge, end, end.Pos)
		return
	}
	loaded = items[0]

	return
}

// skipColumns discards the trailing tab separated columns of contract & cargo rows.
func (g *grammar) skipColumns() {
	if g.peek().ID == lexer.TokenTab {
		g.index = len(g.tokens) - 1
	}
}

// fullName folds a run of words, digits & spaces into a cleaned item name.
func (g *grammar) fullName() (name string, err error) {
	var buffer strings.Builder
	start := g.peek().Pos

loop:
	for {
		switch t := g.peek(); t.ID {
		case lexer.TokenWord:
			if t.Val != offlineMarker {
				buffer.WriteString(t.Val)
			}
			g.advance()
		case lexer.TokenDigits:
			// A trailing number is a quantity.
			if g.peekN(1).ID == lexer.TokenEOF {
				break loop
			}
			buffer.WriteString(t.Val)
			g.advance()
		case lexer.TokenSpace:
			next := g.peekN(1)
			if next.ID == lexer.TokenEOF {
				g.advance()
				break loop
			}
			// Leave the space for the quantity rule: "Paladin x2", "Paladin 2", "Tritanium 1,000".
			if next.ID == lexer.TokenX || g.quantityTail(1) {
				break loop
			}
			buffer.WriteByte(' ')
			g.advance()
		default:
			break loop
		}
	}

	name = strings.TrimSuffix(strings.TrimSpace(buffer.String()), "*")
	if name == "" {
		err = fmt.Errorf("%w at offset %d", ErrEmptyName, start)
	}

	return
}

// quantityTail reports whether the tokens from offset n to the end of the line form a grouped
// quantity: digits (',' digits)* [space] [x].
func (g *grammar) quantityTail(n int) bool {
	if g.peekN(n).ID != lexer.TokenDigits {
		return false
	}
	for n++; g.peekN(n).ID == lexer.TokenComma && g.peekN(n+1).ID == lexer.TokenDigits; n += 2 {
	}

	if g.peekN(n).ID == lexer.TokenSpace {
		n++
	}
	if g.peekN(n).ID == lexer.TokenX {
		n++
	}

	return g.peekN(n).ID == lexer.TokenEOF
}

// quantity parses either "x N", "xN" or a comma grouped number.
func (g *grammar) quantity() (quantity int64, err error) {
	switch t := g.peek(); t.ID {
	case lexer.TokenX:
		g.advance()
		if g.peek().ID == lexer.TokenSpace {
			g.advance()
		}

		var count lexer.Token
		if count, err = g.expect(lexer.TokenDigits); err != nil {
			err = fmt.Errorf("%w: %w", ErrInvalidQuantity, err)
			return
		}

		return parseCount(count)
	case lexer.TokenDigits:
		return g.groupedQuantity()
	default:
		err = fmt.Errorf("%w: %v at offset %d", ErrInvalidQuantity, t, t.Pos)
	}

	return
}

// groupedQuantity parses "3,200,189" as a base 1000 number.
//
// Non-leading groups aren't required to have three digits; "12,3" is 12003.
func (g *grammar) groupedQuantity() (quantity int64, err error) {
	for {
		var group lexer.Token
		if group, err = g.expect(lexer.TokenDigits); err != nil {
			err = fmt.Errorf("%w: %w", ErrInvalidQuantity, err)
			return
		}

		var value int64
		if value, err = parseCount(group); err != nil {
			return
		}
		if quantity > (math.MaxInt64-value)/groupBase {
			err = fmt.Errorf("%w: overflow at offset %d", ErrInvalidQuantity, group.Pos)
			return
		}
		quantity = quantity*groupBase + value

		if g.peek().ID != lexer.TokenComma {
			break
		}
		g.advance()
	}

	// Tolerate "1,234 x".
	if g.peek().ID == lexer.TokenSpace {
		g.advance()
	}
	if g.peek().ID == lexer.TokenX {
		g.advance()
	}

	return
}

func parseCount(t lexer.Token) (count int64, err error) {
	if count, err = strconv.ParseInt(t.Val, 10, 64); err != nil {
		err = fmt.Errorf("%w: %q at offset %d: %v", ErrInvalidQuantity, t.Val, t.Pos, err)
	}

	return
}
