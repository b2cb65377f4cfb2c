// SPDX-License-Identifier: MIT
package lexer

// REF: https://gitlab.com/fisherprime/go-ddbms/-/blob/master/internal/v1/lexer.go
// REF: https://talks.golang.org/2011/lex.slide

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

type (
	// NextOperation type for the next function to be executed
	NextOperation func() NextOperation

	// ValidationFunction type for functions that validate rune identities
	ValidationFunction func(rune) bool

	// Lexer captures the tokens of a single line of pasted inventory text.
	//
	// A Lexer is single use & must not be shared between goroutines.
	Lexer struct {
		debug  bool
		logger logrus.FieldLogger

		// source is the line being lexed.
		source string

		// start is the byte offset of the lexeme being scanned.
		start int
		// pos is the current byte offset.
		pos int
		// width of the last rune returned by Next, 0 at the end of the source.
		width int

		tokens []Token
		errs   []error
	}

	// Option defines the Lexer functional option type
	Option func(*Lexer)

	// Errors holds every lexing error found in a line, in order of appearance.
	Errors []error
)

const (
	// eof is returned by Next once the source is exhausted.
	eof rune = -1

	defTokenCap = 16
)

// Lexing errors.
var (
	ErrUnsupportedCharacter = errors.New("unsupported character")
	ErrUnsupportedNewline   = errors.New("unsupported newline")
)

// Improves on performance compared to ORs.
var nameSymbols = [utf8.RuneSelf]bool{
	'-':  true, // "Cybernetic Subprocessor - Basic"
	'*':  true, // "Paladin*"
	'\'': true, // "Joe's Paladin"
	'/':  true, // "/OFFLINE"
	'.':  true,
}

// New creates a new Lexer for the source line.
func New(source string, opts ...Option) *Lexer {
	l := &Lexer{
		logger: logrus.New(),
		source: source,
		tokens: make([]Token, 0, defTokenCap),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(l *Lexer) { l.debug = debug } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(l *Lexer) { l.logger = logger } }

// Tokenize lexes a line using the default options.
func Tokenize(line string) ([]Token, error) { return New(line).Lex() }

// Lex scans the whole source by executing state functions.
//
// The returned slice always ends with a TokenEOF. Lexing does not stop at the first invalid
// rune; every error found in the line is returned as Errors.
func (l *Lexer) Lex() (tokens []Token, err error) {
	for stateFunction := l.LexToken; stateFunction != nil; {
		stateFunction = stateFunction()
	}
	l.tokens = append(l.tokens, Token{ID: TokenEOF, Pos: len(l.source)})

	if len(l.errs) > 0 {
		err = Errors(l.errs)
		return
	}
	tokens = l.tokens

	return
}

// LexToken classifies the rune at the current position.
func (l *Lexer) LexToken() NextOperation {
	r := l.Next()
	switch {
	case r == eof:
		return nil
	case r == 'x':
		// "xN" & "x N" are multipliers, "xenon" is a name.
		if isNameStart(l.Peek()) {
			return l.LexWord
		}
		l.Emit(TokenX)
	case r == '[':
		l.Emit(TokenLeftBracket)
	case r == ']':
		l.Emit(TokenRightBracket)
	case r == '\t':
		l.Emit(TokenTab)
	case r == ' ':
		l.Emit(TokenSpace)
	case r == ',':
		l.Emit(TokenComma)
	case r == '\n':
		l.EmitError(fmt.Errorf("%w at offset %d", ErrUnsupportedNewline, l.start))
	case isDigit(r):
		return l.LexDigits
	case isNameStart(r):
		return l.LexWord
	default:
		l.EmitError(fmt.Errorf("%w at offset %d: %q", ErrUnsupportedCharacter, l.start, r))
	}

	return l.LexToken
}

// LexWord consumes a name fragment; digits are accepted once inside a word ("Y-T8").
func (l *Lexer) LexWord() NextOperation {
	l.AcceptWhile(isNameChar)
	l.Emit(TokenWord)

	return l.LexToken
}

// LexDigits consumes a run of decimal digits.
func (l *Lexer) LexDigits() NextOperation {
	l.AcceptWhile(isDigit)
	l.Emit(TokenDigits)

	return l.LexToken
}

// Next return the Next rune in the source.
func (l *Lexer) Next() (r rune) {
	if l.pos >= len(l.source) {
		l.width = 0
		return eof
	}

	r, l.width = utf8.DecodeRuneInString(l.source[l.pos:])
	l.pos += l.width

	return
}

// Peek return the next rune, without updating the position.
func (l *Lexer) Peek() (r rune) {
	r = l.Next()
	l.Backup()

	return
}

// Backup step back one rune.
//
// Can only be called once per call of Next.
func (l *Lexer) Backup() { l.pos -= l.width }

// Discard the source content before the current position.
func (l *Lexer) Discard() { l.start = l.pos }

// AcceptWhile consumes runes while condition is true.
func (l *Lexer) AcceptWhile(fn ValidationFunction) {
	for fn(l.Next()) {
	}
	l.Backup()
}

// Emit appends a Token for the current lexeme.
func (l *Lexer) Emit(id TokenID) {
	t := Token{ID: id, Pos: l.start}
	if id == TokenWord || id == TokenDigits {
		t.Val = l.source[l.start:l.pos]
	}

	if l.debug {
		l.logger.Debugf("lexer Emit: %v at %d", t, t.Pos)
	}

	l.tokens = append(l.tokens, t)
	l.Discard()
}

// EmitError records a lexing error & skips the offending lexeme.
func (l *Lexer) EmitError(err error) {
	if l.debug {
		l.logger.Debugf("lexer error: %v", err)
	}

	l.errs = append(l.errs, err)
	l.Discard()
}

// isDigit return true for an ASCII decimal digit.
func isDigit(r rune) bool { return '0' <= r && r <= '9' }

// isNameStart return true for runes that may begin a name fragment.
func isNameStart(r rune) bool {
	if r >= 0 && r < utf8.RuneSelf && nameSymbols[r] {
		return true
	}

	return unicode.IsLetter(r)
}

// isNameChar return true for runes that may continue a name fragment.
func isNameChar(r rune) bool { return isNameStart(r) || isDigit(r) }

// Error is the error interface implementation for Errors; messages are "; " separated.
func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for index := range e {
		msgs[index] = e[index].Error()
	}

	return strings.Join(msgs, "; ")
}

// Unwrap obtains the individual lexing errors.
func (e Errors) Unwrap() []error { return e }
