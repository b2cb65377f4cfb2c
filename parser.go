// SPDX-License-Identifier: MIT

// Package eveitems converts text copied from the game's cargo, fitting, contract & multibuy
// windows into a list of items & quantities.
package eveitems

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/davecgh/go-spew/spew"

	"gitlab.com/fisherprime/eveitems/lexer"
)

type (
	// Parser parses batches of pasted lines.
	//
	// A Parser holds no per-call state & is safe for concurrent use.
	Parser struct {
		cfg *Config
	}

	// LineError is the failure of a single line.
	LineError struct {
		Err error
		// Line is the zero-based index of the line in the input.
		Line int
	}

	// BatchError aggregates the failures of every line in a batch.
	BatchError struct {
		Lines []*LineError
	}

	lineResult struct {
		err   error
		items []Item
	}
)

// Batch errors.
var (
	ErrParse       = errors.New("failed to parse items")
	ErrUnknownName = errors.New("unknown item name")
)

var defParser = New()

// Parse parses text using the default Parser.
func Parse(text string) ([]Item, error) { return defParser.Parse(context.Background(), text) }

// ParseWithID parses text using the default Parser & joins the items with their type IDs.
//
// The default Parser resolves names against the sde.Default excerpt only.
func ParseWithID(text string) ([]ItemWithID, error) {
	return defParser.ParseWithID(context.Background(), text)
}

// New instantiates a Parser.
func New(options ...Option) *Parser {
	p := &Parser{cfg: DefConfig()}

	for _, opt := range options {
		opt(p)
	}
	p.cfg.Validate()

	return p
}

// Config retrieves the Parser's Config.
func (p *Parser) Config() *Config { return p.cfg }

// Parse splits text into lines & parses every non-blank line.
//
// The result preserves line order; a module precedes its loaded charge. If any line fails, no
// items are returned & the error is a *BatchError describing every failing line.
func (p *Parser) Parse(ctx context.Context, text string) (items []Item, err error) {
	lines := strings.Split(text, "\n")
	results := make([]lineResult, len(lines))

	if p.cfg.Pool != nil && len(lines) > 1 {
		err = p.parsePooled(ctx, lines, results)
	} else {
		err = p.parseSequential(ctx, lines, results)
	}
	if err != nil {
		return
	}

	var batch BatchError
	items = make([]Item, 0, len(lines))
	for index := range results {
		if results[index].err != nil {
			batch.Lines = append(batch.Lines, &LineError{Line: index, Err: results[index].err})
			continue
		}
		items = append(items, results[index].items...)
	}

	if len(batch.Lines) > 0 {
		items, err = nil, &batch
		return
	}

	if p.cfg.Debug {
		p.cfg.Logger.Debugf("parsed %d items from %d lines", len(items), len(lines))
	}

	return
}

// ParseLine parses a single line, allowing callers to collect partial results.
func (p *Parser) ParseLine(line string) ([]Item, error) {
	resl := p.parseLine(0, line)
	return resl.items, resl.err
}

// ParseWithID performs Parse & joins every item with its type ID.
//
// An unknown name fails the whole batch. The default table (sde.Default) is an excerpt of the
// static data export covering few items; configure a full invTypes.csv with WithTable &
// sde.LoadFile to resolve arbitrary items.
func (p *Parser) ParseWithID(ctx context.Context, text string) (items []ItemWithID, err error) {
	parsed, err := p.Parse(ctx, text)
	if err != nil {
		return
	}

	var unknown []string
	items = make([]ItemWithID, 0, len(parsed))
	for _, item := range parsed {
		id, ok := p.cfg.Table.ID(item.Name)
		if !ok {
			unknown = append(unknown, strconv.Quote(item.Name))
			continue
		}
		items = append(items, ItemWithID{Item: item, TypeID: id})
	}

	if len(unknown) > 0 {
		items, err = nil, fmt.Errorf("%w: %s", ErrUnknownName, strings.Join(unknown, ", "))
	}

	return
}

func (p *Parser) parseSequential(ctx context.Context, lines []string, results []lineResult) error {
	for index := range lines {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			results[index] = p.parseLine(index, lines[index])
		}
	}

	return nil
}

// parsePooled fans the lines out over the configured pool; each goroutine writes its own slot.
func (p *Parser) parsePooled(ctx context.Context, lines []string, results []lineResult) (err error) {
	wg := new(sync.WaitGroup)
	defer wg.Wait()

	for index := range lines {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		index := index
		task := func() { results[index] = p.parseLine(index, lines[index]) }

		wg.Add(1)
		if submitErr := p.cfg.Pool.Submit(func() { defer wg.Done(); task() }); submitErr != nil {
			// Overloaded or released pool.
			if p.cfg.Debug {
				p.cfg.Logger.Debugf("pool submit for line %d: %v", index, submitErr)
			}
			task()
			wg.Done()
		}
	}

	return
}

// parseLine tokenizes & parses one line; blank lines yield no items.
func (p *Parser) parseLine(index int, line string) (resl lineResult) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	l := lexer.New(line, lexer.WithLogger(p.cfg.Logger), lexer.WithDebug(p.cfg.Debug))
	tokens, err := l.Lex()
	if err != nil {
		resl.err = err
		return
	}

	g := grammar{tokens: tokens}
	if resl.items, resl.err = g.item(false); resl.err != nil && p.cfg.Debug {
		// Skip expensive operation if not debug.
		p.cfg.Logger.Debugf("line %d: %v\ntokens: %s", index, resl.err, spew.Sdump(tokens))
	}

	return
}

// Error is the error interface implementation for LineError.
func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

// Unwrap obtains the underlying error.
func (e *LineError) Unwrap() error { return e.Err }

// Error is the error interface implementation for BatchError.
func (e *BatchError) Error() string {
	var buffer strings.Builder
	buffer.WriteString(ErrParse.Error())

	for index, lineErr := range e.Lines {
		if index == 0 {
			buffer.WriteString(": ")
		} else {
			buffer.WriteString("; ")
		}
		buffer.WriteString(lineErr.Error())
	}

	return buffer.String()
}

// Unwrap obtains ErrParse & the line errors.
func (e *BatchError) Unwrap() []error {
	errs := make([]error, 0, len(e.Lines)+1)
	errs = append(errs, ErrParse)
	for _, lineErr := range e.Lines {
		errs = append(errs, lineErr)
	}

	return errs
}
