// SPDX-License-Identifier: MIT

// Package sde provides the lookup between item names & their numeric type identifiers, built
// from the game's static data export (invTypes.csv).
package sde

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"gitlab.com/fisherprime/eveitems/types"
)

type (
	// Table is an immutable name <-> type ID lookup.
	//
	// Synchronization is unnecessary, the table is never modified after Load.
	Table struct {
		names *types.Bimap[string, uint64]
	}
)

const (
	idHeader   = "typeID"
	nameHeader = "typeName"

	// Column positions in the upstream invTypes.csv, used when the header lacks the names.
	defIDColumn   = 0
	defNameColumn = 2

	defTableSize = 1 << 10
)

// Lookup table errors.
var (
	ErrEmptySource = errors.New("empty type source")
	ErrInvalidRow  = errors.New("invalid type row")
)

//go:embed data/invTypes.csv
var invTypes []byte

var (
	defTable     *Table
	defTableOnce sync.Once
)

// Default obtains the Table built from the embedded invTypes.csv excerpt.
//
// The excerpt holds a few dozen types, most items are unknown to it; use LoadFile with a full
// static data export to resolve arbitrary names. The table is built on first use.
func Default() *Table {
	defTableOnce.Do(func() {
		var err error
		if defTable, err = Load(bytes.NewReader(invTypes)); err != nil {
			// The embedded data is part of the build.
			panic(fmt.Sprintf("sde: embedded invTypes.csv: %v", err))
		}
	})

	return defTable
}

// LoadFile builds a Table from an invTypes.csv file.
func LoadFile(path string) (t *Table, err error) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	if t, err = Load(f); err != nil {
		err = fmt.Errorf("%s: %w", path, err)
	}

	return
}

// Load builds a Table from CSV data whose first row is a header.
//
// Names appearing on multiple rows map to their highest type ID; only that ID maps back to
// the name.
func Load(r io.Reader) (t *Table, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = ErrEmptySource
		}
		return
	}
	idCol, nameCol := columns(header)

	t = &Table{names: types.NewBimap[string, uint64](defTableSize)}
	for row := 2; ; row++ {
		var record []string
		if record, err = reader.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
				break
			}
			t = nil
			return
		}

		if len(record) <= idCol || len(record) <= nameCol {
			t, err = nil, fmt.Errorf("%w %d: %d columns", ErrInvalidRow, row, len(record))
			return
		}

		name := strings.TrimSpace(record[nameCol])
		if name == "" {
			continue
		}

		var id uint64
		if id, err = strconv.ParseUint(strings.TrimSpace(record[idCol]), 10, 64); err != nil {
			t, err = nil, fmt.Errorf("%w %d: %v", ErrInvalidRow, row, err)
			return
		}

		if prev, ok := t.names.Value(name); ok && prev > id {
			continue
		}
		t.names.Put(name, id)
	}

	return
}

// columns locates the type ID & name columns in the header.
func columns(header []string) (idCol, nameCol int) {
	idCol, nameCol = defIDColumn, defNameColumn

	for index, column := range header {
		switch strings.TrimSpace(strings.TrimPrefix(column, "\ufeff")) {
		case idHeader:
			idCol = index
		case nameHeader:
			nameCol = index
		}
	}

	return
}

// ID obtains the type ID for an item name.
func (t *Table) ID(name string) (uint64, bool) { return t.names.Value(name) }

// Name obtains the item name for a type ID.
func (t *Table) Name(id uint64) (string, bool) { return t.names.Key(id) }

// Len is the number of names in the Table.
func (t *Table) Len() int { return t.names.Len() }

// Names lists the item names in ascending order.
func (t *Table) Names() []string { return t.names.Keys() }
