// SPDX-License-Identifier: MIT
package sde

import (
	"errors"
	"strings"
	"testing"
)

func TestDefault_roundTrip(t *testing.T) {
	table := Default()
	if table.Len() == 0 {
		t.Fatal("Default() table is empty")
	}

	for _, name := range table.Names() {
		id, ok := table.ID(name)
		if !ok {
			t.Errorf("Table.ID(%q) not found", name)
			continue
		}

		if got, ok := table.Name(id); !ok || got != name {
			t.Errorf("Table.Name(%d) = %q, %v, want %q", id, got, ok, name)
		}
	}
}

func TestDefault_duplicateNames(t *testing.T) {
	table := Default()

	id, ok := table.ID("Capsule")
	if !ok || id != 33328 {
		t.Errorf("Table.ID(Capsule) = %d, %v, want 33328", id, ok)
	}
	if name, ok := table.Name(670); ok {
		t.Errorf("Table.Name(670) = %q, want not found", name)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantIDs map[string]uint64
		wantErr error
	}{
		{
			name:    "upstream column order",
			src:     "typeID,groupID,typeName\n34,18,Tritanium\n28659,900,Paladin\n",
			wantIDs: map[string]uint64{"Tritanium": 34, "Paladin": 28659},
		},
		{
			name:    "columns located by header",
			src:     "typeName,typeID\nRifter,587\n",
			wantIDs: map[string]uint64{"Rifter": 587},
		},
		{
			name:    "highest id wins regardless of row order",
			src:     "typeID,groupID,typeName\n33328,29,Capsule\n670,29,Capsule\n",
			wantIDs: map[string]uint64{"Capsule": 33328},
		},
		{
			name:    "quoted names & blank names",
			src:     "typeID,groupID,typeName\n1,1,\"Joe's, Paladin\"\n2,1,\n",
			wantIDs: map[string]uint64{"Joe's, Paladin": 1},
		},
		{
			name:    "empty source",
			src:     "",
			wantErr: ErrEmptySource,
		},
		{
			name:    "invalid id",
			src:     "typeID,groupID,typeName\nabc,1,Rifter\n",
			wantErr: ErrInvalidRow,
		},
		{
			name:    "short row",
			src:     "typeID,groupID,typeName\n587\n",
			wantErr: ErrInvalidRow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := Load(strings.NewReader(tt.src))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr != nil {
				return
			}

			if table.Len() != len(tt.wantIDs) {
				t.Errorf("Table.Len() = %d, want %d", table.Len(), len(tt.wantIDs))
			}
			for name, wantID := range tt.wantIDs {
				if id, ok := table.ID(name); !ok || id != wantID {
					t.Errorf("Table.ID(%q) = %d, %v, want %d", name, id, ok, wantID)
				}
			}
		})
	}
}

func TestLoadFile_missing(t *testing.T) {
	if _, err := LoadFile("testdata/does-not-exist.csv"); err == nil {
		t.Error("LoadFile() error = nil, want error")
	}
}
