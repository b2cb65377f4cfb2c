// SPDX-License-Identifier: MIT
package types

import (
	"reflect"
	"testing"
)

func TestBimap_Put(t *testing.T) {
	type pair struct {
		key   string
		value uint64
	}

	tests := []struct {
		name     string
		puts     []pair
		wantKeys []string
		wantRev  map[uint64]string
	}{
		{
			name:     "distinct pairs",
			puts:     []pair{{"Rifter", 587}, {"Paladin", 28659}},
			wantKeys: []string{"Paladin", "Rifter"},
			wantRev:  map[uint64]string{587: "Rifter", 28659: "Paladin"},
		},
		{
			name:     "key remapped",
			puts:     []pair{{"Capsule", 670}, {"Capsule", 33328}},
			wantKeys: []string{"Capsule"},
			wantRev:  map[uint64]string{33328: "Capsule"},
		},
		{
			name:     "value remapped",
			puts:     []pair{{"Old Name", 34}, {"Tritanium", 34}},
			wantKeys: []string{"Tritanium"},
			wantRev:  map[uint64]string{34: "Tritanium"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBimap[string, uint64](len(tt.puts))
			for _, p := range tt.puts {
				b.Put(p.key, p.value)
			}

			if got := b.Keys(); !reflect.DeepEqual(got, tt.wantKeys) {
				t.Errorf("Bimap.Keys() = %v, want %v", got, tt.wantKeys)
			}
			if got := b.Len(); got != len(tt.wantRev) {
				t.Errorf("Bimap.Len() = %d, want %d", got, len(tt.wantRev))
			}

			for value, wantKey := range tt.wantRev {
				key, ok := b.Key(value)
				if !ok || key != wantKey {
					t.Errorf("Bimap.Key(%d) = %q, %v, want %q", value, key, ok, wantKey)
				}
				if gotValue, ok := b.Value(key); !ok || gotValue != value {
					t.Errorf("Bimap.Value(%q) = %d, %v, want %d", key, gotValue, ok, value)
				}
			}
		})
	}
}

func TestBimap_missing(t *testing.T) {
	b := NewBimap[string, uint64](0)

	if _, ok := b.Value("Paladin"); ok {
		t.Error("Bimap.Value() ok = true on an empty Bimap")
	}
	if _, ok := b.Key(28659); ok {
		t.Error("Bimap.Key() ok = true on an empty Bimap")
	}
	if got := b.Keys(); len(got) != 0 {
		t.Errorf("Bimap.Keys() = %v, want empty", got)
	}
}
