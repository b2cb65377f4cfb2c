// SPDX-License-Identifier: MIT
package eveitems

import "testing"

func TestMultibuy(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		want  string
	}{
		{name: "empty", items: nil, want: ""},
		{name: "single", items: []Item{{"Paladin", 1}}, want: "Paladin x1"},
		{
			name:  "multiple",
			items: []Item{{"Paladin", 2}, {"Republic Fleet EMP S", 3200}},
			want:  "Paladin x2\nRepublic Fleet EMP S x3200",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Multibuy(tt.items); got != tt.want {
				t.Errorf("Multibuy() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTabular(t *testing.T) {
	items := []ItemWithID{
		{Item{"Paladin", 2}, 28659},
		{Item{"Scorch L", 1}, 12820},
	}

	if got, want := Tabular(items), "Paladin\t2\nScorch L\t1"; got != want {
		t.Errorf("Tabular() = %q, want %q", got, want)
	}
}

func TestMultibuy_roundTrip(t *testing.T) {
	items := []Item{{"Paladin", 2}, {"Shield Harmonizing Charge", 1}, {"Tritanium", 3200189}}

	for name, render := range map[string]func([]Item) string{
		"multibuy": Multibuy[Item],
		"tabular":  Tabular[Item],
	} {
		got, err := Parse(render(items))
		if err != nil {
			t.Errorf("%s: Parse() error = %v", name, err)
			continue
		}
		if len(got) != len(items) {
			t.Errorf("%s: Parse() = %v, want %v", name, got, items)
			continue
		}
		for index := range items {
			if got[index] != items[index] {
				t.Errorf("%s: Parse()[%d] = %v, want %v", name, index, got[index], items[index])
			}
		}
	}
}
