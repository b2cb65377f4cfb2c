// SPDX-License-Identifier: MIT
package eveitems

import (
	"fmt"
	"strings"
)

type (
	// Item is a parsed inventory entry.
	Item struct {
		Name     string `json:"name"`
		Quantity int64  `json:"quantity"`
	}

	// ItemWithID is an Item joined with its type ID.
	ItemWithID struct {
		Item
		TypeID uint64 `json:"type_id"`
	}

	// Entry is implemented by Item & ItemWithID.
	Entry interface {
		base() Item
	}
)

func (i Item) base() Item { return i }

// String renders the Item as "name xQuantity".
func (i Item) String() string { return fmt.Sprintf("%s x%d", i.Name, i.Quantity) }

// Multibuy renders entries as "name xQuantity" lines, the format accepted by the multibuy
// window.
func Multibuy[E Entry](entries []E) string {
	return render(entries, func(buffer *strings.Builder, i Item) {
		buffer.WriteString(i.String())
	})
}

// Tabular renders entries as "name<TAB>quantity" lines.
func Tabular[E Entry](entries []E) string {
	return render(entries, func(buffer *strings.Builder, i Item) {
		fmt.Fprintf(buffer, "%s\t%d", i.Name, i.Quantity)
	})
}

func render[E Entry](entries []E, line func(*strings.Builder, Item)) string {
	var buffer strings.Builder
	for index := range entries {
		if index > 0 {
			buffer.WriteByte('\n')
		}
		line(&buffer, entries[index].base())
	}

	return buffer.String()
}
