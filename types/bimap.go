// SPDX-License-Identifier: MIT
package types

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Constraint is a wrapper interface containing comparable & constraints.Ordered.
type Constraint interface {
	comparable
	constraints.Ordered
}

type (
	// Bimap is a one-to-one mapping between keys & values.
	//
	// Synchronization is unnecessary, the type is designed for single write multiple read.
	Bimap[K, V Constraint] struct {
		forward map[K]V
		reverse map[V]K
	}
)

// NewBimap instantiates a Bimap.
func NewBimap[K, V Constraint](size int) *Bimap[K, V] {
	return &Bimap[K, V]{
		forward: make(map[K]V, size),
		reverse: make(map[V]K, size),
	}
}

// Put maps key to value, replacing any previous pairing of either.
func (b *Bimap[K, V]) Put(key K, value V) {
	if old, ok := b.forward[key]; ok {
		delete(b.reverse, old)
	}
	if old, ok := b.reverse[value]; ok {
		delete(b.forward, old)
	}

	b.forward[key] = value
	b.reverse[value] = key
}

// Value obtains the value mapped to key.
func (b *Bimap[K, V]) Value(key K) (value V, ok bool) {
	value, ok = b.forward[key]
	return
}

// Key obtains the key mapped to value.
func (b *Bimap[K, V]) Key(value V) (key K, ok bool) {
	key, ok = b.reverse[value]
	return
}

// Len is the number of pairs in the Bimap.
func (b *Bimap[K, V]) Len() int { return len(b.forward) }

// Keys lists the keys in ascending order.
func (b *Bimap[K, V]) Keys() (keys []K) {
	keys = make([]K, 0, len(b.forward))
	for key := range b.forward {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	return
}
