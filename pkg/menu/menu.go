// Package menu holds the static shawarma catalog.
package menu

import (
	"fmt"
	"sort"
	"strings"
)

// Item names form a closed set of four shawarma kinds.
const (
	Havov   = "havov"   // chicken
	Tavarov = "tavarov" // beef
	Banjar  = "banjar"  // vegetable
	Hatuk   = "hatuk"   // house special
)

// Item describes a single orderable shawarma.
type Item struct {
	Name            string `json:"name"`
	Price           int    `json:"price"`
	Available       bool   `json:"available"`
	PrepTimeMinutes int    `json:"prepTimeMinutes"`
}

// Catalog is the read-only set of orderable items. It is built once at
// startup and never mutated, so it needs no locking.
type Catalog struct {
	items map[string]Item
	names []string
}

// Default returns the stock Yerevan menu. Prices are in drams.
func Default() *Catalog {
	return New(
		Item{Name: Havov, Price: 1500, Available: true, PrepTimeMinutes: 3},
		Item{Name: Tavarov, Price: 1800, Available: true, PrepTimeMinutes: 4},
		Item{Name: Banjar, Price: 1200, Available: true, PrepTimeMinutes: 2},
		Item{Name: Hatuk, Price: 2200, Available: true, PrepTimeMinutes: 6},
	)
}

// New builds a catalog from the given items.
func New(items ...Item) *Catalog {
	c := &Catalog{items: make(map[string]Item, len(items))}
	for _, it := range items {
		c.items[it.Name] = it
		c.names = append(c.names, it.Name)
	}
	sort.Strings(c.names)
	return c
}

// All returns the full item mapping keyed by name.
func (c *Catalog) All() map[string]Item {
	out := make(map[string]Item, len(c.items))
	for name, it := range c.items {
		out[name] = it
	}
	return out
}

// Get returns the named item, or a NotFoundError listing the valid names.
func (c *Catalog) Get(name string) (Item, error) {
	it, ok := c.items[name]
	if !ok {
		return Item{}, &NotFoundError{Name: name, Options: c.Names()}
	}
	return it, nil
}

// Names returns the valid item names in sorted order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Has reports whether the named item is on the menu.
func (c *Catalog) Has(name string) bool {
	_, ok := c.items[name]
	return ok
}

// NotFoundError indicates an item name outside the catalog.
type NotFoundError struct {
	Name    string
	Options []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found. Options are: [%s]", e.Name, strings.Join(e.Options, ", "))
}
