// Package catalog indexes product metadata by identifier and by ordinal
// position. The ordinal is the bridge between catalog identity and the ANN
// index, which addresses items by the row order the embeddings were built in.
package catalog

import (
	"fmt"
	"strings"
)

// Product is one catalog row. Extra holds auxiliary columns (image links etc.)
// preserved opaquely; the serving path never interprets them.
type Product struct {
	ID    string            `json:"product_id"`
	Title string            `json:"title"`
	Extra map[string]string `json:"extra,omitempty"`
}

type Catalog struct {
	products    []Product
	idToRow     map[string]int
	idToOrdinal map[string]int
}

// New builds the catalog indexes from rows in load order. IDs must be unique:
// the ANN index was built against exactly this ordering, and a duplicate would
// silently remap ordinals to wrong neighbors.
func New(products []Product) (*Catalog, error) {
	idToRow := make(map[string]int, len(products))
	idToOrdinal := make(map[string]int, len(products))
	for i, p := range products {
		if _, exists := idToRow[p.ID]; exists {
			return nil, fmt.Errorf("duplicate product id %q at row %d", p.ID, i)
		}
		idToRow[p.ID] = i
		idToOrdinal[p.ID] = i
	}
	return &Catalog{
		products:    products,
		idToRow:     idToRow,
		idToOrdinal: idToOrdinal,
	}, nil
}

// Len returns the number of catalog rows
func (c *Catalog) Len() int {
	return len(c.products)
}

// GetTitle returns the stored title for the id, or the id itself when the id
// is not in the catalog. It is total: stale similarity-map references still
// get a renderable label.
func (c *Catalog) GetTitle(id string) string {
	if row, ok := c.idToRow[id]; ok && c.products[row].Title != "" {
		return c.products[row].Title
	}
	return id
}

// Lookup returns the record for the id
func (c *Catalog) Lookup(id string) (Product, bool) {
	row, ok := c.idToRow[id]
	if !ok {
		return Product{}, false
	}
	return c.products[row], true
}

// Search matches query as a case-insensitive substring of titles, preserving
// catalog load order, truncated to limit. An empty query returns the first
// limit records as the default view. Records without a title never match.
func (c *Catalog) Search(query string, limit int) []Product {
	if limit <= 0 {
		return []Product{}
	}

	matches := make([]Product, 0, limit)
	if query == "" {
		for _, p := range c.products {
			matches = append(matches, p)
			if len(matches) == limit {
				break
			}
		}
		return matches
	}

	needle := strings.ToLower(query)
	for _, p := range c.products {
		if p.Title == "" {
			continue
		}
		if strings.Contains(strings.ToLower(p.Title), needle) {
			matches = append(matches, p)
			if len(matches) == limit {
				break
			}
		}
	}
	return matches
}

// OrdinalOf returns the ANN ordinal for the id
func (c *Catalog) OrdinalOf(id string) (int, bool) {
	ordinal, ok := c.idToOrdinal[id]
	return ordinal, ok
}

// IDAt returns the id at the given ordinal, the reverse of OrdinalOf
func (c *Catalog) IDAt(ordinal int) (string, bool) {
	if ordinal < 0 || ordinal >= len(c.products) {
		return "", false
	}
	return c.products[ordinal].ID, true
}
