// Package catalog serves the static restaurant menu.
package catalog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/iliyamo/restaurant-booking/internal/model"
)

// Catalog is a read-only menu.  It is safe for concurrent use because it
// is never modified after construction.
type Catalog struct {
	categories []model.Category
	byID       map[string]model.MenuItem
}

// New indexes the given categories.  Item ids must be unique.
func New(categories []model.Category) *Catalog {
	c := &Catalog{categories: categories, byID: map[string]model.MenuItem{}}
	for _, cat := range categories {
		for _, sub := range cat.Subcategories {
			for _, it := range sub.Items {
				c.byID[it.ID] = it
			}
		}
	}
	return c
}

// Default returns the catalog built from the seed menu.
func Default() *Catalog { return New(Seed()) }

// Categories returns the full menu.
func (c *Catalog) Categories() []model.Category {
	return cloneCategories(c.categories)
}

// Find looks an item up by id.
func (c *Catalog) Find(id string) (model.MenuItem, bool) {
	it, ok := c.byID[id]
	return it, ok
}

// Len is the number of items on the menu.
func (c *Catalog) Len() int { return len(c.byID) }

// CategoryNames lists category names in menu order.
func (c *Catalog) CategoryNames() []string {
	out := make([]string, 0, len(c.categories))
	for _, cat := range c.categories {
		out = append(out, cat.Name)
	}
	return out
}

// Query narrows the menu.  Empty names match everything; name matching
// ignores case.
type Query struct {
	Category      string
	Subcategory   string
	VegOnly       bool
	AvailableOnly bool
}

// ParseQuery reads a Query from request parameters: category, sub, veg
// and available.  The two flags accept anything strconv.ParseBool does.
func ParseQuery(param func(name string) string) (Query, error) {
	q := Query{
		Category:    strings.TrimSpace(param("category")),
		Subcategory: strings.TrimSpace(param("sub")),
	}
	var err error
	if q.VegOnly, err = parseFlag(param("veg")); err != nil {
		return Query{}, errors.New("veg must be a boolean")
	}
	if q.AvailableOnly, err = parseFlag(param("available")); err != nil {
		return Query{}, errors.New("available must be a boolean")
	}
	return q, nil
}

func parseFlag(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

// Key is a canonical form of q.  Queries that Filter treats the same way
// have the same key.
func (q Query) Key() string {
	return fmt.Sprintf("cat=%s;sub=%s;veg=%t;avail=%t",
		strings.ToLower(q.Category), strings.ToLower(q.Subcategory), q.VegOnly, q.AvailableOnly)
}

// Filter returns the categories and subcategories that still hold items
// after applying q.  Empty groups are dropped.
func (c *Catalog) Filter(q Query) []model.Category {
	out := make([]model.Category, 0, len(c.categories))
	for _, cat := range c.categories {
		if q.Category != "" && !strings.EqualFold(cat.Name, q.Category) {
			continue
		}
		nc := model.Category{Name: cat.Name, Icon: cat.Icon}
		for _, sub := range cat.Subcategories {
			if q.Subcategory != "" && !strings.EqualFold(sub.Name, q.Subcategory) {
				continue
			}
			ns := model.SubCategory{Name: sub.Name}
			for _, it := range sub.Items {
				if q.VegOnly && !it.IsVeg {
					continue
				}
				if q.AvailableOnly && !it.Available {
					continue
				}
				ns.Items = append(ns.Items, it)
			}
			if len(ns.Items) > 0 {
				nc.Subcategories = append(nc.Subcategories, ns)
			}
		}
		if len(nc.Subcategories) > 0 {
			out = append(out, nc)
		}
	}
	return out
}

func cloneCategories(in []model.Category) []model.Category {
	out := make([]model.Category, len(in))
	for i, cat := range in {
		out[i] = model.Category{Name: cat.Name, Icon: cat.Icon, Subcategories: make([]model.SubCategory, len(cat.Subcategories))}
		for j, sub := range cat.Subcategories {
			out[i].Subcategories[j] = model.SubCategory{Name: sub.Name, Items: append([]model.MenuItem(nil), sub.Items...)}
		}
	}
	return out
}
