// Package analytics computes the dashboard's derived metrics from already
// fetched product, sale, and purchase-order snapshots.
//
// Every function here is pure and total: no stored state, no clock reads
// (callers pass "now" explicitly), no errors — degenerate inputs produce
// the documented zero/empty/sentinel results instead. Two invocations
// with the same inputs return identical outputs and never mutate their
// arguments.
package analytics

import (
	"strconv"
	"strings"

	"retail-dashboard/internal/core"
)

// Uncategorized is the bucket for lines whose product cannot be resolved
// against the catalog, and for products without a category.
const Uncategorized = "Uncategorized"

// unknownProduct is the display name for sold items that match nothing in
// the catalog and carried no name of their own.
const unknownProduct = "Unknown"

type refKind int

const (
	refNone refKind = iota
	refByID
	refByName
)

// ProductRef identifies which catalog product a sale line refers to.
// It is a tagged union: a line either carries a product id, or only a
// display name, or nothing usable at all. Keeping the variants explicit
// makes resolution exhaustive instead of a chain of truthiness checks.
type ProductRef struct {
	kind refKind
	id   int
	name string
}

// RefByID references a product by catalog id.
func RefByID(id int) ProductRef { return ProductRef{kind: refByID, id: id} }

// RefByName references a product by display name, matched case-insensitively.
func RefByName(name string) ProductRef { return ProductRef{kind: refByName, name: name} }

// lineRef builds the ProductRef for a sale line, preferring the id.
func lineRef(l core.SaleLine) ProductRef {
	switch {
	case l.ProductID != nil:
		return RefByID(*l.ProductID)
	case l.ProductName != "":
		return RefByName(l.ProductName)
	default:
		return ProductRef{}
	}
}

// key returns the grouping key for per-product aggregation: the catalog id
// when present, otherwise the lower-cased name. Unreferenced lines all
// share one sentinel bucket.
func (r ProductRef) key() string {
	switch r.kind {
	case refByID:
		return strconv.Itoa(r.id)
	case refByName:
		return strings.ToLower(r.name)
	default:
		return ""
	}
}

// catalogIndex resolves ProductRefs against a product snapshot.
type catalogIndex struct {
	byID   map[int]*core.Product
	byName map[string]*core.Product
}

func newCatalogIndex(products []core.Product) *catalogIndex {
	ix := &catalogIndex{
		byID:   make(map[int]*core.Product, len(products)),
		byName: make(map[string]*core.Product, len(products)),
	}
	for i := range products {
		p := &products[i]
		ix.byID[p.ID] = p
		if p.Name != "" {
			name := strings.ToLower(p.Name)
			if _, taken := ix.byName[name]; !taken {
				ix.byName[name] = p
			}
		}
	}
	return ix
}

// resolve returns the catalog product for a ref, or nil when it matches
// nothing (deleted product, free-text line, empty ref).
func (ix *catalogIndex) resolve(r ProductRef) *core.Product {
	switch r.kind {
	case refByID:
		return ix.byID[r.id]
	case refByName:
		return ix.byName[strings.ToLower(r.name)]
	default:
		return nil
	}
}

// category returns the product's category for a ref, degrading to the
// Uncategorized sentinel when the ref is unresolvable or the product has
// no category set.
func (ix *catalogIndex) category(r ProductRef) string {
	if p := ix.resolve(r); p != nil && p.Category != "" {
		return p.Category
	}
	return Uncategorized
}

// displayName returns the best display name for a sold line: the line's
// own captured name, then the catalog name, then the Unknown sentinel.
func (ix *catalogIndex) displayName(l core.SaleLine) string {
	if l.ProductName != "" {
		return l.ProductName
	}
	if p := ix.resolve(lineRef(l)); p != nil {
		return p.Name
	}
	return unknownProduct
}
