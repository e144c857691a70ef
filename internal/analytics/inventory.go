package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"retail-dashboard/internal/core"
)

// InventoryMetrics summarizes cost of goods sold against stock on hand.
// Ratio is nil when the inventory value is zero: with no stock the
// turnover rate is not computable, which is different from a turnover of
// zero and must stay distinguishable for display.
type InventoryMetrics struct {
	COGS           decimal.Decimal  `json:"cogs"`
	InventoryValue decimal.Decimal  `json:"inventory_value"`
	Ratio          *decimal.Decimal `json:"ratio,omitempty"`
}

// InventoryTurnover approximates COGS as Σ(total_amount − gain) over all
// sales and inventory value as Σ(stock × price) over the catalog.
func InventoryTurnover(products []core.Product, sales []core.Sale) InventoryMetrics {
	var m InventoryMetrics
	for _, s := range sales {
		m.COGS = m.COGS.Add(s.TotalAmount.Sub(s.Gain))
	}
	for _, p := range products {
		m.InventoryValue = m.InventoryValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
	}
	if m.InventoryValue.IsPositive() {
		ratio := m.COGS.Div(m.InventoryValue)
		m.Ratio = &ratio
	}
	return m
}

// ProductMovement is one row of the slow-movers report.
type ProductMovement struct {
	Key          string `json:"key"`
	Name         string `json:"name"`
	QuantitySold int    `json:"quantity_sold"`
	Stock        int    `json:"stock"`
}

// DefaultSlowMoverCount is the report size when the caller passes n <= 0.
const DefaultSlowMoverCount = 8

// SlowMovers returns the n least-sold products. The sold quantities are
// unioned with the full catalog so never-sold products appear with zero,
// and sold lines that match no catalog product appear under their own
// name. Sorting is ascending by quantity with ties kept in catalog order.
func SlowMovers(products []core.Product, sales []core.Sale, n int) []ProductMovement {
	if n <= 0 {
		n = DefaultSlowMoverCount
	}
	ix := newCatalogIndex(products)

	entries := make([]*ProductMovement, 0, len(products))
	byKey := make(map[string]*ProductMovement, len(products))

	// Catalog first, in catalog order, so equal-quantity ties preserve it.
	for _, p := range products {
		key := RefByID(p.ID).key()
		e := &ProductMovement{Key: key, Name: p.Name, Stock: p.Stock}
		byKey[key] = e
		if p.Name != "" {
			name := RefByName(p.Name).key()
			if _, taken := byKey[name]; !taken {
				byKey[name] = e // name-only lines for this product fold into the same row
			}
		}
		entries = append(entries, e)
	}

	for _, s := range sales {
		for _, l := range s.Lines {
			key := lineRef(l).key()
			e, seen := byKey[key]
			if !seen {
				e = &ProductMovement{Key: key, Name: ix.displayName(l)}
				byKey[key] = e
				entries = append(entries, e)
			}
			e.QuantitySold += l.Quantity
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].QuantitySold < entries[j].QuantitySold
	})
	if len(entries) > n {
		entries = entries[:n]
	}

	out := make([]ProductMovement, len(entries))
	for i, e := range entries {
		out[i] = *e
	}
	return out
}

// CategoryStock is one row of the stock-by-category report. DaysLeft is
// nil when the trailing average daily sales are zero: stock that never
// moves lasts indefinitely, a sentinel distinct from any finite estimate.
type CategoryStock struct {
	Category      string           `json:"category"`
	Stock         int              `json:"stock"`
	Value         decimal.Decimal  `json:"value"`
	AvgDailyUnits decimal.Decimal  `json:"avg_daily_units"`
	DaysLeft      *decimal.Decimal `json:"days_left,omitempty"`
}

// stockTrailingDays is the window used to estimate average daily sales.
const stockTrailingDays = 30

// StockByCategory sums stock quantity and value per catalog category and
// estimates days of stock remaining from the trailing 30 days of sales.
// Rows are sorted by stock descending.
func StockByCategory(products []core.Product, sales []core.Sale, now time.Time) []CategoryStock {
	ix := newCatalogIndex(products)

	totals := make(map[string]*CategoryStock)
	var order []string
	for _, p := range products {
		cat := p.Category
		if cat == "" {
			cat = Uncategorized
		}
		c, seen := totals[cat]
		if !seen {
			c = &CategoryStock{Category: cat}
			totals[cat] = c
			order = append(order, cat)
		}
		c.Stock += p.Stock
		c.Value = c.Value.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
	}

	windowStart := now.AddDate(0, 0, -stockTrailingDays)
	unitsSold := make(map[string]int)
	for _, s := range sales {
		if !inWindow(s.SaleDate, windowStart, now) {
			continue
		}
		for _, l := range s.Lines {
			unitsSold[ix.category(lineRef(l))] += l.Quantity
		}
	}

	days := decimal.NewFromInt(stockTrailingDays)
	out := make([]CategoryStock, 0, len(order))
	for _, cat := range order {
		c := totals[cat]
		// DaysLeft divides by the exact trailing average; AvgDailyUnits
		// is rounded for display only.
		avgDaily := decimal.NewFromInt(int64(unitsSold[cat])).Div(days)
		c.AvgDailyUnits = avgDaily.Round(2)
		if avgDaily.IsPositive() {
			daysLeft := decimal.NewFromInt(int64(c.Stock)).Div(avgDaily).Round(1)
			c.DaysLeft = &daysLeft
		}
		out = append(out, *c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Stock > out[j].Stock
	})
	return out
}
