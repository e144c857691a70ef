package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"retail-dashboard/internal/core"
)

var hundred = decimal.NewFromInt(100)

// lineAmount is sale_price × quantity for one line.
func lineAmount(l core.SaleLine) decimal.Decimal {
	return l.SalePrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// TotalRevenue sums the stored header totals of all sales.
//
// Note this and LineRevenue are deliberately separate paths: header totals
// are captured at the register and line items are recomputed here, and the
// two can diverge (e.g. a whole-ticket discount entered on the header
// only). Neither is reconciled against the other.
func TotalRevenue(sales []core.Sale) decimal.Decimal {
	var total decimal.Decimal
	for _, s := range sales {
		total = total.Add(s.TotalAmount)
	}
	return total
}

// LineRevenue recomputes total revenue from line items across all sales.
func LineRevenue(sales []core.Sale) decimal.Decimal {
	var total decimal.Decimal
	for _, s := range sales {
		for _, l := range s.Lines {
			total = total.Add(lineAmount(l))
		}
	}
	return total
}

// GrossGain sums the stored gain of all sales.
func GrossGain(sales []core.Sale) decimal.Decimal {
	var total decimal.Decimal
	for _, s := range sales {
		total = total.Add(s.Gain)
	}
	return total
}

// AverageTransactionValue is mean stored revenue per sale. No sales means
// zero revenue, so the result is zero by convention rather than undefined.
func AverageTransactionValue(sales []core.Sale) decimal.Decimal {
	if len(sales) == 0 {
		return decimal.Zero
	}
	return TotalRevenue(sales).Div(decimal.NewFromInt(int64(len(sales))))
}

// CategoryRevenue is one row of the revenue-by-category report.
type CategoryRevenue struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// RevenueByCategory accumulates line revenue per product category,
// resolving each line by product id and falling back to name. Lines that
// resolve to nothing land in the Uncategorized bucket. Rows are sorted by
// total descending; equal totals keep first-seen order so the result is
// deterministic.
func RevenueByCategory(products []core.Product, sales []core.Sale) []CategoryRevenue {
	ix := newCatalogIndex(products)

	totals := make(map[string]decimal.Decimal)
	var order []string
	for _, s := range sales {
		for _, l := range s.Lines {
			cat := ix.category(lineRef(l))
			if _, seen := totals[cat]; !seen {
				order = append(order, cat)
			}
			totals[cat] = totals[cat].Add(lineAmount(l))
		}
	}

	out := make([]CategoryRevenue, 0, len(order))
	for _, cat := range order {
		out = append(out, CategoryRevenue{Category: cat, Total: totals[cat]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})
	return out
}

// CategoryMargin is one row of the margin-by-category report.
type CategoryMargin struct {
	Category  string          `json:"category"`
	Gain      decimal.Decimal `json:"gain"`
	Revenue   decimal.Decimal `json:"revenue"`
	MarginPct decimal.Decimal `json:"margin_pct"`
}

// ProductMargin is one row of the margin-by-product report.
type ProductMargin struct {
	Key       string          `json:"key"`
	Name      string          `json:"name"`
	Gain      decimal.Decimal `json:"gain"`
	Revenue   decimal.Decimal `json:"revenue"`
	MarginPct decimal.Decimal `json:"margin_pct"`
}

// allocatedGain distributes a sale's stored gain across one of its lines
// in proportion to the line's share of the stored sale total. A zero sale
// total would divide by zero, so such lines contribute no gain.
func allocatedGain(s core.Sale, l core.SaleLine) decimal.Decimal {
	if !s.TotalAmount.IsPositive() {
		return decimal.Zero
	}
	return lineAmount(l).Div(s.TotalAmount).Mul(s.Gain)
}

// marginPct is 100 × gain ÷ revenue, zero when there is no revenue.
func marginPct(gain, revenue decimal.Decimal) decimal.Decimal {
	if !revenue.IsPositive() {
		return decimal.Zero
	}
	return gain.Div(revenue).Mul(hundred)
}

// MarginByCategory aggregates allocated gain and line revenue per category
// and derives the margin percentage, sorted by margin descending.
func MarginByCategory(products []core.Product, sales []core.Sale) []CategoryMargin {
	ix := newCatalogIndex(products)

	type acc struct{ gain, revenue decimal.Decimal }
	totals := make(map[string]*acc)
	var order []string
	for _, s := range sales {
		for _, l := range s.Lines {
			cat := ix.category(lineRef(l))
			a, seen := totals[cat]
			if !seen {
				a = &acc{}
				totals[cat] = a
				order = append(order, cat)
			}
			a.gain = a.gain.Add(allocatedGain(s, l))
			a.revenue = a.revenue.Add(lineAmount(l))
		}
	}

	out := make([]CategoryMargin, 0, len(order))
	for _, cat := range order {
		a := totals[cat]
		out = append(out, CategoryMargin{
			Category:  cat,
			Gain:      a.gain,
			Revenue:   a.revenue,
			MarginPct: marginPct(a.gain, a.revenue),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MarginPct.GreaterThan(out[j].MarginPct)
	})
	return out
}

// MarginByProduct aggregates allocated gain and line revenue per product,
// keyed by catalog id with lower-cased name fallback, sorted by gain
// descending.
func MarginByProduct(products []core.Product, sales []core.Sale) []ProductMargin {
	ix := newCatalogIndex(products)

	totals := make(map[string]*ProductMargin)
	var order []string
	for _, s := range sales {
		for _, l := range s.Lines {
			key := lineRef(l).key()
			m, seen := totals[key]
			if !seen {
				m = &ProductMargin{Key: key, Name: ix.displayName(l)}
				totals[key] = m
				order = append(order, key)
			}
			m.Gain = m.Gain.Add(allocatedGain(s, l))
			m.Revenue = m.Revenue.Add(lineAmount(l))
		}
	}

	out := make([]ProductMargin, 0, len(order))
	for _, key := range order {
		m := totals[key]
		m.MarginPct = marginPct(m.Gain, m.Revenue)
		out = append(out, *m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Gain.GreaterThan(out[j].Gain)
	})
	return out
}

// topProfitCount is how many products the "most profitable" card shows.
const topProfitCount = 5

// TopProfitProducts returns the top products by allocated gain.
func TopProfitProducts(products []core.Product, sales []core.Sale) []ProductMargin {
	margins := MarginByProduct(products, sales)
	if len(margins) > topProfitCount {
		margins = margins[:topProfitCount]
	}
	return margins
}
