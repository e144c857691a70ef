package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"retail-dashboard/internal/core"
)

// Overview holds the KPI card figures at the top of the reports screen.
type Overview struct {
	TotalRevenue decimal.Decimal  `json:"total_revenue"`
	COGS         decimal.Decimal  `json:"cogs"`
	GrossGain    decimal.Decimal  `json:"gross_gain"`
	ATV          decimal.Decimal  `json:"atv"`
	Turnover     *decimal.Decimal `json:"turnover,omitempty"`
}

// Highlight names the most-sold product and the largest single sale for
// the home screen. Either field may be absent when there is no data.
type Highlight struct {
	MostSoldProduct string          `json:"most_sold_product,omitempty"`
	MostSoldUnits   int             `json:"most_sold_units,omitempty"`
	HighestSale     decimal.Decimal `json:"highest_sale"`
}

// Dashboard is the full view-model consumed by the reports screen: every
// derived metric computed from one snapshot of the three collections.
type Dashboard struct {
	Overview          Overview          `json:"overview"`
	RevenueByCategory []CategoryRevenue `json:"revenue_by_category"`
	Inventory         InventoryMetrics  `json:"inventory"`
	SlowMovers        []ProductMovement `json:"slow_movers"`
	Fulfillment       FulfillmentStats  `json:"fulfillment"`
	Growth            GrowthStats       `json:"growth"`
	MarginByCategory  []CategoryMargin  `json:"margin_by_category"`
	MarginByProduct   []ProductMargin   `json:"margin_by_product"`
	TopProducts       []ProductMargin   `json:"top_products"`
	StockByCategory   []CategoryStock   `json:"stock_by_category"`
	WeeklySeries      []WeekBucket      `json:"weekly_series"`
	Forecast          Forecast          `json:"forecast"`
	ATVSeries         []ATVPoint        `json:"atv_series"`
	Highlight         Highlight         `json:"highlight"`
}

// BuildDashboard runs every metric over the given snapshot. now anchors
// all time-windowed metrics so the whole payload is computed against one
// instant.
func BuildDashboard(products []core.Product, sales []core.Sale, orders []core.PurchaseOrder, now time.Time) Dashboard {
	inv := InventoryTurnover(products, sales)
	return Dashboard{
		Overview: Overview{
			TotalRevenue: TotalRevenue(sales),
			COGS:         inv.COGS,
			GrossGain:    GrossGain(sales),
			ATV:          AverageTransactionValue(sales),
			Turnover:     inv.Ratio,
		},
		RevenueByCategory: RevenueByCategory(products, sales),
		Inventory:         inv,
		SlowMovers:        SlowMovers(products, sales, DefaultSlowMoverCount),
		Fulfillment:       OrderFulfillment(orders),
		Growth:            SalesGrowth(sales, now),
		MarginByCategory:  MarginByCategory(products, sales),
		MarginByProduct:   MarginByProduct(products, sales),
		TopProducts:       TopProfitProducts(products, sales),
		StockByCategory:   StockByCategory(products, sales, now),
		WeeklySeries:      WeeklyPurchasesVsSales(sales, orders, now),
		Forecast:          SalesForecast(sales, now),
		ATVSeries:         ATVSeries(sales, now),
		Highlight:         BuildHighlight(products, sales),
	}
}

// BuildHighlight finds the product with the most units sold and the
// largest single sale by stored total. Ties keep the first encountered.
func BuildHighlight(products []core.Product, sales []core.Sale) Highlight {
	ix := newCatalogIndex(products)

	sold := make(map[string]int)
	names := make(map[string]string)
	var order []string
	for _, s := range sales {
		for _, l := range s.Lines {
			key := lineRef(l).key()
			if _, seen := sold[key]; !seen {
				order = append(order, key)
				names[key] = ix.displayName(l)
			}
			sold[key] += l.Quantity
		}
	}

	var h Highlight
	for _, key := range order {
		if sold[key] > h.MostSoldUnits {
			h.MostSoldUnits = sold[key]
			h.MostSoldProduct = names[key]
		}
	}
	for _, s := range sales {
		if s.TotalAmount.GreaterThan(h.HighestSale) {
			h.HighestSale = s.TotalAmount
		}
	}
	return h
}
