package analytics_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"retail-dashboard/internal/analytics"
	"retail-dashboard/internal/core"
)

// Shared fixtures for the analytics tests.

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic("bad decimal literal " + s)
	}
	return v
}

func intPtr(v int) *int { return &v }

func date(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic("bad date literal " + value)
	}
	return t
}

var testNow = date("2025-06-15T12:00:00Z")

func widgetCatalog() []core.Product {
	return []core.Product{
		{ID: 1, Name: "Widget", Category: "Tools", Price: d("30"), Stock: 10},
		{ID: 2, Name: "Gadget", Category: "Tools", Price: d("45"), Stock: 4},
		{ID: 3, Name: "Beans", Category: "Groceries", Price: d("2.5"), Stock: 100},
	}
}

func saleOf(day string, total, gain string, lines ...core.SaleLine) core.Sale {
	return core.Sale{
		TotalAmount: d(total),
		Gain:        d(gain),
		SaleDate:    date(day),
		Lines:       lines,
	}
}

func TestRevenueByCategory_Scenario(t *testing.T) {
	products := []core.Product{
		{ID: 1, Name: "Widget", Category: "Tools", Price: d("30"), Stock: 10},
	}
	sales := []core.Sale{
		saleOf("2025-01-01T00:00:00Z", "100", "40",
			core.SaleLine{ProductID: intPtr(1), Quantity: 2, SalePrice: d("50")}),
	}

	got := analytics.RevenueByCategory(products, sales)
	if len(got) != 1 {
		t.Fatalf("expected 1 category, got %d", len(got))
	}
	if got[0].Category != "Tools" {
		t.Errorf("category: want Tools, got %s", got[0].Category)
	}
	if !got[0].Total.Equal(d("100")) {
		t.Errorf("total: want 100, got %s", got[0].Total)
	}
}

func TestRevenueByCategory_ConservesLineRevenue(t *testing.T) {
	products := widgetCatalog()
	sales := []core.Sale{
		saleOf("2025-06-10T10:00:00Z", "160", "60",
			core.SaleLine{ProductID: intPtr(1), Quantity: 2, SalePrice: d("50")},
			core.SaleLine{ProductID: intPtr(3), Quantity: 24, SalePrice: d("2.5")}),
		saleOf("2025-06-11T10:00:00Z", "45", "10",
			core.SaleLine{ProductName: "Gadget", Quantity: 1, SalePrice: d("45")}),
		// Line referencing nothing in the catalog: must still be counted,
		// under the Uncategorized bucket.
		saleOf("2025-06-12T10:00:00Z", "7", "2",
			core.SaleLine{ProductName: "Mystery Item", Quantity: 1, SalePrice: d("7")}),
	}

	got := analytics.RevenueByCategory(products, sales)

	var sum decimal.Decimal
	for _, row := range got {
		sum = sum.Add(row.Total)
	}
	if !sum.Equal(analytics.LineRevenue(sales)) {
		t.Errorf("category totals %s do not match line revenue %s", sum, analytics.LineRevenue(sales))
	}

	found := false
	for _, row := range got {
		if row.Category == analytics.Uncategorized {
			found = true
			if !row.Total.Equal(d("7")) {
				t.Errorf("uncategorized total: want 7, got %s", row.Total)
			}
		}
	}
	if !found {
		t.Error("expected an Uncategorized bucket for the unresolved line")
	}

	// Descending order by total.
	for i := 1; i < len(got); i++ {
		if got[i].Total.GreaterThan(got[i-1].Total) {
			t.Errorf("rows not sorted descending at index %d", i)
		}
	}
}

func TestRevenueByCategory_Empty(t *testing.T) {
	if got := analytics.RevenueByCategory(widgetCatalog(), nil); len(got) != 0 {
		t.Errorf("expected empty result for no sales, got %d rows", len(got))
	}
}

func TestStoredAndLineRevenueDiverge(t *testing.T) {
	// Header says 90 (ticket discount), lines say 100. Both paths must
	// report their own truth.
	sales := []core.Sale{
		saleOf("2025-06-10T10:00:00Z", "90", "30",
			core.SaleLine{ProductID: intPtr(1), Quantity: 2, SalePrice: d("50")}),
	}
	if got := analytics.TotalRevenue(sales); !got.Equal(d("90")) {
		t.Errorf("stored revenue: want 90, got %s", got)
	}
	if got := analytics.LineRevenue(sales); !got.Equal(d("100")) {
		t.Errorf("line revenue: want 100, got %s", got)
	}
}

func TestAverageTransactionValue(t *testing.T) {
	tests := []struct {
		name  string
		sales []core.Sale
		want  string
	}{
		{"no sales", nil, "0"},
		{"single sale", []core.Sale{saleOf("2025-06-10T10:00:00Z", "100", "40")}, "100"},
		{"mean of two", []core.Sale{
			saleOf("2025-06-10T10:00:00Z", "100", "40"),
			saleOf("2025-06-11T10:00:00Z", "50", "10"),
		}, "75"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analytics.AverageTransactionValue(tt.sales); !got.Equal(d(tt.want)) {
				t.Errorf("want %s, got %s", tt.want, got)
			}
		})
	}
}

func TestMarginByCategory_Scenario(t *testing.T) {
	products := []core.Product{
		{ID: 1, Name: "Widget", Category: "Tools", Price: d("30"), Stock: 10},
	}
	sales := []core.Sale{
		saleOf("2025-01-01T00:00:00Z", "100", "40",
			core.SaleLine{ProductID: intPtr(1), Quantity: 2, SalePrice: d("50")}),
	}

	got := analytics.MarginByCategory(products, sales)
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	row := got[0]
	if row.Category != "Tools" {
		t.Errorf("category: want Tools, got %s", row.Category)
	}
	if !row.Gain.Equal(d("40")) {
		t.Errorf("gain: want 40, got %s", row.Gain)
	}
	if !row.Revenue.Equal(d("100")) {
		t.Errorf("revenue: want 100, got %s", row.Revenue)
	}
	if !row.MarginPct.Equal(d("40")) {
		t.Errorf("margin: want 40, got %s", row.MarginPct)
	}
}

func TestMargin_ZeroSaleTotalContributesNoGain(t *testing.T) {
	products := widgetCatalog()
	// Stored total is zero, so the proportional allocation would divide by
	// zero; the line must contribute revenue but no gain.
	sales := []core.Sale{
		saleOf("2025-06-10T10:00:00Z", "0", "40",
			core.SaleLine{ProductID: intPtr(1), Quantity: 2, SalePrice: d("50")}),
	}

	got := analytics.MarginByProduct(products, sales)
	if len(got) != 1 {
		t.Fatalf("expected 1 row, got %d", len(got))
	}
	if !got[0].Gain.IsZero() {
		t.Errorf("gain: want 0, got %s", got[0].Gain)
	}
	if !got[0].Revenue.Equal(d("100")) {
		t.Errorf("revenue: want 100, got %s", got[0].Revenue)
	}
	if !got[0].MarginPct.Equal(d("0")) {
		t.Errorf("margin: want 0, got %s", got[0].MarginPct)
	}
}

func TestMarginByProduct_AllocatesProportionally(t *testing.T) {
	products := widgetCatalog()
	// 100 revenue from Widget, 60 from Beans; gain 40 splits 25/15.
	sales := []core.Sale{
		saleOf("2025-06-10T10:00:00Z", "160", "40",
			core.SaleLine{ProductID: intPtr(1), Quantity: 2, SalePrice: d("50")},
			core.SaleLine{ProductID: intPtr(3), Quantity: 24, SalePrice: d("2.5")}),
	}

	got := analytics.MarginByProduct(products, sales)
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	// Sorted by gain descending: Widget first.
	if got[0].Name != "Widget" {
		t.Fatalf("expected Widget first, got %s", got[0].Name)
	}
	if !got[0].Gain.Equal(d("25")) {
		t.Errorf("widget gain: want 25, got %s", got[0].Gain)
	}
	if !got[1].Gain.Equal(d("15")) {
		t.Errorf("beans gain: want 15, got %s", got[1].Gain)
	}
}

func TestTopProfitProducts_CapsAtFive(t *testing.T) {
	products := make([]core.Product, 7)
	sales := make([]core.Sale, 7)
	for i := range products {
		products[i] = core.Product{ID: i + 1, Name: string(rune('A' + i)), Category: "Misc", Price: d("10"), Stock: 1}
		sales[i] = saleOf("2025-06-10T10:00:00Z", "10", "5",
			core.SaleLine{ProductID: intPtr(i + 1), Quantity: 1, SalePrice: d("10")})
	}
	if got := analytics.TopProfitProducts(products, sales); len(got) != 5 {
		t.Errorf("expected 5 rows, got %d", len(got))
	}
}
