package analytics_test

import (
	"testing"

	"retail-dashboard/internal/analytics"
	"retail-dashboard/internal/core"
)

func TestInventoryTurnover(t *testing.T) {
	products := widgetCatalog() // value = 10*30 + 4*45 + 100*2.5 = 730

	t.Run("defined ratio", func(t *testing.T) {
		sales := []core.Sale{
			saleOf("2025-06-10T10:00:00Z", "100", "40"), // COGS 60
			saleOf("2025-06-11T10:00:00Z", "50", "37"),  // COGS 13
		}
		m := analytics.InventoryTurnover(products, sales)
		if !m.COGS.Equal(d("73")) {
			t.Errorf("COGS: want 73, got %s", m.COGS)
		}
		if !m.InventoryValue.Equal(d("730")) {
			t.Errorf("inventory value: want 730, got %s", m.InventoryValue)
		}
		if m.Ratio == nil {
			t.Fatal("expected a defined ratio")
		}
		if !m.Ratio.Equal(d("0.1")) {
			t.Errorf("ratio: want 0.1, got %s", m.Ratio)
		}
	})

	t.Run("zero inventory is undefined, not zero", func(t *testing.T) {
		sales := []core.Sale{saleOf("2025-06-10T10:00:00Z", "100", "40")}
		m := analytics.InventoryTurnover(nil, sales)
		if m.Ratio != nil {
			t.Errorf("expected nil ratio with no inventory, got %s", m.Ratio)
		}
		if !m.COGS.Equal(d("60")) {
			t.Errorf("COGS: want 60, got %s", m.COGS)
		}
	})

	t.Run("no sales, stocked shelves", func(t *testing.T) {
		m := analytics.InventoryTurnover(products, nil)
		if m.Ratio == nil {
			t.Fatal("expected a defined zero ratio")
		}
		if !m.Ratio.IsZero() {
			t.Errorf("ratio: want 0, got %s", m.Ratio)
		}
	})
}

func TestSlowMovers(t *testing.T) {
	products := widgetCatalog()
	sales := []core.Sale{
		saleOf("2025-06-10T10:00:00Z", "100", "40",
			core.SaleLine{ProductID: intPtr(1), Quantity: 2, SalePrice: d("50")}),
		saleOf("2025-06-11T10:00:00Z", "25", "5",
			core.SaleLine{ProductID: intPtr(3), Quantity: 10, SalePrice: d("2.5")}),
	}

	got := analytics.SlowMovers(products, sales, 0)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}

	// Never-sold Gadget first with zero, then Widget (2), then Beans (10).
	if got[0].Name != "Gadget" || got[0].QuantitySold != 0 {
		t.Errorf("entry 0: want Gadget/0, got %s/%d", got[0].Name, got[0].QuantitySold)
	}
	if got[1].Name != "Widget" || got[1].QuantitySold != 2 {
		t.Errorf("entry 1: want Widget/2, got %s/%d", got[1].Name, got[1].QuantitySold)
	}
	if got[2].Name != "Beans" || got[2].QuantitySold != 10 {
		t.Errorf("entry 2: want Beans/10, got %s/%d", got[2].Name, got[2].QuantitySold)
	}

	// Stock comes from the catalog.
	if got[0].Stock != 4 {
		t.Errorf("gadget stock: want 4, got %d", got[0].Stock)
	}

	// Non-decreasing quantities.
	for i := 1; i < len(got); i++ {
		if got[i].QuantitySold < got[i-1].QuantitySold {
			t.Errorf("entries not sorted ascending at index %d", i)
		}
	}
}

func TestSlowMovers_TiesKeepCatalogOrder(t *testing.T) {
	products := []core.Product{
		{ID: 5, Name: "Fifth", Category: "Misc"},
		{ID: 2, Name: "Second", Category: "Misc"},
		{ID: 9, Name: "Ninth", Category: "Misc"},
	}
	got := analytics.SlowMovers(products, nil, 0)
	want := []string{"Fifth", "Second", "Ninth"}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("entry %d: want %s, got %s", i, name, got[i].Name)
		}
	}
}

func TestSlowMovers_BottomN(t *testing.T) {
	products := make([]core.Product, 12)
	for i := range products {
		products[i] = core.Product{ID: i + 1, Name: string(rune('A' + i)), Category: "Misc"}
	}
	if got := analytics.SlowMovers(products, nil, 0); len(got) != analytics.DefaultSlowMoverCount {
		t.Errorf("expected %d entries, got %d", analytics.DefaultSlowMoverCount, len(got))
	}
	if got := analytics.SlowMovers(products, nil, 3); len(got) != 3 {
		t.Errorf("expected 3 entries, got %d", len(got))
	}
}

func TestSlowMovers_NameOnlyLineFoldsIntoCatalogRow(t *testing.T) {
	products := widgetCatalog()
	sales := []core.Sale{
		saleOf("2025-06-10T10:00:00Z", "50", "20",
			core.SaleLine{ProductName: "widget", Quantity: 3, SalePrice: d("50")}),
	}
	got := analytics.SlowMovers(products, sales, 0)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries (no duplicate Widget row), got %d", len(got))
	}
	for _, e := range got {
		if e.Name == "Widget" && e.QuantitySold != 3 {
			t.Errorf("widget quantity: want 3, got %d", e.QuantitySold)
		}
	}
}

func TestStockByCategory(t *testing.T) {
	products := widgetCatalog()
	sales := []core.Sale{
		// 30 Beans sold 5 days ago: avg 1/day over 30 days.
		saleOf("2025-06-10T10:00:00Z", "75", "15",
			core.SaleLine{ProductID: intPtr(3), Quantity: 30, SalePrice: d("2.5")}),
		// Outside the 30-day window: ignored.
		saleOf("2025-01-01T10:00:00Z", "75", "15",
			core.SaleLine{ProductID: intPtr(3), Quantity: 300, SalePrice: d("2.5")}),
	}

	got := analytics.StockByCategory(products, sales, testNow)
	if len(got) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(got))
	}

	// Sorted by stock descending: Groceries (100) then Tools (14).
	if got[0].Category != "Groceries" {
		t.Fatalf("expected Groceries first, got %s", got[0].Category)
	}
	groceries, tools := got[0], got[1]

	if groceries.Stock != 100 {
		t.Errorf("groceries stock: want 100, got %d", groceries.Stock)
	}
	if !groceries.Value.Equal(d("250")) {
		t.Errorf("groceries value: want 250, got %s", groceries.Value)
	}
	if !groceries.AvgDailyUnits.Equal(d("1")) {
		t.Errorf("groceries avg daily: want 1, got %s", groceries.AvgDailyUnits)
	}
	if groceries.DaysLeft == nil {
		t.Fatal("expected finite days left for groceries")
	}
	if !groceries.DaysLeft.Equal(d("100")) {
		t.Errorf("groceries days left: want 100, got %s", groceries.DaysLeft)
	}

	// Tools had no sales in the window: unbounded sentinel, not a number.
	if tools.Category != "Tools" {
		t.Fatalf("expected Tools second, got %s", tools.Category)
	}
	if tools.DaysLeft != nil {
		t.Errorf("expected nil days left for tools, got %s", tools.DaysLeft)
	}
	if tools.Stock != 14 {
		t.Errorf("tools stock: want 14, got %d", tools.Stock)
	}
}

func TestStockByCategory_DaysLeftUsesUnroundedAverage(t *testing.T) {
	products := widgetCatalog()
	sales := []core.Sale{
		// 1 Beans unit in the window: avg 1/30 per day, displayed as 0.03.
		saleOf("2025-06-10T10:00:00Z", "2.5", "1",
			core.SaleLine{ProductID: intPtr(3), Quantity: 1, SalePrice: d("2.5")}),
	}

	got := analytics.StockByCategory(products, sales, testNow)
	if got[0].Category != "Groceries" {
		t.Fatalf("expected Groceries first, got %s", got[0].Category)
	}
	groceries := got[0]

	if !groceries.AvgDailyUnits.Equal(d("0.03")) {
		t.Errorf("avg daily: want 0.03, got %s", groceries.AvgDailyUnits)
	}
	if groceries.DaysLeft == nil {
		t.Fatal("expected finite days left")
	}
	// 100 / (1/30) = 3000, not 100 / 0.03 = 3333.3.
	if !groceries.DaysLeft.Equal(d("3000")) {
		t.Errorf("days left: want 3000, got %s", groceries.DaysLeft)
	}
}

func TestStockByCategory_Empty(t *testing.T) {
	if got := analytics.StockByCategory(nil, nil, testNow); len(got) != 0 {
		t.Errorf("expected no rows, got %d", len(got))
	}
}
