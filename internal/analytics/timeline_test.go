package analytics_test

import (
	"testing"

	"retail-dashboard/internal/analytics"
	"retail-dashboard/internal/core"
)

func TestSalesGrowth(t *testing.T) {
	tests := []struct {
		name  string
		sales []core.Sale
		rate  string
	}{
		{name: "no sales at all", rate: "0"},
		{
			name: "both windows populated",
			sales: []core.Sale{
				saleOf("2025-06-12T10:00:00Z", "150", "50"), // current week
				saleOf("2025-06-03T10:00:00Z", "100", "30"), // previous week
			},
			rate: "50",
		},
		{
			name: "decline",
			sales: []core.Sale{
				saleOf("2025-06-12T10:00:00Z", "80", "20"),
				saleOf("2025-06-03T10:00:00Z", "100", "30"),
			},
			rate: "-20",
		},
		{
			name: "empty previous week is capped, not infinite",
			sales: []core.Sale{
				saleOf("2025-06-12T10:00:00Z", "500", "100"),
			},
			rate: "100",
		},
		{
			name: "only previous week",
			sales: []core.Sale{
				saleOf("2025-06-03T10:00:00Z", "100", "30"),
			},
			rate: "-100",
		},
		{
			name: "sales outside both windows are ignored",
			sales: []core.Sale{
				saleOf("2025-05-01T10:00:00Z", "999", "100"),
				saleOf("2025-06-16T10:00:00Z", "999", "100"), // future
			},
			rate: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analytics.SalesGrowth(tt.sales, testNow)
			if !got.RatePct.Equal(d(tt.rate)) {
				t.Errorf("rate: want %s, got %s", tt.rate, got.RatePct)
			}
		})
	}
}

func TestSalesGrowth_WindowTotals(t *testing.T) {
	sales := []core.Sale{
		saleOf("2025-06-14T10:00:00Z", "60", "10"),
		saleOf("2025-06-09T10:00:00Z", "40", "10"),
		saleOf("2025-06-05T10:00:00Z", "25", "5"),
	}
	got := analytics.SalesGrowth(sales, testNow)
	if !got.Current.Equal(d("100")) {
		t.Errorf("current: want 100, got %s", got.Current)
	}
	if !got.Previous.Equal(d("25")) {
		t.Errorf("previous: want 25, got %s", got.Previous)
	}
	if !got.RatePct.Equal(d("300")) {
		t.Errorf("rate: want 300, got %s", got.RatePct)
	}
}

func TestWeeklyPurchasesVsSales(t *testing.T) {
	sales := []core.Sale{
		saleOf("2025-06-14T10:00:00Z", "200", "50"), // last bucket
		saleOf("2025-06-05T10:00:00Z", "75", "20"),  // second-to-last bucket
		saleOf("2024-01-01T10:00:00Z", "999", "99"), // far past: dropped
	}
	orders := []core.PurchaseOrder{
		{TotalAmount: d("120"), OrderDate: date("2025-06-13T08:00:00Z")},
		{TotalAmount: d("999"), OrderDate: date("2025-07-01T08:00:00Z")}, // future: dropped
	}

	got := analytics.WeeklyPurchasesVsSales(sales, orders, testNow)
	if len(got) != analytics.WeeklyBucketCount {
		t.Fatalf("expected %d buckets, got %d", analytics.WeeklyBucketCount, len(got))
	}

	last := got[len(got)-1]
	if last.Label != "2025-06-15" {
		t.Errorf("last bucket label: want 2025-06-15, got %s", last.Label)
	}
	if !last.Sales.Equal(d("200")) {
		t.Errorf("last bucket sales: want 200, got %s", last.Sales)
	}
	if !last.Purchases.Equal(d("120")) {
		t.Errorf("last bucket purchases: want 120, got %s", last.Purchases)
	}

	prior := got[len(got)-2]
	if !prior.Sales.Equal(d("75")) {
		t.Errorf("prior bucket sales: want 75, got %s", prior.Sales)
	}

	// Buckets are contiguous and cover exactly 12 weeks ending at now.
	for i := 1; i < len(got); i++ {
		if !got[i].Start.Equal(got[i-1].End) {
			t.Errorf("gap between bucket %d and %d", i-1, i)
		}
	}
	if !got[len(got)-1].End.Equal(testNow) {
		t.Errorf("final bucket should end at now, got %s", got[len(got)-1].End)
	}

	// Dropped records appear in no bucket.
	var salesSum, purchaseSum = d("0"), d("0")
	for _, b := range got {
		salesSum = salesSum.Add(b.Sales)
		purchaseSum = purchaseSum.Add(b.Purchases)
	}
	if !salesSum.Equal(d("275")) {
		t.Errorf("bucketed sales total: want 275, got %s", salesSum)
	}
	if !purchaseSum.Equal(d("120")) {
		t.Errorf("bucketed purchases total: want 120, got %s", purchaseSum)
	}
}

func TestWeeklyPurchasesVsSales_EmptyInputStillTwelveBuckets(t *testing.T) {
	got := analytics.WeeklyPurchasesVsSales(nil, nil, testNow)
	if len(got) != analytics.WeeklyBucketCount {
		t.Fatalf("expected %d buckets, got %d", analytics.WeeklyBucketCount, len(got))
	}
	for i, b := range got {
		if !b.Sales.IsZero() || !b.Purchases.IsZero() {
			t.Errorf("bucket %d should be empty", i)
		}
	}
}

func TestSalesForecast(t *testing.T) {
	// Three days of sales; the moving-average window clips at the start.
	sales := []core.Sale{
		saleOf("2025-06-10T09:00:00Z", "100", "20"),
		saleOf("2025-06-10T17:00:00Z", "50", "10"), // same day, summed
		saleOf("2025-06-11T09:00:00Z", "60", "10"),
		saleOf("2025-06-12T09:00:00Z", "90", "30"),
	}

	got := analytics.SalesForecast(sales, testNow)
	if len(got.Series) != 3 {
		t.Fatalf("expected 3 series points, got %d", len(got.Series))
	}
	if got.Series[0].Day != "2025-06-10" || !got.Series[0].Total.Equal(d("150")) {
		t.Errorf("series[0]: want 2025-06-10/150, got %s/%s", got.Series[0].Day, got.Series[0].Total)
	}
	if !got.Series[0].MovingAvg.Equal(d("150")) {
		t.Errorf("series[0] MA: want 150, got %s", got.Series[0].MovingAvg)
	}
	if !got.Series[1].MovingAvg.Equal(d("105")) { // (150+60)/2
		t.Errorf("series[1] MA: want 105, got %s", got.Series[1].MovingAvg)
	}
	if !got.Series[2].MovingAvg.Equal(d("100")) { // (150+60+90)/3
		t.Errorf("series[2] MA: want 100, got %s", got.Series[2].MovingAvg)
	}

	if len(got.Projection) != 7 {
		t.Fatalf("expected 7 projection points, got %d", len(got.Projection))
	}
	// Flat projection: every point repeats the final moving average.
	for i, p := range got.Projection {
		if !p.Forecast.Equal(d("100")) {
			t.Errorf("projection[%d]: want 100, got %s", i, p.Forecast)
		}
	}
	if got.Projection[0].Day != "2025-06-16" {
		t.Errorf("projection starts at %s, want 2025-06-16", got.Projection[0].Day)
	}
	if got.Projection[6].Day != "2025-06-22" {
		t.Errorf("projection ends at %s, want 2025-06-22", got.Projection[6].Day)
	}
}

func TestSalesForecast_NoSales(t *testing.T) {
	got := analytics.SalesForecast(nil, testNow)
	if len(got.Series) != 0 {
		t.Errorf("expected empty series, got %d points", len(got.Series))
	}
	if len(got.Projection) != 7 {
		t.Fatalf("expected 7 projection points, got %d", len(got.Projection))
	}
	for i, p := range got.Projection {
		if !p.Forecast.IsZero() {
			t.Errorf("projection[%d]: want 0, got %s", i, p.Forecast)
		}
	}
}

func TestSalesForecast_SkipsZeroDates(t *testing.T) {
	sales := []core.Sale{
		{TotalAmount: d("40"), Gain: d("10")}, // zero SaleDate
		saleOf("2025-06-12T09:00:00Z", "90", "30"),
	}
	got := analytics.SalesForecast(sales, testNow)
	if len(got.Series) != 1 {
		t.Fatalf("expected 1 series point, got %d", len(got.Series))
	}
	if got.Series[0].Day != "2025-06-12" {
		t.Errorf("series day: want 2025-06-12, got %s", got.Series[0].Day)
	}
}

func TestATVSeries(t *testing.T) {
	sales := []core.Sale{
		saleOf("2025-06-15T08:00:00Z", "100", "20"),
		saleOf("2025-06-15T18:00:00Z", "50", "10"),
		saleOf("2025-06-02T10:00:00Z", "80", "20"),
		saleOf("2025-05-01T10:00:00Z", "999", "99"), // outside the window
	}

	got := analytics.ATVSeries(sales, testNow)
	if len(got) != 14 {
		t.Fatalf("expected 14 points, got %d", len(got))
	}
	if got[0].Day != "2025-06-02" {
		t.Errorf("first day: want 2025-06-02, got %s", got[0].Day)
	}
	if got[13].Day != "2025-06-15" {
		t.Errorf("last day: want 2025-06-15, got %s", got[13].Day)
	}
	if !got[0].Value.Equal(d("80")) {
		t.Errorf("2025-06-02 ATV: want 80, got %s", got[0].Value)
	}
	if !got[13].Value.Equal(d("75")) { // (100+50)/2
		t.Errorf("2025-06-15 ATV: want 75, got %s", got[13].Value)
	}
	// Days without sales report zero.
	if !got[5].Value.IsZero() {
		t.Errorf("quiet day ATV: want 0, got %s", got[5].Value)
	}
}
