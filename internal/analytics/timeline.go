package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"retail-dashboard/internal/core"
)

const day = 24 * time.Hour

// inWindow reports whether t falls in the half-open interval [start, end).
func inWindow(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// GrowthCapPct is the rate reported when the previous week had no revenue
// but the current week does. The true rate is unbounded there; 100 is a
// display policy inherited from the dashboard, not a derived value.
var GrowthCapPct = decimal.NewFromInt(100)

// GrowthStats compares the trailing 7 days of revenue against the 7 days
// before that.
type GrowthStats struct {
	RatePct  decimal.Decimal `json:"rate_pct"`
	Current  decimal.Decimal `json:"current"`
	Previous decimal.Decimal `json:"previous"`
}

// SalesGrowth sums stored sale totals in [now−7d, now) and [now−14d,
// now−7d) and reports the percentage change, rounded to two decimals.
// Both windows empty yields zero; an empty previous window with current
// revenue yields GrowthCapPct. The result is always finite.
func SalesGrowth(sales []core.Sale, now time.Time) GrowthStats {
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	var g GrowthStats
	for _, s := range sales {
		switch {
		case inWindow(s.SaleDate, weekAgo, now):
			g.Current = g.Current.Add(s.TotalAmount)
		case inWindow(s.SaleDate, twoWeeksAgo, weekAgo):
			g.Previous = g.Previous.Add(s.TotalAmount)
		}
	}

	switch {
	case g.Previous.IsPositive():
		g.RatePct = g.Current.Sub(g.Previous).Div(g.Previous).Mul(hundred).Round(2)
	case g.Current.IsPositive():
		g.RatePct = GrowthCapPct
	}
	return g
}

// WeeklyBucketCount is the fixed length of the purchases-vs-sales series.
const WeeklyBucketCount = 12

// WeekBucket is one 7-day bucket of the purchases-vs-sales series,
// labeled by its end date.
type WeekBucket struct {
	Label     string          `json:"label"`
	Start     time.Time       `json:"start"`
	End       time.Time       `json:"end"`
	Sales     decimal.Decimal `json:"sales"`
	Purchases decimal.Decimal `json:"purchases"`
}

// WeeklyPurchasesVsSales produces exactly 12 contiguous half-open 7-day
// buckets ending at now and sums stored sale and order totals into the
// bucket containing their date. Records older than 12 weeks (or dated in
// the future) are outside every bucket and dropped: the chart reports the
// trailing quarter only.
func WeeklyPurchasesVsSales(sales []core.Sale, orders []core.PurchaseOrder, now time.Time) []WeekBucket {
	buckets := make([]WeekBucket, WeeklyBucketCount)
	for i := range buckets {
		end := now.Add(-time.Duration(WeeklyBucketCount-1-i) * 7 * day)
		buckets[i] = WeekBucket{
			Label: end.Format("2006-01-02"),
			Start: end.Add(-7 * day),
			End:   end,
		}
	}

	find := func(t time.Time) *WeekBucket {
		for i := range buckets {
			if inWindow(t, buckets[i].Start, buckets[i].End) {
				return &buckets[i]
			}
		}
		return nil
	}

	for _, s := range sales {
		if b := find(s.SaleDate); b != nil {
			b.Sales = b.Sales.Add(s.TotalAmount)
		}
	}
	for _, o := range orders {
		if b := find(o.OrderDate); b != nil {
			b.Purchases = b.Purchases.Add(o.TotalAmount)
		}
	}
	return buckets
}

// DailySales is one day of the historical revenue series with its
// trailing moving average.
type DailySales struct {
	Day       string          `json:"day"`
	Total     decimal.Decimal `json:"total"`
	MovingAvg decimal.Decimal `json:"moving_avg"`
}

// ForecastPoint is one projected day of revenue.
type ForecastPoint struct {
	Day      string          `json:"day"`
	Forecast decimal.Decimal `json:"forecast"`
}

// Forecast bundles the smoothed history and the flat projection.
type Forecast struct {
	Series     []DailySales    `json:"series"`
	Projection []ForecastPoint `json:"projection"`
}

const (
	maWindowDays      = 7
	forecastHorizon   = 7
	forecastDayLayout = "2006-01-02"
)

// SalesForecast groups stored sale totals by UTC calendar day, smooths
// them with a trailing 7-day simple moving average (the window clips at
// the start of the series), and projects the next 7 days by repeating the
// final average verbatim. The flat repetition is the contract: this is a
// naive baseline, not a trend model, and with no sales the projection is
// seven zeros.
func SalesForecast(sales []core.Sale, now time.Time) Forecast {
	byDay := make(map[string]decimal.Decimal)
	var days []string
	for _, s := range sales {
		if s.SaleDate.IsZero() {
			continue // unusable date, excluded from the series
		}
		key := s.SaleDate.UTC().Format(forecastDayLayout)
		if _, seen := byDay[key]; !seen {
			days = append(days, key)
		}
		byDay[key] = byDay[key].Add(s.TotalAmount)
	}
	sort.Strings(days)

	series := make([]DailySales, len(days))
	for i, d := range days {
		lo := i - maWindowDays + 1
		if lo < 0 {
			lo = 0
		}
		var sum decimal.Decimal
		for _, w := range days[lo : i+1] {
			sum = sum.Add(byDay[w])
		}
		series[i] = DailySales{
			Day:       d,
			Total:     byDay[d],
			MovingAvg: sum.Div(decimal.NewFromInt(int64(i + 1 - lo))),
		}
	}

	lastMA := decimal.Zero
	if len(series) > 0 {
		lastMA = series[len(series)-1].MovingAvg
	}
	projection := make([]ForecastPoint, forecastHorizon)
	for i := range projection {
		projection[i] = ForecastPoint{
			Day:      now.UTC().AddDate(0, 0, i+1).Format(forecastDayLayout),
			Forecast: lastMA,
		}
	}
	return Forecast{Series: series, Projection: projection}
}

// ATVPoint is one day of the average-transaction-value trend.
type ATVPoint struct {
	Day   string          `json:"day"`
	Value decimal.Decimal `json:"value"`
}

// atvTrailingDays is the span of the ATV trend chart.
const atvTrailingDays = 14

// ATVSeries computes the per-day average transaction value for the
// trailing 14 calendar days (UTC), today included. Days without sales
// report zero.
func ATVSeries(sales []core.Sale, now time.Time) []ATVPoint {
	type acc struct {
		total decimal.Decimal
		count int
	}
	byDay := make(map[string]*acc, atvTrailingDays)
	points := make([]ATVPoint, atvTrailingDays)
	for i := 0; i < atvTrailingDays; i++ {
		key := now.UTC().AddDate(0, 0, i-atvTrailingDays+1).Format(forecastDayLayout)
		points[i] = ATVPoint{Day: key}
		byDay[key] = &acc{}
	}

	for _, s := range sales {
		if s.SaleDate.IsZero() {
			continue
		}
		if a, ok := byDay[s.SaleDate.UTC().Format(forecastDayLayout)]; ok {
			a.total = a.total.Add(s.TotalAmount)
			a.count++
		}
	}

	for i := range points {
		a := byDay[points[i].Day]
		if a.count > 0 {
			points[i].Value = a.total.Div(decimal.NewFromInt(int64(a.count)))
		}
	}
	return points
}
