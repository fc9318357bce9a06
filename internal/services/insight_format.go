package services

import (
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/pratik-mahalle/freelancehub/internal/domain/insight"
)

var groupingPrinter = message.NewPrinter(language.English)

// formatHours renders minutes as hours with at most one decimal: 450 -> "7.5"
func formatHours(minutes int) string {
	h := math.Round(float64(minutes)/60*10) / 10
	return strconv.FormatFloat(h, 'f', -1, 64)
}

// percent converts a ratio to a whole percentage: 0.75 -> 75
func percent(ratio float64) int {
	return int(math.Round(ratio * 100))
}

// formatCurrency renders an amount as a grouped integer: 12345.6 -> "$12,346"
func formatCurrency(symbol string, amount decimal.Decimal) string {
	return symbol + groupingPrinter.Sprintf("%d", amount.Round(0).IntPart())
}

// ratio returns part/whole as a float, 0 when whole is zero
func ratio(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Div(whole).InexactFloat64()
}

// threeWayTrend maps a rate to up above high, stable above mid, else down
func threeWayTrend(rate, high, mid float64) insight.Trend {
	switch {
	case rate > high:
		return insight.TrendUp
	case rate > mid:
		return insight.TrendStable
	default:
		return insight.TrendDown
	}
}

func priorityForTrend(t insight.Trend) insight.Priority {
	switch t {
	case insight.TrendUp:
		return insight.PriorityHigh
	case insight.TrendStable:
		return insight.PriorityMedium
	default:
		return insight.PriorityLow
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// calendarDate places the stored date of d at midnight in loc without shifting the day
func calendarDate(d time.Time, loc *time.Location) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc)
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// weekdayOrder is Monday first
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}
