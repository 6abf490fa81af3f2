package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Money formats an amount with a thousands separator and the currency code,
// e.g. "-1,234,568 USD". Fractions are rounded to whole units.
func Money(amount float64, currency string) string {
	rounded := int64(math.Round(amount))
	s := groupThousands(rounded)
	if currency == "" {
		return s
	}
	return s + " " + currency
}

// SignedMoney is Money with an explicit "+" on positive amounts.
func SignedMoney(amount float64, currency string) string {
	s := Money(amount, currency)
	if amount > 0 {
		return "+" + s
	}
	return s
}

func groupThousands(v int64) string {
	s := strconv.FormatInt(v, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		return "-" + out
	}
	return out
}

// Percent formats a fraction as a percentage with one decimal, e.g. "42.5%".
func Percent(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*100)
}

// SignedPercentPoints formats a percentage-point delta, e.g. "+3.2pp".
func SignedPercentPoints(points float64) string {
	return fmt.Sprintf("%+.1fpp", points)
}

// MonthLabel renders a 0-indexed simulation month as "M<n> (Jan 2027)".
func MonthLabel(start time.Time, month int) string {
	d := start.AddDate(0, month, 0)
	return fmt.Sprintf("M%d (%s)", month, d.Format("Jan 2006"))
}

// ProfitableMonth renders an optional profitability month; nil means the
// venture never turned profitable inside the horizon.
func ProfitableMonth(month *int, start time.Time) string {
	if month == nil {
		return StyleRed.Render("never")
	}
	return StyleGreen.Render(MonthLabel(start, *month))
}

// SignedMonths renders a month delta, e.g. "-3mo" for three months earlier.
func SignedMonths(delta int) string {
	return fmt.Sprintf("%+dmo", delta)
}
