package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{"small", 950, "950 USD"},
		{"thousands", 12500, "12,500 USD"},
		{"millions", 1234567.8, "1,234,568 USD"},
		{"negative", -45000, "-45,000 USD"},
		{"zero", 0, "0 USD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Money(tt.amount, "USD"))
		})
	}

	assert.Equal(t, "1,000", Money(1000, ""))
}

func TestSignedMoney(t *testing.T) {
	assert.Equal(t, "+500 EUR", SignedMoney(500, "EUR"))
	assert.Equal(t, "-500 EUR", SignedMoney(-500, "EUR"))
	assert.Equal(t, "0 EUR", SignedMoney(0, "EUR"))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "42.5%", Percent(0.425))
	assert.Equal(t, "-10.0%", Percent(-0.1))
}

func TestSignedPercentPoints(t *testing.T) {
	assert.Equal(t, "+3.2pp", SignedPercentPoints(3.2))
	assert.Equal(t, "-0.5pp", SignedPercentPoints(-0.5))
}

func TestMonthLabel(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "M0 (Jan 2026)", MonthLabel(start, 0))
	assert.Equal(t, "M13 (Feb 2027)", MonthLabel(start, 13))
}

func TestProfitableMonth(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Contains(t, ProfitableMonth(nil, start), "never")

	m := 6
	assert.Contains(t, ProfitableMonth(&m, start), "M6 (Jul 2026)")
}

func TestSignedMonths(t *testing.T) {
	assert.Equal(t, "-3mo", SignedMonths(-3))
	assert.Equal(t, "+2mo", SignedMonths(2))
	assert.Equal(t, "+0mo", SignedMonths(0))
}
