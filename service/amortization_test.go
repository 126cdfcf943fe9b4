package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthlyPayment_WithInterest(t *testing.T) {
	assert.InDelta(t, 2270.09, roundTo2Decimals(MonthlyPayment(350000, 6.75, 30)), 0.001)
	assert.InDelta(t, 470.73, roundTo2Decimals(MonthlyPayment(10000, 12, 2)), 0.001)
}

func TestMonthlyPayment_ZeroInterest(t *testing.T) {
	assert.Equal(t, 1000.0, MonthlyPayment(360000, 0, 30))
	assert.Equal(t, 100.0, MonthlyPayment(1200, 0, 1))
}

func TestMonthlyPayment_NegativeRateIsStraightLine(t *testing.T) {
	assert.Equal(t, 1000.0, MonthlyPayment(360000, -2, 30))
}

func TestMonthlyPayment_NoLoan(t *testing.T) {
	assert.Zero(t, MonthlyPayment(0, 6.75, 30))
	assert.Zero(t, MonthlyPayment(-5000, 6.75, 30))
	assert.Zero(t, MonthlyPayment(0, 0, 0))
}

func TestMonthlyPayment_TinyTermUsesOnePayment(t *testing.T) {
	assert.Equal(t, 5000.0, MonthlyPayment(5000, 0, 0.01))
	assert.InDelta(t, 5025.0, MonthlyPayment(5000, 6, 0), 1e-9)
}

func TestRoundTo2Decimals(t *testing.T) {
	assert.Equal(t, 4.05, roundTo2Decimals(81*0.05))
	assert.Equal(t, 2270.09, roundTo2Decimals(2270.0933))
}

func TestMonthlyPayment_VeryLongTermIsInterestOnly(t *testing.T) {
	got := MonthlyPayment(350000, 6.75, 100000)

	assert.False(t, math.IsNaN(got))
	assert.InDelta(t, 1968.75, got, 1e-9)
}
