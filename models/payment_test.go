package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitAmount(t *testing.T) {
	commission, payout := SplitAmount(50000, 15)
	assert.Equal(t, int64(7500), commission)
	assert.Equal(t, int64(42500), payout)
}

func TestSplitAmount_PartsAlwaysSum(t *testing.T) {
	for _, amount := range []int64{1, 99, 100, 333, 50001, 999999} {
		commission, payout := SplitAmount(amount, 15)
		assert.Equal(t, amount, commission+payout, "amount %d", amount)
	}
}

func TestSplitAmount_ZeroCommission(t *testing.T) {
	commission, payout := SplitAmount(50000, 0)
	assert.Equal(t, int64(0), commission)
	assert.Equal(t, int64(50000), payout)
}

func TestMinorUnitsRoundTrip(t *testing.T) {
	assert.Equal(t, int64(50000), ToMinorUnits(500))
	assert.Equal(t, int64(1999), ToMinorUnits(19.99))
	assert.Equal(t, 19.99, FromMinorUnits(1999))
}
