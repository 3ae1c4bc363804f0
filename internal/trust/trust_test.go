package trust_test

import (
	"testing"

	"zestpay/internal/trust"

	"github.com/stretchr/testify/assert"
)

func TestAdjustSalaried_OnTime(t *testing.T) {
	t.Run("strong history gets +5", func(t *testing.T) {
		// 9 on-time, 1 late, one more on-time -> 10/11 ≈ 0.909
		got := trust.AdjustSalaried(75, true, 9, 1)
		assert.Equal(t, trust.SalariedScore(80), got)
	})

	t.Run("strong history capped at 100", func(t *testing.T) {
		got := trust.AdjustSalaried(98, true, 20, 0)
		assert.Equal(t, trust.SalariedCap, got)
	})

	t.Run("steady history gets +2 capped at 85", func(t *testing.T) {
		// 3 on-time, 1 late, one more on-time -> 4/5 = 0.8
		got := trust.AdjustSalaried(84, true, 3, 1)
		assert.Equal(t, trust.SalariedScore(85), got)
	})

	t.Run("steady history does not move score already at 85", func(t *testing.T) {
		got := trust.AdjustSalaried(85, true, 3, 1)
		assert.Equal(t, trust.SalariedScore(85), got)
	})

	t.Run("weak history unchanged", func(t *testing.T) {
		// 1 on-time, 2 late, one more on-time -> 2/4 = 0.5
		got := trust.AdjustSalaried(60, true, 1, 2)
		assert.Equal(t, trust.SalariedScore(60), got)
	})

	t.Run("first ever repayment on time yields full ratio", func(t *testing.T) {
		got := trust.AdjustSalaried(trust.SalariedDefault, true, 0, 0)
		assert.Equal(t, trust.SalariedScore(55), got)
	})
}

func TestAdjustSalaried_Late(t *testing.T) {
	t.Run("flat -10 regardless of history", func(t *testing.T) {
		got := trust.AdjustSalaried(75, false, 100, 0)
		assert.Equal(t, trust.SalariedScore(65), got)
	})

	t.Run("floored at 30", func(t *testing.T) {
		got := trust.AdjustSalaried(30, false, 0, 0)
		assert.Equal(t, trust.SalariedFloor, got)
	})

	t.Run("first ever repayment late still penalized", func(t *testing.T) {
		got := trust.AdjustSalaried(trust.SalariedDefault, false, 0, 0)
		assert.Equal(t, trust.SalariedScore(40), got)
	})
}

func TestAdjustSalaried_Bounds(t *testing.T) {
	score := trust.SalariedDefault
	for i := 0; i < 50; i++ {
		score = trust.AdjustSalaried(score, i%2 == 0, i, i)
		assert.GreaterOrEqual(t, score, trust.SalariedFloor)
		assert.LessOrEqual(t, score, trust.SalariedCap)
	}
}

func TestAdjustGig(t *testing.T) {
	t.Run("success increments by 0.05", func(t *testing.T) {
		got := trust.AdjustGig(0.55, true)
		assert.InDelta(t, 0.60, float64(got), 1e-9)
	})

	t.Run("success capped at 0.65", func(t *testing.T) {
		got := trust.AdjustGig(0.63, true)
		assert.InDelta(t, float64(trust.GigCap), float64(got), 1e-9)
	})

	t.Run("failure decrements by 0.10 floored at 0.50", func(t *testing.T) {
		got := trust.AdjustGig(0.55, false)
		assert.InDelta(t, float64(trust.GigFloor), float64(got), 1e-9)
	})

	t.Run("bounds hold over many adjustments", func(t *testing.T) {
		score := trust.GigDefault
		for i := 0; i < 40; i++ {
			score = trust.AdjustGig(score, i%3 != 0)
			assert.GreaterOrEqual(t, float64(score), float64(trust.GigFloor))
			assert.LessOrEqual(t, float64(score), float64(trust.GigCap))
		}
	})
}
