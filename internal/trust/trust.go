// Package trust computes repayment-reliability scores. Two scales exist
// and are never mixed: salaried employees carry an integer percent score,
// gig workers carry a fractional score. The employee's compensation model
// decides which scale applies.
package trust

// SalariedScore is the integer-percent scale used for monthly-salaried
// employees. Valid range is [SalariedFloor, SalariedCap].
type SalariedScore int

const (
	SalariedFloor   SalariedScore = 30
	SalariedCap     SalariedScore = 100
	SalariedDefault SalariedScore = 50

	// Employees with a merely-decent record plateau here; only a ≥90%
	// on-time ratio can push the score past it.
	salariedSteadyCap SalariedScore = 85

	salariedBonusStrong = 5
	salariedBonusSteady = 2
	salariedLatePenalty = 10
)

// AdjustSalaried returns the score after one repayment. priorOnTime and
// priorLate count repayments recorded before this one; the current
// repayment is folded into the on-time ratio before comparing thresholds.
// The late penalty is flat and ignores the ratio entirely.
func AdjustSalaried(score SalariedScore, onTime bool, priorOnTime, priorLate int) SalariedScore {
	score = ClampSalaried(score)

	if !onTime {
		score -= salariedLatePenalty
		if score < SalariedFloor {
			score = SalariedFloor
		}
		return score
	}

	total := priorOnTime + priorLate + 1
	ratio := float64(priorOnTime+1) / float64(total)

	switch {
	case ratio >= 0.9:
		score += salariedBonusStrong
		if score > SalariedCap {
			score = SalariedCap
		}
	case ratio >= 0.75 && score < salariedSteadyCap:
		score += salariedBonusSteady
		if score > salariedSteadyCap {
			score = salariedSteadyCap
		}
	}

	return score
}

// ClampSalaried forces a score into the valid salaried range. Stored
// scores can only drift out of range through manual data edits.
func ClampSalaried(score SalariedScore) SalariedScore {
	if score < SalariedFloor {
		return SalariedFloor
	}
	if score > SalariedCap {
		return SalariedCap
	}
	return score
}

// GigScore is the fractional scale used for gig workers. Valid range is
// [GigFloor, GigCap].
type GigScore float64

const (
	GigFloor   GigScore = 0.50
	GigCap     GigScore = 0.65
	GigDefault GigScore = 0.50

	gigIncrement GigScore = 0.05
	gigPenalty   GigScore = 0.10
)

// AdjustGig returns the score after one withdrawal/repayment outcome.
func AdjustGig(score GigScore, success bool) GigScore {
	score = ClampGig(score)

	if success {
		score += gigIncrement
		if score > GigCap {
			score = GigCap
		}
		return score
	}

	score -= gigPenalty
	if score < GigFloor {
		score = GigFloor
	}
	return score
}

// ClampGig forces a score into the valid gig range.
func ClampGig(score GigScore) GigScore {
	if score < GigFloor {
		return GigFloor
	}
	if score > GigCap {
		return GigCap
	}
	return score
}
