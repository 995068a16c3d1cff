package loan

import (
	"math"

	"property-dcf/internal/model"
)

// DefaultEpsilon is used when BuildSchedule is given a non-positive epsilon.
const DefaultEpsilon = 1e-12

// Schedule is an annual amortization schedule truncated to a holding horizon.
type Schedule struct {
	Years []model.DebtYear
	// Remaining is the balance still owed at the end of the horizon.
	// It is non-zero only when horizon < term.
	Remaining float64
	// Payment is the level annual payment (0 for an empty schedule).
	Payment float64
}

// PaymentAt returns the debt service for a 1-based projection year,
// or 0 if the year is outside the schedule.
func (s Schedule) PaymentAt(year int) float64 {
	if year < 1 || year > len(s.Years) {
		return 0
	}
	return s.Years[year-1].Payment
}

// LevelPayment is the annual annuity payment for principal over term years.
// For |rate| < eps it falls back to straight-line principal/term.
func LevelPayment(principal, rate float64, term int, eps float64) float64 {
	if principal <= 0 || term <= 0 {
		return 0
	}
	if math.Abs(rate) < eps {
		return principal / float64(term)
	}
	return principal * rate / (1 - math.Pow(1+rate, -float64(term)))
}

// BuildSchedule computes a level-payment schedule for years 1..horizon.
//
// Years past the term (or after the balance is exhausted) are recorded as
// zero-payment rows with a flat balance. All monetary fields are floored at 0.
func BuildSchedule(principal, annualRate float64, termYears, horizon int, eps float64) Schedule {
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	if principal <= 0 || horizon <= 0 {
		return Schedule{}
	}

	payment := LevelPayment(principal, annualRate, termYears, eps)
	rows := make([]model.DebtYear, 0, horizon)
	balance := principal

	for year := 1; year <= horizon; year++ {
		row := model.DebtYear{Year: year, BeginBalance: floor0(balance)}

		if year <= termYears && balance > eps {
			interest := balance * annualRate
			principalPart := payment - interest
			if principalPart > balance {
				principalPart = balance
			}
			balance = floor0(balance - principalPart)

			row.Interest = floor0(interest)
			row.Principal = floor0(principalPart)
			row.Payment = floor0(interest + principalPart)
		}
		row.EndBalance = floor0(balance)
		rows = append(rows, row)
	}

	remaining := 0.0
	if horizon < termYears {
		remaining = rows[len(rows)-1].EndBalance
	}

	return Schedule{
		Years:     rows,
		Remaining: remaining,
		Payment:   payment,
	}
}

func floor0(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}
