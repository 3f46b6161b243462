package dashboard

import (
	"github.com/shopspring/decimal"

	"nestfin/internal/domain/transaction"
)

var hundred = decimal.NewFromInt(100)

// Derived holds the display values computed from the raw ledgers.
type Derived struct {
	TotalSavings     decimal.Decimal `json:"totalSavings"`
	NetWorth         decimal.Decimal `json:"netWorth"`
	GoalProgress     decimal.Decimal `json:"goalProgress"`
	RemainingToGoal  decimal.Decimal `json:"remainingToGoal"`
	MonthsToGoal     int64           `json:"monthsToGoal"`
	AvailableMonthly decimal.Decimal `json:"availableMonthly"`
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpenses    decimal.Decimal `json:"totalExpenses"`
}

// Derived recomputes the display values on every call.
func (s *Store) Derived() Derived {
	return Compute(s.Snapshot())
}

func Compute(snap Snapshot) Derived {
	var d Derived

	saved := decimal.Zero
	for _, m := range snap.MonthlySavings {
		saved = saved.Add(m.Amount)
	}
	spent := decimal.Zero
	for _, e := range snap.ExtraExpenses {
		spent = spent.Add(e.Amount)
	}
	d.NetWorth = saved.Sub(spent)
	d.TotalSavings = decimal.Max(decimal.Zero, d.NetWorth)

	if goal := snap.Goal; goal != nil {
		target := goal.TargetAmount
		if target.IsPositive() {
			d.GoalProgress = decimal.Min(hundred, d.TotalSavings.Div(target).Mul(hundred)).Round(2)
		}
		d.RemainingToGoal = decimal.Max(decimal.Zero, target.Sub(d.TotalSavings))

		if n := len(snap.MonthlySavings); n > 0 {
			average := d.TotalSavings.Div(decimal.NewFromInt(int64(n)))
			if average.IsPositive() {
				d.MonthsToGoal = d.RemainingToGoal.Div(average).Ceil().IntPart()
			}
		}
	}

	if info := snap.PersonalInfo; info != nil {
		available := decimal.Zero
		if info.MonthlyIncome != nil {
			available = *info.MonthlyIncome
		}
		if info.MonthlyFixedExpenses != nil {
			available = available.Sub(*info.MonthlyFixedExpenses)
		}
		if info.MonthlyVariableExpenses != nil {
			available = available.Sub(*info.MonthlyVariableExpenses)
		}
		d.AvailableMonthly = decimal.Max(decimal.Zero, available)
	}

	for _, tx := range snap.Transactions {
		switch tx.Type {
		case transaction.TypeIncome:
			d.TotalIncome = d.TotalIncome.Add(tx.Amount)
		case transaction.TypeExpense:
			d.TotalExpenses = d.TotalExpenses.Add(tx.Amount)
		}
	}
	return d
}
