package dashboard

import (
	"testing"

	"github.com/shopspring/decimal"

	"nestfin/internal/domain/personal"
	"nestfin/internal/domain/transaction"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func savings(amounts ...string) []*personal.MonthlySavings {
	out := make([]*personal.MonthlySavings, len(amounts))
	for i, a := range amounts {
		out[i] = &personal.MonthlySavings{ID: int64(i + 1), Month: i + 1, Year: 2025, Amount: dec(a)}
	}
	return out
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name string
		snap Snapshot
		want Derived
	}{
		{
			name: "empty",
			snap: Snapshot{},
			want: Derived{},
		},
		{
			name: "goal in progress",
			snap: Snapshot{
				Goal:           &personal.Goal{TargetAmount: dec("1000")},
				MonthlySavings: savings("200", "100"),
				ExtraExpenses:  []*personal.ExtraExpense{{Amount: dec("50")}},
			},
			want: Derived{
				TotalSavings:    dec("250"),
				NetWorth:        dec("250"),
				GoalProgress:    dec("25"),
				RemainingToGoal: dec("750"),
				MonthsToGoal:    6,
			},
		},
		{
			name: "goal reached caps progress",
			snap: Snapshot{
				Goal:           &personal.Goal{TargetAmount: dec("100")},
				MonthlySavings: savings("300"),
			},
			want: Derived{
				TotalSavings: dec("300"),
				NetWorth:     dec("300"),
				GoalProgress: dec("100"),
			},
		},
		{
			name: "extra expenses exceed savings",
			snap: Snapshot{
				Goal:           &personal.Goal{TargetAmount: dec("500")},
				MonthlySavings: savings("100"),
				ExtraExpenses:  []*personal.ExtraExpense{{Amount: dec("150")}},
			},
			want: Derived{
				NetWorth:        dec("-50"),
				RemainingToGoal: dec("500"),
			},
		},
		{
			name: "zero target",
			snap: Snapshot{
				Goal:           &personal.Goal{TargetAmount: decimal.Zero},
				MonthlySavings: savings("100"),
			},
			want: Derived{
				TotalSavings: dec("100"),
				NetWorth:     dec("100"),
			},
		},
		{
			name: "available monthly and transactions",
			snap: Snapshot{
				PersonalInfo: &personal.Info{
					MonthlyIncome:           decPtr("5000"),
					MonthlyFixedExpenses:    decPtr("2000"),
					MonthlyVariableExpenses: decPtr("1000.50"),
				},
				Transactions: []*transaction.Transaction{
					{Type: transaction.TypeIncome, Amount: dec("1000")},
					{Type: transaction.TypeExpense, Amount: dec("40")},
					{Type: transaction.TypeExpense, Amount: dec("10")},
				},
			},
			want: Derived{
				AvailableMonthly: dec("1999.50"),
				TotalIncome:      dec("1000"),
				TotalExpenses:    dec("50"),
			},
		},
		{
			name: "overspent budget floors at zero",
			snap: Snapshot{
				PersonalInfo: &personal.Info{MonthlyIncome: decPtr("100"), MonthlyFixedExpenses: decPtr("300")},
			},
			want: Derived{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.snap)
			checks := []struct {
				field     string
				got, want decimal.Decimal
			}{
				{"TotalSavings", got.TotalSavings, tt.want.TotalSavings},
				{"NetWorth", got.NetWorth, tt.want.NetWorth},
				{"GoalProgress", got.GoalProgress, tt.want.GoalProgress},
				{"RemainingToGoal", got.RemainingToGoal, tt.want.RemainingToGoal},
				{"AvailableMonthly", got.AvailableMonthly, tt.want.AvailableMonthly},
				{"TotalIncome", got.TotalIncome, tt.want.TotalIncome},
				{"TotalExpenses", got.TotalExpenses, tt.want.TotalExpenses},
			}
			for _, c := range checks {
				if !c.got.Equal(c.want) {
					t.Errorf("%s = %s, want %s", c.field, c.got, c.want)
				}
			}
			if got.MonthsToGoal != tt.want.MonthsToGoal {
				t.Errorf("MonthsToGoal = %d, want %d", got.MonthsToGoal, tt.want.MonthsToGoal)
			}
		})
	}
}
