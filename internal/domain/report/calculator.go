package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"nestfin/internal/domain/transaction"
)

var hundred = decimal.NewFromInt(100)

// BuildFinancialReport aggregates the transactions of a trailing window of
// the given number of months ending at now.
func BuildFinancialReport(txs []*transaction.Transaction, months int, now time.Time) *FinancialReport {
	now = now.UTC()
	income, expenses := totals(txs)
	net := income.Sub(expenses)

	return &FinancialReport{
		Months:                   months,
		TotalIncome:              income,
		TotalExpenses:            expenses,
		NetIncome:                net,
		SavingsRate:              percentage(net, income),
		CategoryBreakdown:        breakdown(txs, income, expenses),
		MonthlyTrends:            monthlyTrends(txs, months, now),
		RecentTransactions:       recent(txs, recentTransactionsLimit),
		AverageDailySpending:     averageDailySpending(txs, expenses, now),
		ProjectedMonthlyExpenses: meanMonthlyExpenses(txs),
		ReportDate:               now,
	}
}

// BuildSpendingAnalysis summarizes the expenses of a trailing window of days.
// Week and month averages divide by days/7 and days/30.
func BuildSpendingAnalysis(txs []*transaction.Transaction, days int) *SpendingAnalysis {
	expenses := filterType(txs, transaction.TypeExpense)
	_, total := totals(expenses)

	a := &SpendingAnalysis{
		Days:                 days,
		TotalSpent:           total,
		TotalTransactions:    len(expenses),
		HighestSingleExpense: decimal.Zero,
		LowestSingleExpense:  decimal.Zero,
		AveragePerDay:        decimal.Zero,
		AveragePerWeek:       decimal.Zero,
		AveragePerMonth:      decimal.Zero,
		TopCategories:        []CategoryBreakdown{},
	}

	if days > 0 {
		d := decimal.NewFromInt(int64(days))
		a.AveragePerDay = ratio(total, d)
		a.AveragePerWeek = ratio(total, d.Div(decimal.NewFromInt(7)))
		a.AveragePerMonth = ratio(total, d.Div(decimal.NewFromInt(30)))
	}

	for i, tx := range expenses {
		if i == 0 || tx.Amount.GreaterThan(a.HighestSingleExpense) {
			a.HighestSingleExpense = tx.Amount
		}
		if i == 0 || tx.Amount.LessThan(a.LowestSingleExpense) {
			a.LowestSingleExpense = tx.Amount
		}
	}

	top := breakdown(expenses, decimal.Zero, total)
	if len(top) > topCategoriesLimit {
		top = top[:topCategoriesLimit]
	}
	a.TopCategories = top

	return a
}

// NetWorth is lifetime income minus lifetime expense.
func NetWorth(txs []*transaction.Transaction) decimal.Decimal {
	income, expenses := totals(txs)
	return income.Sub(expenses)
}

// ProjectExpenses multiplies the mean monthly expense of txs by months.
func ProjectExpenses(txs []*transaction.Transaction, months int) decimal.Decimal {
	return meanMonthlyExpenses(txs).Mul(decimal.NewFromInt(int64(months)))
}

func totals(txs []*transaction.Transaction) (income, expenses decimal.Decimal) {
	income, expenses = decimal.Zero, decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case transaction.TypeIncome:
			income = income.Add(tx.Amount)
		case transaction.TypeExpense:
			expenses = expenses.Add(tx.Amount)
		}
	}
	return income, expenses
}

func filterType(txs []*transaction.Transaction, t transaction.Type) []*transaction.Transaction {
	var out []*transaction.Transaction
	for _, tx := range txs {
		if tx.Type == t {
			out = append(out, tx)
		}
	}
	return out
}

// breakdown groups txs by category. Each share is taken against the total
// of the category's own type.
func breakdown(txs []*transaction.Transaction, income, expenses decimal.Decimal) []CategoryBreakdown {
	index := make(map[transaction.Category]int)
	out := []CategoryBreakdown{}

	for _, tx := range txs {
		i, ok := index[tx.Category]
		if !ok {
			i = len(out)
			index[tx.Category] = i
			out = append(out, CategoryBreakdown{
				Category:     tx.Category,
				CategoryName: tx.Category.Name(),
				Type:         tx.Type,
				Amount:       decimal.Zero,
			})
		}
		out[i].Amount = out[i].Amount.Add(tx.Amount)
		out[i].TransactionCount++
	}

	for i := range out {
		b := &out[i]
		b.AverageAmount = ratio(b.Amount, decimal.NewFromInt(int64(b.TransactionCount)))
		whole := expenses
		if b.Type == transaction.TypeIncome {
			whole = income
		}
		b.Percentage = percentage(b.Amount, whole)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func monthlyTrends(txs []*transaction.Transaction, months int, now time.Time) []MonthlyTrend {
	type bucket struct{ income, expenses decimal.Decimal }
	sums := make(map[monthKey]*bucket)
	for _, tx := range txs {
		k := keyOf(tx.Date)
		b, ok := sums[k]
		if !ok {
			b = &bucket{income: decimal.Zero, expenses: decimal.Zero}
			sums[k] = b
		}
		switch tx.Type {
		case transaction.TypeIncome:
			b.income = b.income.Add(tx.Amount)
		case transaction.TypeExpense:
			b.expenses = b.expenses.Add(tx.Amount)
		}
	}

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	out := make([]MonthlyTrend, 0, months)
	for i := months - 1; i >= 0; i-- {
		m := first.AddDate(0, -i, 0)
		trend := MonthlyTrend{
			Year:      m.Year(),
			Month:     int(m.Month()),
			MonthName: m.Format("Jan/2006"),
			Income:    decimal.Zero,
			Expenses:  decimal.Zero,
		}
		if b, ok := sums[keyOf(m)]; ok {
			trend.Income = b.income
			trend.Expenses = b.expenses
		}
		trend.NetIncome = trend.Income.Sub(trend.Expenses)
		trend.SavingsRate = percentage(trend.NetIncome, trend.Income)
		out = append(out, trend)
	}
	return out
}

func recent(txs []*transaction.Transaction, limit int) []*transaction.Transaction {
	out := make([]*transaction.Transaction, len(txs))
	copy(out, txs)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].ID > out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// averageDailySpending divides total expense by the whole days elapsed
// since the earliest expense, counting that day.
func averageDailySpending(txs []*transaction.Transaction, expenses decimal.Decimal, now time.Time) decimal.Decimal {
	var earliest time.Time
	for _, tx := range txs {
		if tx.Type != transaction.TypeExpense {
			continue
		}
		if earliest.IsZero() || tx.Date.Before(earliest) {
			earliest = tx.Date
		}
	}
	if earliest.IsZero() {
		return decimal.Zero
	}

	days := int64(now.Sub(earliest).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return ratio(expenses, decimal.NewFromInt(days))
}

// meanMonthlyExpenses averages the expense sums of the calendar months that
// have at least one expense.
func meanMonthlyExpenses(txs []*transaction.Transaction) decimal.Decimal {
	sums := make(map[monthKey]decimal.Decimal)
	for _, tx := range txs {
		if tx.Type != transaction.TypeExpense {
			continue
		}
		k := keyOf(tx.Date)
		sums[k] = sums[k].Add(tx.Amount)
	}
	if len(sums) == 0 {
		return decimal.Zero
	}

	total := decimal.Zero
	for _, s := range sums {
		total = total.Add(s)
	}
	return ratio(total, decimal.NewFromInt(int64(len(sums))))
}

type monthKey struct {
	year  int
	month time.Month
}

func keyOf(t time.Time) monthKey {
	t = t.UTC()
	return monthKey{year: t.Year(), month: t.Month()}
}

// addMonths shifts t by n calendar months, clamping the day to the end of
// the target month.
func addMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	target := first.AddDate(0, n, 0)
	lastDay := target.AddDate(0, 1, -1).Day()
	day := t.Day()
	if day > lastDay {
		day = lastDay
	}
	return target.AddDate(0, 0, day-1)
}

// ratio returns num/den rounded to cents, or zero when den is zero.
func ratio(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den).Round(2)
}

// percentage returns part/whole*100 rounded to two places, or zero when
// whole is zero.
func percentage(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole).Round(2)
}
