package report

import (
	"time"

	"github.com/shopspring/decimal"

	"nestfin/internal/domain/transaction"
)

const (
	DefaultReportMonths     = 6
	DefaultAnalysisDays     = 30
	DefaultProjectionMonths = 3
	MaxMonths               = 120
	MaxDays                 = 3650

	// projectionHistoryMonths is the look-back used by ProjectedExpenses.
	projectionHistoryMonths = 6
	recentTransactionsLimit = 10
	topCategoriesLimit      = 5
)

type CategoryBreakdown struct {
	Category         transaction.Category `json:"category"`
	CategoryName     string               `json:"categoryName"`
	Type             transaction.Type     `json:"type"`
	Amount           decimal.Decimal      `json:"amount"`
	Percentage       decimal.Decimal      `json:"percentage"`
	TransactionCount int                  `json:"transactionCount"`
	AverageAmount    decimal.Decimal      `json:"averageAmount"`
}

type MonthlyTrend struct {
	Year        int             `json:"year"`
	Month       int             `json:"month"`
	MonthName   string          `json:"monthName"`
	Income      decimal.Decimal `json:"income"`
	Expenses    decimal.Decimal `json:"expenses"`
	NetIncome   decimal.Decimal `json:"netIncome"`
	SavingsRate decimal.Decimal `json:"savingsRate"`
}

type FinancialReport struct {
	Months                   int                        `json:"months"`
	TotalIncome              decimal.Decimal            `json:"totalIncome"`
	TotalExpenses            decimal.Decimal            `json:"totalExpenses"`
	NetIncome                decimal.Decimal            `json:"netIncome"`
	SavingsRate              decimal.Decimal            `json:"savingsRate"`
	CategoryBreakdown        []CategoryBreakdown        `json:"categoryBreakdown"`
	MonthlyTrends            []MonthlyTrend             `json:"monthlyTrends"`
	RecentTransactions       []*transaction.Transaction `json:"recentTransactions"`
	AverageDailySpending     decimal.Decimal            `json:"averageDailySpending"`
	ProjectedMonthlyExpenses decimal.Decimal            `json:"projectedMonthlyExpenses"`
	ReportDate               time.Time                  `json:"reportDate"`
}

type SpendingAnalysis struct {
	Days                 int                 `json:"days"`
	TotalSpent           decimal.Decimal     `json:"totalSpent"`
	TotalTransactions    int                 `json:"totalTransactions"`
	AveragePerDay        decimal.Decimal     `json:"averagePerDay"`
	AveragePerWeek       decimal.Decimal     `json:"averagePerWeek"`
	AveragePerMonth      decimal.Decimal     `json:"averagePerMonth"`
	HighestSingleExpense decimal.Decimal     `json:"highestSingleExpense"`
	LowestSingleExpense  decimal.Decimal     `json:"lowestSingleExpense"`
	TopCategories        []CategoryBreakdown `json:"topCategories"`
}
