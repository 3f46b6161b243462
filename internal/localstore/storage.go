// Package localstore is the client-side key/value cache behind the dashboard.
package localstore

import (
	"context"
	"strings"
)

// Storage is a string key/value store. Get reports ok=false for a missing key.
type Storage interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// DataType names one of the per-user entries.
type DataType string

const (
	DataPersonalInfo   DataType = "personal_info"
	DataGoal           DataType = "goal"
	DataTransactions   DataType = "transactions"
	DataMonthlySavings DataType = "monthly_savings"
	DataExtraExpenses  DataType = "extra_expenses"
)

const (
	keyPrefix = "nestfin"

	// CurrentUserKey holds the signed-in user.
	CurrentUserKey = keyPrefix + "_user"
)

// UserKey namespaces an entry by the owner's email, e.g. nestfin_ana@gmail.com_goal.
func UserKey(email string, t DataType) string {
	return keyPrefix + "_" + strings.ToLower(strings.TrimSpace(email)) + "_" + string(t)
}
