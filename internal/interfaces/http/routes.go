package http

import "net/http"

// Handlers groups every API handler so the routes can be registered at once.
type Handlers struct {
	Auth        *AuthHandler
	User        *UserHandler
	Transaction *TransactionHandler
	Report      *ReportHandler
	Personal    *PersonalHandler
	Email       *EmailHandler
}

// Register mounts the API on mux. Routes other than health, auth and email
// go through requireAuth.
func (h *Handlers) Register(mux *http.ServeMux, requireAuth func(http.Handler) http.Handler) {
	protected := func(fn http.HandlerFunc) http.Handler {
		return requireAuth(fn)
	}

	mux.HandleFunc("GET /health", HandleHealth)

	// Public
	mux.HandleFunc("POST /api/auth/register", h.Auth.HandleRegister)
	mux.HandleFunc("POST /api/auth/login", h.Auth.HandleLogin)
	mux.HandleFunc("POST /api/email/send-verification", h.Email.HandleSendVerification)
	mux.HandleFunc("POST /api/email/send-password-reset", h.Email.HandleSendPasswordReset)
	mux.HandleFunc("GET /api/transactions/categories", h.Transaction.HandleListCategories)

	mux.Handle("GET /api/users/me", protected(h.User.HandleMe))

	mux.Handle("POST /api/transactions", protected(h.Transaction.HandleCreateTransaction))
	mux.Handle("GET /api/transactions", protected(h.Transaction.HandleListTransactions))
	mux.Handle("GET /api/transactions/report", protected(h.Report.HandleFinancialReport))
	mux.Handle("GET /api/transactions/spending-analysis", protected(h.Report.HandleSpendingAnalysis))
	mux.Handle("GET /api/transactions/net-worth", protected(h.Report.HandleNetWorth))
	mux.Handle("GET /api/transactions/projected-expenses", protected(h.Report.HandleProjectedExpenses))
	mux.Handle("GET /api/transactions/{id}", protected(h.Transaction.HandleGetTransaction))
	mux.Handle("PUT /api/transactions/{id}", protected(h.Transaction.HandleUpdateTransaction))
	mux.Handle("DELETE /api/transactions/{id}", protected(h.Transaction.HandleDeleteTransaction))

	mux.Handle("GET /api/personal/info", protected(h.Personal.HandleGetInfo))
	mux.Handle("PUT /api/personal/info", protected(h.Personal.HandleSaveInfo))
	mux.Handle("POST /api/personal/goals", protected(h.Personal.HandleCreateGoal))
	mux.Handle("GET /api/personal/goals", protected(h.Personal.HandleListGoals))
	mux.Handle("GET /api/personal/savings", protected(h.Personal.HandleListSavings))
	mux.Handle("POST /api/personal/savings", protected(h.Personal.HandleAddSavings))
	mux.Handle("PUT /api/personal/savings/{id}", protected(h.Personal.HandleUpdateSavings))
	mux.Handle("DELETE /api/personal/savings/{id}", protected(h.Personal.HandleDeleteSavings))
	mux.Handle("GET /api/personal/extra-expenses", protected(h.Personal.HandleListExtraExpenses))
	mux.Handle("POST /api/personal/extra-expenses", protected(h.Personal.HandleAddExtraExpense))
	mux.Handle("PUT /api/personal/extra-expenses/{id}", protected(h.Personal.HandleUpdateExtraExpense))
	mux.Handle("DELETE /api/personal/extra-expenses/{id}", protected(h.Personal.HandleDeleteExtraExpense))
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
