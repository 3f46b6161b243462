package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"nestfin/internal/domain/personal"
)

type PersonalHandler struct {
	personal *personal.Service
}

func NewPersonalHandler(svc *personal.Service) *PersonalHandler {
	return &PersonalHandler{personal: svc}
}

type InfoRequest struct {
	FullName                *string          `json:"fullName"`
	Email                   *string          `json:"email"`
	Phone                   *string          `json:"phone"`
	MonthlyIncome           *decimal.Decimal `json:"monthlyIncome"`
	MonthlyFixedExpenses    *decimal.Decimal `json:"monthlyFixedExpenses"`
	MonthlyVariableExpenses *decimal.Decimal `json:"monthlyVariableExpenses"`
	Notes                   *string          `json:"notes"`
}

type GoalRequest struct {
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
}

type SavingsRequest struct {
	Month  int             `json:"month"`
	Year   int             `json:"year"`
	Amount decimal.Decimal `json:"amount"`
	Date   string          `json:"date,omitempty"`
}

func (req SavingsRequest) params() (personal.SavingsParams, error) {
	date, err := optionalDate("date", req.Date)
	if err != nil {
		return personal.SavingsParams{}, err
	}
	return personal.SavingsParams{Month: req.Month, Year: req.Year, Amount: req.Amount, Date: date}, nil
}

type ExtraExpenseRequest struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date,omitempty"`
	Month       int             `json:"month,omitempty"`
	Year        int             `json:"year,omitempty"`
}

func (req ExtraExpenseRequest) params() (personal.ExtraExpenseParams, error) {
	date, err := optionalDate("date", req.Date)
	if err != nil {
		return personal.ExtraExpenseParams{}, err
	}
	return personal.ExtraExpenseParams{
		Description: req.Description,
		Amount:      req.Amount,
		Date:        date,
		Month:       req.Month,
		Year:        req.Year,
	}, nil
}

func (h *PersonalHandler) HandleGetInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	info, err := h.personal.GetInfo(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, info)
}

// HandleSaveInfo replaces the caller's profile
func (h *PersonalHandler) HandleSaveInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req InfoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := h.personal.SaveInfo(r.Context(), userID, personal.InfoParams{
		FullName:                req.FullName,
		Email:                   req.Email,
		Phone:                   req.Phone,
		MonthlyIncome:           req.MonthlyIncome,
		MonthlyFixedExpenses:    req.MonthlyFixedExpenses,
		MonthlyVariableExpenses: req.MonthlyVariableExpenses,
		Notes:                   req.Notes,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PersonalHandler) HandleCreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req GoalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	goal, err := h.personal.CreateGoal(r.Context(), userID, personal.GoalParams{Name: req.Name, TargetAmount: req.TargetAmount})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, goal)
}

func (h *PersonalHandler) HandleListGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	goals, err := h.personal.ListGoals(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, goals)
}

func (h *PersonalHandler) HandleListSavings(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	savings, err := h.personal.ListSavings(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, savings)
}

// HandleAddSavings records savings for a month, merging into an existing entry
func (h *PersonalHandler) HandleAddSavings(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req SavingsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	params, err := req.params()
	if err != nil {
		writeError(w, r, err)
		return
	}

	saved, err := h.personal.AddSavings(r.Context(), userID, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, saved)
}

func (h *PersonalHandler) HandleUpdateSavings(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req SavingsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	params, err := req.params()
	if err != nil {
		writeError(w, r, err)
		return
	}

	saved, err := h.personal.UpdateSavings(r.Context(), userID, id, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, saved)
}

func (h *PersonalHandler) HandleDeleteSavings(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.personal.DeleteSavings(r.Context(), userID, id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *PersonalHandler) HandleListExtraExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	expenses, err := h.personal.ListExtraExpenses(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, expenses)
}

func (h *PersonalHandler) HandleAddExtraExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req ExtraExpenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	params, err := req.params()
	if err != nil {
		writeError(w, r, err)
		return
	}

	expense, err := h.personal.AddExtraExpense(r.Context(), userID, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, expense)
}

func (h *PersonalHandler) HandleUpdateExtraExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req ExtraExpenseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	params, err := req.params()
	if err != nil {
		writeError(w, r, err)
		return
	}

	expense, err := h.personal.UpdateExtraExpense(r.Context(), userID, id, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, expense)
}

func (h *PersonalHandler) HandleDeleteExtraExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.personal.DeleteExtraExpense(r.Context(), userID, id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
