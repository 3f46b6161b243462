package http

import (
	"net/http"

	"github.com/shopspring/decimal"

	"nestfin/internal/domain/report"
)

type ReportHandler struct {
	reports *report.Service
}

func NewReportHandler(reports *report.Service) *ReportHandler {
	return &ReportHandler{reports: reports}
}

type NetWorthResponse struct {
	NetWorth decimal.Decimal `json:"netWorth"`
}

type ProjectedExpensesResponse struct {
	Months            int             `json:"months"`
	ProjectedExpenses decimal.Decimal `json:"projectedExpenses"`
}

// HandleFinancialReport summarizes the last ?months=N months
func (h *ReportHandler) HandleFinancialReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	months, err := queryInt(r, "months", report.DefaultReportMonths)
	if err != nil {
		writeError(w, r, err)
		return
	}

	rep, err := h.reports.Financial(r.Context(), userID, months)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

// HandleSpendingAnalysis analyzes expenses over the last ?days=N days
func (h *ReportHandler) HandleSpendingAnalysis(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	days, err := queryInt(r, "days", report.DefaultAnalysisDays)
	if err != nil {
		writeError(w, r, err)
		return
	}

	analysis, err := h.reports.Spending(r.Context(), userID, days)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, analysis)
}

func (h *ReportHandler) HandleNetWorth(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	netWorth, err := h.reports.NetWorth(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, NetWorthResponse{NetWorth: netWorth})
}

func (h *ReportHandler) HandleProjectedExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	months, err := queryInt(r, "months", report.DefaultProjectionMonths)
	if err != nil {
		writeError(w, r, err)
		return
	}

	projected, err := h.reports.ProjectedExpenses(r.Context(), userID, months)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ProjectedExpensesResponse{Months: months, ProjectedExpenses: projected})
}
