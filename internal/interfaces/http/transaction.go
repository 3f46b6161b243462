package http

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"nestfin/internal/domain/transaction"
	"nestfin/internal/domain/validation"
)

type TransactionHandler struct {
	transactions *transaction.Service
}

func NewTransactionHandler(transactions *transaction.Service) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// TransactionRequest is the body of create and update. Type and category
// accept either their key or numeric code.
type TransactionRequest struct {
	Description string               `json:"description"`
	Amount      decimal.Decimal      `json:"amount"`
	Type        transaction.Type     `json:"type"`
	Category    transaction.Category `json:"category"`
	Date        string               `json:"date"`
	Notes       *string              `json:"notes,omitempty"`
	Location    *string              `json:"location,omitempty"`
}

func (req TransactionRequest) params() (transaction.Params, error) {
	date, err := optionalDate("date", req.Date)
	if err != nil {
		return transaction.Params{}, err
	}
	return transaction.Params{
		Description: req.Description,
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    req.Category,
		Date:        date,
		Notes:       req.Notes,
		Location:    req.Location,
	}, nil
}

// HandleCreateTransaction records a new transaction for the caller
func (h *TransactionHandler) HandleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req TransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	params, err := req.params()
	if err != nil {
		writeError(w, r, err)
		return
	}

	tx, err := h.transactions.Create(r.Context(), userID, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tx)
}

// HandleListTransactions returns one page of the caller's transactions
func (h *TransactionHandler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	q, err := parseListQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	page, err := h.transactions.List(r.Context(), userID, q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// HandleGetTransaction returns a specific transaction
func (h *TransactionHandler) HandleGetTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	tx, err := h.transactions.Get(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tx)
}

// HandleUpdateTransaction overwrites every field of a transaction
func (h *TransactionHandler) HandleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req TransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	params, err := req.params()
	if err != nil {
		writeError(w, r, err)
		return
	}

	tx, err := h.transactions.Update(r.Context(), userID, id, params)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tx)
}

// HandleDeleteTransaction soft-deletes a transaction
func (h *TransactionHandler) HandleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.transactions.Delete(r.Context(), userID, id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseListQuery reads the listing filters. endDate is inclusive on the
// wire and becomes the exclusive start of the following day.
func parseListQuery(r *http.Request) (transaction.ListQuery, error) {
	var q transaction.ListQuery
	values := r.URL.Query()

	if v := values.Get("type"); v != "" {
		t, err := transaction.ParseType(v)
		if err != nil {
			return q, validation.NewError("type", err.Error())
		}
		q.Filter.Type = &t
	}
	if v := values.Get("category"); v != "" {
		c, err := transaction.ParseCategory(v)
		if err != nil {
			return q, validation.NewError("category", err.Error())
		}
		q.Filter.Category = &c
	}
	if v := values.Get("startDate"); v != "" {
		start, err := optionalDate("startDate", v)
		if err != nil {
			return q, err
		}
		q.Filter.StartDate = &start
	}
	if v := values.Get("endDate"); v != "" {
		end, err := optionalDate("endDate", v)
		if err != nil {
			return q, err
		}
		end = end.Truncate(24 * time.Hour).AddDate(0, 0, 1)
		q.Filter.EndDate = &end
	}

	var err error
	if q.Page, err = queryInt(r, "page", transaction.DefaultPage); err != nil {
		return q, err
	}
	if q.PageSize, err = queryInt(r, "pageSize", transaction.DefaultPageSize); err != nil {
		return q, err
	}
	return q, nil
}

type CategoryResponse struct {
	Code int              `json:"code"`
	Key  string           `json:"key"`
	Name string           `json:"name"`
	Type transaction.Type `json:"type"`
}

// HandleListCategories returns the category table, optionally narrowed by ?type=
func (h *TransactionHandler) HandleListCategories(w http.ResponseWriter, r *http.Request) {
	var typ transaction.Type
	if v := r.URL.Query().Get("type"); v != "" {
		t, err := transaction.ParseType(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		typ = t
	}

	categories := transaction.Categories(typ)
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryResponse{Code: int(c), Key: c.Key(), Name: c.Name(), Type: c.Type()})
	}

	writeJSON(w, http.StatusOK, out)
}
