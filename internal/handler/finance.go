package handler

import (
	"context"
	"net/http"

	"life-dashboard/internal/model"
	"life-dashboard/internal/service"
)

type transactionRequest struct {
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        *dateTime `json:"date"`
	Category    string    `json:"category"`
	Type        string    `json:"type"`
	Month       int       `json:"month"`
	Year        int       `json:"year"`
}

type budgetRequest struct {
	Year   int      `json:"year"`
	Month  int      `json:"month"`
	Amount *float64 `json:"amount"`
}

type budgetResponse struct {
	Year   int     `json:"year"`
	Month  int     `json:"month"`
	Amount float64 `json:"amount"`
}

type categoriesResponse struct {
	Expense []string `json:"expense"`
	Income  []string `json:"income"`
}

// ListTransactions answers GET /api/finance/transactions?month=YYYY-MM.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), ListTimeout)
	defer cancel()

	txs, err := h.svc.Finance.ListTransactions(ctx, r.URL.Query().Get("month"))
	if err != nil {
		h.fail(w, "list transactions", err)
		return
	}
	h.sendOK(w, http.StatusOK, txs, "")
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), CreateTimeout)
	defer cancel()

	var req transactionRequest
	if !h.decode(w, r, &req) {
		return
	}
	input := service.TransactionInput{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Type:        req.Type,
		Month:       req.Month,
		Year:        req.Year,
	}
	if t := req.Date.ptr(); t != nil {
		input.Date = *t
	}

	tx, err := h.svc.Finance.CreateTransaction(ctx, input)
	if err != nil {
		h.fail(w, "create transaction", err)
		return
	}
	h.sendOK(w, http.StatusCreated, tx, "transaction created")
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), DeleteTimeout)
	defer cancel()

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.Finance.DeleteTransaction(ctx, id); err != nil {
		h.fail(w, "delete transaction", err)
		return
	}
	h.sendOK(w, http.StatusOK, nil, "transaction deleted")
}

// GetBudget answers GET /api/finance/budget?month=YYYY-MM, defaulting to
// the current month.
func (h *Handler) GetBudget(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), DefaultTimeout)
	defer cancel()

	period := r.URL.Query().Get("month")
	if period == "" {
		period = h.currentMonth()
	}
	year, month, err := service.ParseMonth(period)
	if err != nil {
		h.fail(w, "get budget", err)
		return
	}
	amount, err := h.svc.Finance.Budget(ctx, period)
	if err != nil {
		h.fail(w, "get budget", err)
		return
	}
	h.sendOK(w, http.StatusOK, budgetResponse{Year: year, Month: month, Amount: amount}, "")
}

func (h *Handler) SetBudget(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), UpdateTimeout)
	defer cancel()

	var req budgetRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Amount == nil {
		h.sendError(w, http.StatusBadRequest, "VALIDATION_ERROR", "amount is required")
		return
	}
	if req.Year == 0 || req.Month == 0 {
		now := h.now()
		if req.Year == 0 {
			req.Year = now.Year()
		}
		if req.Month == 0 {
			req.Month = int(now.Month())
		}
	}

	amount, err := h.svc.Finance.SetBudget(ctx, req.Year, req.Month, *req.Amount)
	if err != nil {
		h.fail(w, "set budget", err)
		return
	}
	h.sendOK(w, http.StatusOK, budgetResponse{Year: req.Year, Month: req.Month, Amount: amount}, "budget saved")
}

// Summary answers GET /api/finance/summary?month=YYYY-MM.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), DefaultTimeout)
	defer cancel()

	period := r.URL.Query().Get("month")
	if period == "" {
		period = h.currentMonth()
	}
	sum, err := h.svc.Finance.Summary(ctx, period)
	if err != nil {
		h.fail(w, "finance summary", err)
		return
	}
	h.sendOK(w, http.StatusOK, sum, "")
}

// Categories answers GET /api/finance/categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	h.sendOK(w, http.StatusOK, categoriesResponse{
		Expense: model.ExpenseCategories,
		Income:  model.IncomeCategories,
	}, "")
}
