package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"life-dashboard/internal/model"
	"life-dashboard/internal/repository"
)

// TransactionInput represents data required to record a transaction.
type TransactionInput struct {
	Description string
	Amount      float64
	Date        time.Time
	Category    string
	Type        string
	Month       int
	Year        int
}

// CategoryTotal is the expense sum of one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// MonthSummary aggregates a month of the ledger against its budget.
type MonthSummary struct {
	Year       int             `json:"year"`
	Month      int             `json:"month"`
	Income     float64         `json:"income"`
	Expenses   float64         `json:"expenses"`
	Balance    float64         `json:"balance"`
	Budget     float64         `json:"budget"`
	Remaining  float64         `json:"remaining"`
	Categories []CategoryTotal `json:"categories"`
}

// FinanceService manages the ledger and monthly budgets.
type FinanceService struct {
	repo *repository.FinanceRepository
}

func NewFinanceService(repo *repository.FinanceRepository) *FinanceService {
	return &FinanceService{repo: repo}
}

// ParseMonth parses a YYYY-MM period.
func ParseMonth(raw string) (year, month int, err error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(raw))
	if err != nil {
		return 0, 0, invalid("month %q must be YYYY-MM", raw)
	}
	return t.Year(), int(t.Month()), nil
}

// ListTransactions lists one month (YYYY-MM) or, for an empty period, everything.
func (s *FinanceService) ListTransactions(ctx context.Context, period string) ([]model.Transaction, error) {
	if period == "" {
		return s.repo.ListTransactions(ctx, 0, 0)
	}
	year, month, err := ParseMonth(period)
	if err != nil {
		return nil, err
	}
	return s.repo.ListTransactions(ctx, year, month)
}

func (s *FinanceService) CreateTransaction(ctx context.Context, input TransactionInput) (*model.Transaction, error) {
	var missing []string
	if strings.TrimSpace(input.Description) == "" {
		missing = append(missing, "description")
	}
	if input.Amount == 0 {
		missing = append(missing, "amount")
	}
	if input.Date.IsZero() {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(input.Category) == "" {
		missing = append(missing, "category")
	}
	if input.Type == "" {
		missing = append(missing, "type")
	}
	if len(missing) > 0 {
		return nil, invalid("missing fields: %s", strings.Join(missing, ", "))
	}
	if input.Amount < 0 {
		return nil, invalid("amount must be positive")
	}
	kind := model.TransactionType(input.Type)
	if kind != model.Income && kind != model.Expense {
		return nil, invalid("type must be income or expense, got %q", input.Type)
	}

	month, year := input.Month, input.Year
	if month == 0 {
		month = int(input.Date.Month())
	}
	if year == 0 {
		year = input.Date.Year()
	}
	if month < 1 || month > 12 {
		return nil, invalid("month %d out of range", month)
	}

	tx := model.Transaction{
		Description: strings.TrimSpace(input.Description),
		Amount:      input.Amount,
		Date:        input.Date,
		Category:    strings.TrimSpace(input.Category),
		Type:        kind,
		Month:       month,
		Year:        year,
	}
	if err := s.repo.CreateTransaction(ctx, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

func (s *FinanceService) DeleteTransaction(ctx context.Context, id uint) error {
	return s.repo.DeleteTransaction(ctx, id)
}

// Budget returns the month's budget, 0 when none was set.
func (s *FinanceService) Budget(ctx context.Context, period string) (float64, error) {
	year, month, err := ParseMonth(period)
	if err != nil {
		return 0, err
	}
	b, err := s.repo.GetBudget(ctx, year, month)
	if err != nil || b == nil {
		return 0, err
	}
	return b.Amount, nil
}

func (s *FinanceService) SetBudget(ctx context.Context, year, month int, amount float64) (float64, error) {
	if month < 1 || month > 12 || year < 1 {
		return 0, invalid("period %d-%02d out of range", year, month)
	}
	if amount < 0 {
		return 0, invalid("budget must not be negative")
	}
	b, err := s.repo.UpsertBudget(ctx, year, month, amount)
	if err != nil {
		return 0, err
	}
	return b.Amount, nil
}

// Summary totals a month. Known expense categories are always listed in
// their fixed order; other categories follow alphabetically.
func (s *FinanceService) Summary(ctx context.Context, period string) (*MonthSummary, error) {
	year, month, err := ParseMonth(period)
	if err != nil {
		return nil, err
	}
	txs, err := s.repo.ListTransactions(ctx, year, month)
	if err != nil {
		return nil, err
	}
	budget, err := s.repo.GetBudget(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("summary budget: %w", err)
	}

	sum := &MonthSummary{Year: year, Month: month}
	if budget != nil {
		sum.Budget = budget.Amount
	}

	perCategory := make(map[string]float64)
	for _, tx := range txs {
		switch tx.Type {
		case model.Income:
			sum.Income += tx.Amount
		case model.Expense:
			sum.Expenses += tx.Amount
			perCategory[tx.Category] += tx.Amount
		}
	}

	for _, c := range model.ExpenseCategories {
		sum.Categories = append(sum.Categories, CategoryTotal{Category: c, Amount: perCategory[c]})
		delete(perCategory, c)
	}
	extra := make([]string, 0, len(perCategory))
	for c := range perCategory {
		extra = append(extra, c)
	}
	sort.Strings(extra)
	for _, c := range extra {
		sum.Categories = append(sum.Categories, CategoryTotal{Category: c, Amount: perCategory[c]})
	}

	sum.Balance = sum.Income - sum.Expenses
	sum.Remaining = sum.Budget - sum.Expenses
	return sum, nil
}
