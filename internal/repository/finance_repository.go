package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"life-dashboard/internal/model"
)

// FinanceRepository stores ledger transactions and monthly budgets.
type FinanceRepository struct {
	db *gorm.DB
}

func NewFinanceRepository(db *gorm.DB) *FinanceRepository {
	return &FinanceRepository{db: db}
}

func (r *FinanceRepository) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// ListTransactions returns the month's transactions newest first; month 0 lists everything.
func (r *FinanceRepository) ListTransactions(ctx context.Context, year, month int) ([]model.Transaction, error) {
	q := r.db.WithContext(ctx).Order("date DESC, id DESC")
	if month != 0 {
		q = q.Where("year = ? AND month = ?", year, month)
	}
	var txs []model.Transaction
	if err := q.Find(&txs).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txs, nil
}

func (r *FinanceRepository) DeleteTransaction(ctx context.Context, id uint) error {
	if err := deleteByID[model.Transaction](r.db.WithContext(ctx), id); err != nil {
		return fmt.Errorf("delete transaction %d: %w", id, err)
	}
	return nil
}

// GetBudget returns the month's budget, or nil when none was set.
func (r *FinanceRepository) GetBudget(ctx context.Context, year, month int) (*model.Budget, error) {
	var budget model.Budget
	err := r.db.WithContext(ctx).Where("year = ? AND month = ?", year, month).First(&budget).Error
	switch {
	case err == nil:
		return &budget, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find budget: %w", err)
	}
}

// UpsertBudget creates or overwrites the month's budget.
func (r *FinanceRepository) UpsertBudget(ctx context.Context, year, month int, amount float64) (*model.Budget, error) {
	budget := model.Budget{Year: year, Month: month, Amount: amount}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "year"}, {Name: "month"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
	}).Create(&budget).Error
	if err != nil {
		return nil, fmt.Errorf("upsert budget: %w", err)
	}
	return r.GetBudget(ctx, year, month)
}
