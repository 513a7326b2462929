package model

import "time"

// TransactionType separates money in from money out.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// ExpenseCategories is the fixed list the finance panel aggregates over.
var ExpenseCategories = []string{
	"Lebensmittel",
	"Transport",
	"Wohnen",
	"Unterhaltung",
	"Gesundheit",
	"Shopping",
	"Bildung",
	"Sonstiges",
}

// IncomeCategories lists the categories offered for income entries.
var IncomeCategories = []string{
	"Gehalt",
	"Nebenjob",
	"Investments",
	"Verkauf",
	"Geschenk",
	"Rückerstattung",
	"Sonstiges",
}

// Transaction is one ledger line.
type Transaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Description string          `gorm:"not null" json:"description"`
	Amount      float64         `gorm:"not null" json:"amount"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Category    string          `gorm:"not null" json:"category"`
	Type        TransactionType `gorm:"not null" json:"type"`
	Month       int             `gorm:"index:idx_tx_period" json:"month"`
	Year        int             `gorm:"index:idx_tx_period" json:"year"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Budget is the spending limit for one month.
type Budget struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Year      int     `gorm:"uniqueIndex:idx_budget_period" json:"year"`
	Month     int     `gorm:"uniqueIndex:idx_budget_period" json:"month"`
	Amount    float64 `gorm:"not null;default:0" json:"amount"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
