package models

import (
	"strings"
	"time"

	"github.com/pacebudget/backend/internal/ledger"
	"github.com/pacebudget/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a single expense.
type Transaction struct {
	DefaultModel
	Date     time.Time       `gorm:"index"` // The calendar date at 00:00 UTC
	Amount   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Category types.Category
	Subgroup string
	Note     string
}

func (Transaction) Self() string {
	return "Transaction"
}

// AfterFind updates the timestamps to use UTC as timezone.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave
//   - reduces the date to its calendar day
//   - trims whitespace from string fields
//   - validates amount and category
func (t *Transaction) BeforeSave(_ *gorm.DB) (err error) {
	t.Subgroup = strings.TrimSpace(t.Subgroup)
	t.Note = strings.TrimSpace(t.Note)

	if t.Date.IsZero() {
		t.Date = time.Now()
	}
	t.Date = types.DayOf(t.Date).Time()

	if t.Amount.IsNegative() {
		return ErrAmountNegative
	}

	if _, err := types.ParseCategory(string(t.Category)); err != nil {
		return err
	}

	return nil
}

// Ledger returns the read-only view of the transaction.
func (t Transaction) Ledger() ledger.Transaction {
	return ledger.Transaction{
		ID:       t.ID,
		Day:      types.DayOf(t.Date),
		Amount:   t.Amount,
		Category: t.Category,
		Subgroup: t.Subgroup,
		Note:     t.Note,
	}
}

// AllTransactions returns the views of all transactions, oldest first.
func AllTransactions() ([]ledger.Transaction, error) {
	var transactions []Transaction
	err := DB.Order("date ASC, created_at ASC").Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	out := make([]ledger.Transaction, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, t.Ledger())
	}

	return out, nil
}
