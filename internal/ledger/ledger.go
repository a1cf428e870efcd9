// Package ledger reduces transaction lists to period-scoped totals.
package ledger

import (
	"sort"

	"github.com/google/uuid"
	"github.com/pacebudget/backend/internal/period"
	"github.com/pacebudget/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Transaction is the read-only view of a recorded transaction.
type Transaction struct {
	ID       uuid.UUID       `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Day      types.Day       `json:"date" example:"2024-06-03"`
	Amount   decimal.Decimal `json:"amount" example:"12.40"`
	Category types.Category  `json:"category" example:"needs"`
	Subgroup string          `json:"subgroup" example:"Groceries"`
	Note     string          `json:"note,omitempty" example:"Farmers market"`
}

// InPeriod returns the transactions whose day is in [r.Start, r.End).
//
// A transaction dated on the end day belongs to the next period.
func InPeriod(txns []Transaction, r period.Range) []Transaction {
	out := make([]Transaction, 0)
	for _, t := range txns {
		if r.Contains(t.Day) {
			out = append(out, t)
		}
	}

	return out
}

// TotalsByCategory sums the amounts per category.
// Transactions with an unknown category are not counted.
func TotalsByCategory(txns []Transaction) types.CategoryAmounts {
	var totals types.CategoryAmounts
	for _, t := range txns {
		totals = totals.Add(t.Category, t.Amount)
	}

	return totals
}

// Total returns the sum of all transactions with a known category.
func Total(txns []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		if t.Category.Valid() {
			total = total.Add(t.Amount)
		}
	}

	return total
}

// SubgroupTotal is the spending for one subgroup.
type SubgroupTotal struct {
	Subgroup string          `json:"subgroup" example:"Groceries"`
	Total    decimal.Decimal `json:"total" example:"212.80"`
	Count    int             `json:"count" example:"9"`
}

// TotalsBySubgroup groups the transactions by subgroup and sums them.
//
// If category is not nil, only transactions in that category are counted.
// The result is sorted by total, descending. Subgroups with equal totals
// keep the order in which they first appeared.
func TotalsBySubgroup(txns []Transaction, category *types.Category) []SubgroupTotal {
	index := make(map[string]int)
	out := make([]SubgroupTotal, 0)

	for _, t := range txns {
		if !t.Category.Valid() || (category != nil && t.Category != *category) {
			continue
		}

		i, ok := index[t.Subgroup]
		if !ok {
			i = len(out)
			index[t.Subgroup] = i
			out = append(out, SubgroupTotal{Subgroup: t.Subgroup, Total: decimal.Zero})
		}

		out[i].Total = out[i].Total.Add(t.Amount)
		out[i].Count++
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total.GreaterThan(out[j].Total)
	})

	return out
}
