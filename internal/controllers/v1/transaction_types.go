package v1

import (
	"fmt"

	"github.com/pacebudget/backend/internal/models"
	"github.com/pacebudget/backend/internal/types"
	"github.com/shopspring/decimal"
)

type TransactionEditable struct {
	Date types.Day `json:"date" swaggertype:"string" example:"2024-06-03"` // Calendar date of the transaction. Defaults to today

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Amount decimal.Decimal `json:"amount" example:"14.03" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The amount for the transaction

	Category types.Category `json:"category" example:"needs"`        // One of needs, wants, savings
	Subgroup string         `json:"subgroup" example:"Groceries"`    // Free-form subgroup of the category
	Note     string         `json:"note" example:"Lunch" default:""` // A note
}

// model returns the database resource for the API representation of the editable fields
func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Date:     editable.Date.Time(),
		Amount:   editable.Amount,
		Category: editable.Category,
		Subgroup: editable.Subgroup,
		Note:     editable.Note,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

// Transaction is the representation of a Transaction in API v1.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Links TransactionLinks `json:"links"`
}

// newTransaction returns the API v1 representation of the resource
func newTransaction(url string, model models.Transaction) Transaction {
	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Date:     types.DayOf(model.Date),
			Amount:   model.Amount,
			Category: model.Category,
			Subgroup: model.Subgroup,
			Note:     model.Note,
		},
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`                                                          // List of created Transactions
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this transaction
	Data  *Transaction `json:"data"`                                                          // The Transaction data, if creation was successful
}

type TransactionQueryFilter struct {
	Month    string `form:"month" filterField:"false"`  // Only transactions in the period with this key
	Category string `form:"category"`                   // Category of the transaction
	Subgroup string `form:"subgroup"`                   // Exact subgroup
	Search   string `form:"search" filterField:"false"` // Search for this text in subgroup and note
	Offset   uint   `form:"offset" filterField:"false"` // The offset of the first Transaction returned. Defaults to 0.
	Limit    int    `form:"limit" filterField:"false"`  // Maximum number of transactions to return. Defaults to 50.
}

// model returns the transaction used for the gorm Where statement.
func (f TransactionQueryFilter) model() (models.Transaction, error) {
	var category types.Category
	if f.Category != "" {
		c, err := types.ParseCategory(f.Category)
		if err != nil {
			return models.Transaction{}, err
		}
		category = c
	}

	return models.Transaction{
		Category: category,
		Subgroup: f.Subgroup,
	}, nil
}
