package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pacebudget/backend/internal/httputil"
	"github.com/pacebudget/backend/internal/models"
	"github.com/pacebudget/backend/internal/period"
	"github.com/pacebudget/backend/internal/types"
	"golang.org/x/exp/slices"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", GetTransactions)
		r.POST("", CreateTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", OptionsTransactionDetail)
		r.GET("/:id", GetTransaction)
		r.PATCH("/:id", UpdateTransaction)
		r.DELETE("/:id", DeleteTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [options]
func OptionsTransactionDetail(c *gin.Context) {
	_, ok := getTransaction(c)
	if !ok {
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// getTransaction returns the transaction with the ID from the URI. If it
// cannot be loaded, the error response is written.
func getTransaction(c *gin.Context) (models.Transaction, bool) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), httpError{Error: s})
		return models.Transaction{}, false
	}

	var transaction models.Transaction
	err = models.DB.First(&transaction, "id = ?", uri.ID.UUID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return models.Transaction{}, false
	}

	return transaction, true
}

// @Summary		Create transactions
// @Description	Creates transactions from the list of submitted transaction data. The response code is the highest response code number that a single transaction creation would have caused. If it is not equal to 201, at least one transaction has an error.
// @Tags			Transactions
// @Produce		json
// @Success		201				{object}	TransactionCreateResponse
// @Failure		400				{object}	TransactionCreateResponse
// @Failure		500				{object}	TransactionCreateResponse
// @Param			transactions	body		[]TransactionEditable	true	"Transactions"
// @Router			/v1/transactions [post]
func CreateTransactions(c *gin.Context) {
	var editables []TransactionEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := TransactionCreateResponse{}
	url := c.GetString(string(models.DBContextURL))

	var days []types.Day
	for _, editable := range editables {
		transaction := editable.model()

		err := models.DB.Create(&transaction).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		days = append(days, types.DayOf(transaction.Date))
		data := newTransaction(url, transaction)
		r.Data = append(r.Data, TransactionResponse{Data: &data})
	}

	if len(days) > 0 {
		refreshSummaries(c, days...)
	}

	c.JSON(status, r)
}

// @Summary		Get transactions
// @Description	Returns a list of transactions, newest first
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionListResponse
// @Failure		400	{object}	TransactionListResponse
// @Failure		500	{object}	TransactionListResponse
// @Router			/v1/transactions [get]
// @Param			month		query	string	false	"Only transactions in the period with this key, e.g. 2024-06"
// @Param			category	query	string	false	"Filter by category"
// @Param			subgroup	query	string	false	"Filter by subgroup"
// @Param			search		query	string	false	"Search for this text in subgroup and note"
// @Param			offset		query	uint	false	"The offset of the first Transaction returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of transactions to return. Defaults to 50."
func GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{
			Error: &s,
		})
		return
	}

	// Get the fields that we're filtering for
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	model, err := filter.model()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	q := models.DB.
		Order("date DESC, created_at DESC").
		Where(&model, queryFields...)

	if slices.Contains(setFields, "Month") {
		r, err := monthRange(filter.Month)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), TransactionListResponse{
				Error: &s,
			})
			return
		}

		q = q.Where("transactions.date >= date(?)", r.Start.Time()).Where("transactions.date < date(?)", r.End.Time())
	}

	if filter.Search != "" {
		search := fmt.Sprintf("%%%s%%", filter.Search)
		q = q.Where("(subgroup LIKE ? OR note LIKE ?)", search, search)
	}

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var transactions []models.Transaction
	err = q.Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{
			Error: &s,
		})
		return
	}

	url := c.GetString(string(models.DBContextURL))
	data := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		data = append(data, newTransaction(url, transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// monthRange returns the range of the period with the key.
func monthRange(key string) (period.Range, error) {
	month, err := types.ParseMonth(key)
	if err != nil {
		return period.Range{}, err
	}

	settings, err := models.GetSettings()
	if err != nil {
		return period.Range{}, err
	}

	source, err := periodSource(month, settings)
	if err != nil {
		return period.Range{}, err
	}

	return period.RangeFor(source, month), nil
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [get]
func GetTransaction(c *gin.Context) {
	transaction, ok := getTransaction(c)
	if !ok {
		return
	}

	data := newTransaction(c.GetString(string(models.DBContextURL)), transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Update transaction
// @Description	Updates an existing transaction. Only values to be updated need to be specified.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func UpdateTransaction(c *gin.Context) {
	transaction, ok := getTransaction(c)
	if !ok {
		return
	}

	url := c.GetString(string(models.DBContextURL))

	// Values not contained in the body keep their current value
	data := newTransaction(url, transaction).TransactionEditable
	err := httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	previous := types.DayOf(transaction.Date)
	updated := data.model()
	updated.DefaultModel = transaction.DefaultModel

	err = models.DB.Save(&updated).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{
			Error: &s,
		})
		return
	}

	refreshSummaries(c, previous, types.DayOf(updated.Date))

	apiResource := newTransaction(url, updated)
	c.JSON(http.StatusOK, TransactionResponse{Data: &apiResource})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [delete]
func DeleteTransaction(c *gin.Context) {
	transaction, ok := getTransaction(c)
	if !ok {
		return
	}

	err := models.DB.Delete(&transaction).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	refreshSummaries(c, types.DayOf(transaction.Date))

	c.Status(http.StatusNoContent)
}

