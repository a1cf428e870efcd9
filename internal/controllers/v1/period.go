package v1

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pacebudget/backend/internal/httputil"
	"github.com/pacebudget/backend/internal/ledger"
	"github.com/pacebudget/backend/internal/models"
	"github.com/pacebudget/backend/internal/period"
	"github.com/pacebudget/backend/internal/types"
	"github.com/ryanuber/go-glob"
	"golang.org/x/exp/slices"
)

// RegisterPeriodRoutes registers the routes for periods with
// the RouterGroup that is passed.
func RegisterPeriodRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:month", OptionsPeriod)
	r.GET("/:month", GetPeriod)
	r.PATCH("/:month", UpdatePeriod)

	r.OPTIONS("/:month/next", OptionsPeriodAdjacent)
	r.GET("/:month/next", GetNextPeriod)
	r.OPTIONS("/:month/prev", OptionsPeriodAdjacent)
	r.GET("/:month/prev", GetPrevPeriod)

	r.OPTIONS("/:month/subgroups", OptionsPeriodAdjacent)
	r.GET("/:month/subgroups", GetSubgroups)

	r.OPTIONS("/:month/dashboard", OptionsPeriodAdjacent)
	r.GET("/:month/dashboard", GetDashboard)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Periods
// @Success		204
// @Param			month	path	string	true	"Key of the period, e.g. 2024-06"
// @Router			/v1/periods/{month} [options]
func OptionsPeriod(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Periods
// @Success		204
// @Param			month	path	string	true	"Key of the period, e.g. 2024-06"
// @Router			/v1/periods/{month}/next [options]
// @Router			/v1/periods/{month}/prev [options]
// @Router			/v1/periods/{month}/subgroups [options]
// @Router			/v1/periods/{month}/dashboard [options]
func OptionsPeriodAdjacent(c *gin.Context) {
	httputil.OptionsGet(c)
}

// periodSource returns how the bounds of the period are determined without
// creating its document.
func periodSource(month types.Month, settings models.Settings) (period.Source, error) {
	p, err := models.FindPeriod(month)
	if errors.Is(err, models.ErrResourceNotFound) {
		return period.Recomputed{StartDay: settings.StartDay}, nil
	}

	if err != nil {
		return nil, err
	}

	return p.Source(settings), nil
}

// getPeriod returns the settings and the document of the period with the key
// from the URI, creating the document on first access.
func getPeriod(c *gin.Context) (models.Period, models.Settings, error) {
	var uri URIMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return models.Period{}, models.Settings{}, err
	}

	settings, err := models.GetSettings()
	if err != nil {
		return models.Period{}, models.Settings{}, err
	}

	p, err := models.GetOrCreatePeriod(uri.Month, settings)
	if err != nil {
		return models.Period{}, models.Settings{}, err
	}

	return p, settings, nil
}

// parseNow returns the time from the "now" query parameter, defaulting to
// the current time.
func parseNow(c *gin.Context) (time.Time, error) {
	value, ok := c.GetQuery("now")
	if !ok || value == "" {
		return time.Now(), nil
	}

	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errNowInvalid
	}

	return now, nil
}

// @Summary		Get period
// @Description	Returns the period document with its allocations and its window. The document is created on first access.
// @Tags			Periods
// @Produce		json
// @Success		200		{object}	PeriodResponse
// @Failure		400		{object}	PeriodResponse
// @Failure		500		{object}	PeriodResponse
// @Param			month	path		string	true	"Key of the period, e.g. 2024-06"
// @Param			now		query		string	false	"Point in time for the window, RFC3339"
// @Router			/v1/periods/{month} [get]
func GetPeriod(c *gin.Context) {
	p, settings, err := getPeriod(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PeriodResponse{
			Error: &s,
		})
		return
	}

	now, err := parseNow(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PeriodResponse{
			Error: &s,
		})
		return
	}

	w := period.WindowFor(p.Source(settings), p.Month, now)
	data := newPeriod(c.GetString(string(models.DBContextURL)), p, w)
	c.JSON(http.StatusOK, PeriodResponse{Data: &data})
}

// @Summary		Update period
// @Description	Updates income, percent split or start day of a period. Only values to be updated need to be specified. Setting the start day freezes the bounds of this period again, other periods are not changed.
// @Tags			Periods
// @Accept			json
// @Produce		json
// @Success		200		{object}	PeriodResponse
// @Failure		400		{object}	PeriodResponse
// @Failure		500		{object}	PeriodResponse
// @Param			month	path		string			true	"Key of the period, e.g. 2024-06"
// @Param			period	body		PeriodEditable	true	"Period"
// @Router			/v1/periods/{month} [patch]
func UpdatePeriod(c *gin.Context) {
	p, settings, err := getPeriod(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PeriodResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, PeriodEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PeriodResponse{
			Error: &s,
		})
		return
	}

	url := c.GetString(string(models.DBContextURL))
	data := newPeriod(url, p, period.WindowFor(p.Source(settings), p.Month, time.Now())).PeriodEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PeriodResponse{
			Error: &s,
		})
		return
	}

	p.Income = data.Income
	p.PercentSplit = data.PercentSplit
	if slices.Contains(updateFields, "StartDay") {
		p.Freeze(data.StartDay)
	}

	err = models.DB.Save(&p).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PeriodResponse{
			Error: &s,
		})
		return
	}

	refreshSummary(c, p, settings)

	// Reload to include the new summary
	p, err = models.FindPeriod(p.Month)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PeriodResponse{
			Error: &s,
		})
		return
	}

	apiResource := newPeriod(url, p, period.WindowFor(p.Source(settings), p.Month, time.Now()))
	c.JSON(http.StatusOK, PeriodResponse{Data: &apiResource})
}

// @Summary		Get next period
// @Description	Returns the key of the period following this one
// @Tags			Periods
// @Produce		json
// @Success		200		{object}	PeriodKeyResponse
// @Failure		400		{object}	PeriodKeyResponse
// @Failure		500		{object}	PeriodKeyResponse
// @Param			month	path		string	true	"Key of the period, e.g. 2024-06"
// @Router			/v1/periods/{month}/next [get]
func GetNextPeriod(c *gin.Context) {
	adjacentPeriod(c, 1)
}

// @Summary		Get previous period
// @Description	Returns the key of the period preceding this one
// @Tags			Periods
// @Produce		json
// @Success		200		{object}	PeriodKeyResponse
// @Failure		400		{object}	PeriodKeyResponse
// @Failure		500		{object}	PeriodKeyResponse
// @Param			month	path		string	true	"Key of the period, e.g. 2024-06"
// @Router			/v1/periods/{month}/prev [get]
func GetPrevPeriod(c *gin.Context) {
	adjacentPeriod(c, -1)
}

// adjacentPeriod answers with the key delta periods away. The document of
// neither period is created.
func adjacentPeriod(c *gin.Context, delta int) {
	var uri URIMonth
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PeriodKeyResponse{
			Error: &s,
		})
		return
	}

	settings, err := models.GetSettings()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PeriodKeyResponse{
			Error: &s,
		})
		return
	}

	source, err := periodSource(uri.Month, settings)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PeriodKeyResponse{
			Error: &s,
		})
		return
	}

	month := period.MonthKeyAdd(uri.Month, period.StartDayOf(source), delta)
	c.JSON(http.StatusOK, PeriodKeyResponse{Data: &PeriodKey{
		Month: month,
		Links: newPeriodLinks(c.GetString(string(models.DBContextURL)), month),
	}})
}

// @Summary		Get subgroups
// @Description	Returns the spending per subgroup in the period, highest first
// @Tags			Periods
// @Produce		json
// @Success		200			{object}	SubgroupListResponse
// @Failure		400			{object}	SubgroupListResponse
// @Failure		500			{object}	SubgroupListResponse
// @Param			month		path		string	true	"Key of the period, e.g. 2024-06"
// @Param			category	query		string	false	"Only count transactions in this category"
// @Param			match		query		string	false	"Glob pattern for the subgroup, e.g. groc*"
// @Param			limit		query		int		false	"Maximum number of subgroups to return. Defaults to all."
// @Router			/v1/periods/{month}/subgroups [get]
func GetSubgroups(c *gin.Context) {
	var filter SubgroupQueryFilter
	err := c.ShouldBindQuery(&filter)
	if err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, SubgroupListResponse{
			Error: &s,
		})
		return
	}

	if filter.Limit < 0 {
		s := errLimitNegative.Error()
		c.JSON(http.StatusBadRequest, SubgroupListResponse{
			Error: &s,
		})
		return
	}

	var category *types.Category
	if filter.Category != "" {
		parsed, err := types.ParseCategory(filter.Category)
		if err != nil {
			s := errCategoryInvalid.Error()
			c.JSON(http.StatusBadRequest, SubgroupListResponse{
				Error: &s,
			})
			return
		}
		category = &parsed
	}

	p, settings, err := getPeriod(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubgroupListResponse{
			Error: &s,
		})
		return
	}

	in, err := inputs(p, settings, time.Now())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubgroupListResponse{
			Error: &s,
		})
		return
	}

	totals := ledger.TotalsBySubgroup(getEngine().Transactions(in), category)

	if filter.Match != "" {
		pattern := strings.ToLower(filter.Match)
		totals = slices.DeleteFunc(totals, func(s ledger.SubgroupTotal) bool {
			return !glob.Glob(pattern, strings.ToLower(s.Subgroup))
		})
	}

	if filter.Limit > 0 && len(totals) > filter.Limit {
		totals = totals[:filter.Limit]
	}

	c.JSON(http.StatusOK, SubgroupListResponse{Data: totals})
}
