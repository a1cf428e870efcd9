package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pacebudget/backend/internal/httputil"
	"github.com/pacebudget/backend/internal/insight"
)

// @Summary		Get dashboard
// @Description	Returns all views of a period: window, totals, panels, insights, badges, the daily series and the distribution. Insights are rendered in the language of the settings.
// @Tags			Periods
// @Produce		json
// @Success		200				{object}	DashboardResponse
// @Failure		400				{object}	DashboardResponse
// @Failure		500				{object}	DashboardResponse
// @Param			month			path		string	true	"Key of the period, e.g. 2024-06"
// @Param			now				query		string	false	"Point in time to evaluate the period at, RFC3339"
// @Param			limit			query		int		false	"Maximum number of dashboard insights"
// @Param			categoryLimit	query		int		false	"Maximum number of insights per category"
// @Router			/v1/periods/{month}/dashboard [get]
func GetDashboard(c *gin.Context) {
	var query DashboardQuery
	err := c.ShouldBindQuery(&query)
	if err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, DashboardResponse{
			Error: &s,
		})
		return
	}

	if query.Limit < 0 || query.CategoryLimit < 0 {
		s := errLimitNegative.Error()
		c.JSON(http.StatusBadRequest, DashboardResponse{
			Error: &s,
		})
		return
	}

	now, err := parseNow(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &s,
		})
		return
	}

	p, settings, err := getPeriod(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &s,
		})
		return
	}

	in, err := inputs(p, settings, now)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &s,
		})
		return
	}
	in.InsightLimit = query.Limit
	in.CategoryLimit = query.CategoryLimit

	printer := insight.NewPrinter(settings.Tag(), settings.Unit())
	dashboard := getEngine().Dashboard(in).Rendered(printer)

	c.JSON(http.StatusOK, DashboardResponse{Data: &dashboard})
}
