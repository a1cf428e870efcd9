// Package healthz reports whether the service can answer requests.
package healthz

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/pacebudget/backend/internal/httputil"
	"github.com/pacebudget/backend/internal/models"
	"github.com/rs/zerolog/log"
)

type Response struct {
	Database bool    `json:"database" example:"true"` // The database answers
	Error    *string `json:"error" example:"sql: database is closed"`
}

func RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", Options)
	r.GET("", Get)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/healthz [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get health
// @Description	Returns the application health and, if not healthy, an error
// @Tags			General
// @Produce		json
// @Success		200	{object}	Response
// @Failure		503	{object}	Response
// @Router			/healthz [get]
func Get(c *gin.Context) {
	err := ping()
	if err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Err(err).Msg("health check failed")

		s := err.Error()
		c.JSON(http.StatusServiceUnavailable, Response{Error: &s})
		return
	}

	c.JSON(http.StatusOK, Response{Database: true})
}

func ping() error {
	sqlDB, err := models.DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Ping()
}
