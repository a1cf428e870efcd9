package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pacebudget/backend/internal/httputil"
	"github.com/pacebudget/backend/internal/models"
)

func RegisterRootRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Settings     string `json:"settings" example:"https://example.com/api/v1/settings"`         // URL of the settings endpoint
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions"` // URL of Transaction collection endpoint
	Periods      string `json:"periods" example:"https://example.com/api/v1/periods"`           // URL of the period endpoints, append a key like "2024-06"
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Settings:     url + "/v1/settings",
			Transactions: url + "/v1/transactions",
			Periods:      url + "/v1/periods",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
