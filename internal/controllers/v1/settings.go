package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pacebudget/backend/internal/httputil"
	"github.com/pacebudget/backend/internal/models"
)

// RegisterSettingsRoutes registers the routes for the settings with
// the RouterGroup that is passed.
func RegisterSettingsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsSettings)
	r.GET("", GetSettings)
	r.PATCH("", UpdateSettings)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Settings
// @Success		204
// @Router			/v1/settings [options]
func OptionsSettings(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// @Summary		Get settings
// @Description	Returns the settings. They are created with the defaults on first access.
// @Tags			Settings
// @Produce		json
// @Success		200	{object}	SettingsResponse
// @Failure		500	{object}	SettingsResponse
// @Router			/v1/settings [get]
func GetSettings(c *gin.Context) {
	settings, err := models.GetSettings()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	data := newSettings(c.GetString(string(models.DBContextURL)), settings)
	c.JSON(http.StatusOK, SettingsResponse{Data: &data})
}

// @Summary		Update settings
// @Description	Updates the settings. Only values to be updated need to be specified. Existing periods keep their frozen bounds.
// @Tags			Settings
// @Accept			json
// @Produce		json
// @Success		200			{object}	SettingsResponse
// @Failure		400			{object}	SettingsResponse
// @Failure		500			{object}	SettingsResponse
// @Param			settings	body		SettingsEditable	true	"Settings"
// @Router			/v1/settings [patch]
func UpdateSettings(c *gin.Context) {
	settings, err := models.GetSettings()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	// Values not contained in the body keep their current value
	data := newSettings("", settings).SettingsEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	settings = data.apply(settings)
	err = models.DB.Save(&settings).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SettingsResponse{
			Error: &s,
		})
		return
	}

	apiResource := newSettings(c.GetString(string(models.DBContextURL)), settings)
	c.JSON(http.StatusOK, SettingsResponse{Data: &apiResource})
}
