package httputil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/url"
	"reflect"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// GetURLFields returns which fields of the filter are set in the query string.
//
// queryFields contains the field names that can be used directly in a gorm
// Where statement. Fields tagged with filterField:"false" are processed by
// explicit logic in the controller and are only contained in setFields.
// As gorm uses interface{} as type for the Where statement, queryFields
// is a []any.
func GetURLFields(url *url.URL, filter any) ([]any, []string) {
	var queryFields []any
	var setFields []string

	query := url.Query()
	val := reflect.Indirect(reflect.ValueOf(filter))
	for i := 0; i < val.NumField(); i++ {
		field := val.Type().Field(i)
		param := field.Tag.Get("form")

		if !query.Has(param) {
			continue
		}

		setFields = append(setFields, field.Name)
		if field.Tag.Get("filterField") != "false" {
			queryFields = append(queryFields, field.Name)
		}
	}

	return queryFields, setFields
}

// GetBodyFields returns the names of the fields of resource that are set in
// the JSON body of the request.
//
// The request body is read and restored, so this must be called before
// BindData.
func GetBodyFields(c *gin.Context, resource any) ([]string, error) {
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

	if len(body) == 0 {
		return nil, ErrRequestBodyEmpty
	}

	var mapBody map[string]any
	if err := json.Unmarshal(body, &mapBody); err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Msgf("%T: %v", err, err.Error())
		return nil, ErrInvalidBody
	}

	var bodyFields []string
	val := reflect.Indirect(reflect.ValueOf(resource))
	for i := 0; i < val.NumField(); i++ {
		field := val.Type().Field(i)
		if _, ok := mapBody[field.Tag.Get("json")]; ok {
			bodyFields = append(bodyFields, field.Name)
		}
	}

	return bodyFields, nil
}
