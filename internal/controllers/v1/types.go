package v1

import (
	"github.com/pacebudget/backend/internal/types"
	"github.com/pacebudget/backend/internal/uuid"
)

type URIID struct {
	ID uuid.UUID `uri:"id" binding:"required"` // The ID of the resource
}

type URIMonth struct {
	Month types.Month `uri:"month" binding:"required" swaggertype:"string" example:"2024-06"` // Key of the period
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of records returned in this response
	Offset uint  `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
	Total  int64 `json:"total" example:"827"` // The total number of resources matching the query
}
