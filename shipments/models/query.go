package models

import (
	"math"
	"strings"
)

const (
	DefaultPageSize  = 10
	MaxPageSize      = 100
	DefaultSortField = "createdAt"

	SortAsc  = "asc"
	SortDesc = "desc"
)

// sortColumns whitelists the JSON field names a list can be ordered by.
var sortColumns = map[string]string{
	"id":               "id",
	"shipperName":      "shipper_name",
	"carrierName":      "carrier_name",
	"pickupLocation":   "pickup_location",
	"deliveryLocation": "delivery_location",
	"trackingNumber":   "tracking_number",
	"status":           "status",
	"rate":             "rate",
	"createdAt":        "created_at",
	"updatedAt":        "updated_at",
}

// SortColumn resolves a JSON field name to its column.
func SortColumn(field string) (string, bool) {
	col, ok := sortColumns[field]
	return col, ok
}

// ListQuery holds the filters and paging of a list request. Empty filter
// strings are unset.
type ListQuery struct {
	Status      string
	ShipperName string
	CarrierName string
	Page        int
	Size        int
	SortBy      string
	SortOrder   string
}

// Normalize applies defaults and rejects values that cannot be paged.
func (q ListQuery) Normalize() (ListQuery, error) {
	v := &ValidationError{}

	if q.Page < 0 {
		v.add("page", "must not be negative")
	}
	switch {
	case q.Size < 0:
		v.add("size", "must be positive")
	case q.Size == 0:
		q.Size = DefaultPageSize
	case q.Size > MaxPageSize:
		q.Size = MaxPageSize
	}
	if q.Size > 0 && q.Page > math.MaxInt/q.Size {
		v.add("page", "is too large")
	}

	if q.SortBy == "" {
		q.SortBy = DefaultSortField
	}
	if _, ok := SortColumn(q.SortBy); !ok {
		v.add("sortBy", "is not a sortable field")
	}

	if strings.EqualFold(q.SortOrder, SortAsc) {
		q.SortOrder = SortAsc
	} else {
		q.SortOrder = SortDesc
	}

	return q, v.orNil()
}

// Offset is the index of the first record on the requested page. It does
// not overflow for a query accepted by Normalize.
func (q ListQuery) Offset() int {
	return q.Page * q.Size
}

// Page is one slice of a list result plus the metadata to fetch the rest.
type Page struct {
	Content       []Shipment `json:"content"`
	TotalElements int64      `json:"totalElements"`
	TotalPages    int        `json:"totalPages"`
	Page          int        `json:"page"`
	Size          int        `json:"size"`
}

func NewPage(content []Shipment, total int64, q ListQuery) Page {
	if content == nil {
		content = []Shipment{}
	}
	pages := 0
	if q.Size > 0 {
		pages = int((total + int64(q.Size) - 1) / int64(q.Size))
	}
	return Page{
		Content:       content,
		TotalElements: total,
		TotalPages:    pages,
		Page:          q.Page,
		Size:          q.Size,
	}
}
