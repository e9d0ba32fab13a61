package models

import (
	"net/url"
	"strconv"
)

const (
	SortPriceLow  = "priceLow"
	SortPriceHigh = "priceHigh"
	SortNewest    = "newest"

	// AllTypes and AnyBedrooms are the "no filter" values sent by search forms.
	AllTypes    = "All Types"
	AnyBedrooms = "Any"
)

// SearchSpec carries the search intent; every field is optional.
type SearchSpec struct {
	Search       string `json:"search,omitempty" form:"search"`
	Location     string `json:"location,omitempty" form:"location"`
	PriceRange   string `json:"priceRange,omitempty" form:"priceRange"`
	PropertyType string `json:"propertyType,omitempty" form:"propertyType"`
	Bedrooms     string `json:"bedrooms,omitempty" form:"bedrooms"`
	Page         int    `json:"page,omitempty" form:"page"`
	Limit        int    `json:"limit,omitempty" form:"limit"`
	SortBy       string `json:"sortBy,omitempty" form:"sortBy"`
}

// Values encodes the non-empty fields as query parameters.
func (s SearchSpec) Values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("search", s.Search)
	set("location", s.Location)
	set("priceRange", s.PriceRange)
	set("propertyType", s.PropertyType)
	set("bedrooms", s.Bedrooms)
	set("sortBy", s.SortBy)
	if s.Page > 0 {
		v.Set("page", strconv.Itoa(s.Page))
	}
	if s.Limit > 0 {
		v.Set("limit", strconv.Itoa(s.Limit))
	}
	return v
}

// SearchSpecFromValues is the inverse of Values. Unparsable numbers become 0 so defaults apply.
func SearchSpecFromValues(v url.Values) SearchSpec {
	page, _ := strconv.Atoi(v.Get("page"))
	limit, _ := strconv.Atoi(v.Get("limit"))
	return SearchSpec{
		Search:       v.Get("search"),
		Location:     v.Get("location"),
		PriceRange:   v.Get("priceRange"),
		PropertyType: v.Get("propertyType"),
		Bedrooms:     v.Get("bedrooms"),
		SortBy:       v.Get("sortBy"),
		Page:         page,
		Limit:        limit,
	}
}
