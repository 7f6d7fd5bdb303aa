package models

import (
	"time"

	"github.com/google/uuid"
)

// SearchFilter is a sparse set of optional account filters. Nil fields do
// not constrain the result.
type SearchFilter struct {
	FirstName     *string
	City          *string
	Country       *string
	AgeFrom       *int
	AgeTo         *int
	BirthDateFrom *time.Time
	BirthDateTo   *time.Time
	StatusCode    *StatusCode

	// ExcludedID is always excluded from the matched accounts.
	ExcludedID uuid.UUID
}

// IsEmpty reports whether no optional filter field is set.
func (f SearchFilter) IsEmpty() bool {
	return f.FirstName == nil && f.City == nil && f.Country == nil &&
		f.AgeFrom == nil && f.AgeTo == nil &&
		f.BirthDateFrom == nil && f.BirthDateTo == nil &&
		f.StatusCode == nil
}

// SearchFilterQuery is the query-string form of SearchFilter.
type SearchFilterQuery struct {
	FirstName     string `query:"firstName" validate:"omitempty,max=100"`
	City          string `query:"city" validate:"omitempty,max=100"`
	Country       string `query:"country" validate:"omitempty,max=100"`
	AgeFrom       string `query:"ageFrom" validate:"omitempty,number"`
	AgeTo         string `query:"ageTo" validate:"omitempty,number"`
	BirthDateFrom string `query:"birthDateFrom" validate:"omitempty,datetime=2006-01-02"`
	BirthDateTo   string `query:"birthDateTo" validate:"omitempty,datetime=2006-01-02"`
	StatusCode    string `query:"statusCode" validate:"omitempty,oneof=NONE FRIEND REQUEST_TO REQUEST_FROM BLOCKED DECLINED SUBSCRIBED WATCHING REJECTING RECOMMENDATION"`
}
