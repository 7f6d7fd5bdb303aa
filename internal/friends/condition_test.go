package friends

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"

	"github.com/anonto42/nano-midea/socialnet/internal/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func timePtr(t time.Time) *time.Time {
	return &t
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func account(city string, birth time.Time) *models.Account {
	return &models.Account{
		ID:        uuid.New(),
		FirstName: "Ann",
		City:      city,
		Country:   "DE",
		BirthDate: datatypes.Date(birth),
	}
}

func TestNormalizeAge(t *testing.T) {
	today := date(2024, time.March, 1)

	t.Run("age from sets upper birth date", func(t *testing.T) {
		got := NormalizeAge(models.SearchFilter{AgeFrom: intPtr(20)}, today)
		require.NotNil(t, got.BirthDateTo)
		assert.Equal(t, date(2004, time.March, 1), *got.BirthDateTo)
		assert.Nil(t, got.BirthDateFrom)
	})

	t.Run("age to sets lower birth date", func(t *testing.T) {
		got := NormalizeAge(models.SearchFilter{AgeTo: intPtr(30)}, today)
		require.NotNil(t, got.BirthDateFrom)
		assert.Equal(t, date(1994, time.March, 1), *got.BirthDateFrom)
		assert.Nil(t, got.BirthDateTo)
	})

	t.Run("no ages leaves dates untouched", func(t *testing.T) {
		from := date(1980, time.January, 1)
		got := NormalizeAge(models.SearchFilter{BirthDateFrom: &from}, today)
		assert.Equal(t, &from, got.BirthDateFrom)
		assert.Nil(t, got.BirthDateTo)
	})

	t.Run("clock part is dropped", func(t *testing.T) {
		got := NormalizeAge(models.SearchFilter{AgeFrom: intPtr(1)}, time.Date(2024, time.March, 1, 17, 45, 0, 0, time.UTC))
		assert.Equal(t, date(2023, time.March, 1), *got.BirthDateTo)
	})
}

func TestAddYearsClampsLeapDay(t *testing.T) {
	assert.Equal(t, date(2023, time.February, 28), addYears(date(2024, time.February, 29), -1))
	assert.Equal(t, date(2020, time.February, 29), addYears(date(2024, time.February, 29), -4))
	assert.Equal(t, date(2029, time.February, 28), addYears(date(2024, time.February, 29), 5))
}

func TestBuildConditionExcludesExcludedID(t *testing.T) {
	birth := date(1990, time.June, 15)
	target := account("Berlin", birth)

	filters := []models.SearchFilter{
		{},
		{City: strPtr("Berlin")},
		{FirstName: strPtr("Ann"), Country: strPtr("DE")},
		{BirthDateFrom: timePtr(date(1980, 1, 1)), BirthDateTo: timePtr(date(2000, 1, 1))},
	}
	for _, f := range filters {
		matchedOther := BuildCondition(f).Match(target)
		assert.True(t, matchedOther, "filter %+v should match the target when not excluded", f)

		f.ExcludedID = target.ID
		assert.False(t, BuildCondition(f).Match(target), "excluded account matched filter %+v", f)
	}
}

func TestBuildConditionIsMonotonic(t *testing.T) {
	accounts := []*models.Account{
		account("Berlin", date(1990, 1, 1)),
		account("Berlin", date(1975, 1, 1)),
		account("Hamburg", date(1990, 1, 1)),
		account("Berlin", time.Time{}),
	}
	accounts[2].Country = "AT"

	count := func(f models.SearchFilter) int {
		cond := BuildCondition(f)
		n := 0
		for _, a := range accounts {
			if cond.Match(a) {
				n++
			}
		}
		return n
	}

	f := models.SearchFilter{}
	prev := count(f)
	assert.Equal(t, len(accounts), prev)

	steps := []func(*models.SearchFilter){
		func(f *models.SearchFilter) { f.Country = strPtr("DE") },
		func(f *models.SearchFilter) { f.City = strPtr("Berlin") },
		func(f *models.SearchFilter) { f.BirthDateFrom = timePtr(date(1985, 1, 1)) },
		func(f *models.SearchFilter) { f.BirthDateTo = timePtr(date(1995, 1, 1)) },
		func(f *models.SearchFilter) { f.FirstName = strPtr("Bob") },
	}
	for i, step := range steps {
		step(&f)
		n := count(f)
		assert.LessOrEqual(t, n, prev, "step %d widened the result", i)
		prev = n
	}
	assert.Zero(t, prev)
}

func TestConditionExpression(t *testing.T) {
	id := uuid.New()

	expr := BuildCondition(models.SearchFilter{ExcludedID: id}).Expression()
	assert.Equal(t, clause.Neq{Column: clause.Column{Table: "accounts", Name: "id"}, Value: id}, expr)

	cond := BuildCondition(models.SearchFilter{
		ExcludedID:  id,
		City:        strPtr("Berlin"),
		BirthDateTo: timePtr(date(2000, 1, 1)),
	})
	and, ok := cond.Expression().(clause.AndConditions)
	require.True(t, ok)
	require.Len(t, and.Exprs, 3)
	assert.Equal(t, clause.Eq{Column: clause.Column{Table: "accounts", Name: "city"}, Value: "Berlin"}, and.Exprs[1])
	assert.Equal(t, clause.Lte{Column: clause.Column{Table: "accounts", Name: "birth_date"}, Value: date(2000, 1, 1)}, and.Exprs[2])
}

func TestConditionAnd(t *testing.T) {
	a := account("Berlin", date(1990, 1, 1))

	city := BuildCondition(models.SearchFilter{City: strPtr("Berlin")})
	country := BuildCondition(models.SearchFilter{Country: strPtr("FR")})

	combined := city.And(country)
	assert.Equal(t, city.Len()+country.Len(), combined.Len())
	assert.True(t, city.Match(a))
	assert.False(t, combined.Match(a))
}
