package friends

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/anonto42/nano-midea/socialnet/internal/models"
)

const accountsTable = "accounts"

type operator int

const (
	opEq operator = iota
	opNeq
	opGte
	opLte
)

type column string

const (
	colID        column = "id"
	colFirstName column = "first_name"
	colCity      column = "city"
	colCountry   column = "country"
	colBirthDate column = "birth_date"
)

// term is one comparison of an accounts column against a value.
type term struct {
	col  column
	op   operator
	id   uuid.UUID
	text string
	date time.Time
}

func (t term) value() any {
	switch t.col {
	case colID:
		return t.id
	case colBirthDate:
		return t.date
	default:
		return t.text
	}
}

func (t term) expression() clause.Expression {
	col := clause.Column{Table: accountsTable, Name: string(t.col)}
	switch t.op {
	case opNeq:
		return clause.Neq{Column: col, Value: t.value()}
	case opGte:
		return clause.Gte{Column: col, Value: t.value()}
	case opLte:
		return clause.Lte{Column: col, Value: t.value()}
	default:
		return clause.Eq{Column: col, Value: t.value()}
	}
}

func (t term) match(a *models.Account) bool {
	switch t.col {
	case colID:
		if t.op == opNeq {
			return a.ID != t.id
		}
		return a.ID == t.id
	case colFirstName:
		return a.FirstName == t.text
	case colCity:
		return a.City == t.text
	case colCountry:
		return a.Country == t.text
	case colBirthDate:
		birth := a.Birthday()
		if birth.IsZero() {
			// NULL birth_date never satisfies a range comparison.
			return false
		}
		birth = dateOf(birth)
		if t.op == opGte {
			return !birth.Before(t.date)
		}
		return !birth.After(t.date)
	}
	return false
}

// Condition is a conjunction of predicates over account attributes. It can be
// rendered as a gorm clause for SQL or evaluated against an account in memory.
type Condition struct {
	terms []term
}

// And returns the conjunction of c and other.
func (c Condition) And(other Condition) Condition {
	terms := make([]term, 0, len(c.terms)+len(other.terms))
	terms = append(terms, c.terms...)
	terms = append(terms, other.terms...)
	return Condition{terms: terms}
}

// Expression renders the condition against the accounts table.
func (c Condition) Expression() clause.Expression {
	exprs := make([]clause.Expression, 0, len(c.terms))
	for _, t := range c.terms {
		exprs = append(exprs, t.expression())
	}
	return clause.And(exprs...)
}

// Match evaluates the condition against a single account.
func (c Condition) Match(a *models.Account) bool {
	for _, t := range c.terms {
		if !t.match(a) {
			return false
		}
	}
	return true
}

// Len returns the number of conjoined predicates.
func (c Condition) Len() int {
	return len(c.terms)
}

// BuildCondition starts from id <> f.ExcludedID and adds one predicate per set
// field. Unset fields add nothing, so adding a field never widens the result.
func BuildCondition(f models.SearchFilter) Condition {
	terms := []term{{col: colID, op: opNeq, id: f.ExcludedID}}
	if f.FirstName != nil {
		terms = append(terms, term{col: colFirstName, op: opEq, text: *f.FirstName})
	}
	if f.City != nil {
		terms = append(terms, term{col: colCity, op: opEq, text: *f.City})
	}
	if f.Country != nil {
		terms = append(terms, term{col: colCountry, op: opEq, text: *f.Country})
	}
	if f.BirthDateFrom != nil {
		terms = append(terms, term{col: colBirthDate, op: opGte, date: dateOf(*f.BirthDateFrom)})
	}
	if f.BirthDateTo != nil {
		terms = append(terms, term{col: colBirthDate, op: opLte, date: dateOf(*f.BirthDateTo)})
	}
	return Condition{terms: terms}
}

// NormalizeAge turns age bounds into birth-date bounds relative to today:
// AgeFrom sets BirthDateTo and AgeTo sets BirthDateFrom. The mapping is kept
// exactly as the product defined it, including its direction.
func NormalizeAge(f models.SearchFilter, today time.Time) models.SearchFilter {
	if f.AgeFrom != nil {
		to := addYears(today, -*f.AgeFrom)
		f.BirthDateTo = &to
	}
	if f.AgeTo != nil {
		from := addYears(today, -*f.AgeTo)
		f.BirthDateFrom = &from
	}
	return f
}

// dateOf drops the clock part of t.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// addYears shifts a date by whole years, moving Feb 29 to Feb 28 when the
// target year is not a leap year.
func addYears(t time.Time, years int) time.Time {
	y, m, d := t.Date()
	y += years
	if m == time.February && d == 29 && !isLeap(y) {
		d = 28
	}
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
