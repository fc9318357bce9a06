package gateway

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Op is a filter comparison operator
type Op string

// Supported filter operators. Names follow the PostgREST operator syntax.
const (
	OpEq  Op = "eq"
	OpNeq Op = "neq"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
	OpIn  Op = "in"
)

// Filter is a single column predicate. Filters on a query are ANDed.
type Filter struct {
	Column string
	Op     Op
	Value  any
}

// Order is an ordering term
type Order struct {
	Column string
	Desc   bool
}

// Query is a read-only projection over one table
type Query struct {
	Table   string
	Columns []string
	Filters []Filter
	Orders  []Order
	Max     int
}

// From starts a query on table
func From(table string) Query {
	return Query{Table: table}
}

// Select restricts the returned columns. No columns means all columns.
func (q Query) Select(cols ...string) Query {
	q.Columns = append(append([]string(nil), q.Columns...), cols...)
	return q
}

// Where adds a filter
func (q Query) Where(column string, op Op, value any) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Column: column, Op: op, Value: value})
	return q
}

// Eq adds an equality filter
func (q Query) Eq(column string, value any) Query { return q.Where(column, OpEq, value) }

// Neq adds an inequality filter
func (q Query) Neq(column string, value any) Query { return q.Where(column, OpNeq, value) }

// Gt adds a greater-than filter
func (q Query) Gt(column string, value any) Query { return q.Where(column, OpGt, value) }

// Gte adds a greater-or-equal filter
func (q Query) Gte(column string, value any) Query { return q.Where(column, OpGte, value) }

// Lt adds a less-than filter
func (q Query) Lt(column string, value any) Query { return q.Where(column, OpLt, value) }

// Lte adds a less-or-equal filter
func (q Query) Lte(column string, value any) Query { return q.Where(column, OpLte, value) }

// In adds a membership filter
func (q Query) In(column string, values ...any) Query { return q.Where(column, OpIn, values) }

// OrderBy adds an ordering term
func (q Query) OrderBy(column string, desc bool) Query {
	q.Orders = append(append([]Order(nil), q.Orders...), Order{Column: column, Desc: desc})
	return q
}

// Limit caps the number of returned rows. Zero means no limit.
func (q Query) Limit(n int) Query {
	q.Max = n
	return q
}

// Eq builds a standalone equality filter for Update and Delete
func Eq(column string, value any) Filter {
	return Filter{Column: column, Op: OpEq, Value: value}
}

// Where builds a standalone filter for Update and Delete
func Where(column string, op Op, value any) Filter {
	return Filter{Column: column, Op: op, Value: value}
}

// Timestamp and date layouts used for stored values. Both sort lexicographically
// in chronological order, so range filters work on text columns.
const (
	TimestampLayout = "2006-01-02T15:04:05Z"
	DateLayout      = "2006-01-02"
)

// FormatTimestamp renders t in UTC with the stored timestamp layout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// FormatDate renders the calendar date of t
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Date is a calendar date value. It is encoded with DateLayout instead of the timestamp layout.
type Date time.Time

// encodeValue converts Go values to the scalar form stored by every backend
func encodeValue(v any) any {
	switch val := v.(type) {
	case time.Time:
		return FormatTimestamp(val)
	case *time.Time:
		if val == nil {
			return nil
		}
		return FormatTimestamp(*val)
	case Date:
		return FormatDate(time.Time(val))
	case decimal.Decimal:
		return val.String()
	case *decimal.Decimal:
		if val == nil {
			return nil
		}
		return val.String()
	case fmt.Stringer:
		return val.String()
	default:
		return v
	}
}

// encodeRow applies encodeValue to every value of r
func encodeRow(r Row) Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = encodeValue(v)
	}
	return out
}
