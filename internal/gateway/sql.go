package gateway

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pratik-mahalle/freelancehub/internal/pkg/errors"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/logger"
	"github.com/pratik-mahalle/freelancehub/internal/pkg/metrics"
)

const backendSQL = "sql"

var identifierRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// SQLStore implements DataStore over database/sql. Identifiers are validated,
// values are always bound as parameters.
type SQLStore struct {
	db     *sql.DB
	dollar bool
	logger *logger.Logger
}

// NewSQLStore wraps db. driver selects the placeholder style: "sqlite" uses ?,
// "postgres" and "pgx" use $n.
func NewSQLStore(db *sql.DB, driver string, log *logger.Logger) *SQLStore {
	return &SQLStore{
		db:     db,
		dollar: driver == "postgres" || driver == "pgx",
		logger: log,
	}
}

// Ping implements Pinger
func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Select implements DataStore
func (s *SQLStore) Select(ctx context.Context, q Query) ([]Row, error) {
	b := s.builder()
	cols := "*"
	if len(q.Columns) > 0 {
		if err := checkIdentifiers(q.Columns...); err != nil {
			return nil, err
		}
		cols = strings.Join(q.Columns, ", ")
	}
	if err := checkIdentifiers(q.Table); err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", cols, q.Table)
	where, err := b.where(q.Filters)
	if err != nil {
		return nil, err
	}
	sb.WriteString(where)

	if len(q.Orders) > 0 {
		terms := make([]string, 0, len(q.Orders))
		for _, o := range q.Orders {
			if err := checkIdentifiers(o.Column); err != nil {
				return nil, err
			}
			dir := "ASC"
			if o.Desc {
				dir = "DESC"
			}
			terms = append(terms, o.Column+" "+dir)
		}
		sb.WriteString(" ORDER BY " + strings.Join(terms, ", "))
	}
	if q.Max > 0 {
		sb.WriteString(" LIMIT " + strconv.Itoa(q.Max))
	}

	var rows []Row
	err = s.timed(ctx, "select", q.Table, func() error {
		var qerr error
		rows, qerr = s.query(ctx, sb.String(), b.args...)
		return qerr
	})
	return rows, err
}

// Insert implements DataStore. A missing id is filled with a new UUID.
func (s *SQLStore) Insert(ctx context.Context, table string, row Row) (Row, error) {
	if err := checkIdentifiers(table); err != nil {
		return nil, err
	}
	values := encodeRow(row)
	if _, ok := values["id"]; !ok {
		values["id"] = uuid.NewString()
	}

	b := s.builder()
	cols := sortedKeys(values)
	if err := checkIdentifiers(cols...); err != nil {
		return nil, err
	}
	placeholders := make([]string, len(cols))
	for i, col := range cols {
		placeholders[i] = b.bind(values[col])
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "))

	var rows []Row
	err := s.timed(ctx, "insert", table, func() error {
		var qerr error
		rows, qerr = s.query(ctx, stmt, b.args...)
		return qerr
	})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.DatabaseError("insert returned no row", nil)
	}
	return rows[0], nil
}

// Update implements DataStore
func (s *SQLStore) Update(ctx context.Context, table string, values Row, filters ...Filter) ([]Row, error) {
	if err := checkIdentifiers(table); err != nil {
		return nil, err
	}
	encoded := encodeRow(values)
	cols := sortedKeys(encoded)
	if len(cols) == 0 {
		return nil, errors.BadRequest("update without values")
	}
	if err := checkIdentifiers(cols...); err != nil {
		return nil, err
	}

	b := s.builder()
	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = col + " = " + b.bind(encoded[col])
	}
	where, err := b.where(filters)
	if err != nil {
		return nil, err
	}
	stmt := fmt.Sprintf("UPDATE %s SET %s%s RETURNING *", table, strings.Join(sets, ", "), where)

	var rows []Row
	err = s.timed(ctx, "update", table, func() error {
		var qerr error
		rows, qerr = s.query(ctx, stmt, b.args...)
		return qerr
	})
	return rows, err
}

// Delete implements DataStore
func (s *SQLStore) Delete(ctx context.Context, table string, filters ...Filter) (int, error) {
	if err := checkIdentifiers(table); err != nil {
		return 0, err
	}
	b := s.builder()
	where, err := b.where(filters)
	if err != nil {
		return 0, err
	}

	var affected int64
	err = s.timed(ctx, "delete", table, func() error {
		res, qerr := s.db.ExecContext(ctx, "DELETE FROM "+table+where, b.args...)
		if qerr != nil {
			return qerr
		}
		affected, qerr = res.RowsAffected()
		return qerr
	})
	return int(affected), err
}

func (s *SQLStore) timed(ctx context.Context, op, table string, fn func() error) error {
	start := time.Now()
	err := fn()
	metrics.RecordGatewayCall(backendSQL, op, table, time.Since(start), err)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"backend":   backendSQL,
			"operation": op,
			"table":     table,
		}).Debugf("gateway call failed: %v", err)
		return errors.DatabaseError(fmt.Sprintf("%s on %s failed", op, table), err)
	}
	return nil
}

func (s *SQLStore) query(ctx context.Context, stmt string, args ...any) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var out []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make(Row, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

type sqlBuilder struct {
	dollar bool
	args   []any
}

func (s *SQLStore) builder() *sqlBuilder {
	return &sqlBuilder{dollar: s.dollar}
}

func (b *sqlBuilder) bind(v any) string {
	b.args = append(b.args, v)
	if b.dollar {
		return "$" + strconv.Itoa(len(b.args))
	}
	return "?"
}

var sqlOps = map[Op]string{
	OpEq:  "=",
	OpNeq: "<>",
	OpGt:  ">",
	OpGte: ">=",
	OpLt:  "<",
	OpLte: "<=",
}

func (b *sqlBuilder) where(filters []Filter) (string, error) {
	if len(filters) == 0 {
		return "", nil
	}
	clauses := make([]string, 0, len(filters))
	for _, f := range filters {
		if err := checkIdentifiers(f.Column); err != nil {
			return "", err
		}
		if f.Op == OpIn {
			values, _ := f.Value.([]any)
			if len(values) == 0 {
				clauses = append(clauses, "1 = 0")
				continue
			}
			ph := make([]string, len(values))
			for i, v := range values {
				ph[i] = b.bind(encodeValue(v))
			}
			clauses = append(clauses, fmt.Sprintf("%s IN (%s)", f.Column, strings.Join(ph, ", ")))
			continue
		}
		op, ok := sqlOps[f.Op]
		if !ok {
			return "", errors.BadRequest(fmt.Sprintf("unsupported filter operator %q", f.Op))
		}
		if f.Op != OpIn && encodeValue(f.Value) == nil {
			switch f.Op {
			case OpEq:
				clauses = append(clauses, f.Column+" IS NULL")
				continue
			case OpNeq:
				clauses = append(clauses, f.Column+" IS NOT NULL")
				continue
			}
		}
		clauses = append(clauses, fmt.Sprintf("%s %s %s", f.Column, op, b.bind(encodeValue(f.Value))))
	}
	return " WHERE " + strings.Join(clauses, " AND "), nil
}

func checkIdentifiers(names ...string) error {
	for _, n := range names {
		if !identifierRe.MatchString(n) {
			return errors.BadRequest(fmt.Sprintf("invalid identifier %q", n))
		}
	}
	return nil
}

func sortedKeys(r Row) []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
