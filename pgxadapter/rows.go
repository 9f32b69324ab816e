package pgxadapter

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/go-mizu/sqlwrap"
)

// Rows adapts pgx.Rows.
type Rows struct {
	rows pgx.Rows

	cols   map[string]int // lowercase column name -> index
	values []any
}

var _ sqlwrap.ResultSet = (*Rows)(nil)

// NewRows returns Rows over rows.
func NewRows(rows pgx.Rows) (*Rows, error) {
	if rows == nil {
		return nil, sqlwrap.InvalidArgument("pgxadapter: pgx.Rows cannot be nil")
	}
	return &Rows{rows: rows}, nil
}

// Next advances the cursor. Query errors surface once Next reports no more
// rows.
func (r *Rows) Next() (bool, error) {
	r.values = nil
	if r.rows.Next() {
		return true, nil
	}
	return false, r.rows.Err()
}

// ReadString returns the named column (case-insensitive) of the current row
// rendered as text. SQL NULL reads as "".
func (r *Rows) ReadString(column string) (string, error) {
	if r.cols == nil {
		fds := r.rows.FieldDescriptions()
		r.cols = make(map[string]int, len(fds))
		for i, fd := range fds {
			if _, dup := r.cols[strings.ToLower(fd.Name)]; !dup {
				r.cols[strings.ToLower(fd.Name)] = i
			}
		}
	}
	idx, ok := r.cols[strings.ToLower(column)]
	if !ok {
		return "", sqlwrap.NoColumn(column)
	}
	if r.values == nil {
		vals, err := r.rows.Values()
		if err != nil {
			return "", err
		}
		r.values = vals
	}
	s, err := asString(r.values[idx])
	if err != nil {
		return "", fmt.Errorf("pgxadapter: column %q: %w", column, err)
	}
	return s, nil
}

// Close closes the cursor and reports any error from the query.
func (r *Rows) Close() error {
	r.rows.Close()
	return r.rows.Err()
}

// asString renders a decoded pgx value as text.
func asString(v any) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case bool:
		return strconv.FormatBool(x), nil
	case int16:
		return strconv.FormatInt(int64(x), 10), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case int:
		return strconv.Itoa(x), nil
	case uint32:
		return strconv.FormatUint(uint64(x), 10), nil
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64), nil
	case time.Time:
		return x.Format(time.RFC3339Nano), nil
	case [16]byte:
		return uuid.UUID(x).String(), nil
	case driver.Valuer:
		dv, err := x.Value()
		if err != nil {
			return "", err
		}
		if _, again := dv.(driver.Valuer); again {
			return "", fmt.Errorf("cannot read %T as string", v)
		}
		return asString(dv)
	case fmt.Stringer:
		return x.String(), nil
	default:
		return "", fmt.Errorf("cannot read %T as string", v)
	}
}
