package sqlwrap

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a required collaborator is missing,
// e.g. a nil connection passed to New or a nil mapper passed to Query.
var ErrInvalidArgument = errors.New("sqlwrap: invalid argument")

// ErrNoColumn is returned by ResultSet.ReadString when the current row has no
// column with the requested name.
var ErrNoColumn = errors.New("sqlwrap: no such column")

// MapperError reports a failure raised by a RowMapper. Row is the 1-based
// number of the row being mapped.
type MapperError struct {
	Row int
	Err error
}

func (e *MapperError) Error() string {
	return fmt.Sprintf("sqlwrap: mapping row %d: %v", e.Row, e.Err)
}

func (e *MapperError) Unwrap() error { return e.Err }

// InvalidArgument returns an error wrapping ErrInvalidArgument that names
// the offending argument. Adapters use it for their constructors.
func InvalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// NoColumn returns an error wrapping ErrNoColumn for column.
func NoColumn(column string) error {
	return fmt.Errorf("%w: %q", ErrNoColumn, column)
}
