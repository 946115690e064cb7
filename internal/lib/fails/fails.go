package fails

import (
	"errors"
	"maps"
	"strings"

	"github.com/quintans/wallfetch/internal/lib/values"
)

// Valuer is an error that carries key/value context, e.g. the retry-after
// header of a throttled response.
type Valuer interface {
	error
	Values() map[string]any
	WithValues(args ...any) Valuer
}

func New(msg string, args ...any) Valuer {
	return &ValuesError{
		msg:    msg,
		values: values.ToMap(args),
	}
}

func NewWithErr(err error, msg string, args ...any) Valuer {
	return &ValuesError{
		err:    err,
		msg:    msg,
		values: values.ToMap(args),
	}
}

type ValuesError struct {
	err    error
	msg    string
	values map[string]any
}

func (e *ValuesError) Error() string {
	var str strings.Builder
	str.WriteString(e.msg)
	if len(e.values) > 0 {
		str.WriteString(" ")
		str.WriteString(values.ToStr(e.values))
	}

	if e.err != nil {
		str.WriteString(": ")
		str.WriteString(e.err.Error())
	}

	return str.String()
}

func (e *ValuesError) Unwrap() error {
	return e.err
}

// Values returns the values associated with the error and its cause.
// Outer values win over the cause's values.
func (e *ValuesError) Values() map[string]any {
	m := map[string]any{}
	var valuer Valuer
	if errors.As(e.err, &valuer) {
		maps.Copy(m, valuer.Values())
	}
	maps.Copy(m, e.values)
	return m
}

func (e *ValuesError) WithValues(args ...any) Valuer {
	if e.values == nil {
		e.values = map[string]any{}
	}
	maps.Copy(e.values, values.ToMap(args))

	return e
}

// Value looks up key in the first Valuer found in err's chain.
func Value(err error, key string) (any, bool) {
	var valuer Valuer
	if !errors.As(err, &valuer) {
		return nil, false
	}
	v, ok := valuer.Values()[key]
	return v, ok
}
