package hrcsim

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

var (
	errMissing = errors.New("missing required field")
	errNull    = errors.New("required field is null")
)

// fieldError locates a decoding failure within a node file.
type fieldError struct {
	field string
	err   error
}

func (e *fieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.field, e.err)
}

func within(parent string, err error) error {
	if fe, ok := err.(*fieldError); ok {
		return &fieldError{field: parent + "." + fe.field, err: fe.err}
	}

	return &fieldError{field: parent, err: err}
}

func indexed(field string, i int) string {
	return field + "[" + strconv.Itoa(i) + "]"
}

// object is a JSON object whose members have not been decoded yet.
type object map[string]json.RawMessage

func decodeObject(data []byte) (object, error) {
	if isNull(data) {
		return nil, errNull
	}

	var o object
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, errors.Wrap(err, "expected object")
	}

	return o, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// has reports whether key is present with a non-null value.
func (o object) has(key string) bool {
	raw, ok := o[key]
	return ok && !isNull(raw)
}

// required decodes the member key into v, failing if it is absent, null
// or of the wrong type.
func (o object) required(key string, v interface{}) error {
	raw, ok := o[key]
	if !ok {
		return &fieldError{field: key, err: errMissing}
	}
	if isNull(raw) {
		return &fieldError{field: key, err: errNull}
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &fieldError{field: key, err: err}
	}

	return nil
}

// optional decodes key into v if present and non-null.
func (o object) optional(key string, v interface{}) (bool, error) {
	if !o.has(key) {
		return false, nil
	}
	if err := json.Unmarshal(o[key], v); err != nil {
		return false, &fieldError{field: key, err: err}
	}

	return true, nil
}

func (o object) nonNegative(key string, v *float64) error {
	if err := o.required(key, v); err != nil {
		return err
	}
	if *v < 0 {
		return &fieldError{field: key, err: errors.Errorf("negative value %v", *v)}
	}

	return nil
}
