package wiresign

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// Params maps parameter names to scalar values. Allowed value types are
// string, bool, integers, floats and nil; anything else fails assembly with a
// BadParametersError. Order is irrelevant.
type Params map[string]any

// jsonBody serializes the parameters as a JSON object. Nil values serialize
// as JSON null.
func (p Params) jsonBody() ([]byte, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	b, err := json.Marshal(map[string]any(p))
	if err != nil {
		return nil, &BadParametersError{Params: p, Err: err}
	}
	return b, nil
}

// queryValues renders the parameters as query items. Nil values serialize as
// the empty string.
func (p Params) queryValues() (url.Values, error) {
	vals := make(url.Values, len(p))
	for k, v := range p {
		s, err := scalarString(v)
		if err != nil {
			return nil, &BadParametersError{Params: p, Err: fmt.Errorf("parameter %q: %w", k, err)}
		}
		vals.Set(k, s)
	}
	return vals, nil
}

// stringValues coerces the parameters for signature base strings.
// Unsupported values are skipped here; they fail the build later when the
// parameters are attached.
func (p Params) stringValues() map[string]string {
	if len(p) == 0 {
		return nil
	}
	m := make(map[string]string, len(p))
	for k, v := range p {
		if s, err := scalarString(v); err == nil {
			m[k] = s
		}
	}
	return m
}

func (p Params) validate() error {
	for k, v := range p {
		if _, err := scalarString(v); err != nil {
			return &BadParametersError{Params: p, Err: fmt.Errorf("parameter %q: %w", k, err)}
		}
	}
	return nil
}

func scalarString(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case bool:
		return strconv.FormatBool(t), nil
	case int:
		return strconv.Itoa(t), nil
	case int32:
		return strconv.FormatInt(int64(t), 10), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case uint:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported parameter type %T", v)
	}
}
