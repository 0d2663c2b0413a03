package auth

import (
	"fmt"
	"net/http"
	"net/url"
)

// APIKey carries a static key value pair. It becomes a header, except on GET
// requests where it merges into the query string instead.
type APIKey struct {
	Key   string
	Value string
}

func (APIKey) Scheme() string { return "apikey" }

func (k APIKey) sign(r *Request) (*Result, error) {
	if k.Key == "" {
		return nil, fmt.Errorf("%w: api key authorization requires a key name", ErrBadAuthorization)
	}

	if r != nil && r.Method == http.MethodGet {
		q := make(url.Values)
		q.Set(k.Key, k.Value)
		return &Result{Query: q}, nil
	}

	h := make(http.Header)
	h.Set(k.Key, k.Value)
	return &Result{Header: h}, nil
}
