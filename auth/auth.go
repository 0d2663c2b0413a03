package auth

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const authHeaderName = "Authorization"

var (
	// ErrBadURL is returned when the request URL is missing, relative or
	// otherwise unusable for signing. It is raised before any hashing.
	ErrBadURL = errors.New("bad request URL")

	// ErrBadAuthorization is returned when a scheme's credential contract
	// is violated, for example an empty bearer token.
	ErrBadAuthorization = errors.New("bad request authorization")
)

// Options carries the two impure inputs of signing. The zero value uses the
// wall clock and a UUID nonce source.
type Options struct {
	// Time is the signing moment. Zero means time.Now().
	Time time.Time

	// Nonce generates a fresh nonce per call. Nil means a random UUID.
	Nonce func() string
}

func (o Options) now() time.Time {
	if o.Time.IsZero() {
		return time.Now()
	}
	return o.Time
}

func (o Options) nonce() string {
	if o.Nonce != nil {
		return o.Nonce()
	}
	return uuid.NewString()
}

// Request is the read only projection of a pending request that signers
// consume. Signers never modify it; host, port and query derivations stay
// local to the signer.
type Request struct {
	Method string
	URL    *url.URL

	// Header holds the headers already present on the request. AWS SigV4
	// includes them in the canonical headers.
	Header http.Header

	// Params holds the string coerced body parameters. OAuth1 includes
	// them in the signature base string.
	Params map[string]string
}

// Result holds the values a signer produced for injection into the wire
// request. Query is only set by the API key scheme on GET requests.
type Result struct {
	Header http.Header
	Query  url.Values
}

// Authorization is the per scheme credential variant. Exactly one
// implementation exists per supported scheme; credentials are immutable value
// types.
type Authorization interface {
	Scheme() string
}

// Sign dispatches to the signer matching the authorization variant and
// returns the values to merge into the request. It fails fast: on error no
// partial result is returned.
func Sign(a Authorization, r *Request, o Options) (*Result, error) {
	switch v := a.(type) {
	case Basic:
		return v.sign()
	case Bearer:
		return v.sign()
	case APIKey:
		return v.sign(r)
	case Digest:
		return v.sign(r)
	case OAuth1:
		return v.sign(r, o)
	case Hawk:
		return v.sign(r, o)
	case AWSV4:
		return v.sign(r, o)
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %T", ErrBadAuthorization, a)
	}
}

func headerResult(value string) *Result {
	h := make(http.Header)
	h.Set(authHeaderName, value)
	return &Result{Header: h}
}

func checkURL(r *Request) error {
	if r == nil || r.URL == nil || r.URL.Scheme == "" || r.URL.Host == "" {
		return fmt.Errorf("%w: an absolute request URL is required", ErrBadURL)
	}
	return nil
}
