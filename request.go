package wiresign

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/wiresign/wiresign/auth"
)

// Method is the HTTP method of a pending request.
type Method string

const (
	GET    Method = "GET"
	POST   Method = "POST"
	PUT    Method = "PUT"
	PATCH  Method = "PATCH"
	DELETE Method = "DELETE"
)

// CachePolicy names the transport level cache behavior requested for the
// assembled request. The assembler only carries it through to the wire
// descriptor; interpreting it is up to the transport.
type CachePolicy int

const (
	CacheProtocol CachePolicy = iota
	CacheIgnoringLocal
	CacheReturnCacheElseLoad
	CacheReturnCacheDontLoad
)

const contentTypeJSON = "application/json"

// Request describes a pending HTTP request before assembly. It is owned by
// the caller; Assemble reads it and never modifies it.
type Request struct {
	BaseURL       string
	Method        Method
	Timeout       time.Duration
	CachePolicy   CachePolicy
	Authorization auth.Authorization
	Parameters    Params
}

// Wire is the assembled, transport ready request descriptor.
type Wire struct {
	Method      string
	URL         string
	Header      http.Header
	Body        []byte
	Timeout     time.Duration
	CachePolicy CachePolicy
}

// Assemble runs the linear build pipeline: parse and validate the URL, sign
// when an authorization is set, then attach the parameters as a JSON body or
// as query items depending on the method. The first failure aborts the
// build; no partially assembled request is returned.
func (r *Request) Assemble(opts auth.Options) (*Wire, error) {
	u, err := parseRequestURL(r.BaseURL)
	if err != nil {
		return nil, err
	}

	method := string(r.Method)
	if method == "" {
		method = string(GET)
	}

	header := make(http.Header)
	header.Set("Content-Type", contentTypeJSON)

	var extraQuery url.Values
	if r.Authorization != nil {
		result, err := auth.Sign(r.Authorization, &auth.Request{
			Method: method,
			URL:    u,
			Header: header,
			Params: r.Parameters.stringValues(),
		}, opts)
		if err != nil {
			return nil, err
		}

		for k, vs := range result.Header {
			header[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
		}
		extraQuery = result.Query

		log.Debugf("signed %s %s with scheme %s", method, u.Host, r.Authorization.Scheme())
	}

	w := &Wire{
		Method:      method,
		Header:      header,
		Timeout:     r.Timeout,
		CachePolicy: r.CachePolicy,
	}

	switch method {
	case string(POST), string(PUT), string(PATCH):
		if len(r.Parameters) > 0 {
			body, err := r.Parameters.jsonBody()
			if err != nil {
				return nil, err
			}
			w.Body = body
		}
		w.URL = u.String()
	default:
		finalURL := *u
		q := finalURL.Query()
		for k, vs := range extraQuery {
			for _, v := range vs {
				q.Set(k, v)
			}
		}
		if len(r.Parameters) > 0 {
			params, err := r.Parameters.queryValues()
			if err != nil {
				return nil, err
			}
			for k, vs := range params {
				if len(extraQuery[k]) > 0 {
					log.Debugf("request parameter %q overrides an authorization query item", k)
				}
				for _, v := range vs {
					q.Set(k, v)
				}
			}
		}
		finalURL.RawQuery = encodeQuery(q)
		w.URL = finalURL.String()
	}

	return w, nil
}

func parseRequestURL(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty URL", ErrBadURL)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: missing scheme or host in %q", ErrBadURL, raw)
	}
	return u, nil
}

// encodeQuery renders the query with spaces as %20. Encode escapes literal
// plus signs to %2B, so the final query contains no raw '+' that a receiving
// server could decode as a space.
func encodeQuery(q url.Values) string {
	if len(q) == 0 {
		return ""
	}
	return strings.ReplaceAll(q.Encode(), "+", "%20")
}
