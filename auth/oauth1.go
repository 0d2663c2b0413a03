package auth

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	internal "github.com/wiresign/wiresign/auth/internal"
)

// SignatureMethod selects the OAuth 1.0 signature algorithm.
type SignatureMethod int

const (
	HMACSHA1 SignatureMethod = iota
	HMACSHA256
	Plaintext
)

func (m SignatureMethod) String() string {
	switch m {
	case HMACSHA256:
		return "HMAC-SHA256"
	case Plaintext:
		return "PLAINTEXT"
	default:
		return "HMAC-SHA1"
	}
}

// OAuth1 holds RFC 5849 client credentials. Token and TokenSecret are
// optional for the temporary credentials request step.
type OAuth1 struct {
	ConsumerKey     string
	ConsumerSecret  string
	Token           string
	TokenSecret     string
	SignatureMethod SignatureMethod
}

func (OAuth1) Scheme() string { return "oauth1" }

func (o OAuth1) sign(r *Request, opts Options) (*Result, error) {
	if err := checkURL(r); err != nil {
		return nil, err
	}
	if o.ConsumerKey == "" {
		return nil, fmt.Errorf("%w: oauth1 requires a consumer key", ErrBadAuthorization)
	}

	oauthParams := map[string]string{
		"oauth_consumer_key":     o.ConsumerKey,
		"oauth_nonce":            opts.nonce(),
		"oauth_signature_method": o.SignatureMethod.String(),
		"oauth_timestamp":        strconv.FormatInt(opts.now().Unix(), 10),
		"oauth_version":          "1.0",
	}
	if o.Token != "" {
		oauthParams["oauth_token"] = o.Token
	}

	base := signatureBase(r.Method, r.URL, oauthParams, r.Params)
	key := percentEncode(o.ConsumerSecret) + "&" + percentEncode(o.TokenSecret)

	var signature string
	switch o.SignatureMethod {
	case Plaintext:
		signature = key
	case HMACSHA256:
		signature = base64.StdEncoding.EncodeToString(internal.HMACSHA256([]byte(key), []byte(base)))
	default:
		signature = base64.StdEncoding.EncodeToString(internal.HMACSHA1([]byte(key), []byte(base)))
	}
	oauthParams["oauth_signature"] = signature

	return headerResult(oauthHeader(oauthParams)), nil
}

// signatureBase builds the RFC 5849 signature base string: the uppercase
// method, the base URL stripped of its query, and the normalized parameter
// set, all three percent encoded and joined by '&'. The parameter set is the
// oauth_* parameters plus the URL query plus the body parameters, sorted by
// encoded name with ties broken by encoded value.
func signatureBase(method string, u *url.URL, oauthParams, bodyParams map[string]string) string {
	baseURL := *u
	baseURL.RawQuery = ""
	baseURL.Fragment = ""

	type pair struct {
		key, value string
	}

	var pairs []pair
	for k, v := range oauthParams {
		pairs = append(pairs, pair{percentEncode(k), percentEncode(v)})
	}
	for k, vs := range u.Query() {
		for _, v := range vs {
			pairs = append(pairs, pair{percentEncode(k), percentEncode(v)})
		}
	}
	for k, v := range bodyParams {
		pairs = append(pairs, pair{percentEncode(k), percentEncode(v)})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].key != pairs[j].key {
			return pairs[i].key < pairs[j].key
		}
		return pairs[i].value < pairs[j].value
	})

	encoded := make([]string, len(pairs))
	for i, p := range pairs {
		encoded[i] = p.key + "=" + p.value
	}

	return strings.ToUpper(method) + "&" +
		percentEncode(baseURL.String()) + "&" +
		percentEncode(strings.Join(encoded, "&"))
}

// oauthHeader renders the oauth_* parameters sorted by key, each value
// percent encoded and quoted.
func oauthHeader(oauthParams map[string]string) string {
	keys := make([]string, 0, len(oauthParams))
	for k := range oauthParams {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("OAuth ")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, `%s="%s"`, k, percentEncode(oauthParams[k]))
	}
	return b.String()
}
