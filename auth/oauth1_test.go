package auth

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testOAuth1 = OAuth1{
	ConsumerKey:    "consumer_key",
	ConsumerSecret: "consumer_secret",
	Token:          "token_value",
	TokenSecret:    "token_secret",
}

var testOAuth1Options = Options{
	Time:  time.Unix(1700000000, 0),
	Nonce: func() string { return "deadbeefcafebabe" },
}

func TestOAuth1HMACSHA1(t *testing.T) {
	r := testRequest(t, "GET", "https://api.example.com/v1/items")
	result, err := Sign(testOAuth1, r, testOAuth1Options)
	require.NoError(t, err)

	expect := `OAuth oauth_consumer_key="consumer_key", oauth_nonce="deadbeefcafebabe", oauth_signature="ib4ok9C0JgTCGm37IypmLzBRNPs%3D", oauth_signature_method="HMAC-SHA1", oauth_timestamp="1700000000", oauth_token="token_value", oauth_version="1.0"`
	if e, a := expect, result.Header.Get("Authorization"); e != a {
		t.Errorf("expect %v, got %v", e, a)
	}
}

func TestOAuth1HMACSHA256(t *testing.T) {
	o := testOAuth1
	o.SignatureMethod = HMACSHA256

	r := testRequest(t, "GET", "https://api.example.com/v1/items")
	result, err := Sign(o, r, testOAuth1Options)
	require.NoError(t, err)

	value := result.Header.Get("Authorization")
	assert.Contains(t, value, `oauth_signature_method="HMAC-SHA256"`)
	assert.Contains(t, value, `oauth_signature="U3XrLzFUZrbJ2Xmq554rgsTtpiniDmVtBCTHa6EGSAc%3D"`)
}

func TestOAuth1Plaintext(t *testing.T) {
	o := testOAuth1
	o.SignatureMethod = Plaintext

	r := testRequest(t, "GET", "https://api.example.com/v1/items")
	result, err := Sign(o, r, testOAuth1Options)
	require.NoError(t, err)

	assert.Contains(t, result.Header.Get("Authorization"), `oauth_signature="consumer_secret%26token_secret"`)
}

func TestOAuth1WithoutToken(t *testing.T) {
	o := testOAuth1
	o.Token = ""
	o.TokenSecret = ""

	r := testRequest(t, "GET", "https://api.example.com/v1/items")
	result, err := Sign(o, r, testOAuth1Options)
	require.NoError(t, err)

	value := result.Header.Get("Authorization")
	assert.True(t, strings.HasPrefix(value, "OAuth "))
	assert.NotContains(t, value, "oauth_token=")
}

func TestOAuth1MissingConsumerKey(t *testing.T) {
	r := testRequest(t, "GET", "https://api.example.com/v1/items")
	_, err := Sign(OAuth1{}, r, testOAuth1Options)
	assert.ErrorIs(t, err, ErrBadAuthorization)
}

func TestOAuth1BadURL(t *testing.T) {
	_, err := Sign(testOAuth1, &Request{Method: "GET"}, testOAuth1Options)
	assert.ErrorIs(t, err, ErrBadURL)

	_, err = Sign(testOAuth1, &Request{Method: "GET", URL: &url.URL{Path: "/relative"}}, testOAuth1Options)
	assert.ErrorIs(t, err, ErrBadURL)
}

// encode is an independent RFC 3986 encoder used to recompute the signature
// without going through the implementation under test.
func encode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9',
			c == '-', c == '.', c == '_', c == '~':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	return b.String()
}

// Recomputing the signature from the emitted oauth_* parameters together
// with the query and body parameters must reproduce oauth_signature.
func TestOAuth1SignatureRoundTrip(t *testing.T) {
	r := testRequest(t, "GET", "https://api.example.com/v1/search?page=2")
	r.Params = map[string]string{"q": "go http"}

	result, err := Sign(testOAuth1, r, testOAuth1Options)
	require.NoError(t, err)

	value := strings.TrimPrefix(result.Header.Get("Authorization"), "OAuth ")

	emitted := map[string]string{}
	for _, field := range strings.Split(value, ", ") {
		k, quoted, ok := strings.Cut(field, "=")
		require.True(t, ok, "malformed field %q", field)
		v, err := url.QueryUnescape(strings.Trim(quoted, `"`))
		require.NoError(t, err)
		emitted[k] = v
	}
	signature := emitted["oauth_signature"]
	require.NotEmpty(t, signature)
	delete(emitted, "oauth_signature")

	var pairs []string
	for k, v := range emitted {
		pairs = append(pairs, encode(k)+"="+encode(v))
	}
	pairs = append(pairs, encode("page")+"="+encode("2"))
	pairs = append(pairs, encode("q")+"="+encode("go http"))
	sort.Strings(pairs)

	base := "GET" + "&" +
		encode("https://api.example.com/v1/search") + "&" +
		encode(strings.Join(pairs, "&"))
	key := encode("consumer_secret") + "&" + encode("token_secret")

	mac := hmac.New(sha1.New, []byte(key))
	mac.Write([]byte(base))
	expect := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	assert.Equal(t, expect, signature)
}

// Parameters are normalized by encoded name, ties broken by value. Sorting
// whole "key=value" strings would order a prefix key after its extension
// ('2' < '='), which a conforming verifier rejects.
func TestOAuth1ParameterSortByName(t *testing.T) {
	u, err := url.Parse("https://api.example.com/v1/items")
	require.NoError(t, err)

	base := signatureBase("GET", u, nil, map[string]string{
		"tag":  "v",
		"tag2": "w",
	})

	segments := strings.Split(base, "&")
	require.Len(t, segments, 3)

	normalized, err := url.PathUnescape(segments[2])
	require.NoError(t, err)
	if e, a := "tag=v&tag2=w", normalized; e != a {
		t.Errorf("expect %v, got %v", e, a)
	}
}

func TestOAuth1ParameterSortTieByValue(t *testing.T) {
	u, err := url.Parse("https://api.example.com/v1/items?tag=z&tag=a")
	require.NoError(t, err)

	base := signatureBase("GET", u, nil, nil)

	segments := strings.Split(base, "&")
	require.Len(t, segments, 3)

	normalized, err := url.PathUnescape(segments[2])
	require.NoError(t, err)
	if e, a := "tag=a&tag=z", normalized; e != a {
		t.Errorf("expect %v, got %v", e, a)
	}
}
