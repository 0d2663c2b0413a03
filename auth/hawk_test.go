package auth

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testHawk = Hawk{
	ID:  "hawk_id",
	Key: "hawk_key",
}

var testHawkOptions = Options{
	Time:  time.Unix(1353832234, 0),
	Nonce: func() string { return "j4-h3-g2" },
}

func TestHawkSHA256(t *testing.T) {
	r := testRequest(t, "GET", "https://example.com:8000/resource/1?b=1&a=2")
	result, err := Sign(testHawk, r, testHawkOptions)
	require.NoError(t, err)

	expect := `Hawk id="hawk_id", ts="1353832234", nonce="j4h3g2", mac="HrRswWozVwq5KYCvrjlPg1MvHAlcQc/HsSTLRu5DVfY="`
	if e, a := expect, result.Header.Get("Authorization"); e != a {
		t.Errorf("expect %v, got %v", e, a)
	}
}

func TestHawkSHA1(t *testing.T) {
	h := testHawk
	h.Algorithm = SHA1

	r := testRequest(t, "GET", "https://example.com:8000/resource/1?b=1&a=2")
	result, err := Sign(h, r, testHawkOptions)
	require.NoError(t, err)

	assert.Contains(t, result.Header.Get("Authorization"), `mac="6y1Fj17BGX7PT2kI+QJ0sTSOEmg="`)
}

// The nonce source may produce values with separators; they are stripped
// before use.
func TestHawkNonceSeparatorsStripped(t *testing.T) {
	opts := testHawkOptions
	opts.Nonce = func() string { return "ab-cd_ef" }

	r := testRequest(t, "GET", "https://example.com/resource")
	result, err := Sign(testHawk, r, opts)
	require.NoError(t, err)

	assert.Contains(t, result.Header.Get("Authorization"), `nonce="abcdef"`)
}

func TestHawkDefaultPorts(t *testing.T) {
	for _, tc := range []struct {
		url  string
		port string
	}{
		{"https://example.com/resource", "443"},
		{"http://example.com/resource", "80"},
	} {
		r := testRequest(t, "GET", tc.url)
		result, err := Sign(testHawk, r, testHawkOptions)
		require.NoError(t, err)

		value := result.Header.Get("Authorization")
		assert.True(t, strings.HasPrefix(value, "Hawk "), value)
		assert.Contains(t, value, `id="hawk_id"`)
		assert.Contains(t, value, `mac="`)
	}
}

func TestHawkDeterministic(t *testing.T) {
	r := testRequest(t, "GET", "https://example.com:8000/resource/1?b=1&a=2")

	first, err := Sign(testHawk, r, testHawkOptions)
	require.NoError(t, err)
	second, err := Sign(testHawk, r, testHawkOptions)
	require.NoError(t, err)

	assert.Equal(t, first.Header.Get("Authorization"), second.Header.Get("Authorization"))
}

func TestHawkMissingCredentials(t *testing.T) {
	r := testRequest(t, "GET", "https://example.com/resource")
	_, err := Sign(Hawk{ID: "hawk_id"}, r, testHawkOptions)
	assert.ErrorIs(t, err, ErrBadAuthorization)
}

func TestHawkBadURL(t *testing.T) {
	_, err := Sign(testHawk, &Request{Method: "GET", URL: &url.URL{}}, testHawkOptions)
	assert.ErrorIs(t, err, ErrBadURL)
}
