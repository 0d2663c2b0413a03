package auth

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	internal "github.com/wiresign/wiresign/auth/internal"
)

// Algorithm selects the Hawk MAC hash function.
type Algorithm int

const (
	SHA256 Algorithm = iota
	SHA1
)

func (a Algorithm) String() string {
	if a == SHA1 {
		return "sha1"
	}
	return "sha256"
}

// Hawk holds Hawk scheme credentials.
//
// Payload hash and the ext field are not supported: both are emitted as empty
// placeholders in the normalized request string. This is a known limitation,
// not an omission to fix silently.
type Hawk struct {
	ID        string
	Key       string
	Algorithm Algorithm
}

func (Hawk) Scheme() string { return "hawk" }

var nonceSeparators = strings.NewReplacer("-", "", "_", "")

func (hk Hawk) sign(r *Request, opts Options) (*Result, error) {
	if err := checkURL(r); err != nil {
		return nil, err
	}
	if hk.ID == "" || hk.Key == "" {
		return nil, fmt.Errorf("%w: hawk requires an id and a key", ErrBadAuthorization)
	}

	ts := strconv.FormatInt(opts.now().Unix(), 10)
	nonce := nonceSeparators.Replace(opts.nonce())

	resource := r.URL.Path
	if resource == "" {
		resource = "/"
	}
	if r.URL.RawQuery != "" {
		resource += "?" + r.URL.RawQuery
	}

	host := strings.ToLower(r.URL.Hostname())
	port := r.URL.Port()
	if port == "" {
		if r.URL.Scheme == "https" {
			port = "443"
		} else {
			port = "80"
		}
	}

	normalized := strings.Join([]string{
		"hawk.1.header",
		ts,
		nonce,
		strings.ToUpper(r.Method),
		resource,
		host,
		port,
		"", // payload hash placeholder
		"", // ext placeholder
	}, "\n") + "\n"

	var mac []byte
	if hk.Algorithm == SHA1 {
		mac = internal.HMACSHA1([]byte(hk.Key), []byte(normalized))
	} else {
		mac = internal.HMACSHA256([]byte(hk.Key), []byte(normalized))
	}

	value := fmt.Sprintf(`Hawk id="%s", ts="%s", nonce="%s", mac="%s"`,
		hk.ID, ts, nonce, base64.StdEncoding.EncodeToString(mac))
	return headerResult(value), nil
}
