package auth

import (
	"fmt"
	"strings"

	internal "github.com/wiresign/wiresign/auth/internal"
)

// Digest holds credentials for digest access authentication per RFC 2617.
// The nonce and realm come from the caller; this signer does not negotiate a
// challenge. QOP, NC and CNonce form a linked triple: the quality of
// protection response is only computed when all three are set.
type Digest struct {
	Username string
	Password string
	Realm    string
	Nonce    string
	URI      string

	QOP    string
	NC     string
	CNonce string
}

func (Digest) Scheme() string { return "digest" }

func (d Digest) sign(r *Request) (*Result, error) {
	var method string
	if r != nil {
		method = r.Method
	}

	ha1 := internal.MD5Hex(d.Username + ":" + d.Realm + ":" + d.Password)
	ha2 := internal.MD5Hex(method + ":" + d.URI)

	qop := d.QOP != "" && d.NC != "" && d.CNonce != ""

	var response string
	if qop {
		response = internal.MD5Hex(strings.Join([]string{ha1, d.Nonce, d.NC, d.CNonce, d.QOP, ha2}, ":"))
	} else {
		response = internal.MD5Hex(strings.Join([]string{ha1, d.Nonce, ha2}, ":"))
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Digest username="%s", realm="%s", nonce="%s", uri="%s", response="%s"`,
		d.Username, d.Realm, d.Nonce, d.URI, response)
	if qop {
		fmt.Fprintf(&b, `, qop=%s, nc=%s, cnonce="%s"`, d.QOP, d.NC, d.CNonce)
	}

	return headerResult(b.String()), nil
}
