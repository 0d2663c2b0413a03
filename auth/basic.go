package auth

import (
	"encoding/base64"
	"fmt"
)

// Basic holds credentials for the basic authentication scheme.
type Basic struct {
	Username string
	Password string
}

func (Basic) Scheme() string { return "basic" }

func (b Basic) sign() (*Result, error) {
	if b.Username == "" {
		return nil, fmt.Errorf("%w: basic authentication requires a username", ErrBadAuthorization)
	}

	token := base64.StdEncoding.EncodeToString([]byte(b.Username + ":" + b.Password))
	return headerResult("Basic " + token), nil
}
