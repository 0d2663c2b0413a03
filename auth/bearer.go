package auth

import (
	"fmt"
)

const defaultTokenType = "Bearer"

// Bearer holds an OAuth 2.0 access token.
type Bearer struct {
	Token string

	// TokenType overrides the default "Bearer" prefix.
	TokenType string
}

func (Bearer) Scheme() string { return "bearer" }

func (b Bearer) sign() (*Result, error) {
	if b.Token == "" {
		return nil, fmt.Errorf("%w: bearer authorization requires an access token", ErrBadAuthorization)
	}

	tokenType := b.TokenType
	if tokenType == "" {
		tokenType = defaultTokenType
	}
	return headerResult(tokenType + " " + b.Token), nil
}
