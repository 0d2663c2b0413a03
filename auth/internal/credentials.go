package internal

import (
	"path"
)

// Credentials is the static AWS credential set used for SigV4 signing.
type Credentials struct {
	// AccessKeyID is AWS Access key ID
	AccessKeyID string

	// SecretAccessKey is AWS Secret Access Key
	SecretAccessKey string

	// SessionToken is AWS Session Token
	SessionToken string
}

// Valid reports whether the credentials are complete enough to sign with.
func (c Credentials) Valid() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// BuildCredentialScope builds part of credential string to be used as X-Amz-Credential header or query parameter.
func BuildCredentialScope(signingTime SigningTime, region, service string) string {
	return path.Join(
		signingTime.ShortTimeFormat(),
		region,
		service,
		"aws4_request")
}
