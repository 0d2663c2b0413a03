package auth

import (
	"fmt"

	"github.com/wiresign/wiresign/auth/awssigv4"
	internal "github.com/wiresign/wiresign/auth/internal"
)

// AWSV4 holds the credentials and scope for AWS Signature Version 4.
type AWSV4 struct {
	AccessKey    string
	SecretKey    string
	Region       string
	Service      string
	SessionToken string
}

func (AWSV4) Scheme() string { return "aws-sigv4" }

// The signer is shared so that derived signing keys are cached across
// requests with the same region, service and day.
var v4 = awssigv4.NewSigner()

func (a AWSV4) sign(r *Request, opts Options) (*Result, error) {
	if err := checkURL(r); err != nil {
		return nil, err
	}
	if a.AccessKey == "" || a.SecretKey == "" || a.Region == "" || a.Service == "" {
		return nil, fmt.Errorf("%w: aws sigv4 requires access key, secret key, region and service", ErrBadAuthorization)
	}

	credentials := internal.Credentials{
		AccessKeyID:     a.AccessKey,
		SecretAccessKey: a.SecretKey,
		SessionToken:    a.SessionToken,
	}

	header, err := v4.SignHTTP(credentials, r.Method, r.URL, r.Header, awssigv4.EmptyPayloadHash, a.Service, a.Region, opts.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadAuthorization, err)
	}

	return &Result{Header: header}, nil
}
