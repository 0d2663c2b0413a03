package awssigv4

import (
	"encoding/hex"
	"errors"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	internal "github.com/wiresign/wiresign/auth/internal"
)

const (
	// SigningAlgorithm is the only algorithm this signer supports.
	SigningAlgorithm = "AWS4-HMAC-SHA256"

	// EmptyPayloadHash is the SHA-256 hex digest of an empty payload.
	EmptyPayloadHash = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

	authorizationHeader = "Authorization"
	hostHeader          = "Host"

	// AmzDateKey is the header carrying the signing time
	AmzDateKey = "X-Amz-Date"

	// AmzSecurityTokenKey indicates the security token to be used with temporary credentials
	AmzSecurityTokenKey = "X-Amz-Security-Token"
)

var (
	errInvalidURL         = errors.New("request URL misses scheme or host")
	errInvalidCredentials = errors.New("incomplete credentials, access key and secret key are required")
)

type keyDerivator interface {
	DeriveKey(credential internal.Credentials, service, region string, signingTime internal.SigningTime) []byte
}

type SignerOptions struct {
	// Disables setting the session token on the request as part of signing
	// through X-Amz-Security-Token.
	DisableSessionToken bool

	// Enable logging of the canonical request and the string to sign on
	// debug level.
	LogSigning bool
}

// Signer applies AWS v4 signing to a given request. Safe for concurrent use;
// derived signing keys are cached per region, service and UTC day.
type Signer struct {
	options      SignerOptions
	keyDerivator keyDerivator
}

func NewSigner(optFns ...func(signer *SignerOptions)) *Signer {
	options := SignerOptions{}

	for _, fn := range optFns {
		fn(&options)
	}

	return &Signer{options: options, keyDerivator: internal.NewSigningKeyDeriver()}
}

// SignHTTP signs the described request and returns the headers to inject:
// Authorization, Host, X-Amz-Date and, when a session token is present and
// enabled, X-Amz-Security-Token. The passed header set is read only; it is
// included in the canonical headers together with the injected ones.
func (s *Signer) SignHTTP(credentials internal.Credentials, method string, u *url.URL, header http.Header, payloadHash, service, region string, signingTime time.Time, optFns ...func(options *SignerOptions)) (http.Header, error) {
	options := s.options

	for _, fn := range optFns {
		fn(&options)
	}

	if u == nil || u.Scheme == "" || u.Host == "" {
		return nil, errInvalidURL
	}
	if !credentials.Valid() {
		return nil, errInvalidCredentials
	}

	signer := &httpSigner{
		Method:              method,
		URL:                 u,
		Header:              header,
		PayloadHash:         payloadHash,
		ServiceName:         service,
		Region:              region,
		Credentials:         credentials,
		Time:                internal.NewSigningTime(signingTime.UTC()),
		DisableSessionToken: options.DisableSessionToken,
		LogSigning:          options.LogSigning,
		KeyDerivator:        s.keyDerivator,
	}

	return signer.Build()
}

type httpSigner struct {
	Method              string
	URL                 *url.URL
	Header              http.Header
	ServiceName         string
	Region              string
	Time                internal.SigningTime
	Credentials         internal.Credentials
	KeyDerivator        keyDerivator
	PayloadHash         string
	DisableSessionToken bool
	LogSigning          bool
}

func (s *httpSigner) Build() (http.Header, error) {
	signed := s.requiredSigningHeaders()

	credentialScope := internal.BuildCredentialScope(s.Time, s.Region, s.ServiceName)
	credentialStr := s.Credentials.AccessKeyID + "/" + credentialScope

	signedHeadersStr, canonicalHeaderStr := s.buildCanonicalHeaders(signed)

	canonicalURI := internal.EscapePath(s.canonicalPath(), false)

	canonicalString := s.buildCanonicalString(
		strings.ToUpper(s.Method),
		canonicalURI,
		s.buildCanonicalQuery(),
		signedHeadersStr,
		canonicalHeaderStr,
	)

	strToSign := s.buildStringToSign(credentialScope, canonicalString)

	key := s.KeyDerivator.DeriveKey(s.Credentials, s.ServiceName, s.Region, s.Time)
	signature := hex.EncodeToString(internal.HMACSHA256(key, []byte(strToSign)))

	if s.LogSigning {
		log.Debugf("canonical request:\n%s", canonicalString)
		log.Debugf("string to sign:\n%s", strToSign)
	}

	signed.Set(authorizationHeader, buildAuthorizationHeader(credentialStr, signedHeadersStr, signature))

	return signed, nil
}

// requiredSigningHeaders returns the headers the signer itself injects.
func (s *httpSigner) requiredSigningHeaders() http.Header {
	signed := make(http.Header)
	signed.Set(hostHeader, s.URL.Host)
	signed.Set(AmzDateKey, s.Time.TimeFormat())

	if !s.DisableSessionToken && len(s.Credentials.SessionToken) > 0 {
		signed.Set(AmzSecurityTokenKey, s.Credentials.SessionToken)
	}
	return signed
}

func (s *httpSigner) canonicalPath() string {
	if s.URL.Path == "" {
		return "/"
	}
	return s.URL.Path
}

// buildCanonicalQuery sorts the query parameters by name, and per name by
// value, each escaped with the AWS percent escaper.
func (s *httpSigner) buildCanonicalQuery() string {
	query := s.URL.Query()
	if len(query) == 0 {
		return ""
	}

	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
		sort.Strings(query[k])
	}
	sort.Strings(keys)

	var rawQuery strings.Builder
	for i, k := range keys {
		for j, v := range query[k] {
			if i > 0 || j > 0 {
				rawQuery.WriteByte('&')
			}
			rawQuery.WriteString(internal.EscapePath(k, true))
			rawQuery.WriteByte('=')
			rawQuery.WriteString(internal.EscapePath(v, true))
		}
	}
	return rawQuery.String()
}

// buildCanonicalHeaders canonicalizes the injected headers together with the
// headers already present on the request: names lowercased and sorted, values
// trimmed and space collapsed, multiple values joined by comma.
func (s *httpSigner) buildCanonicalHeaders(injected http.Header) (signedHeaders, canonicalHeadersStr string) {
	merged := make(map[string][]string, len(injected)+len(s.Header))

	var names []string
	for _, header := range []http.Header{injected, s.Header} {
		for k, v := range header {
			lowerCaseKey := strings.ToLower(k)
			if lowerCaseKey == "authorization" {
				continue
			}
			if _, ok := merged[lowerCaseKey]; ok {
				// include additional values
				merged[lowerCaseKey] = append(merged[lowerCaseKey], v...)
				continue
			}
			names = append(names, lowerCaseKey)
			merged[lowerCaseKey] = v
		}
	}
	sort.Strings(names)

	signedHeaders = strings.Join(names, ";")

	var canonicalHeaders strings.Builder
	for _, name := range names {
		canonicalHeaders.WriteString(name)
		canonicalHeaders.WriteRune(':')
		values := merged[name]
		for j, v := range values {
			cleanedValue := strings.TrimSpace(internal.StripExcessSpaces(v))
			canonicalHeaders.WriteString(cleanedValue)
			if j < len(values)-1 {
				canonicalHeaders.WriteRune(',')
			}
		}
		canonicalHeaders.WriteRune('\n')
	}

	return signedHeaders, canonicalHeaders.String()
}

func (s *httpSigner) buildCanonicalString(method, uri, query, signedHeaders, canonicalHeaders string) string {
	return strings.Join([]string{
		method,
		uri,
		query,
		canonicalHeaders,
		signedHeaders,
		s.PayloadHash,
	}, "\n")
}

func (s *httpSigner) buildStringToSign(credentialScope, canonicalRequestString string) string {
	return strings.Join([]string{
		SigningAlgorithm,
		s.Time.TimeFormat(),
		credentialScope,
		internal.SHA256Hex([]byte(canonicalRequestString)),
	}, "\n")
}

func buildAuthorizationHeader(credentialStr, signedHeadersStr, signingSignature string) string {
	const credential = "Credential="
	const signedHeaders = "SignedHeaders="
	const signature = "Signature="
	const commaSpace = ", "

	var parts strings.Builder
	parts.Grow(len(SigningAlgorithm) + 1 +
		len(credential) + len(credentialStr) + 2 +
		len(signedHeaders) + len(signedHeadersStr) + 2 +
		len(signature) + len(signingSignature),
	)
	parts.WriteString(SigningAlgorithm)
	parts.WriteRune(' ')
	parts.WriteString(credential)
	parts.WriteString(credentialStr)
	parts.WriteString(commaSpace)
	parts.WriteString(signedHeaders)
	parts.WriteString(signedHeadersStr)
	parts.WriteString(commaSpace)
	parts.WriteString(signature)
	parts.WriteString(signingSignature)
	return parts.String()
}
