package internal

import (
	"strings"
	"sync"
	"time"
)

type derivedKeyCache struct {
	values map[string]derivedKey
	mutex  sync.RWMutex
}

type derivedKey struct {
	AccessKey  string
	Date       time.Time
	Credential []byte
}

func newDerivedKeyCache() derivedKeyCache {
	return derivedKeyCache{
		values: make(map[string]derivedKey),
	}
}

// SigningKeyDeriver derives a signing key from a set of credentials
type SigningKeyDeriver struct {
	cache derivedKeyCache
}

func NewSigningKeyDeriver() *SigningKeyDeriver {
	return &SigningKeyDeriver{
		cache: newDerivedKeyCache(),
	}
}

// DeriveKey returns a derived signing key from the given credentials to be used with SigV4 signing.
// The key is cached per region, service and UTC day.
func (k *SigningKeyDeriver) DeriveKey(credential Credentials, service, region string, signingTime SigningTime) []byte {
	return k.cache.getSigningKey(credential, service, region, signingTime)
}

func lookupKey(service, region string) string {
	var s strings.Builder
	s.Grow(len(region) + len(service) + 3)
	s.WriteString(region)
	s.WriteRune('/')
	s.WriteString(service)
	return s.String()
}

func (s *derivedKeyCache) getSigningKey(credentials Credentials, service, region string, signingTime SigningTime) []byte {
	key := lookupKey(service, region)
	if v, ok := s.get(key, credentials, signingTime.Time); ok {
		return v
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if v, ok := s.values[key]; ok && v.AccessKey == credentials.AccessKeyID && isSameDay(signingTime.Time, v.Date) {
		return v.Credential
	}

	creds := deriveKey(credentials.SecretAccessKey, service, region, signingTime)
	s.values[key] = derivedKey{
		AccessKey:  credentials.AccessKeyID,
		Date:       signingTime.Time,
		Credential: creds,
	}

	return creds
}

func (s *derivedKeyCache) get(key string, credentials Credentials, signingTime time.Time) ([]byte, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	cacheEntry, ok := s.values[key]
	if ok && cacheEntry.AccessKey == credentials.AccessKeyID && isSameDay(signingTime, cacheEntry.Date) {
		return cacheEntry.Credential, true
	}
	return nil, false
}

// deriveKey runs the four stage HMAC chain. Every stage feeds its raw byte
// output as the key of the next stage.
func deriveKey(secret, service, region string, t SigningTime) []byte {
	kDate := HMACSHA256([]byte("AWS4"+secret), []byte(t.ShortTimeFormat()))
	kRegion := HMACSHA256(kDate, []byte(region))
	kService := HMACSHA256(kRegion, []byte(service))
	return HMACSHA256(kService, []byte("aws4_request"))
}
