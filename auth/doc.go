/*
Package auth computes HTTP authorization headers for outgoing requests.

Every supported scheme is one credential variant implementing Authorization:
Basic, Bearer, APIKey, Digest, OAuth1, Hawk and AWSV4. Sign dispatches on the
variant and returns the header name/value pairs (and, for the API key scheme
on GET requests, query items) to merge into the wire request.

Signing is synchronous and stateless. The two impure inputs, wall clock time
and nonce generation, are injectable through Options, which makes every
signature deterministic under test.
*/
package auth
