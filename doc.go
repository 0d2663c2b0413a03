/*
Package wiresign assembles wire level HTTP request descriptors from
declarative pending requests.

A pending request names a base URL, a method, an optional authorization
scheme with its credentials, and a set of scalar parameters. Assemble runs a
single linear pipeline over it: parse and validate the URL, compute the
authorization header(s) for the selected scheme, then attach the remaining
parameters as a JSON body (POST, PUT, PATCH) or as query items (GET, DELETE).

The supported authorization schemes live in the auth package: Basic, OAuth2
bearer, static API key, Digest (RFC 2617), OAuth 1.0 (RFC 5849), Hawk and AWS
Signature Version 4.

The engine never performs I/O. Dispatching the assembled request, response
decoding, retries and connectivity monitoring belong to the caller; the
dispatch package only provides the observer registry for connectivity
changes.

Signing is deterministic: wall clock time and nonce generation are injected
through auth.Options, so the same inputs always produce the same headers.
*/
package wiresign
