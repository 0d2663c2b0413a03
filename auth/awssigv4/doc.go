/*
Package awssigv4 signs HTTP requests with AWS Signature Version 4.

The signer is a pure function of the request facts, the credentials and the
signing time: it builds the canonical request, derives the signing key
through the four stage HMAC chain and returns the headers to inject
(Authorization, X-Amz-Date, optionally X-Amz-Security-Token and the Host
derived from the request URL). It never mutates the request and performs no
I/O.
*/
package awssigv4
