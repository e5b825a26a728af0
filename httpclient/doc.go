// Package httpclient is the outbound HTTP client used to talk to the hosted
// storage API, the hosted listing REST endpoint and the gallery's own listing
// API. It adds default headers, authentication, error classification, retry
// and circuit breaking on top of net/http.
package httpclient
