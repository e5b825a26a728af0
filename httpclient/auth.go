package httpclient

import "net/http"

// Auth sets credentials on an outgoing request's headers. A nil Auth sends
// none.
type Auth func(http.Header)

// Bearer sends "Authorization: Bearer <token>".
func Bearer(token string) Auth {
	return func(h http.Header) { h.Set("Authorization", "Bearer "+token) }
}

// APIKey sends key in header, or in X-API-Key when header is empty.
func APIKey(header, key string) Auth {
	if header == "" {
		header = "X-API-Key"
	}
	return func(h http.Header) { h.Set(header, key) }
}

// SupabaseKey sends key the way Supabase gateways expect it: as the apikey
// header and as a bearer token.
func SupabaseKey(key string) Auth {
	bearer := Bearer(key)
	return func(h http.Header) {
		h.Set("apikey", key)
		bearer(h)
	}
}
