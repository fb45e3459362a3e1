package httpclient

import (
	"net/http"
	"net/url"
)

// Request is one outbound call. Speech services take the payload as the
// raw body with its media type, so Body is never re-encoded.
type Request struct {
	Method string
	// Path is resolved against Config.BaseURL unless it is absolute.
	Path        string
	Query       url.Values
	ContentType string
	Body        []byte
	Auth        Credential
}

// Response holds a fully read response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Credential renders as "Authorization: <Scheme> <Secret>".
// The zero value sends no Authorization header.
type Credential struct {
	Scheme string
	Secret string
}

// TokenAuth is the "Token" scheme Deepgram expects.
func TokenAuth(secret string) Credential { return Credential{Scheme: "Token", Secret: secret} }

// BearerAuth is the OAuth style "Bearer" scheme.
func BearerAuth(secret string) Credential { return Credential{Scheme: "Bearer", Secret: secret} }

func (c Credential) set(h http.Header) {
	if c.Secret != "" {
		h.Set("Authorization", c.Scheme+" "+c.Secret)
	}
}
