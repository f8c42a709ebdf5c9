package http

import (
	"net/http"
)

// DemoHelloHandler returns the protected demo endpoint. It only answers for
// requests that carry a valid bearer token; the gate in front of it handles
// rejection.
//
//	@Summary		Protected hello
//	@Description	Returns a plain-text greeting. Requires a valid bearer token.
//	@Tags			Demo
//	@Produce		plain
//	@Security		BearerAuth
//	@Success		200	{string}	string					"Hello, secured world!"
//	@Failure		401	{object}	authapi.ErrorResponse	"Missing or invalid bearer token"
//	@Router			/api/v1/demo/hello [get].
func DemoHelloHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Hello, secured world!"))
	})
}
