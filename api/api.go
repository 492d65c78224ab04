// Package api carries the small shared pieces of the HTTP surface: JSON
// response helpers and the shared-password gate.
package api

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"lifeos/types"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// WriteJSON writes v as a JSON response.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	bytes, err := json.Marshal(v)

	if err != nil {
		w.Write([]byte(`{"message":"Internal error serializing response"}`))
		return
	}

	w.Write(bytes)
}

// WriteError writes a types.ApiError response.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, types.ApiError{Message: message})
}

// Auth gates every request behind the instance's shared password.
//
// The password is taken from the Authorization header, with an optional
// "Bearer " prefix. Comparison is constant time.
func Auth(password string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(password)) != 1 {
				WriteError(w, http.StatusUnauthorized, "Invalid API password")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
