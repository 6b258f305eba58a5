package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/summitlog/summitlog/pkg/httpx"
)

// decodeJSON parses the request body into v. On failure it writes the
// validation error itself and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		ErrBadRequest.WriteError(w)
		return false
	}
	return true
}

// pagination reads limit/offset query params with sane defaults.
func pagination(r *http.Request) (limit, offset int) {
	limit = 100
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

// mustUserID returns the authenticated user id placed by the auth gate.
// Routes behind the gate always have one; an empty id means a wiring bug.
func mustUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := httpx.UserIDFromContext(r.Context())
	if id == "" {
		ErrUnauthenticated.WriteError(w)
		return "", false
	}
	return id, true
}
