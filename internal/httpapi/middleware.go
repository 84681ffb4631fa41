package httpapi

import (
	"context"
	"net/http"
	"strings"
)

// HeaderUserID carries the verified user identity. Authentication happens
// upstream; this service trusts the header it is handed.
const HeaderUserID = "X-User-Id"

type ctxKey string

const ctxUserID ctxKey = "user_id"

// RequireUserID enforces X-User-Id and stores it in the request context.
func RequireUserID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if uid == "" {
			writeError(w, http.StatusBadRequest, "missing required header: X-User-Id")
			return
		}
		ctx := context.WithValue(r.Context(), ctxUserID, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxUserID).(string); ok {
		return v
	}
	return ""
}
