package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/flashdeck/internal/server/auth"
)

type ctxKey string

const ownerIDKey ctxKey = "ownerID"

// withAuth parses the Authorization bearer token and stores the resolved
// owner id in the request context. Requests without a valid token never
// reach the handler.
func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeJSONError(w, http.StatusUnauthorized, "missing token")
			return
		}

		ownerID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), ownerIDKey, ownerID)
		next(w, r.WithContext(ctx))
	}
}

func ownerIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ownerIDKey).(string)
	return id
}
