package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/madar-hris/hrms-backend-go/internal/domain/auth"
	"github.com/madar-hris/hrms-backend-go/internal/handler/http/response"
	"github.com/madar-hris/hrms-backend-go/internal/pkg/jwt"
)

// AuthRequired accepts verified access tokens that were not revoked by logout.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if jwtService.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, auth.ErrTokenRevoked)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
