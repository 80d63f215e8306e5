package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/madar-hris/hrms-backend-go/internal/domain/auth"
	"github.com/madar-hris/hrms-backend-go/internal/domain/employee"
	"github.com/madar-hris/hrms-backend-go/internal/handler/http/response"
)

// RequireRole lets through tokens whose role claim is one of roles.
func RequireRole(roles ...employee.Role) func(http.Handler) http.Handler {
	allowed := make(map[employee.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			roleStr, ok := claims["role"].(string)
			if !ok {
				response.HandleError(w, auth.ErrRoleNotAllowed)
				return
			}

			if !allowed[employee.Role(roleStr)] {
				response.HandleError(w, auth.ErrRoleNotAllowed)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireManager allows every role above plain employee.
func RequireManager(next http.Handler) http.Handler {
	return RequireRole(employee.RoleSuperAdmin, employee.RoleBranchManager, employee.RoleDeptSupervisor)(next)
}

// RequireOwnBranch keeps branch managers to the branch named by the URL
// parameter param. Other roles pass through.
func RequireOwnBranch(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, claims, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			role, _ := claims["role"].(string)
			branchID, _ := claims["branch_id"].(string)
			if employee.Role(role) == employee.RoleBranchManager && branchID != chi.URLParam(r, param) {
				response.HandleError(w, auth.ErrRoleNotAllowed)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
