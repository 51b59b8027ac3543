package middleware

import (
	"net/http"

	"github.com/arborhq/arbor/internal/ctxkeys"
	"github.com/arborhq/arbor/internal/model"
	"github.com/arborhq/arbor/internal/service"
)

// AuthMiddleware resolves the JWT cookie into a user and profile on the
// request context. A missing or bad token is not an error here; the request
// continues as a guest (after dropping the stale cookie) and RequireAuth
// decides per route.
func AuthMiddleware(authService *service.AuthService, userService *service.UserService, profileService *service.ProfileService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie("auth_token")
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, profile := resolveSession(authService, userService, profileService, cookie.Value)
			if user == nil {
				authService.ClearJWTCookie(w)
				next.ServeHTTP(w, r)
				return
			}

			ctx := ctxkeys.WithUser(r.Context(), user)
			ctx = ctxkeys.WithProfile(ctx, profile)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveSession(authService *service.AuthService, userService *service.UserService, profileService *service.ProfileService, token string) (*model.User, *model.Profile) {
	claims, err := authService.VerifyJWT(token)
	if err != nil {
		return nil, nil
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, nil
	}

	user, err := userService.ByID(userID)
	if err != nil {
		return nil, nil
	}

	profile, err := profileService.ByUserID(userID)
	if err != nil {
		return nil, nil
	}

	// Never carry the password hash through the context
	user.PasswordHash = nil

	return user, profile
}

// RequireAuth rejects requests without an authenticated user.
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.User(r.Context()) == nil {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	}
}
