package middleware

import (
	"net/http"
	"strings"

	"eventlens-backend/pkg/auth"
	"eventlens-backend/pkg/common"
	"eventlens-backend/pkg/errors"

	"go.uber.org/zap"
)

// Authenticate validates bearer tokens and rate limits by IP and user.
// When no secret is configured the API runs open, with IP rate limiting
// still in force.
func Authenticate(jwtSecret, issuer string, logger *zap.Logger) func(next http.Handler) http.Handler {
	ipLimiter := auth.NewIPRateLimiter(100)
	userLimiter := auth.NewUserRateLimiter(200)

	var validator *auth.JWTValidator
	if jwtSecret != "" {
		v, err := auth.NewJWTValidator(auth.JWTConfig{
			SecretKey: jwtSecret,
			Issuer:    issuer,
		})
		if err != nil {
			logger.Error("JWT validator setup failed, rejecting all authenticated requests", zap.Error(err))
		} else {
			validator = v
		}
	}

	authRequired := jwtSecret != ""

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, _ := ipLimiter.Allow(r.Context(), clientIP(r))
			if !allowed {
				common.RespondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "rate limit exceeded")
				return
			}

			if !authRequired {
				next.ServeHTTP(w, r)
				return
			}

			if validator == nil {
				common.RespondAppError(w, errors.NewUnauthorizedError("authentication unavailable"))
				return
			}

			token := extractToken(r)
			if token == "" {
				common.RespondAppError(w, errors.NewUnauthorizedError("missing authentication token"))
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.Warn("Token rejected",
					zap.Error(err),
					zap.String("path", r.URL.Path),
				)
				switch err {
				case auth.ErrExpiredToken:
					common.RespondAppError(w, errors.NewUnauthorizedError("token has expired"))
				case auth.ErrInvalidSignature:
					common.RespondAppError(w, errors.NewUnauthorizedError("invalid token signature"))
				default:
					common.RespondAppError(w, errors.NewUnauthorizedError("invalid token"))
				}
				return
			}

			allowed, _ = userLimiter.Allow(r.Context(), claims.UserID)
			if !allowed {
				common.RespondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "user rate limit exceeded")
				return
			}

			ctx := auth.SetUserInContext(r.Context(), &auth.UserContext{
				UserID: claims.UserID,
				Email:  claims.Email,
				Roles:  claims.Roles,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken reads the bearer token from the Authorization header.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	return authHeader
}

// clientIP extracts the client IP address
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
