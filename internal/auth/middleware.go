// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tomtom215/cinesense/internal/logging"
)

type contextKey struct{}

// ClaimsFromContext returns the claims stored by RequireAdmin.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(contextKey{}).(*Claims)
	return c, ok
}

// ErrorWriter writes an authentication failure response.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, status int, err error)

// RequireAdmin rejects requests without a valid admin bearer token.
// Failures are reported through onError with 401 or 403.
func RequireAdmin(m *JWTManager, onError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				onError(w, r, http.StatusUnauthorized, ErrNoCredentials)
				return
			}

			claims, err := m.ValidateToken(token)
			if err != nil {
				logging.Ctx(r.Context()).Warn().Err(err).Msg("Rejected admin token")
				if errors.Is(err, ErrExpiredCredentials) {
					onError(w, r, http.StatusUnauthorized, ErrExpiredCredentials)
				} else {
					onError(w, r, http.StatusUnauthorized, ErrInvalidCredentials)
				}
				return
			}
			if claims.Role != RoleAdmin {
				onError(w, r, http.StatusForbidden, ErrForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), contextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the token from an "Authorization: Bearer" header.
func bearerToken(r *http.Request) string {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
