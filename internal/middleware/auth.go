// Package middleware provides HTTP middleware for the API server.
package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/capitalize-ai/hivemind/internal/model"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// AuthorIDKey is the context key for the author ID.
	AuthorIDKey ContextKey = "author_id"
	// AuthorNameKey is the context key for the author display name.
	AuthorNameKey ContextKey = "author_name"
	// AuthorAvatarKey is the context key for the author avatar.
	AuthorAvatarKey ContextKey = "author_avatar"
	// ScopesKey is the context key for JWT scopes.
	ScopesKey ContextKey = "scopes"
)

// Scopes checked by RequireScope.
const (
	ScopeThoughtsWrite = "thoughts:write"
	ScopeSynthesis     = "synthesis"
)

// Claims represents JWT claims. The subject is the author id.
type Claims struct {
	jwt.RegisteredClaims
	Name   string   `json:"name"`
	Avatar string   `json:"avatar,omitempty"`
	Scopes []string `json:"scope"`
}

// Auth creates JWT authentication middleware.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, `{"error":"missing authorization header"}`, http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				http.Error(w, `{"error":"invalid authorization header format"}`, http.StatusUnauthorized)
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})

			if err != nil || !token.Valid || claims.Subject == "" {
				http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
				return
			}

			ctx := WithAuthor(r.Context(), model.Author{
				ID:     claims.Subject,
				Name:   claims.Name,
				Avatar: claims.Avatar,
			})
			ctx = context.WithValue(ctx, ScopesKey, claims.Scopes)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithAuthor stores the author identity in ctx.
func WithAuthor(ctx context.Context, author model.Author) context.Context {
	ctx = context.WithValue(ctx, AuthorIDKey, author.ID)
	ctx = context.WithValue(ctx, AuthorNameKey, author.Name)
	return context.WithValue(ctx, AuthorAvatarKey, author.Avatar)
}

// GetAuthorID gets the author ID from context.
func GetAuthorID(ctx context.Context) string {
	id, _ := ctx.Value(AuthorIDKey).(string)
	return id
}

// GetAuthor gets the author identity from context. The name falls back to the id.
func GetAuthor(ctx context.Context) model.Author {
	author := model.Author{ID: GetAuthorID(ctx)}
	author.Name, _ = ctx.Value(AuthorNameKey).(string)
	author.Avatar, _ = ctx.Value(AuthorAvatarKey).(string)
	if author.Name == "" {
		author.Name = author.ID
	}
	return author
}

// GetScopes gets scopes from context.
func GetScopes(ctx context.Context) []string {
	scopes, _ := ctx.Value(ScopesKey).([]string)
	return scopes
}

// HasScope checks if the context has a specific scope.
func HasScope(ctx context.Context, scope string) bool {
	return slices.Contains(GetScopes(ctx), scope)
}

// RequireScope creates middleware that requires a specific scope.
func RequireScope(scope string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !HasScope(r.Context(), scope) {
				http.Error(w, `{"error":"insufficient permissions"}`, http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
