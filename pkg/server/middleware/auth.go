package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

type accountKey struct{}

// AccountFromContext returns the account id placed by Auth.
func AccountFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(accountKey{}).(int64)
	return id, ok
}

func WithAccount(ctx context.Context, accountID int64) context.Context {
	return context.WithValue(ctx, accountKey{}, accountID)
}

type AuthSettings struct {
	Secret []byte
	Issuer string
}

// Auth verifies an HS256 bearer token whose subject is the account id.
func Auth(settings AuthSettings) func(http.Handler) http.Handler {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if settings.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(settings.Issuer))
	}
	parser := jwt.NewParser(opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			accountID, err := authenticate(parser, settings.Secret, req.Header.Get("Authorization"))
			if err != nil {
				zerolog.Ctx(req.Context()).Warn().Err(err).Msg("unauthorized request")
				unauthorized(w)
				return
			}

			logger := zerolog.Ctx(req.Context()).With().Int64("account_id", accountID).Logger()
			ctx := logger.WithContext(WithAccount(req.Context(), accountID))
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	}
}

func authenticate(parser *jwt.Parser, secret []byte, header string) (int64, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return 0, errors.New("missing bearer token")
	}

	var claims jwt.RegisteredClaims
	_, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("invalid token: %w", err)
	}

	accountID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || accountID <= 0 {
		return 0, fmt.Errorf("invalid token subject %q", claims.Subject)
	}
	return accountID, nil
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
}
