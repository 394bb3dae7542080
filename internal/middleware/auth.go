package middleware

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/fhuszti/tourism-ms-go/internal/api_context"
	"github.com/fhuszti/tourism-ms-go/internal/handler/api"
	"github.com/golang-jwt/jwt/v4"
)

const iatLeeway = 30 * time.Second

var (
	errNoBearer     = errors.New("missing bearer token")
	errBadToken     = errors.New("unauthorized")
	errTokenExpired = errors.New("token expired")
	errIssuedAhead  = errors.New("invalid iat")
	errNoSubject    = errors.New("missing sub")
)

// caller is the identity carried by a verified token.
type caller struct {
	ID    string
	Roles []string
}

type tokenVerifier struct {
	key    *rsa.PublicKey
	parser *jwt.Parser
	now    func() time.Time
}

func newTokenVerifier(publicKeyPEM string) (*tokenVerifier, error) {
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(publicKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("invalid RSA public key: %w", err)
	}
	return &tokenVerifier{
		key:    key,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name})),
		now:    time.Now,
	}, nil
}

// verify checks an Authorization header value. exp is mandatory, iat may
// not lie further ahead than iatLeeway and sub must be set.
func (v *tokenVerifier) verify(header string) (caller, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return caller{}, errNoBearer
	}

	claims := jwt.MapClaims{}
	tok, err := v.parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return v.key, nil
	})
	if err != nil || !tok.Valid {
		return caller{}, fmt.Errorf("%w: %v", errBadToken, err)
	}

	now := v.now()
	if !claims.VerifyExpiresAt(now.Unix(), true) {
		return caller{}, errTokenExpired
	}
	if iat, ok := asInt64(claims["iat"]); ok && time.Unix(iat, 0).After(now.Add(iatLeeway)) {
		return caller{}, errIssuedAhead
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return caller{}, errNoSubject
	}
	return caller{ID: sub, Roles: toStringSlice(claims["roles"])}, nil
}

// WithAuth validates an RS256 Bearer JWT and stores its subject and roles in
// the request context. An empty key disables the check.
func WithAuth(jwtPublicKeyPEM string) func(http.Handler) http.Handler {
	if jwtPublicKeyPEM == "" {
		return func(next http.Handler) http.Handler { return next }
	}
	v, err := newTokenVerifier(jwtPublicKeyPEM)
	if err != nil {
		panic(err)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := v.verify(r.Header.Get("Authorization"))
			if err != nil {
				msg := err.Error()
				if errors.Is(err, errBadToken) {
					msg = errBadToken.Error()
				}
				api.WriteError(w, http.StatusUnauthorized, msg, err)
				return
			}

			ctx := context.WithValue(r.Context(), api_context.AuthUserIDKey, c.ID)
			ctx = context.WithValue(ctx, api_context.AuthRolesKey, c.Roles)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case float64:
		return int64(x), true
	case json.Number:
		i, err := x.Int64()
		return i, err == nil
	}
	return 0, false
}

// toStringSlice accepts a JSON array of strings or a space separated string.
func toStringSlice(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return strings.Fields(vv)
	}
	return nil
}
