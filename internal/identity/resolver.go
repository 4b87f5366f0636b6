// Package identity turns request credentials into a caller key.
package identity

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
)

// Resolver verifies HS256 bearer tokens. The subject claim is the caller key.
type Resolver struct {
	secret   []byte
	issuer   string
	audience string
	leeway   time.Duration
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithIssuer requires the iss claim to match.
func WithIssuer(iss string) Option {
	return func(r *Resolver) { r.issuer = iss }
}

// WithAudience requires the aud claim to contain aud.
func WithAudience(aud string) Option {
	return func(r *Resolver) { r.audience = aud }
}

// WithLeeway tolerates clock skew on time based claims.
func WithLeeway(d time.Duration) Option {
	return func(r *Resolver) { r.leeway = d }
}

// NewResolver builds a Resolver for the shared secret.
func NewResolver(secret string, opts ...Option) (*Resolver, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	r := &Resolver{secret: []byte(secret), leeway: 30 * time.Second}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// FromHeader resolves an Authorization header value. An empty header is
// the anonymous caller; anything else must be a valid bearer token.
func (r *Resolver) FromHeader(header string) (domain.Caller, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return domain.Caller{Key: domain.AnonymousCaller}, nil
	}

	raw, ok := bearerToken(header)
	if !ok {
		return domain.Caller{}, domain.Errorf(domain.ErrUnauthorized, "malformed authorization header")
	}
	return r.Resolve(raw)
}

// Resolve verifies a raw token and returns its caller.
func (r *Resolver) Resolve(raw string) (domain.Caller, error) {
	parsed, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, r.key, r.parserOptions()...)
	if err != nil {
		return domain.Caller{}, domain.Errorf(domain.ErrUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || !parsed.Valid {
		return domain.Caller{}, domain.Errorf(domain.ErrUnauthorized, "invalid token claims")
	}

	sub := strings.TrimSpace(claims.Subject)
	if sub == "" || sub == domain.AnonymousCaller {
		return domain.Caller{}, domain.Errorf(domain.ErrUnauthorized, "token has no usable subject")
	}
	return domain.Caller{Key: sub}, nil
}

// Issue signs a token for subject. It is used by tests and local tooling;
// production tokens come from the identity provider.
func (r *Resolver) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    r.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	if r.audience != "" {
		claims.Audience = jwt.ClaimStrings{r.audience}
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
}

func (r *Resolver) key(token *jwt.Token) (any, error) {
	if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
	}
	return r.secret, nil
}

func (r *Resolver) parserOptions() []jwt.ParserOption {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(r.leeway),
		jwt.WithExpirationRequired(),
	}
	if r.issuer != "" {
		opts = append(opts, jwt.WithIssuer(r.issuer))
	}
	if r.audience != "" {
		opts = append(opts, jwt.WithAudience(r.audience))
	}
	return opts
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
