package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/upasthiti/admin-console/internal/identity"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var (
	ErrInvalidToken = errors.New("auth: invalid token")
	ErrRevoked      = errors.New("auth: token revoked")
)

// TokenPair is what a successful sign-in returns to the browser.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UID          string `json:"uid"`
	Email        string `json:"email"`
}

// Claims is the identity carried by a console token.
type Claims struct {
	UID         string
	Email       string
	DisplayName string
	ID          string
	Type        string
	ExpiresAt   time.Time
}

// Tokens issues and checks console session tokens (HS256). Refresh tokens
// are single use: refreshing or signing out revokes the presented one.
type Tokens struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

func NewTokens(secret string, accessTTL, refreshTTL time.Duration) *Tokens {
	return &Tokens{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
		revoked:    make(map[string]time.Time),
	}
}

func (t *Tokens) Issue(id identity.Identity) (TokenPair, error) {
	now := t.now()
	access, err := t.sign(jwt.MapClaims{
		"uid":   id.UID,
		"email": id.Email,
		"name":  id.DisplayName,
		"jti":   uuid.NewString(),
		"type":  tokenTypeAccess,
		"iat":   now.Unix(),
		"exp":   now.Add(t.accessTTL).Unix(),
	})
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := t.sign(jwt.MapClaims{
		"uid":   id.UID,
		"email": id.Email,
		"name":  id.DisplayName,
		"jti":   uuid.NewString(),
		"type":  tokenTypeRefresh,
		"iat":   now.Unix(),
		"exp":   now.Add(t.refreshTTL).Unix(),
	})
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, UID: id.UID, Email: id.Email}, nil
}

func (t *Tokens) sign(claims jwt.MapClaims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (t *Tokens) ParseAccess(raw string) (*Claims, error) {
	return t.parse(raw, tokenTypeAccess)
}

func (t *Tokens) ParseRefresh(raw string) (*Claims, error) {
	c, err := t.parse(raw, tokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	if t.isRevoked(c.ID) {
		return nil, ErrRevoked
	}
	return c, nil
}

// Rotate exchanges a refresh token for a new pair and revokes the old one.
// A refresh token rotates at most once, even under concurrent calls.
func (t *Tokens) Rotate(raw string) (TokenPair, error) {
	c, err := t.parse(raw, tokenTypeRefresh)
	if err != nil {
		return TokenPair{}, err
	}
	if !t.consume(c) {
		return TokenPair{}, ErrRevoked
	}
	return t.Issue(identity.Identity{UID: c.UID, Email: c.Email, DisplayName: c.DisplayName})
}

// Revoke blocks the token until it would have expired anyway.
func (t *Tokens) Revoke(c *Claims) {
	t.consume(c)
}

// consume revokes c and reports whether it was still live.
func (t *Tokens) consume(c *Claims) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	for id, exp := range t.revoked {
		if now.After(exp) {
			delete(t.revoked, id)
		}
	}
	if _, ok := t.revoked[c.ID]; ok {
		return false
	}
	t.revoked[c.ID] = c.ExpiresAt
	return true
}

func (t *Tokens) isRevoked(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.revoked[id]
	return ok
}

func (t *Tokens) parse(raw, wantType string) (*Claims, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["type"] != wantType {
		return nil, ErrInvalidToken
	}
	uid, _ := claims["uid"].(string)
	if uid == "" {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	jti, _ := claims["jti"].(string)
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, ErrInvalidToken
	}
	return &Claims{UID: uid, Email: email, DisplayName: name, ID: jti, Type: wantType, ExpiresAt: exp.Time}, nil
}
