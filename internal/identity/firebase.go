// Package identity signs administrators in against the identity provider
// and maps provider failures to user-facing messages.
package identity

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/upasthiti/admin-console/internal/logging"
)

const DefaultBaseURL = "https://identitytoolkit.googleapis.com/v1"

// Identity is who signed in, as the provider knows them.
type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

type Provider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*Identity, error)
	// SignInWithGoogle exchanges a Google ID token for a provider identity.
	SignInWithGoogle(ctx context.Context, googleIDToken string) (*Identity, error)
	SendPasswordReset(ctx context.Context, email string) error
	UpdatePassword(ctx context.Context, uid, password string) error
	// SignOut revokes the provider's refresh tokens for uid.
	SignOut(ctx context.Context, uid string) error
}

// AdminClient is the part of the Firebase admin SDK the provider uses.
// *auth.Client satisfies it.
type AdminClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	RevokeRefreshTokens(ctx context.Context, uid string) error
	UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error)
}

// NewAdminClient builds the admin SDK client from a service account file.
// An empty path uses application default credentials.
func NewAdminClient(ctx context.Context, credentialsFile string) (*auth.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}
	return client, nil
}

// Firebase signs in through the Identity Toolkit REST API and, when an admin
// client is set, verifies the issued ID token and manages users with it.
type Firebase struct {
	apiKey  string
	baseURL string
	http    *http.Client
	admin   AdminClient
	log     *zap.Logger
}

type FirebaseOption func(*Firebase)

func WithBaseURL(u string) FirebaseOption {
	return func(f *Firebase) { f.baseURL = strings.TrimRight(u, "/") }
}

func WithAdmin(a AdminClient) FirebaseOption {
	return func(f *Firebase) { f.admin = a }
}

func WithHTTPClient(hc *http.Client) FirebaseOption {
	return func(f *Firebase) { f.http = hc }
}

func WithLogger(l *zap.Logger) FirebaseOption {
	return func(f *Firebase) { f.log = logging.OrNop(l).Named("identity") }
}

func NewFirebase(apiKey string, opts ...FirebaseOption) *Firebase {
	f := &Firebase{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type signInResponse struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IDToken     string `json:"idToken"`
}

func (f *Firebase) SignInWithPassword(ctx context.Context, email, password string) (*Identity, error) {
	body := map[string]any{"email": email, "password": password, "returnSecureToken": true}
	var out signInResponse
	if err := f.call(ctx, FlowPassword, "accounts:signInWithPassword", body, &out); err != nil {
		return nil, err
	}
	return f.identity(ctx, FlowPassword, out)
}

func (f *Firebase) SignInWithGoogle(ctx context.Context, googleIDToken string) (*Identity, error) {
	post := url.Values{"id_token": {googleIDToken}, "providerId": {"google.com"}}
	body := map[string]any{
		"postBody":            post.Encode(),
		"requestUri":          "http://localhost",
		"returnSecureToken":   true,
		"returnIdpCredential": true,
	}
	var out signInResponse
	if err := f.call(ctx, FlowGoogle, "accounts:signInWithIdp", body, &out); err != nil {
		return nil, err
	}
	return f.identity(ctx, FlowGoogle, out)
}

func (f *Firebase) SendPasswordReset(ctx context.Context, email string) error {
	body := map[string]any{"requestType": "PASSWORD_RESET", "email": email}
	return f.call(ctx, FlowReset, "accounts:sendOobCode", body, nil)
}

func (f *Firebase) UpdatePassword(ctx context.Context, uid, password string) error {
	if f.admin == nil {
		return ErrAdminUnavailable
	}
	if _, err := f.admin.UpdateUser(ctx, uid, (&auth.UserToUpdate{}).Password(password)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (f *Firebase) SignOut(ctx context.Context, uid string) error {
	if f.admin == nil {
		return nil
	}
	if err := f.admin.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	return nil
}

func (f *Firebase) identity(ctx context.Context, flow Flow, out signInResponse) (*Identity, error) {
	id := &Identity{UID: out.LocalID, Email: out.Email, DisplayName: out.DisplayName}
	if f.admin == nil {
		return id, nil
	}
	tok, err := f.admin.VerifyIDToken(ctx, out.IDToken)
	if err != nil {
		f.log.Warn("id token verification failed", zap.String("uid", out.LocalID), zap.Error(err))
		return nil, newAuthError(flow, CodeInvalidCredential, err)
	}
	id.UID = tok.UID
	return id, nil
}

func (f *Firebase) call(ctx context.Context, flow Flow, method string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	u := f.baseURL + "/" + method + "?key=" + url.QueryEscape(f.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.http.Do(req)
	if err != nil {
		f.log.Warn("identity request failed", zap.String("method", method), zap.Error(err))
		return newAuthError(flow, CodeUnknown, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return newAuthError(flow, CodeUnknown, err)
	}

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.Unmarshal(raw, &e)
		code := codeFromREST(e.Error.Message)
		f.log.Info("identity provider rejected request",
			zap.String("method", method),
			zap.Int("status", resp.StatusCode),
			zap.String("code", code),
		)
		return newAuthError(flow, code, fmt.Errorf("%s: %s", method, e.Error.Message))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return newAuthError(flow, CodeUnknown, err)
	}
	return nil
}
