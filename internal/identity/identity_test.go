package identity

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/goccy/go-json"
)

func TestMessageFor(t *testing.T) {
	cases := []struct {
		flow Flow
		code string
		want string
	}{
		{FlowPassword, CodeInvalidCredential, "Invalid email or password"},
		{FlowPassword, CodeUserNotFound, "No account found with this email"},
		{FlowPassword, CodeWrongPassword, "Incorrect password"},
		{FlowPassword, CodeTooManyRequests, "Too many failed attempts. Please try again later"},
		{FlowPassword, "auth/network-request-failed", "Failed to login. Please try again"},
		{FlowGoogle, CodePopupClosed, "Sign-in popup closed before completing sign-in."},
		{FlowGoogle, CodeWrongPassword, "Failed to sign in with Google. Please try again."},
		{FlowReset, CodeUserNotFound, "No account found with this email"},
		{FlowReset, CodeTooManyRequests, "Failed to send reset email. Please try again"},
	}
	for _, tc := range cases {
		if got := MessageFor(tc.flow, tc.code); got != tc.want {
			t.Fatalf("MessageFor(%d, %s): expected %q, got %q", tc.flow, tc.code, tc.want, got)
		}
	}
}

func TestCodeFromREST(t *testing.T) {
	if got := codeFromREST("TOO_MANY_ATTEMPTS_TRY_LATER : Access to this account has been temporarily disabled"); got != CodeTooManyRequests {
		t.Fatalf("unexpected code %s", got)
	}
	if got := codeFromREST("SOMETHING_NEW"); got != CodeUnknown {
		t.Fatalf("unexpected code %s", got)
	}
}

func TestForms(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"empty login", LoginForm{Email: " ", Password: "x"}.Validate(), "Please fill in all fields"},
		{"login ok", LoginForm{Email: "a@b.c", Password: "x"}.Validate(), ""},
		{"empty reset", ResetForm{}.Validate(), "Please enter your email address"},
		{"switch empty", PasswordSwitchForm{NewPassword: "abcdef"}.Validate(), "Please fill both fields."},
		{"switch mismatch", PasswordSwitchForm{NewPassword: "abcdef", ConfirmPassword: "abcdeg"}.Validate(), "Passwords don't match."},
		{"switch short", PasswordSwitchForm{NewPassword: "abc", ConfirmPassword: "abc"}.Validate(), "Password must be at least 6 characters."},
		{"switch ok", PasswordSwitchForm{NewPassword: "abcdef", ConfirmPassword: "abcdef"}.Validate(), ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.want == "" {
				if tc.err != nil {
					t.Fatalf("unexpected error %v", tc.err)
				}
				return
			}
			var fe *FormError
			if !errors.As(tc.err, &fe) || fe.Message != tc.want {
				t.Fatalf("expected %q, got %v", tc.want, tc.err)
			}
		})
	}
}

type fakeAdmin struct {
	uid      string
	verify   error
	revoked  []string
	updated  string
}

func (f *fakeAdmin) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if f.verify != nil {
		return nil, f.verify
	}
	return &auth.Token{UID: f.uid}, nil
}

func (f *fakeAdmin) RevokeRefreshTokens(ctx context.Context, uid string) error {
	f.revoked = append(f.revoked, uid)
	return nil
}

func (f *fakeAdmin) UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error) {
	f.updated = uid
	return &auth.UserRecord{}, nil
}

func identityServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestSignInWithPassword(t *testing.T) {
	srv := identityServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounts:signInWithPassword" || r.URL.Query().Get("key") != "api-key" {
			t.Errorf("unexpected request %s", r.URL)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "asha@vips.edu" {
			t.Errorf("unexpected body %v", body)
		}
		io.WriteString(w, `{"localId":"u-1","email":"asha@vips.edu","displayName":"Asha","idToken":"tok"}`)
	})

	admin := &fakeAdmin{uid: "u-1"}
	f := NewFirebase("api-key", WithBaseURL(srv.URL), WithAdmin(admin))
	id, err := f.SignInWithPassword(context.Background(), "asha@vips.edu", "secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.UID != "u-1" || id.DisplayName != "Asha" {
		t.Fatalf("unexpected identity %+v", id)
	}
}

func TestSignInWithPasswordMapsProviderError(t *testing.T) {
	srv := identityServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":{"code":400,"message":"INVALID_LOGIN_CREDENTIALS"}}`)
	})

	f := NewFirebase("api-key", WithBaseURL(srv.URL))
	_, err := f.SignInWithPassword(context.Background(), "asha@vips.edu", "bad")
	var ae *AuthError
	if !errors.As(err, &ae) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if ae.Code != CodeInvalidCredential || ae.Message != "Invalid email or password" {
		t.Fatalf("unexpected auth error %+v", ae)
	}
}

func TestSignInRejectsUnverifiedToken(t *testing.T) {
	srv := identityServer(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"localId":"u-1","idToken":"forged"}`)
	})
	f := NewFirebase("api-key", WithBaseURL(srv.URL), WithAdmin(&fakeAdmin{verify: errors.New("bad signature")}))

	_, err := f.SignInWithGoogle(context.Background(), "google-token")
	var ae *AuthError
	if !errors.As(err, &ae) || ae.Message != "Failed to sign in with Google. Please try again." {
		t.Fatalf("expected google fallback message, got %v", err)
	}
}

func TestSendPasswordResetUnknownUser(t *testing.T) {
	srv := identityServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["requestType"] != "PASSWORD_RESET" {
			t.Errorf("unexpected body %v", body)
		}
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":{"message":"EMAIL_NOT_FOUND"}}`)
	})
	f := NewFirebase("api-key", WithBaseURL(srv.URL))

	err := f.SendPasswordReset(context.Background(), "nobody@vips.edu")
	var ae *AuthError
	if !errors.As(err, &ae) || ae.Message != "No account found with this email" {
		t.Fatalf("expected user-not-found message, got %v", err)
	}
}

func TestAdminOperations(t *testing.T) {
	f := NewFirebase("api-key")
	if err := f.UpdatePassword(context.Background(), "u-1", "abcdef"); !errors.Is(err, ErrAdminUnavailable) {
		t.Fatalf("expected ErrAdminUnavailable, got %v", err)
	}
	if err := f.SignOut(context.Background(), "u-1"); err != nil {
		t.Fatalf("sign out without admin should be a no-op, got %v", err)
	}

	admin := &fakeAdmin{}
	f = NewFirebase("api-key", WithAdmin(admin))
	if err := f.UpdatePassword(context.Background(), "u-1", "abcdef"); err != nil || admin.updated != "u-1" {
		t.Fatalf("expected password update for u-1, got %v", err)
	}
	if err := f.SignOut(context.Background(), "u-1"); err != nil || len(admin.revoked) != 1 {
		t.Fatalf("expected revocation, got %v", err)
	}
}
