package identity

import (
	"errors"
	"strings"
)

// Provider error codes the console distinguishes.
const (
	CodeInvalidCredential = "auth/invalid-credential"
	CodeUserNotFound      = "auth/user-not-found"
	CodeWrongPassword     = "auth/wrong-password"
	CodeTooManyRequests   = "auth/too-many-requests"
	CodePopupClosed       = "auth/popup-closed-by-user"
	CodeUserDisabled      = "auth/user-disabled"
	CodeInvalidEmail      = "auth/invalid-email"
	CodeUnknown           = "auth/internal-error"
)

// Flow is the sign-in action an error came from. Unmatched codes fall back
// to a flow-specific message.
type Flow int

const (
	FlowPassword Flow = iota
	FlowGoogle
	FlowReset
)

var flowMessages = map[Flow]struct {
	known    map[string]string
	fallback string
}{
	FlowPassword: {
		known: map[string]string{
			CodeInvalidCredential: "Invalid email or password",
			CodeUserNotFound:      "No account found with this email",
			CodeWrongPassword:     "Incorrect password",
			CodeTooManyRequests:   "Too many failed attempts. Please try again later",
		},
		fallback: "Failed to login. Please try again",
	},
	FlowGoogle: {
		known: map[string]string{
			CodePopupClosed: "Sign-in popup closed before completing sign-in.",
		},
		fallback: "Failed to sign in with Google. Please try again.",
	},
	FlowReset: {
		known: map[string]string{
			CodeUserNotFound: "No account found with this email",
		},
		fallback: "Failed to send reset email. Please try again",
	},
}

// ResetSentMessage confirms a password reset email went out.
const ResetSentMessage = "Password reset email sent! Check your inbox."

// AuthError is a provider failure. Message is safe to show the user.
type AuthError struct {
	Code    string
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Code
}

func (e *AuthError) Unwrap() error { return e.Err }

// MessageFor maps a provider code to the text shown for flow.
func MessageFor(flow Flow, code string) string {
	m := flowMessages[flow]
	if msg, ok := m.known[code]; ok {
		return msg
	}
	return m.fallback
}

func newAuthError(flow Flow, code string, err error) *AuthError {
	return &AuthError{Code: code, Message: MessageFor(flow, code), Err: err}
}

// restCodes maps Identity Toolkit REST error messages to provider codes.
var restCodes = map[string]string{
	"EMAIL_NOT_FOUND":             CodeUserNotFound,
	"USER_NOT_FOUND":              CodeUserNotFound,
	"INVALID_PASSWORD":            CodeWrongPassword,
	"INVALID_LOGIN_CREDENTIALS":   CodeInvalidCredential,
	"INVALID_IDP_RESPONSE":        CodeInvalidCredential,
	"TOO_MANY_ATTEMPTS_TRY_LATER": CodeTooManyRequests,
	"USER_DISABLED":               CodeUserDisabled,
	"INVALID_EMAIL":               CodeInvalidEmail,
}

// codeFromREST reads messages like "TOO_MANY_ATTEMPTS_TRY_LATER : Access
// to this account has been temporarily disabled".
func codeFromREST(message string) string {
	key, _, _ := strings.Cut(message, " ")
	if code, ok := restCodes[strings.TrimSpace(key)]; ok {
		return code
	}
	return CodeUnknown
}

// FormError is a client-side validation failure with a user-facing message.
type FormError struct {
	Message string
}

func (e *FormError) Error() string { return e.Message }

var ErrAdminUnavailable = errors.New("identity: admin client not configured")

// GoogleSignInCancelled is reported when the user backs out of the Google
// consent screen.
func GoogleSignInCancelled() *AuthError {
	return newAuthError(FlowGoogle, CodePopupClosed, nil)
}
