package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/upasthiti/admin-console/internal/config"
	"github.com/upasthiti/admin-console/internal/identity"
	"github.com/upasthiti/admin-console/internal/logging"
)

const stateCookie = "oauth_state"

// ErrNotAdmin is returned by an AdminCheckFunc for accounts that may sign
// in to the identity provider but are not console administrators.
var ErrNotAdmin = errors.New("auth: not an administrator")

// SignOutFunc clears whatever the console holds for uid.
type SignOutFunc func(ctx context.Context, uid string) error

// AdminCheckFunc decides whether uid may hold a console session.
type AdminCheckFunc func(ctx context.Context, uid string) error

type Handler struct {
	tokens     *Tokens
	provider   identity.Provider
	google     *oauth2.Config
	signOut    SignOutFunc
	adminCheck AdminCheckFunc
	log        *zap.Logger
}

func NewHandler(tokens *Tokens, provider identity.Provider, signOut SignOutFunc, logger *zap.Logger) *Handler {
	return &Handler{
		tokens:   tokens,
		provider: provider,
		signOut:  signOut,
		log:      logging.OrNop(logger).Named("auth"),
	}
}

// GoogleConfig builds the OAuth client used for Google sign-in.
func GoogleConfig(cfg *config.Config) *oauth2.Config {
	return &oauth2.Config{
		RedirectURL:  cfg.GoogleRedirectURL,
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleSecret,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// WithGoogle enables the Google sign-in routes.
func (h *Handler) WithGoogle(cfg *oauth2.Config) *Handler {
	h.google = cfg
	return h
}

// WithAdminCheck refuses tokens to identities check rejects.
func (h *Handler) WithAdminCheck(check AdminCheckFunc) *Handler {
	h.adminCheck = check
	return h
}

func (h *Handler) fail(c *gin.Context, err error, fallbackStatus int) {
	var ae *identity.AuthError
	var fe *identity.FormError
	switch {
	case errors.As(err, &fe):
		c.JSON(http.StatusBadRequest, gin.H{"error": fe.Message})
	case errors.As(err, &ae):
		c.JSON(http.StatusUnauthorized, gin.H{"error": ae.Message, "code": ae.Code})
	default:
		c.JSON(fallbackStatus, gin.H{"error": "Failed to login. Please try again"})
	}
}

// Login godoc
// @Summary      Sign in with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  identity.LoginForm  true  "Credentials"
// @Success      200   {object} TokenPair
// @Failure      400   {object} map[string]string
// @Failure      401   {object} map[string]string
// @Failure      403   {object} map[string]string
// @Router       /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var form identity.LoginForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please fill in all fields"})
		return
	}
	if err := form.Validate(); err != nil {
		h.fail(c, err, http.StatusBadRequest)
		return
	}

	id, err := h.provider.SignInWithPassword(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		h.log.Info("password sign-in failed", zap.String("email", form.Email), zap.Error(err))
		h.fail(c, err, http.StatusUnauthorized)
		return
	}
	h.issue(c, *id)
}

// GoogleLogin godoc
// @Summary      Start Google sign-in
// @Tags         auth
// @Success      307  {string}  string  "redirect to Google"
// @Router       /auth/google/login [get]
func (h *Handler) GoogleLogin(c *gin.Context) {
	if h.google == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Google sign-in is not configured"})
		return
	}
	state := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookie, state, 600, "/auth/google", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.google.AuthCodeURL(state))
}

// GoogleCallback godoc
// @Summary      Finish Google sign-in
// @Tags         auth
// @Produce      json
// @Success      200 {object} TokenPair
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Router       /auth/google/callback [get]
func (h *Handler) GoogleCallback(c *gin.Context) {
	if h.google == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Google sign-in is not configured"})
		return
	}
	if c.Query("error") != "" {
		h.fail(c, identity.GoogleSignInCancelled(), http.StatusUnauthorized)
		return
	}
	state, err := c.Cookie(stateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		c.JSON(http.StatusBadRequest, gin.H{"error": identity.MessageFor(identity.FlowGoogle, "")})
		return
	}

	token, err := h.google.Exchange(c.Request.Context(), c.Query("code"))
	if err != nil {
		h.log.Warn("google code exchange failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": identity.MessageFor(identity.FlowGoogle, "")})
		return
	}
	idToken, _ := token.Extra("id_token").(string)
	if idToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": identity.MessageFor(identity.FlowGoogle, "")})
		return
	}

	id, err := h.provider.SignInWithGoogle(c.Request.Context(), idToken)
	if err != nil {
		h.log.Info("google sign-in failed", zap.Error(err))
		h.fail(c, err, http.StatusUnauthorized)
		return
	}
	h.issue(c, *id)
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// Refresh godoc
// @Summary      Rotate console tokens
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  refreshRequest  true  "Refresh token"
// @Success      200   {object} TokenPair
// @Failure      400   {object} map[string]string
// @Failure      401   {object} map[string]string
// @Router       /auth/refresh [post]
func (h *Handler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing refresh token"})
		return
	}
	pair, err := h.tokens.Rotate(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}
	c.JSON(http.StatusOK, pair)
}

// PasswordReset godoc
// @Summary      Send a password reset email
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  identity.ResetForm  true  "Email"
// @Success      200   {object} map[string]string
// @Failure      400   {object} map[string]string
// @Router       /auth/password-reset [post]
func (h *Handler) PasswordReset(c *gin.Context) {
	var form identity.ResetForm
	_ = c.ShouldBindJSON(&form)
	if err := form.Validate(); err != nil {
		h.fail(c, err, http.StatusBadRequest)
		return
	}
	if err := h.provider.SendPasswordReset(c.Request.Context(), form.Email); err != nil {
		h.log.Info("password reset failed", zap.String("email", form.Email), zap.Error(err))
		var ae *identity.AuthError
		if errors.As(err, &ae) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ae.Message, "code": ae.Code})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": identity.MessageFor(identity.FlowReset, "")})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": identity.ResetSentMessage})
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Logout godoc
// @Summary      Sign out
// @Description  Revokes the session and clears every piece of state held for the administrator.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  logoutRequest  false  "Refresh token to revoke"
// @Success      200   {object} map[string]string
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	uid := c.GetString(ContextUID)
	ctx := c.Request.Context()

	var req logoutRequest
	_ = c.ShouldBindJSON(&req)
	if req.RefreshToken != "" {
		if claims, err := h.tokens.ParseRefresh(req.RefreshToken); err == nil && claims.UID == uid {
			h.tokens.Revoke(claims)
		}
	}
	if err := h.provider.SignOut(ctx, uid); err != nil {
		h.log.Warn("provider sign-out failed", zap.String("uid", uid), zap.Error(err))
	}
	if h.signOut != nil {
		if err := h.signOut(ctx, uid); err != nil {
			h.log.Error("clear session state", zap.String("uid", uid), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign out"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

func (h *Handler) issue(c *gin.Context, id identity.Identity) {
	if h.adminCheck != nil {
		if err := h.adminCheck(c.Request.Context(), id.UID); err != nil {
			if errors.Is(err, ErrNotAdmin) {
				h.log.Warn("sign-in by non-administrator", zap.String("uid", id.UID))
				c.JSON(http.StatusForbidden, gin.H{"error": "Not an administrator"})
				return
			}
			h.log.Error("check administrator", zap.String("uid", id.UID), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to login. Please try again"})
			return
		}
	}
	pair, err := h.tokens.Issue(id)
	if err != nil {
		h.log.Error("issue tokens", zap.String("uid", id.UID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login. Please try again"})
		return
	}
	c.JSON(http.StatusOK, pair)
}
