package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shynora-backend/internal/auth"
)

func (h *Handler) setTokenCookie(c *gin.Context, token string) {
	secure := h.cfg.Env == "production"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", token, 30*24*3600, "/", "", secure, true)
}

// authError maps auth service errors onto the original API's status codes
// and messages.
func authError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrEmailTaken):
		respondError(c, 400, "User with this email already exists", nil)
	case errors.Is(err, auth.ErrUserNotFound):
		respondError(c, 404, "User not found", nil)
	case errors.Is(err, auth.ErrAlreadyVerified):
		respondError(c, 400, "Email already verified", nil)
	case errors.Is(err, auth.ErrNoOTP):
		respondError(c, 400, "OTP not found. Please request a new OTP.", nil)
	case errors.Is(err, auth.ErrOTPExpired):
		respondError(c, 400, "OTP has expired. Please request a new OTP.", nil)
	case errors.Is(err, auth.ErrOTPMismatch):
		respondError(c, 400, "Invalid OTP", nil)
	case errors.Is(err, auth.ErrInvalidCredentials):
		respondError(c, 401, "Invalid email or password", nil)
	case errors.Is(err, auth.ErrNotVerified):
		respondError(c, 401, "Please verify your email before logging in", nil)
	default:
		respondError(c, 500, "Internal server error", err)
	}
}

func (h *Handler) signup(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" {
		respondError(c, 400, "Please provide name, email, and password", nil)
		return
	}
	u, emailed, err := h.auth.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		authError(c, err)
		return
	}
	msg := "User created successfully. OTP sent to your email."
	if !emailed {
		msg = "User created successfully, but OTP email failed to send. Please use resend OTP."
	}
	respondOK(c, 201, msg, gin.H{"userId": u.ID.Hex(), "email": u.Email})
}

func (h *Handler) verifyOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.OTP == "" {
		respondError(c, 400, "Please provide email and OTP", nil)
		return
	}
	result, err := h.auth.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		authError(c, err)
		return
	}
	h.setTokenCookie(c, result.Token)
	respondOK(c, 200, "Email verified successfully", result)
}

func (h *Handler) resendOTP(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		respondError(c, 400, "Please provide email", nil)
		return
	}
	if err := h.auth.ResendOTP(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, auth.ErrUserNotFound) || errors.Is(err, auth.ErrAlreadyVerified) {
			authError(c, err)
			return
		}
		respondError(c, 500, "Failed to send OTP email", err)
		return
	}
	respondOK(c, 200, "OTP resent successfully to your email", nil)
}

func (h *Handler) login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		respondError(c, 400, "Please provide email and password", nil)
		return
	}
	result, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		authError(c, err)
		return
	}
	h.setTokenCookie(c, result.Token)
	respondOK(c, 200, "Login successful", result)
}

func (h *Handler) logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	respondOK(c, 200, "Logged out successfully", nil)
}

func (h *Handler) currentUser(c *gin.Context) {
	payload, err := h.auth.CurrentUser(c.Request.Context(), userID(c))
	if err != nil {
		authError(c, err)
		return
	}
	respondOK(c, 200, "", gin.H{"user": payload})
}

func (h *Handler) updateProfile(c *gin.Context) {
	var upd auth.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		respondError(c, 400, "Invalid request body", err)
		return
	}
	payload, err := h.auth.UpdateProfile(c.Request.Context(), userID(c), upd)
	if err != nil {
		authError(c, err)
		return
	}
	respondOK(c, 200, "Profile updated successfully", gin.H{"user": payload})
}

func (h *Handler) googleAuth(c *gin.Context) {
	redirect := c.Query("redirect")
	if redirect == "" {
		redirect = h.cfg.FrontendURL
	}
	authURL, err := h.oauth.AuthURL(redirect)
	if err != nil {
		if errors.Is(err, auth.ErrOAuthDisabled) {
			respondError(c, 500, "Google OAuth is not configured", nil)
			return
		}
		respondError(c, 500, "Error starting Google authentication", err)
		return
	}
	c.Redirect(http.StatusFound, authURL)
}

func (h *Handler) googleCallback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		respondError(c, 401, "Google authentication failed", nil)
		return
	}
	u, redirect, err := h.oauth.HandleCallback(c.Request.Context(), code, state)
	if err != nil {
		respondError(c, 401, "Google authentication failed", err)
		return
	}
	token, err := h.auth.Token(u.ID)
	if err != nil {
		respondError(c, 500, "Error in Google OAuth callback", err)
		return
	}
	h.setTokenCookie(c, token)

	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		payload, err := h.auth.CurrentUser(c.Request.Context(), u.ID)
		if err != nil {
			authError(c, err)
			return
		}
		respondOK(c, 200, "Google authentication successful", gin.H{"token": token, "user": payload})
		return
	}
	c.Redirect(http.StatusFound, auth.RedirectWithToken(redirect, token))
}
