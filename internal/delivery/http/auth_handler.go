package http

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"papertrade/internal/delivery/http/dto"
	"papertrade/internal/domain"
	"papertrade/internal/middleware"
	"papertrade/internal/service"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	userRepo    domain.UserRepository
	presence    *service.PresenceService
	notifier    domain.Notifier
	defaultCash float64
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo domain.UserRepository, presence *service.PresenceService, notifier domain.Notifier, defaultCash float64) *AuthHandler {
	return &AuthHandler{
		userRepo:    userRepo,
		presence:    presence,
		notifier:    notifier,
		defaultCash: defaultCash,
	}
}

// loginDenials maps a non-active status to its login error message. A
// pending account must never reach the trading dashboard.
var loginDenials = map[domain.Status]string{
	domain.StatusPending:   "Account is awaiting admin approval",
	domain.StatusInactive:  "Account is inactive",
	domain.StatusSuspended: "Account is suspended",
	domain.StatusBanned:    "Account is banned",
	domain.StatusDeleted:   "Account no longer exists",
}

// Login handles user login
// POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return BadRequestResponse(c, "Username and password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return UnauthorizedResponse(c, "Invalid credentials")
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return UnauthorizedResponse(c, "Invalid credentials")
	}

	// A valid password is not enough; the account status decides access
	if !user.Status.CanLogin() {
		msg, ok := loginDenials[user.Status]
		if !ok {
			msg = "Account is not active"
		}
		return ForbiddenResponse(c, msg)
	}

	// Generate JWT token
	token, err := middleware.GenerateJWT(user.ID, user.Role)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to generate token", err)
	}

	now := time.Now()
	if err := h.userRepo.TouchLogin(ctx, user.ID, now); err != nil {
		log.Printf("WARNING: Failed to record login for %s: %v", user.Username, err)
	}
	if err := h.presence.Heartbeat(ctx, user.ID); err != nil {
		log.Printf("WARNING: Failed to record presence for %s: %v", user.Username, err)
	}
	user.LastLoginAt = &now

	// Set HTTP-only cookie
	cookie := &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   false, // Set to true in production with HTTPS
		SameSite: http.SameSiteStrictMode,
		MaxAge:   86400, // 24 hours
	}
	c.SetCookie(cookie)

	return c.JSON(http.StatusOK, dto.LoginResponse{
		Token: token,
		User:  dto.NewUserOutput(user),
	})
}

// Logout handles user logout
// POST /api/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	// Clear the cookie
	cookie := &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1, // Delete cookie
	}
	c.SetCookie(cookie)

	return SuccessMessageResponse(c, "Logged out", nil)
}

// Register handles user registration. New accounts start pending; an
// admin has to approve them before login works.
// POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return BadRequestResponse(c, err.Error())
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to hash password", err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.Username
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     req.Username,
		DisplayName:  displayName,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: string(hashedPassword),
		Role:         domain.RoleUser,
		Status:       domain.StatusPending,
		Approved:     false,
		CashBalance:  h.defaultCash,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := h.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) || errors.Is(err, domain.ErrEmailTaken) {
			return ConflictResponse(c, err.Error())
		}
		return InternalServerErrorResponse(c, "Failed to create user", err)
	}

	if h.notifier != nil {
		if err := h.notifier.Notify(ctx, fmt.Sprintf("New registration pending approval: %s (%s)", user.Username, user.Email)); err != nil {
			log.Printf("WARNING: Failed to send registration notification: %v", err)
		}
	}

	return CreatedResponse(c, map[string]string{
		"message":  "Registration received, awaiting admin approval",
		"username": user.Username,
		"status":   string(user.Status),
	})
}
