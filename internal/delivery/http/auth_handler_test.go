package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"papertrade/internal/domain"
	"papertrade/internal/service"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}
	return e
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func hashed(password string) string {
	h, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(h)
}

func TestLogin_ActiveUserGetsTokenAndCookie(t *testing.T) {
	userRepo := new(mockUserRepo)
	presence := service.NewPresenceService(nil, userRepo)
	h := NewAuthHandler(userRepo, presence, nil, 100000)

	user := &domain.User{
		ID:           uuid.New(),
		Username:     "trader",
		PasswordHash: hashed("secret123"),
		Role:         domain.RoleUser,
		Status:       domain.StatusActive,
	}
	userRepo.On("GetByUsername", mock.Anything, "trader").Return(user, nil).Once()
	userRepo.On("TouchLogin", mock.Anything, user.ID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	e := newTestEcho()
	c, rec := postJSON(e, "/api/auth/login", `{"username":"trader","password":"secret123"}`)

	err := h.Login(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["token"])

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLogin_PendingUserDenied(t *testing.T) {
	userRepo := new(mockUserRepo)
	h := NewAuthHandler(userRepo, service.NewPresenceService(nil, userRepo), nil, 100000)

	user := &domain.User{
		ID:           uuid.New(),
		Username:     "newbie",
		PasswordHash: hashed("secret123"),
		Role:         domain.RoleUser,
		Status:       domain.StatusPending,
	}
	userRepo.On("GetByUsername", mock.Anything, "newbie").Return(user, nil).Once()

	e := newTestEcho()
	c, rec := postJSON(e, "/api/auth/login", `{"username":"newbie","password":"secret123"}`)

	err := h.Login(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "awaiting admin approval")
	userRepo.AssertNotCalled(t, "TouchLogin", mock.Anything, mock.Anything, mock.Anything)
}

func TestLogin_SuspendedUserDenied(t *testing.T) {
	userRepo := new(mockUserRepo)
	h := NewAuthHandler(userRepo, service.NewPresenceService(nil, userRepo), nil, 100000)

	user := &domain.User{
		ID:           uuid.New(),
		Username:     "trouble",
		PasswordHash: hashed("secret123"),
		Role:         domain.RoleUser,
		Status:       domain.StatusSuspended,
	}
	userRepo.On("GetByUsername", mock.Anything, "trouble").Return(user, nil).Once()

	e := newTestEcho()
	c, rec := postJSON(e, "/api/auth/login", `{"username":"trouble","password":"secret123"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "suspended")
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(mockUserRepo)
	h := NewAuthHandler(userRepo, service.NewPresenceService(nil, userRepo), nil, 100000)

	user := &domain.User{
		ID:           uuid.New(),
		Username:     "trader",
		PasswordHash: hashed("secret123"),
		Status:       domain.StatusActive,
	}
	userRepo.On("GetByUsername", mock.Anything, "trader").Return(user, nil).Once()

	e := newTestEcho()
	c, rec := postJSON(e, "/api/auth/login", `{"username":"trader","password":"wrong"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_UnknownUserGetsSameError(t *testing.T) {
	userRepo := new(mockUserRepo)
	h := NewAuthHandler(userRepo, service.NewPresenceService(nil, userRepo), nil, 100000)

	userRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, domain.ErrNotFound).Once()

	e := newTestEcho()
	c, rec := postJSON(e, "/api/auth/login", `{"username":"ghost","password":"whatever1"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestRegister_NewAccountStartsPending(t *testing.T) {
	userRepo := new(mockUserRepo)
	h := NewAuthHandler(userRepo, service.NewPresenceService(nil, userRepo), nil, 50000)

	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Username == "newbie" &&
			u.Status == domain.StatusPending &&
			!u.Approved &&
			u.CashBalance == 50000
	})).Return(nil).Once()

	e := newTestEcho()
	c, rec := postJSON(e, "/api/auth/register",
		`{"username":"newbie","email":"newbie@example.com","password":"secret123"}`)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "awaiting admin approval")
	userRepo.AssertExpectations(t)
}

func TestRegister_DuplicateUsernameConflicts(t *testing.T) {
	userRepo := new(mockUserRepo)
	h := NewAuthHandler(userRepo, service.NewPresenceService(nil, userRepo), nil, 50000)

	userRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrUsernameTaken).Once()

	e := newTestEcho()
	c, rec := postJSON(e, "/api/auth/register",
		`{"username":"trader","email":"other@example.com","password":"secret123"}`)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}
