package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"papertrade/internal/domain"
	"papertrade/internal/service"
)

func newAdminFixture() (*AdminHandler, *mockUserRepo, *mockAuditRepo) {
	userRepo := new(mockUserRepo)
	auditRepo := new(mockAuditRepo)
	statusService := service.NewStatusService(userRepo, auditRepo, nil)
	return NewAdminHandler(
		service.NewDirectoryService(userRepo),
		statusService,
		service.NewBulkService(statusService),
		nil,
	), userRepo, auditRepo
}

func adminContext(e *echo.Echo, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uuid.New())
	c.Set("role", domain.RoleAdmin)
	return c, rec
}

func TestListUsers_PassesQueryParamsThrough(t *testing.T) {
	h, userRepo, _ := newAdminFixture()

	expected := domain.UserListParams{
		Search:    "alice",
		Status:    domain.StatusActive,
		Role:      domain.RoleUser,
		SortBy:    "created_at",
		SortOrder: "desc",
		Page:      2,
		Limit:     25,
	}
	userRepo.On("List", mock.Anything, expected).Return(&domain.UserPage{
		Users: []*domain.User{}, Total: 30, Pages: 2, Page: 2, Limit: 25,
	}, nil).Once()

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet,
		"/api/admin/users?search=alice&status=active&role=user&sortBy=created_at&sortOrder=desc&page=2&limit=25", nil)
	c, rec := adminContext(e, req)

	require.NoError(t, h.ListUsers(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	userRepo.AssertExpectations(t)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
}

func TestListUsers_UnknownStatusFilterRejected(t *testing.T) {
	h, userRepo, _ := newAdminFixture()

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users?status=frozen", nil)
	c, rec := adminContext(e, req)

	require.NoError(t, h.ListUsers(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	userRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestListUsers_UnknownRoleFilterRejected(t *testing.T) {
	h, userRepo, _ := newAdminFixture()

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users?role=wizard", nil)
	c, rec := adminContext(e, req)

	require.NoError(t, h.ListUsers(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	userRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestApproveUser_PendingBecomesActive(t *testing.T) {
	h, userRepo, auditRepo := newAdminFixture()

	userID := uuid.New()
	pending := &domain.User{ID: userID, Username: "newbie", Role: domain.RoleUser, Status: domain.StatusPending}

	userRepo.On("GetByID", mock.Anything, userID).Return(pending, nil).Once()
	userRepo.On("UpdateStatus", mock.Anything, userID, domain.StatusActive, true).Return(nil).Once()
	auditRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.AuditLog")).Return(nil).Once()

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/api/admin/users/%s/approve", userID), strings.NewReader(`{"approve":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := adminContext(e, req)
	c.SetParamNames("id")
	c.SetParamValues(userID.String())

	require.NoError(t, h.ApproveUser(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	userRepo.AssertExpectations(t)
}

func TestApproveUser_UnknownUserIs404(t *testing.T) {
	h, userRepo, _ := newAdminFixture()

	userID := uuid.New()
	userRepo.On("GetByID", mock.Anything, userID).Return(nil, domain.ErrNotFound).Once()

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/users/x/approve", strings.NewReader(`{"approve":true}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := adminContext(e, req)
	c.SetParamNames("id")
	c.SetParamValues(userID.String())

	require.NoError(t, h.ApproveUser(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSetUserStatus_IllegalTransitionConflicts(t *testing.T) {
	h, userRepo, _ := newAdminFixture()

	userID := uuid.New()
	banned := &domain.User{ID: userID, Role: domain.RoleUser, Status: domain.StatusBanned}
	userRepo.On("GetByID", mock.Anything, userID).Return(banned, nil).Once()

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPut, "/api/admin/users/x/status", strings.NewReader(`{"status":"active"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := adminContext(e, req)
	c.SetParamNames("id")
	c.SetParamValues(userID.String())

	require.NoError(t, h.SetUserStatus(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSetUserStatus_AdminAccountProtected(t *testing.T) {
	h, userRepo, _ := newAdminFixture()

	userID := uuid.New()
	admin := &domain.User{ID: userID, Role: domain.RoleAdmin, Status: domain.StatusActive}
	userRepo.On("GetByID", mock.Anything, userID).Return(admin, nil).Once()

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPut, "/api/admin/users/x/status", strings.NewReader(`{"status":"banned"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := adminContext(e, req)
	c.SetParamNames("id")
	c.SetParamValues(userID.String())

	require.NoError(t, h.SetUserStatus(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	userRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBulkAction_MixedOutcomeReported(t *testing.T) {
	h, userRepo, auditRepo := newAdminFixture()

	okID := uuid.New()
	badID := uuid.New()

	active := &domain.User{ID: okID, Role: domain.RoleUser, Status: domain.StatusActive}
	banned := &domain.User{ID: badID, Role: domain.RoleUser, Status: domain.StatusBanned}

	userRepo.On("GetByID", mock.Anything, okID).Return(active, nil).Once()
	userRepo.On("UpdateStatus", mock.Anything, okID, domain.StatusSuspended, false).Return(nil).Once()
	userRepo.On("GetByID", mock.Anything, badID).Return(banned, nil).Once()
	auditRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.AuditLog")).Return(nil)

	e := newTestEcho()
	body := fmt.Sprintf(`{"ids":["%s","%s"],"action":"suspend"}`, okID, badID)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/users/bulk", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := adminContext(e, req)

	require.NoError(t, h.BulkAction(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			Processed int `json:"processed"`
			Succeeded int `json:"succeeded"`
			Failed    int `json:"failed"`
			Failures  []struct {
				ID string `json:"id"`
			} `json:"failures"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Data.Processed)
	assert.Equal(t, 1, resp.Data.Succeeded)
	assert.Equal(t, 1, resp.Data.Failed)
	require.Len(t, resp.Data.Failures, 1)
	assert.Equal(t, badID.String(), resp.Data.Failures[0].ID)
}

func TestBulkAction_EmptySelectionRejected(t *testing.T) {
	h, _, _ := newAdminFixture()

	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/users/bulk", strings.NewReader(`{"ids":[],"action":"suspend"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := adminContext(e, req)

	require.NoError(t, h.BulkAction(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBulkAction_UnknownActionRejected(t *testing.T) {
	h, _, _ := newAdminFixture()

	e := newTestEcho()
	body := fmt.Sprintf(`{"ids":["%s"],"action":"promote"}`, uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/api/admin/users/bulk", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := adminContext(e, req)

	require.NoError(t, h.BulkAction(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
