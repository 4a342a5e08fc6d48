package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"papertrade/internal/delivery/http/dto"
	"papertrade/internal/domain"
	"papertrade/internal/middleware"
	"papertrade/internal/service"
)

// AdminHandler handles the admin console's user management requests
type AdminHandler struct {
	directory     *service.DirectoryService
	statusService *service.StatusService
	bulkService   *service.BulkService
	statsService  *service.StatsService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	directory *service.DirectoryService,
	statusService *service.StatusService,
	bulkService *service.BulkService,
	statsService *service.StatsService,
) *AdminHandler {
	return &AdminHandler{
		directory:     directory,
		statusService: statusService,
		bulkService:   bulkService,
		statsService:  statsService,
	}
}

func listParamsFromQuery(c echo.Context) domain.UserListParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	return domain.UserListParams{
		Search:    c.QueryParam("search"),
		Status:    domain.Status(c.QueryParam("status")),
		Role:      domain.Role(c.QueryParam("role")),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
		Page:      page,
		Limit:     limit,
	}
}

// ListUsers returns one page of the user directory
// GET /api/admin/users
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	page, err := h.directory.List(ctx, listParamsFromQuery(c))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			return BadRequestResponse(c, "Unknown status filter")
		}
		if errors.Is(err, domain.ErrInvalidRole) {
			return BadRequestResponse(c, "Unknown role filter")
		}
		return InternalServerErrorResponse(c, "Failed to fetch users", err)
	}

	return SuccessResponse(c, dto.NewUserListOutput(page))
}

// ExportUsers streams the current filter set as CSV
// GET /api/admin/users/export
func (h *AdminHandler) ExportUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="users.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	return h.directory.ExportCSV(ctx, listParamsFromQuery(c), c.Response())
}

// ApproveUser resolves a pending registration
// POST /api/admin/users/:id/approve
func (h *AdminHandler) ApproveUser(c echo.Context) error {
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid user id")
	}

	var req dto.ApproveRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.statusService.Approve(ctx, actorID, userID, req.Approve); err != nil {
		return h.mapStatusError(c, err)
	}

	message := "User approved"
	if !req.Approve {
		message = "User registration rejected"
	}
	return SuccessMessageResponse(c, message, nil)
}

// SetUserStatus moves one user to a new status through the state machine
// PUT /api/admin/users/:id/status
func (h *AdminHandler) SetUserStatus(c echo.Context) error {
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return BadRequestResponse(c, "Invalid user id")
	}

	var req dto.SetStatusRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return BadRequestResponse(c, "Status is required")
	}

	target := domain.Status(req.Status)
	action := actionForStatus(target)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.statusService.SetStatus(ctx, actorID, userID, target, action); err != nil {
		return h.mapStatusError(c, err)
	}

	return SuccessMessageResponse(c, fmt.Sprintf("User status set to %s", target), nil)
}

// actionForStatus names the audit action for a direct status update
func actionForStatus(target domain.Status) domain.Action {
	switch target {
	case domain.StatusActive:
		return domain.ActionActivate
	case domain.StatusSuspended:
		return domain.ActionSuspend
	case domain.StatusBanned:
		return domain.ActionBan
	case domain.StatusDeleted:
		return domain.ActionDelete
	}
	return domain.Action(string(target))
}

// BulkAction applies one action to a selection of user IDs sequentially
// POST /api/admin/users/bulk
func (h *AdminHandler) BulkAction(c echo.Context) error {
	actorID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.BulkActionRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return BadRequestResponse(c, "A non-empty selection and an action are required")
	}

	action := domain.Action(req.Action)
	if !domain.ValidAction(action) {
		return BadRequestResponse(c, fmt.Sprintf("Unknown action: %s", req.Action))
	}

	// Budget scales with the selection; items run sequentially.
	timeout := time.Duration(len(req.IDs)+1) * 5 * time.Second
	ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
	defer cancel()

	result, err := h.bulkService.Run(ctx, actorID, req.IDs, action)
	if err != nil {
		return BadRequestResponse(c, err.Error())
	}

	return SuccessResponse(c, result)
}

// GetStats returns the admin dashboard counters
// GET /api/admin/stats
func (h *AdminHandler) GetStats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stats, err := h.statsService.Snapshot(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to build stats", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"stats":   stats,
	})
}

func (h *AdminHandler) mapStatusError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return NotFoundResponse(c, "User not found")
	case errors.Is(err, domain.ErrInvalidTransition):
		return ConflictResponse(c, err.Error())
	case errors.Is(err, domain.ErrAdminImmutable):
		return ConflictResponse(c, err.Error())
	case errors.Is(err, domain.ErrInvalidStatus), errors.Is(err, domain.ErrInvalidAction):
		return BadRequestResponse(c, err.Error())
	}
	return InternalServerErrorResponse(c, "Failed to update user", err)
}
