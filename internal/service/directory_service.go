package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"papertrade/internal/domain"
)

// DirectoryService serves the admin user directory: paginated, filterable,
// sortable queries over the user table. Pagination is authoritative here;
// clients render whatever total and page count the server reports.
type DirectoryService struct {
	userRepo domain.UserRepository
}

// NewDirectoryService creates a new DirectoryService
func NewDirectoryService(userRepo domain.UserRepository) *DirectoryService {
	return &DirectoryService{userRepo: userRepo}
}

// List returns one page of the directory after normalizing the params
func (s *DirectoryService) List(ctx context.Context, params domain.UserListParams) (*domain.UserPage, error) {
	if params.Status != "" && !domain.ValidStatus(params.Status) {
		return nil, domain.ErrInvalidStatus
	}
	if params.Role != "" && !domain.ValidRole(params.Role) {
		return nil, domain.ErrInvalidRole
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 || params.Limit > 100 {
		params.Limit = 10
	}

	return s.userRepo.List(ctx, params)
}

// ExportCSV streams every user matching the filter set as CSV rows.
// Pages through the repository so the export never loads the whole
// directory at once.
func (s *DirectoryService) ExportCSV(ctx context.Context, params domain.UserListParams, w io.Writer) error {
	cw := csv.NewWriter(w)
	header := []string{"id", "username", "display_name", "email", "role", "status", "approved", "portfolio_value", "trade_count", "joined"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	params.Page = 1
	params.Limit = 100

	for {
		page, err := s.userRepo.List(ctx, params)
		if err != nil {
			return err
		}

		for _, u := range page.Users {
			row := []string{
				u.ID.String(),
				u.Username,
				u.DisplayName,
				u.Email,
				string(u.Role),
				string(u.Status),
				strconv.FormatBool(u.Approved),
				strconv.FormatFloat(u.PortfolioValue, 'f', 2, 64),
				strconv.Itoa(u.TradeCount),
				u.CreatedAt.Format(time.RFC3339),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}

		if params.Page >= page.Pages {
			break
		}
		params.Page++
	}

	cw.Flush()
	return cw.Error()
}
