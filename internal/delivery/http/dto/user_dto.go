package dto

import (
	"time"

	"papertrade/internal/domain"
)

// UserOutput represents user details in API responses
type UserOutput struct {
	ID             string     `json:"id"`
	Username       string     `json:"username"`
	DisplayName    string     `json:"display_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone,omitempty"`
	Role           string     `json:"role"`
	Status         string     `json:"status"`
	Approved       bool       `json:"approved"`
	CashBalance    float64    `json:"cash_balance"`
	PortfolioValue float64    `json:"portfolio_value"`
	TradeCount     int        `json:"trade_count"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	JoinedAt       time.Time  `json:"joined_at"`
}

// NewUserOutput maps a domain user to its API shape
func NewUserOutput(u *domain.User) UserOutput {
	return UserOutput{
		ID:             u.ID.String(),
		Username:       u.Username,
		DisplayName:    u.DisplayName,
		Email:          u.Email,
		Phone:          u.Phone,
		Role:           string(u.Role),
		Status:         string(u.Status),
		Approved:       u.Approved,
		CashBalance:    u.CashBalance,
		PortfolioValue: u.PortfolioValue,
		TradeCount:     u.TradeCount,
		LastLoginAt:    u.LastLoginAt,
		JoinedAt:       u.CreatedAt,
	}
}

// Pagination reports the server-driven paging state
type Pagination struct {
	Total int `json:"total"`
	Pages int `json:"pages"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// UserListOutput is one page of the admin user directory
type UserListOutput struct {
	Users      []UserOutput `json:"users"`
	Pagination Pagination   `json:"pagination"`
}

// NewUserListOutput maps a directory page to its API shape
func NewUserListOutput(page *domain.UserPage) UserListOutput {
	users := make([]UserOutput, 0, len(page.Users))
	for _, u := range page.Users {
		users = append(users, NewUserOutput(u))
	}
	return UserListOutput{
		Users: users,
		Pagination: Pagination{
			Total: page.Total,
			Pages: page.Pages,
			Page:  page.Page,
			Limit: page.Limit,
		},
	}
}
