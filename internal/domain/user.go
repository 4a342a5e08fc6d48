package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a trading account in the system
type User struct {
	ID             uuid.UUID  `json:"id"`
	Username       string     `json:"username"`
	DisplayName    string     `json:"display_name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone,omitempty"`
	PasswordHash   string     `json:"-"` // Never expose password hash in JSON
	Role           Role       `json:"role"`
	Status         Status     `json:"status"`
	Approved       bool       `json:"approved"`
	CashBalance    float64    `json:"cash_balance"`
	PortfolioValue float64    `json:"portfolio_value"`
	TradeCount     int        `json:"trade_count"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	LastSeenAt     *time.Time `json:"last_seen_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Role is the access level of a user account
type Role string

// Role constants
const (
	RoleUser      Role = "user"
	RolePremium   Role = "premium"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ValidRole reports whether r is a known role
func ValidRole(r Role) bool {
	switch r {
	case RoleUser, RolePremium, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// Status is the account access state of a user
type Status string

// Status constants
const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
	StatusBanned    Status = "banned"
	StatusDeleted   Status = "deleted"
)

// ValidStatus reports whether s is a known status
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusActive, StatusInactive, StatusSuspended, StatusBanned, StatusDeleted:
		return true
	}
	return false
}

// Terminal reports whether s is an absorbing state. No transition is
// allowed away from a terminal status.
func (s Status) Terminal() bool {
	return s == StatusBanned || s == StatusDeleted
}

// CanLogin reports whether an account in status s may authenticate into
// the trading dashboard. Pending accounts must wait for admin approval.
func (s Status) CanLogin() bool {
	return s == StatusActive
}

// statusTransitions maps each status to the set of statuses it may move to.
// banned and deleted are absorbing and appear only as targets.
var statusTransitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusActive:  true,
		StatusBanned:  true,
		StatusDeleted: true,
	},
	StatusActive: {
		StatusInactive:  true,
		StatusSuspended: true,
		StatusBanned:    true,
		StatusDeleted:   true,
	},
	StatusInactive: {
		StatusActive:    true,
		StatusSuspended: true,
		StatusBanned:    true,
		StatusDeleted:   true,
	},
	StatusSuspended: {
		StatusActive:  true,
		StatusBanned:  true,
		StatusDeleted: true,
	},
}

// CanTransition reports whether a user may move from one status to another
func CanTransition(from, to Status) bool {
	return statusTransitions[from][to]
}

// Action is an admin operation applied to a user account
type Action string

// Action constants
const (
	ActionApprove  Action = "approve"
	ActionReject   Action = "reject"
	ActionActivate Action = "activate"
	ActionSuspend  Action = "suspend"
	ActionBan      Action = "ban"
	ActionDelete   Action = "delete"
)

// ValidAction reports whether a is a known admin action
func ValidAction(a Action) bool {
	switch a {
	case ActionApprove, ActionReject, ActionActivate, ActionSuspend, ActionBan, ActionDelete:
		return true
	}
	return false
}

// Target returns the status an action moves a user to. Reject has no
// target status: a rejected account stays pending and only the audit
// trail records the decision.
func (a Action) Target() (Status, bool) {
	switch a {
	case ActionApprove, ActionActivate:
		return StatusActive, true
	case ActionSuspend:
		return StatusSuspended, true
	case ActionBan:
		return StatusBanned, true
	case ActionDelete:
		return StatusDeleted, true
	}
	return "", false
}
