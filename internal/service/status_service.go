package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"papertrade/internal/domain"
)

// StatusService enforces the legal status transitions for user accounts.
// Every applied action writes one audit log entry.
type StatusService struct {
	userRepo  domain.UserRepository
	auditRepo domain.AuditLogRepository
	notifier  domain.Notifier
}

// NewStatusService creates a new StatusService
func NewStatusService(userRepo domain.UserRepository, auditRepo domain.AuditLogRepository, notifier domain.Notifier) *StatusService {
	return &StatusService{
		userRepo:  userRepo,
		auditRepo: auditRepo,
		notifier:  notifier,
	}
}

// Approve resolves a pending registration. approve=true moves the account
// pending -> active; approve=false leaves it pending and only records the
// rejection in the audit trail.
func (s *StatusService) Approve(ctx context.Context, actorID, userID uuid.UUID, approve bool) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.Status != domain.StatusPending {
		return fmt.Errorf("%w: user is %s, not pending", domain.ErrInvalidTransition, user.Status)
	}

	if approve {
		if err := s.userRepo.UpdateStatus(ctx, userID, domain.StatusActive, true); err != nil {
			return err
		}
		s.audit(ctx, actorID, domain.ActionApprove, userID, "status: pending -> active")
		s.notify(ctx, fmt.Sprintf("User %s approved by admin", user.Username))
		return nil
	}

	// Rejected accounts stay pending; the audit trail is the record.
	s.audit(ctx, actorID, domain.ActionReject, userID, "registration rejected, status stays pending")
	return nil
}

// Apply runs one admin action against one user via the state machine.
// approve/reject route through Approve; the rest resolve to a target
// status and must pass the transition table.
func (s *StatusService) Apply(ctx context.Context, actorID, userID uuid.UUID, action domain.Action) error {
	switch action {
	case domain.ActionApprove:
		return s.Approve(ctx, actorID, userID, true)
	case domain.ActionReject:
		return s.Approve(ctx, actorID, userID, false)
	}

	target, ok := action.Target()
	if !ok {
		return domain.ErrInvalidAction
	}

	return s.SetStatus(ctx, actorID, userID, target, action)
}

// SetStatus moves a user to the target status if the transition is legal.
// Admin accounts never leave active status through this path.
func (s *StatusService) SetStatus(ctx context.Context, actorID, userID uuid.UUID, target domain.Status, action domain.Action) error {
	if !domain.ValidStatus(target) {
		return domain.ErrInvalidStatus
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.Role == domain.RoleAdmin && target != domain.StatusActive {
		return domain.ErrAdminImmutable
	}

	if user.Status == target {
		return nil
	}

	if !domain.CanTransition(user.Status, target) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, user.Status, target)
	}

	// Approval survives suspension; a banned or deleted account keeps its
	// flag too since the status alone blocks login.
	approved := user.Approved
	if target == domain.StatusActive {
		approved = true
	}

	if err := s.userRepo.UpdateStatus(ctx, userID, target, approved); err != nil {
		return err
	}

	s.audit(ctx, actorID, action, userID, fmt.Sprintf("status: %s -> %s", user.Status, target))
	return nil
}

func (s *StatusService) audit(ctx context.Context, actorID uuid.UUID, action domain.Action, targetID uuid.UUID, detail string) {
	entry := &domain.AuditLog{
		ID:        uuid.New(),
		ActorID:   actorID,
		Action:    action,
		TargetID:  &targetID,
		Detail:    detail,
		CreatedAt: time.Now(),
	}
	if err := s.auditRepo.Save(ctx, entry); err != nil {
		log.Printf("WARNING: Failed to write audit log for %s: %v", action, err)
	}
}

func (s *StatusService) notify(ctx context.Context, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, message); err != nil {
		log.Printf("WARNING: Failed to send admin notification: %v", err)
	}
}
