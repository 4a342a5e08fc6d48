package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"papertrade/internal/domain"
)

// recordingApplier captures the IDs it was asked to apply, in call order,
// and fails the IDs listed in failWith.
type recordingApplier struct {
	applied  []uuid.UUID
	failWith map[uuid.UUID]error
}

func (a *recordingApplier) Apply(ctx context.Context, actorID, userID uuid.UUID, action domain.Action) error {
	a.applied = append(a.applied, userID)
	if err, ok := a.failWith[userID]; ok {
		return err
	}
	return nil
}

func TestBulkRun_AppliesSequentiallyInOrder(t *testing.T) {
	applier := &recordingApplier{}
	svc := NewBulkService(applier)

	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}

	result, err := svc.Run(context.Background(), uuid.New(), ids, domain.ActionSuspend)

	assert.NoError(t, err)
	assert.Equal(t, ids, applier.applied)
	assert.Equal(t, 4, result.Processed)
	assert.Equal(t, 4, result.Succeeded)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.Failures)
}

func TestBulkRun_FailuresDoNotHaltRemainingItems(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	applier := &recordingApplier{
		failWith: map[uuid.UUID]error{
			ids[1]: errors.New("transition not allowed"),
		},
	}
	svc := NewBulkService(applier)

	result, err := svc.Run(context.Background(), uuid.New(), ids, domain.ActionBan)

	assert.NoError(t, err)
	assert.Equal(t, ids, applier.applied)
	assert.Equal(t, 3, result.Processed)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Len(t, result.Failures, 1)
	assert.Equal(t, ids[1], result.Failures[0].ID)
	assert.Equal(t, "transition not allowed", result.Failures[0].Error)
}

func TestBulkRun_EmptySelectionFails(t *testing.T) {
	svc := NewBulkService(&recordingApplier{})

	_, err := svc.Run(context.Background(), uuid.New(), nil, domain.ActionSuspend)

	assert.ErrorIs(t, err, domain.ErrInvalidAction)
}

func TestBulkRun_UnknownActionFails(t *testing.T) {
	applier := &recordingApplier{}
	svc := NewBulkService(applier)

	_, err := svc.Run(context.Background(), uuid.New(), []uuid.UUID{uuid.New()}, domain.Action("promote"))

	assert.ErrorIs(t, err, domain.ErrInvalidAction)
	assert.Empty(t, applier.applied)
}
