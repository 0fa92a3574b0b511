package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakhaven/prepschool/internal/app/models/dto"
	"github.com/oakhaven/prepschool/internal/pkg/apperrors"
)

func newTestContactService() (*ContactService, *fakeContactStore) {
	store := newFakeContactStore()
	return NewContactService(store, &fakeEmail{}), store
}

func TestCreateContactMessage(t *testing.T) {
	svc, _ := newTestContactService()

	msg, err := svc.Create(context.Background(), &dto.CreateContactRequest{
		Name:    "Jordan Lee",
		Email:   "Jordan@Example.com",
		Subject: "Open day",
		Message: "When is the next open day?",
	})
	require.NoError(t, err)

	assert.NotZero(t, msg.ID)
	assert.False(t, msg.Responded)
	assert.False(t, msg.SubmittedAt.IsZero())
	assert.Equal(t, "jordan@example.com", msg.Email)
}

func TestMarkRespondedIsIdempotent(t *testing.T) {
	svc, _ := newTestContactService()

	msg, err := svc.Create(context.Background(), &dto.CreateContactRequest{
		Name:    "Jordan Lee",
		Email:   "jordan@example.com",
		Subject: "Fees",
		Message: "What are the annual fees?",
	})
	require.NoError(t, err)

	first, err := svc.MarkResponded(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.True(t, first.Responded)

	second, err := svc.MarkResponded(context.Background(), msg.ID)
	require.NoError(t, err)
	assert.True(t, second.Responded)
}

func TestMarkRespondedMissingMessage(t *testing.T) {
	svc, _ := newTestContactService()

	_, err := svc.MarkResponded(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrContactNotFound)
}
