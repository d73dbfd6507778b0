package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"omr-bot/internal/domain/entity"
	"omr-bot/internal/domain/port"
	"omr-bot/internal/infrastructure/storage"
)

func TestUserService_BeginScanAndCancel(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.BeginScan(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingSheet, user.State)

	user, err = svc.Cancel(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, user.State)
}

func TestUserService_SetState(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	user, err := svc.SetState(ctx, 2, 20, entity.StateProcessing)
	require.NoError(t, err)
	require.Equal(t, entity.StateProcessing, user.State)
}

// copyRepository хранит копии пользователей, изменения видны только после Save.
type copyRepository struct {
	users map[int64]entity.User
	saves int
}

var _ port.UserRepository = (*copyRepository)(nil)

func (r *copyRepository) Get(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	u, ok := r.users[userID]
	if !ok {
		u = *entity.NewUser(userID, chatID)
		r.users[userID] = u
	}
	return &u, nil
}

func (r *copyRepository) Save(ctx context.Context, user *entity.User) error {
	r.saves++
	r.users[user.ID] = *user
	return nil
}

func (r *copyRepository) SaveResult(ctx context.Context, userID int64, result *entity.DecodeResult) error {
	u := r.users[userID]
	u.Remember(result)
	r.users[userID] = u
	return nil
}

func TestUserService_SetStatePersists(t *testing.T) {
	repo := &copyRepository{users: map[int64]entity.User{}}
	svc := NewUserService(repo)
	ctx := context.Background()

	_, err := svc.BeginScan(ctx, 4, 40)
	require.NoError(t, err)
	require.Equal(t, 1, repo.saves)

	user, err := svc.Get(ctx, 4, 40)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingSheet, user.State)
}

func TestUserService_LastResult(t *testing.T) {
	repo := storage.NewMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	last, err := svc.LastResult(ctx, 3, 30)
	require.NoError(t, err)
	require.Nil(t, last)

	id := entity.DecodedField("123456")
	require.NoError(t, svc.SaveResult(ctx, 3, &entity.DecodeResult{StudentID: &id}))

	last, err = svc.LastResult(ctx, 3, 30)
	require.NoError(t, err)
	require.Equal(t, entity.DecodedField("123456"), *last.StudentID)
}
