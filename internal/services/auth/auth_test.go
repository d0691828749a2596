package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easyparkpay/easypark/internal/kvstore"
	"github.com/easyparkpay/easypark/internal/models"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestLogin_TableTests(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "success",
			email:    "a@b.com",
			password: "pw",
		},
		{
			name:     "empty email fails",
			email:    "",
			password: "x",
			wantErr:  ErrMissingFields,
		},
		{
			name:     "empty password fails",
			email:    "a@b.com",
			password: "",
			wantErr:  ErrMissingFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := kvstore.NewMemory()
			svc := NewAuthService(ctx, store, newNoopLogger())

			user, err := svc.Login(ctx, tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.False(t, svc.IsAuthenticated())

				var record models.User
				found, gerr := store.Get(ctx, kvstore.KeyUser, &record)
				require.NoError(t, gerr)
				assert.False(t, found, "no session must be persisted")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.email, user.Email)
			assert.True(t, svc.IsAuthenticated())

			var record models.User
			found, gerr := store.Get(ctx, kvstore.KeyUser, &record)
			require.NoError(t, gerr)
			require.True(t, found)
			assert.Equal(t, tt.email, record.Email)
		})
	}
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	svc := NewAuthService(ctx, store, newNoopLogger())

	user, err := svc.Signup(ctx, "Ravi", "ravi@x.com", "9000000001", "TS 09 XY 0001", "secret")
	require.NoError(t, err)
	assert.Equal(t, "Ravi", user.Name)
	assert.Equal(t, "ravi@x.com", user.Email)
	assert.True(t, svc.IsAuthenticated())

	// Любое пустое поле — отказ без изменения состояния.
	_, err = NewAuthService(ctx, kvstore.NewMemory(), newNoopLogger()).
		Signup(ctx, "Ravi", "ravi@x.com", "", "TS 09 XY 0001", "secret")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	svc := NewAuthService(ctx, store, newNoopLogger())

	_, err := svc.Login(ctx, "a@b.com", "pw")
	require.NoError(t, err)

	svc.Logout(ctx)
	assert.False(t, svc.IsAuthenticated())
	assert.Nil(t, svc.CurrentUser())

	var record models.User
	found, err := store.Get(ctx, kvstore.KeyUser, &record)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSessionRestore(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()

	first := NewAuthService(ctx, store, newNoopLogger())
	_, err := first.Login(ctx, "a@b.com", "pw")
	require.NoError(t, err)

	// Новый экземпляр поверх того же хранилища видит сессию сразу.
	second := NewAuthService(ctx, store, newNoopLogger())
	assert.True(t, second.IsAuthenticated())
	assert.Equal(t, "a@b.com", second.CurrentUser().Email)
}

func TestOnChange_Notifications(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(ctx, kvstore.NewMemory(), newNoopLogger())

	var transitions []bool
	svc.OnChange(func(authenticated bool) {
		transitions = append(transitions, authenticated)
	})

	_, err := svc.Login(ctx, "a@b.com", "pw")
	require.NoError(t, err)
	svc.Logout(ctx)

	assert.Equal(t, []bool{true, false}, transitions)
}
