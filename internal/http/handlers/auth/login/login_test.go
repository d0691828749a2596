package login_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/easyparkpay/easypark/internal/http/handlers/auth/login"
	"github.com/easyparkpay/easypark/internal/models"
	services "github.com/easyparkpay/easypark/internal/services/auth"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Login(ctx context.Context, email, pass string) (*models.User, error) {
	args := m.Called(ctx, email, pass)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type MakerMock struct {
	mock.Mock
}

func (m *MakerMock) GenerateToken(email, userUID string) (string, error) {
	args := m.Called(email, userUID)
	return args.String(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockUser       *models.User
		mockErr        error
		skipService    bool
		wantStatusCode int
		wantInBody     string
	}{
		{
			name:           "invalid json",
			body:           "{not json",
			skipService:    true,
			wantStatusCode: http.StatusBadRequest,
			wantInBody:     "invalid request body",
		},
		{
			name:           "missing password",
			body:           `{"email":"a@b.com"}`,
			skipService:    true,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantInBody:     "Password is a required field",
		},
		{
			name:           "service rejects empty fields",
			body:           `{"email":" ","password":" "}`,
			mockErr:        services.ErrMissingFields,
			wantStatusCode: http.StatusBadRequest,
			wantInBody:     "all fields are required",
		},
		{
			name:           "success",
			body:           `{"email":"a@b.com","password":"pw"}`,
			mockUser:       &models.User{ID: "uid-1", Name: "User", Email: "a@b.com"},
			wantStatusCode: http.StatusOK,
			wantInBody:     `"token"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(ServiceMock)
			makerMock := new(MakerMock)
			if !tt.skipService {
				serviceMock.On("Login", mock.Anything, mock.Anything, mock.Anything).
					Return(tt.mockUser, tt.mockErr).Once()
			}
			if tt.mockUser != nil {
				makerMock.On("GenerateToken", tt.mockUser.Email, tt.mockUser.ID).
					Return("session-token", nil).Once()
			}

			handler := login.New(newNoopLogger(), serviceMock, makerMock)

			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantInBody)
			serviceMock.AssertExpectations(t)
			makerMock.AssertExpectations(t)
		})
	}
}

func TestLoginHandler_ResponseShape(t *testing.T) {
	serviceMock := new(ServiceMock)
	serviceMock.On("Login", mock.Anything, "a@b.com", "pw").
		Return(&models.User{ID: "uid-1", Email: "a@b.com"}, nil).Once()
	makerMock := new(MakerMock)
	makerMock.On("GenerateToken", "a@b.com", "uid-1").Return("session-token", nil).Once()

	handler := login.New(newNoopLogger(), serviceMock, makerMock)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(`{"email":"a@b.com","password":"pw"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "OK", resp.Status)
	assert.Equal(t, "session-token", resp.Data.Token)
	assert.Equal(t, "a@b.com", resp.Data.User.Email)
}
