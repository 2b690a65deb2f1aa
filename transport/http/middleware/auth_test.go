package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"fixpoint/config"
	"fixpoint/infras/jwt"
	jwtMocks "fixpoint/infras/jwt/mocks"
	"fixpoint/infras/otel/mocks"
	"fixpoint/transport/http/middleware"
)

func newAuthRequest() *http.Request {
	request := httptest.NewRequest(http.MethodGet, "/v1/coupons", nil)
	request.Header.Set("Authorization", "Bearer some-token")

	rctx := chi.NewRouteContext()
	rctx.Routes = chi.NewRouter()

	return request.WithContext(context.WithValue(request.Context(), chi.RouteCtxKey, rctx))
}

func TestAuthMiddleware_EmptyClaims(t *testing.T) {
	tests := []struct {
		name   string
		claims *jwt.Claims
	}{
		{
			name:   "empty user id",
			claims: &jwt.Claims{Email: "admin@example.com"},
		},
		{
			name:   "empty email",
			claims: &jwt.Claims{UserID: "user-id"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockJWT := jwtMocks.NewMockJWT(ctrl)
			mockJWT.EXPECT().
				ValidateToken("some-token", jwt.AccessToken).
				Return(test.claims, nil)

			m := middleware.NewAuthRoleMiddleware(mockJWT, mocks.NewOtel(), nil, &config.Config{})

			nextCalled := false
			handler := m.Auth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				nextCalled = true
			}))

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, newAuthRequest())

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.False(t, nextCalled)
		})
	}
}

func TestAuthMiddleware_ValidClaims(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockJWT := jwtMocks.NewMockJWT(ctrl)
	mockJWT.EXPECT().
		ValidateToken("some-token", jwt.AccessToken).
		Return(&jwt.Claims{UserID: "user-id", Email: "admin@example.com", Role: "admin"}, nil)

	m := middleware.NewAuthRoleMiddleware(mockJWT, mocks.NewOtel(), nil, &config.Config{})

	nextCalled := false
	handler := m.Auth(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		nextCalled = true
		writer.WriteHeader(http.StatusOK)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, newAuthRequest())

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, nextCalled)
}
