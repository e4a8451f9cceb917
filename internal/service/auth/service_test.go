package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/doctor-api/internal/model"
	"github.com/jwalitptl/doctor-api/internal/repository"
	"github.com/jwalitptl/doctor-api/pkg/auth"
	apperrors "github.com/jwalitptl/doctor-api/pkg/errors"
	"github.com/jwalitptl/doctor-api/pkg/metrics"
	"github.com/jwalitptl/doctor-api/pkg/security"
)

type fakeUsers struct {
	users map[string]*model.User
	err   error
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func newTestService(t *testing.T) (*Service, auth.JWTService, *metrics.Metrics) {
	t.Helper()
	checker := security.NewBcryptChecker(4)
	hash, err := checker.Hash("s3cret!")
	require.NoError(t, err)

	users := &fakeUsers{users: map[string]*model.User{
		"doc@example.com": {
			ID:           uuid.New(),
			Name:         "Dr. House",
			Email:        "doc@example.com",
			Role:         "doctor",
			PasswordHash: hash,
		},
	}}
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	m := metrics.New("test")
	return NewService(users, checker, jwtSvc, m), jwtSvc, m
}

func requireUnauthorized(t *testing.T, err error, message string) {
	t.Helper()
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusUnauthorized, appErr.StatusCode())
	assert.Equal(t, message, appErr.Message)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, jwtSvc, m := newTestService(t)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{Email: "Doc@Example.com", Password: "s3cret!"})
	require.NoError(t, err)
	assert.Equal(t, "Dr. House", resp.User.Name)

	claims, err := jwtSvc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID.String(), claims.Subject)
	assert.Equal(t, "doctor", claims.Role)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues("success")))
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, m := newTestService(t)

	_, err := svc.Login(context.Background(), &model.LoginRequest{Email: "doc@example.com", Password: "nope"})
	requireUnauthorized(t, err, "invalid credentials")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues("failure")))
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(), &model.LoginRequest{Email: "ghost@example.com", Password: "x"})
	requireUnauthorized(t, err, "invalid credentials")
}

func TestLoginLocksAfterRepeatedFailures(t *testing.T) {
	svc, _, m := newTestService(t)
	ctx := context.Background()

	for i := 0; i < maxLoginAttempts; i++ {
		_, err := svc.Login(ctx, &model.LoginRequest{Email: "doc@example.com", Password: "wrong"})
		requireUnauthorized(t, err, "invalid credentials")
	}

	_, err := svc.Login(ctx, &model.LoginRequest{Email: "doc@example.com", Password: "s3cret!"})
	requireUnauthorized(t, err, ErrAccountLocked.Error())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues("locked")))
}

func TestSuccessfulLoginResetsFailures(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < maxLoginAttempts-1; i++ {
		_, _ = svc.Login(ctx, &model.LoginRequest{Email: "doc@example.com", Password: "wrong"})
	}
	_, err := svc.Login(ctx, &model.LoginRequest{Email: "doc@example.com", Password: "s3cret!"})
	require.NoError(t, err)
	assert.Zero(t, svc.failures("doc@example.com"))
}

func TestLoginRepositoryErrorIsServerError(t *testing.T) {
	svc := NewService(&fakeUsers{err: errors.New("db down")}, security.NewBcryptChecker(4), auth.NewJWTService("k", time.Hour), nil)

	_, err := svc.Login(context.Background(), &model.LoginRequest{Email: "doc@example.com", Password: "x"})
	require.Error(t, err)
	var appErr *apperrors.AppError
	assert.False(t, errors.As(err, &appErr))
}
