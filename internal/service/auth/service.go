package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/doctor-api/internal/model"
	"github.com/jwalitptl/doctor-api/internal/repository"
	"github.com/jwalitptl/doctor-api/pkg/auth"
	apperrors "github.com/jwalitptl/doctor-api/pkg/errors"
	"github.com/jwalitptl/doctor-api/pkg/metrics"
	"github.com/jwalitptl/doctor-api/pkg/security"
)

const (
	maxLoginAttempts = 5
	lockoutDuration  = 15 * time.Minute
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("too many failed attempts, try again later")
)

type Service struct {
	userRepo  repository.UserRepository
	passwords security.PasswordChecker
	jwtSvc    auth.JWTService
	attempts  *cache.Cache
	metrics   *metrics.Metrics
}

func NewService(userRepo repository.UserRepository, passwords security.PasswordChecker, jwtSvc auth.JWTService, m *metrics.Metrics) *Service {
	return &Service{
		userRepo:  userRepo,
		passwords: passwords,
		jwtSvc:    jwtSvc,
		attempts:  cache.New(lockoutDuration, 2*lockoutDuration),
		metrics:   m,
	}
}

// Login checks the password and issues an access token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	key := strings.ToLower(strings.TrimSpace(req.Email))

	if s.failures(key) >= maxLoginAttempts {
		s.count("locked")
		return nil, apperrors.Unauthorized(ErrAccountLocked.Error(), ErrAccountLocked)
	}

	user, err := s.userRepo.GetByEmail(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, s.reject(key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, req.Password); err != nil {
		return nil, s.reject(key)
	}

	token, err := s.jwtSvc.GenerateAccessToken(auth.Subject{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.attempts.Delete(key)
	s.count("success")
	log.Info().Str("user_id", user.ID.String()).Msg("user logged in")

	return &model.LoginResponse{Token: token, User: user}, nil
}

func (s *Service) failures(key string) int {
	v, ok := s.attempts.Get(key)
	if !ok {
		return 0
	}
	n, _ := v.(int)
	return n
}

func (s *Service) reject(key string) error {
	if _, err := s.attempts.IncrementInt(key, 1); err != nil {
		s.attempts.Set(key, 1, cache.DefaultExpiration)
	}
	s.count("failure")
	return apperrors.Unauthorized(ErrInvalidCredentials.Error(), ErrInvalidCredentials)
}

func (s *Service) count(result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.LoginAttempts.WithLabelValues(result).Inc()
}
