package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/partyplanner/backend/internal/apperrors"
	"github.com/partyplanner/backend/internal/config"
	"github.com/partyplanner/backend/internal/dto"
	"github.com/partyplanner/backend/internal/metrics"
	"github.com/partyplanner/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLength = 8

var (
	ErrEmailTaken         = apperrors.New(apperrors.ErrConflict, "email already registered")
	ErrInvalidCredentials = apperrors.New(apperrors.ErrValidation, "invalid email or password")
	ErrInvalidToken       = apperrors.New(apperrors.ErrUnauthenticated, "unauthenticated")
	ErrUserNotFound       = apperrors.New(apperrors.ErrNotFound, "user not found")
	ErrWrongPassword      = apperrors.New(apperrors.ErrValidation, "incorrect password")
	ErrPasswordRequired   = apperrors.New(apperrors.ErrValidation, "password is required")
)

// AccountCascade removes data owned by a user inside the account deletion
// transaction.
type AccountCascade func(tx *gorm.DB, userID uuid.UUID) error

type AuthService struct {
	db          *gorm.DB
	cost        int
	adminEmails []string
	cascades    []AccountCascade

	dummyOnce sync.Once
	dummyHash []byte
}

func NewAuthService(db *gorm.DB, cfg *config.Config, cascades ...AccountCascade) *AuthService {
	return &AuthService{
		db:          db,
		cost:        cfg.BcryptCost,
		adminEmails: cfg.AdminEmailList(),
		cascades:    cascades,
	}
}

func (s *AuthService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.AuthResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	var existing models.User
	err = s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Store(err)
	}

	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}

	token, err := newAccessToken()
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:          uuid.New(),
		Email:       email,
		Password:    string(hash),
		AccessToken: token,
		Role:        models.RoleUser,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, apperrors.Store(fmt.Errorf("failed to create user: %w", err))
	}

	metrics.SignUps.Inc()
	return authResponse(&user), nil
}

// SignIn returns the token minted at sign-up. Unknown emails and wrong
// passwords fail identically and take comparable time.
func (s *AuthService) SignIn(ctx context.Context, req *dto.SignInRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(req.Password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, apperrors.Store(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return authResponse(&user), nil
}

// Authenticate maps a bearer token to its user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("access_token = ?", token).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return &user, nil
}

// IsAdmin reports whether the user has the admin role or is listed in
// ADMIN_EMAILS.
func (s *AuthService) IsAdmin(user *models.User) bool {
	if user.IsAdmin() {
		return true
	}
	for _, email := range s.adminEmails {
		if email == user.Email {
			return true
		}
	}
	return false
}

func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	if current == "" {
		return ErrPasswordRequired
	}
	if err := validatePassword(next); err != nil {
		return err
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return ErrWrongPassword
	}

	hash, err := s.hash(next)
	if err != nil {
		return err
	}

	if err := s.db.WithContext(ctx).Model(user).Update("password", string(hash)).Error; err != nil {
		return apperrors.Store(err)
	}
	return nil
}

// DeleteAccount removes the user and everything registered cascades own.
// confirm requires the account password; admins deleting another account
// skip it.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uuid.UUID, password string, confirm bool) error {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return err
	}

	if confirm {
		if password == "" {
			return ErrPasswordRequired
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
			return ErrWrongPassword
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, cascade := range s.cascades {
			if err := cascade(tx, userID); err != nil {
				return err
			}
		}
		return tx.Delete(user).Error
	})
	if err != nil {
		return apperrors.Store(err)
	}
	return nil
}

func (s *AuthService) findUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, apperrors.Store(err)
	}
	return &user, nil
}

func (s *AuthService) hash(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, apperrors.Validation("password must be at most 72 bytes")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
	})
	return s.dummyHash
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", apperrors.Validation("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", apperrors.Validation("email is invalid")
	}
	return email, nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperrors.Validation("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

func authResponse(user *models.User) *dto.AuthResponse {
	return &dto.AuthResponse{
		UserID:      user.ID,
		Email:       user.Email,
		AccessToken: user.AccessToken,
	}
}
