package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hana/diary-share/internal/config"
	"github.com/hana/diary-share/internal/domain"
	"github.com/hana/diary-share/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials      = errors.New("incorrect username or password")
	ErrUsernameExists          = errors.New("username already registered")
	ErrEmailExists             = errors.New("email already registered")
	ErrUserNotFound            = errors.New("user not found")
	ErrInvalidToken            = errors.New("invalid token")
	ErrCurrentPasswordMissing  = errors.New("current password is required to change password")
	ErrCurrentPasswordMismatch = errors.New("current password is incorrect")
)

type AuthService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Nickname string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type AuthResult struct {
	User        *domain.User
	AccessToken string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	// Check uniqueness before inserting
	existing, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err == nil && existing != nil {
		return nil, ErrUsernameExists
	}
	existing, err = s.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	nickname := input.Nickname
	if nickname == "" {
		nickname = input.Username
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		Nickname:     nickname,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, AccessToken: token}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, AccessToken: token}, nil
}

// IssueToken signs a bearer token carrying the username as subject.
// Tokens are stateless: there is no revocation, they live until expiry.
func (s *AuthService) IssueToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.Username,
		"exp": now.Add(time.Duration(s.cfg.TokenTTLMinutes) * time.Minute).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateToken verifies signature and expiry and returns the subject.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	username, ok := claims["sub"].(string)
	if !ok || username == "" {
		return "", ErrInvalidToken
	}
	return username, nil
}

// ResolveUser turns a bearer token into the live user row it names.
// Any failure along the way yields ErrInvalidToken, never partial trust.
func (s *AuthService) ResolveUser(ctx context.Context, tokenString string) (*domain.User, error) {
	username, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

type UpdateProfileInput struct {
	Nickname        *string
	Email           *string
	CurrentPassword *string
	NewPassword     *string
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	changed := false

	if input.Nickname != nil {
		user.Nickname = *input.Nickname
		changed = true
	}

	if input.Email != nil {
		existing, err := s.userRepo.GetByEmail(ctx, *input.Email)
		if err == nil && existing != nil && existing.ID != userID {
			return nil, ErrEmailExists
		}
		user.Email = *input.Email
		changed = true
	}

	if input.NewPassword != nil {
		if input.CurrentPassword == nil || *input.CurrentPassword == "" {
			return nil, ErrCurrentPasswordMissing
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(*input.CurrentPassword)); err != nil {
			return nil, ErrCurrentPasswordMismatch
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashed)
		changed = true
	}

	if changed {
		user.UpdatedAt = time.Now()
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	return user, nil
}

// SetProfileImage records the public path of an uploaded profile image.
func (s *AuthService) SetProfileImage(ctx context.Context, userID uuid.UUID, imagePath string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.ProfileImage = &imagePath
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
