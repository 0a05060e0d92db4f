package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/venuedate/venuedate-backend/internal/domain"
	"github.com/venuedate/venuedate-backend/internal/repository"
)

type AuthUseCase struct {
	userRepo  repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthUseCase(userRepo repository.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthUseCase {
	return &AuthUseCase{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

// RegisterRequest carries a new account's required and optional fields.
type RegisterRequest struct {
	Name         string   `json:"name" binding:"required,min=2,max=100"`
	Email        string   `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8,max=72"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=Password"`

	DateOfBirth  string   `json:"date_of_birth" binding:"required"`
	Gender       string   `json:"gender" binding:"required,oneof=male female other"`
	InterestedIn string   `json:"interested_in" binding:"omitempty,interestedin"`
	Hobbies      []string `json:"hobbies" binding:"omitempty,max=20"`
	Interests    []string `json:"interests" binding:"omitempty,max=20"`
	Bio          string   `json:"bio" binding:"omitempty,max=500"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

// Register creates an Active account and signs the first token. Age is
// enforced server-side regardless of what the client validated.
func (uc *AuthUseCase) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, domain.ValidationError("date_of_birth must be YYYY-MM-DD")
	}
	if domain.AgeAt(dob, time.Now()) < domain.MinAge {
		return nil, domain.ErrUnderage
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	interestedIn := req.InterestedIn
	if interestedIn == "" {
		interestedIn = domain.InterestedInEveryone
	}

	user := &domain.User{
		Name:         req.Name,
		Email:        req.Email,
		Password:     string(hash),
		DateOfBirth:  dob,
		Gender:       req.Gender,
		InterestedIn: interestedIn,
		Hobbies:      req.Hobbies,
		Interests:    req.Interests,
		Bio:          req.Bio,
		Photos:       []string{},
		ShowAge:      true,
		ShowBio:      true,
		Status:       domain.StatusActive,
		Role:         domain.RoleUser,
		LastActiveAt: time.Now(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return uc.issueToken(user)
}

// Login verifies credentials and rejects banned or suspended accounts before
// signing a token.
func (uc *AuthUseCase) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	switch user.Status {
	case domain.StatusBanned:
		return nil, domain.ErrAccountBanned
	case domain.StatusSuspended:
		return nil, domain.ErrAccountSuspended
	}

	if err := uc.userRepo.UpdateLastActive(ctx, user.ID); err != nil {
		return nil, err
	}

	return uc.issueToken(user)
}

func (uc *AuthUseCase) issueToken(user *domain.User) (*AuthResponse, error) {
	expiresAt := time.Now().Add(uc.tokenTTL)
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    user.Role,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(uc.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &AuthResponse{Token: signed, ExpiresAt: expiresAt, User: user}, nil
}
