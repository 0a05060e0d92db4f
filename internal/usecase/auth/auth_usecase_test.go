package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/venuedate/venuedate-backend/internal/domain"
	"github.com/venuedate/venuedate-backend/internal/repository/memory"
	"github.com/venuedate/venuedate-backend/internal/usecase/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func setup(t *testing.T) (*auth.AuthUseCase, *memory.UserRepository) {
	t.Helper()
	swipes := memory.NewSwipeRepository()
	blocks := memory.NewBlockRepository()
	users := memory.NewUserRepository(swipes, blocks)
	return auth.NewAuthUseCase(users, testSecret, 7*24*time.Hour), users
}

func validRegister() *auth.RegisterRequest {
	return &auth.RegisterRequest{
		Name:            "Alice",
		Email:           "alice@example.com",
		Password:        "s3cretpass",
		ConfirmPassword: "s3cretpass",
		DateOfBirth:     "1995-06-01",
		Gender:          "female",
		Hobbies:         []string{"Music"},
	}
}

func TestRegister(t *testing.T) {
	uc, _ := setup(t)

	resp, err := uc.Register(context.Background(), validRegister())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Alice", resp.User.Name)
	assert.Equal(t, domain.StatusActive, resp.User.Status)
	assert.Equal(t, domain.RoleUser, resp.User.Role)
	assert.Equal(t, domain.InterestedInEveryone, resp.User.InterestedIn, "defaults to everyone")
	assert.NotEqual(t, "s3cretpass", resp.User.Password, "password stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(resp.User.Password), []byte("s3cretpass")))

	token, err := jwt.Parse(resp.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, float64(resp.User.ID), claims["user_id"])
	assert.Equal(t, domain.RoleUser, claims["role"])
}

func TestRegisterUnderage(t *testing.T) {
	uc, _ := setup(t)

	req := validRegister()
	req.DateOfBirth = time.Now().AddDate(-17, 0, 0).Format("2006-01-02")
	_, err := uc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrUnderage)
}

func TestRegisterPasswordMismatch(t *testing.T) {
	uc, _ := setup(t)

	req := validRegister()
	req.ConfirmPassword = "different"
	_, err := uc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrPasswordMismatch)
}

func TestRegisterBadDateFormat(t *testing.T) {
	uc, _ := setup(t)

	req := validRegister()
	req.DateOfBirth = "06/01/1995"
	_, err := uc.Register(context.Background(), req)
	var verr domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, validRegister())
	require.NoError(t, err)
	_, err = uc.Register(ctx, validRegister())
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	_, err := uc.Register(ctx, validRegister())
	require.NoError(t, err)

	resp, err := uc.Login(ctx, &auth.LoginRequest{Email: "alice@example.com", Password: "s3cretpass"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), resp.ExpiresAt, 5*time.Second)
}

func TestLoginBadCredentials(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	_, err := uc.Register(ctx, validRegister())
	require.NoError(t, err)

	_, err = uc.Login(ctx, &auth.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Unknown email reads the same as a wrong password.
	_, err = uc.Login(ctx, &auth.LoginRequest{Email: "nobody@example.com", Password: "s3cretpass"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginBlockedStatuses(t *testing.T) {
	uc, users := setup(t)
	ctx := context.Background()
	reg, err := uc.Register(ctx, validRegister())
	require.NoError(t, err)

	require.NoError(t, users.UpdateStatus(ctx, reg.User.ID, domain.StatusBanned))
	_, err = uc.Login(ctx, &auth.LoginRequest{Email: "alice@example.com", Password: "s3cretpass"})
	assert.ErrorIs(t, err, domain.ErrAccountBanned)

	require.NoError(t, users.UpdateStatus(ctx, reg.User.ID, domain.StatusSuspended))
	_, err = uc.Login(ctx, &auth.LoginRequest{Email: "alice@example.com", Password: "s3cretpass"})
	assert.ErrorIs(t, err, domain.ErrAccountSuspended)
}
