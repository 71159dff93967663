package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Spence115/MockStocks/internal/config"
	"github.com/Spence115/MockStocks/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) (*gorm.DB, *Service) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Account{}))

	cfg := &config.Auth{
		JWTSecret:  "test-secret",
		TokenTTL:   time.Hour,
		BcryptCost: bcrypt.MinCost, // keep hashing fast in tests
	}
	svc := NewService(zap.NewNop(), db, cfg, decimal.RequireFromString("10000.00"))

	return db, svc
}

const validPassword = "ab12cdef!"

func TestRegister_Success(t *testing.T) {
	// Arrange
	db, svc := setupTest(t)

	// Act
	account, err := svc.Register(context.Background(), "alice", validPassword, validPassword)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "alice", account.Username)
	assert.True(t, decimal.RequireFromString("10000.00").Equal(account.Cash))

	// Only the bcrypt hash is stored, never the plaintext.
	var stored models.Account
	require.NoError(t, db.First(&stored, account.ID).Error)
	assert.NotEqual(t, validPassword, stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(validPassword)))
}

func TestRegister_RuleOrder(t *testing.T) {
	_, svc := setupTest(t)
	_, err := svc.Register(context.Background(), "taken", validPassword, validPassword)
	require.NoError(t, err)

	cases := []struct {
		name         string
		username     string
		password     string
		confirmation string
		wantMessage  string
	}{
		{"MissingUsername", "", validPassword, validPassword, "must provide username"},
		{"MissingPassword", "bob", "", "", "must provide password"},
		{"MissingConfirmation", "bob", validPassword, "", "must confirm password"},
		{"ConfirmationMismatch", "bob", validPassword, "other12!x", "password does not match password confirmation"},
		{"TooShort", "bob", "ab1!", "ab1!", "password too short - must be at least 8 characters long"},
		{"TooLong", "bob", "ab12!aaaaaaaaaaaaaaaaaaaaaaaaaa", "ab12!aaaaaaaaaaaaaaaaaaaaaaaaaa", "password too long - must be within 26 characters long"},
		{"NotEnoughLetters", "bob", "a1234567!", "a1234567!", "password must contain at least 2 letters"},
		{"NotEnoughNumbers", "bob", "abcdefg1!", "abcdefg1!", "password must contain at least 2 numbers"},
		{"NoSpecialCharacter", "bob", "abcdef12", "abcdef12", "password must contain at least 1 special character"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.username, tc.password, tc.confirmation)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.wantMessage, validationErr.Reason)
		})
	}

	t.Run("DuplicateUsername", func(t *testing.T) {
		_, err := svc.Register(context.Background(), "taken", validPassword, validPassword)
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})
}

func TestLogin_Success(t *testing.T) {
	// Arrange
	_, svc := setupTest(t)
	registered, err := svc.Register(context.Background(), "alice", validPassword, validPassword)
	require.NoError(t, err)

	// Act
	account, err := svc.Login(context.Background(), "alice", validPassword)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, registered.ID, account.ID)
}

func TestLogin_Failures(t *testing.T) {
	_, svc := setupTest(t)
	_, err := svc.Register(context.Background(), "alice", validPassword, validPassword)
	require.NoError(t, err)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"WrongPassword", "alice", "wrong12!x"},
		{"UnknownUsername", "nobody", validPassword},
		{"MissingUsername", "", validPassword},
		{"MissingPassword", "alice", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.username, tc.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestLogin_DuplicateRowsAnomaly(t *testing.T) {
	// Arrange: several rows sharing one username are a data-integrity
	// anomaly; login must treat them as invalid credentials. The unique
	// index is dropped so the anomaly can be staged.
	db, svc := setupTest(t)
	require.NoError(t, db.Migrator().DropIndex(&models.Account{}, "idx_accounts_username"))

	hash, err := bcrypt.GenerateFromPassword([]byte(validPassword), bcrypt.MinCost)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		require.NoError(t, db.Create(&models.Account{
			Username:     "alice",
			PasswordHash: string(hash),
			Cash:         decimal.Zero,
		}).Error)
	}

	// Act
	_, err = svc.Login(context.Background(), "alice", validPassword)

	// Assert
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	// Arrange
	_, svc := setupTest(t)
	account := &models.Account{Username: "alice"}
	account.ID = 7

	// Act
	token, err := svc.GenerateToken(account)
	require.NoError(t, err)
	id, err := svc.ParseToken(token)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, uint(7), id)
}

func TestParseToken_Invalid(t *testing.T) {
	_, svc := setupTest(t)

	cases := []struct {
		name  string
		token string
	}{
		{"Garbage", "not-a-token"},
		{"Empty", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.ParseToken(tc.token)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}

	t.Run("WrongSecret", func(t *testing.T) {
		other := NewService(zap.NewNop(), nil, &config.Auth{
			JWTSecret: "other-secret",
			TokenTTL:  time.Hour,
		}, decimal.Zero)
		account := &models.Account{Username: "alice"}
		account.ID = 7
		token, err := other.GenerateToken(account)
		require.NoError(t, err)

		_, err = svc.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
