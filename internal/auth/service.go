package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/Spence115/MockStocks/internal/config"
	"github.com/Spence115/MockStocks/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service handles registration and authentication. Passwords are stored only
// as salted bcrypt hashes.
type Service struct {
	logger       *zap.Logger
	db           *gorm.DB
	cfg          *config.Auth
	startingCash decimal.Decimal
}

// NewService creates a new authentication service. startingCash is the cash
// endowment granted to every new account.
func NewService(logger *zap.Logger, db *gorm.DB, cfg *config.Auth, startingCash decimal.Decimal) *Service {
	return &Service{
		logger:       logger,
		db:           db,
		cfg:          cfg,
		startingCash: startingCash,
	}
}

// Register validates the requested credentials and creates a new account with
// the default cash endowment. Rules are checked in order and the first unmet
// one is reported.
func (s *Service) Register(ctx context.Context, username, password, confirmation string) (*models.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, validationError("must provide username")
	}

	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	if password == "" {
		return nil, validationError("must provide password")
	}
	if confirmation == "" {
		return nil, validationError("must confirm password")
	}
	if password != confirmation {
		return nil, validationError("password does not match password confirmation")
	}
	if err := checkPasswordPolicy(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	account := models.Account{
		Username:     username,
		PasswordHash: string(hash),
		Cash:         s.startingCash,
	}
	if err := s.db.WithContext(ctx).Create(&account).Error; err != nil {
		// Two registrations racing on the same username: the unique index
		// decides, the loser gets the same answer as the pre-check.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}

	s.logger.Info("Account registered",
		zap.Uint("account_id", account.ID),
		zap.String("username", account.Username),
	)
	return &account, nil
}

// Login verifies a username/password pair. Exactly one account row must match
// the username; zero rows or a data-integrity anomaly of several rows both
// present as invalid credentials, as does a wrong password.
func (s *Service) Login(ctx context.Context, username, password string) (*models.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var accounts []models.Account
	if err := s.db.WithContext(ctx).
		Where("username = ?", username).
		Find(&accounts).Error; err != nil {
		return nil, err
	}
	if len(accounts) != 1 {
		return nil, ErrInvalidCredentials
	}

	account := accounts[0]
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("Login succeeded",
		zap.Uint("account_id", account.ID),
		zap.String("username", account.Username),
	)
	return &account, nil
}
