package auth

import (
	"fmt"
	"time"

	"github.com/Spence115/MockStocks/internal/models"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateToken issues a signed session token carrying the account id.
func (s *Service) GenerateToken(account *models.Account) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"accountId": account.ID,
		"username":  account.Username,
		"iat":       now.Unix(),
		"exp":       now.Add(s.cfg.TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ParseToken validates a session token and returns the account id it carries.
func (s *Service) ParseToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidCredentials
	}

	// JWT numeric claims decode as float64.
	id, ok := claims["accountId"].(float64)
	if !ok || id <= 0 {
		return 0, ErrInvalidCredentials
	}
	return uint(id), nil
}
