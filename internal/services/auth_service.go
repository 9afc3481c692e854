package services

import (
	"errors"
	"time"

	"spbu-service/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCredentials = errors.New("email atau password salah")

type AuthService struct {
	DB        *gorm.DB
	JWTSecret []byte
}

func NewAuthService(db *gorm.DB, secret []byte) *AuthService {
	return &AuthService{DB: db, JWTSecret: secret}
}

// Authenticate verifies a credential pair. Failures collapse into one
// generic error so the response does not leak which part was wrong.
func (s *AuthService) Authenticate(email, password string) (models.User, error) {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken signs a 24h session token carrying the user's id, email and role.
func (s *AuthService) IssueToken(user models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(s.JWTSecret)
}

// GetRole resolves the caller's role from the users table. Restricted routes
// use this instead of trusting the token claim; any lookup failure reads as
// an unknown role and is denied upstream, with no retry.
func (s *AuthService) GetRole(userID string) (string, error) {
	var user models.User
	if err := s.DB.Select("role").Where("id = ?", userID).First(&user).Error; err != nil {
		return "", err
	}
	return user.Role, nil
}
