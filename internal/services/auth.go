package services

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/diewo77/dashboard-app/internal/models"
)

// CredentialsSignin is the one failure code the login form knows how to
// render inline. Any other failure is fatal to the caller.
const CredentialsSignin = "CredentialsSignin"

// ErrCredentialsSignin is returned by the credential check for a wrong email
// or password.
var ErrCredentialsSignin = errors.New(CredentialsSignin)

// AuthService verifies submitted credentials against the users table.
type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

// signIn looks the user up by email and compares the bcrypt hash. An unknown
// email and a wrong password are indistinguishable to the caller;
// infrastructure errors pass through unchanged.
func (s *AuthService) signIn(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCredentialsSignin
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrCredentialsSignin
	}
	return &user, nil
}

// Authenticate forwards the login form to the credential check and folds the
// outcome into an explicit result: the recognized failure comes back as
// code == CredentialsSignin so the form can show an inline message, anything
// else comes back as err for the caller to propagate, and success returns
// the signed-in user.
func (s *AuthService) Authenticate(ctx context.Context, form url.Values) (*models.User, string, error) {
	user, err := s.signIn(ctx, form.Get("email"), form.Get("password"))
	if err == nil {
		return user, "", nil
	}
	if strings.Contains(err.Error(), CredentialsSignin) {
		return nil, CredentialsSignin, nil
	}
	return nil, "", err
}
