package services

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/dorazhang07/ladle/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidEmail       = errors.New("invalid email")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
	UpdateByID(userID uint, updates map[string]any) error
}

type AuthTokenRepository interface {
	GetOrCreate(userID uint) (models.Token, error)
	FindByKey(key string) (models.Token, error)
}

type AuthService struct {
	users  AuthUserRepository
	tokens AuthTokenRepository
	policy PasswordPolicy
}

func NewAuthService(users AuthUserRepository, tokens AuthTokenRepository, policy PasswordPolicy) *AuthService {
	return &AuthService{users: users, tokens: tokens, policy: policy}
}

// NormalizeEmail trims and lowercases; the normalized form is what gets
// stored and what the uniqueness check runs against.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

func (service *AuthService) Register(input RegisterInput) (models.User, error) {
	email := NormalizeEmail(input.Email)
	if email == "" || len(email) > models.MaxEmailLength {
		return models.User{}, ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return models.User{}, ErrInvalidEmail
	}
	if err := service.policy.Validate(input.Password); err != nil {
		return models.User{}, err
	}

	taken, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, err
	}
	if taken {
		return models.User{}, ErrEmailTaken
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		IsActive:     true,
	}
	if err := service.users.Create(&user); err != nil {
		// The unique index backstops races between the exists check and the
		// insert.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, err
	}
	return user, nil
}

// RegisterSuperuser creates a staff account with full privileges. Used by
// the createsuperuser CLI, never exposed over HTTP.
func (service *AuthService) RegisterSuperuser(email string, password string) (models.User, error) {
	user, err := service.Register(RegisterInput{Email: email, Password: password})
	if err != nil {
		return models.User{}, err
	}

	if err := service.users.UpdateByID(user.ID, map[string]any{
		"is_staff":     true,
		"is_superuser": true,
	}); err != nil {
		return models.User{}, err
	}
	user.IsStaff = true
	user.IsSuperuser = true
	return user, nil
}

// Authenticate verifies credentials and returns the user's token,
// get-or-create style. Missing user and wrong password both collapse to
// ErrInvalidCredentials.
func (service *AuthService) Authenticate(email string, password string) (models.Token, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return models.Token{}, ErrInvalidCredentials
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Token{}, ErrInvalidCredentials
		}
		return models.Token{}, err
	}
	if !user.IsActive {
		return models.Token{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.Token{}, ErrInvalidCredentials
	}

	return service.tokens.GetOrCreate(user.ID)
}

// ResolveToken exchanges a bearer key for the owning user.
func (service *AuthService) ResolveToken(key string) (models.User, error) {
	if key == "" {
		return models.User{}, ErrInvalidToken
	}

	token, err := service.tokens.FindByKey(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidToken
		}
		return models.User{}, err
	}
	if !token.User.IsActive {
		return models.User{}, ErrInvalidToken
	}
	return token.User, nil
}

// ProfileUpdate fields are applied only when non-nil. Email is not
// updatable through this path.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Password  *string
}

func (service *AuthService) UpdateProfile(userID uint, update ProfileUpdate) (models.User, error) {
	changes := map[string]any{}
	if update.FirstName != nil {
		changes["first_name"] = strings.TrimSpace(*update.FirstName)
	}
	if update.LastName != nil {
		changes["last_name"] = strings.TrimSpace(*update.LastName)
	}
	if update.Password != nil {
		if err := service.policy.Validate(*update.Password); err != nil {
			return models.User{}, err
		}
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(*update.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		changes["password_hash"] = string(passwordHash)
	}

	if len(changes) > 0 {
		if err := service.users.UpdateByID(userID, changes); err != nil {
			return models.User{}, err
		}
	}
	return service.users.FindByID(userID)
}
