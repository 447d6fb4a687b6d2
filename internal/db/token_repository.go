package db

import (
	"errors"

	"github.com/dorazhang07/ladle/internal/models"
	"github.com/dorazhang07/ladle/internal/security"
	"gorm.io/gorm"
)

const tokenKeyAlphabet = "0123456789abcdef"

type TokenRepository struct {
	database *gorm.DB
}

func NewTokenRepository(database *gorm.DB) *TokenRepository {
	return &TokenRepository{database: database}
}

// GetOrCreate returns the user's existing token, creating one on first
// login. Repeated logins keep returning the same key; clients rely on that.
func (repo *TokenRepository) GetOrCreate(userID uint) (models.Token, error) {
	var token models.Token
	err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		First(&token).Error
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Token{}, err
	}

	key, err := security.RandomString(models.TokenKeyLength, tokenKeyAlphabet)
	if err != nil {
		return models.Token{}, err
	}

	token = models.Token{Key: key, UserID: userID}
	if err := repo.database.Create(&token).Error; err != nil {
		return models.Token{}, err
	}
	return token, nil
}

// FindByKey resolves a token by exact key match, loading the owning user.
func (repo *TokenRepository) FindByKey(key string) (models.Token, error) {
	var token models.Token
	if err := repo.database.
		Preload("User").
		Where("key = ?", key).
		First(&token).Error; err != nil {
		return models.Token{}, err
	}
	return token, nil
}
