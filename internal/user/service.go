package user

import (
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"strings"

	"microblog-service/internal/shared/apperr"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Service interface {
	Register(email, password, name string) (*User, error)
	Login(email, password string) (*User, error)
	GetByID(id uint) (*User, error)
	Delete(id uint) error
}

type service struct {
	repo Repository
}

func NewService(r Repository) Service { return &service{repo: r} }

// NewRememberToken returns a fresh opaque token for persistent login.
func NewRememberToken() string {
	return uuid.NewString()
}

// Encrypt digests a remember token for at-rest storage.
func Encrypt(token string) string {
	sum := sha1.Sum([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (s *service) Register(email, password, name string) (*User, error) {
	// Uniqueness is case-insensitive: normalize before every lookup and write.
	email = strings.ToLower(strings.TrimSpace(email))
	if exist, _ := s.repo.GetByEmail(email); exist != nil {
		return nil, apperr.Validation("email", "already taken")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("hash fail")
	}
	return s.repo.Create(&User{
		Email:          email,
		PassHash:       string(hash),
		Name:           name,
		RememberDigest: Encrypt(NewRememberToken()),
	})
}

func (s *service) Login(email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return nil, errors.New("wrong credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PassHash), []byte(password)) != nil {
		return nil, errors.New("wrong credentials")
	}
	return u, nil
}

func (s *service) GetByID(id uint) (*User, error) { return s.repo.GetByID(id) }

func (s *service) Delete(id uint) error { return s.repo.Delete(id) }
