package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"notesapp/internal/auth/repository"
	"notesapp/store"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailTaken = repository.ErrEmailTaken
	// ErrInvalidCredentials is deliberately generic so a caller cannot
	// tell whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

const (
	bcryptCost = 10
	tokenTTL   = time.Hour
)

type AuthService struct {
	Repo      *repository.AuthRepository
	jwtSecret []byte
}

func NewAuthService(repo *repository.AuthRepository, jwtSecret string) *AuthService {
	return &AuthService{Repo: repo, jwtSecret: []byte(jwtSecret)}
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (*store.User, error) {
	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	return s.Repo.Create(ctx, username, email, string(hashed))
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *store.User, error) {
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"exp":      time.Now().Add(tokenTTL).Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	return signed, user, nil
}
