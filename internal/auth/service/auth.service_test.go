package service

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"notesapp/internal/auth/repository"
	"notesapp/pkg/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func newMockService(t *testing.T) (*AuthService, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAuthService(repository.NewAuthRepository(db), testSecret), mock
}

func TestRegister(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT id, username, email, hashed_password FROM users WHERE email = \$1`).
		WithArgs("ana@example.com").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO users \(username, email, hashed_password\) VALUES \(\$1, \$2, \$3\) RETURNING id, username, email`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email"}).AddRow(1, "ana", "ana@example.com"))

	user, err := svc.Register(context.Background(), "ana", "ana@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, "ana", user.Username)
	assert.Empty(t, user.HashedPassword)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT id, username, email, hashed_password FROM users WHERE email = \$1`).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "hashed_password"}).
			AddRow(1, "ana", "ana@example.com", "x"))

	_, err := svc.Register(context.Background(), "ana", "ana@example.com", "hunter2")
	assert.ErrorIs(t, err, ErrEmailTaken)
	// No insert reaches the store.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterRaceLosesToUniqueConstraint(t *testing.T) {
	svc, mock := newMockService(t)

	mock.ExpectQuery(`SELECT id, username, email, hashed_password FROM users`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := svc.Register(context.Background(), "ana", "ana@example.com", "hunter2")
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogin(t *testing.T) {
	svc, mock := newMockService(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT id, username, email, hashed_password FROM users WHERE email = \$1`).
		WithArgs("ana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "hashed_password"}).
			AddRow(1, "ana", "ana@example.com", string(hashed)))

	tokenString, user, err := svc.Login(context.Background(), "ana@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "ana", user.Username)

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "1", claims["sub"])
	assert.Equal(t, "ana", claims["username"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginFailuresAreGeneric(t *testing.T) {
	svc, mock := newMockService(t)

	// Unknown email.
	mock.ExpectQuery(`SELECT id, username, email, hashed_password FROM users`).
		WillReturnError(sql.ErrNoRows)
	_, _, err := svc.Login(context.Background(), "nobody@example.com", "hunter2")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// Wrong password yields the exact same error.
	hashed, _ := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	mock.ExpectQuery(`SELECT id, username, email, hashed_password FROM users`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "hashed_password"}).
			AddRow(1, "ana", "ana@example.com", string(hashed)))
	_, _, err = svc.Login(context.Background(), "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}
