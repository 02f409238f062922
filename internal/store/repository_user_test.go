package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-task-manager/internal/logger"
	"github.com/MKhiriev/go-task-manager/models"
)

var userRowColumns = []string{"id", "name", "email", "age", "password_hash", "created_at", "updated_at"}

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock) {
	db, mock := newTestDB(t)
	return &userRepository{db: db, logger: logger.Nop()}, mock
}

func testUser() models.User {
	return models.User{
		ID:           uuid.New(),
		Name:         "Jane",
		Email:        "jane@example.com",
		Age:          30,
		PasswordHash: "$2a$08$hash",
	}
}

func userRow(u models.User, now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(userRowColumns).
		AddRow(u.ID.String(), u.Name, u.Email, u.Age, u.PasswordHash, now, now)
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	user := testUser()
	now := time.Now()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.ID, user.Name, user.Email, user.Age, user.PasswordHash).
		WillReturnRows(userRow(user, now))

	created, err := repo.CreateUser(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, user.ID, created.ID)
	assert.Equal(t, user.Email, created.Email)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), testUser())
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestCreateUser_TransientError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.ConnectionFailure))

	_, err := repo.CreateUser(context.Background(), testUser())
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.ErrorIs(t, err, ErrTransientStorage)
}

func TestCreateUser_ScanError(t *testing.T) {
	repo, mock := newTestUserRepo(t)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.NewString()))

	_, err := repo.CreateUser(context.Background(), testUser())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTransientStorage)
}

func TestFindUserByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		user := testUser()

		mock.ExpectQuery("SELECT .+ FROM users WHERE email").
			WithArgs(user.Email).
			WillReturnRows(userRow(user, time.Now()))

		found, err := repo.FindUserByEmail(context.Background(), user.Email)
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)
		assert.Equal(t, user.PasswordHash, found.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectQuery("SELECT .+ FROM users WHERE email").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindUserByEmail(context.Background(), "ghost@example.com")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("cancelled", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectQuery("SELECT .+ FROM users WHERE email").
			WillReturnError(context.Canceled)

		_, err := repo.FindUserByEmail(context.Background(), "a@b.co")
		assert.ErrorIs(t, err, ErrTransientStorage)
	})
}

func TestFindUserByID(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	user := testUser()

	mock.ExpectQuery("SELECT .+ FROM users WHERE id").
		WithArgs(user.ID).
		WillReturnRows(userRow(user, time.Now()))
	mock.ExpectQuery("SELECT .+ FROM users WHERE id").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	found, err := repo.FindUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Name, found.Name)

	_, err = repo.FindUserByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateUser(t *testing.T) {
	name := "Janet"
	hash := "$2a$08$new"

	t.Run("success", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		user := testUser()
		user.Name = name

		mock.ExpectQuery(`UPDATE users SET updated_at = NOW\(\), name = \$1, password_hash = \$2 WHERE id = \$3 RETURNING`).
			WithArgs(name, hash, user.ID).
			WillReturnRows(userRow(user, time.Now()))

		updated, err := repo.UpdateUser(context.Background(), user.ID, models.UserUpdate{Name: &name, PasswordHash: &hash})
		require.NoError(t, err)
		assert.Equal(t, name, updated.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		email := "taken@example.com"

		mock.ExpectQuery("UPDATE users").WillReturnError(pgError(pgerrcode.UniqueViolation))

		_, err := repo.UpdateUser(context.Background(), uuid.New(), models.UserUpdate{Email: &email})
		assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	})

	t.Run("missing user", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectQuery("UPDATE users").WillReturnRows(sqlmock.NewRows(userRowColumns))

		_, err := repo.UpdateUser(context.Background(), uuid.New(), models.UserUpdate{Name: &name})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestDeleteUser_Transaction(t *testing.T) {
	t.Run("commits in order", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		user := testUser()

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM user_tokens").WithArgs(user.ID).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec("DELETE FROM tasks").WithArgs(user.ID).WillReturnResult(sqlmock.NewResult(0, 5))
		mock.ExpectQuery("DELETE FROM users").WithArgs(user.ID).WillReturnRows(userRow(user, time.Now()))
		mock.ExpectCommit()

		deleted, err := repo.DeleteUser(context.Background(), user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.ID, deleted.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on task failure", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)
		id := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM user_tokens").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM tasks").WillReturnError(errors.New("disk full"))
		mock.ExpectRollback()

		_, err := repo.DeleteUser(context.Background(), id)
		assert.ErrorIs(t, err, ErrExecutingStatement)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when user is gone", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM user_tokens").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("DELETE FROM tasks").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("DELETE FROM users").WillReturnRows(sqlmock.NewRows(userRowColumns))
		mock.ExpectRollback()

		_, err := repo.DeleteUser(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin fails", func(t *testing.T) {
		repo, mock := newTestUserRepo(t)

		mock.ExpectBegin().WillReturnError(errors.New("no connection"))

		_, err := repo.DeleteUser(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrBeginningTransaction)
	})
}

func TestSetAvatar(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	id := uuid.New()
	png := []byte{0x89, 'P', 'N', 'G'}

	mock.ExpectExec("UPDATE users SET avatar").WithArgs(id, png).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users SET avatar").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.SetAvatar(context.Background(), id, png))
	assert.ErrorIs(t, repo.SetAvatar(context.Background(), uuid.New(), nil), ErrUserNotFound)
}

func TestGetAvatar(t *testing.T) {
	repo, mock := newTestUserRepo(t)
	png := []byte{0x89, 'P', 'N', 'G'}

	mock.ExpectQuery("SELECT avatar FROM users").WillReturnRows(sqlmock.NewRows([]string{"avatar"}).AddRow(png))
	mock.ExpectQuery("SELECT avatar FROM users").WillReturnRows(sqlmock.NewRows([]string{"avatar"}).AddRow(nil))
	mock.ExpectQuery("SELECT avatar FROM users").WillReturnRows(sqlmock.NewRows([]string{"avatar"}))

	got, err := repo.GetAvatar(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, png, got)

	_, err = repo.GetAvatar(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrAvatarNotFound)

	_, err = repo.GetAvatar(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}
