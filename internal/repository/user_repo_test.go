package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"community_board/internal/model"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{"id", "email", "password_hash", "role", "created_at", "updated_at"}

func TestUserRepository_Create(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantID    int
		wantErr   error
		errMsg    string
	}{
		{
			name: "inserts and fills generated fields",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("a@x.com", "hash", model.RoleUser).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(1, now, now))
			},
			wantID: 1,
		},
		{
			name: "unique violation maps to duplicate email",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("a@x.com", "hash", model.RoleUser).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_key"})
			},
			wantErr: ErrDuplicateEmail,
		},
		{
			name: "other database error is wrapped",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("a@x.com", "hash", model.RoleUser).
					WillReturnError(errors.New("connection refused"))
			},
			errMsg: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewUserRepository(mock)
			user := &model.User{Email: "a@x.com", PasswordHash: "hash", Role: model.RoleUser}
			err = repo.Create(context.Background(), user)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.NotErrorIs(t, err, ErrDuplicateEmail)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantID, user.ID)
				assert.Equal(t, now, user.CreatedAt)
			}

			assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		})
	}
}

func TestUserRepository_FindByEmail(t *testing.T) {
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
			WithArgs("a@x.com").
			WillReturnRows(pgxmock.NewRows(userCols).AddRow(1, "a@x.com", "hash", model.RoleUser, now, now))

		user, err := NewUserRepository(mock).FindByEmail(context.Background(), "a@x.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, 1, user.ID)
		assert.Equal(t, "hash", user.PasswordHash)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing returns nil without error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
			WithArgs("nobody@x.com").
			WillReturnRows(pgxmock.NewRows(userCols))

		user, err := NewUserRepository(mock).FindByEmail(context.Background(), "nobody@x.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).
			WithArgs("a@x.com").
			WillReturnError(errors.New("timeout"))

		user, err := NewUserRepository(mock).FindByEmail(context.Background(), "a@x.com")
		assert.Error(t, err)
		assert.Nil(t, user)
	})
}

func TestUserRepository_FindByID(t *testing.T) {
	now := time.Now()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs(2).
		WillReturnRows(pgxmock.NewRows(userCols).AddRow(2, "b@x.com", "hash", model.RoleAdmin, now, now))
	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).
		WithArgs(3).
		WillReturnRows(pgxmock.NewRows(userCols))

	repo := NewUserRepository(mock)

	user, err := repo.FindByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)

	user, err = repo.FindByID(context.Background(), 3)
	assert.NoError(t, err)
	assert.Nil(t, user)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindAll(t *testing.T) {
	now := time.Now()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT .* FROM users ORDER BY id`).
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow(1, "a@x.com", "h1", model.RoleUser, now, now).
			AddRow(2, "b@x.com", "h2", model.RoleUser, now, now))

	users, err := NewUserRepository(mock).FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "b@x.com", users[1].Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Update(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "updates",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`UPDATE users SET email`).
					WithArgs("new@x.com", "hash", 1).
					WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))
			},
		},
		{
			name: "email taken",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`UPDATE users SET email`).
					WithArgs("new@x.com", "hash", 1).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
			},
			wantErr: ErrDuplicateEmail,
		},
		{
			name: "user gone",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`UPDATE users SET email`).
					WithArgs("new@x.com", "hash", 1).
					WillReturnRows(pgxmock.NewRows([]string{"updated_at"}))
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)

			user := &model.User{ID: 1, Email: "new@x.com", PasswordHash: "hash"}
			err = NewUserRepository(mock).Update(context.Background(), user)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, now, user.UpdatedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
		errMsg    string
	}{
		{
			name: "deleted",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
					WithArgs(1).
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
		},
		{
			name: "already gone",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM users`).
					WithArgs(1).
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
			},
			wantErr: ErrNotFound,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM users`).
					WithArgs(1).
					WillReturnError(errors.New("connection reset"))
			},
			errMsg: "connection reset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)

			err = NewUserRepository(mock).Delete(context.Background(), 1)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.NotErrorIs(t, err, ErrNotFound)
				assert.Contains(t, err.Error(), tt.errMsg)
			default:
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
