package repositories

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/gw-microblog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUserWriteRepository_Save(t *testing.T) {
	db := setupPostgres(t)
	repo := NewUserWriteRepository(db, nil)
	ctx := context.Background()

	user, err := repo.Save(ctx, "alice", "alice@example.com", "hash")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@example.com", user.Email)
	require.NotNil(t, user.PasswordHash)
	assert.Equal(t, "hash", *user.PasswordHash)
	assert.Nil(t, user.AboutMe)
	assert.False(t, user.LastSeen.IsZero())

	t.Run("DuplicateUsername", func(t *testing.T) {
		_, err := repo.Save(ctx, "alice", "other@example.com", "hash")
		assert.ErrorIs(t, err, models.ErrDuplicate)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		_, err := repo.Save(ctx, "other", "alice@example.com", "hash")
		assert.ErrorIs(t, err, models.ErrDuplicate)
	})

	t.Run("CaseDiffersIsNotDuplicate", func(t *testing.T) {
		_, err := repo.Save(ctx, "Alice", "Alice@example.com", "hash")
		assert.NoError(t, err)
	})
}

func TestUserReadRepository_GetByUsernameOrEmail(t *testing.T) {
	db := setupPostgres(t)
	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db, nil)
	ctx := context.Background()

	_, err := writeRepo.Save(ctx, "charlie", "charlie@example.com", "secret")
	require.NoError(t, err)
	_, err = writeRepo.Save(ctx, "dave", "dave@example.com", "secret2")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username *string
		email    *string
		expected string
	}{
		{name: "ByUsername", username: strPtr("charlie"), expected: "charlie"},
		{name: "ByEmail", email: strPtr("dave@example.com"), expected: "dave"},
		{name: "UsernameOrEmail", username: strPtr("nobody"), email: strPtr("dave@example.com"), expected: "dave"},
		{name: "NotFound", username: strPtr("nonexistent")},
		{name: "NoArguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := readRepo.GetByUsernameOrEmail(ctx, tt.username, tt.email)
			assert.NoError(t, err)
			if tt.expected == "" {
				assert.Nil(t, user)
				return
			}
			require.NotNil(t, user)
			assert.Equal(t, tt.expected, user.Username)
		})
	}
}

func TestUserWriteRepository_Updates(t *testing.T) {
	db := setupPostgres(t)
	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db, nil)
	ctx := context.Background()

	erin, err := writeRepo.Save(ctx, "erin", "erin@example.com", "old")
	require.NoError(t, err)
	_, err = writeRepo.Save(ctx, "frank", "frank@example.com", "hash")
	require.NoError(t, err)

	require.NoError(t, writeRepo.UpdatePassword(ctx, erin.ID, "new"))
	require.NoError(t, writeRepo.UpdateProfile(ctx, erin.ID, "erin2", strPtr("hi there")))
	require.NoError(t, writeRepo.TouchLastSeen(ctx, erin.ID))

	got, err := readRepo.GetByID(ctx, erin.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "erin2", got.Username)
	assert.Equal(t, "new", *got.PasswordHash)
	assert.Equal(t, "hi there", *got.AboutMe)
	assert.False(t, got.LastSeen.Before(erin.LastSeen))

	err = writeRepo.UpdateProfile(ctx, erin.ID, "frank", nil)
	assert.ErrorIs(t, err, models.ErrDuplicate)

	missing, err := readRepo.GetByID(ctx, erin.ID+100)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserWriteRepository_Save_UniqueViolationMapped(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db := sqlx.NewDb(mockDB, "sqlmock")

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", "alice@example.com", "hash").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	user, err := NewUserWriteRepository(db, nil).Save(context.Background(), "alice", "alice@example.com", "hash")
	assert.ErrorIs(t, err, models.ErrDuplicate)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserReadRepository_UsesTransactionFromContext(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()
	db := sqlx.NewDb(mockDB, "sqlmock")

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "about_me", "last_seen", "created_at"}))
	mock.ExpectRollback()

	tx, err := db.Beginx()
	require.NoError(t, err)

	txGetter := func(ctx context.Context) *sqlx.Tx { return tx }
	user, err := NewUserReadRepository(db, txGetter).GetByID(context.Background(), 3)
	assert.NoError(t, err)
	assert.Nil(t, user)

	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
