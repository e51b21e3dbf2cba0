package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-advising-api/internal/models"
)

var userColumns = []string{"id", "external_id", "email", "enabled", "role"}

func TestFindByExternalID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, external_id, email, enabled, role FROM users WHERE "external_id"=$1 LIMIT 1`)).
		WithArgs("user-test-123").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(3, "user-test-123", "student@example.edu", true, "user"))

	user, err := repo.FindByExternalID(context.Background(), "user-test-123")
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO users ("external_id","email","enabled","role") VALUES ($1,$2,$3,$4) RETURNING id, external_id, email, enabled, role`)).
		WithArgs("user-test-123", "dean@example.edu", true, "admin").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(1, "user-test-123", "dean@example.edu", true, "admin"))

	user, err := repo.Create(context.Background(), &models.User{ExternalID: "user-test-123", Email: "dean@example.edu", Enabled: true, Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsers(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	role := models.RoleDirector
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, external_id, email, enabled, role FROM users WHERE email LIKE '%' || $1 || '%' AND "role"=$2 ORDER BY id LIMIT 100 OFFSET 0`)).
		WithArgs("smith", "director").
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(2, "ext-2", "smith@example.edu", true, "director"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users WHERE email LIKE '%' || $1 || '%' AND "role"=$2`)).
		WithArgs("smith", "director").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	users, total, err := repo.List(context.Background(), models.UserFilter{Search: "smith", Role: &role})
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserPatch(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET role = $1, enabled = $2 WHERE "id"=$3 RETURNING id, external_id, email, enabled, role`)).
		WithArgs("director", true, int64(2)).
		WillReturnRows(sqlmock.NewRows(userColumns).AddRow(2, "ext-2", "smith@example.edu", true, "director"))

	role := models.RoleDirector
	enabled := true
	user, err := repo.Update(context.Background(), 2, models.UserPatch{Role: &role, Enabled: &enabled})
	require.NoError(t, err)
	assert.True(t, user.Enabled)
	assert.NoError(t, mock.ExpectationsWereMet())
}
