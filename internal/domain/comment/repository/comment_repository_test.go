package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}
	return db, mock
}

var commentColumns = []string{
	"id", "created_at", "updated_at", "owner_id", "post_id", "parent_id",
	"content", "approval_status", "owner_username", "profile_id", "profile_image",
}

func TestListByPost(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCommentRepository(db)
	now := time.Now()

	rows := sqlmock.NewRows(commentColumns).
		AddRow(2, now, now, 10, 1, 1, "a reply", 0, "alice", 5, "").
		AddRow(1, now, now, 10, 1, nil, "top level", 0, "alice", 5, "")
	mock.ExpectQuery(`SELECT (.+) FROM "comments" JOIN users ON users.id = comments.owner_id JOIN profiles ON profiles.owner_id = comments.owner_id WHERE comments.post_id = \$1 ORDER BY comments.created_at DESC, comments.id DESC`).
		WithArgs(1).
		WillReturnRows(rows)

	result, err := repo.ListByPost(1)

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, uint(2), result[0].ID)
	require.NotNil(t, result[0].ParentID)
	assert.Equal(t, uint(1), *result[0].ParentID)
	assert.Nil(t, result[1].ParentID)
	assert.Equal(t, "alice", result[1].OwnerUsername)
	assert.Equal(t, uint(5), result[1].ProfileID)
}

func TestGetByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectQuery(`SELECT (.+) FROM "comments"`).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows(commentColumns))

	_, err := repo.GetByID(9)

	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteCascadesInStore(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCommentRepository(db)

	// 子树删除交给数据库级联，仓库只删这一行
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "comments" WHERE "comments"."id" = \$1`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(3))
}

func TestSetApprovalStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "comments" SET`).
		WithArgs(1, sqlmock.AnyArg(), 4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.SetApprovalStatus(4, 1))
}

func TestPostExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCommentRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "posts" WHERE id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.PostExists(1)

	require.NoError(t, err)
	assert.True(t, exists)
}
