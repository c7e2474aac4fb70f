// Package testutil provides an in-memory store migrated with the production migrations.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"Content_Service/internal/repository/database"
)

// NewDB opens a private in-memory sqlite database with foreign keys enforced
// and every migration applied.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.MigrateUp(context.Background(), db, "sqlite3", nil))
	return db
}

// Repos bundles the repositories over one database.
type Repos struct {
	Communities *database.CommunityRepository
	Posts       *database.PostRepository
	Comments    *database.CommentRepository
	Likes       *database.LikeRepository
	Events      *database.EventRepository
	Outbox      *database.OutboxRepository
}

func NewRepos(db *gorm.DB) Repos {
	return Repos{
		Communities: &database.CommunityRepository{DB: db},
		Posts:       &database.PostRepository{DB: db},
		Comments:    &database.CommentRepository{DB: db},
		Likes:       &database.LikeRepository{DB: db},
		Events:      &database.EventRepository{DB: db},
		Outbox:      &database.OutboxRepository{DB: db},
	}
}
