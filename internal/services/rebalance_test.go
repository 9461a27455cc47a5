package services

import (
	"testing"

	"github.com/huyng/kanban-api/internal/database"
	"github.com/huyng/kanban-api/internal/models"
	"github.com/huyng/kanban-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestRebalancer(t *testing.T) (*Rebalancer, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		sqlDB.Close()
	})

	boardRepo := repository.NewBoardRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	cardRepo := repository.NewCardRepository(db)
	return NewRebalancer(boardRepo, columnRepo, cardRepo), db
}

func TestRunOnceRenumbersDegenerateColumns(t *testing.T) {
	rebalancer, db := newTestRebalancer(t)

	owner := &models.User{Email: "owner@example.com", PasswordHash: "hashedpassword"}
	db.Create(owner)
	board := &models.Board{Title: "Roadmap", OwnerID: owner.ID, Visibility: models.VisibilityPrivate}
	db.Create(board)

	// Adjacent gap far below the precision floor.
	first := &models.Column{BoardID: board.ID, Title: "A", Position: 1.0}
	second := &models.Column{BoardID: board.ID, Title: "B", Position: 1.0000000001}
	db.Create(first)
	db.Create(second)

	require.NoError(t, rebalancer.RunOnce())

	var stored models.Column
	db.First(&stored, first.ID)
	require.Equal(t, 65536.0, stored.Position)
	db.First(&stored, second.ID)
	require.Equal(t, 131072.0, stored.Position)
}

func TestRunOnceRenumbersDegenerateCards(t *testing.T) {
	rebalancer, db := newTestRebalancer(t)

	owner := &models.User{Email: "owner@example.com", PasswordHash: "hashedpassword"}
	db.Create(owner)
	board := &models.Board{Title: "Roadmap", OwnerID: owner.ID, Visibility: models.VisibilityPrivate}
	db.Create(board)
	column := &models.Column{BoardID: board.ID, Title: "Todo", Position: 65536}
	db.Create(column)

	first := &models.Card{ColumnID: column.ID, Title: "One", Position: 2.0}
	second := &models.Card{ColumnID: column.ID, Title: "Two", Position: 2.0000000001}
	db.Create(first)
	db.Create(second)

	require.NoError(t, rebalancer.RunOnce())

	var stored models.Card
	db.First(&stored, first.ID)
	require.Equal(t, 65536.0, stored.Position)
	db.First(&stored, second.ID)
	require.Equal(t, 131072.0, stored.Position)
}

func TestRunOnceLeavesHealthySpacingAlone(t *testing.T) {
	rebalancer, db := newTestRebalancer(t)

	owner := &models.User{Email: "owner@example.com", PasswordHash: "hashedpassword"}
	db.Create(owner)
	board := &models.Board{Title: "Roadmap", OwnerID: owner.ID, Visibility: models.VisibilityPrivate}
	db.Create(board)

	column := &models.Column{BoardID: board.ID, Title: "Todo", Position: 98304}
	db.Create(column)

	require.NoError(t, rebalancer.RunOnce())

	var stored models.Column
	db.First(&stored, column.ID)
	require.Equal(t, 98304.0, stored.Position)
}
