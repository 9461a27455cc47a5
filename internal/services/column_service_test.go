package services

import (
	"testing"
	"time"

	"github.com/huyng/kanban-api/internal/database"
	"github.com/huyng/kanban-api/internal/models"
	"github.com/huyng/kanban-api/internal/repository"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ColumnServiceTestSuite defines the test suite for ColumnService
type ColumnServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *ColumnService

	owner    *models.User
	stranger *models.User
	board    *models.Board
}

// SetupTest runs before each test
func (suite *ColumnServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = database.Migrate(suite.db)
	suite.Require().NoError(err)

	boardRepo := repository.NewBoardRepository(suite.db)
	columnRepo := repository.NewColumnRepository(suite.db)
	membership := NewMembershipService(boardRepo)
	suite.service = NewColumnService(columnRepo, boardRepo, membership)

	suite.owner = &models.User{Email: "owner@example.com", PasswordHash: "hashedpassword"}
	suite.db.Create(suite.owner)
	suite.stranger = &models.User{Email: "stranger@example.com", PasswordHash: "hashedpassword"}
	suite.db.Create(suite.stranger)

	suite.board = &models.Board{Title: "Roadmap", OwnerID: suite.owner.ID, Visibility: models.VisibilityPrivate}
	suite.db.Create(suite.board)
	suite.db.Create(&models.BoardMember{
		BoardID:  suite.board.ID,
		UserID:   suite.owner.ID,
		Role:     models.RoleAdmin,
		JoinedAt: time.Now(),
	})
}

// TearDownTest runs after each test
func (suite *ColumnServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ColumnServiceTestSuite) createColumn(title string) *models.Column {
	column, err := suite.service.Create(CreateColumnInput{
		BoardID: suite.board.ID,
		Title:   title,
		UserID:  suite.owner.ID,
	})
	suite.Require().NoError(err)
	return column
}

func (suite *ColumnServiceTestSuite) TestCreate_AppendsWithGapSpacing() {
	first := suite.createColumn("Todo")
	second := suite.createColumn("Doing")
	third := suite.createColumn("Done")

	suite.Equal(65536.0, first.Position)
	suite.Equal(131072.0, second.Position)
	suite.Equal(196608.0, third.Position)
}

func (suite *ColumnServiceTestSuite) TestCreate_NonMemberForbidden() {
	_, err := suite.service.Create(CreateColumnInput{
		BoardID: suite.board.ID,
		Title:   "Todo",
		UserID:  suite.stranger.ID,
	})
	suite.ErrorIs(err, ErrNotBoardMember)
}

func (suite *ColumnServiceTestSuite) TestCreate_MissingBoard() {
	_, err := suite.service.Create(CreateColumnInput{
		BoardID: 9999,
		Title:   "Todo",
		UserID:  suite.owner.ID,
	})
	suite.ErrorIs(err, ErrBoardNotFound)
}

func (suite *ColumnServiceTestSuite) TestUpdate_MoveToEndAppends() {
	first := suite.createColumn("Todo")
	suite.createColumn("Doing")

	newIndex := 1
	moved, err := suite.service.Update(first.ID, UpdateColumnInput{NewIndex: &newIndex}, suite.owner.ID)
	suite.Require().NoError(err)
	suite.Equal(196608.0, moved.Position)
}

func (suite *ColumnServiceTestSuite) TestUpdate_MoveToFrontHalvesMinimum() {
	suite.createColumn("Todo")
	second := suite.createColumn("Doing")

	newIndex := 0
	moved, err := suite.service.Update(second.ID, UpdateColumnInput{NewIndex: &newIndex}, suite.owner.ID)
	suite.Require().NoError(err)
	suite.Equal(32768.0, moved.Position)
}

func (suite *ColumnServiceTestSuite) TestUpdate_MoveBetweenBisectsNeighbours() {
	suite.createColumn("Todo")
	suite.createColumn("Doing")
	third := suite.createColumn("Done")

	newIndex := 1
	moved, err := suite.service.Update(third.ID, UpdateColumnInput{NewIndex: &newIndex}, suite.owner.ID)
	suite.Require().NoError(err)
	suite.Equal(98304.0, moved.Position)
}

func (suite *ColumnServiceTestSuite) TestUpdate_RenameKeepsPosition() {
	column := suite.createColumn("Todo")

	title := "Backlog"
	updated, err := suite.service.Update(column.ID, UpdateColumnInput{Title: &title}, suite.owner.ID)
	suite.Require().NoError(err)
	suite.Equal("Backlog", updated.Title)
	suite.Equal(column.Position, updated.Position)
}

func (suite *ColumnServiceTestSuite) TestList_ExcludesArchived() {
	suite.createColumn("Todo")
	archived := suite.createColumn("Old")
	_, err := suite.service.Archive(archived.ID, suite.owner.ID)
	suite.Require().NoError(err)

	columns, err := suite.service.List(suite.board.ID, suite.owner.ID)
	suite.Require().NoError(err)
	suite.Require().Len(columns, 1)
	suite.Equal("Todo", columns[0].Title)
}

func (suite *ColumnServiceTestSuite) TestArchive_Twice() {
	column := suite.createColumn("Todo")

	_, err := suite.service.Archive(column.ID, suite.owner.ID)
	suite.Require().NoError(err)
	_, err = suite.service.Archive(column.ID, suite.owner.ID)
	suite.ErrorIs(err, ErrColumnAlreadyArchived)
}

func (suite *ColumnServiceTestSuite) TestUnarchive_NotArchived() {
	column := suite.createColumn("Todo")

	_, err := suite.service.Unarchive(column.ID, suite.owner.ID)
	suite.ErrorIs(err, ErrColumnNotArchived)
}

func (suite *ColumnServiceTestSuite) TestDeletePermanent_RequiresArchive() {
	column := suite.createColumn("Todo")

	err := suite.service.DeletePermanent(column.ID, suite.owner.ID)
	suite.ErrorIs(err, ErrColumnNotArchived)
}

func (suite *ColumnServiceTestSuite) TestDeletePermanent_CompactsLaterSiblings() {
	first := suite.createColumn("Todo")
	second := suite.createColumn("Doing")
	third := suite.createColumn("Done")

	_, err := suite.service.Archive(first.ID, suite.owner.ID)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.service.DeletePermanent(first.ID, suite.owner.ID))

	var stored models.Column
	suite.db.First(&stored, second.ID)
	suite.Equal(131071.0, stored.Position)
	suite.db.First(&stored, third.ID)
	suite.Equal(196607.0, stored.Position)
}

func (suite *ColumnServiceTestSuite) TestDeletePermanent_RemovesCards() {
	column := suite.createColumn("Todo")
	suite.db.Create(&models.Card{ColumnID: column.ID, Title: "Ship it", Position: 65536})

	_, err := suite.service.Archive(column.ID, suite.owner.ID)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.service.DeletePermanent(column.ID, suite.owner.ID))

	var cards int64
	suite.db.Model(&models.Card{}).Count(&cards)
	suite.Zero(cards)
}

// TestColumnServiceTestSuite runs the test suite
func TestColumnServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ColumnServiceTestSuite))
}
