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

// LabelServiceTestSuite defines the test suite for LabelService
type LabelServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *LabelService

	owner  *models.User
	board  *models.Board
	column *models.Column
	card   *models.Card
}

// SetupTest runs before each test
func (suite *LabelServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = database.Migrate(suite.db)
	suite.Require().NoError(err)

	boardRepo := repository.NewBoardRepository(suite.db)
	columnRepo := repository.NewColumnRepository(suite.db)
	cardRepo := repository.NewCardRepository(suite.db)
	labelRepo := repository.NewLabelRepository(suite.db)
	membership := NewMembershipService(boardRepo)
	suite.service = NewLabelService(labelRepo, cardRepo, columnRepo, boardRepo, membership)

	suite.owner = &models.User{Email: "owner@example.com", PasswordHash: "hashedpassword"}
	suite.db.Create(suite.owner)

	suite.board = &models.Board{Title: "Roadmap", OwnerID: suite.owner.ID, Visibility: models.VisibilityPrivate}
	suite.db.Create(suite.board)
	suite.db.Create(&models.BoardMember{
		BoardID:  suite.board.ID,
		UserID:   suite.owner.ID,
		Role:     models.RoleAdmin,
		JoinedAt: time.Now(),
	})

	suite.column = &models.Column{BoardID: suite.board.ID, Title: "Todo", Position: 65536}
	suite.db.Create(suite.column)
	suite.card = &models.Card{ColumnID: suite.column.ID, Title: "Ship it", Position: 65536}
	suite.db.Create(suite.card)
}

// TearDownTest runs after each test
func (suite *LabelServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *LabelServiceTestSuite) createLabel(boardID uint64, color string) *models.Label {
	label, err := suite.service.Create(CreateLabelInput{
		BoardID: boardID,
		Color:   color,
		UserID:  suite.owner.ID,
	})
	suite.Require().NoError(err)
	return label
}

func (suite *LabelServiceTestSuite) TestAttachAndDetach() {
	label := suite.createLabel(suite.board.ID, "green")

	err := suite.service.Attach(suite.card.ID, label.ID, suite.owner.ID)
	suite.Require().NoError(err)

	var count int64
	suite.db.Table("card_labels").Where("card_id = ?", suite.card.ID).Count(&count)
	suite.Equal(int64(1), count)

	err = suite.service.Detach(suite.card.ID, label.ID, suite.owner.ID)
	suite.Require().NoError(err)

	suite.db.Table("card_labels").Where("card_id = ?", suite.card.ID).Count(&count)
	suite.Zero(count)
}

func (suite *LabelServiceTestSuite) TestAttach_RejectsLabelFromAnotherBoard() {
	other := &models.Board{Title: "Other", OwnerID: suite.owner.ID, Visibility: models.VisibilityPrivate}
	suite.db.Create(other)
	suite.db.Create(&models.BoardMember{
		BoardID:  other.ID,
		UserID:   suite.owner.ID,
		Role:     models.RoleAdmin,
		JoinedAt: time.Now(),
	})
	foreign := suite.createLabel(other.ID, "red")

	err := suite.service.Attach(suite.card.ID, foreign.ID, suite.owner.ID)
	suite.ErrorIs(err, ErrLabelWrongBoard)
}

func (suite *LabelServiceTestSuite) TestAttach_NonMemberForbidden() {
	stranger := &models.User{Email: "stranger@example.com", PasswordHash: "hashedpassword"}
	suite.db.Create(stranger)
	label := suite.createLabel(suite.board.ID, "green")

	err := suite.service.Attach(suite.card.ID, label.ID, stranger.ID)
	suite.ErrorIs(err, ErrNotBoardMember)
}

func (suite *LabelServiceTestSuite) TestDelete_RemovesCardLinks() {
	label := suite.createLabel(suite.board.ID, "green")
	suite.Require().NoError(suite.service.Attach(suite.card.ID, label.ID, suite.owner.ID))

	err := suite.service.Delete(label.ID, suite.owner.ID)
	suite.Require().NoError(err)

	var labels, links int64
	suite.db.Model(&models.Label{}).Count(&labels)
	suite.db.Table("card_labels").Count(&links)
	suite.Zero(labels)
	suite.Zero(links)
}

func (suite *LabelServiceTestSuite) TestUpdate_ChangesColor() {
	label := suite.createLabel(suite.board.ID, "green")

	color := "blue"
	updated, err := suite.service.Update(label.ID, UpdateLabelInput{Color: &color}, suite.owner.ID)
	suite.Require().NoError(err)
	suite.Equal("blue", updated.Color)
}

func (suite *LabelServiceTestSuite) TestListByBoard() {
	suite.createLabel(suite.board.ID, "green")
	suite.createLabel(suite.board.ID, "red")

	labels, err := suite.service.ListByBoard(suite.board.ID, suite.owner.ID)
	suite.Require().NoError(err)
	suite.Len(labels, 2)
}

// TestLabelServiceTestSuite runs the test suite
func TestLabelServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LabelServiceTestSuite))
}
