package services

import (
	"testing"
	"time"

	"github.com/huyng/kanban-api/internal/database"
	"github.com/huyng/kanban-api/internal/events"
	"github.com/huyng/kanban-api/internal/models"
	"github.com/huyng/kanban-api/internal/repository"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	types    []events.Type
	payloads []any
}

func (p *recordingPublisher) Publish(eventType events.Type, payload any) {
	p.types = append(p.types, eventType)
	p.payloads = append(p.payloads, payload)
}

// CardServiceTestSuite defines the test suite for CardService
type CardServiceTestSuite struct {
	suite.Suite
	db        *gorm.DB
	service   *CardService
	publisher *recordingPublisher

	owner    *models.User
	stranger *models.User
	board    *models.Board
	todo     *models.Column
	doing    *models.Column
}

// SetupTest runs before each test
func (suite *CardServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = database.Migrate(suite.db)
	suite.Require().NoError(err)

	boardRepo := repository.NewBoardRepository(suite.db)
	columnRepo := repository.NewColumnRepository(suite.db)
	cardRepo := repository.NewCardRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	membership := NewMembershipService(boardRepo)
	suite.publisher = &recordingPublisher{}
	suite.service = NewCardService(cardRepo, columnRepo, userRepo, membership, suite.publisher)

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

	suite.todo = &models.Column{BoardID: suite.board.ID, Title: "Todo", Position: 65536}
	suite.db.Create(suite.todo)
	suite.doing = &models.Column{BoardID: suite.board.ID, Title: "Doing", Position: 131072}
	suite.db.Create(suite.doing)
}

// TearDownTest runs after each test
func (suite *CardServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *CardServiceTestSuite) createCard(columnID uint64, title string) *models.Card {
	card, err := suite.service.Create(CreateCardInput{
		ColumnID: columnID,
		Title:    title,
		UserID:   suite.owner.ID,
	})
	suite.Require().NoError(err)
	return card
}

func (suite *CardServiceTestSuite) TestCreate_AppendsWithGapSpacing() {
	first := suite.createCard(suite.todo.ID, "One")
	second := suite.createCard(suite.todo.ID, "Two")

	suite.Equal(65536.0, first.Position)
	suite.Equal(131072.0, second.Position)
}

func (suite *CardServiceTestSuite) TestCreate_NonMemberForbidden() {
	_, err := suite.service.Create(CreateCardInput{
		ColumnID: suite.todo.ID,
		Title:    "One",
		UserID:   suite.stranger.ID,
	})
	suite.ErrorIs(err, ErrNotBoardMember)
}

func (suite *CardServiceTestSuite) TestUpdate_MoveToIndexBisectsNeighbours() {
	suite.createCard(suite.todo.ID, "One")
	suite.createCard(suite.todo.ID, "Two")
	third := suite.createCard(suite.todo.ID, "Three")

	newIndex := 1
	moved, err := suite.service.Update(third.ID, UpdateCardInput{NewIndex: &newIndex}, suite.owner.ID)
	suite.Require().NoError(err)
	suite.Equal(98304.0, moved.Position)
}

func (suite *CardServiceTestSuite) TestUpdate_MoveAcrossColumns() {
	card := suite.createCard(suite.todo.ID, "One")
	suite.createCard(suite.doing.ID, "Other")

	newIndex := 1
	moved, err := suite.service.Update(card.ID, UpdateCardInput{
		ColumnID: &suite.doing.ID,
		NewIndex: &newIndex,
	}, suite.owner.ID)
	suite.Require().NoError(err)
	suite.Equal(suite.doing.ID, moved.ColumnID)
	suite.Equal(131072.0, moved.Position)
}

func (suite *CardServiceTestSuite) TestUpdate_ColumnChangeWithoutIndexMovesToFront() {
	card := suite.createCard(suite.todo.ID, "One")
	suite.createCard(suite.doing.ID, "Other")

	moved, err := suite.service.Update(card.ID, UpdateCardInput{ColumnID: &suite.doing.ID}, suite.owner.ID)
	suite.Require().NoError(err)
	suite.Equal(suite.doing.ID, moved.ColumnID)
	suite.Equal(32768.0, moved.Position)
}

func (suite *CardServiceTestSuite) TestUpdate_TargetColumnMustBeAccessible() {
	otherBoard := &models.Board{Title: "Other", OwnerID: suite.stranger.ID, Visibility: models.VisibilityPrivate}
	suite.db.Create(otherBoard)
	suite.db.Create(&models.BoardMember{
		BoardID:  otherBoard.ID,
		UserID:   suite.stranger.ID,
		Role:     models.RoleAdmin,
		JoinedAt: time.Now(),
	})
	foreign := &models.Column{BoardID: otherBoard.ID, Title: "Theirs", Position: 65536}
	suite.db.Create(foreign)

	card := suite.createCard(suite.todo.ID, "One")

	_, err := suite.service.Update(card.ID, UpdateCardInput{ColumnID: &foreign.ID}, suite.owner.ID)
	suite.ErrorIs(err, ErrNotBoardMember)
}

func (suite *CardServiceTestSuite) TestListInColumn_ExcludesArchived() {
	suite.createCard(suite.todo.ID, "One")
	archived := suite.createCard(suite.todo.ID, "Two")
	_, err := suite.service.Archive(archived.ID, suite.owner.ID)
	suite.Require().NoError(err)

	cards, err := suite.service.ListInColumn(suite.todo.ID, suite.owner.ID)
	suite.Require().NoError(err)
	suite.Require().Len(cards, 1)
	suite.Equal("One", cards[0].Title)
}

func (suite *CardServiceTestSuite) TestArchive_Twice() {
	card := suite.createCard(suite.todo.ID, "One")

	_, err := suite.service.Archive(card.ID, suite.owner.ID)
	suite.Require().NoError(err)
	_, err = suite.service.Archive(card.ID, suite.owner.ID)
	suite.ErrorIs(err, ErrCardAlreadyArchived)
}

func (suite *CardServiceTestSuite) TestDeletePermanent_RequiresArchive() {
	card := suite.createCard(suite.todo.ID, "One")

	err := suite.service.DeletePermanent(card.ID, suite.owner.ID)
	suite.ErrorIs(err, ErrCardNotArchived)
}

func (suite *CardServiceTestSuite) TestDeletePermanent_CompactsLaterSiblings() {
	first := suite.createCard(suite.todo.ID, "One")
	second := suite.createCard(suite.todo.ID, "Two")
	third := suite.createCard(suite.todo.ID, "Three")

	_, err := suite.service.Archive(first.ID, suite.owner.ID)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.service.DeletePermanent(first.ID, suite.owner.ID))

	var stored models.Card
	suite.db.First(&stored, second.ID)
	suite.Equal(131071.0, stored.Position)
	suite.db.First(&stored, third.ID)
	suite.Equal(196607.0, stored.Position)
}

func (suite *CardServiceTestSuite) TestAddAssignee_MustBeBoardMember() {
	card := suite.createCard(suite.todo.ID, "One")

	_, err := suite.service.AddAssignee(card.ID, suite.stranger.ID, suite.owner.ID)
	suite.ErrorIs(err, ErrAssigneeNotMember)
}

func (suite *CardServiceTestSuite) TestAddAssignee_UnknownUser() {
	card := suite.createCard(suite.todo.ID, "One")

	_, err := suite.service.AddAssignee(card.ID, 9999, suite.owner.ID)
	suite.ErrorIs(err, ErrAssigneeNotFound)
}

func (suite *CardServiceTestSuite) TestAddAssignee_PublishesEvent() {
	card := suite.createCard(suite.todo.ID, "One")

	assignment, err := suite.service.AddAssignee(card.ID, suite.owner.ID, suite.owner.ID)
	suite.Require().NoError(err)
	suite.Equal(models.AssignmentRoleAssignee, assignment.Role)

	suite.Require().Len(suite.publisher.types, 1)
	suite.Equal(events.CardAssigned, suite.publisher.types[0])
	payload := suite.publisher.payloads[0].(events.CardAssignedPayload)
	suite.Equal(card.ID, payload.CardID)
	suite.Equal(suite.owner.Email, payload.AssigneeEmail)
}

func (suite *CardServiceTestSuite) TestAddAssignee_Duplicate() {
	card := suite.createCard(suite.todo.ID, "One")

	_, err := suite.service.AddAssignee(card.ID, suite.owner.ID, suite.owner.ID)
	suite.Require().NoError(err)
	_, err = suite.service.AddAssignee(card.ID, suite.owner.ID, suite.owner.ID)
	suite.ErrorIs(err, ErrAlreadyAssigned)
}

// TestCardServiceTestSuite runs the test suite
func TestCardServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CardServiceTestSuite))
}
