package repository

import (
	"github.com/huyng/kanban-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)
}

// BoardRepository defines the interface for board and membership data access
type BoardRepository interface {
	// CreateWithOwner creates a board and its owner membership atomically
	CreateWithOwner(board *models.Board, member *models.BoardMember) error

	// FindByID finds a board by ID
	FindByID(id uint64) (*models.Board, error)

	// FindDetail finds a board with columns, cards, labels and members eagerly loaded
	FindDetail(id uint64) (*models.Board, error)

	// ListForMember lists non-closed boards the user is a member of,
	// newest first, paginated
	ListForMember(userID uint64, offset, limit int) ([]models.Board, int64, error)

	// ListIDs returns the ids of all non-closed boards
	ListIDs() ([]uint64, error)

	// Update updates a board
	Update(board *models.Board) error

	// Delete removes a board and everything it owns in one transaction
	Delete(id uint64) error

	// AddMember adds a member to a board
	AddMember(member *models.BoardMember) error

	// FindMember finds a specific board member
	FindMember(boardID, userID uint64) (*models.BoardMember, error)
}

// ColumnRepository defines the interface for column data access
type ColumnRepository interface {
	// Create creates a new column
	Create(column *models.Column) error

	// FindByID finds a column by ID
	FindByID(id uint64) (*models.Column, error)

	// ListByBoard lists all columns of a board ordered by position, id
	ListByBoard(boardID uint64) ([]models.Column, error)

	// ListIDs returns the ids of all columns
	ListIDs() ([]uint64, error)

	// Update updates a column
	Update(column *models.Column) error

	// DeleteAndCompact deletes the column and shifts later siblings down by
	// one rank unit in the same transaction
	DeleteAndCompact(column *models.Column) error

	// Renumber rewrites the board's column positions with evenly spaced ranks,
	// preserving order
	Renumber(boardID uint64) error
}

// CardRepository defines the interface for card and assignment data access
type CardRepository interface {
	// Create creates a new card
	Create(card *models.Card) error

	// FindByID finds a card by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Card, error)

	// ListByColumn lists all cards of a column ordered by position, id,
	// excluding excludeID when non-zero
	ListByColumn(columnID, excludeID uint64) ([]models.Card, error)

	// ListVisibleByColumn lists non-archived cards of a column ordered by
	// position, id, with labels and assignments attached
	ListVisibleByColumn(columnID uint64) ([]models.Card, error)

	// Update updates a card
	Update(card *models.Card) error

	// DeleteAndCompact deletes the card and shifts later siblings down by one
	// rank unit in the same transaction
	DeleteAndCompact(card *models.Card) error

	// AddAssignment assigns a user to a card
	AddAssignment(assignment *models.CardAssignment) error

	// FindAssignment finds a specific card assignment
	FindAssignment(cardID, userID uint64) (*models.CardAssignment, error)

	// ListAssignments lists the assignments of a card with users attached
	ListAssignments(cardID uint64) ([]models.CardAssignment, error)

	// Renumber rewrites the column's card positions with evenly spaced ranks,
	// preserving order
	Renumber(columnID uint64) error
}

// LabelRepository defines the interface for label data access
type LabelRepository interface {
	// Create creates a new label
	Create(label *models.Label) error

	// FindByID finds a label by ID
	FindByID(id uint64) (*models.Label, error)

	// ListByBoard lists the labels of a board
	ListByBoard(boardID uint64) ([]models.Label, error)

	// Update updates a label
	Update(label *models.Label) error

	// Delete removes a label and its card associations
	Delete(id uint64) error

	// Attach links a label to a card
	Attach(card *models.Card, label *models.Label) error

	// Detach unlinks a label from a card
	Detach(card *models.Card, label *models.Label) error
}
