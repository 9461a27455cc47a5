package services

import (
	"fmt"
	"log"

	"github.com/huyng/kanban-api/internal/ordering"
	"github.com/huyng/kanban-api/internal/repository"
	"github.com/robfig/cron/v3"
)

// Rebalancer renumbers sibling collections whose fractional positions have
// been bisected close to float precision. It runs out of band on a cron
// schedule; correctness never depends on it, only key headroom does.
type Rebalancer struct {
	boardRepo  repository.BoardRepository
	columnRepo repository.ColumnRepository
	cardRepo   repository.CardRepository
	cron       *cron.Cron
}

// NewRebalancer creates a new Rebalancer.
func NewRebalancer(
	boardRepo repository.BoardRepository,
	columnRepo repository.ColumnRepository,
	cardRepo repository.CardRepository,
) *Rebalancer {
	return &Rebalancer{
		boardRepo:  boardRepo,
		columnRepo: columnRepo,
		cardRepo:   cardRepo,
		cron:       cron.New(),
	}
}

// Start schedules the periodic pass. An empty schedule disables it.
func (r *Rebalancer) Start(schedule string) error {
	if schedule == "" {
		return nil
	}
	if _, err := r.cron.AddFunc(schedule, func() {
		if err := r.RunOnce(); err != nil {
			log.Printf("rebalance pass failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule rebalance: %w", err)
	}
	r.cron.Start()
	return nil
}

// Stop halts the schedule, waiting for a running pass to finish.
func (r *Rebalancer) Stop() {
	<-r.cron.Stop().Done()
}

// RunOnce sweeps every board's columns and every column's cards, renumbering
// the collections whose adjacent gaps dropped below the precision floor.
func (r *Rebalancer) RunOnce() error {
	boardIDs, err := r.boardRepo.ListIDs()
	if err != nil {
		return fmt.Errorf("failed to list boards: %w", err)
	}
	for _, boardID := range boardIDs {
		columns, err := r.columnRepo.ListByBoard(boardID)
		if err != nil {
			return fmt.Errorf("failed to list columns of board %d: %w", boardID, err)
		}
		if ordering.NeedsRebalance(columnPositions(columns)) {
			if err := r.columnRepo.Renumber(boardID); err != nil {
				return fmt.Errorf("failed to renumber columns of board %d: %w", boardID, err)
			}
			log.Printf("renumbered columns of board %d", boardID)
		}
	}

	columnIDs, err := r.columnRepo.ListIDs()
	if err != nil {
		return fmt.Errorf("failed to list columns: %w", err)
	}
	for _, columnID := range columnIDs {
		cards, err := r.cardRepo.ListByColumn(columnID, 0)
		if err != nil {
			return fmt.Errorf("failed to list cards of column %d: %w", columnID, err)
		}
		if ordering.NeedsRebalance(cardPositions(cards)) {
			if err := r.cardRepo.Renumber(columnID); err != nil {
				return fmt.Errorf("failed to renumber cards of column %d: %w", columnID, err)
			}
			log.Printf("renumbered cards of column %d", columnID)
		}
	}

	return nil
}
