// Package board manages board metadata. Scene content lives in memory
// per session and is never written to the database.
package board

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/inklet/inklet/backend-go/internal/db"
	"github.com/inklet/inklet/backend-go/internal/typeid"
)

var (
	ErrNotFound  = errors.New("board not found")
	ErrForbidden = errors.New("forbidden")
)

// Surface defaults applied when a board is created without them; the
// playground engine uses the same values.
const (
	DefaultWidth      = 1920
	DefaultHeight     = 1080
	DefaultBackground = "#fafafa"
)

type Service struct {
	queries *db.Queries
}

func NewService(queries *db.Queries) *Service {
	return &Service{queries: queries}
}

type Board struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	OwnerID    string `json:"ownerId"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Background string `json:"background"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

func (s *Service) Create(ctx context.Context, name, ownerID string, width, height int, background string) (*Board, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if background == "" {
		background = DefaultBackground
	}

	dbBoard, err := s.queries.CreateBoard(ctx, db.CreateBoardParams{
		ID:         typeid.NewBoardID(),
		Name:       name,
		OwnerID:    ownerID,
		Width:      int32(width),
		Height:     int32(height),
		Background: background,
	})
	if err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}

	return dbBoardToBoard(dbBoard), nil
}

func (s *Service) Get(ctx context.Context, boardID, userID string) (*Board, error) {
	dbBoard, err := s.getOwned(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}
	return dbBoardToBoard(dbBoard), nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Board, error) {
	dbBoards, err := s.queries.ListBoardsForOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}

	boards := make([]Board, len(dbBoards))
	for i, b := range dbBoards {
		boards[i] = *dbBoardToBoard(b)
	}
	return boards, nil
}

func (s *Service) UpdateSurface(ctx context.Context, boardID, userID string, width, height int, background string) (*Board, error) {
	current, err := s.getOwned(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}

	if width <= 0 {
		width = int(current.Width)
	}
	if height <= 0 {
		height = int(current.Height)
	}
	if background == "" {
		background = current.Background
	}

	dbBoard, err := s.queries.UpdateBoardSurface(ctx, db.UpdateBoardSurfaceParams{
		ID:         boardID,
		Width:      int32(width),
		Height:     int32(height),
		Background: background,
	})
	if err != nil {
		return nil, fmt.Errorf("update board surface: %w", err)
	}

	return dbBoardToBoard(dbBoard), nil
}

func (s *Service) Delete(ctx context.Context, boardID, userID string) error {
	if _, err := s.getOwned(ctx, boardID, userID); err != nil {
		return err
	}
	return s.queries.DeleteBoard(ctx, boardID)
}

func (s *Service) getOwned(ctx context.Context, boardID, userID string) (db.Board, error) {
	dbBoard, err := s.queries.GetBoard(ctx, boardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return db.Board{}, ErrNotFound
		}
		return db.Board{}, fmt.Errorf("get board: %w", err)
	}
	if dbBoard.OwnerID != userID {
		return db.Board{}, ErrForbidden
	}
	return dbBoard, nil
}

func dbBoardToBoard(b db.Board) *Board {
	return &Board{
		ID:         b.ID,
		Name:       b.Name,
		OwnerID:    b.OwnerID,
		Width:      int(b.Width),
		Height:     int(b.Height),
		Background: b.Background,
		CreatedAt:  b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  b.UpdatedAt.Format(time.RFC3339),
	}
}
