package article

import (
	"context"
	"fmt"
)

// store is the subset of Repository the service depends on.
type store interface {
	Create(ctx context.Context, authorID int64, title, body string) (*Article, error)
	GetByID(ctx context.Context, id int64) (*Article, error)
	List(ctx context.Context) ([]*Article, error)
	UpdateIfOwned(ctx context.Context, id, ownerID int64, title, body string) (int64, error)
	DeleteIfOwned(ctx context.Context, id, ownerID int64) (int64, error)
}

// Service contains business logic for article management. Every operation
// takes the caller's identity explicitly; nothing is read from ambient state.
type Service struct {
	repo store
}

// NewService creates a new article Service.
func NewService(repo store) *Service {
	return &Service{repo: repo}
}

// Create publishes a new article owned by callerID.
func (s *Service) Create(ctx context.Context, callerID int64, title, body string) (*Article, error) {
	a, err := s.repo.Create(ctx, callerID, title, body)
	if err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}
	return a, nil
}

// GetByID returns a single article.
func (s *Service) GetByID(ctx context.Context, id int64) (*Article, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all articles.
func (s *Service) List(ctx context.Context) ([]*Article, error) {
	return s.repo.List(ctx)
}

// Update replaces the title and body of the article. Returns ErrNotFound when
// no such article exists and ErrNotOwner when callerID is not its author.
func (s *Service) Update(ctx context.Context, callerID, id int64, title, body string) (*Article, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(callerID, current.Author.ID); err != nil {
		return nil, err
	}

	n, err := s.repo.UpdateIfOwned(ctx, id, callerID, title, body)
	if err != nil {
		return nil, err
	}
	// The guard passed against a row that the conditional statement then did
	// not match: a concurrent delete won the race. Report not-found rather
	// than pretending the write happened.
	if n == 0 {
		return nil, ErrNotFound
	}

	return s.repo.GetByID(ctx, id)
}

// Delete removes the article. Same error contract as Update.
func (s *Service) Delete(ctx context.Context, callerID, id int64) error {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(callerID, current.Author.ID); err != nil {
		return err
	}

	n, err := s.repo.DeleteIfOwned(ctx, id, callerID)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
