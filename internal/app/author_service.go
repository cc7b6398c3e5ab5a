// Package app contains the use cases of the blog: managing authors and posts
// and looking authors up by email. Services depend on the repository ports
// only; HTTP and MongoDB details stay in the adapters.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/blog-service/internal/domain"
	"github.com/jsamuelsen/blog-service/internal/platform/logging"
	"github.com/jsamuelsen/blog-service/internal/ports"
)

// AuthorService orchestrates author use cases, including login.
type AuthorService struct {
	authors ports.AuthorRepository
	logger  *slog.Logger
}

// AuthorServiceConfig contains the dependencies of AuthorService.
type AuthorServiceConfig struct {
	Repository ports.AuthorRepository
	Logger     *slog.Logger
}

// NewAuthorService creates an author service. It panics without a repository.
func NewAuthorService(cfg AuthorServiceConfig) *AuthorService {
	if cfg.Repository == nil {
		panic("app: AuthorService requires a repository")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &AuthorService{
		authors: cfg.Repository,
		logger:  logger.With(slog.String("component", "app.AuthorService")),
	}
}

func (s *AuthorService) log(ctx context.Context) *slog.Logger {
	if logger, ok := logging.Lookup(ctx); ok {
		return logger.With(slog.String("component", "app.AuthorService"))
	}

	return s.logger
}

// List returns every author.
func (s *AuthorService) List(ctx context.Context) ([]domain.Author, error) {
	authors, err := s.authors.List(ctx)
	if err != nil {
		s.log(ctx).ErrorContext(ctx, "failed to list authors", slog.Any("error", err))
		return nil, fmt.Errorf("listing authors: %w", err)
	}

	s.log(ctx).DebugContext(ctx, "listed authors", slog.Int("count", len(authors)))

	return authors, nil
}

// Get returns one author.
func (s *AuthorService) Get(ctx context.Context, id string) (*domain.Author, error) {
	author, err := s.authors.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting author: %w", err)
	}

	s.log(ctx).DebugContext(ctx, "fetched author", slog.String("author_id", author.ID))

	return author, nil
}

// Create stores a new author and returns it with its identifier.
func (s *AuthorService) Create(ctx context.Context, author domain.Author) (*domain.Author, error) {
	created, err := s.authors.Create(ctx, author)
	if err != nil {
		s.log(ctx).ErrorContext(ctx, "failed to create author", slog.Any("error", err))
		return nil, fmt.Errorf("creating author: %w", err)
	}

	s.log(ctx).InfoContext(ctx, "created author", slog.String("author_id", created.ID))

	return created, nil
}

// Update applies patch and returns the full updated author.
func (s *AuthorService) Update(ctx context.Context, id string, patch domain.AuthorPatch) (*domain.Author, error) {
	updated, err := s.authors.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("updating author: %w", err)
	}

	s.log(ctx).InfoContext(ctx, "updated author", slog.String("author_id", updated.ID))

	return updated, nil
}

// Delete removes an author. Posts referencing it are left as they are.
func (s *AuthorService) Delete(ctx context.Context, id string) error {
	if err := s.authors.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting author: %w", err)
	}

	s.log(ctx).InfoContext(ctx, "deleted author", slog.String("author_id", id))

	return nil
}

// Login looks up the author registered under email. It only answers whether
// such an author exists; nothing is issued.
func (s *AuthorService) Login(ctx context.Context, email string) (*domain.Author, error) {
	author, err := s.authors.FindByEmail(ctx, email)
	if err != nil {
		if domain.IsNotFound(err) {
			s.log(ctx).InfoContext(ctx, "login for unknown email", slog.String("email", email))
		}

		return nil, fmt.Errorf("looking up login: %w", err)
	}

	s.log(ctx).InfoContext(ctx, "login matched author", slog.String("author_id", author.ID))

	return author, nil
}
