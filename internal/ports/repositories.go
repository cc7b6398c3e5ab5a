// Package ports defines the interfaces the application layer depends on.
// Adapters (MongoDB, HTTP) implement or consume them; services never see a
// driver type.
//
// Conventions:
//   - ctx is always the first parameter.
//   - Identifiers are the hex strings clients send. An identifier that does not
//     parse is reported as domain.ErrNotFound, the same as a missing document.
//   - Errors are domain errors (ErrNotFound, ErrValidation, ErrUnavailable),
//     possibly wrapped.
package ports

import (
	"context"

	"github.com/jsamuelsen/blog-service/internal/domain"
)

// AuthorRepository persists authors.
type AuthorRepository interface {
	// List returns every author. The result is never nil.
	List(ctx context.Context) ([]domain.Author, error)

	// Get returns the author with the given identifier.
	Get(ctx context.Context, id string) (*domain.Author, error)

	// FindByEmail returns the first author whose email matches exactly.
	FindByEmail(ctx context.Context, email string) (*domain.Author, error)

	// Create inserts author and returns it with its newly assigned ID.
	Create(ctx context.Context, author domain.Author) (*domain.Author, error)

	// Update applies patch and returns the full updated author.
	Update(ctx context.Context, id string, patch domain.AuthorPatch) (*domain.Author, error)

	// Delete removes the author. Posts that reference it are left untouched.
	Delete(ctx context.Context, id string) error
}

// PostRepository persists posts.
type PostRepository interface {
	// List returns every post. The result is never nil.
	List(ctx context.Context) ([]domain.Post, error)

	// Get returns the post with the given identifier.
	Get(ctx context.Context, id string) (*domain.Post, error)

	// Create inserts post and returns it with its newly assigned ID.
	// The caller is responsible for checking that post.AuthorID exists.
	Create(ctx context.Context, post domain.Post) (*domain.Post, error)

	// Update applies patch and returns the full updated post. A patched
	// AuthorID must be a well-formed identifier (domain.ErrValidation
	// otherwise) but is not checked for existence.
	Update(ctx context.Context, id string, patch domain.PostPatch) (*domain.Post, error)

	// Delete removes the post.
	Delete(ctx context.Context, id string) error
}
