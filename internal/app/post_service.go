package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jsamuelsen/blog-service/internal/domain"
	"github.com/jsamuelsen/blog-service/internal/platform/logging"
	"github.com/jsamuelsen/blog-service/internal/ports"
)

// ErrMsgNoSuchAuthor is reported on author_id when a post names an author
// that does not exist.
const ErrMsgNoSuchAuthor = "no such author"

// PostService orchestrates post use cases.
type PostService struct {
	posts    ports.PostRepository
	authors  ports.AuthorRepository
	executor *Executor
	logger   *slog.Logger
	create   Operation[domain.Post, *domain.Author, *domain.Post, *domain.Post]
}

// PostServiceConfig contains the dependencies of PostService.
type PostServiceConfig struct {
	Posts   ports.PostRepository
	Authors ports.AuthorRepository
	Logger  *slog.Logger
}

// NewPostService creates a post service. It panics without both repositories.
func NewPostService(cfg PostServiceConfig) *PostService {
	if cfg.Posts == nil || cfg.Authors == nil {
		panic("app: PostService requires post and author repositories")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("component", "app.PostService"))

	s := &PostService{
		posts:    cfg.Posts,
		authors:  cfg.Authors,
		executor: NewExecutor(logger),
		logger:   logger,
	}
	s.create = s.createOperation()

	return s
}

func (s *PostService) log(ctx context.Context) *slog.Logger {
	if logger, ok := logging.Lookup(ctx); ok {
		return logger.With(slog.String("component", "app.PostService"))
	}

	return s.logger
}

// List returns every post.
func (s *PostService) List(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		s.log(ctx).ErrorContext(ctx, "failed to list posts", slog.Any("error", err))
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	s.log(ctx).DebugContext(ctx, "listed posts", slog.Int("count", len(posts)))

	return posts, nil
}

// Get returns one post.
func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting post: %w", err)
	}

	s.log(ctx).DebugContext(ctx, "fetched post", slog.String("post_id", post.ID))

	return post, nil
}

// Create stores a post whose author must already exist. A missing or
// malformed author is a validation error on author_id.
func (s *PostService) Create(ctx context.Context, post domain.Post) (*domain.Post, error) {
	created, err := Execute(ctx, s.executor, s.create, post)
	if err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	return created, nil
}

func (s *PostService) createOperation() Operation[domain.Post, *domain.Author, *domain.Post, *domain.Post] {
	return Operation[domain.Post, *domain.Author, *domain.Post, *domain.Post]{
		Name: "create_post",

		Validate: func(_ context.Context, in domain.Post) error {
			if strings.TrimSpace(in.AuthorID) == "" {
				return domain.NewValidationError(domain.FieldAuthorID, ErrMsgNoSuchAuthor)
			}

			return nil
		},

		Perform: func(ctx context.Context, in domain.Post) (*domain.Author, error) {
			author, err := s.authors.Get(ctx, in.AuthorID)
			if domain.IsNotFound(err) {
				return nil, domain.NewValidationError(domain.FieldAuthorID, ErrMsgNoSuchAuthor)
			}

			return author, err
		},

		Verify: func(_ context.Context, in domain.Post, author *domain.Author) (*domain.Post, error) {
			if author == nil || author.ID == "" {
				return nil, domain.NewValidationError(domain.FieldAuthorID, ErrMsgNoSuchAuthor)
			}

			post := in
			post.ID = ""
			post.AuthorID = author.ID

			return &post, nil
		},

		Archive: func(ctx context.Context, _ domain.Post, post *domain.Post) (*domain.Post, error) {
			return s.posts.Create(ctx, *post)
		},

		Respond: func(ctx context.Context, _ domain.Post, created *domain.Post) (*domain.Post, error) {
			s.log(ctx).InfoContext(ctx, "created post",
				slog.String("post_id", created.ID),
				slog.String("author_id", created.AuthorID),
			)

			return created, nil
		},
	}
}

// Update applies patch and returns the full updated post. A changed author_id
// must be well formed but is not checked for existence.
func (s *PostService) Update(ctx context.Context, id string, patch domain.PostPatch) (*domain.Post, error) {
	updated, err := s.posts.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("updating post: %w", err)
	}

	s.log(ctx).InfoContext(ctx, "updated post", slog.String("post_id", updated.ID))

	return updated, nil
}

// Delete removes a post.
func (s *PostService) Delete(ctx context.Context, id string) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}

	s.log(ctx).InfoContext(ctx, "deleted post", slog.String("post_id", id))

	return nil
}
