package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/blog-service/internal/domain"
	"github.com/jsamuelsen/blog-service/internal/mocks"
)

const testAuthorID = "5aa9e9e4c5a4b2a1f0c0ffee"

// discardLogger returns a logger that discards all output.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fooBar() *domain.Author {
	return &domain.Author{
		ID:        testAuthorID,
		FirstName: "Foo",
		LastName:  "Bar",
		Email:     "foobar@gmail.com",
	}
}

func strPtr(s string) *string { return &s }

func TestNewAuthorService_PanicsWithoutRepository(t *testing.T) {
	assert.Panics(t, func() {
		NewAuthorService(AuthorServiceConfig{Logger: discardLogger()})
	})
}

func TestNewAuthorService_DefaultsLogger(t *testing.T) {
	svc := NewAuthorService(AuthorServiceConfig{
		Repository: mocks.NewMockAuthorRepository(t),
	})

	require.NotNil(t, svc)
}

func TestAuthorService_List(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*mocks.MockAuthorRepository)
		want      []domain.Author
		wantErr   bool
	}{
		{
			name: "returns authors",
			setupMock: func(m *mocks.MockAuthorRepository) {
				m.EXPECT().List(mock.Anything).Return([]domain.Author{*fooBar()}, nil)
			},
			want: []domain.Author{*fooBar()},
		},
		{
			name: "empty",
			setupMock: func(m *mocks.MockAuthorRepository) {
				m.EXPECT().List(mock.Anything).Return([]domain.Author{}, nil)
			},
			want: []domain.Author{},
		},
		{
			name: "store error",
			setupMock: func(m *mocks.MockAuthorRepository) {
				m.EXPECT().List(mock.Anything).Return(nil, errors.New("boom"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockAuthorRepository(t)
			tt.setupMock(repo)

			svc := NewAuthorService(AuthorServiceConfig{Repository: repo, Logger: discardLogger()})

			got, err := svc.List(context.Background())

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "listing authors")

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthorService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		repo := mocks.NewMockAuthorRepository(t)
		repo.EXPECT().Get(mock.Anything, testAuthorID).Return(fooBar(), nil)

		svc := NewAuthorService(AuthorServiceConfig{Repository: repo, Logger: discardLogger()})

		got, err := svc.Get(context.Background(), testAuthorID)

		require.NoError(t, err)
		assert.Equal(t, fooBar(), got)
	})

	t.Run("not found stays not found", func(t *testing.T) {
		repo := mocks.NewMockAuthorRepository(t)
		repo.EXPECT().Get(mock.Anything, "xyz").Return(nil, domain.NewNotFoundError("author", "xyz"))

		svc := NewAuthorService(AuthorServiceConfig{Repository: repo, Logger: discardLogger()})

		got, err := svc.Get(context.Background(), "xyz")

		assert.Nil(t, got)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestAuthorService_Create(t *testing.T) {
	in := domain.Author{FirstName: "Foo", LastName: "Bar", Email: "foobar@gmail.com"}

	t.Run("success", func(t *testing.T) {
		repo := mocks.NewMockAuthorRepository(t)
		repo.EXPECT().Create(mock.Anything, in).Return(fooBar(), nil)

		svc := NewAuthorService(AuthorServiceConfig{Repository: repo, Logger: discardLogger()})

		got, err := svc.Create(context.Background(), in)

		require.NoError(t, err)
		assert.Equal(t, testAuthorID, got.ID)
		assert.Equal(t, in.FirstName, got.FirstName)
	})

	t.Run("store unavailable", func(t *testing.T) {
		repo := mocks.NewMockAuthorRepository(t)
		repo.EXPECT().Create(mock.Anything, in).Return(nil, domain.NewUnavailableError("mongodb", "timeout"))

		svc := NewAuthorService(AuthorServiceConfig{Repository: repo, Logger: discardLogger()})

		_, err := svc.Create(context.Background(), in)

		assert.True(t, domain.IsUnavailable(err))
	})
}

func TestAuthorService_Update(t *testing.T) {
	patch := domain.AuthorPatch{LastName: strPtr("Baz")}

	t.Run("returns updated author", func(t *testing.T) {
		updated := fooBar()
		updated.LastName = "Baz"

		repo := mocks.NewMockAuthorRepository(t)
		repo.EXPECT().Update(mock.Anything, testAuthorID, patch).Return(updated, nil)

		svc := NewAuthorService(AuthorServiceConfig{Repository: repo, Logger: discardLogger()})

		got, err := svc.Update(context.Background(), testAuthorID, patch)

		require.NoError(t, err)
		assert.Equal(t, "Baz", got.LastName)
		assert.Equal(t, "Foo", got.FirstName)
		assert.Equal(t, "foobar@gmail.com", got.Email)
	})

	t.Run("not found", func(t *testing.T) {
		repo := mocks.NewMockAuthorRepository(t)
		repo.EXPECT().Update(mock.Anything, "xyz", patch).Return(nil, domain.NewNotFoundError("author", "xyz"))

		svc := NewAuthorService(AuthorServiceConfig{Repository: repo, Logger: discardLogger()})

		_, err := svc.Update(context.Background(), "xyz", patch)

		assert.True(t, domain.IsNotFound(err))
	})
}

func TestAuthorService_Delete(t *testing.T) {
	repo := mocks.NewMockAuthorRepository(t)
	repo.EXPECT().Delete(mock.Anything, testAuthorID).Return(nil).Once()
	repo.EXPECT().Delete(mock.Anything, testAuthorID).Return(domain.NewNotFoundError("author", testAuthorID)).Once()

	svc := NewAuthorService(AuthorServiceConfig{Repository: repo, Logger: discardLogger()})

	require.NoError(t, svc.Delete(context.Background(), testAuthorID))
	assert.True(t, domain.IsNotFound(svc.Delete(context.Background(), testAuthorID)))
}

func TestAuthorService_Login(t *testing.T) {
	tests := []struct {
		name      string
		email     string
		setupMock func(*mocks.MockAuthorRepository)
		want      *domain.Author
		errCheck  func(error) bool
	}{
		{
			name:  "known email returns stored author",
			email: "foobar@gmail.com",
			setupMock: func(m *mocks.MockAuthorRepository) {
				m.EXPECT().FindByEmail(mock.Anything, "foobar@gmail.com").Return(fooBar(), nil)
			},
			want: fooBar(),
		},
		{
			name:  "unknown email",
			email: "missing@x.com",
			setupMock: func(m *mocks.MockAuthorRepository) {
				m.EXPECT().FindByEmail(mock.Anything, "missing@x.com").Return(nil, domain.NewNotFoundError("author", ""))
			},
			errCheck: domain.IsNotFound,
		},
		{
			name:  "store unavailable",
			email: "foobar@gmail.com",
			setupMock: func(m *mocks.MockAuthorRepository) {
				m.EXPECT().FindByEmail(mock.Anything, "foobar@gmail.com").Return(nil, domain.NewUnavailableError("mongodb", "timeout"))
			},
			errCheck: domain.IsUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockAuthorRepository(t)
			tt.setupMock(repo)

			svc := NewAuthorService(AuthorServiceConfig{Repository: repo, Logger: discardLogger()})

			got, err := svc.Login(context.Background(), tt.email)

			if tt.errCheck != nil {
				require.Error(t, err)
				assert.True(t, tt.errCheck(err))
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
