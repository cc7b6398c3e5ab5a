package dto

import "github.com/jsamuelsen/blog-service/internal/domain"

// LoginFields is the exact key set of a login body.
var LoginFields = []string{domain.FieldEmail}

// ObjectID renders an identifier the way MongoDB extended JSON does.
type ObjectID struct {
	OID string `json:"$oid"`
}

// AuthorResponse is an author as returned by the API.
type AuthorResponse struct {
	ID        ObjectID `json:"_id"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Email     string   `json:"email"`
}

// NewAuthorResponse renders a domain author.
func NewAuthorResponse(a *domain.Author) AuthorResponse {
	return AuthorResponse{
		ID:        ObjectID{OID: a.ID},
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
	}
}

// NewAuthorListResponse renders authors, never as null.
func NewAuthorListResponse(authors []domain.Author) []AuthorResponse {
	out := make([]AuthorResponse, 0, len(authors))
	for i := range authors {
		out = append(out, NewAuthorResponse(&authors[i]))
	}

	return out
}

// PostResponse is a post as returned by the API.
type PostResponse struct {
	ID       ObjectID `json:"_id"`
	AuthorID string   `json:"author_id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Date     string   `json:"date"`
}

// NewPostResponse renders a domain post.
func NewPostResponse(p *domain.Post) PostResponse {
	return PostResponse{
		ID:       ObjectID{OID: p.ID},
		AuthorID: p.AuthorID,
		Title:    p.Title,
		Content:  p.Content,
		Date:     p.Date,
	}
}

// NewPostListResponse renders posts, never as null.
func NewPostListResponse(posts []domain.Post) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, NewPostResponse(&posts[i]))
	}

	return out
}

// CreateAuthorRequest is the body of POST /authors. Fields are pointers so a
// JSON null is caught by "required".
type CreateAuthorRequest struct {
	FirstName *string `json:"first_name" validate:"required"`
	LastName  *string `json:"last_name" validate:"required"`
	Email     *string `json:"email" validate:"required"`
}

// ToDomain converts a validated request.
func (r *CreateAuthorRequest) ToDomain() domain.Author {
	return domain.Author{
		FirstName: *r.FirstName,
		LastName:  *r.LastName,
		Email:     *r.Email,
	}
}

// UpdateAuthorRequest is the body of PATCH /authors/{id}.
type UpdateAuthorRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// ToPatch converts a validated request.
func (r *UpdateAuthorRequest) ToPatch() domain.AuthorPatch {
	return domain.AuthorPatch{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
	}
}

// CreatePostRequest is the body of POST /posts.
type CreatePostRequest struct {
	AuthorID *string `json:"author_id" validate:"required"`
	Title    *string `json:"title" validate:"required"`
	Content  *string `json:"content" validate:"required"`
	Date     *string `json:"date" validate:"required"`
}

// ToDomain converts a validated request.
func (r *CreatePostRequest) ToDomain() domain.Post {
	return domain.Post{
		AuthorID: *r.AuthorID,
		Title:    *r.Title,
		Content:  *r.Content,
		Date:     *r.Date,
	}
}

// UpdatePostRequest is the body of PATCH /posts/{id}.
type UpdatePostRequest struct {
	AuthorID *string `json:"author_id,omitempty" validate:"omitempty,len=24,hexadecimal"`
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Date     *string `json:"date,omitempty"`
}

// ToPatch converts a validated request.
func (r *UpdatePostRequest) ToPatch() domain.PostPatch {
	return domain.PostPatch{
		AuthorID: r.AuthorID,
		Title:    r.Title,
		Content:  r.Content,
		Date:     r.Date,
	}
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email *string `json:"email" validate:"required"`
}
