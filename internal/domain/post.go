package domain

// Post field names as they appear on the wire and in the store.
const (
	FieldAuthorID = "author_id"
	FieldTitle    = "title"
	FieldContent  = "content"
	FieldDate     = "date"
)

// PostFields is the complete, exact field set of a post document
// (excluding the store-assigned identifier).
var PostFields = []string{FieldAuthorID, FieldTitle, FieldContent, FieldDate}

// Post is a blog entry written by an Author.
//
// AuthorID must reference an existing author when the post is created. The
// reference is not maintained afterwards: deleting the author leaves the
// post in place.
type Post struct {
	// ID is the hex form of the store-assigned identifier.
	ID string

	// AuthorID is the hex identifier of the author.
	AuthorID string

	Title   string
	Content string

	// Date is kept as the client sent it, conventionally MM-DD-YYYY.
	Date string
}

// PostPatch carries a partial post update. Nil fields are left unchanged.
type PostPatch struct {
	AuthorID *string
	Title    *string
	Content  *string
	Date     *string
}

// IsEmpty reports whether the patch changes nothing.
func (p PostPatch) IsEmpty() bool {
	return p.AuthorID == nil && p.Title == nil && p.Content == nil && p.Date == nil
}
