package domain

// Author field names as they appear on the wire and in the store.
const (
	FieldFirstName = "first_name"
	FieldLastName  = "last_name"
	FieldEmail     = "email"
)

// AuthorFields is the complete, exact field set of an author document
// (excluding the store-assigned identifier).
var AuthorFields = []string{FieldFirstName, FieldLastName, FieldEmail}

// Author is a person who writes posts. Email is used for login lookups
// but is not required to be unique.
type Author struct {
	// ID is the hex form of the store-assigned identifier.
	ID string

	FirstName string
	LastName  string
	Email     string
}

// AuthorPatch carries a partial author update. Nil fields are left unchanged.
type AuthorPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// IsEmpty reports whether the patch changes nothing.
func (p AuthorPatch) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil
}
