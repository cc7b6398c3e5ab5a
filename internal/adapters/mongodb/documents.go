package mongodb

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jsamuelsen/blog-service/internal/domain"
)

// authorDocument is the stored shape of an author. Its field set is exactly
// the author schema plus _id.
type authorDocument struct {
	ID        primitive.ObjectID `bson:"_id"`
	FirstName string             `bson:"first_name"`
	LastName  string             `bson:"last_name"`
	Email     string             `bson:"email"`
}

func newAuthorDocument(a domain.Author) authorDocument {
	return authorDocument{
		ID:        primitive.NewObjectID(),
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
	}
}

func (d authorDocument) toDomain() domain.Author {
	return domain.Author{
		ID:        d.ID.Hex(),
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
	}
}

// postDocument is the stored shape of a post. The author reference is kept
// as an ObjectID so it can be joined against the authors collection.
type postDocument struct {
	ID       primitive.ObjectID `bson:"_id"`
	AuthorID primitive.ObjectID `bson:"author_id"`
	Title    string             `bson:"title"`
	Content  string             `bson:"content"`
	Date     string             `bson:"date"`
}

func (d postDocument) toDomain() domain.Post {
	return domain.Post{
		ID:       d.ID.Hex(),
		AuthorID: d.AuthorID.Hex(),
		Title:    d.Title,
		Content:  d.Content,
		Date:     d.Date,
	}
}
