package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jsamuelsen/blog-service/internal/domain"
)

const authorEntity = "author"

// AuthorRepository implements ports.AuthorRepository over the authors
// collection.
type AuthorRepository struct {
	coll *mongo.Collection
}

// NewAuthorRepository creates a repository bound to db.authors.
func NewAuthorRepository(db *mongo.Database) *AuthorRepository {
	return &AuthorRepository{coll: db.Collection(AuthorsCollection)}
}

// List returns all authors in natural order.
func (r *AuthorRepository) List(ctx context.Context) ([]domain.Author, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, storeError("listing authors", err)
	}

	var docs []authorDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storeError("decoding authors", err)
	}

	authors := make([]domain.Author, 0, len(docs))
	for _, d := range docs {
		authors = append(authors, d.toDomain())
	}

	return authors, nil
}

// Get returns the author with the given hex identifier.
func (r *AuthorRepository) Get(ctx context.Context, id string) (*domain.Author, error) {
	oid, ok := ParseID(id)
	if !ok {
		return nil, domain.NewNotFoundError(authorEntity, id)
	}

	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}}, id)
}

// FindByEmail returns the first author with exactly this email.
func (r *AuthorRepository) FindByEmail(ctx context.Context, email string) (*domain.Author, error) {
	return r.findOne(ctx, bson.D{{Key: domain.FieldEmail, Value: email}}, "")
}

func (r *AuthorRepository) findOne(ctx context.Context, filter bson.D, id string) (*domain.Author, error) {
	var doc authorDocument

	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NewNotFoundError(authorEntity, id)
	}

	if err != nil {
		return nil, storeError("finding author", err)
	}

	author := doc.toDomain()

	return &author, nil
}

// Create inserts a new author document with a fresh ObjectID.
func (r *AuthorRepository) Create(ctx context.Context, author domain.Author) (*domain.Author, error) {
	doc := newAuthorDocument(author)

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, storeError("inserting author", err)
	}

	created := doc.toDomain()

	return &created, nil
}

// Update sets the patched fields and returns the document as stored after
// the update. An empty patch is a plain read.
func (r *AuthorRepository) Update(ctx context.Context, id string, patch domain.AuthorPatch) (*domain.Author, error) {
	oid, ok := ParseID(id)
	if !ok {
		return nil, domain.NewNotFoundError(authorEntity, id)
	}

	if patch.IsEmpty() {
		return r.Get(ctx, id)
	}

	set := bson.D{}
	if patch.FirstName != nil {
		set = append(set, bson.E{Key: domain.FieldFirstName, Value: *patch.FirstName})
	}

	if patch.LastName != nil {
		set = append(set, bson.E{Key: domain.FieldLastName, Value: *patch.LastName})
	}

	if patch.Email != nil {
		set = append(set, bson.E{Key: domain.FieldEmail, Value: *patch.Email})
	}

	var doc authorDocument

	err := r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NewNotFoundError(authorEntity, id)
	}

	if err != nil {
		return nil, storeError("updating author", err)
	}

	updated := doc.toDomain()

	return &updated, nil
}

// Delete removes the author. Its posts are not touched.
func (r *AuthorRepository) Delete(ctx context.Context, id string) error {
	oid, ok := ParseID(id)
	if !ok {
		return domain.NewNotFoundError(authorEntity, id)
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return storeError("deleting author", err)
	}

	if res.DeletedCount == 0 {
		return domain.NewNotFoundError(authorEntity, id)
	}

	return nil
}
