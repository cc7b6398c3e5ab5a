package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jsamuelsen/blog-service/internal/domain"
)

const postEntity = "post"

// PostRepository implements ports.PostRepository over the posts collection.
type PostRepository struct {
	coll *mongo.Collection
}

// NewPostRepository creates a repository bound to db.posts.
func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{coll: db.Collection(PostsCollection)}
}

// List returns all posts in natural order.
func (r *PostRepository) List(ctx context.Context) ([]domain.Post, error) {
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, storeError("listing posts", err)
	}

	var docs []postDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storeError("decoding posts", err)
	}

	posts := make([]domain.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.toDomain())
	}

	return posts, nil
}

// Get returns the post with the given hex identifier.
func (r *PostRepository) Get(ctx context.Context, id string) (*domain.Post, error) {
	oid, ok := ParseID(id)
	if !ok {
		return nil, domain.NewNotFoundError(postEntity, id)
	}

	var doc postDocument

	err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NewNotFoundError(postEntity, id)
	}

	if err != nil {
		return nil, storeError("finding post", err)
	}

	post := doc.toDomain()

	return &post, nil
}

// Create inserts a new post. post.AuthorID must already be known to exist;
// a malformed one is rejected as a validation error.
func (r *PostRepository) Create(ctx context.Context, post domain.Post) (*domain.Post, error) {
	authorID, err := parseAuthorID(post.AuthorID)
	if err != nil {
		return nil, err
	}

	doc := postDocument{
		ID:       primitive.NewObjectID(),
		AuthorID: authorID,
		Title:    post.Title,
		Content:  post.Content,
		Date:     post.Date,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, storeError("inserting post", err)
	}

	created := doc.toDomain()

	return &created, nil
}

// Update sets the patched fields and returns the post as stored after the
// update. An empty patch is a plain read.
func (r *PostRepository) Update(ctx context.Context, id string, patch domain.PostPatch) (*domain.Post, error) {
	oid, ok := ParseID(id)
	if !ok {
		return nil, domain.NewNotFoundError(postEntity, id)
	}

	if patch.IsEmpty() {
		return r.Get(ctx, id)
	}

	set := bson.D{}

	if patch.AuthorID != nil {
		authorID, err := parseAuthorID(*patch.AuthorID)
		if err != nil {
			return nil, err
		}

		set = append(set, bson.E{Key: domain.FieldAuthorID, Value: authorID})
	}

	if patch.Title != nil {
		set = append(set, bson.E{Key: domain.FieldTitle, Value: *patch.Title})
	}

	if patch.Content != nil {
		set = append(set, bson.E{Key: domain.FieldContent, Value: *patch.Content})
	}

	if patch.Date != nil {
		set = append(set, bson.E{Key: domain.FieldDate, Value: *patch.Date})
	}

	var doc postDocument

	err := r.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NewNotFoundError(postEntity, id)
	}

	if err != nil {
		return nil, storeError("updating post", err)
	}

	updated := doc.toDomain()

	return &updated, nil
}

// Delete removes the post.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	oid, ok := ParseID(id)
	if !ok {
		return domain.NewNotFoundError(postEntity, id)
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return storeError("deleting post", err)
	}

	if res.DeletedCount == 0 {
		return domain.NewNotFoundError(postEntity, id)
	}

	return nil
}

func parseAuthorID(id string) (primitive.ObjectID, error) {
	oid, ok := ParseID(id)
	if !ok {
		return primitive.NilObjectID, domain.NewValidationError(domain.FieldAuthorID, "must be a valid identifier")
	}

	return oid, nil
}
