package mongodb

import "go.mongodb.org/mongo-driver/bson/primitive"

// ParseID converts a client-supplied identifier into an ObjectID.
// It never fails outward: anything other than 24 hex characters yields
// ok == false, which repositories report as not found.
func ParseID(code string) (id primitive.ObjectID, ok bool) {
	id, err := primitive.ObjectIDFromHex(code)
	if err != nil {
		return primitive.NilObjectID, false
	}

	return id, true
}
