package repositories

import (
	"context"
	"errors"
	"time"

	"rental-server/apperrors"
	"rental-server/entities"
	"rental-server/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type userDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Email         string             `bson:"email"`
	Phone         string             `bson:"phone"`
	Company       string             `bson:"company"`
	LicenseNumber string             `bson:"licenseNumber"`
	Role          string             `bson:"role"`
	UserType      string             `bson:"userType"`
	IsActive      bool               `bson:"isActive"`
	CreatedAt     time.Time          `bson:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt"`
}

func (d userDocument) entity() entities.User {
	return entities.User{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Email:         d.Email,
		Phone:         d.Phone,
		Company:       d.Company,
		LicenseNumber: d.LicenseNumber,
		Role:          d.Role,
		UserType:      d.UserType,
		IsActive:      d.IsActive,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

var activeAgents = bson.M{"userType": entities.UserTypeAgent, "isActive": true}

type userMongoRepository struct {
	collection *mongo.Collection
}

func NewUserMongoRepository(collection *mongo.Collection) UserRepository {
	return &userMongoRepository{collection: collection}
}

func (r *userMongoRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	var doc userDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u := doc.entity()
	return &u, nil
}

func (r *userMongoRepository) GetByIDs(ctx context.Context, ids []string) (map[string]entities.User, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			oids = append(oids, oid)
		}
	}
	users := make(map[string]entities.User, len(oids))
	if len(oids) == 0 {
		return users, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	for _, d := range docs {
		users[d.ID.Hex()] = d.entity()
	}
	return users, nil
}

func (r *userMongoRepository) ListAgents(ctx context.Context, page query.Page) ([]entities.User, int64, error) {
	opts := options.Find().
		SetSort(newestFirst).
		SetSkip(page.Skip()).
		SetLimit(page.Take())
	cursor, err := r.collection.Find(ctx, activeAgents, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}
	total, err := r.collection.CountDocuments(ctx, activeAgents)
	if err != nil {
		return nil, 0, err
	}

	users := make([]entities.User, 0, len(docs))
	for _, d := range docs {
		users = append(users, d.entity())
	}
	return users, total, nil
}

func (r *userMongoRepository) Update(ctx context.Context, user *entities.User) error {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return apperrors.ErrNotFound
	}
	user.UpdatedAt = time.Now().UTC()
	set := bson.M{
		"name":          user.Name,
		"email":         user.Email,
		"phone":         user.Phone,
		"company":       user.Company,
		"licenseNumber": user.LicenseNumber,
		"role":          user.Role,
		"userType":      user.UserType,
		"isActive":      user.IsActive,
		"updatedAt":     user.UpdatedAt,
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
