package repositories

import (
	"context"
	"errors"
	"regexp"
	"time"

	"rental-server/apperrors"
	"rental-server/entities"
	"rental-server/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type locationDocument struct {
	Address string `bson:"address"`
	City    string `bson:"city"`
	State   string `bson:"state"`
	ZipCode string `bson:"zipCode"`
}

type imageDocument struct {
	URL      string `bson:"url"`
	Filename string `bson:"filename"`
}

type propertyDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	Price        float64            `bson:"price"`
	PropertyType string             `bson:"propertyType"`
	Bedrooms     int                `bson:"bedrooms"`
	Bathrooms    int                `bson:"bathrooms"`
	Area         float64            `bson:"area"`
	Location     locationDocument   `bson:"location"`
	Amenities    []string           `bson:"amenities"`
	Images       []imageDocument    `bson:"images"`
	Agent        primitive.ObjectID `bson:"agent"`
	IsAvailable  bool               `bson:"isAvailable"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func toPropertyDocument(p *entities.Property) (propertyDocument, error) {
	agent, err := primitive.ObjectIDFromHex(p.AgentID)
	if err != nil {
		return propertyDocument{}, apperrors.New(apperrors.ErrValidation, "Invalid agent reference")
	}
	doc := propertyDocument{
		Title:        p.Title,
		Description:  p.Description,
		Price:        p.Price,
		PropertyType: p.PropertyType,
		Bedrooms:     p.Bedrooms,
		Bathrooms:    p.Bathrooms,
		Area:         p.Area,
		Location: locationDocument{
			Address: p.Location.Address,
			City:    p.Location.City,
			State:   p.Location.State,
			ZipCode: p.Location.ZipCode,
		},
		Amenities:   p.Amenities,
		Images:      make([]imageDocument, 0, len(p.Images)),
		Agent:       agent,
		IsAvailable: p.IsAvailable,
		CreatedAt:   p.CreatedAt,
	}
	if doc.Amenities == nil {
		doc.Amenities = []string{}
	}
	for _, img := range p.Images {
		doc.Images = append(doc.Images, imageDocument{URL: img.URL, Filename: img.Filename})
	}
	if p.ID != "" {
		if doc.ID, err = primitive.ObjectIDFromHex(p.ID); err != nil {
			return propertyDocument{}, apperrors.ErrNotFound
		}
	}
	return doc, nil
}

func (d propertyDocument) entity() entities.Property {
	p := entities.Property{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Description:  d.Description,
		Price:        d.Price,
		PropertyType: d.PropertyType,
		Bedrooms:     d.Bedrooms,
		Bathrooms:    d.Bathrooms,
		Area:         d.Area,
		Location: entities.Location{
			Address: d.Location.Address,
			City:    d.Location.City,
			State:   d.Location.State,
			ZipCode: d.Location.ZipCode,
		},
		Amenities:   d.Amenities,
		AgentID:     d.Agent.Hex(),
		Agent:       entities.AgentRef{ID: d.Agent.Hex()},
		IsAvailable: d.IsAvailable,
		CreatedAt:   d.CreatedAt,
	}
	if p.Amenities == nil {
		p.Amenities = []string{}
	}
	p.Images = make([]entities.Image, 0, len(d.Images))
	for _, img := range d.Images {
		p.Images = append(p.Images, entities.Image{URL: img.URL, Filename: img.Filename})
	}
	return p
}

// propertyFilterDoc translates a filter into a query document. ok is false
// when the filter cannot match anything, e.g. an owner id that is not an
// ObjectID.
func propertyFilterDoc(f query.PropertyFilter) (doc bson.M, ok bool) {
	doc = bson.M{}
	if f.AvailableOnly {
		doc["isAvailable"] = true
	}
	if f.AgentID != "" {
		agent, err := primitive.ObjectIDFromHex(f.AgentID)
		if err != nil {
			return nil, false
		}
		doc["agent"] = agent
	}
	if f.City != "" {
		doc["location.city"] = bson.M{"$regex": regexp.QuoteMeta(f.City), "$options": "i"}
	}
	if f.PropertyType != "" {
		doc["propertyType"] = f.PropertyType
	}
	if f.MinBedrooms != nil {
		doc["bedrooms"] = bson.M{"$gte": *f.MinBedrooms}
	}
	if f.HasPriceRange() {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		doc["price"] = price
	}
	return doc, true
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}}

type propertyMongoRepository struct {
	collection *mongo.Collection
}

func NewPropertyMongoRepository(collection *mongo.Collection) PropertyRepository {
	return &propertyMongoRepository{collection: collection}
}

func (r *propertyMongoRepository) Create(ctx context.Context, property *entities.Property) error {
	if property.CreatedAt.IsZero() {
		property.CreatedAt = time.Now().UTC()
	}
	doc, err := toPropertyDocument(property)
	if err != nil {
		return err
	}
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}
	*property = doc.entity()
	return nil
}

func (r *propertyMongoRepository) GetByID(ctx context.Context, id string) (*entities.Property, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	var doc propertyDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	p := doc.entity()
	return &p, nil
}

func (r *propertyMongoRepository) Find(ctx context.Context, filter query.PropertyFilter, page query.Page) ([]entities.Property, int64, error) {
	doc, ok := propertyFilterDoc(filter)
	if !ok {
		return []entities.Property{}, 0, nil
	}

	opts := options.Find().
		SetSort(newestFirst).
		SetSkip(page.Skip()).
		SetLimit(page.Take())
	properties, err := r.find(ctx, doc, opts)
	if err != nil {
		return nil, 0, err
	}

	total, err := r.collection.CountDocuments(ctx, doc)
	if err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

func (r *propertyMongoRepository) FindAll(ctx context.Context, filter query.PropertyFilter) ([]entities.Property, error) {
	doc, ok := propertyFilterDoc(filter)
	if !ok {
		return []entities.Property{}, nil
	}
	return r.find(ctx, doc, options.Find().SetSort(newestFirst))
}

func (r *propertyMongoRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]entities.Property, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []propertyDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	properties := make([]entities.Property, 0, len(docs))
	for _, d := range docs {
		properties = append(properties, d.entity())
	}
	return properties, nil
}

func (r *propertyMongoRepository) Update(ctx context.Context, property *entities.Property) error {
	doc, err := toPropertyDocument(property)
	if err != nil {
		return err
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": doc.ID}, bson.M{"$set": updateSet(doc)})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// updateSet lists the fields an update may change. The owner and creation
// time are never rewritten.
func updateSet(doc propertyDocument) bson.M {
	return bson.M{
		"title":        doc.Title,
		"description":  doc.Description,
		"price":        doc.Price,
		"propertyType": doc.PropertyType,
		"bedrooms":     doc.Bedrooms,
		"bathrooms":    doc.Bathrooms,
		"area":         doc.Area,
		"location":     doc.Location,
		"amenities":    doc.Amenities,
		"images":       doc.Images,
		"isAvailable":  doc.IsAvailable,
	}
}

func (r *propertyMongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.ErrNotFound
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func agentCountPipeline(agents []primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"agent": bson.M{"$in": agents}}}},
		{{Key: "$group", Value: bson.M{
			"_id":    "$agent",
			"total":  bson.M{"$sum": 1},
			"active": bson.M{"$sum": bson.M{"$cond": bson.A{"$isAvailable", 1, 0}}},
		}}},
	}
}

func (r *propertyMongoRepository) CountByAgents(ctx context.Context, agentIDs []string) (map[string]entities.AgentStats, error) {
	stats := make(map[string]entities.AgentStats, len(agentIDs))
	agents := make([]primitive.ObjectID, 0, len(agentIDs))
	for _, id := range agentIDs {
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			agents = append(agents, oid)
		}
	}
	if len(agents) == 0 {
		return stats, nil
	}

	cursor, err := r.collection.Aggregate(ctx, agentCountPipeline(agents))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Agent  primitive.ObjectID `bson:"_id"`
		Total  int64              `bson:"total"`
		Active int64              `bson:"active"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		stats[row.Agent.Hex()] = entities.AgentStats{ActiveProperties: row.Active, TotalProperties: row.Total}
	}
	return stats, nil
}
