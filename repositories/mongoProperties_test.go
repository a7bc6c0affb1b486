package repositories

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"rental-server/apperrors"
	"rental-server/entities"
	"rental-server/query"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPropertyFilterDoc(t *testing.T) {
	agent := primitive.NewObjectID()
	f := query.PropertyFilter{
		City:          "st. louis",
		PropertyType:  "house",
		MinPrice:      intPtr(500),
		MaxPrice:      intPtr(1500),
		MinBedrooms:   intPtr(3),
		AvailableOnly: true,
		AgentID:       agent.Hex(),
	}

	doc, ok := propertyFilterDoc(f)
	if !ok {
		t.Fatalf("expected filter to be usable")
	}
	want := bson.M{
		"isAvailable":   true,
		"agent":         agent,
		"location.city": bson.M{"$regex": `st\. louis`, "$options": "i"},
		"propertyType":  "house",
		"bedrooms":      bson.M{"$gte": 3},
		"price":         bson.M{"$gte": 500, "$lte": 1500},
	}
	if !reflect.DeepEqual(doc, want) {
		t.Errorf("got %v\nwant %v", doc, want)
	}
}

func TestPropertyFilterDocSingleBound(t *testing.T) {
	doc, ok := propertyFilterDoc(query.PropertyFilter{MaxPrice: intPtr(900)})
	if !ok {
		t.Fatalf("expected filter to be usable")
	}
	if !reflect.DeepEqual(doc, bson.M{"price": bson.M{"$lte": 900}}) {
		t.Errorf("unexpected doc %v", doc)
	}
}

func TestPropertyFilterDocBadAgent(t *testing.T) {
	if _, ok := propertyFilterDoc(query.PropertyFilter{AgentID: "not-hex"}); ok {
		t.Errorf("an invalid owner id cannot match anything")
	}
}

func TestPropertyDocumentRoundTrip(t *testing.T) {
	agent := primitive.NewObjectID()
	id := primitive.NewObjectID()
	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	p := &entities.Property{
		ID:           id.Hex(),
		Title:        "Loft",
		Price:        1200,
		PropertyType: "apartment",
		Bedrooms:     1,
		Location:     entities.Location{City: "Springfield"},
		Images:       []entities.Image{{URL: "u", Filename: "f"}},
		AgentID:      agent.Hex(),
		IsAvailable:  true,
		CreatedAt:    created,
	}

	doc, err := toPropertyDocument(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ID != id || doc.Agent != agent {
		t.Errorf("ids not carried over")
	}

	back := doc.entity()
	if back.ID != p.ID || back.AgentID != p.AgentID || back.Agent.ID != p.AgentID {
		t.Errorf("unexpected ids after round trip: %+v", back)
	}
	if back.Amenities == nil || len(back.Images) != 1 || back.Images[0].URL != "u" {
		t.Errorf("unexpected collections %+v %+v", back.Amenities, back.Images)
	}
	if !back.CreatedAt.Equal(created) || back.Location.City != "Springfield" {
		t.Errorf("fields lost in round trip: %+v", back)
	}
}

func TestEmptyCollectionsAreStoredAsArrays(t *testing.T) {
	p := &entities.Property{ID: primitive.NewObjectID().Hex(), AgentID: primitive.NewObjectID().Hex()}
	doc, err := toPropertyDocument(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Amenities == nil || doc.Images == nil {
		t.Fatalf("expected empty slices, got %#v %#v", doc.Amenities, doc.Images)
	}

	raw, err := bson.Marshal(updateSet(doc))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{"amenities", "images"} {
		if v := bson.Raw(raw).Lookup(key); v.Type != bson.TypeArray {
			t.Errorf("%s stored as %v, want array", key, v.Type)
		}
	}
	if _, err := bson.Raw(raw).LookupErr("agent"); err == nil {
		t.Errorf("update must not rewrite the owner")
	}
}

func TestToPropertyDocumentErrors(t *testing.T) {
	if _, err := toPropertyDocument(&entities.Property{AgentID: "nope"}); !errors.Is(err, apperrors.ErrValidation) {
		t.Errorf("expected validation error for bad owner, got %v", err)
	}
	agent := primitive.NewObjectID().Hex()
	if _, err := toPropertyDocument(&entities.Property{ID: "nope", AgentID: agent}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("expected not found for bad id, got %v", err)
	}
}

func TestAgentCountPipeline(t *testing.T) {
	agents := []primitive.ObjectID{primitive.NewObjectID()}
	p := agentCountPipeline(agents)
	if len(p) != 2 {
		t.Fatalf("expected match and group stages, got %d", len(p))
	}
	if p[0][0].Key != "$match" || p[1][0].Key != "$group" {
		t.Errorf("unexpected stages %v", p)
	}
	group := p[1][0].Value.(bson.M)
	if group["_id"] != "$agent" {
		t.Errorf("expected grouping by agent, got %v", group["_id"])
	}
	active := group["active"].(bson.M)["$sum"].(bson.M)["$cond"].(bson.A)
	if active[0] != "$isAvailable" {
		t.Errorf("active count must follow availability, got %v", active)
	}
}
