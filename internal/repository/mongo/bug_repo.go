package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bug-tracker/internal/models"
	"bug-tracker/internal/repository"
)

const Collection = "bugs"

// documentValidationFailure is the server code for a $jsonSchema rejection.
const documentValidationFailure = 121

type BugRepo struct {
	coll *mongo.Collection
}

func NewBugRepo(db *mongo.Database) *BugRepo {
	return &BugRepo{coll: db.Collection(Collection)}
}

func (r *BugRepo) Find(ctx context.Context, f repository.BugFilter) ([]models.Bug, error) {
	k := repository.ParseSort(f.Sort)
	dir := 1
	if k.Desc {
		dir = -1
	}
	sort := bson.D{{Key: k.Field, Value: dir}}
	if k.Field != "createdAt" {
		sort = append(sort, bson.E{Key: "createdAt", Value: dir})
	}
	sort = append(sort, bson.E{Key: "_id", Value: dir})
	opts := options.Find().SetSort(sort)

	cur, err := r.coll.Find(ctx, filterDoc(f), opts)
	if err != nil {
		return nil, err
	}
	out := []models.Bug{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BugRepo) FindByID(ctx context.Context, id string) (*models.Bug, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var b models.Bug
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BugRepo) Insert(ctx context.Context, b *models.Bug) error {
	now := time.Now().UTC().Truncate(time.Millisecond)
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = b.CreatedAt
	if err := b.Validate(); err != nil {
		return err
	}
	b.ID = primitive.NewObjectID()
	if b.Tags == nil {
		b.Tags = []string{}
	}
	_, err := r.coll.InsertOne(ctx, b)
	return mapErr(err)
}

func (r *BugRepo) UpdateByID(ctx context.Context, id string, p models.BugPatch) (*models.Bug, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	set := bson.M{"updatedAt": time.Now().UTC().Truncate(time.Millisecond)}
	unset := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.Priority != nil {
		set["priority"] = *p.Priority
	}
	if p.AssignedTo != nil {
		if *p.AssignedTo == "" {
			unset["assignedTo"] = ""
		} else {
			set["assignedTo"] = *p.AssignedTo
		}
	}
	if p.Tags != nil {
		tags := *p.Tags
		if tags == nil {
			tags = []string{}
		}
		set["tags"] = tags
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	var b models.Bug
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, mapErr(err)
	}
	return &b, nil
}

func (r *BugRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// CountBy runs a $group over the whole collection.
func (r *BugRepo) CountBy(ctx context.Context, field string) ([]models.GroupCount, error) {
	if err := repository.CheckGroupField(field); err != nil {
		return nil, err
	}
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	out := []models.GroupCount{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BugRepo) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, nil)
}

// EnsureIndexes creates the indexes backing the list filters and default sort.
func (r *BugRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "priority", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	return err
}

func filterDoc(f repository.BugFilter) bson.M {
	m := bson.M{}
	if f.Status != "" {
		m["status"] = f.Status
	}
	if f.Priority != "" {
		m["priority"] = f.Priority
	}
	return m
}

func mapErr(err error) error {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == documentValidationFailure {
				return &models.SchemaError{Messages: []string{e.Message}}
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == documentValidationFailure {
		return &models.SchemaError{Messages: []string{ce.Message}}
	}
	return err
}
