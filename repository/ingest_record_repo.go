package repository

import (
	"context"
	"log"
	"time"

	"github.com/reco-ai/knowledge-be/types"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type IngestRecordRepo interface {
	CreateRecord(ctx context.Context, record *types.IngestRecord) (string, error)
	UpdateRecord(ctx context.Context, id string, status string, chunks, images int) error
	ListRecords(ctx context.Context, status string, limit, offset int) ([]*types.IngestRecord, error)
}

type ingestRecordRepo struct {
	collection *mongo.Collection
}

func NewIngestRecordRepo(db *mongo.Database) IngestRecordRepo {
	// check if collection does not exist, create indexes once
	collectionNames, err := db.ListCollectionNames(context.Background(), bson.D{})
	if err != nil {
		panic(err)
	}
	collectionExists := false
	for _, name := range collectionNames {
		if name == "ingest_records" {
			collectionExists = true
			break
		}
	}
	collection := db.Collection("ingest_records")
	if !collectionExists {
		indexes := []mongo.IndexModel{
			{
				Keys: bson.D{
					{Key: "status", Value: 1},
				},
			},
			{
				Keys: bson.D{
					{Key: "created_at", Value: -1},
				},
			},
		}
		_, err = collection.Indexes().CreateMany(context.Background(), indexes)
		if err != nil {
			log.Printf("Error creating indexes: %v", err)
		}
	}

	return &ingestRecordRepo{
		collection: collection,
	}
}

func (r *ingestRecordRepo) CreateRecord(ctx context.Context, record *types.IngestRecord) (string, error) {
	now := time.Now().Unix()
	record.CreatedAt = now
	record.UpdatedAt = now
	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return "", err
	}
	if oid, ok := result.InsertedID.(bson.ObjectID); ok {
		return oid.Hex(), nil
	}
	return record.ID, nil
}

func (r *ingestRecordRepo) UpdateRecord(ctx context.Context, id string, status string, chunks, images int) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	update := bson.M{
		"$set": bson.M{
			"status":     status,
			"chunks":     chunks,
			"images":     images,
			"updated_at": time.Now().Unix(),
		},
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	return err
}

func (r *ingestRecordRepo) ListRecords(ctx context.Context, status string, limit, offset int) ([]*types.IngestRecord, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(int64(offset))
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []*types.IngestRecord
	for cursor.Next(ctx) {
		var record types.IngestRecord
		if err := cursor.Decode(&record); err != nil {
			return nil, err
		}
		records = append(records, &record)
	}
	return records, nil
}
