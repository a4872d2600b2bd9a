package repo

import (
	"context"
	"errors"
	"fmt"

	dmn "github.com/beka-birhanu/vinom-mazegen/domain"
	"github.com/beka-birhanu/vinom-mazegen/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MazeRepo handles the persistence of completed mazes.
type MazeRepo struct {
	collection *mongo.Collection
}

var _ i.MazeRepo = &MazeRepo{}

// NewMazeRepo creates a new MazeRepo with the given MongoDB client, database name, and collection name.
func NewMazeRepo(client *mongo.Client, dbName, collectionName string) *MazeRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &MazeRepo{
		collection: collection,
	}
}

// Save inserts or replaces a maze record.
// A maze regenerated after a reset overwrites its previous layout.
func (m *MazeRepo) Save(ctx context.Context, record *dmn.MazeRecord) error {
	filter := bson.M{"_id": record.ID}
	opts := options.Replace().SetUpsert(true)
	if _, err := m.collection.ReplaceOne(ctx, filter, record, opts); err != nil {
		return fmt.Errorf("saving maze %s: %w", record.ID, err)
	}
	return nil
}

// ByID retrieves a maze record by its ID.
// Returns i.ErrMazeNotFound if no record exists.
func (m *MazeRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	filter := bson.M{"_id": id}
	var record dmn.MazeRecord
	if err := m.collection.FindOne(ctx, filter).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, i.ErrMazeNotFound
		}
		return nil, fmt.Errorf("loading maze %s: %w", id, err)
	}
	return &record, nil
}

// Delete removes a maze record. Missing records are ignored.
func (m *MazeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := m.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("deleting maze %s: %w", id, err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (m *MazeRepo) Recent(ctx context.Context, limit int64) ([]*dmn.MazeRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}}).SetLimit(limit)
	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("listing mazes: %w", err)
	}
	defer cursor.Close(ctx)

	var records []*dmn.MazeRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decoding mazes: %w", err)
	}
	return records, nil
}
