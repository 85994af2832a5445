package store

import (
	"context"
	stderrors "errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/mosaicflow/pkg/errors"
	"github.com/matzehuels/mosaicflow/pkg/masonry"
)

// DefaultCollection is the collection snapshots are stored in.
const DefaultCollection = "snapshots"

// MongoStore keeps snapshots as documents keyed by _id.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and uses the snapshots collection of
// database db.
func NewMongoStore(ctx context.Context, uri, db string) (*MongoStore, error) {
	if db == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo database name is required")
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongo")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(db).Collection(DefaultCollection),
	}, nil
}

// Ping checks that the server is reachable.
func (s *MongoStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "ping mongo")
	}
	return nil
}

// Save implements Store.
func (s *MongoStore) Save(ctx context.Context, snap *masonry.Snapshot) (string, error) {
	if err := assignID(snap); err != nil {
		return "", err
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, bson.M{"_id": snap.ID}, snap, opts); err != nil {
		return "", errors.Wrap(errors.ErrCodeStorage, err, "save snapshot")
	}
	return snap.ID, nil
}

// Load implements Store.
func (s *MongoStore) Load(ctx context.Context, id string) (*masonry.Snapshot, error) {
	if err := errors.ValidateSnapshotID(id); err != nil {
		return nil, err
	}
	var snap masonry.Snapshot
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&snap)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "load snapshot")
	}
	return &snap, nil
}

// Delete implements Store.
func (s *MongoStore) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateSnapshotID(id); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete snapshot")
	}
	return nil
}

// List implements Store.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list snapshots")
	}
	var docs []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list snapshots")
	}
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
