package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/franz/play-archivist/internal/util"
)

// MongoStore is the document-database backend. Authors upsert by generated
// id, plays by their source-site id.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// OpenMongo connects and pings the database.
func OpenMongo(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	if uri == "" || dbName == "" {
		return nil, fmt.Errorf("mongo URI and database name are required")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}
	store := &MongoStore{client: client, db: client.Database(dbName)}
	if err := store.Ready(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	util.InfoLog("connected to mongodb database %s", dbName)
	return store, nil
}

// Ready pings the deployment.
func (m *MongoStore) Ready(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := m.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("pinging mongodb: %w", err)
	}
	return nil
}

// EnsureCollections creates the authors/plays collections and the unique
// play-id index. Idempotent; used by the init-db command.
func (m *MongoStore) EnsureCollections(ctx context.Context) error {
	for _, name := range []string{CollectionAuthors, CollectionPlays} {
		if err := m.db.CreateCollection(ctx, name); err != nil {
			var cmdErr mongo.CommandError
			if errors.As(err, &cmdErr) && cmdErr.Name == "NamespaceExists" {
				continue
			}
			return fmt.Errorf("creating collection %s: %w", name, err)
		}
	}

	_, err := m.db.Collection(CollectionPlays).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "playId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating playId index: %w", err)
	}
	return nil
}

// WriteAuthor upserts an author document keyed by its generated id.
func (m *MongoStore) WriteAuthor(ctx context.Context, id primitive.ObjectID, doc bson.M) error {
	return m.upsert(ctx, CollectionAuthors, bson.M{"_id": id}, doc, bson.M{"_id": id})
}

// WritePlay upserts a play document keyed by the source-site play id.
func (m *MongoStore) WritePlay(ctx context.Context, playID string, doc bson.M) error {
	return m.upsert(ctx, CollectionPlays, bson.M{"playId": playID}, doc, bson.M{"_id": primitive.NewObjectID()})
}

// upsert applies the shared contract: flatten the document into dotted
// paths, refresh updatedAt on every write, set _id and createdAt only on
// insert.
func (m *MongoStore) upsert(ctx context.Context, collection string, filter, doc, onInsert bson.M) error {
	now := time.Now().UTC()

	set := Flatten(doc)
	delete(set, "_id")
	set["metadata.updatedAt"] = now

	insertOnly := bson.M{"metadata.createdAt": now}
	for k, v := range onInsert {
		insertOnly[k] = v
	}

	opts := options.FindOneAndUpdate().SetUpsert(true)
	res := m.db.Collection(collection).FindOneAndUpdate(ctx, filter, bson.M{
		"$set":         set,
		"$setOnInsert": insertOnly,
	}, opts)

	if err := res.Err(); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	return nil
}

// Close disconnects the client.
func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// IsNetworkError reports whether a write failure looks like a connectivity
// problem rather than a rejected document; the stats track the two
// separately.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return mongo.IsTimeout(err) || mongo.IsNetworkError(err) || errors.Is(err, context.DeadlineExceeded)
}
