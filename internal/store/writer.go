package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names shared by every backend.
const (
	CollectionAuthors = "authors"
	CollectionPlays   = "plays"
)

// Writer persists canonical author and play documents. All backends honor
// the same upsert contract: repeated writes of the same key preserve the
// original createdAt and refresh updatedAt.
type Writer interface {
	WriteAuthor(ctx context.Context, id primitive.ObjectID, doc bson.M) error
	WritePlay(ctx context.Context, playID string, doc bson.M) error
	Ready(ctx context.Context) error
	Close(ctx context.Context) error
}

// WriteContext carries the identifying details attached to write failures so
// a reviewer can locate the record without replaying the run.
type WriteContext struct {
	ID        string
	Name      string
	SourceURL string
	ScrapedAt time.Time
}

// WrapWriteError formats a write failure with a multi-line context block.
func WrapWriteError(err error, kind string, wc WriteContext) error {
	var b strings.Builder
	fmt.Fprintf(&b, "writing %s failed: %v", kind, err)
	fmt.Fprintf(&b, "\n  id:        %s", wc.ID)
	fmt.Fprintf(&b, "\n  name:      %s", wc.Name)
	fmt.Fprintf(&b, "\n  sourceUrl: %s", wc.SourceURL)
	if !wc.ScrapedAt.IsZero() {
		fmt.Fprintf(&b, "\n  scrapedAt: %s", wc.ScrapedAt.Format(time.RFC3339))
	}
	return fmt.Errorf("%s", b.String())
}

// Flatten converts a nested document into dotted-path assignments so a $set
// cannot clobber sibling fields the update does not mention (notably
// metadata.createdAt).
func Flatten(doc bson.M) bson.M {
	flat := bson.M{}
	flattenInto(flat, "", doc)
	return flat
}

func flattenInto(flat bson.M, prefix string, doc bson.M) {
	for key, value := range doc {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		switch v := value.(type) {
		case bson.M:
			flattenInto(flat, path, v)
		case map[string]interface{}:
			flattenInto(flat, path, bson.M(v))
		default:
			flat[path] = v
		}
	}
}
