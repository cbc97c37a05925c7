package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/franz/play-archivist/internal/util"
)

// FileStore writes records as individual JSON files under the output
// directory, one subdirectory per record kind, with a manifest written on
// close. Filenames repeat deterministically, so re-running a scrape
// overwrites rather than duplicates.
type FileStore struct {
	authorsDir string
	playsDir   string
	written    map[string][]string
}

// OpenFiles prepares the output directory tree.
func OpenFiles(outputDir string) (*FileStore, error) {
	fs := &FileStore{
		authorsDir: filepath.Join(outputDir, CollectionAuthors),
		playsDir:   filepath.Join(outputDir, CollectionPlays),
		written:    map[string][]string{},
	}
	for _, dir := range []string{fs.authorsDir, fs.playsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	return fs, nil
}

// Ready verifies the output directories are writable.
func (f *FileStore) Ready(ctx context.Context) error {
	probe := filepath.Join(f.authorsDir, ".probe")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return fmt.Errorf("output directory not writable: %w", err)
	}
	return os.Remove(probe)
}

// WriteAuthor writes the author document as <name-slug>-<id>.json.
func (f *FileStore) WriteAuthor(ctx context.Context, id primitive.ObjectID, doc bson.M) error {
	slug := "author"
	if name, ok := doc["name"].(string); ok && name != "" {
		slug = util.Slugify(name, 32)
	}
	filename := fmt.Sprintf("%s-%s.json", slug, id.Hex())
	return f.write(CollectionAuthors, filepath.Join(f.authorsDir, filename), filename, doc)
}

// WritePlay writes the play document as <padded-id>-<title-slug>.json.
func (f *FileStore) WritePlay(ctx context.Context, playID string, doc bson.M) error {
	title, _ := doc["title"].(string)
	filename := PlayFilename(playID, title)
	return f.write(CollectionPlays, filepath.Join(f.playsDir, filename), filename, doc)
}

// PlayFilename derives a play's output filename: the play id zero-padded to
// six digits plus a slug of the title's first sixteen characters.
func PlayFilename(playID, title string) string {
	for len(playID) < 6 {
		playID = "0" + playID
	}
	return fmt.Sprintf("%s-%s.json", playID, util.Slugify(title, 16))
}

func (f *FileStore) write(kind, path, filename string, doc bson.M) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filename, err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	f.written[kind] = append(f.written[kind], filename)
	return nil
}

// Close writes a manifest listing everything the run produced.
func (f *FileStore) Close(ctx context.Context) error {
	manifest := bson.M{"generatedAt": time.Now().UTC().Format(time.RFC3339)}
	for kind, files := range f.written {
		sort.Strings(files)
		manifest[kind] = bson.M{"count": len(files), "files": files}
	}
	raw, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	path := filepath.Join(filepath.Dir(f.authorsDir), "manifest.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}
