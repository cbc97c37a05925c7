// Package index models the alphabetical author index: which profile slug
// belongs to which listing name, bucketed by last-name letter.
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// AuthorIndex maps letter bucket → listing name → profile slug.
type AuthorIndex map[string]map[string]string

// Entry is one author reference flattened out of the index.
type Entry struct {
	Letter string
	Name   string // listing name, "Last First" order
	Slug   string // profile URL slug
}

// Batch is an ordered group of authors processed together.
type Batch []Entry

// Load reads an author index JSON file.
func Load(path string) (AuthorIndex, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading author index %s: %w", path, err)
	}
	var idx AuthorIndex
	if err := json.Unmarshal(raw, &idx); err != nil {
		return nil, fmt.Errorf("parsing author index %s: %w", path, err)
	}
	return idx, nil
}

// Save writes the index as indented JSON, creating parent directories.
func (idx AuthorIndex) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}
	raw, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding author index: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing author index %s: %w", path, err)
	}
	return nil
}

// Add records one author under a letter bucket.
func (idx AuthorIndex) Add(letter, name, slug string) {
	bucket, ok := idx[letter]
	if !ok {
		bucket = map[string]string{}
		idx[letter] = bucket
	}
	bucket[name] = slug
}

// Len counts all authors across buckets.
func (idx AuthorIndex) Len() int {
	total := 0
	for _, bucket := range idx {
		total += len(bucket)
	}
	return total
}

// Entries flattens the index into a deterministic order: letters
// alphabetically, names alphabetically within each letter. Map iteration
// order must not leak into batch ordering.
func (idx AuthorIndex) Entries() []Entry {
	letters := make([]string, 0, len(idx))
	for letter := range idx {
		letters = append(letters, letter)
	}
	sort.Strings(letters)

	var entries []Entry
	for _, letter := range letters {
		bucket := idx[letter]
		names := make([]string, 0, len(bucket))
		for name := range bucket {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			entries = append(entries, Entry{Letter: letter, Name: name, Slug: bucket[name]})
		}
	}
	return entries
}

// Partition groups entries into fixed-size batches in order. maxBatches
// caps the result for partial runs; zero means unlimited.
func Partition(entries []Entry, batchSize, maxBatches int) []Batch {
	if batchSize <= 0 {
		batchSize = len(entries)
	}
	var batches []Batch
	for start := 0; start < len(entries); start += batchSize {
		if maxBatches > 0 && len(batches) >= maxBatches {
			break
		}
		end := start + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		batches = append(batches, Batch(entries[start:end]))
	}
	return batches
}
