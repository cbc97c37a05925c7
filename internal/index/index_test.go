package index

import (
	"path/filepath"
	"testing"
)

func testIndex() AuthorIndex {
	idx := AuthorIndex{}
	idx.Add("A", "ABBOTT George", "abbott-george")
	idx.Add("A", "ADAMS Liz", "adams-liz")
	idx.Add("B", "BENNETT Alan", "bennett-alan")
	idx.Add("B", "BOND Edward", "bond-edward")
	idx.Add("B", "BARKER Howard", "barker-howard")
	return idx
}

func TestEntriesDeterministicOrder(t *testing.T) {
	entries := testIndex().Entries()

	expected := []Entry{
		{"A", "ABBOTT George", "abbott-george"},
		{"A", "ADAMS Liz", "adams-liz"},
		{"B", "BARKER Howard", "barker-howard"},
		{"B", "BENNETT Alan", "bennett-alan"},
		{"B", "BOND Edward", "bond-edward"},
	}

	if len(entries) != len(expected) {
		t.Fatalf("got %d entries, want %d", len(entries), len(expected))
	}
	for i, want := range expected {
		if entries[i] != want {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], want)
		}
	}
}

func TestPartition(t *testing.T) {
	entries := testIndex().Entries()

	tests := []struct {
		name       string
		batchSize  int
		maxBatches int
		wantSizes  []int
	}{
		{"even split with remainder", 2, 0, []int{2, 2, 1}},
		{"single batch", 10, 0, []int{5}},
		{"max batches caps output", 2, 2, []int{2, 2}},
		{"batch of one", 1, 0, []int{1, 1, 1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batches := Partition(entries, tt.batchSize, tt.maxBatches)
			if len(batches) != len(tt.wantSizes) {
				t.Fatalf("got %d batches, want %d", len(batches), len(tt.wantSizes))
			}
			for i, size := range tt.wantSizes {
				if len(batches[i]) != size {
					t.Errorf("batch %d has %d entries, want %d", i, len(batches[i]), size)
				}
			}
		})
	}

	// batches must preserve index order end to end
	batches := Partition(entries, 2, 0)
	if batches[0][0].Name != "ABBOTT George" || batches[2][0].Name != "BOND Edward" {
		t.Errorf("partition reordered entries: %+v", batches)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authors", "index.json")
	idx := testIndex()

	if err := idx.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Len() != idx.Len() {
		t.Errorf("loaded %d entries, want %d", loaded.Len(), idx.Len())
	}
	if loaded["B"]["BOND Edward"] != "bond-edward" {
		t.Errorf("loaded index missing entry: %+v", loaded)
	}
}

func TestSlugFromHref(t *testing.T) {
	tests := []struct {
		href     string
		expected string
	}{
		{"bennett-alan.php", "bennett-alan"},
		{"/PlaywrightsB/bennett-alan.php", "bennett-alan"},
		{"https://www.doollee.com/PlaywrightsB/bennett-alan.php", "bennett-alan"},
		{"#top", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := slugFromHref(tt.href); got != tt.expected {
			t.Errorf("slugFromHref(%q) = %q, want %q", tt.href, got, tt.expected)
		}
	}
}
