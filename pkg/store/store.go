// Package store persists brand kit records.
//
// A [Record] is the kit's metadata plus a summary of the archive; the archive
// bytes themselves are not stored. [MemoryStore] serves the CLI and tests,
// [MongoStore] the API server.
package store

import (
	"context"

	"github.com/matzehuels/brandmark/pkg/errors"
	"github.com/matzehuels/brandmark/pkg/kit"
)

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 50

// ErrNotFound is returned when no record has the requested id.
var ErrNotFound = errors.New(errors.ErrCodeNotFound, "kit not found")

// Record describes one built kit.
type Record struct {
	kit.Metadata `bson:",inline"`

	FileName string   `json:"fileName" bson:"file_name"`
	Size     int      `json:"size" bson:"size"`
	Files    []string `json:"files" bson:"files"`
}

// NewRecord summarizes k.
func NewRecord(k *kit.Kit) Record {
	files := make([]string, len(k.Files))
	for i, f := range k.Files {
		files[i] = f.Name
	}
	return Record{
		Metadata: k.Metadata,
		FileName: k.FileName(),
		Size:     k.Size(),
		Files:    files,
	}
}

// Store saves and retrieves kit records. Implementations must be safe for
// concurrent use.
type Store interface {
	// Save inserts or replaces the record with r.ID.
	Save(ctx context.Context, r Record) error

	// Get returns the record with id, or ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]Record, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

func listLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
