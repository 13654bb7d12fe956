package fulltext

import (
	"context"

	"github.com/beldeveloper/repo-keeper/model"
)

// Cursor is a lazy, restartable iterator over the entries of one partition.
type Cursor interface {
	Next(ctx context.Context) bool
	Entry() model.IndexEntry
	Err() error
}

// Partition is a fulltext index scoped to one target language; the empty
// language addresses the source partition.
type Partition interface {
	Language() string
	Entries(ctx context.Context) Cursor
	Remove(ctx context.Context, unitID uint64) error
	Optimize(ctx context.Context) error
}

// Index defines the fulltext index interface.
type Index interface {
	Partition(language string) Partition
	Store(ctx context.Context, u model.Unit) error
}
