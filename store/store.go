// Package store persists project snapshots keyed by project id.
package store

import (
	"context"

	"github.com/pkg/errors"

	"plan-measure/project"
)

// ErrNotFound is returned when no project exists for the requested id.
var ErrNotFound = errors.New("project not found")

// ErrInvalidID is returned for ids that cannot be used as keys.
var ErrInvalidID = errors.New("invalid project id")

// Store loads and saves whole project snapshots. Save always replaces the
// complete stored state of a project.
type Store interface {
	Load(ctx context.Context, id string) (*project.Snapshot, error)
	Save(ctx context.Context, s *project.Snapshot) error
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// Open returns the store for kind ("yaml" or "sqlite") rooted at dir.
func Open(kind, dir string) (Store, error) {
	switch kind {
	case "", "yaml":
		return NewFileStore(dir)
	case "sqlite":
		return NewSqliteStore(dir)
	}
	return nil, errors.Errorf("unknown store kind %q", kind)
}

func checkID(id string) error {
	if !project.ValidID(id) {
		return errors.Wrapf(ErrInvalidID, "%q", id)
	}
	return nil
}
