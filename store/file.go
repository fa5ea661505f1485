package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"plan-measure/project"
)

const fileExt = ".yaml"

// FileStore keeps one YAML file per project in a directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create data dir %s", dir)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+fileExt)
}

func (s *FileStore) Load(_ context.Context, id string) (*project.Snapshot, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path(id))
	if os.IsNotExist(err) {
		return nil, errors.Wrapf(ErrNotFound, "%s", id)
	} else if err != nil {
		return nil, errors.Wrapf(err, "open project %s", id)
	}
	defer f.Close()

	snap, err := project.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "load project %s", id)
	}
	snap.ID = id
	return snap, nil
}

// Save writes to a temporary file and renames it over the previous version.
func (s *FileStore) Save(_ context.Context, snap *project.Snapshot) error {
	if err := checkID(snap.ID); err != nil {
		return err
	}
	snap.UpdatedAt = time.Now().UTC()

	tmp, err := os.CreateTemp(s.dir, snap.ID+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "save project %s", snap.ID)
	}
	defer os.Remove(tmp.Name())

	if err := project.Encode(tmp, snap); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "save project %s", snap.ID)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "save project %s", snap.ID)
	}
	return errors.Wrapf(os.Rename(tmp.Name(), s.path(snap.ID)), "save project %s", snap.ID)
}

func (s *FileStore) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s", s.dir)
	}
	var ids []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) {
			continue
		}
		if id := strings.TrimSuffix(name, fileExt); project.ValidID(id) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	err := os.Remove(s.path(id))
	if os.IsNotExist(err) {
		return errors.Wrapf(ErrNotFound, "%s", id)
	}
	return errors.Wrapf(err, "delete project %s", id)
}

func (s *FileStore) Close() error {
	return nil
}
