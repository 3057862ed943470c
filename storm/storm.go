package storm

import (
	"path/filepath"

	"github.com/asdine/storm"
	"github.com/asdine/storm/codec/json"
)

// bucket all values live in; the schema version is part of each key.
const bucket = "libpro"

type stormKV struct {
	db *storm.DB
}

// New opens (or creates) the file backed store in dir.
func New(dir string) (*stormKV, error) {
	stormPath := filepath.Join(dir, "libpro.db")

	db, err := storm.Open(stormPath, storm.Codec(json.Codec))
	if err != nil {
		return nil, err
	}

	return &stormKV{
		db: db,
	}, nil
}

func (s *stormKV) Load(key string, into interface{}) (bool, error) {
	err := s.db.Get(bucket, key, into)
	if err == storm.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *stormKV) Save(key string, value interface{}) error {
	return s.db.Set(bucket, key, value)
}

func (s *stormKV) Delete(key string) error {
	err := s.db.Delete(bucket, key)
	if err == storm.ErrNotFound {
		return nil
	}
	return err
}

func (s *stormKV) Close() {
	s.db.Close()
}
