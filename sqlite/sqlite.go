package sqlite

import (
	"encoding/json"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type kvEntry struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value []byte `gorm:"column:value"`
}

type liteKV struct {
	db *gorm.DB
}

// New opens (or creates) the sqlite backed store in dir.
func New(dir string) (*liteKV, error) {
	path := filepath.Join(dir, "libpro.db")

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&kvEntry{}); err != nil {
		return nil, err
	}

	return &liteKV{
		db: db,
	}, nil
}

func (db *liteKV) Load(key string, into interface{}) (bool, error) {
	var entry kvEntry
	tx := db.db.Where("key = ?", key).First(&entry)
	if tx.Error == gorm.ErrRecordNotFound {
		return false, nil
	}
	if tx.Error != nil {
		return false, tx.Error
	}
	if err := json.Unmarshal(entry.Value, into); err != nil {
		return false, err
	}
	return true, nil
}

func (db *liteKV) Save(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	tx := db.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&kvEntry{
		Key:   key,
		Value: raw,
	})
	return tx.Error
}

func (db *liteKV) Delete(key string) error {
	tx := db.db.Where("key = ?", key).Delete(&kvEntry{})
	return tx.Error
}

func (db *liteKV) Close() {
	//noop, gorm removed it
}
