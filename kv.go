package libpro

import (
	"encoding/json"
	"sync"
)

// KV is the persistence boundary for both stores. Values are JSON blobs
// stored under versioned keys; the version suffix is part of the key and
// gets bumped when the shape of a stored value changes.
type KV interface {
	// Load decodes the value stored under key into into. A missing key is
	// not an error, it reports found == false.
	Load(key string, into interface{}) (found bool, err error)
	Save(key string, value interface{}) error
	Delete(key string) error
	Close()
}

// Storage keys, one per persisted value.
const (
	KeyMembers       = "members.v1"
	KeyCurrentMember = "currentMember.v1"
	KeyUploadedBooks = "uploadedBooks.v1"
	KeyTodayCount    = "todayDownloadCount.v1"
	KeyTodayDate     = "todayDownloadDate.v1"
	KeyTheme         = "themePreference.v1"
)

// MemKV keeps everything in process memory. Used by tests and as the
// fallback backend when no database is configured.
type MemKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemKV() *MemKV {
	return &MemKV{
		data: make(map[string][]byte),
	}
}

func (m *MemKV) Load(key string, into interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return false, err
	}
	return true, nil
}

func (m *MemKV) Save(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}

func (m *MemKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemKV) Close() {}
