package server

import (
	"time"

	"github.com/Veraticus/reviewlens/internal/table"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// Upload is a table held for follow-up requests.
type Upload struct {
	Table    *table.Table `json:"-"`
	Uploaded time.Time    `json:"uploaded"`
	ID       string       `json:"id"`
	Filename string       `json:"filename"`
	Schema   string       `json:"schema"`
	Rows     int          `json:"rows"`
}

// TableCache keeps uploaded tables in memory until they expire.
type TableCache struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewTableCache creates a cache whose entries live for ttl after their last
// store.
func NewTableCache(ttl time.Duration) *TableCache {
	cleanup := ttl / 2
	if cleanup <= 0 {
		cleanup = time.Minute
	}
	return &TableCache{
		cache: gocache.New(ttl, cleanup),
		ttl:   ttl,
	}
}

// Put stores t under a fresh identifier.
func (c *TableCache) Put(t *table.Table, filename, schema string) *Upload {
	u := &Upload{
		Table:    t,
		ID:       uuid.NewString(),
		Filename: filename,
		Schema:   schema,
		Rows:     t.Len(),
		Uploaded: time.Now().UTC(),
	}
	c.cache.Set(u.ID, u, c.ttl)
	return u
}

// Get retrieves an upload by identifier.
func (c *TableCache) Get(id string) (*Upload, bool) {
	if val, found := c.cache.Get(id); found {
		return val.(*Upload), true
	}
	return nil, false
}

// Delete removes an upload.
func (c *TableCache) Delete(id string) {
	c.cache.Delete(id)
}

// Len returns the number of live uploads.
func (c *TableCache) Len() int {
	return c.cache.ItemCount()
}
