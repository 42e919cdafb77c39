package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/kindred/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
const (
	BucketSettings = "settings"
	BucketLists    = "lists"
)

var buckets = []string{BucketSettings, BucketLists}

var _ domain.Cache = (*Cache)(nil)

// entry is the stored form of a cached value
type entry struct {
	StoredAt time.Time       `json:"stored_at"`
	TTL      time.Duration   `json:"ttl"`
	Payload  json.RawMessage `json:"payload"`
}

func (e entry) expired(now time.Time) bool {
	return e.TTL > 0 && now.Sub(e.StoredAt) >= e.TTL
}

// Cache implements domain.Cache using BoltDB, with entries expiring after
// their TTL. Reads are promoted to an in-memory map.
type Cache struct {
	db  *bolt.DB
	now func() time.Time

	mu  sync.RWMutex // protects mem
	mem map[string]entry
}

// Open opens the cache for serverURL under baseDir. An empty baseDir gives a
// memory-only cache.
func Open(baseDir, serverURL string) (*Cache, error) {
	c := &Cache{now: time.Now, mem: make(map[string]entry)}
	if baseDir == "" {
		return c, nil
	}

	dir := baseDir
	if serverURL != "" {
		dir = filepath.Join(baseDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := bolt.Open(filepath.Join(dir, "kindred.db"), 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	c.db = db
	return c, nil
}

// hashServerURL keeps caches of different servers apart
func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(strings.TrimSpace(serverURL)), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (c *Cache) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

func memKey(bucket, key string) string {
	return bucket + ":" + key
}

// Get decodes the entry at bucket/key into dest. Expired entries are
// treated as missing and dropped.
func (c *Cache) Get(bucket, key string, dest any) bool {
	now := c.now()
	mk := memKey(bucket, key)

	c.mu.RLock()
	e, ok := c.mem[mk]
	c.mu.RUnlock()

	if !ok {
		if c.db == nil {
			return false
		}
		var data []byte
		c.db.View(func(tx *bolt.Tx) error {
			b := tx.Bucket([]byte(bucket))
			if b == nil {
				return nil
			}
			if v := b.Get([]byte(key)); v != nil {
				data = make([]byte, len(v))
				copy(data, v)
			}
			return nil
		})
		if data == nil || json.Unmarshal(data, &e) != nil {
			return false
		}

		c.mu.Lock()
		c.mem[mk] = e
		c.mu.Unlock()
	}

	if e.expired(now) {
		c.Invalidate(bucket, key)
		return false
	}
	return json.Unmarshal(e.Payload, dest) == nil
}

// Set stores value at bucket/key for ttl (0 keeps it until invalidated)
func (c *Cache) Set(bucket, key string, value any, ttl time.Duration) error {
	if !knownBucket(bucket) {
		return fmt.Errorf("unknown cache bucket %q", bucket)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	e := entry{StoredAt: c.now(), TTL: ttl, Payload: payload}

	c.mu.Lock()
	c.mem[memKey(bucket, key)] = e
	c.mu.Unlock()

	if c.db == nil {
		return nil
	}

	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put([]byte(key), data)
	})
}

func (c *Cache) Invalidate(bucket, key string) {
	c.mu.Lock()
	delete(c.mem, memKey(bucket, key))
	c.mu.Unlock()

	if c.db == nil {
		return
	}
	c.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket([]byte(bucket)); b != nil {
			b.Delete([]byte(key))
		}
		return nil
	})
}

// InvalidatePrefix drops every key in bucket starting with prefix
func (c *Cache) InvalidatePrefix(bucket, prefix string) {
	c.mu.Lock()
	memPrefix := memKey(bucket, prefix)
	for k := range c.mem {
		if strings.HasPrefix(k, memPrefix) {
			delete(c.mem, k)
		}
	}
	c.mu.Unlock()

	if c.db == nil {
		return
	}
	c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucket))
		if b == nil {
			return nil
		}
		return deleteKeys(b, func(k []byte) bool { return strings.HasPrefix(string(k), prefix) })
	})
}

func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.mem = make(map[string]entry)
	c.mu.Unlock()

	if c.db == nil {
		return
	}
	c.db.Update(func(tx *bolt.Tx) error {
		for _, name := range buckets {
			if b := tx.Bucket([]byte(name)); b != nil {
				if err := deleteKeys(b, func([]byte) bool { return true }); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// deleteKeys removes matching keys. Keys are collected before any delete;
// bolt cursors skip entries when the bucket changes under them.
func deleteKeys(b *bolt.Bucket, match func(k []byte) bool) error {
	var keys [][]byte
	b.ForEach(func(k, _ []byte) error {
		if match(k) {
			keys = append(keys, append([]byte(nil), k...))
		}
		return nil
	})
	for _, k := range keys {
		if err := b.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

func knownBucket(name string) bool {
	return slices.Contains(buckets, name)
}
