package models

import (
	"fmt"
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/cespare/xxhash/v2"
	"sync"
)

// ClientSet counts distinct clients per endpoint. Only 32-bit hashes of the
// limiter key are stored, so addresses cannot be read back out.
type ClientSet struct {
	mu   sync.RWMutex
	sets map[string]*roaring.Bitmap
}

func NewClientSet() *ClientSet {
	return &ClientSet{sets: make(map[string]*roaring.Bitmap)}
}

func clientHash(key string) uint32 {
	h := xxhash.Sum64String(key)
	return uint32(h) ^ uint32(h>>32)
}

func (c *ClientSet) Add(endpoint, key string) {
	if key == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	bm, ok := c.sets[endpoint]
	if !ok {
		bm = roaring.New()
		c.sets[endpoint] = bm
	}
	bm.Add(clientHash(key))
}

func (c *ClientSet) Count(endpoint string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if bm, ok := c.sets[endpoint]; ok {
		return bm.GetCardinality()
	}
	return 0
}

// Counts returns the cardinality of every endpoint set.
func (c *ClientSet) Counts() map[string]uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make(map[string]uint64, len(c.sets))
	for k, bm := range c.sets {
		out[k] = bm.GetCardinality()
	}
	return out
}

// Total is the number of distinct hashes across all endpoints.
func (c *ClientSet) Total() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	bms := make([]*roaring.Bitmap, 0, len(c.sets))
	for _, bm := range c.sets {
		bms = append(bms, bm)
	}
	if len(bms) == 0 {
		return 0
	}
	return roaring.FastOr(bms...).GetCardinality()
}

// MarshalSets serializes each endpoint bitmap in the portable roaring format.
// RunOptimize rewrites containers in place, so this needs the write lock.
func (c *ClientSet) MarshalSets() (map[string][]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make(map[string][]byte, len(c.sets))
	for k, bm := range c.sets {
		bm.RunOptimize()
		data, err := bm.ToBytes()
		if err != nil {
			return nil, fmt.Errorf("marshal clients for %s: %w", k, err)
		}
		out[k] = data
	}
	return out, nil
}

// MergeSets unions serialized bitmaps into the current sets. A corrupt entry
// aborts the merge before anything is applied.
func (c *ClientSet) MergeSets(data map[string][]byte) error {
	decoded := make(map[string]*roaring.Bitmap, len(data))
	for k, raw := range data {
		bm := roaring.New()
		if err := bm.UnmarshalBinary(raw); err != nil {
			return fmt.Errorf("unmarshal clients for %s: %w", k, err)
		}
		decoded[k] = bm
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for k, bm := range decoded {
		if cur, ok := c.sets[k]; ok {
			cur.Or(bm)
			continue
		}
		c.sets[k] = bm
	}
	return nil
}
