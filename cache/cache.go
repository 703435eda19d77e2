// Package cache keeps per-LAP sightings in a JSON file.
package cache

import (
	"fmt"
	"io/ioutil"
	"os"
	"sort"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/rigado/btbb"
)

type sightingCache struct {
	filename string
	lock     sync.RWMutex
}

// New returns a cache backed by filename. The file is created on the
// first Store.
func New(filename string) btbb.SightingCache {
	return &sightingCache{filename: filename}
}

func key(lap uint32) string {
	return fmt.Sprintf("%06x", lap)
}

// Store merges s into the entry for its LAP.
func (sc *sightingCache) Store(s btbb.Sighting) error {
	sc.lock.Lock()
	defer sc.lock.Unlock()

	cache, err := sc.loadExisting()
	if err != nil {
		return err
	}

	cur, ok := cache[key(s.LAP)]
	if ok {
		cur.Merge(s)
	} else {
		cur = s
	}
	cache[key(s.LAP)] = cur

	return sc.storeCache(cache)
}

func (sc *sightingCache) Load(lap uint32) (btbb.Sighting, error) {
	sc.lock.RLock()
	defer sc.lock.RUnlock()

	cache, err := sc.loadExisting()
	if err != nil {
		return btbb.Sighting{}, err
	}

	s, ok := cache[key(lap)]
	if !ok {
		return btbb.Sighting{}, fmt.Errorf("lap %s not found in cache", key(lap))
	}
	return s, nil
}

// All returns every sighting ordered by LAP.
func (sc *sightingCache) All() ([]btbb.Sighting, error) {
	sc.lock.RLock()
	defer sc.lock.RUnlock()

	cache, err := sc.loadExisting()
	if err != nil {
		return nil, err
	}

	out := make([]btbb.Sighting, 0, len(cache))
	for _, s := range cache {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LAP < out[j].LAP })
	return out, nil
}

func (sc *sightingCache) Clear() error {
	sc.lock.Lock()
	defer sc.lock.Unlock()

	err := os.Remove(sc.filename)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (sc *sightingCache) loadExisting() (map[string]btbb.Sighting, error) {
	_, err := os.Stat(sc.filename)
	if os.IsNotExist(err) {
		return map[string]btbb.Sighting{}, nil
	}

	in, err := ioutil.ReadFile(sc.filename)
	if err != nil {
		return nil, err
	}

	var cache map[string]btbb.Sighting
	if err := jsoniter.Unmarshal(in, &cache); err != nil {
		return nil, errors.Wrapf(err, "decode %s", sc.filename)
	}
	if cache == nil {
		cache = map[string]btbb.Sighting{}
	}
	return cache, nil
}

func (sc *sightingCache) storeCache(cache map[string]btbb.Sighting) error {
	out, err := jsoniter.Marshal(cache)
	if err != nil {
		return err
	}

	return ioutil.WriteFile(sc.filename, out, 0644)
}
