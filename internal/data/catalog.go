package data

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"business-analysis/internal/model"
)

// Dataset is a named, fully loaded record series.
type Dataset struct {
	ID     string
	File   string
	Series model.Series
}

// Catalog holds the datasets a server analyzes. Series are immutable once added;
// re-adding an ID replaces the series.
type Catalog struct {
	mu   sync.RWMutex
	sets map[string]*Dataset
}

func NewCatalog() *Catalog {
	return &Catalog{sets: make(map[string]*Dataset)}
}

func (c *Catalog) Add(id, file string, s model.Series) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets[id] = &Dataset{ID: id, File: file, Series: s}
}

// LoadFile reads a CSV or JSON file into the catalog under id.
func (c *Catalog) LoadFile(id, path string) error {
	s, err := LoadRecords(path)
	if err != nil {
		return fmt.Errorf("load dataset %s: %w", id, err)
	}
	c.Add(id, path, s)
	return nil
}

// LoadDir adds every *.csv and *.json file in dir, keyed by file name without extension.
func (c *Catalog) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".csv" && ext != ".json" {
			continue
		}
		id := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if err := c.LoadFile(id, filepath.Join(dir, e.Name())); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (c *Catalog) Get(id string) (*Dataset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.sets[id]
	return d, ok
}

// List returns datasets sorted by ID.
func (c *Catalog) List() []*Dataset {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Dataset, 0, len(c.sets))
	for _, d := range c.sets {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sets)
}
