package whisper

import (
	"fmt"
	"strings"
	"sync"
)

// Tiers lists the model tiers from smallest to largest.
var Tiers = []string{"tiny", "base", "small", "medium", "large"}

// Model is a resolved, validated model handle.
type Model struct {
	// Name is the model tier name.
	Name string
	// Tier is the position of the model in Tiers.
	Tier int
	// Binary is the absolute path of the whisper executable.
	Binary string
	// Dir is the download root for weights, or empty for the tool default.
	Dir string
}

// TierIndex returns the position of name in Tiers, or -1.
func TierIndex(name string) int {
	for i, t := range Tiers {
		if t == name {
			return i
		}
	}
	return -1
}

type modelKey struct {
	name   string
	binary string
	dir    string
}

// modelCache is populated once per key and never invalidated.
type modelCache struct {
	mu     sync.RWMutex
	models map[modelKey]*Model
}

var models = &modelCache{models: make(map[modelKey]*Model)}

func (c *modelCache) load(name, binary, dir string, lookPath func(string) (string, error)) (*Model, error) {
	key := modelKey{name: name, binary: binary, dir: dir}

	c.mu.RLock()
	m, ok := c.models[key]
	c.mu.RUnlock()
	if ok {
		return m, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if m, ok := c.models[key]; ok {
		return m, nil
	}

	tier := TierIndex(name)
	if tier < 0 {
		return nil, fmt.Errorf("invalid model %q (want one of %s)", name, strings.Join(Tiers, ", "))
	}
	path, err := lookPath(binary)
	if err != nil {
		return nil, fmt.Errorf("whisper binary %q: %w", binary, err)
	}
	m = &Model{Name: name, Tier: tier, Binary: path, Dir: dir}
	c.models[key] = m
	return m, nil
}

func (c *modelCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.models)
}
