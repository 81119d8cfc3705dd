package outline

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when cachePayload format changes.
const cacheSchemaVersion uint16 = 1

// Digest identifies one document's content.
type Digest [sha256.Size]byte

// DigestOf hashes document text for cache keying.
func DigestOf(text string) Digest {
	return sha256.Sum256([]byte(text))
}

// Cache stores built outlines on disk keyed by content digest, so repeated
// CLI invocations over unchanged files skip the scan. The LSP path never
// uses it; each server-side build stays a pure function of document text.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema  uint16
	Symbols []cachedSymbol
}

type cachedSymbol struct {
	Name      string
	Kind      uint8
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
	Children  []cachedSymbol
}

// OpenCache initializes and returns a disk cache at the standard location.
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "outline")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Put serializes and writes a symbol forest to the disk cache. The write is
// atomic: encode to a temp file, then rename into place.
func (c *Cache) Put(key Digest, forest []*Symbol) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload := cachePayload{
		Schema:  cacheSchemaVersion,
		Symbols: packSymbols(forest),
	}
	p := c.pathFor(key)
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, p)
}

// Get reads a cached forest. The second result is false on a miss or when
// the on-disk schema no longer matches.
func (c *Cache) Get(key Digest) ([]*Symbol, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()
	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false, nil
	}
	return unpackSymbols(payload.Symbols), true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.RemoveAll(c.dir); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func packSymbols(forest []*Symbol) []cachedSymbol {
	if len(forest) == 0 {
		return nil
	}
	out := make([]cachedSymbol, 0, len(forest))
	for _, sym := range forest {
		out = append(out, cachedSymbol{
			Name:      sym.Name,
			Kind:      uint8(sym.Kind),
			StartLine: sym.Start.Line,
			StartCol:  sym.Start.Col,
			EndLine:   sym.End.Line,
			EndCol:    sym.End.Col,
			Children:  packSymbols(sym.Children),
		})
	}
	return out
}

func unpackSymbols(packed []cachedSymbol) []*Symbol {
	if len(packed) == 0 {
		return nil
	}
	out := make([]*Symbol, 0, len(packed))
	for _, cs := range packed {
		out = append(out, &Symbol{
			Name:     cs.Name,
			Kind:     Kind(cs.Kind),
			Start:    Position{Line: cs.StartLine, Col: cs.StartCol},
			End:      Position{Line: cs.EndLine, Col: cs.EndCol},
			Children: unpackSymbols(cs.Children),
		})
	}
	return out
}
