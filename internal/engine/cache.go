package engine

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/jsrustad/stylefix/internal/config"
	"github.com/jsrustad/stylefix/internal/diag"
	"github.com/jsrustad/stylefix/internal/rules"
	"github.com/jsrustad/stylefix/internal/source"
)

// Bump when the payload layout changes so stale entries self-invalidate.
const cacheSchemaVersion uint16 = 1

// Digest is a 256-bit cache key, compatible with source.File.Hash.
type Digest [32]byte

// Cache stores per-file scan results on disk, keyed by a digest of the
// file content plus the scan configuration. A nil *Cache is valid and
// disables caching. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

type cachedDiag struct {
	Severity uint8
	Code     uint16
	Start    uint32
	End      uint32
	Message  string
}

type cachePayload struct {
	Schema uint16
	Diags  []cachedDiag
}

// Open initializes the cache at the standard per-user location, honoring
// XDG_CACHE_HOME.
func Open(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenAt(filepath.Join(base, app))
}

// OpenAt initializes the cache rooted at dir.
func OpenAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "scan", hex.EncodeToString(key[:])+".mp")
}

// runFingerprint digests everything besides file content that can change
// a scan's outcome: the schema, the enabled rules, and the format settings.
func runFingerprint(cfg *config.Config, checked []rules.Rule) Digest {
	h := sha256.New()
	var schema [2]byte
	binary.LittleEndian.PutUint16(schema[:], cacheSchemaVersion)
	h.Write(schema[:])

	ids := make([]string, len(checked))
	for i, r := range checked {
		ids[i] = r.ID()
	}
	sort.Strings(ids)
	for _, id := range ids {
		h.Write([]byte(id))
		h.Write([]byte{0})
	}

	s := cfg.Settings()
	var indent [4]byte
	binary.LittleEndian.PutUint32(indent[:], uint32(s.IndentSize))
	h.Write(indent[:])
	if s.UseTabs {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	h.Write([]byte(s.DefaultEOL))

	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// fileKey combines a file content hash with the run fingerprint.
func fileKey(content [32]byte, fingerprint Digest) Digest {
	h := sha256.New()
	h.Write(content[:])
	h.Write(fingerprint[:])
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// lookup returns the cached diagnostics for key, rebinding spans to the
// current FileID. Decode failures are treated as misses.
func (c *Cache) lookup(key Digest, file source.FileID) ([]diag.Diagnostic, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return nil, false
	}
	defer f.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false
	}

	diags := make([]diag.Diagnostic, len(payload.Diags))
	for i, d := range payload.Diags {
		diags[i] = diag.Diagnostic{
			Severity: diag.Severity(d.Severity),
			Code:     diag.Code(d.Code),
			Message:  d.Message,
			Primary:  source.Span{File: file, Start: d.Start, End: d.End},
		}
	}
	return diags, true
}

// store writes the diagnostics for key atomically (temp file + rename).
// Write failures are swallowed: a broken cache must never fail a scan.
func (c *Cache) store(key Digest, diags []diag.Diagnostic) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return
	}
	defer os.Remove(f.Name())

	payload := cachePayload{
		Schema: cacheSchemaVersion,
		Diags:  make([]cachedDiag, len(diags)),
	}
	for i, d := range diags {
		payload.Diags[i] = cachedDiag{
			Severity: uint8(d.Severity),
			Code:     uint16(d.Code),
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		}
	}
	if err := msgpack.NewEncoder(f).Encode(&payload); err != nil {
		f.Close()
		return
	}
	if err := f.Close(); err != nil {
		return
	}
	_ = os.Rename(f.Name(), p)
}

// DropAll discards every cache entry.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
