// CineSense - Sentiment-Aware Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinesense

package dataset

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cinesense/internal/logging"
)

const (
	snapshotPrefix = "dataset_v"
	snapshotSuffix = ".gob.gz"
)

// ErrNoSnapshot is returned when the store holds no snapshot.
var ErrNoSnapshot = errors.New("no dataset snapshot")

// SnapshotMetadata describes one stored snapshot.
type SnapshotMetadata struct {
	Version int       `json:"version"`
	Source  string    `json:"source"`
	SavedAt time.Time `json:"saved_at"`

	Movies  int `json:"movies"`
	Ratings int `json:"ratings"`

	// Checksum is the SHA-256 of the uncompressed gob payload.
	Checksum  string `json:"checksum"`
	SizeBytes int64  `json:"size_bytes"`
}

// snapshotFile is the on-disk format.
type snapshotFile struct {
	Metadata       SnapshotMetadata
	CompressedData []byte
}

// SnapshotStore keeps versioned dataset snapshots in a directory, one file
// per version named dataset_v{N}.gob.gz.
type SnapshotStore struct {
	dir string

	mu       sync.RWMutex
	versions []int // ascending
}

// NewSnapshotStore opens (creating if needed) dir and indexes existing snapshots.
func NewSnapshotStore(dir string) (*SnapshotStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil { //nolint:gosec // 0750 is acceptable for snapshot storage
		return nil, fmt.Errorf("create snapshot directory: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan snapshot directory: %w", err)
	}

	s := &SnapshotStore{dir: dir}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if v, ok := parseSnapshotFilename(e.Name()); ok {
			s.versions = append(s.versions, v)
		}
	}
	sort.Ints(s.versions)
	return s, nil
}

// parseSnapshotFilename extracts N from "dataset_v{N}.gob.gz".
func parseSnapshotFilename(name string) (int, bool) {
	if !strings.HasPrefix(name, snapshotPrefix) || !strings.HasSuffix(name, snapshotSuffix) {
		return 0, false
	}
	v, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, snapshotPrefix), snapshotSuffix))
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

func (s *SnapshotStore) path(version int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s%d%s", snapshotPrefix, version, snapshotSuffix))
}

// Latest returns the newest stored version.
func (s *SnapshotStore) Latest() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.versions) == 0 {
		return 0, false
	}
	return s.versions[len(s.versions)-1], true
}

// Versions returns the stored versions in ascending order.
func (s *SnapshotStore) Versions() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]int(nil), s.versions...)
}

// Save writes ds as the next version. The file is written to a temporary
// name and renamed so readers never see a partial snapshot.
func (s *SnapshotStore) Save(_ context.Context, ds *Dataset) (SnapshotMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(ds); err != nil {
		return SnapshotMetadata{}, fmt.Errorf("encode snapshot: %w", err)
	}
	hash := sha256.Sum256(raw.Bytes())

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw.Bytes()); err != nil {
		return SnapshotMetadata{}, fmt.Errorf("compress snapshot: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return SnapshotMetadata{}, fmt.Errorf("finalize compression: %w", err)
	}

	version := 1
	if n := len(s.versions); n > 0 {
		version = s.versions[n-1] + 1
	}
	meta := SnapshotMetadata{
		Version:   version,
		Source:    ds.Source,
		SavedAt:   time.Now().UTC(),
		Movies:    len(ds.Movies),
		Ratings:   len(ds.Ratings),
		Checksum:  hex.EncodeToString(hash[:]),
		SizeBytes: int64(compressed.Len()),
	}

	final := s.path(version)
	tmp := final + ".tmp"
	f, err := os.Create(tmp) //nolint:gosec // path is built from the store directory and a version number
	if err != nil {
		return SnapshotMetadata{}, fmt.Errorf("create snapshot file: %w", err)
	}
	if err := gob.NewEncoder(f).Encode(snapshotFile{Metadata: meta, CompressedData: compressed.Bytes()}); err != nil {
		_ = f.Close()      //nolint:errcheck // already returning the encode error
		_ = os.Remove(tmp) //nolint:errcheck // best-effort cleanup
		return SnapshotMetadata{}, fmt.Errorf("write snapshot file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp) //nolint:errcheck // best-effort cleanup
		return SnapshotMetadata{}, fmt.Errorf("close snapshot file: %w", err)
	}
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp) //nolint:errcheck // best-effort cleanup
		return SnapshotMetadata{}, fmt.Errorf("publish snapshot file: %w", err)
	}

	s.versions = append(s.versions, version)
	return meta, nil
}

// Load reads a snapshot by version; version 0 means the newest.
func (s *SnapshotStore) Load(_ context.Context, version int) (*Dataset, *SnapshotMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if version == 0 {
		if len(s.versions) == 0 {
			return nil, nil, ErrNoSnapshot
		}
		version = s.versions[len(s.versions)-1]
	}

	f, err := os.Open(s.path(version)) //nolint:gosec // path is built from the store directory and a version number
	if err != nil {
		return nil, nil, fmt.Errorf("open snapshot %d: %w", version, err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // read-only file

	var sf snapshotFile
	if err := gob.NewDecoder(f).Decode(&sf); err != nil {
		return nil, nil, fmt.Errorf("read snapshot %d: %w", version, err)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, nil, fmt.Errorf("decompress snapshot %d: %w", version, err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // in-memory reader

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, nil, fmt.Errorf("decompress snapshot %d: %w", version, err)
	}

	hash := sha256.Sum256(raw)
	if got := hex.EncodeToString(hash[:]); got != sf.Metadata.Checksum {
		return nil, nil, fmt.Errorf("snapshot %d checksum mismatch: expected %s, got %s", version, sf.Metadata.Checksum, got)
	}

	var ds Dataset
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&ds); err != nil {
		return nil, nil, fmt.Errorf("decode snapshot %d: %w", version, err)
	}
	return &ds, &sf.Metadata, nil
}

// Prune deletes all but the newest keep snapshots and returns how many
// were removed. keep below 1 is treated as 1.
func (s *SnapshotStore) Prune(_ context.Context, keep int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep < 1 {
		keep = 1
	}
	if len(s.versions) <= keep {
		return 0, nil
	}

	cut := len(s.versions) - keep
	removed := 0
	for _, v := range s.versions[:cut] {
		if err := os.Remove(s.path(v)); err != nil && !os.IsNotExist(err) {
			s.versions = s.versions[removed:]
			return removed, fmt.Errorf("delete snapshot %d: %w", v, err)
		}
		removed++
	}
	s.versions = append([]int(nil), s.versions[cut:]...)
	return removed, nil
}

// SnapshotLoader saves every successful load and serves the newest
// snapshot when the wrapped loader fails.
type SnapshotLoader struct {
	source Loader
	store  *SnapshotStore
	keep   int
	log    zerolog.Logger
}

// NewSnapshotLoader wraps source. keep is the number of snapshots retained.
func NewSnapshotLoader(source Loader, store *SnapshotStore, keep int) *SnapshotLoader {
	return &SnapshotLoader{
		source: source,
		store:  store,
		keep:   keep,
		log:    logging.WithComponent("dataset"),
	}
}

// Load tries the source first and falls back to the newest snapshot.
func (l *SnapshotLoader) Load(ctx context.Context) (*Dataset, error) {
	ds, err := l.source.Load(ctx)
	if err == nil {
		l.persist(ctx, ds)
		return ds, nil
	}
	if ctx.Err() != nil {
		return nil, err
	}

	snap, meta, snapErr := l.store.Load(ctx, 0)
	if snapErr != nil {
		return nil, fmt.Errorf("%w (snapshot fallback: %v)", err, snapErr)
	}

	l.log.Warn().Err(err).
		Int("snapshot_version", meta.Version).
		Time("snapshot_saved_at", meta.SavedAt).
		Msg("Dataset source unavailable, serving snapshot")

	snap.Source = SourceSnapshot
	return snap, nil
}

// persist saves ds and prunes old snapshots. Failures are logged only.
func (l *SnapshotLoader) persist(ctx context.Context, ds *Dataset) {
	meta, err := l.store.Save(ctx, ds)
	if err != nil {
		l.log.Warn().Err(err).Msg("Failed to save dataset snapshot")
		return
	}
	removed, err := l.store.Prune(ctx, l.keep)
	if err != nil {
		l.log.Warn().Err(err).Msg("Failed to prune dataset snapshots")
	}
	l.log.Debug().
		Int("version", meta.Version).
		Int64("size_bytes", meta.SizeBytes).
		Int("pruned", removed).
		Msg("Saved dataset snapshot")
}

// Close closes the wrapped loader.
func (l *SnapshotLoader) Close() error {
	return l.source.Close()
}
