package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/gamevault/authcore/internal/domain/auth"
	"github.com/gamevault/authcore/internal/ports"
)

// mirror is the last successful read of the directory, kept so reads can
// degrade to stale data when the backend is down. Writes never go through
// the mirror.
type mirror struct {
	mu        sync.RWMutex
	records   map[string]auth.AdminRecord
	updatedAt time.Time
}

func newMirror() *mirror {
	return &mirror{records: make(map[string]auth.AdminRecord)}
}

func (m *mirror) replaceAll(records []auth.AdminRecord, at time.Time) {
	next := make(map[string]auth.AdminRecord, len(records))
	for _, rec := range records {
		next[rec.SteamID] = rec
	}
	m.mu.Lock()
	m.records = next
	m.updatedAt = at
	m.mu.Unlock()
}

func (m *mirror) put(rec auth.AdminRecord, at time.Time) {
	m.mu.Lock()
	m.records[rec.SteamID] = rec
	m.updatedAt = at
	m.mu.Unlock()
}

func (m *mirror) delete(steamID string, at time.Time) {
	m.mu.Lock()
	delete(m.records, steamID)
	m.updatedAt = at
	m.mu.Unlock()
}

func (m *mirror) get(steamID string) (auth.AdminRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[steamID]
	return rec, ok
}

func (m *mirror) snapshot() ([]auth.AdminRecord, time.Time) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	records := make([]auth.AdminRecord, 0, len(m.records))
	for _, rec := range m.records {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].SteamID < records[j].SteamID })
	return records, m.updatedAt
}

// DirectoryOptions groups dependencies for Directory.
type DirectoryOptions struct {
	Backend ports.DirectoryBackend
	// Seeds are operator-pinned admins. They answer role lookups before
	// the backend does and are inserted at bootstrap if absent.
	Seeds  []auth.SeedAdmin
	Logger *slog.Logger
	Now    func() time.Time
}

// Directory manages the admin list over an interchangeable backend, with a
// read-through mirror for availability during backend outages.
type Directory struct {
	backend ports.DirectoryBackend
	seeds   map[string]auth.Role
	mirror  *mirror
	logger  *slog.Logger
	now     func() time.Time
}

// NewDirectory constructs a Directory.
func NewDirectory(opts DirectoryOptions) *Directory {
	seeds := make(map[string]auth.Role, len(opts.Seeds))
	for _, seed := range opts.Seeds {
		// Last entry wins on duplicate IDs.
		seeds[seed.SteamID] = seed.Role
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Directory{
		backend: opts.Backend,
		seeds:   seeds,
		mirror:  newMirror(),
		logger:  logger,
		now:     now,
	}
}

// BackendName reports which backend serves writes.
func (d *Directory) BackendName() string { return d.backend.Name() }

// SeedRole reports the pinned role for steamID, if any.
func (d *Directory) SeedRole(steamID string) (auth.Role, bool) {
	role, ok := d.seeds[steamID]
	return role, ok
}

// Bootstrap warms the mirror and inserts missing seed admins. A backend
// outage is logged and tolerated; the process still comes up and serves
// from whatever state it has.
func (d *Directory) Bootstrap(ctx context.Context) error {
	if records, err := d.backend.List(ctx); err == nil {
		d.mirror.replaceAll(records, d.now())
	} else if auth.IsStorageUnavailable(err) {
		d.logger.Warn("directory backend unavailable at startup, serving stale",
			"backend", d.backend.Name(), "error", err)
	} else {
		return fmt.Errorf("load admin directory: %w", err)
	}

	for steamID, role := range d.seeds {
		if _, err := d.backend.Get(ctx, steamID); err == nil {
			continue
		} else if !errors.Is(err, auth.ErrNotFound) {
			d.logger.Warn("seed admin check failed", "steam_id", steamID, "error", err)
			continue
		}

		rec, err := d.backend.Add(ctx, auth.AdminRecord{
			SteamID:   steamID,
			StaffRole: role,
		})
		if err != nil {
			d.logger.Warn("seed admin insert failed", "steam_id", steamID, "error", err)
			continue
		}
		d.mirror.put(rec, d.now())
	}
	return nil
}

// ListResult is a directory read that may be served from the mirror.
type ListResult struct {
	Records []auth.AdminRecord
	Stale   bool
	StaleAt time.Time
}

// List returns all admins. When the backend is unavailable the last good
// snapshot is returned with Stale set; any other backend failure is
// surfaced as-is.
func (d *Directory) List(ctx context.Context) (ListResult, error) {
	records, err := d.backend.List(ctx)
	if err == nil {
		d.mirror.replaceAll(records, d.now())
		return ListResult{Records: records}, nil
	}
	if auth.IsStorageUnavailable(err) {
		snapshot, at := d.mirror.snapshot()
		d.logger.Warn("directory list degraded to mirror", "backend", d.backend.Name(), "error", err)
		return ListResult{Records: snapshot, Stale: true, StaleAt: at}, nil
	}
	return ListResult{}, err
}

// Get returns the record for steamID. The stale flag is set when the
// answer came from the mirror because the backend was unavailable; in
// that case a mirror miss reports the outage rather than absence.
func (d *Directory) Get(ctx context.Context, steamID string) (auth.AdminRecord, bool, error) {
	if err := auth.CheckSteamID(steamID); err != nil {
		return auth.AdminRecord{}, false, err
	}

	rec, err := d.backend.Get(ctx, steamID)
	if err == nil {
		d.mirror.put(rec, d.now())
		return rec, false, nil
	}
	if auth.IsStorageUnavailable(err) {
		if cached, ok := d.mirror.get(steamID); ok {
			return cached, true, nil
		}
		return auth.AdminRecord{}, true, err
	}
	return auth.AdminRecord{}, false, err
}

// Add inserts or updates an admin. Writes always hit the live backend.
func (d *Directory) Add(ctx context.Context, record auth.AdminRecord) (auth.AdminRecord, error) {
	if err := auth.CheckSteamID(record.SteamID); err != nil {
		return auth.AdminRecord{}, err
	}

	rec, err := d.backend.Add(ctx, record)
	if err != nil {
		return auth.AdminRecord{}, err
	}
	d.mirror.put(rec, d.now())
	return rec, nil
}

// Update applies a partial update to an existing admin.
func (d *Directory) Update(ctx context.Context, steamID string, patch auth.AdminRecordPatch) (auth.AdminRecord, error) {
	if err := auth.CheckSteamID(steamID); err != nil {
		return auth.AdminRecord{}, err
	}

	rec, err := d.backend.Update(ctx, steamID, patch)
	if err != nil {
		return auth.AdminRecord{}, err
	}
	d.mirror.put(rec, d.now())
	return rec, nil
}

// Remove deletes an admin, refusing to delete the last one. The count is
// taken from the live backend so a stale mirror can never authorize
// emptying the directory.
func (d *Directory) Remove(ctx context.Context, steamID string) error {
	if err := auth.CheckSteamID(steamID); err != nil {
		return err
	}

	n, err := d.backend.Count(ctx)
	if err != nil {
		return err
	}
	if n <= 1 {
		if _, err := d.backend.Get(ctx, steamID); err != nil {
			return err
		}
		return auth.ErrLastAdmin
	}

	if err := d.backend.Remove(ctx, steamID); err != nil {
		return err
	}
	d.mirror.delete(steamID, d.now())
	return nil
}
