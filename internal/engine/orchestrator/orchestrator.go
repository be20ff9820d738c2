// Package orchestrator implements the request-time staleness decision and
// the exclusive rebuild procedure for one asset namespace.
package orchestrator

import (
	"context"
	"os"
	"sync"
	"time"

	"go.trai.ch/stamp/internal/core/domain"
	"go.trai.ch/stamp/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// Deps are the collaborators of one orchestrator instance.
type Deps struct {
	Resolver      ports.IncludeResolver
	Snapshotter   ports.Snapshotter
	Fingerprinter ports.Fingerprinter
	Producer      ports.Producer
	Lock          ports.BuildLock
	// Store may be nil when persistence is disabled for the asset.
	Store  ports.StateStore
	Logger ports.Logger
	Tracer ports.Tracer
}

// Orchestrator owns the cache record of one asset namespace. The cheap
// path (mtime snapshot comparison) is lock-free and safe for unlimited
// concurrent callers; the expensive path is serialized in-process through
// singleflight and cross-process through the build lock.
type Orchestrator struct {
	asset domain.Asset
	deps  Deps

	mu          sync.RWMutex
	rec         domain.CacheRecord
	fingerprint string
	transition  domain.BuildState

	flight singleflight.Group
}

// New creates the orchestrator for an asset, creates its working
// directory, and seeds the cache record from the state store when
// persistence is enabled. A corrupt or unreadable state file is logged and
// discarded; the first request then treats the cache as fully stale.
func New(asset domain.Asset, deps Deps) (*Orchestrator, error) {
	if err := asset.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(asset.WorkDir, 0o750); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create working directory"), "asset", asset.Name)
	}

	o := &Orchestrator{asset: asset, deps: deps, transition: domain.StateNeedsCheck}

	if deps.Store != nil {
		rec, err := deps.Store.Restore()
		switch {
		case err != nil:
			deps.Logger.Warn("discarding persisted cache state for " + asset.Name + ": " + err.Error())
		case rec != nil:
			o.rec = *rec
		}
	}

	return o, nil
}

// Asset returns the namespace definition this orchestrator serves.
func (o *Orchestrator) Asset() domain.Asset {
	return o.asset
}

// EnsureFresh runs the request-time decision procedure and returns the
// current fingerprint. When the mtime snapshot is unchanged it returns
// without hashing, locking or rebuilding; otherwise it enters the
// expensive path under the build lock.
func (o *Orchestrator) EnsureFresh(ctx context.Context) (string, error) {
	files, err := o.deps.Resolver.Resolve(o.asset.Includes, o.asset.BaseDir)
	if err != nil {
		return "", err
	}

	snapshot := o.deps.Snapshotter.Snapshot(files)
	builtMtime := o.deps.Snapshotter.Mtime(o.asset.ArtifactPath())

	rec, fingerprint := o.cached()
	if fingerprint == "" {
		// A restart may have a persisted record but no in-memory
		// fingerprint yet; the fingerprint file is the durable copy.
		fingerprint = o.loadFingerprint()
	}

	if Decide(rec, fingerprint, snapshot, builtMtime, o.asset.MaxFingerprintAge, time.Now()) == domain.StateFresh {
		o.setTransition(domain.StateFresh)
		return fingerprint, nil
	}

	result, err, _ := o.flight.Do(o.asset.Name, func() (any, error) {
		return o.refresh(ctx, files, snapshot)
	})
	if err != nil {
		return "", err
	}
	current, _ := result.(string)
	return current, nil
}

// CurrentFingerprint returns the last known fingerprint, falling back to
// the fingerprint file. Empty when no build has completed yet.
func (o *Orchestrator) CurrentFingerprint() string {
	o.mu.RLock()
	fingerprint := o.fingerprint
	o.mu.RUnlock()
	if fingerprint != "" {
		return fingerprint
	}
	return o.loadFingerprint()
}

// AssetPathSuffix returns the public path segment for the current
// artifact: namespace, fingerprint and output extension.
func (o *Orchestrator) AssetPathSuffix() string {
	return o.asset.PathSuffix(o.CurrentFingerprint())
}

// LastTransition reports the outcome of the most recent EnsureFresh pass:
// StateFresh for a snapshot hit, StateFingerprintOnly when mtime churn
// resolved to unchanged content, StateRebuilding when the producer ran.
// StateNeedsCheck before the first pass completes.
func (o *Orchestrator) LastTransition() domain.BuildState {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.transition
}

func (o *Orchestrator) setTransition(transition domain.BuildState) {
	o.mu.Lock()
	o.transition = transition
	o.mu.Unlock()
}

// Stale reports whether the next EnsureFresh would take the expensive
// path. It never locks or rebuilds.
func (o *Orchestrator) Stale() (bool, error) {
	files, err := o.deps.Resolver.Resolve(o.asset.Includes, o.asset.BaseDir)
	if err != nil {
		return false, err
	}

	snapshot := o.deps.Snapshotter.Snapshot(files)
	builtMtime := o.deps.Snapshotter.Mtime(o.asset.ArtifactPath())

	rec, fingerprint := o.cached()
	if fingerprint == "" {
		fingerprint = o.loadFingerprint()
	}
	return Decide(rec, fingerprint, snapshot, builtMtime, o.asset.MaxFingerprintAge, time.Now()) != domain.StateFresh, nil
}

// Invalidate clears the mtime snapshot so the next request treats the
// cache as stale regardless of actual filesystem state. The cleared
// record is persisted so the invalidation survives a process restart.
func (o *Orchestrator) Invalidate() {
	o.mu.Lock()
	o.rec.Invalidate()
	rec := o.rec
	o.mu.Unlock()

	if o.deps.Store != nil {
		if err := o.deps.Store.Persist(rec); err != nil {
			o.deps.Logger.Warn("failed to persist invalidation for " + o.asset.Name + ": " + err.Error())
		}
	}
}

// Decide is the pure staleness decision over an explicit cache record.
// FRESH requires an unchanged include snapshot, an unchanged artifact
// mtime, a known fingerprint, and a recent-enough fingerprint computation.
func Decide(
	rec domain.CacheRecord,
	fingerprint, snapshot string,
	builtMtime int64,
	maxAge time.Duration,
	now time.Time,
) domain.BuildState {
	if !rec.Valid() || fingerprint == "" {
		return domain.StateNeedsCheck
	}
	if rec.IncludeMtimes != snapshot || rec.BuiltMtime != builtMtime {
		return domain.StateNeedsCheck
	}
	if !rec.FingerprintCurrent(maxAge, now) {
		return domain.StateNeedsCheck
	}
	return domain.StateFresh
}

// refresh is the expensive path: it holds the build lock across the
// rebuild decision, the producer invocation and the fingerprint save, and
// releases it on every exit path.
func (o *Orchestrator) refresh(ctx context.Context, files []string, snapshot string) (string, error) {
	if err := o.deps.Lock.Acquire(o.asset.LockWait); err != nil {
		return "", zerr.With(err, "asset", o.asset.Name)
	}
	defer func() {
		if err := o.deps.Lock.Release(); err != nil {
			o.deps.Logger.Error(err)
		}
	}()

	vertex := o.deps.Tracer.Vertex(ctx, o.asset.Name)

	current, err := o.deps.Fingerprinter.Fingerprint(files, o.asset.ArtifactPath(), o.asset.ChecksumLength)
	if err != nil {
		vertex.Complete(err)
		return "", err
	}
	saved, err := o.deps.Fingerprinter.Load(o.asset.FingerprintPath())
	if err != nil {
		vertex.Complete(err)
		return "", err
	}

	if saved != "" && saved == current {
		// Content did not change despite mtime churn, or another
		// process already rebuilt with identical content.
		vertex.Cached()
		o.commit(snapshot, current, domain.StateFingerprintOnly)
		return current, nil
	}

	if err := o.buildArtifact(files); err != nil {
		vertex.Complete(err)
		return "", err
	}

	// The artifact's own bytes are part of the hash, so a second pass is
	// unavoidable. It also makes concurrent rebuilds converge on one
	// fingerprint for identical content.
	current, err = o.deps.Fingerprinter.Fingerprint(files, o.asset.ArtifactPath(), o.asset.ChecksumLength)
	if err != nil {
		vertex.Complete(err)
		return "", err
	}
	if err := o.deps.Fingerprinter.Save(o.asset.FingerprintPath(), current); err != nil {
		vertex.Complete(err)
		return "", err
	}

	vertex.Complete(nil)
	o.commit(snapshot, current, domain.StateRebuilding)
	return current, nil
}

// buildArtifact invokes the producer against a temporary file and renames
// it into place, so a failed producer never leaves a half-written artifact
// behind.
func (o *Orchestrator) buildArtifact(files []string) error {
	tmp, err := os.CreateTemp(o.asset.WorkDir, o.asset.Output+".*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create artifact temp file"), "asset", o.asset.Name)
	}

	if err := o.deps.Producer.Write(tmp, files); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return zerr.With(zerr.Wrap(err, "producer failed"), "asset", o.asset.Name)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.With(zerr.Wrap(err, "failed to close artifact temp file"), "asset", o.asset.Name)
	}

	if err := os.Rename(tmp.Name(), o.asset.ArtifactPath()); err != nil {
		_ = os.Remove(tmp.Name())
		return zerr.With(zerr.Wrap(err, "failed to move artifact into place"), "asset", o.asset.Name)
	}
	return nil
}

// commit records a successful decision cycle: new snapshot, fresh
// artifact mtime, fingerprint timestamp, taken transition, and persisted
// state. Persistence failures are logged, never surfaced, since the state
// file is purely a warm-start optimization.
func (o *Orchestrator) commit(snapshot, fingerprint string, transition domain.BuildState) {
	rec := domain.CacheRecord{
		IncludeMtimes:   snapshot,
		BuiltMtime:      o.deps.Snapshotter.Mtime(o.asset.ArtifactPath()),
		FingerprintedAt: time.Now(),
	}

	o.mu.Lock()
	o.rec = rec
	o.fingerprint = fingerprint
	o.transition = transition
	o.mu.Unlock()

	if o.deps.Store != nil {
		if err := o.deps.Store.Persist(rec); err != nil {
			o.deps.Logger.Warn("failed to persist cache state for " + o.asset.Name + ": " + err.Error())
		}
	}
}

// cached returns a copy of the record and fingerprint under the read lock.
func (o *Orchestrator) cached() (domain.CacheRecord, string) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.rec, o.fingerprint
}

// loadFingerprint pulls the durable fingerprint into memory, tolerating a
// missing file.
func (o *Orchestrator) loadFingerprint() string {
	fingerprint, err := o.deps.Fingerprinter.Load(o.asset.FingerprintPath())
	if err != nil || fingerprint == "" {
		return ""
	}

	o.mu.Lock()
	o.fingerprint = fingerprint
	o.mu.Unlock()
	return fingerprint
}
