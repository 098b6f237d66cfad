// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package keyimage tracks spent ring-signature key images (§4.4): every
// accepted commitment burns its signer's key image exactly once, and a second use of the same image is the chain's sole signal
// that one secret key tried to act twice in the same round.
package keyimage

import (
	"errors"
	"sync"

	"github.com/luxfi/bitcell/ringsig"
)

// ErrAlreadyUsed is returned by CheckAndMark when the key image has
// already been recorded — the caller's double-commit evidence trigger.
var ErrAlreadyUsed = errors.New("keyimage: key image already used")

// Store is the write-through persistence collaborator a Registry
// delegates to: CheckAndMark calls Put before recording an image and
// Remove calls Delete. Reads are answered from the in-memory map alone;
// the Registry never calls Has, so images present only in the Store are
// not seen by IsUsed or CheckAndMark.
type Store interface {
	Has(img ringsig.KeyImage) (bool, error)
	Put(img ringsig.KeyImage) error
	Delete(img ringsig.KeyImage) error
}

// Registry is a thread-safe set of spent key images, scoped to the
// round it was constructed for: a key image may only be used once per
// round. New starts from an empty set and loads nothing from the Store.
type Registry struct {
	lock  sync.RWMutex
	used  map[ringsig.KeyImage]struct{}
	store Store
}

// New returns an empty Registry. A nil store runs purely in memory, which
// is sufficient for tests and for ephemeral per-window registries that
// get rebuilt from chain state on restart.
func New(store Store) *Registry {
	return &Registry{used: make(map[ringsig.KeyImage]struct{}), store: store}
}

// IsUsed reports whether img has already been recorded.
func (r *Registry) IsUsed(img ringsig.KeyImage) bool {
	r.lock.RLock()
	defer r.lock.RUnlock()
	_, ok := r.used[img]
	return ok
}

// CheckAndMark atomically checks and records img, returning ErrAlreadyUsed
// if it was already present. This is the only safe way to spend a key
// image: a separate IsUsed-then-Put pair races under concurrent callers.
func (r *Registry) CheckAndMark(img ringsig.KeyImage) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.used[img]; ok {
		return ErrAlreadyUsed
	}
	if r.store != nil {
		if err := r.store.Put(img); err != nil {
			return err
		}
	}
	r.used[img] = struct{}{}
	return nil
}

// Remove un-spends img, used when a block carrying it is rolled back
// during reorg handling.
func (r *Registry) Remove(img ringsig.KeyImage) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.store != nil {
		if err := r.store.Delete(img); err != nil {
			return err
		}
	}
	delete(r.used, img)
	return nil
}

// Len reports how many key images are currently recorded.
func (r *Registry) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.used)
}

// Clear empties the registry, used when rolling a regional window forward
// and retiring the previous window's key-image set entirely.
func (r *Registry) Clear() {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.used = make(map[ringsig.KeyImage]struct{})
}

// Iter calls fn for every recorded key image. fn must not call back into
// the Registry: Iter holds the read lock for its entire duration.
func (r *Registry) Iter(fn func(ringsig.KeyImage)) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	for img := range r.used {
		fn(img)
	}
}
