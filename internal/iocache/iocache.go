// Package iocache persists the history of report runs.
package iocache

import (
	"sync"

	"github.com/dreamscape/testkit/internal/contract"
)

// HistoryStoreManager manages the HistoryStore instance.
type HistoryStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	history      contract.HistoryStore
}

var _ contract.HistoryManager = &HistoryStoreManager{} // Compile-time check

// GetHistoryStore returns the history store, or nil when history is disabled.
func (mgr *HistoryStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
