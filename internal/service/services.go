package service

import (
	"github.com/keycapdesign/gradgo-app-sub000/internal/adapter"
	"github.com/keycapdesign/gradgo-app-sub000/internal/cache"
	"github.com/keycapdesign/gradgo-app-sub000/internal/config"
	"github.com/keycapdesign/gradgo-app-sub000/internal/logger"
	"github.com/keycapdesign/gradgo-app-sub000/internal/queue"
	"github.com/keycapdesign/gradgo-app-sub000/internal/store"
)

// Services bundles the agent's business logic layer.
type Services struct {
	// Mutations accepts gown operations from the control API.
	Mutations *MutationService
	// OfflineCache prefetches and answers event data reads.
	OfflineCache *OfflineCacheService
	// Sync drains the durable operation queue.
	Sync *SyncService
	// AutoSync reacts to connectivity transitions.
	AutoSync *AutoSyncController
	// Queue is the durable mutation queue shared by the services.
	Queue *queue.OperationQueue
}

// NewServices wires the full service graph on top of the storage layer,
// the server adapter, the session cache and the connectivity signal.
func NewServices(server adapter.ServerAdapter, storages *store.Storages, c cache.Cache, signal ConnectivitySignal, cfg config.AgentWorkers, log *logger.Logger) *Services {
	opQueue := queue.NewOperationQueue(storages.Queue, log)

	mutations := NewMutationService(server, storages, opQueue, c, signal, log)
	offlineCache := NewOfflineCacheService(server, storages, c, signal, log)
	sync := NewSyncService(server, storages, opQueue, c, mutations, signal, log)
	autoSync := NewAutoSyncController(signal, sync, offlineCache, offlineCache, opQueue, AutoSyncConfig{
		EventID:      cfg.EventID,
		AutoSync:     cfg.AutoSync,
		AutoPrefetch: cfg.AutoPrefetch,
	}, log)

	return &Services{
		Mutations:    mutations,
		OfflineCache: offlineCache,
		Sync:         sync,
		AutoSync:     autoSync,
		Queue:        opQueue,
	}
}
