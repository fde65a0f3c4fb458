// Package netmon probes backend reachability and publishes transitions
// between online and offline to interested subscribers.
package netmon

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/keycapdesign/gradgo-app-sub000/internal/logger"
)

// Pinger is the reachability probe, satisfied by the server adapter.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor polls the backend health endpoint on a fixed interval and
// keeps the latest verdict. State transitions are fanned out to every
// subscriber channel; steady states are not re-broadcast.
type Monitor struct {
	pinger   Pinger
	interval time.Duration
	log      *logger.Logger

	online atomic.Bool

	mu   sync.Mutex
	subs []chan bool

	stopOnce sync.Once
	stop     chan struct{}
	done     chan struct{}
}

func NewMonitor(pinger Pinger, interval time.Duration, log *logger.Logger) *Monitor {
	return &Monitor{
		pinger:   pinger,
		interval: interval,
		log:      &logger.Logger{Logger: log.With().Str("component", "netmon").Logger()},
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// IsOnline returns the last probe verdict. Before the first probe the
// monitor reports offline, so nothing mutates remotely on a cold start.
func (m *Monitor) IsOnline() bool { return m.online.Load() }

// Subscribe returns a channel receiving the new state on every
// transition. The channel is buffered; a slow subscriber misses
// intermediate flips but always observes the latest state eventually.
func (m *Monitor) Subscribe() <-chan bool {
	ch := make(chan bool, 1)
	m.mu.Lock()
	m.subs = append(m.subs, ch)
	m.mu.Unlock()
	return ch
}

// Run probes immediately, then on every tick, until the context is
// canceled or Stop is called.
func (m *Monitor) Run(ctx context.Context) {
	defer close(m.done)

	m.probe(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-m.stop:
			return
		case <-ticker.C:
			m.probe(ctx)
		}
	}
}

// Stop terminates Run and waits for it to exit.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
	<-m.done
}

// SetOnline force-sets the state, broadcasting if it changed. The sync
// service calls it when a real RPC succeeds or fails between probes.
func (m *Monitor) SetOnline(online bool) {
	if m.online.Swap(online) == online {
		return
	}
	if online {
		m.log.Info().Msg("backend reachable")
	} else {
		m.log.Warn().Msg("backend unreachable, entering offline mode")
	}
	m.broadcast(online)
}

func (m *Monitor) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, m.interval)
	defer cancel()

	err := m.pinger.Ping(probeCtx)
	m.SetOnline(err == nil)
}

func (m *Monitor) broadcast(online bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ch := range m.subs {
		// drain a stale value so the freshest state always lands
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- online:
		default:
		}
	}
}
