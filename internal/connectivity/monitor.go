// Package connectivity tracks whether the durable donor store is reachable.
package connectivity

import (
	"sync/atomic"
	"time"

	"bloodlink/pkg/types"

	"github.com/sirupsen/logrus"
)

type State int32

const (
	StateDisconnected State = iota
	StateConnected
)

func (s State) String() string {
	if s == StateConnected {
		return "connected"
	}
	return "disconnected"
}

// Monitor holds the process-wide connectivity flag. It starts disconnected
// and only changes when told to; reconnecting is someone else's job.
type Monitor struct {
	logger    logrus.FieldLogger
	connected atomic.Bool
	changedAt atomic.Int64
}

func NewMonitor(logger logrus.FieldLogger) *Monitor {
	return &Monitor{logger: logger}
}

func (m *Monitor) Connected() bool {
	return m.connected.Load()
}

func (m *Monitor) State() State {
	if m.Connected() {
		return StateConnected
	}
	return StateDisconnected
}

// StorageMode is the backing every store call is served from right now.
func (m *Monitor) StorageMode() types.StorageMode {
	if m.Connected() {
		return types.StorageModeDurable
	}
	return types.StorageModeMemory
}

// ChangedAt is the time of the last transition, zero if none happened yet.
func (m *Monitor) ChangedAt() time.Time {
	ns := m.changedAt.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

func (m *Monitor) MarkConnected() {
	if m.connected.CompareAndSwap(false, true) {
		m.changedAt.Store(time.Now().UnixNano())
		m.logger.Info("durable store connected")
	}
}

func (m *Monitor) MarkDisconnected(err error) {
	if m.connected.CompareAndSwap(true, false) {
		m.changedAt.Store(time.Now().UnixNano())
		entry := m.logger.WithField("storage_mode", types.StorageModeMemory)
		if err != nil {
			entry = entry.WithError(err)
		}
		entry.Warn("durable store disconnected, serving from memory")
	}
}
