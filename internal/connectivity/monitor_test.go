package connectivity

import (
	"errors"
	"sync"
	"testing"

	"bloodlink/pkg/types"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestMonitor_StartsDisconnected(t *testing.T) {
	logger, _ := test.NewNullLogger()
	m := NewMonitor(logger)

	assert.False(t, m.Connected())
	assert.Equal(t, StateDisconnected, m.State())
	assert.Equal(t, types.StorageModeMemory, m.StorageMode())
	assert.True(t, m.ChangedAt().IsZero())
}

func TestMonitor_Transitions(t *testing.T) {
	logger, hook := test.NewNullLogger()
	m := NewMonitor(logger)

	m.MarkConnected()
	m.MarkConnected()
	assert.True(t, m.Connected())
	assert.Equal(t, types.StorageModeDurable, m.StorageMode())
	assert.False(t, m.ChangedAt().IsZero())

	m.MarkDisconnected(errors.New("connection reset by peer"))
	m.MarkDisconnected(nil)
	assert.False(t, m.Connected())
	assert.Equal(t, "disconnected", m.State().String())

	// one log line per transition, repeats are silent
	entries := hook.AllEntries()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, logrus.InfoLevel, entries[0].Level)
		assert.Equal(t, logrus.WarnLevel, entries[1].Level)
		assert.Contains(t, entries[1].Data, logrus.ErrorKey)
	}
}

func TestMonitor_ConcurrentFlips(t *testing.T) {
	logger, _ := test.NewNullLogger()
	m := NewMonitor(logger)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			m.MarkConnected()
		}()
		go func() {
			defer wg.Done()
			_ = m.Connected()
		}()
	}
	wg.Wait()

	assert.True(t, m.Connected())
}
