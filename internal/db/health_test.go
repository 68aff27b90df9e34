package db

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

type scriptedPinger struct {
	mu      sync.Mutex
	results []error
	calls   atomic.Int32
}

func (p *scriptedPinger) Ping(context.Context) error {
	p.calls.Add(1)
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.results) == 0 {
		return nil
	}
	err := p.results[0]
	p.results = p.results[1:]
	return err
}

type recordingObserver struct {
	mu     sync.Mutex
	events []string
}

func (o *recordingObserver) MarkConnected() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, "up")
}

func (o *recordingObserver) MarkDisconnected(error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, "down")
}

func (o *recordingObserver) snapshot() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.events...)
}

func TestWatch_ReportsPingOutcomes(t *testing.T) {
	logger, _ := test.NewNullLogger()
	pinger := &scriptedPinger{results: []error{errors.New("connection refused"), nil}}
	observer := &recordingObserver{}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		Watch(ctx, pinger, observer, 5*time.Millisecond, logger)
		close(done)
	}()

	assert.Eventually(t, func() bool { return len(observer.snapshot()) >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	events := observer.snapshot()
	assert.Equal(t, []string{"down", "up"}, events[:2])
}

func TestWatch_StopsOnCancel(t *testing.T) {
	logger, _ := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		Watch(ctx, &scriptedPinger{}, &recordingObserver{}, time.Hour, logger)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
