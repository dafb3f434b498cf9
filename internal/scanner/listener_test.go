package scanner

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/home-inventory/internal/application/dto"
)

type sliceSource struct {
	events []KeyEvent
	closed atomic.Bool
}

func (s *sliceSource) ReadKey() (KeyEvent, error) {
	if len(s.events) == 0 {
		return KeyEvent{}, io.EOF
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev, nil
}

func (s *sliceSource) Close() error {
	s.closed.Store(true)
	return nil
}

type fakeSender struct {
	mu    sync.Mutex
	codes []string
	fail  string
}

func (f *fakeSender) StockIn(_ context.Context, barcode string) (*dto.StockInResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes = append(f.codes, barcode)
	if barcode == f.fail {
		return nil, errors.New("api caída")
	}
	return &dto.StockInResponse{Status: "ok", Barcode: barcode}, nil
}

func keys(start time.Time, codes ...uint16) []KeyEvent {
	out := make([]KeyEvent, 0, len(codes))
	for i, c := range codes {
		out = append(out, KeyEvent{Code: c, Time: start.Add(time.Duration(i) * 10 * time.Millisecond)})
	}
	return out
}

func TestListener_EnviaCadaCodigo(t *testing.T) {
	t0 := time.Unix(100, 0)
	events := append(keys(t0, 2, 3, keyEnter), keys(t0.Add(time.Second/2), 4, keyEnter)...)
	src := &sliceSource{events: events}
	sender := &fakeSender{fail: "12"}

	l := NewListener(src, NewDecoder(time.Second), sender, zerolog.Nop())
	err := l.Run(context.Background())

	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, []string{"12", "3"}, sender.codes)
	assert.Eventually(t, func() bool { return src.closed.Load() }, time.Second, 10*time.Millisecond)
}

func TestListener_ContextoCanceladoTerminaSinError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := NewListener(&sliceSource{}, NewDecoder(0), &fakeSender{}, zerolog.Nop())
	require.NoError(t, l.Run(ctx))
}
