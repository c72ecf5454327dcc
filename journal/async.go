package journal

import "sync/atomic"

// Async decouples recording from the caller: writes are queued on a buffered
// channel and drained by a single goroutine, so a slow disk or database never
// stalls trade execution. If the queue is full the record is dropped and
// counted; the ledger is the source of truth, the journal is best effort.
type Async struct {
	inner   Recorder
	ops     chan op
	done    chan struct{}
	dropped atomic.Uint64
}

type op struct {
	trade *Trade
	snap  *Snapshot
}

const DefaultAsyncBuffer = 256

func NewAsync(inner Recorder, buffer int) *Async {
	if buffer <= 0 {
		buffer = DefaultAsyncBuffer
	}

	a := &Async{
		inner: inner,
		ops:   make(chan op, buffer),
		done:  make(chan struct{}),
	}
	go a.drain()
	return a
}

func (a *Async) drain() {
	defer close(a.done)
	for o := range a.ops {
		if o.trade != nil {
			_ = a.inner.RecordTrade(*o.trade)
		}
		if o.snap != nil {
			_ = a.inner.RecordSnapshot(*o.snap)
		}
	}
}

func (a *Async) RecordTrade(t Trade) error {
	select {
	case a.ops <- op{trade: &t}:
	default:
		a.dropped.Add(1)
	}
	return nil
}

func (a *Async) RecordSnapshot(s Snapshot) error {
	select {
	case a.ops <- op{snap: &s}:
	default:
		a.dropped.Add(1)
	}
	return nil
}

// Dropped reports how many records were discarded because the queue was full.
func (a *Async) Dropped() uint64 { return a.dropped.Load() }

// Close drains the queue, waits for the writer goroutine, and closes the
// underlying recorder. Records queued before Close are written.
func (a *Async) Close() error {
	close(a.ops)
	<-a.done
	return a.inner.Close()
}
