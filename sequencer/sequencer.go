// Copyright (c) 2026 The VeriFund developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package sequencer

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/adysingh5711/VeriFund/builtin/reverts"
	"github.com/adysingh5711/VeriFund/co"
	"github.com/adysingh5711/VeriFund/eventdb"
	"github.com/adysingh5711/VeriFund/kv"
	"github.com/adysingh5711/VeriFund/log"
	"github.com/adysingh5711/VeriFund/metrics"
	"github.com/adysingh5711/VeriFund/runtime"
	"github.com/adysingh5711/VeriFund/state"
	"github.com/adysingh5711/VeriFund/tx"
	"github.com/adysingh5711/VeriFund/vf"
)

var (
	logger = log.WithContext("pkg", "sequencer")

	metricQueueSize = metrics.LazyLoadGauge("sequencer_queue_size")

	// ErrStopped is returned by Submit once the sequencer stopped.
	ErrStopped = errors.New("sequencer stopped")
)

// Clock returns the wall clock time in seconds.
type Clock func() uint64

// SystemClock reads time.Now.
func SystemClock() uint64 {
	return uint64(time.Now().Unix())
}

// Options of the sequencer.
type Options struct {
	QueueSize int
	Clock     Clock
}

type request struct {
	tx   *tx.Transaction
	done chan result
}

// EventIndex receives the events of applied transactions, in log order.
type EventIndex interface {
	Insert(events []*eventdb.Event) error
	NewestSeq() (uint64, error)
}

type result struct {
	receipt *tx.Receipt
	err     error
}

// Sequencer totally orders transactions submitted concurrently and applies them one by one.
// Every applied transaction gets the next log position and a logical time that never decreases.
type Sequencer struct {
	stater  *state.Stater
	store   kv.Store
	events  EventIndex
	indexed uint64 // highest seq whose events reached the index, owned by Run
	clock   Clock
	queue   chan *request
	stopped chan struct{}
	signal  co.Signal
	head    atomic.Pointer[Head]
}

// New creates a sequencer on top of the committed state, re-indexing events
// the event db missed before the last shutdown.
func New(stater *state.Stater, events EventIndex, opts Options) (*Sequencer, error) {
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	s := &Sequencer{
		stater:  stater,
		store:   stater.Store(),
		events:  events,
		clock:   opts.Clock,
		queue:   make(chan *request, opts.QueueSize),
		stopped: make(chan struct{}),
	}
	head, err := loadHead(s.store)
	if err != nil {
		return nil, err
	}
	s.head.Store(head)
	if err := s.reindex(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Sequencer) reindex() error {
	newest, err := s.events.NewestSeq()
	if err != nil {
		return err
	}
	head := s.Head()
	if newest > head.Seq {
		newest = head.Seq
	}
	s.indexed = newest
	if err := s.indexTo(head.Seq, nil); err != nil {
		return err
	}
	if head.Seq > newest {
		logger.Info("events re-indexed", "from", newest+1, "to", head.Seq)
	}
	return nil
}

// indexTo inserts the events of every entry after the indexed position up to seq.
// Entries are indexed strictly in order, so a failed insert leaves no gap behind
// later ones: the remainder is retried by the next call or on the next start.
func (s *Sequencer) indexTo(seq uint64, last *tx.Receipt) error {
	for next := s.indexed + 1; next <= seq; next++ {
		receipt := last
		if next != seq || receipt == nil {
			entry, err := s.Entry(next)
			if err != nil {
				return errors.Wrapf(err, "load entry %d", next)
			}
			receipt = entry.Receipt
		}
		if err := s.events.Insert(eventdb.NewEvents(next, receipt)); err != nil {
			return err
		}
		s.indexed = next
	}
	return nil
}

// Head returns the last applied log position.
func (s *Sequencer) Head() Head {
	return *s.head.Load()
}

// Now returns the logical time the next transaction would be applied at.
func (s *Sequencer) Now() uint64 {
	now := s.clock()
	if head := s.Head(); now < head.Time {
		return head.Time
	}
	return now
}

// Ticker returns a channel closed when the next transaction is applied.
func (s *Sequencer) Ticker() <-chan struct{} {
	return s.signal.Wait()
}

// NewState returns a state over the committed storage, for reads.
func (s *Sequencer) NewState() *state.State {
	return s.stater.NewState()
}

// SnapshotState returns a state pinned to the storage committed so far.
// The returned func must be called once the state is no longer used.
func (s *Sequencer) SnapshotState() (*state.State, func()) {
	return s.stater.NewSnapshotState()
}

// Run applies queued transactions until ctx is done.
// It returns an error only when the storage failed, leaving the node unusable.
func (s *Sequencer) Run(ctx context.Context) error {
	defer close(s.stopped)
	for {
		select {
		case <-ctx.Done():
			return nil
		case req := <-s.queue:
			metricQueueSize().Set(int64(len(s.queue)))
			receipt, err := s.apply(req.tx)
			if err != nil && !reverts.IsRevertErr(err) {
				req.done <- result{nil, err}
				return err
			}
			req.done <- result{receipt, err}
		}
	}
}

// Submit queues trx and blocks until it has been applied or ctx is done.
// Rejected transactions return a revert error. Reverted executions return a receipt.
func (s *Sequencer) Submit(ctx context.Context, trx *tx.Transaction) (*tx.Receipt, error) {
	req := &request{tx: trx, done: make(chan result, 1)}
	select {
	case s.queue <- req:
		metricQueueSize().Set(int64(len(s.queue)))
	case <-s.stopped:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case res := <-req.done:
		return res.receipt, res.err
	case <-s.stopped:
		// the request may have been taken just before stopping
		select {
		case res := <-req.done:
			return res.receipt, res.err
		default:
			return nil, ErrStopped
		}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *Sequencer) apply(trx *tx.Transaction) (*tx.Receipt, error) {
	head := s.Head()
	now := s.Now()

	rt := runtime.New(s.stater.NewState())
	receipt, err := rt.Execute(trx, now)
	if err != nil {
		if reverts.IsRevertErr(err) {
			logger.Debug("tx rejected", "method", trx.Method(), "err", err)
		}
		return nil, err
	}

	next := &Head{Seq: head.Seq + 1, Time: now}
	receipt.Seq = next.Seq
	entry := &Entry{Seq: next.Seq, Tx: trx, Receipt: receipt}
	if err := rt.State().Stage().Commit(func(putter kv.Putter) error {
		return putEntry(putter, entry, next)
	}); err != nil {
		return nil, errors.Wrap(err, "commit")
	}
	s.head.Store(next)

	if err := s.indexTo(next.Seq, receipt); err != nil {
		logger.Warn("failed to index events", "indexed", s.indexed, "head", next.Seq, "err", err)
	}
	s.signal.Broadcast()

	logger.Debug("tx applied", "seq", next.Seq, "method", receipt.Method, "reverted", receipt.Reverted)
	return receipt, nil
}

// Entry returns the log entry at seq.
func (s *Sequencer) Entry(seq uint64) (*Entry, error) {
	data, err := LogBucket.NewGetter(s.store).Get(seqKey(seq))
	if err != nil {
		return nil, err
	}
	var entry Entry
	if err := rlp.DecodeBytes(data, &entry); err != nil {
		return nil, errors.Wrap(err, "decode entry")
	}
	return &entry, nil
}

// Receipt returns the receipt of the transaction with id.
func (s *Sequencer) Receipt(id vf.Bytes32) (*tx.Receipt, error) {
	data, err := IndexBucket.NewGetter(s.store).Get(id.Bytes())
	if err != nil {
		return nil, err
	}
	var seq uint64
	if err := rlp.DecodeBytes(data, &seq); err != nil {
		return nil, errors.Wrap(err, "decode seq")
	}
	entry, err := s.Entry(seq)
	if err != nil {
		return nil, err
	}
	return entry.Receipt, nil
}

// IsNotFound reports whether err means a missing entry or receipt.
func (s *Sequencer) IsNotFound(err error) bool {
	return s.store.IsNotFound(err)
}
