package mirror

import (
	"context"
	"log"
	"sync"

	"workledger/internal/models"
)

type opKind string

const (
	opAppend opKind = "append"
	opUpsert opKind = "upsert"
	opDelete opKind = "delete"
)

type job struct {
	kind     opKind
	ticketID string
	row      []string
}

// Syncer propagates ledger mutations to the mirror on a best-effort,
// fire-and-forget basis. Enqueueing never blocks and never fails: a full
// queue drops the job with a log line, and every mirror error is logged
// and absorbed here. The primary store stays the source of truth even
// when the mirror drifts.
type Syncer struct {
	client Client
	jobs   chan job
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewSyncer starts the background worker. A nil client yields a no-op
// syncer (mirror disabled by configuration).
func NewSyncer(client Client, queueSize int) *Syncer {
	if queueSize <= 0 {
		queueSize = 64
	}
	s := &Syncer{client: client, jobs: make(chan job, queueSize)}
	if client != nil {
		s.wg.Add(1)
		go s.run()
	}
	return s
}

func (s *Syncer) run() {
	defer s.wg.Done()
	for j := range s.jobs {
		s.dispatch(j)
	}
}

func (s *Syncer) dispatch(j job) {
	ctx := context.Background()
	var err error
	switch j.kind {
	case opAppend:
		err = s.client.AppendRow(ctx, j.row)
	case opUpsert:
		err = s.client.UpsertRow(ctx, j.ticketID, j.row)
	case opDelete:
		err = s.client.DeleteRow(ctx, j.ticketID)
	}
	if err != nil {
		log.Printf("[mirror][%s][err] ticket=%s: %v", j.kind, j.ticketID, err)
	}
}

func (s *Syncer) enqueue(j job) {
	if s.client == nil {
		return
	}
	// Taken across Close as well, so a late mutation can never hit the
	// closed channel.
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		log.Printf("[mirror][drop] syncer closed, %s ticket=%s lost", j.kind, j.ticketID)
		return
	}
	select {
	case s.jobs <- j:
	default:
		log.Printf("[mirror][drop] queue full, %s ticket=%s lost", j.kind, j.ticketID)
	}
}

func (s *Syncer) TaskCreated(t models.Task) {
	s.enqueue(job{kind: opAppend, ticketID: t.TicketID, row: TaskRow(t)})
}

func (s *Syncer) TaskUpdated(t models.Task) {
	s.enqueue(job{kind: opUpsert, ticketID: t.TicketID, row: TaskRow(t)})
}

func (s *Syncer) TaskDeleted(ticketID string) {
	s.enqueue(job{kind: opDelete, ticketID: ticketID})
}

// Close stops accepting jobs and waits for the queue to drain. Jobs
// enqueued after Close are dropped with a log line, never a panic.
func (s *Syncer) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.client != nil {
		close(s.jobs)
	}
	s.mu.Unlock()

	if s.client != nil {
		s.wg.Wait()
	}
}
