package catalog

import (
	"context"
	"log"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// maxIDAttempts bounds how often a custom generator may collide before the
// store falls back to random UUIDs.
const maxIDAttempts = 16

// Option customizes a Store.
type Option func(*Store)

// WithPlaceholderImage sets the image used when a record has none.
func WithPlaceholderImage(uri string) Option {
	return func(s *Store) {
		if strings.TrimSpace(uri) != "" {
			s.placeholder = uri
		}
	}
}

// WithIDGenerator replaces the UUID generator. Collisions are retried.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithLogger sets the logger for load and save warnings.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store owns the bouquet collection. Every mutation updates memory first,
// then hands a copy to the background writer and notifies subscribers.
// Unknown ids make Update, Delete and TogglePurchased silent no-ops.
type Store struct {
	mu      sync.RWMutex
	records []Record
	closed  bool

	persister   Persister
	persistCtx  context.Context
	pending     chan []Record
	writerDone  chan struct{}
	placeholder string
	newID       func() string
	logger      *log.Logger

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

// NewStore loads the last saved collection from p and starts the writer.
// A missing or unreadable collection starts the store empty. A nil p keeps
// everything in memory.
func NewStore(ctx context.Context, p Persister, opts ...Option) *Store {
	s := &Store{
		persister:   p,
		placeholder: DefaultPlaceholderImage,
		newID:       uuid.NewString,
		logger:      log.Default(),
		subs:        make(map[int]chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	if p == nil {
		return s
	}

	loaded, err := p.Load(ctx)
	if err != nil {
		s.logger.Printf("catalog: discarding unreadable collection: %v", err)
		loaded = nil
	}
	s.records = dedupe(loaded, s.logger)

	s.persistCtx = context.WithoutCancel(ctx)
	s.pending = make(chan []Record, 1)
	s.writerDone = make(chan struct{})
	go s.writeLoop()
	return s
}

// Create appends a new record and returns its minted id.
func (s *Store) Create(in RecordInput) string {
	s.mu.Lock()
	rec := Record{
		ID:          s.mintID(),
		Name:        in.Name,
		Price:       in.Price,
		Image:       s.imageOrPlaceholder(in.Image),
		Purchased:   in.Purchased,
		IsSold:      false,
		Size:        in.Size,
		Category:    in.Category,
		Description: in.Description,
	}
	s.records = append(s.records, rec)
	s.queuePersist()
	s.mu.Unlock()

	s.notify()
	return rec.ID
}

// Update merges p into the record with the given id.
func (s *Store) Update(id string, p Patch) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	if p.Image != nil {
		p.Image = String(s.imageOrPlaceholder(*p.Image))
	}
	s.records[idx] = p.apply(s.records[idx])
	s.queuePersist()
	s.mu.Unlock()

	s.notify()
}

// Delete removes the record with the given id.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.records = slices.Delete(s.records, idx, idx+1)
	s.queuePersist()
	s.mu.Unlock()

	s.notify()
}

// TogglePurchased flips the purchased flag of the record with the given id.
func (s *Store) TogglePurchased(id string) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.records[idx].Purchased = !s.records[idx].Purchased
	s.queuePersist()
	s.mu.Unlock()

	s.notify()
}

// Snapshot returns a copy of the collection in insertion order.
func (s *Store) Snapshot() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecords(s.records)
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return Record{}, false
	}
	return s.records[idx], true
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Subscribe returns a channel that receives after every mutation and a
// cancel func. Notifications coalesce: a slow reader sees one pending signal,
// not one per mutation. The channel is closed by cancel or Close.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subMu.Unlock()

	return ch, func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
}

// Close writes any pending snapshot, stops the writer and closes subscriber
// channels. Later mutations still change memory but are not persisted.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	if s.pending != nil {
		close(s.pending)
	}
	s.mu.Unlock()

	if s.writerDone != nil {
		<-s.writerDone
	}

	s.subMu.Lock()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	s.subMu.Unlock()
	return nil
}

func (s *Store) writeLoop() {
	defer close(s.writerDone)
	for records := range s.pending {
		if err := s.persister.Save(s.persistCtx, records); err != nil {
			s.logger.Printf("catalog: save failed, changes kept in memory only: %v", err)
		}
	}
}

// queuePersist hands the current collection to the writer without blocking.
// A newer snapshot replaces one the writer has not picked up yet. Callers
// hold s.mu.
func (s *Store) queuePersist() {
	if s.pending == nil || s.closed {
		return
	}
	snap := cloneRecords(s.records)
	select {
	case s.pending <- snap:
	default:
		select {
		case <-s.pending:
		default:
		}
		s.pending <- snap
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// mintID returns an id not used by any record. Callers hold s.mu.
func (s *Store) mintID() string {
	for attempt := 0; ; attempt++ {
		gen := s.newID
		if attempt >= maxIDAttempts {
			gen = uuid.NewString
		}
		if id := gen(); id != "" && s.indexOf(id) < 0 {
			return id
		}
	}
}

func (s *Store) imageOrPlaceholder(image string) string {
	if strings.TrimSpace(image) == "" {
		return s.placeholder
	}
	return image
}

func (s *Store) indexOf(id string) int {
	for i := range s.records {
		if s.records[i].ID == id {
			return i
		}
	}
	return -1
}

func dedupe(records []Record, logger *log.Logger) []Record {
	if len(records) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			logger.Printf("catalog: dropping duplicate record %q", r.ID)
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}

func cloneRecords(records []Record) []Record {
	if len(records) == 0 {
		return nil
	}
	dup := make([]Record, len(records))
	copy(dup, records)
	return dup
}
