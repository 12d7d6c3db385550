package badger

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/ruvnet/arcadia-goap/domain/event"
)

// subscriberBuffer is the channel capacity for event subscribers. Slow
// subscribers drop events rather than blocking appends.
const subscriberBuffer = 64

// EventStore is a BadgerDB-backed implementation of event.Store. Events
// are kept per agent under sequence-ordered keys so a planning run can be
// replayed after a restart.
type EventStore struct {
	db          *badger.DB
	keyPrefix   string
	subscribers map[string][]chan event.Event
	closed      bool
	mu          sync.RWMutex
	gcStop      chan struct{}
	gcWg        sync.WaitGroup
}

// NewEventStore creates a new BadgerDB event store with the given configuration.
func NewEventStore(cfg Config, opts ...Option) (*EventStore, error) {
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	s := &EventStore{
		db:          db,
		keyPrefix:   cfg.KeyPrefix,
		subscribers: make(map[string][]chan event.Event),
		gcStop:      make(chan struct{}),
	}

	if cfg.GCInterval > 0 && !cfg.InMemory {
		s.startGC(cfg.GCInterval, cfg.GCDiscardRatio)
	}

	return s, nil
}

// NewEventStoreFromDB creates an event store from an existing BadgerDB
// database. The caller keeps ownership of the database; Close will still
// close it.
func NewEventStoreFromDB(db *badger.DB, keyPrefix string) *EventStore {
	return &EventStore{
		db:          db,
		keyPrefix:   keyPrefix,
		subscribers: make(map[string][]chan event.Event),
		gcStop:      make(chan struct{}),
	}
}

// startGC runs value log garbage collection until the store closes. Each
// tick reclaims log files until BadgerDB reports nothing left to rewrite.
func (s *EventStore) startGC(interval time.Duration, discardRatio float64) {
	s.gcWg.Add(1)
	go func() {
		defer s.gcWg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.gcStop:
				return
			case <-ticker.C:
				for {
					if err := s.db.RunValueLogGC(discardRatio); err != nil {
						break
					}
				}
			}
		}
	}()
}

// Key format: prefix + events:agentID: + sequence (8 bytes, big-endian).
// Big-endian sequences keep lexicographic key order equal to append order.
func (s *EventStore) eventKey(agentID string, seq uint64) []byte {
	seqBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(seqBytes, seq)
	return append([]byte(s.keyPrefix+"events:"+agentID+":"), seqBytes...)
}

// Key format: prefix + seq:agentID for the per-agent sequence counter.
func (s *EventStore) seqKey(agentID string) []byte {
	return []byte(s.keyPrefix + "seq:" + agentID)
}

// Append persists an event, assigning its ID and sequence number.
func (s *EventStore) Append(ctx context.Context, e event.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if e.AgentID == "" {
		return event.ErrInvalidAgentID
	}

	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return event.ErrStoreClosed
	}

	if e.ID == "" {
		e.ID = uuid.NewString()
	}

	err := s.db.Update(func(txn *badger.Txn) error {
		var seq uint64
		seqKey := s.seqKey(e.AgentID)

		item, err := txn.Get(seqKey)
		if err == nil {
			err = item.Value(func(val []byte) error {
				if len(val) == 8 {
					seq = binary.BigEndian.Uint64(val)
				}
				return nil
			})
			if err != nil {
				return err
			}
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		seq++
		e.Sequence = seq

		data, err := json.Marshal(e)
		if err != nil {
			return err
		}

		if err := txn.Set(s.eventKey(e.AgentID, seq), data); err != nil {
			return err
		}

		seqBytes := make([]byte, 8)
		binary.BigEndian.PutUint64(seqBytes, seq)
		return txn.Set(seqKey, seqBytes)
	})
	if err != nil {
		return err
	}

	s.notifySubscribers(e)
	return nil
}

// LoadEvents retrieves all events for an agent in sequence order.
func (s *EventStore) LoadEvents(ctx context.Context, agentID string) ([]event.Event, error) {
	return s.LoadEventsFrom(ctx, agentID, 0)
}

// LoadEventsFrom retrieves events for an agent with sequence numbers at or
// above the given value.
func (s *EventStore) LoadEventsFrom(ctx context.Context, agentID string, sequence uint64) ([]event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if agentID == "" {
		return nil, event.ErrInvalidAgentID
	}

	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return nil, event.ErrStoreClosed
	}

	prefix := []byte(s.keyPrefix + "events:" + agentID + ":")
	startKey := s.eventKey(agentID, sequence)
	var events []event.Event

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(startKey); it.Valid(); it.Next() {
			var e event.Event
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			})
			if err != nil {
				continue // skip malformed entries
			}
			events = append(events, e)
		}

		return nil
	})

	return events, err
}

// Subscribe returns a channel receiving new events for an agent. The
// channel is closed when the context is cancelled or the store closes.
func (s *EventStore) Subscribe(ctx context.Context, agentID string) (<-chan event.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if agentID == "" {
		return nil, event.ErrInvalidAgentID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, event.ErrStoreClosed
	}

	ch := make(chan event.Event, subscriberBuffer)
	s.subscribers[agentID] = append(s.subscribers[agentID], ch)

	go func() {
		<-ctx.Done()
		s.unsubscribe(agentID, ch)
	}()

	return ch, nil
}

// unsubscribe removes and closes a subscriber channel if still registered.
func (s *EventStore) unsubscribe(agentID string, ch chan event.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	subs := s.subscribers[agentID]
	for i, sub := range subs {
		if sub == ch {
			s.subscribers[agentID] = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}

	if len(s.subscribers[agentID]) == 0 {
		delete(s.subscribers, agentID)
	}
}

// notifySubscribers sends an event to its agent's subscribers.
func (s *EventStore) notifySubscribers(e event.Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ch := range s.subscribers[e.AgentID] {
		select {
		case ch <- e:
		default:
			// Channel full, skip
		}
	}
}

// CountEvents returns the number of events stored for an agent.
func (s *EventStore) CountEvents(ctx context.Context, agentID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	prefix := []byte(s.keyPrefix + "events:" + agentID + ":")
	var count int64

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}

		return nil
	})

	return count, err
}

// ListAgents returns all agent IDs with events in the store.
func (s *EventStore) ListAgents(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := []byte(s.keyPrefix + "seq:")
	prefixLen := len(prefix)
	var agents []string

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			key := it.Item().Key()
			agents = append(agents, string(key[prefixLen:]))
		}

		return nil
	})

	return agents, err
}

// DeleteAgent removes all events and the sequence counter for an agent.
func (s *EventStore) DeleteAgent(ctx context.Context, agentID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if subs, ok := s.subscribers[agentID]; ok {
		for _, ch := range subs {
			close(ch)
		}
		delete(s.subscribers, agentID)
	}
	s.mu.Unlock()

	prefix := []byte(s.keyPrefix + "events:" + agentID + ":")
	if err := s.db.DropPrefix(prefix); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(s.seqKey(agentID))
	})
}

// Close stops garbage collection, closes all subscriber channels, and
// closes the database.
func (s *EventStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true

	for _, subs := range s.subscribers {
		for _, ch := range subs {
			close(ch)
		}
	}
	s.subscribers = make(map[string][]chan event.Event)
	s.mu.Unlock()

	close(s.gcStop)
	s.gcWg.Wait()

	return s.db.Close()
}

// DB returns the underlying BadgerDB database.
func (s *EventStore) DB() *badger.DB {
	return s.db
}

var _ event.Store = (*EventStore)(nil)
