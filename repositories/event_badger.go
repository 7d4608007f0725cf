package repositories

import (
	"chat-events/contract"
	"chat-events/domain/event"
	"chat-events/errors"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const (
	logPrefix   = "evt:"
	indexPrefix = "idx:evt:"
)

// BadgerEventRepository keeps the event log in BadgerDB.
// Every event is stored under "evt:{seq}" where seq is the 19-digit zero-padded
// insertion rank, so a prefix scan returns insertion order.
// "idx:evt:{id}" points back to the log key of an event id.
type BadgerEventRepository struct {
	db  *badger.DB
	log *slog.Logger
	mu  sync.Mutex
	seq uint64
}

func NewBadgerEventRepository(db *badger.DB, log *slog.Logger) contract.IEventRepository {
	return &BadgerEventRepository{db: db, log: log}
}

// OpenInMemoryBadger opens a BadgerDB that lives only as long as the process.
func OpenInMemoryBadger() (*badger.DB, error) {
	options := badger.DefaultOptions("").
		WithInMemory(true).
		WithLoggingLevel(badger.WARNING)
	return badger.Open(options)
}

func logKey(seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%019d", logPrefix, seq))
}

func indexKey(id event.ID) []byte {
	return []byte(fmt.Sprintf("%s%019d", indexPrefix, id))
}

func (r *BadgerEventRepository) StoreEvent(e event.DomainEvent) error {
	bytes, err := encodeEvent(e)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := logKey(r.seq + 1)
	err = r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, bytes); err != nil {
			return err
		}
		return txn.Set(indexKey(e.EventID()), key)
	})
	if err != nil {
		return fmt.Errorf("store event %d: %w", e.EventID(), err)
	}
	r.seq++
	return nil
}

func (r *BadgerEventRepository) GetEvents() ([]event.DomainEvent, error) {
	var events []event.DomainEvent
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(logPrefix)
		options := badger.DefaultIteratorOptions
		options.Prefix = prefix
		it := txn.NewIterator(options)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(value []byte) error {
				e, err := decodeEvent(value)
				if err != nil {
					return fmt.Errorf("decode %s: %w", item.Key(), err)
				}
				events = append(events, e)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

// MaxID scans the whole log; 0 when empty.
func (r *BadgerEventRepository) MaxID() (event.ID, error) {
	events, err := r.GetEvents()
	if err != nil {
		return 0, err
	}
	var maxID event.ID
	for _, e := range events {
		maxID = max(maxID, e.EventID())
	}
	return maxID, nil
}

func (r *BadgerEventRepository) OverrideTimestamp(id event.ID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.db.Update(func(txn *badger.Txn) error {
		index, err := txn.Get(indexKey(id))
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return errors.ErrEventNotFound
		}
		if err != nil {
			return err
		}
		key, err := index.ValueCopy(nil)
		if err != nil {
			return err
		}
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		stored, err := decodeEvent(value)
		if err != nil {
			return err
		}
		rewritten, err := event.WithTimestamp(stored, at)
		if err != nil {
			return err
		}
		bytes, err := encodeEvent(rewritten)
		if err != nil {
			return err
		}
		return txn.Set(key, bytes)
	})
}

func (r *BadgerEventRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.db.DropAll(); err != nil {
		return fmt.Errorf("drop event log: %w", err)
	}
	r.log.Debug("Event log cleared")
	r.seq = 0
	return nil
}
