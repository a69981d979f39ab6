package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/five82/bloom/internal/storage"
)

// DefaultSlotKey names the slot holding the serialized collection.
const DefaultSlotKey = "bouquet-storage"

// Persister loads and saves the whole collection.
type Persister interface {
	// Load returns the last saved collection, or nil when nothing was saved.
	Load(ctx context.Context) ([]Record, error)
	Save(ctx context.Context, records []Record) error
}

// JSONPersister stores the collection as a JSON array in one KV slot.
type JSONPersister struct {
	KV  storage.KV
	Key string
}

// NewJSONPersister returns a persister writing to key, or DefaultSlotKey when empty.
func NewJSONPersister(kv storage.KV, key string) *JSONPersister {
	if key == "" {
		key = DefaultSlotKey
	}
	return &JSONPersister{KV: kv, Key: key}
}

func (p *JSONPersister) Load(ctx context.Context) ([]Record, error) {
	data, err := p.KV.Get(ctx, p.Key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return Decode(data)
}

func (p *JSONPersister) Save(ctx context.Context, records []Record) error {
	data, err := Encode(records)
	if err != nil {
		return err
	}
	return p.KV.Set(ctx, p.Key, data)
}

// Encode serializes records as a JSON array. A nil slice encodes as [].
func Encode(records []Record) ([]byte, error) {
	if records == nil {
		records = []Record{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return data, nil
}

// Decode parses a JSON array of records. Blank input decodes to nil.
func Decode(data []byte) ([]Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}
