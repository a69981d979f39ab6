package catalog

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/bloom/internal/storage"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	records := []Record{
		{ID: "a", Name: "Rose", Price: 150000.5, Image: "http://img", Purchased: true, Size: "Large", Category: "Romantic", Description: "red"},
		{ID: "b", Name: "Lily", Price: 0, IsSold: true},
	}

	data, err := Encode(records)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestEncode_FieldNames(t *testing.T) {
	data, err := Encode([]Record{{ID: "a", Name: "Rose", Price: 1}})
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)

	assert.Equal(t, "a", raw[0]["id"])
	assert.Equal(t, 1.0, raw[0]["price"])
	assert.Equal(t, false, raw[0]["purchased"])
	assert.Equal(t, false, raw[0]["isSold"])
	for _, optional := range []string{"image", "size", "category", "description"} {
		_, present := raw[0][optional]
		assert.False(t, present, "%s should be omitted when empty", optional)
	}
}

func TestEncode_NilIsEmptyArray(t *testing.T) {
	data, err := Encode(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestDecode_AcceptsNullOptionalFields(t *testing.T) {
	got, err := Decode([]byte(`[{"id":"a","name":"Rose","price":5,"image":null,"purchased":false,"isSold":false,"category":null}]`))
	require.NoError(t, err)
	assert.Equal(t, []Record{{ID: "a", Name: "Rose", Price: 5}}, got)
}

func TestDecode_BlankAndCorrupt(t *testing.T) {
	got, err := Decode([]byte("  \n"))
	assert.NoError(t, err)
	assert.Nil(t, got)

	_, err = Decode([]byte(`{"not":"an array"}`))
	assert.Error(t, err)
}

func TestJSONPersister_MissingSlotLoadsNil(t *testing.T) {
	p := NewJSONPersister(storage.NewMemoryKV(), "")
	assert.Equal(t, DefaultSlotKey, p.Key)

	got, err := p.Load(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestJSONPersister_SaveWritesNamedSlot(t *testing.T) {
	kv := storage.NewMemoryKV()
	p := NewJSONPersister(kv, "custom")
	records := []Record{{ID: "a", Name: "Rose"}}

	require.NoError(t, p.Save(context.Background(), records))

	raw, err := kv.Get(context.Background(), "custom")
	require.NoError(t, err)
	decoded, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, records, decoded)
}

func TestStore_CorruptSlotStartsEmpty(t *testing.T) {
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(context.Background(), DefaultSlotKey, []byte("{broken")))

	s := newTestStore(t, NewJSONPersister(kv, ""))
	assert.Empty(t, s.Snapshot())

	// The next mutation overwrites the corrupt value.
	s.Create(RecordInput{Name: "fresh"})
	require.NoError(t, s.Close())

	saved, err := NewJSONPersister(kv, "").Load(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "fresh", saved[0].Name)
}
