package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})
	return mr, client
}

// exerciseKV runs the contract every backend must satisfy.
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "bouquet-storage")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "bouquet-storage", []byte(`[{"id":"a"}]`)))
	got, err := kv.Get(ctx, "bouquet-storage")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"a"}]`, string(got))

	require.NoError(t, kv.Set(ctx, "bouquet-storage", []byte(`[]`)))
	got, err = kv.Get(ctx, "bouquet-storage")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, kv.Delete(ctx, "bouquet-storage"))
	_, err = kv.Get(ctx, "bouquet-storage")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting twice is fine.
	assert.NoError(t, kv.Delete(ctx, "bouquet-storage"))

	assert.Error(t, kv.Set(ctx, "  ", []byte("x")))
}

func TestFileKV_Contract(t *testing.T) {
	kv, err := NewFileKV(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	exerciseKV(t, kv)
}

func TestFileKV_WritesSlotFileWithoutTempLeftovers(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	require.NoError(t, err)

	require.NoError(t, kv.Set(context.Background(), "slot", []byte("payload")))

	data, err := os.ReadFile(filepath.Join(dir, "slot.json"))
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	_, err = os.Stat(filepath.Join(dir, "slot.json.tmp"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "temp file should be renamed away")
}

func TestFileKV_RejectsPathKeys(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../escape", "a/b", `a\b`, ".."} {
		assert.Error(t, kv.Set(context.Background(), key, []byte("x")), "key %q", key)
	}
}

func TestNewFileKV_EmptyDirErrors(t *testing.T) {
	_, err := NewFileKV("  ")
	assert.Error(t, err)
}

func TestMemoryKV_Contract(t *testing.T) {
	exerciseKV(t, NewMemoryKV())
}

func TestMemoryKV_CopiesValues(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()
	value := []byte("abc")
	require.NoError(t, kv.Set(ctx, "k", value))
	value[0] = 'z'

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[0] = 'y'
	again, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}

func TestMemoryKV_SetErr(t *testing.T) {
	kv := NewMemoryKV()
	kv.SetErr = errors.New("disk full")
	err := kv.Set(context.Background(), "k", []byte("v"))
	assert.EqualError(t, err, "disk full")
}

func TestRedisKV_Contract(t *testing.T) {
	_, client := setupTestRedis(t)
	exerciseKV(t, NewRedisKVFromClient(client, ""))
}

func TestRedisKV_UsesPrefix(t *testing.T) {
	mr, client := setupTestRedis(t)
	kv := NewRedisKVFromClient(client, "custom:")

	require.NoError(t, kv.Set(context.Background(), "slot", []byte("v")))

	got, err := mr.Get("custom:slot")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
	assert.False(t, mr.Exists("bloom:slot"))
}

func TestNewRedisKV_PingsServer(t *testing.T) {
	mr, _ := setupTestRedis(t)

	kv, err := NewRedisKV(context.Background(), RedisOptions{Addr: mr.Addr()})
	require.NoError(t, err)
	defer kv.Close()

	require.NoError(t, kv.Set(context.Background(), "slot", []byte("v")))
	assert.True(t, mr.Exists("bloom:slot"))
}

func TestNewRedisKV_UnreachableServerErrors(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = NewRedisKV(context.Background(), RedisOptions{Addr: addr})
	assert.Error(t, err)
}

func TestOpen_SelectsBackend(t *testing.T) {
	ctx := context.Background()

	kv, err := Open(ctx, Options{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileKV{}, kv)

	kv, err = Open(ctx, Options{Backend: "Memory"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryKV{}, kv)

	mr, _ := setupTestRedis(t)
	kv, err = Open(ctx, Options{Backend: BackendRedis, RedisAddr: mr.Addr()})
	require.NoError(t, err)
	assert.IsType(t, &RedisKV{}, kv)
	_ = kv.Close()

	_, err = Open(ctx, Options{Backend: "etcd"})
	assert.Error(t, err)
}
