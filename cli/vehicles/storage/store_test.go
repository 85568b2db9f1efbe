package storage

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSaver struct {
	mu     sync.Mutex
	saved  [][]byte
	err    error
	closed bool
	block  chan struct{}
}

func (ms *mockSaver) Save(data interface{ ToBytes() ([]byte, error) }) error {
	if ms.block != nil {
		<-ms.block
	}
	b, err := data.ToBytes()
	if err != nil {
		return err
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.saved = append(ms.saved, b)
	return ms.err
}

func (ms *mockSaver) Init(map[string]string) error { return nil }

func (ms *mockSaver) Close() error {
	ms.closed = true
	return nil
}

func (ms *mockSaver) count() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return len(ms.saved)
}

type testData string

func (td testData) ToBytes() ([]byte, error) {
	return []byte(td), nil
}

func TestRepository_SaveFansOut(t *testing.T) {
	first := &mockSaver{}
	second := &mockSaver{}

	repo := NewRepository()
	repo.AddStore(first)
	repo.AddStore(second)

	require.NoError(t, repo.Save(testData("event")))
	assert.Equal(t, [][]byte{[]byte("event")}, first.saved)
	assert.Equal(t, [][]byte{[]byte("event")}, second.saved)
}

func TestRepository_FailingStoreDoesNotStopOthers(t *testing.T) {
	brokenErr := errors.New("broken pipe")
	broken := &mockSaver{err: brokenErr}
	healthy := &mockSaver{}

	repo := NewRepository()
	repo.AddStore(broken)
	repo.AddStore(healthy)

	err := repo.Save(testData("event"))
	assert.ErrorIs(t, err, brokenErr)
	assert.Equal(t, 1, healthy.count())
}

func TestRepository_LoadStorages(t *testing.T) {
	tests := []struct {
		name     string
		storages map[string]map[string]string
		err      error
	}{
		{name: "Empty", storages: nil, err: ErrInvalidStorage},
		{name: "Unknown", storages: map[string]map[string]string{"kafka": {}}, err: ErrUnknownStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewRepository()
			assert.ErrorIs(t, repo.LoadStorages(tt.storages), tt.err)
			assert.Equal(t, 0, repo.Len())
		})
	}
}

func TestRepository_Close(t *testing.T) {
	s := &mockSaver{}
	repo := NewRepository()
	repo.AddStore(s)

	require.NoError(t, repo.Close())
	assert.True(t, s.closed)
}

func TestAsyncRepository_DeliversAcceptedEvents(t *testing.T) {
	s := &mockSaver{}
	repo := NewRepository()
	repo.AddStore(s)

	async := NewAsyncRepository(repo, 100, 4)
	for i := 0; i < 50; i++ {
		require.NoError(t, async.Save(testData("event")))
	}
	async.Close()

	assert.Equal(t, 50, s.count())
	assert.ErrorIs(t, async.Save(testData("late")), ErrRepositoryClosed)
	async.Close()
}

func TestAsyncRepository_DropsWhenFull(t *testing.T) {
	log.SetOutput(io.Discard)

	s := &mockSaver{block: make(chan struct{})}
	async := NewAsyncRepository(s, 1, 1)

	// воркер забирает первое событие и блокируется, второе занимает буфер
	require.NoError(t, async.Save(testData("1")))
	require.Eventually(t, func() bool { return len(async.ch) == 0 }, time.Second, time.Millisecond)
	require.NoError(t, async.Save(testData("2")))
	assert.ErrorIs(t, async.Save(testData("3")), ErrQueueFull)

	close(s.block)
	async.Close()
	assert.Equal(t, 2, s.count())
}
