package storage

import (
	"errors"
	"runtime"
	"sync"

	log "github.com/sirupsen/logrus"
)

var ErrRepositoryClosed = errors.New("асинхронный репозиторий был закрыт")
var ErrQueueFull = errors.New("очередь событий переполнена")

// AsyncRepository отправляет события в фоне пулом воркеров.
// Save не блокирует вызывающего: при переполненном буфере событие отбрасывается.
type AsyncRepository struct {
	repo Saver
	ch   chan interface{ ToBytes() ([]byte, error) }
	wg   sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewAsyncRepository(repo Saver, buffer, workers int) *AsyncRepository {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if buffer < 0 {
		buffer = 0
	}
	ar := &AsyncRepository{
		repo: repo,
		ch:   make(chan interface{ ToBytes() ([]byte, error) }, buffer),
	}
	for i := 0; i < workers; i++ {
		ar.wg.Add(1)
		go ar.worker()
	}
	return ar
}

func (a *AsyncRepository) worker() {
	defer a.wg.Done()
	for msg := range a.ch {
		if err := a.repo.Save(msg); err != nil {
			log.WithField("err", err).Error("Ошибка отправки события")
		}
	}
}

func (a *AsyncRepository) Save(m interface{ ToBytes() ([]byte, error) }) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		return ErrRepositoryClosed
	}
	select {
	case a.ch <- m:
		return nil
	default:
		return ErrQueueFull
	}
}

// Close дожидается отправки уже принятых событий
func (a *AsyncRepository) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	close(a.ch)
	a.mu.Unlock()

	a.wg.Wait()
}
