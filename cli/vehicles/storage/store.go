package storage

import (
	"errors"
	"fmt"

	"github.com/daniil11ru/vehicles/cli/vehicles/storage/store/nats"
	"github.com/daniil11ru/vehicles/cli/vehicles/storage/store/rabbitmq"
	"github.com/daniil11ru/vehicles/cli/vehicles/storage/store/tarantool_queue"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidStorage = errors.New("не задано ни одного получателя событий")
var ErrUnknownStorage = errors.New("получатель событий не поддерживается")

type Store interface {
	Connector
	Saver
}

// Saver получатель уведомлений о смене позиции
type Saver interface {
	Save(interface{ ToBytes() ([]byte, error) }) error
}

// Connector подключение к внешнему брокеру
type Connector interface {
	Init(map[string]string) error
	Close() error
}

// Repository набор получателей событий
type Repository struct {
	storages []Saver
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) AddStore(s Saver) {
	r.storages = append(r.storages, s)
}

func (r *Repository) Len() int {
	return len(r.storages)
}

// Save отправляет сообщение всем получателям. Сбой одного получателя не мешает остальным.
func (r *Repository) Save(m interface{ ToBytes() ([]byte, error) }) error {
	var errs []error
	for _, store := range r.storages {
		if err := store.Save(m); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LoadStorages подключает получателей из секции events конфига
func (r *Repository) LoadStorages(storages map[string]map[string]string) error {
	if len(storages) == 0 {
		return ErrInvalidStorage
	}

	for name, params := range storages {
		var db Store
		switch name {
		case "rabbitmq":
			db = &rabbitmq.Connector{}
		case "nats":
			db = &nats.Connector{}
		case "tarantool_queue":
			db = &tarantool_queue.Connector{}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownStorage, name)
		}

		if err := db.Init(params); err != nil {
			return fmt.Errorf("не удалось подключить получателя событий %s: %w", name, err)
		}
		log.WithField("store", name).Info("Получатель событий подключен")

		r.AddStore(db)
	}
	return nil
}

// Close закрывает соединения получателей, у которых они есть
func (r *Repository) Close() error {
	var errs []error
	for _, s := range r.storages {
		if c, ok := s.(Connector); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
