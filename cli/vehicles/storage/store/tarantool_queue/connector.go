package tarantool_queue

/*
Отправка событий о смене позиции в очередь Tarantool.

Секция конфига:

host: "localhost"
port: "3301"
user: "guest"
password: ""
max_recons: "5"
timeout: "1"
reconnect: "1"
queue: "vehicle_positions"
*/

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tarantool/go-tarantool"
	"github.com/tarantool/go-tarantool/queue"
)

type Connector struct {
	connection *tarantool.Connection
	queue      queue.Queue
}

// options разбирает числовые параметры подключения, пустые значения заменяются значениями по умолчанию
func options(cfg map[string]string) (tarantool.Opts, error) {
	number := func(key string, def int) (int, error) {
		raw := cfg[key]
		if raw == "" {
			return def, nil
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("некорректное значение %s: %w", key, err)
		}
		return v, nil
	}

	maxRecons, err := number("max_recons", 5)
	if err != nil {
		return tarantool.Opts{}, err
	}
	timeout, err := number("timeout", 1)
	if err != nil {
		return tarantool.Opts{}, err
	}
	reconnect, err := number("reconnect", 1)
	if err != nil {
		return tarantool.Opts{}, err
	}

	return tarantool.Opts{
		Timeout:       time.Duration(timeout) * time.Second,
		Reconnect:     time.Duration(reconnect) * time.Second,
		MaxReconnects: uint(maxRecons),
		User:          cfg["user"],
		Pass:          cfg["password"],
	}, nil
}

func (c *Connector) Init(cfg map[string]string) error {
	if cfg == nil {
		return fmt.Errorf("некорректная ссылка на конфигурацию")
	}
	if cfg["queue"] == "" {
		return fmt.Errorf("не задано имя очереди Tarantool")
	}

	opts, err := options(cfg)
	if err != nil {
		return err
	}

	c.connection, err = tarantool.Connect(fmt.Sprintf("%s:%s", cfg["host"], cfg["port"]), opts)
	if err != nil {
		return fmt.Errorf("не удалось подключиться к Tarantool: %w", err)
	}
	c.queue = queue.New(c.connection, cfg["queue"])

	return nil
}

func (c *Connector) Save(msg interface{ ToBytes() ([]byte, error) }) error {
	if msg == nil {
		return fmt.Errorf("некорректная ссылка на событие")
	}

	body, err := msg.ToBytes()
	if err != nil {
		return fmt.Errorf("ошибка сериализации события: %w", err)
	}

	if _, err = c.queue.Put(body); err != nil {
		return fmt.Errorf("не удалось отправить событие в Tarantool: %w", err)
	}
	return nil
}

func (c *Connector) Close() error {
	if c.connection == nil {
		return nil
	}
	return c.connection.Close()
}
