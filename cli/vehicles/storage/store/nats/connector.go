package nats

/*
Публикация событий о смене позиции в NATS.

Секция конфига:

servers: "nats://localhost:4222"
subject: "vehicles.positions"
name: "vehicles"
*/

import (
	"fmt"

	"github.com/nats-io/nats.go"
)

type Connector struct {
	connection *nats.Conn
	subject    string
}

func (c *Connector) Init(cfg map[string]string) error {
	var err error
	if cfg == nil {
		return fmt.Errorf("некорректная ссылка на конфигурацию")
	}
	if cfg["subject"] == "" {
		return fmt.Errorf("не задан subject NATS")
	}
	c.subject = cfg["subject"]

	servers := cfg["servers"]
	if servers == "" {
		servers = nats.DefaultURL
	}
	name := cfg["name"]
	if name == "" {
		name = "vehicles"
	}

	if c.connection, err = nats.Connect(servers, nats.Name(name)); err != nil {
		return fmt.Errorf("ошибка подключения к NATS: %w", err)
	}
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

	if err = c.connection.Publish(c.subject, body); err != nil {
		return fmt.Errorf("не удалось отправить событие в NATS: %w", err)
	}
	return nil
}

func (c *Connector) Close() error {
	if c.connection == nil {
		return nil
	}
	return c.connection.Drain()
}
