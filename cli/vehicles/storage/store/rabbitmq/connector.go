package rabbitmq

/*
Публикация событий о смене позиции в exchange RabbitMQ.

Секция конфига:

host: "localhost"
port: "5672"
user: "guest"
password: "guest"
exchange: "vehicles"
exchange_type: "topic"
key: "vehicle.position"
*/

import (
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

const contentType = "application/x-msgpack"

type Connector struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	key        string
}

// URL собирает строку подключения из секции конфига
func URL(cfg map[string]string) string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg["user"], cfg["password"], cfg["host"], cfg["port"])
}

func (c *Connector) Init(cfg map[string]string) error {
	var err error
	if cfg == nil {
		return fmt.Errorf("некорректная ссылка на конфигурацию")
	}
	if cfg["exchange"] == "" {
		return fmt.Errorf("не задан exchange RabbitMQ")
	}
	c.exchange = cfg["exchange"]
	c.key = cfg["key"]

	exchangeType := cfg["exchange_type"]
	if exchangeType == "" {
		exchangeType = amqp.ExchangeTopic
	}

	if c.connection, err = amqp.Dial(URL(cfg)); err != nil {
		return fmt.Errorf("ошибка подключения к RabbitMQ: %w", err)
	}
	if c.channel, err = c.connection.Channel(); err != nil {
		_ = c.connection.Close()
		return fmt.Errorf("ошибка открытия канала RabbitMQ: %w", err)
	}
	if err = c.channel.ExchangeDeclare(c.exchange, exchangeType, true, false, false, false, nil); err != nil {
		_ = c.connection.Close()
		return fmt.Errorf("не удалось создать exchange %s: %w", c.exchange, err)
	}
	return nil
}

func publishing(body []byte, ts time.Time) amqp.Publishing {
	return amqp.Publishing{
		ContentType:  contentType,
		DeliveryMode: amqp.Persistent,
		Timestamp:    ts,
		Body:         body,
	}
}

func (c *Connector) Save(msg interface{ ToBytes() ([]byte, error) }) error {
	if msg == nil {
		return fmt.Errorf("некорректная ссылка на событие")
	}

	body, err := msg.ToBytes()
	if err != nil {
		return fmt.Errorf("ошибка сериализации события: %w", err)
	}

	if err = c.channel.Publish(c.exchange, c.key, false, false, publishing(body, time.Now())); err != nil {
		return fmt.Errorf("не удалось отправить событие в RabbitMQ: %w", err)
	}
	return nil
}

func (c *Connector) Close() error {
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.connection == nil {
		return nil
	}
	return c.connection.Close()
}
