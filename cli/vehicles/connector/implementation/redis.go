package implementation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

type RedisConnector struct {
	client *redis.Client
}

func (c *RedisConnector) Connect(settings map[string]string) error {
	if settings == nil {
		return fmt.Errorf("некорректная ссылка на конфигурацию")
	}

	db, err := strconv.Atoi(getOptionValue("db", "0", settings))
	if err != nil {
		return fmt.Errorf("не удалось получить номер базы Redis: %v", err)
	}
	timeout, err := strconv.Atoi(getOptionValue("timeout", "3", settings))
	if err != nil {
		return fmt.Errorf("не удалось получить timeout: %v", err)
	}

	c.client = redis.NewClient(&redis.Options{
		Addr:        getOptionValue("host", "localhost", settings) + ":" + getOptionValue("port", "6379", settings),
		Password:    settings["password"],
		DB:          db,
		DialTimeout: time.Duration(timeout) * time.Second,
		ReadTimeout: time.Duration(timeout) * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
	defer cancel()
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis недоступен: %v", err)
	}

	return nil
}

func (c *RedisConnector) GetClient() redis.UniversalClient {
	return c.client
}

func (c *RedisConnector) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisConnector) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
