package implementation

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "github.com/lib/pq"
)

type PostgresSettings struct {
	Host            string
	Port            string
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

func (s PostgresSettings) DSN() string {
	return fmt.Sprintf("dbname=%s host=%s port=%s user=%s password=%s sslmode=%s",
		s.Database, s.Host, s.Port, s.User, s.Password, s.SSLMode)
}

func (s PostgresSettings) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		s.User, s.Password, s.Host, s.Port, s.Database, s.SSLMode)
}

type PostgresConnector struct {
	connection *sql.DB
	settings   PostgresSettings
}

func (c *PostgresConnector) FillSettings(settings map[string]string) error {
	c.settings.Host = getOptionValue("host", "localhost", settings)
	c.settings.Port = getOptionValue("port", "5432", settings)
	c.settings.User = getOptionValue("user", "postgres", settings)
	c.settings.Password = getOptionValue("password", "postgres", settings)
	c.settings.Database = getOptionValue("database", "vehicles", settings)
	c.settings.SSLMode = getOptionValue("sslmode", "disable", settings)

	maxOpenConns, err := strconv.Atoi(getOptionValue("max_open_conns", "20", settings))
	if err != nil {
		return fmt.Errorf("не удалось получить max_open_conns: %v", err)
	}
	c.settings.MaxOpenConns = maxOpenConns

	lifetime, err := strconv.Atoi(getOptionValue("conn_max_lifetime", "300", settings))
	if err != nil {
		return fmt.Errorf("не удалось получить conn_max_lifetime: %v", err)
	}
	c.settings.ConnMaxLifetime = time.Duration(lifetime) * time.Second

	return nil
}

func (c *PostgresConnector) Settings() PostgresSettings {
	return c.settings
}

func (c *PostgresConnector) Connect(settings map[string]string) error {
	var err error
	if settings == nil {
		return fmt.Errorf("некорректная ссылка на конфигурацию")
	}

	if err = c.FillSettings(settings); err != nil {
		return err
	}

	if c.connection, err = sql.Open("postgres", c.settings.DSN()); err != nil {
		return fmt.Errorf("ошибка подключения к PostgreSQL: %v", err)
	}
	c.connection.SetMaxOpenConns(c.settings.MaxOpenConns)
	c.connection.SetConnMaxLifetime(c.settings.ConnMaxLifetime)

	if err = c.connection.Ping(); err != nil {
		return fmt.Errorf("PostgreSQL недоступен: %v", err)
	}
	return nil
}

func (c *PostgresConnector) GetConnection() *sql.DB {
	return c.connection
}

func (c *PostgresConnector) Ping(ctx context.Context) error {
	return c.connection.PingContext(ctx)
}

func (c *PostgresConnector) Close() error {
	if c.connection == nil {
		return nil
	}
	return c.connection.Close()
}
