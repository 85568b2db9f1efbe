package config

/*
Описание конфигурационного файла
*/

import (
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"gopkg.in/yaml.v2"
)

const (
	GeoBackendRedis  = "redis"
	GeoBackendMemory = "memory"
)

const (
	defaultApiPort             = 8080
	defaultMigrationsPath      = "migrations"
	defaultGeoIndexKey         = "vehicles_positions"
	defaultLookupWorkers       = 8
	defaultAuditCronExpression = "*/15 * * * *"
	defaultEventsBuffer        = 1024
)

type GeoIndexSettings struct {
	Backend string `yaml:"backend"`
	Key     string `yaml:"key"`
}

type Settings struct {
	ApiPort                 int                          `yaml:"api_port"`
	LogLevel                string                       `yaml:"log_level"`
	LogFilePath             string                       `yaml:"log_file_path"`
	LogMaxAgeDays           int                          `yaml:"log_max_age_days"`
	MigrationsPath          string                       `yaml:"migrations_path"`
	GeoIndex                GeoIndexSettings             `yaml:"geo_index"`
	RegistryLookupWorkers   int                          `yaml:"registry_lookup_workers"`
	RegistryLookupTimeoutMs int                          `yaml:"registry_lookup_timeout_ms"`
	AuditCronExpression     string                       `yaml:"audit_cron_expression"`
	EventsBuffer            int                          `yaml:"events_buffer"`
	EventsWorkers           int                          `yaml:"events_workers"`
	Store                   map[string]map[string]string `yaml:"storage"`
	Events                  map[string]map[string]string `yaml:"events"`
}

func (s *Settings) GetLogLevel() log.Level {
	var lvl log.Level

	switch strings.ToUpper(s.LogLevel) {
	case "DEBUG":
		lvl = log.DebugLevel
	case "INFO":
		lvl = log.InfoLevel
	case "WARN":
		lvl = log.WarnLevel
	case "ERROR":
		lvl = log.ErrorLevel
	default:
		lvl = log.InfoLevel
	}
	return lvl
}

func (s *Settings) GetApiAddress() string {
	return fmt.Sprintf(":%d", s.ApiPort)
}

func (s *Settings) GetRegistryLookupTimeout() time.Duration {
	return time.Duration(s.RegistryLookupTimeoutMs) * time.Millisecond
}

// GetStore возвращает секцию storage.<name>, пустую если секции нет
func (s *Settings) GetStore(name string) map[string]string {
	if params, ok := s.Store[name]; ok && params != nil {
		return params
	}
	return map[string]string{}
}

func New(confPath string) (Settings, error) {
	c := Settings{}
	data, err := os.ReadFile(confPath)
	if err != nil {
		return c, err
	}
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		return c, err
	}

	if c.ApiPort == 0 {
		c.ApiPort = defaultApiPort
	}
	if c.MigrationsPath == "" {
		c.MigrationsPath = defaultMigrationsPath
	}
	if c.GeoIndex.Key == "" {
		c.GeoIndex.Key = defaultGeoIndexKey
	}
	if c.AuditCronExpression == "" {
		c.AuditCronExpression = defaultAuditCronExpression
	}
	if c.EventsBuffer <= 0 {
		c.EventsBuffer = defaultEventsBuffer
	}

	switch c.GeoIndex.Backend {
	case GeoBackendRedis, GeoBackendMemory:
	case "":
		c.GeoIndex.Backend = GeoBackendRedis
	default:
		log.Errorf("Неизвестный тип геоиндекса '%s'. Используется '%s'.", c.GeoIndex.Backend, GeoBackendRedis)
		c.GeoIndex.Backend = GeoBackendRedis
	}

	if c.RegistryLookupWorkers <= 0 {
		c.RegistryLookupWorkers = defaultLookupWorkers
	}
	if c.RegistryLookupTimeoutMs < 0 {
		log.Errorf("Некорректный registry_lookup_timeout_ms (%d). Таймаут отключен.", c.RegistryLookupTimeoutMs)
		c.RegistryLookupTimeoutMs = 0
	}

	return c, nil
}
