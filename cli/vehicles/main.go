package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/daniil11ru/vehicles/cli/vehicles/api"
	"github.com/daniil11ru/vehicles/cli/vehicles/config"
	"github.com/daniil11ru/vehicles/cli/vehicles/connector"
	"github.com/daniil11ru/vehicles/cli/vehicles/connector/implementation"
	"github.com/daniil11ru/vehicles/cli/vehicles/domain"
	"github.com/daniil11ru/vehicles/cli/vehicles/geoindex/memory"
	redisindex "github.com/daniil11ru/vehicles/cli/vehicles/geoindex/redis"
	"github.com/daniil11ru/vehicles/cli/vehicles/source"
	"github.com/daniil11ru/vehicles/cli/vehicles/storage"
	"github.com/robfig/cron/v3"

	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const shutdownTimeout = 10 * time.Second

type geoIndex interface {
	domain.PositionWriter
	domain.PositionSearcher
	domain.PositionLister
}

func main() {
	configFilePath := ""
	flag.StringVar(&configFilePath, "c", "", "путь до конфига")
	flag.Parse()
	settings, err := getConfig(configFilePath)
	if err != nil {
		log.Fatalf("Не удалось получить конфиг: %v", err)
		return
	}

	configureLogging(settings)

	if err := run(settings); err != nil {
		log.Fatal(err)
	}
}

func getConfig(configFilePath string) (config.Settings, error) {
	if configFilePath == "" {
		return config.Settings{}, errors.New("не задан путь до конфига")
	}

	c, err := config.New(configFilePath)
	if err != nil {
		return c, fmt.Errorf("ошибка парсинга конфига: %w", err)
	}

	return c, nil
}

func configureLogging(settings config.Settings) {
	log.SetLevel(settings.GetLogLevel())

	consoleFmt := &log.TextFormatter{ForceColors: true, FullTimestamp: false}
	log.SetFormatter(consoleFmt)
	log.SetOutput(os.Stdout)

	if settings.LogFilePath != "" {
		logDir := filepath.Dir(settings.LogFilePath)
		if _, err := os.Stat(logDir); os.IsNotExist(err) {
			if err := os.MkdirAll(logDir, os.ModePerm); err != nil {
				log.Fatalf("Не получилось создать директорию для логов: %v", err)
			}
		}

		lumberjackLogger := &lumberjack.Logger{
			Filename:   settings.LogFilePath,
			MaxSize:    100,
			MaxBackups: 366,
			MaxAge:     settings.LogMaxAgeDays,
			Compress:   true,
		}

		fileFmt := &log.TextFormatter{DisableColors: true, FullTimestamp: true}
		hook := lfshook.NewHook(lfshook.WriterMap{
			log.PanicLevel: lumberjackLogger,
			log.FatalLevel: lumberjackLogger,
			log.ErrorLevel: lumberjackLogger,
			log.WarnLevel:  lumberjackLogger,
			log.InfoLevel:  lumberjackLogger,
			log.DebugLevel: lumberjackLogger,
			log.TraceLevel: lumberjackLogger,
		}, fileFmt)

		log.AddHook(hook)
	}
}

func run(settings config.Settings) error {
	var closers []connector.Connector
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].Close(); err != nil {
				log.WithField("err", err).Warn("Ошибка закрытия соединения")
			}
		}
	}()
	health := map[string]connector.Pinger{}

	postgres := &implementation.PostgresConnector{}
	if err := postgres.Connect(settings.GetStore("postgresql")); err != nil {
		return fmt.Errorf("не удалось подключиться к реестру: %w", err)
	}
	closers = append(closers, postgres)
	health["postgres"] = postgres

	if err := applyMigrations(migrationsSource(settings.MigrationsPath), postgres.Settings().URL()); err != nil {
		return err
	}

	registry, err := source.NewDefaultRegistry(postgres.GetConnection())
	if err != nil {
		return fmt.Errorf("не удалось инициализировать реестр: %w", err)
	}

	var index geoIndex
	switch settings.GeoIndex.Backend {
	case config.GeoBackendMemory:
		log.Warn("Используется геоиндекс в памяти: позиции не переживут перезапуск")
		index = memory.New()
	default:
		redis := &implementation.RedisConnector{}
		if err := redis.Connect(settings.GetStore("redis")); err != nil {
			return fmt.Errorf("не удалось подключиться к геоиндексу: %w", err)
		}
		closers = append(closers, redis)
		health["redis"] = redis
		index = redisindex.New(redis.GetClient(), settings.GeoIndex.Key)
	}

	updatePosition := &domain.UpdatePosition{GeoIndex: index}
	if len(settings.Events) > 0 {
		repository := storage.NewRepository()
		if err := repository.LoadStorages(settings.Events); err != nil {
			_ = repository.Close()
			return err
		}
		events := storage.NewAsyncRepository(repository, settings.EventsBuffer, settings.EventsWorkers)
		defer func() {
			events.Close()
			if err := repository.Close(); err != nil {
				log.WithField("err", err).Warn("Ошибка закрытия получателей событий")
			}
		}()
		updatePosition.Events = events
	}

	findNearby := &domain.FindNearbyVehicles{
		GeoIndex:      index,
		Registry:      registry,
		LookupWorkers: settings.RegistryLookupWorkers,
		LookupTimeout: settings.GetRegistryLookupTimeout(),
	}
	createVehicle := &domain.CreateVehicle{Registry: registry}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler, err := scheduleAudit(ctx, settings.AuditCronExpression, &domain.AuditPositions{GeoIndex: index, Registry: registry})
	if err != nil {
		return err
	}
	defer scheduler.Stop()

	handler := api.NewHandler(findNearby, updatePosition, createVehicle, registry)
	controller := api.NewController(handler, api.NewHealthChecker(health))
	return runApi(ctx, controller, settings.GetApiAddress())
}

func scheduleAudit(ctx context.Context, expression string, audit *domain.AuditPositions) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(expression, func() {
		if _, err := audit.Run(ctx); err != nil {
			log.WithField("err", err).Error("Не удалось выполнить сверку геоиндекса с реестром")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("некорректное расписание сверки '%s': %w", expression, err)
	}
	c.Start()
	log.Infof("Запланирована сверка геоиндекса с реестром: %s", expression)
	return c, nil
}

func runApi(ctx context.Context, controller *api.Controller, address string) error {
	server := &http.Server{
		Addr:              address,
		Handler:           controller.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Запуск API на %s", address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("не удалось запустить API: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Остановка API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func migrationsSource(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	return "file://" + path
}

func applyMigrations(sourceUrl, databaseUrl string) error {
	m, err := migrate.New(sourceUrl, databaseUrl)
	if err != nil {
		return fmt.Errorf("ошибка инициализации миграций: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Info("Нет новых миграций для применения")
			return nil
		}
		return fmt.Errorf("ошибка применения миграций: %w", err)
	}

	log.Info("Миграции успешно применены")
	return nil
}
