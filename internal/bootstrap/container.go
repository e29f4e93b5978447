package bootstrap

import (
	"context"
	"time"

	"notefiber-editor/internal/config"
	"notefiber-editor/internal/controller"
	"notefiber-editor/internal/pkg/logger"
	"notefiber-editor/internal/pkg/serverutils"
	"notefiber-editor/internal/repository/cache"
	"notefiber-editor/internal/repository/memory"
	"notefiber-editor/internal/repository/unitofwork"
	"notefiber-editor/internal/service"

	pktNats "notefiber-editor/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const bootModule = "Bootstrap"

type Container struct {
	Logger logger.ILogger

	NoteService    service.INoteService
	NoteController controller.INoteController

	// Exposed for main.go to run
	ConsumerService service.IConsumerService

	closers []func()
}

// NewContainer wires the notes store. A nil db selects the in-memory
// repository; empty REDIS_URL and NATS_URL select the in-process cache and
// disable event forwarding.
func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	c := &Container{Logger: sysLogger}

	// 1. Persistence
	var uowFactory unitofwork.RepositoryFactory
	if db != nil {
		uowFactory = unitofwork.NewRepositoryFactory(db)
	} else {
		sysLogger.Warn(bootModule, "No database configured, notes are kept in memory", nil)
		uowFactory = memory.NewRepositoryFactory()
	}

	// 2. Cache
	var noteCache cache.NoteCache = cache.NewMemoryNoteCache()
	if cfg.App.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := cache.NewRedisClient(ctx, cfg.App.RedisURL)
		cancel()
		if err != nil {
			sysLogger.Warn(bootModule, "Redis unavailable, using in-memory cache", map[string]interface{}{"error": err.Error()})
		} else {
			noteCache = cache.NewRedisNoteCache(rdb)
			c.closers = append(c.closers, func() { rdb.Close() })
		}
	}

	// 3. Event bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { pubSub.Close() })

	var eventPublisher service.EventPublisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn(bootModule, "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	publisherService := service.NewPublisherService(cfg.Topics.NoteChanged, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Topics.NoteChanged, eventPublisher, sysLogger)

	// 4. Services and controllers
	c.NoteService = service.NewNoteService(uowFactory, noteCache, publisherService, sysLogger)

	var middleware []fiber.Handler
	if cfg.App.JwtSecret != "" {
		middleware = append(middleware, serverutils.JwtMiddleware(cfg.App.JwtSecret))
	}
	c.NoteController = controller.NewNoteController(c.NoteService, middleware...)

	return c, nil
}

// Close releases connections in reverse order of acquisition.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.Logger.Sync()
}
