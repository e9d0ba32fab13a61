package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"homefinder-listings/internal/auth"
	"homefinder-listings/internal/events"
	"homefinder-listings/internal/fixtures"
	"homefinder-listings/internal/handlers"
	"homefinder-listings/internal/middleware"
	"homefinder-listings/internal/repositories"
	"homefinder-listings/internal/services"
	"homefinder-listings/internal/transformers"
	"homefinder-listings/internal/validators"
	"homefinder-listings/pkg/cache"
	"homefinder-listings/pkg/config"
	"homefinder-listings/pkg/database"
	"homefinder-listings/pkg/listings"
	"homefinder-listings/pkg/logger"
	"homefinder-listings/pkg/metrics"
	"homefinder-listings/pkg/storage"

	"github.com/gin-gonic/gin"
)

const devJWTSecret = "homefinder-dev-secret"

type healthCheck struct {
	name string
	ping func(ctx context.Context) error
}

// App represents the application structure
type App struct {
	Config          *config.Config
	Router          *gin.Engine
	PropertyHandler *handlers.PropertyHandler
	ContactHandler  *handlers.ContactHandler
	UserHandler     *handlers.UserHandler
	RateLimiter     *middleware.RateLimiter
	Tokens          *auth.TokenIssuer
	Server          *http.Server

	properties  repositories.PropertyRepository
	contacts    repositories.ContactRepository
	users       repositories.UserRepository
	resultCache cache.Store
	publisher   events.Publisher
	images      *storage.LocalImageStorage
	checks      []healthCheck
	closers     []func()
	stopSweeper context.CancelFunc
}

// NewApp wires every dependency selected by cfg. On error everything opened
// so far is closed again.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	// Initialize infrastructure
	app.initializeMetrics()
	steps := []func(context.Context) error{
		app.initializeStorage,
		app.initializeCache,
		app.initializeEvents,
		app.initializeAuth,
		app.initializeDependencies,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			app.cleanup()
			return nil, err
		}
	}
	app.initializeRateLimiter()

	// Initialize web layer
	app.initializeRouter()

	return app, nil
}

// initialize Prometheus metrics
func (a *App) initializeMetrics() {
	metrics.Init()
}

// open the configured property, contact and user repositories
func (a *App) initializeStorage(ctx context.Context) error {
	props, err := fixtures.LoadProperties(a.Config.Storage.FixturesPath)
	if err != nil {
		return fmt.Errorf("failed to load property fixtures: %w", err)
	}
	contacts, err := fixtures.Contacts()
	if err != nil {
		return fmt.Errorf("failed to load contact fixtures: %w", err)
	}

	switch a.Config.Storage.Driver {
	case config.DriverMongo:
		client, db, err := database.ConnectMongo(ctx, a.Config.Database.URI, a.Config.Database.DBName)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func() { database.CloseMongo(client) })
		a.checks = append(a.checks, healthCheck{"mongo", func(ctx context.Context) error { return client.Ping(ctx, nil) }})

		if err := database.CreateIndexes(ctx, db); err != nil {
			return err
		}
		propertyRepo := repositories.NewMongoPropertyRepository(db)
		contactRepo := repositories.NewMongoContactRepository(db)
		if err := seed(ctx, "properties", propertyRepo, props); err != nil {
			return err
		}
		if err := seed(ctx, "contacts", contactRepo, contacts); err != nil {
			return err
		}
		a.properties, a.contacts = propertyRepo, contactRepo
		a.users = repositories.NewMongoUserRepository(db)

	case config.DriverMySQL:
		db, err := database.OpenMySQL(ctx, a.Config.MySQL.DSN)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func() { database.CloseMySQL(db) })
		a.checks = append(a.checks, healthCheck{"mysql", db.PingContext})

		if err := database.MigrateMySQL(ctx, db); err != nil {
			return err
		}
		propertyRepo := repositories.NewMySQLPropertyRepository(db)
		contactRepo := repositories.NewMySQLContactRepository(db)
		if err := seed(ctx, "properties", propertyRepo, props); err != nil {
			return err
		}
		if err := seed(ctx, "contacts", contactRepo, contacts); err != nil {
			return err
		}
		a.properties, a.contacts = propertyRepo, contactRepo
		a.users = repositories.NewMemoryUserRepository()

	default:
		a.properties = repositories.NewMemoryPropertyRepository(props)
		a.contacts = repositories.NewMemoryContactRepository(contacts)
		a.users = repositories.NewMemoryUserRepository()
	}

	logger.GlobalLogger.Printf("Using %s storage", a.Config.Storage.Driver)
	return nil
}

func seed[T any](ctx context.Context, name string, s repositories.Seeder[T], items []T) error {
	if err := s.Seed(ctx, items); err != nil {
		return fmt.Errorf("failed to seed %s: %w", name, err)
	}
	return nil
}

// initialize the result cache, Redis when enabled and in-process otherwise
func (a *App) initializeCache(ctx context.Context) error {
	if !a.Config.Redis.Enabled {
		a.resultCache = cache.NewMemoryStore()
		return nil
	}

	redisCfg := a.Config.RedisConfig()
	client, err := cache.NewRedisClient(ctx, redisCfg)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, func() { cache.CloseRedis(client) })
	a.checks = append(a.checks, healthCheck{"redis", func(ctx context.Context) error { return client.Ping(ctx).Err() }})
	a.resultCache = cache.NewRedisStore(client, redisCfg.KeyPrefix)
	return nil
}

// initialize the change event publisher
func (a *App) initializeEvents(context.Context) error {
	if !a.Config.RabbitMQ.Enabled {
		a.publisher = events.NoopPublisher{}
		return nil
	}

	publisher, err := events.NewRabbitPublisher(a.Config.RabbitMQ.URL, a.Config.RabbitMQ.Exchange)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, func() {
		if err := publisher.Close(); err != nil {
			logger.GlobalLogger.Errorf("Failed to close event publisher: %v", err)
		}
	})
	a.publisher = publisher
	return nil
}

func (a *App) initializeAuth(context.Context) error {
	secret := a.Config.JWT.Secret
	if secret == "" {
		logger.GlobalLogger.Printf("JWT_SECRET not set, using the development secret")
		secret = devJWTSecret
	}
	tokens, err := auth.NewTokenIssuer(secret, a.Config.JWT.Expiry)
	if err != nil {
		return err
	}
	a.Tokens = tokens
	return nil
}

// initialize the rate limiter
func (a *App) initializeRateLimiter() {
	a.RateLimiter = middleware.PerMinute(a.Config.RateLimit.RequestsPerMinute, a.Config.RateLimit.Burst)
	ctx, cancel := context.WithCancel(context.Background())
	a.stopSweeper = cancel
	go a.RateLimiter.Cleanup(ctx, time.Hour)
}

// initialize all dependencies
func (a *App) initializeDependencies(ctx context.Context) error {
	images, err := storage.NewLocalImageStorage(a.Config.Uploads.Dir, a.Config.MaxUploadBytes())
	if err != nil {
		return err
	}
	a.images = images

	// transformers
	addrTrans := transformers.NewAddressTransformer()
	propTrans := transformers.NewPropertyTransformer(addrTrans)

	// services
	propertyService := services.NewPropertyService(
		a.properties,
		validators.NewPropertyValidator(),
		propTrans,
		services.WithImageStorage(images),
		services.WithPublisher(a.publisher),
	)
	contactService := services.NewContactService(a.contacts, a.properties, validators.NewContactValidator(), a.publisher)
	userService := services.NewUserService(a.users, validators.NewUserValidator(), a.Tokens)

	if err := userService.EnsureAdmin(ctx, a.Config.Admin.Name, a.Config.Admin.Email, a.Config.Admin.Password); err != nil {
		return err
	}

	// reads go through the result cache; mutations clear it
	propertyStore := listings.NewClient(propertyService,
		listings.WithCache(a.resultCache),
		listings.WithFeaturedTTL(a.Config.Cache.FeaturedTTL),
	)

	// handlers
	a.PropertyHandler = handlers.NewPropertyHandler(propertyStore, a.Config.MaxUploadBytes())
	a.ContactHandler = handlers.NewContactHandler(contactService)
	a.UserHandler = handlers.NewUserHandler(userService)
	return nil
}

// set up the Gin router with middleware and routes
func (a *App) initializeRouter() {
	if a.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	a.Router = gin.New()
	a.setupMiddleware()
	a.setupRoutes()
}

// cleanup operations, in reverse order of initialization
func (a *App) cleanup() {
	if a.stopSweeper != nil {
		a.stopSweeper()
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
