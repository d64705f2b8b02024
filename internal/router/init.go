package router

import (
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/event-portal/internal/application"
	"github.com/oksasatya/event-portal/internal/container"
	repo "github.com/oksasatya/event-portal/internal/domain/repository"
	"github.com/oksasatya/event-portal/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/event-portal/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/event-portal/internal/interface/http"
	"github.com/oksasatya/event-portal/internal/router/modules"
	"github.com/oksasatya/event-portal/pkg/helpers"
)

// Services groups the application layer built from the container.
type Services struct {
	Auth      *application.AuthService
	Directory *application.DirectoryService
	Profiles  *application.ProfileService
	Events    *application.EventService
	Uploads   *application.UploadService
}

// BuildServices wires repositories and optional backends into services.
// Absent backends are passed as untyped nil so the services can detect them.
func BuildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	var (
		accounts repo.AccountRepository
		events   repo.EventRepository
	)
	if cfg.InMemoryStore() {
		accounts, events = memory.NewAccountRepository(), memory.NewEventRepository()
	} else {
		accounts = pginfra.NewAccountRepository(container.GetPGPool())
		events = pginfra.NewEventRepository(container.GetPGPool())
	}

	var pub application.JobPublisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}
	var cache redis.Cmdable
	if r := container.GetRedis(); r != nil {
		cache = r
	}
	var signer helpers.URLSigner
	if g := container.GetGCS(); g != nil && cfg.GCSBucket != "" {
		signer = g.Bucket(cfg.GCSBucket)
	}

	notifier := application.NewNotifier(pub, cfg, logger)
	indexer := application.NewAccountIndexer(container.GetES(), cfg.ESAccountsIndex, logger)
	auth := application.NewAuthService(accounts, container.GetSessions(), logger)

	return Services{
		Auth:      auth,
		Directory: application.NewDirectoryService(accounts, indexer, notifier, logger),
		Profiles:  application.NewProfileService(accounts, auth, indexer, notifier, logger),
		Events:    application.NewEventService(events, cache, cfg.EventCacheTTL, logger),
		Uploads:   application.NewUploadService(signer, cfg.GCSBucket, cfg.UploadURLTTL, logger),
	}
}

// InitModules registers every feature module on top of the built services.
// Call once during startup after the container is populated.
func InitModules(r *Registry, svc Services) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	cookies := container.GetCookies()

	r.Add(modules.NewAuthModule(
		handlers.NewAuthHandler(svc.Auth, cookies, logger),
		handlers.NewAccountHandler(svc.Directory, svc.Profiles, cookies, logger),
		svc.Auth, cookies, logger,
	))
	r.Add(modules.NewEventModule(handlers.NewEventHandler(svc.Events, logger), svc.Auth, cookies, logger))
	r.Add(modules.NewUploadModule(handlers.NewUploadHandler(svc.Uploads, logger), svc.Auth, cookies, logger))
	r.Add(modules.NewDebugModule(cfg.DebugMetricsEnabled))
}
