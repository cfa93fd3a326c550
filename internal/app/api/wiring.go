package api

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/storage"
	fb "firebase.google.com/go/v4"
	"gorm.io/gorm"

	authfirebase "github.com/Apurer/pizzeria-console/internal/domains/auth/adapters/firebase"
	authmemory "github.com/Apurer/pizzeria-console/internal/domains/auth/adapters/memory"
	authsqlite "github.com/Apurer/pizzeria-console/internal/domains/auth/adapters/persistence/sqlite"
	authapp "github.com/Apurer/pizzeria-console/internal/domains/auth/application"
	authports "github.com/Apurer/pizzeria-console/internal/domains/auth/ports"
	menudocument "github.com/Apurer/pizzeria-console/internal/domains/menu/adapters/document"
	menuobs "github.com/Apurer/pizzeria-console/internal/domains/menu/adapters/observability"
	photofirebase "github.com/Apurer/pizzeria-console/internal/domains/menu/adapters/photos/firebase"
	"github.com/Apurer/pizzeria-console/internal/domains/menu/adapters/photos/local"
	photomemory "github.com/Apurer/pizzeria-console/internal/domains/menu/adapters/photos/memory"
	menuapp "github.com/Apurer/pizzeria-console/internal/domains/menu/application"
	menuports "github.com/Apurer/pizzeria-console/internal/domains/menu/ports"
	notifdocument "github.com/Apurer/pizzeria-console/internal/domains/notifications/adapters/document"
	notifrabbitmq "github.com/Apurer/pizzeria-console/internal/domains/notifications/adapters/rabbitmq"
	notifapp "github.com/Apurer/pizzeria-console/internal/domains/notifications/application"
	notifdomain "github.com/Apurer/pizzeria-console/internal/domains/notifications/domain"
	notifports "github.com/Apurer/pizzeria-console/internal/domains/notifications/ports"
	orderdocument "github.com/Apurer/pizzeria-console/internal/domains/orders/adapters/document"
	ordersobs "github.com/Apurer/pizzeria-console/internal/domains/orders/adapters/observability"
	orderpostgres "github.com/Apurer/pizzeria-console/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/Apurer/pizzeria-console/internal/domains/orders/application"
	ordersports "github.com/Apurer/pizzeria-console/internal/domains/orders/ports"
	rejectionsmemory "github.com/Apurer/pizzeria-console/internal/domains/rejections/adapters/memory"
	rejectionssqlite "github.com/Apurer/pizzeria-console/internal/domains/rejections/adapters/persistence/sqlite"
	rejectionsapp "github.com/Apurer/pizzeria-console/internal/domains/rejections/application"
	rejectionsports "github.com/Apurer/pizzeria-console/internal/domains/rejections/ports"
	shopdocument "github.com/Apurer/pizzeria-console/internal/domains/shop/adapters/document"
	shopapp "github.com/Apurer/pizzeria-console/internal/domains/shop/application"
	"github.com/Apurer/pizzeria-console/internal/platform/docstore"
	firestoredocstore "github.com/Apurer/pizzeria-console/internal/platform/docstore/firestore"
	memorydocstore "github.com/Apurer/pizzeria-console/internal/platform/docstore/memory"
	mongodocstore "github.com/Apurer/pizzeria-console/internal/platform/docstore/mongo"
	platformfirebase "github.com/Apurer/pizzeria-console/internal/platform/firebase"
	"github.com/Apurer/pizzeria-console/internal/platform/migrations"
	platformobservability "github.com/Apurer/pizzeria-console/internal/platform/observability"
	platformpostgres "github.com/Apurer/pizzeria-console/internal/platform/postgres"
	platformrabbitmq "github.com/Apurer/pizzeria-console/internal/platform/rabbitmq"
	platformsqlite "github.com/Apurer/pizzeria-console/internal/platform/sqlite"
)

// Components holds the use cases shared by the API and the worker.
type Components struct {
	Auth     *authapp.Service
	Shop     *shopapp.Service
	Menu     menuports.Service
	Photos   *local.Source
	Orders   ordersports.Service
	Notifier *notifapp.Service
	Reasons  *rejectionsapp.Service
}

type cleanups []func()

func (c *cleanups) add(fn func()) { *c = append(*c, fn) }

func (c cleanups) run() {
	for i := len(c) - 1; i >= 0; i-- {
		c[i]()
	}
}

// Wire connects every adapter selected by cfg. Unreachable backends fall back
// to in-memory adapters; only invalid local state is fatal.
func Wire(ctx context.Context, cfg Config, instruments *platformobservability.Instruments) (*Components, func(), error) {
	logger := instruments.Logger
	var done cleanups

	var app *fb.App
	if cfg.UsesFirebase() {
		var err error
		app, err = platformfirebase.NewApp(ctx, platformfirebase.Config{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsFile: cfg.FirebaseCredentialsFile,
			StorageBucket:   cfg.FirebaseStorageBucket,
		})
		if err != nil {
			logger.Warn("firebase unavailable, falling back to memory adapters", slog.String("error", err.Error()))
		}
	}

	docs := buildDocStore(ctx, cfg, app, logger, &done)
	embedded := buildLocalDB(cfg, logger, &done)

	source, err := local.NewSource(cfg.UploadDir)
	if err != nil {
		done.run()
		return nil, nil, fmt.Errorf("UPLOAD_DIR: %w", err)
	}

	auth := authapp.NewService(buildIdentityProvider(ctx, cfg, app, logger), buildSessionStore(embedded, logger))
	shop := shopapp.NewService(shopdocument.NewStore(docs, cfg.ShopID))

	menu := menuobs.New(
		menuapp.NewService(menudocument.NewRepository(docs), buildPhotoStore(ctx, cfg, app, logger), source,
			menuapp.WithTiming(menuapp.Timing{
				Timeout:     menuapp.DefaultTiming().Timeout,
				ResizeDelay: cfg.PhotoResizeDelay,
				DeleteDelay: cfg.PhotoDeleteDelay,
			})),
		menuobs.WithLogger(logger),
		menuobs.WithTracer(instruments.Tracer("internal.menu.application")),
		menuobs.WithMeter(instruments.Meter("internal.menu.application")),
	)

	orders := ordersobs.New(
		ordersapp.NewService(buildOrderRepository(ctx, cfg, docs, logger, &done),
			ordersapp.WithTiming(ordersapp.Timing{
				Timeout:    ordersapp.DefaultTiming().Timeout,
				WriteDelay: cfg.OrderWriteDelay,
			})),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	renderer, err := notifdomain.NewRenderer(notifdomain.Branding{
		LogoURL: cfg.MailLogoURL,
		Phone:   cfg.MailPhone,
		Hours:   cfg.MailHours,
	}.Merge(notifdomain.DefaultBranding()))
	if err != nil {
		done.run()
		return nil, nil, fmt.Errorf("build mail renderer: %w", err)
	}
	notifier := notifapp.NewService(renderer, buildSink(cfg, docs, logger, &done), notifapp.WithLogger(logger))

	reasons := rejectionsapp.NewService(buildReasonCache(embedded, logger), rejectionsapp.WithLogger(logger))

	return &Components{
		Auth:     auth,
		Shop:     shop,
		Menu:     menu,
		Photos:   source,
		Orders:   orders,
		Notifier: notifier,
		Reasons:  reasons,
	}, done.run, nil
}

func buildDocStore(ctx context.Context, cfg Config, app *fb.App, logger *slog.Logger, done *cleanups) docstore.Store {
	switch cfg.DocumentStore {
	case StoreFirestore:
		if app == nil {
			break
		}
		client, err := app.Firestore(ctx)
		if err != nil {
			logger.Warn("failed to open firestore, falling back to memory", slog.String("error", err.Error()))
			break
		}
		done.add(func() { _ = client.Close() })
		logger.Info("document store configured with firestore")
		return firestoredocstore.NewStore(client)
	case StoreMongo:
		client, err := mongodocstore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			logger.Warn("failed to connect to mongo, falling back to memory", slog.String("error", err.Error()))
			break
		}
		done.add(func() { _ = client.Disconnect(context.Background()) })
		logger.Info("document store configured with mongo", slog.String("database", cfg.MongoDatabase))
		return mongodocstore.NewStore(client.Database(cfg.MongoDatabase))
	}
	logger.Warn("using in-memory document store")
	return memorydocstore.NewStore()
}

// localDB is the embedded database, nil when it could not be opened.
type localDB struct {
	db *gorm.DB
}

func buildLocalDB(cfg Config, logger *slog.Logger, done *cleanups) localDB {
	db, err := platformsqlite.Open(cfg.ReasonCachePath)
	if err == nil {
		err = migrations.RunLocal(db)
	}
	if err != nil {
		logger.Warn("local database unavailable, falling back to memory", slog.String("path", cfg.ReasonCachePath), slog.String("error", err.Error()))
		return localDB{}
	}
	done.add(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	logger.Info("local database opened", slog.String("path", cfg.ReasonCachePath))
	return localDB{db: db}
}

func buildSessionStore(l localDB, logger *slog.Logger) authports.SessionStore {
	if l.db == nil {
		logger.Warn("using in-memory session store")
		return authmemory.NewSessionStore()
	}
	return authsqlite.NewSessionStore(l.db)
}

func buildReasonCache(l localDB, logger *slog.Logger) rejectionsports.Cache {
	if l.db == nil {
		logger.Warn("using in-memory rejection reason cache")
		return rejectionsmemory.NewCache()
	}
	return rejectionssqlite.NewCache(l.db)
}

func buildIdentityProvider(ctx context.Context, cfg Config, app *fb.App, logger *slog.Logger) authports.IdentityProvider {
	if cfg.IdentityProvider == StoreFirebase && app != nil {
		client, err := app.Auth(ctx)
		if err == nil {
			logger.Info("identity provider configured with firebase auth")
			return authfirebase.NewIdentityProvider(client)
		}
		logger.Warn("failed to open firebase auth, falling back to memory", slog.String("error", err.Error()))
	}
	return authmemory.NewIdentityProvider()
}

func buildPhotoStore(ctx context.Context, cfg Config, app *fb.App, logger *slog.Logger) menuports.PhotoStore {
	if cfg.PhotoStore == StoreFirebase && app != nil {
		bucket, err := openBucket(ctx, app)
		if err == nil {
			logger.Info("photo store configured with firebase storage", slog.String("bucket", cfg.FirebaseStorageBucket))
			return photofirebase.NewStore(bucket)
		}
		logger.Warn("failed to open storage bucket, falling back to memory", slog.String("error", err.Error()))
	}
	return photomemory.NewStore(photomemory.WithResizePipeline())
}

func openBucket(ctx context.Context, app *fb.App) (*storage.BucketHandle, error) {
	client, err := app.Storage(ctx)
	if err != nil {
		return nil, err
	}
	return client.DefaultBucket()
}

func buildOrderRepository(ctx context.Context, cfg Config, docs docstore.Store, logger *slog.Logger, done *cleanups) ordersports.Repository {
	if cfg.OrderStore != StorePostgres {
		return orderdocument.NewRepository(docs, cfg.Location)
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to the document store", slog.String("error", err.Error()))
		return orderdocument.NewRepository(docs, cfg.Location)
	}
	if err := migrations.Run(db); err != nil {
		platformpostgres.Close(db)
		logger.Warn("failed to migrate postgres, falling back to the document store", slog.String("error", err.Error()))
		return orderdocument.NewRepository(docs, cfg.Location)
	}
	done.add(func() { platformpostgres.Close(db) })
	logger.Info("order repository configured with postgres")
	return orderpostgres.NewRepository(db, cfg.Location)
}

func buildSink(cfg Config, docs docstore.Store, logger *slog.Logger, done *cleanups) notifports.Sink {
	if cfg.NotificationSink != SinkRabbitMQ {
		return notifdocument.NewSink(docs)
	}
	conn, err := platformrabbitmq.Dial(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		logger.Warn("failed to connect to rabbitmq, writing mail to the document store", slog.String("error", err.Error()))
		return notifdocument.NewSink(docs)
	}
	done.add(func() { _ = conn.Close() })
	logger.Info("notification sink configured with rabbitmq", slog.String("exchange", cfg.AMQPExchange))
	return notifrabbitmq.NewSink(conn.Channel, cfg.AMQPExchange, cfg.AMQPRoutingKey)
}
