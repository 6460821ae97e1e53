package container

import (
	"context"
	"fmt"

	fb "firebase.google.com/go/v4"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/date-app-backend/config"
	esinfra "github.com/oksasatya/date-app-backend/internal/infrastructure/elasticsearch"
	fbinfra "github.com/oksasatya/date-app-backend/internal/infrastructure/firebase"
	"github.com/oksasatya/date-app-backend/internal/infrastructure/gcs"
	pginfra "github.com/oksasatya/date-app-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/date-app-backend/internal/infrastructure/rabbitmq"
	redisinfra "github.com/oksasatya/date-app-backend/internal/infrastructure/redis"
	"github.com/oksasatya/date-app-backend/internal/store"
)

// Options tunes Bootstrap for the binary calling it.
type Options struct {
	// RunMigrations applies pending Postgres migrations when the local auth
	// provider is selected.
	RunMigrations bool
	// SkipOptional leaves Redis, GCS, Elasticsearch and RabbitMQ unset.
	SkipOptional bool
}

// Bootstrap connects the backends selected by c and stores them in the
// container. The document store and the auth provider are required;
// optional services that fail to connect are logged and left nil. The
// returned cleanup closes everything that was opened.
func Bootstrap(ctx context.Context, c *config.Config, log *logrus.Logger, opts Options) (func(), error) {
	SetConfig(c)
	SetLogger(log)

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (func(), error) {
		cleanup()
		return func() {}, err
	}

	var app *fb.App
	if c.UsesFirebase() {
		a, err := fbinfra.NewApp(ctx, c.FirebaseCredentialsFile, c.FirebaseDatabaseURL, c.FirebaseProjectID)
		if err != nil {
			return fail(err)
		}
		app = a
	}

	switch c.StoreBackend {
	case config.StoreFirebase:
		client, err := app.Database(ctx)
		if err != nil {
			return fail(fmt.Errorf("firebase database: %w", err))
		}
		SetStore(fbinfra.NewRTDBGateway(client))
	default:
		db, err := store.OpenBadger(c.BadgerPath, false, log)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() { _ = db.Close() })
		SetStore(store.NewBadgerGateway(db))
	}

	switch c.AuthBackend {
	case config.AuthFirebase:
		client, err := app.Auth(ctx)
		if err != nil {
			return fail(fmt.Errorf("firebase auth: %w", err))
		}
		SetAuthProvider(fbinfra.NewAuthProvider(client))
	default:
		if opts.RunMigrations {
			if err := pginfra.RunMigrations(c.PostgresDSN(), c.MigrationsDir, log); err != nil {
				return fail(fmt.Errorf("migrations: %w", err))
			}
		}
		pool, err := pginfra.NewPool(ctx, c.PostgresDSN(), c.DBMaxConns, c.DBMinConns, c.DBMaxConnLife)
		if err != nil {
			return fail(fmt.Errorf("connect postgres: %w", err))
		}
		closers = append(closers, pool.Close)
		SetPGPool(pool)
		SetAuthProvider(pginfra.NewAccountRepository(pool))
	}

	if opts.SkipOptional {
		return cleanup, nil
	}

	rdb := redisinfra.NewClient(c.RedisAddr, c.RedisPassword, c.RedisDB)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("redis unavailable; sessions and rate limits disabled")
		_ = rdb.Close()
	} else {
		closers = append(closers, func() { _ = rdb.Close() })
		SetRedis(rdb)
	}

	if c.GCSBucket != "" {
		client, err := gcs.NewClient(ctx, c.GCSCredentialsJSONPath)
		if err != nil {
			log.WithError(err).Warn("gcs unavailable; image upload disabled")
		} else {
			closers = append(closers, func() { _ = client.Close() })
			SetGCS(client)
		}
	}

	if addrs := c.ESAddrs(); len(addrs) > 0 {
		client, err := esinfra.NewClient(addrs, c.ElasticsearchUser, c.ElasticsearchPass)
		if err != nil {
			log.WithError(err).Warn("elasticsearch unavailable; search disabled")
		} else {
			SetES(client)
		}
	}

	if c.MailSendEnabled {
		pub, err := rabbitmq.NewPublisher(c.RabbitMQURL, c.RabbitMQNotifyQueue)
		if err != nil {
			log.WithError(err).Warn("rabbitmq unavailable; notifications disabled")
		} else {
			closers = append(closers, pub.Close)
			SetPublisher(pub)
		}
	}

	return cleanup, nil
}
