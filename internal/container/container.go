package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/date-app-backend/config"
	"github.com/oksasatya/date-app-backend/internal/domain/repository"
	"github.com/oksasatya/date-app-backend/internal/infrastructure/rabbitmq"
	"github.com/oksasatya/date-app-backend/internal/store"
	"github.com/oksasatya/date-app-backend/pkg/helpers"
)

// app-level container to share constructed components across packages.
// Router modules, the purge CLI and the seeder build their services from
// these singletons. Optional infrastructure stays nil when not configured.

var (
	cfg    *config.Config
	logger *logrus.Logger

	docStore     store.Gateway
	authProvider repository.AuthProvider

	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client
	esClient    *elasticsearch.Client
	publisher   *rabbitmq.Publisher

	jwtManager *helpers.JWTManager
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger {
	if logger == nil {
		return helpers.NewDiscardLogger()
	}
	return logger
}

func SetStore(g store.Gateway)                   { docStore = g }
func GetStore() store.Gateway                    { return docStore }
func SetAuthProvider(p repository.AuthProvider)  { authProvider = p }
func GetAuthProvider() repository.AuthProvider   { return authProvider }
func SetPGPool(p *pgxpool.Pool)                  { pgPool = p }
func GetPGPool() *pgxpool.Pool                   { return pgPool }
func SetRedis(r *redis.Client)                   { redisClient = r }
func GetRedis() *redis.Client                    { return redisClient }
func SetGCS(s *storage.Client)                   { gcsClient = s }
func GetGCS() *storage.Client                    { return gcsClient }
func SetES(c *elasticsearch.Client)              { esClient = c }
func GetES() *elasticsearch.Client               { return esClient }
func SetPublisher(p *rabbitmq.Publisher)         { publisher = p }
func GetPublisher() *rabbitmq.Publisher          { return publisher }
func SetJWT(m *helpers.JWTManager)               { jwtManager = m }
func GetJWT() *helpers.JWTManager {
	if jwtManager == nil && cfg != nil {
		jwtManager = helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	}
	return jwtManager
}
