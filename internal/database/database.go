package database

import (
	client "backoffice/internal/database/client"
	fluentdRepo "backoffice/internal/database/fluentd/repository"
	mongoRepo "backoffice/internal/database/mongodb/repository"
	redisRepo "backoffice/internal/database/redis/repository"

	"github.com/google/wire"
)

// ProviderSet 定義所有 DB Client 的依賴
var ProviderSet = wire.NewSet(
	client.NewMongoClient,
	client.NewRedisClient,
	client.NewFluentdClient,
	mongoRepo.ProviderSet,
	redisRepo.ProviderSet,
	fluentdRepo.ProviderSet,
)
