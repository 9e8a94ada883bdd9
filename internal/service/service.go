package service

import (
	client "backoffice/internal/database/client"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewMongoCatalogSource,
	wire.Bind(new(CatalogSource), new(*MongoCatalogSource)),
	NewCatalogLoader,
	NewEmployeeService,
	wire.Bind(new(EmployeeReader), new(*EmployeeService)),
	wire.Bind(new(EmployeeWriter), new(*EmployeeService)),
	NewAssignmentService,
	NewCatalogService,
	NewPositionService,
	ProvideHealthService,
)

// ProvideHealthService readiness 需要 MongoDB 與 Redis 都可連線
func ProvideHealthService(mongoClient *client.MongoClient, redisClient *client.RedisClient) *HealthService {
	return NewHealthService(mongoClient, redisClient)
}
