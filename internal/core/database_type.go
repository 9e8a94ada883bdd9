package core

import "go.mongodb.org/mongo-driver/bson"

// ─── Database Types ────────────────────────────────────────────────────────────

type MongoDatabaseName string
type MongoCollection string
type RedisKey string
type FluentdSubTag string

// ─── MongoDB ───────────────────────────────────────────────────────────────────

// 未設定 MONGODB__DATABASE 時使用
const MongoDBBackoffice MongoDatabaseName = "backoffice"

const (
	MongoCollectionPositions    MongoCollection = "positions"
	MongoCollectionSupermarkets MongoCollection = "supermarkets"
	MongoCollectionWarehouses   MongoCollection = "warehouses"
	MongoCollectionAddresses    MongoCollection = "addresses"
	MongoCollectionEmployees    MongoCollection = "employees"
	MongoCollectionCounters     MongoCollection = "counters" // 遞增 id 序號
)

// ─── Redis Keys ────────────────────────────────────────────────────────────────

const (
	RedisKeyServerName RedisKey = "backoffice" // 伺服器名稱（預設前綴）
	RedisKeyCatalog    RedisKey = "catalog"    // 參考資料快取
)

// ─── Fluentd ───────────────────────────────────────────────────────────────────

const (
	FluentdRequest       FluentdSubTag = "request_log"
	FluentdResponse      FluentdSubTag = "response_log"
	FluentdEmployeeAudit FluentdSubTag = "employee_audit"
)

type ListOptions struct {
	Filter bson.M `json:"filter,omitempty" bson:"filter,omitempty"`
	Page   int64  `json:"page,omitempty" bson:"page,omitempty"`
	Size   int64  `json:"size,omitempty" bson:"size,omitempty"`
}
