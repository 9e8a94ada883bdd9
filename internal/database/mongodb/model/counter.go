package model

// Counter 每個集合一筆，Seq 為最後配出的 id
type Counter struct {
	ID  string `bson:"_id"`
	Seq int64  `bson:"seq"`
}
