package config

import "time"

// Catalog 參考資料（職位、超市、倉庫、地址）的 Redis 快取
type Catalog struct {
	CacheEnabled bool `mapstructure:"CACHE_ENABLED" json:"cache_enabled" yaml:"cache_enabled"`
	// 快取存活時間（秒）
	CacheTTL int64 `mapstructure:"CACHE_TTL" json:"cache_ttl" yaml:"cache_ttl"`
	// 預熱排程（含秒的 cron 表達式），空值代表不預熱
	WarmSpec string `mapstructure:"WARM_SPEC" json:"warm_spec" yaml:"warm_spec"`
}

func (c Catalog) CacheTTLDuration() time.Duration {
	if c.CacheTTL <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.CacheTTL) * time.Second
}
