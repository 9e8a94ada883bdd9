package config

import "time"

// Assignment 員工職位/工作地點/主管編輯工作階段
type Assignment struct {
	// 閒置多久後回收工作階段（秒）
	SessionTTL int64 `mapstructure:"SESSION_TTL" json:"session_ttl" yaml:"session_ttl"`
	// 回收排程（含秒的 cron 表達式）
	SweepSpec string `mapstructure:"SWEEP_SPEC" json:"sweep_spec" yaml:"sweep_spec"`
	// 只在要求的工作地點種類改變時才清空工作地點與主管
	KindAwareReset bool `mapstructure:"KIND_AWARE_RESET" json:"kind_aware_reset" yaml:"kind_aware_reset"`
	// 載入參考資料的逾時（毫秒）
	LoadTimeout int64 `mapstructure:"LOAD_TIMEOUT" json:"load_timeout" yaml:"load_timeout"`
}

func (a Assignment) SessionTTLDuration() time.Duration {
	if a.SessionTTL <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(a.SessionTTL) * time.Second
}

func (a Assignment) LoadTimeoutDuration() time.Duration {
	if a.LoadTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(a.LoadTimeout) * time.Millisecond
}
