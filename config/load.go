package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Source 設定檔來源，EnvFile 優先；兩者皆空時只讀環境變數
type Source struct {
	EnvFile  string
	YAMLFile string
}

// Load 讀取設定，巢狀欄位以 "__" 對應環境變數，例如 ASSIGNMENT__SESSION_TTL。
// 有設定檔時會監看變更並就地更新回傳的 Configuration，onChange 可為 nil。
func Load(src Source, onChange func(name string)) (*Configuration, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter("__"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	v.AutomaticEnv()

	switch {
	case src.EnvFile != "":
		v.SetConfigFile(src.EnvFile)
		v.SetConfigType("env")
	case src.YAMLFile != "":
		v.SetConfigFile(src.YAMLFile)
		v.SetConfigType("yaml")
	}

	conf := &Configuration{}
	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
		}
		v.OnConfigChange(func(in fsnotify.Event) {
			if err := v.Unmarshal(conf); err != nil {
				return
			}
			if onChange != nil {
				onChange(in.Name)
			}
		})
		v.WatchConfig()
	}

	bindEnvs(v, reflect.TypeOf(Configuration{}))
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return conf, nil
}

// bindEnvs AutomaticEnv 只認得已知的 key，這裡把每個葉欄位都註冊一次
func bindEnvs(v *viper.Viper, t reflect.Type, prefix ...string) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		key := field.Tag.Get("mapstructure")
		if key == "" || key == "-" {
			key = field.Name
		}
		path := append(append([]string{}, prefix...), key)
		ft := field.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct {
			bindEnvs(v, ft, path...)
			continue
		}
		_ = v.BindEnv(strings.Join(path, "__"))
	}
}
