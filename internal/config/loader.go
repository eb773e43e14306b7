package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Load 读取并解析 TOML 配置文件，同时注入默认值与校验逻辑。
func Load(path string) (*Config, error) {
	if path == "" {
		path = "config.toml"
	}

	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置失败: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(durationDecodeHook())); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	applyGlobalDefaults(&cfg.Global)
	applyPluginDefaults(&cfg.Plugin)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// 相对路径以配置文件所在目录为基准，便于在任意工作目录启动。
	base := filepath.Dir(path)
	cfg.Global.ContentPath = resolvePath(base, cfg.Global.ContentPath)
	if cfg.Global.LanguagesPath != "" {
		cfg.Global.LanguagesPath = resolvePath(base, cfg.Global.LanguagesPath)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultPluginConfig()

	v.SetDefault("ListenPort", 8080)
	v.SetDefault("LogLevel", "info")
	v.SetDefault("LogFilePath", "")
	v.SetDefault("LogMaxSize", 100)
	v.SetDefault("LogMaxBackups", 10)
	v.SetDefault("LogCompress", true)
	v.SetDefault("ContentPath", "./content.yaml")
	v.SetDefault("LanguagesPath", "")
	v.SetDefault("Locale", "en_US")
	v.SetDefault("RequestTimeout", "15s")

	v.SetDefault("Plugin.Name", defaults.Name)
	v.SetDefault("Plugin.Version", defaults.Version)
	v.SetDefault("Plugin.EntityType", defaults.EntityType)
	v.SetDefault("Plugin.EntitySlug", defaults.EntitySlug)
	v.SetDefault("Plugin.CourseTaxonomy", defaults.CourseTaxonomy)
	v.SetDefault("Plugin.AssetsBase", defaults.AssetsBase)
	v.SetDefault("Plugin.FieldsURL", defaults.FieldsURL)
	v.SetDefault("Plugin.ShowFieldAdmin", defaults.ShowFieldAdmin)
	v.SetDefault("Plugin.FieldsEnabled", defaults.FieldsEnabled)
}

func applyGlobalDefaults(g *GlobalConfig) {
	if g.ListenPort == 0 {
		g.ListenPort = 8080
	}
	if strings.TrimSpace(g.Locale) == "" {
		g.Locale = "en_US"
	}
	if g.RequestTimeout.DurationValue() == 0 {
		g.RequestTimeout = Duration(15 * time.Second)
	}
}

func applyPluginDefaults(p *PluginConfig) {
	defaults := DefaultPluginConfig()
	if strings.TrimSpace(p.Version) == "" {
		p.Version = defaults.Version
	}
	if strings.TrimSpace(p.TextDomain) == "" {
		p.TextDomain = p.Name
	}
	if strings.TrimSpace(p.EntitySlug) == "" {
		p.EntitySlug = defaults.EntitySlug
	}
	p.EntitySlug = strings.Trim(p.EntitySlug, "/")
}

func resolvePath(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func durationDecodeHook() mapstructure.DecodeHookFunc {
	targetType := reflect.TypeOf(Duration(0))

	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != targetType {
			return data, nil
		}

		switch v := data.(type) {
		case string:
			if v == "" {
				return Duration(0), nil
			}
			if parsed, err := time.ParseDuration(v); err == nil {
				return Duration(parsed), nil
			}
			if seconds, err := strconv.ParseFloat(v, 64); err == nil {
				return Duration(time.Duration(seconds * float64(time.Second))), nil
			}
			return nil, fmt.Errorf("无法解析 Duration 字段: %s", v)
		case int:
			return Duration(time.Duration(v) * time.Second), nil
		case int64:
			return Duration(time.Duration(v) * time.Second), nil
		case float64:
			return Duration(time.Duration(v * float64(time.Second))), nil
		case time.Duration:
			return Duration(v), nil
		case Duration:
			return v, nil
		default:
			return nil, fmt.Errorf("不支持的 Duration 类型: %T", v)
		}
	}
}
