package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration 提供更灵活的反序列化能力，同时兼容纯秒整数与 Go Duration 字符串。
type Duration time.Duration

// UnmarshalText 使 Viper 可以识别诸如 "30s"、"5m" 或纯数字秒值等配置写法。
func (d *Duration) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		*d = Duration(0)
		return nil
	}

	if parsed, err := time.ParseDuration(raw); err == nil {
		*d = Duration(parsed)
		return nil
	}

	if seconds, err := strconv.ParseInt(raw, 10, 64); err == nil {
		*d = Duration(time.Duration(seconds) * time.Second)
		return nil
	}

	return fmt.Errorf("invalid duration value: %s", raw)
}

// DurationValue 返回真实的 time.Duration，便于调用方计算。
func (d Duration) DurationValue() time.Duration {
	return time.Duration(d)
}

// GlobalConfig 描述宿主运行时行为：监听端口、日志、内容数据与语言包位置。
type GlobalConfig struct {
	ListenPort     int      `mapstructure:"ListenPort"`
	LogLevel       string   `mapstructure:"LogLevel"`
	LogFilePath    string   `mapstructure:"LogFilePath"`
	LogMaxSize     int      `mapstructure:"LogMaxSize"`
	LogMaxBackups  int      `mapstructure:"LogMaxBackups"`
	LogCompress    bool     `mapstructure:"LogCompress"`
	ContentPath    string   `mapstructure:"ContentPath"`
	LanguagesPath  string   `mapstructure:"LanguagesPath"`
	Locale         string   `mapstructure:"Locale"`
	RequestTimeout Duration `mapstructure:"RequestTimeout"`
}

// PluginConfig 是插件在构造时接收的显式配置，取代运行时闭包覆盖设置的做法。
type PluginConfig struct {
	Name           string `mapstructure:"Name"`
	Version        string `mapstructure:"Version"`
	EntityType     string `mapstructure:"EntityType"`
	EntitySlug     string `mapstructure:"EntitySlug"`
	CourseTaxonomy string `mapstructure:"CourseTaxonomy"`
	TextDomain     string `mapstructure:"TextDomain"`
	AssetsBase     string `mapstructure:"AssetsBase"`
	FieldsURL      string `mapstructure:"FieldsURL"`
	ShowFieldAdmin bool   `mapstructure:"ShowFieldAdmin"`
	FieldsEnabled  bool   `mapstructure:"FieldsEnabled"`
}

// Config 是 TOML 文件映射的整体结构。
type Config struct {
	Global GlobalConfig `mapstructure:",squash"`
	Plugin PluginConfig `mapstructure:"Plugin"`
}

// DefaultPluginConfig 返回与原始插件一致的默认值，供测试和 Load 共用。
func DefaultPluginConfig() PluginConfig {
	return PluginConfig{
		Name:           "wcms19-year-book",
		Version:        "1.0.0",
		EntityType:     "wcms19yb_student",
		EntitySlug:     "students",
		CourseTaxonomy: "wcms19yb_course",
		TextDomain:     "wcms19-year-book",
		AssetsBase:     "/assets/",
		FieldsURL:      "/assets/acf/",
		ShowFieldAdmin: false,
		FieldsEnabled:  true,
	}
}
