package config

import (
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
)

// Validate 针对语义级别做进一步校验，防止非法配置启动服务。
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("配置为空")
	}

	g := c.Global
	if g.ListenPort <= 0 || g.ListenPort > 65535 {
		return newFieldError("Global.ListenPort", "必须在 1-65535")
	}
	if _, err := logrus.ParseLevel(g.LogLevel); err != nil {
		return newFieldError("Global.LogLevel", "无法识别的日志级别: "+g.LogLevel)
	}
	if strings.TrimSpace(g.ContentPath) == "" {
		return newFieldError("Global.ContentPath", "不能为空")
	}
	if g.RequestTimeout.DurationValue() <= 0 {
		return newFieldError("Global.RequestTimeout", "必须大于 0")
	}

	return c.Plugin.Validate()
}

// Validate 校验插件段：标识符必须是宿主可接受的键名。
func (p PluginConfig) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return newFieldError(pluginField("Name"), "不能为空")
	}
	if err := validateKey(p.EntityType); err != nil {
		return newFieldError(pluginField("EntityType"), err.Error())
	}
	if err := validateKey(p.CourseTaxonomy); err != nil {
		return newFieldError(pluginField("CourseTaxonomy"), err.Error())
	}
	if p.EntityType == p.CourseTaxonomy {
		return newFieldError(pluginField("CourseTaxonomy"), "不能与 EntityType 相同")
	}
	if strings.Contains(p.EntitySlug, "/") || strings.Contains(p.EntitySlug, " ") {
		return newFieldError(pluginField("EntitySlug"), "只能是单段路径")
	}
	return nil
}

// validateKey 约束键名：小写字母、数字、下划线或连字符，最长 20 个字符。
func validateKey(key string) error {
	if key == "" {
		return errors.New("不能为空")
	}
	if len(key) > 20 {
		return errors.New("长度不能超过 20")
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
		default:
			return errors.New("只能包含小写字母、数字、下划线或连字符")
		}
	}
	return nil
}
