package logging

import "github.com/sirupsen/logrus"

// BaseFields 构建 action + 配置路径等基础字段，便于不同入口复用。
func BaseFields(action, configPath string) logrus.Fields {
	return logrus.Fields{
		"action":     action,
		"configPath": configPath,
	}
}

// RenderFields 提供请求 ID / 实体信息字段，供内容渲染日志复用。
func RenderFields(requestID, entityID, entityType string, augmented bool) logrus.Fields {
	return logrus.Fields{
		"action":      "render",
		"request_id":  requestID,
		"entity_id":   entityID,
		"entity_type": entityType,
		"augmented":   augmented,
	}
}

// PluginFields 描述插件引导阶段的标识与已登记的钩子数量。
func PluginFields(action, name, version string, bindings int) logrus.Fields {
	return logrus.Fields{
		"action":   action,
		"plugin":   name,
		"version":  version,
		"bindings": bindings,
	}
}
