package yearbook

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/wcms19/yearbook/internal/config"
	"github.com/wcms19/yearbook/internal/hooks"
	"github.com/wcms19/yearbook/internal/logging"
)

// 插件登记的宿主钩子名。
const (
	HookPluginsLoaded       = "plugins_loaded"
	HookInit                = "init"
	HookAdminEnqueueScripts = "admin_enqueue_scripts"
	HookEnqueueScripts      = "wp_enqueue_scripts"
	HookContent             = "the_content"
	HookFieldsSettingsURL   = "acf/settings/url"
	HookFieldsShowAdmin     = "acf/settings/show_admin"
)

// Deps 汇总插件依赖的宿主协作方。Terms 与 Schema 必填，其余可为空。
type Deps struct {
	Logger        *logrus.Logger
	Terms         Taxonomy
	Fields        FieldAccessor
	Schema        SchemaRegistrar
	FieldGroups   FieldGroupRegistrar
	TextDomains   TextDomainLoader
	Translator    Translator
	Assets        AssetQueue
	LanguagesPath string
}

// Plugin 持有插件标识、静态声明以及待刷新的钩子注册表。
type Plugin struct {
	cfg        config.PluginConfig
	logger     *logrus.Logger
	registry   *hooks.Registry
	augmenter  *Augmenter
	entityType EntityTypeDef
	taxonomy   TaxonomyDef
	fieldGroup FieldGroupDef
}

// New 校验静态声明并按固定顺序登记全部钩子：语言包、后台资源、前台资源、
// 内容过滤器、init 动作、字段设置。字段存储可用时立即登记学生详情字段组。
func New(cfg config.PluginConfig, deps Deps) (*Plugin, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if deps.Terms == nil {
		return nil, errors.New("taxonomy collaborator is required")
	}
	if deps.Schema == nil {
		return nil, errors.New("schema registrar is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	p := &Plugin{
		cfg:        cfg,
		logger:     logger,
		registry:   hooks.NewRegistry(),
		entityType: StudentEntityType(cfg),
		taxonomy:   CourseTaxonomy(cfg),
		fieldGroup: StudentDetailsGroup(cfg),
	}
	if err := p.entityType.Validate(); err != nil {
		return nil, fmt.Errorf("实体类型声明无效: %w", err)
	}
	if err := p.taxonomy.Validate(); err != nil {
		return nil, fmt.Errorf("分类法声明无效: %w", err)
	}
	if err := p.fieldGroup.Validate(); err != nil {
		return nil, fmt.Errorf("字段组声明无效: %w", err)
	}

	p.augmenter = &Augmenter{
		TargetType:     cfg.EntityType,
		CourseTaxonomy: cfg.CourseTaxonomy,
		TextDomain:     cfg.TextDomain,
		Terms:          deps.Terms,
		Fields:         deps.Fields,
		Translator:     deps.Translator,
	}

	p.setLocale(deps)
	p.defineAssetHooks(HookAdminEnqueueScripts, "admin", deps.Assets)
	p.defineAssetHooks(HookEnqueueScripts, "public", deps.Assets)
	p.registry.AddFilter(HookContent, p.augmenter, MethodFilterContent, hooks.WithAcceptedArgs(2))
	p.addInitActions(deps.Schema)
	if err := p.initFields(deps); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Plugin) setLocale(deps Deps) {
	l := &locale{domain: p.cfg.TextDomain, dir: deps.LanguagesPath, loader: deps.TextDomains}
	p.registry.AddAction(HookPluginsLoaded, l, "load_plugin_textdomain")
}

func (p *Plugin) defineAssetHooks(hook, area string, queue AssetQueue) {
	a := &assets{
		name:    p.cfg.Name,
		version: p.cfg.Version,
		base:    p.cfg.AssetsBase,
		area:    area,
		queue:   queue,
	}
	p.registry.AddAction(hook, a, "enqueue_styles")
	p.registry.AddAction(hook, a, "enqueue_scripts")
}

func (p *Plugin) addInitActions(registrar SchemaRegistrar) {
	s := &schema{registrar: registrar, entityType: p.entityType, taxonomy: p.taxonomy}
	p.registry.AddAction(HookInit, s, "register_cpts")
	p.registry.AddAction(HookInit, s, "register_cts")
}

func (p *Plugin) initFields(deps Deps) error {
	settings := &fieldSettings{url: p.cfg.FieldsURL, showAdmin: p.cfg.ShowFieldAdmin}
	p.registry.AddFilter(HookFieldsSettingsURL, settings, "settings_url")
	p.registry.AddFilter(HookFieldsShowAdmin, settings, "settings_show_admin")

	if deps.FieldGroups == nil || deps.Fields == nil || !deps.Fields.Available() {
		return nil
	}
	if err := deps.FieldGroups.AddFieldGroup(p.fieldGroup); err != nil {
		return fmt.Errorf("登记字段组失败: %w", err)
	}
	return nil
}

// Run 将注册表刷新到宿主分发器。重复调用会重复登记。
func (p *Plugin) Run(d hooks.Dispatcher) {
	p.registry.Run(d)
	fields := logging.PluginFields("plugin_run", p.cfg.Name, p.cfg.Version, p.registry.Len())
	fields["actions"] = len(p.registry.Actions())
	fields["filters"] = len(p.registry.Filters())
	p.logger.WithFields(fields).Info("插件钩子已登记")
}

// Activate 对应插件激活；当前无需迁移数据，仅记录日志。
func (p *Plugin) Activate(context.Context) error {
	p.logger.WithFields(logrus.Fields{"action": "activate", "plugin": p.cfg.Name}).Info("插件已激活")
	return nil
}

// Deactivate 对应插件停用。
func (p *Plugin) Deactivate(context.Context) error {
	p.logger.WithFields(logrus.Fields{"action": "deactivate", "plugin": p.cfg.Name}).Info("插件已停用")
	return nil
}

// Name 返回插件唯一标识。
func (p *Plugin) Name() string { return p.cfg.Name }

// Version 返回插件版本。
func (p *Plugin) Version() string { return p.cfg.Version }

// Registry 返回插件的钩子注册表。
func (p *Plugin) Registry() *hooks.Registry { return p.registry }

// Augmenter 返回内容过滤器实现。
func (p *Plugin) Augmenter() *Augmenter { return p.augmenter }

// EntityType 返回学生实体类型声明。
func (p *Plugin) EntityType() EntityTypeDef { return p.entityType }

// Taxonomy 返回课程分类法声明。
func (p *Plugin) Taxonomy() TaxonomyDef { return p.taxonomy }

// FieldGroup 返回学生详情字段组声明。
func (p *Plugin) FieldGroup() FieldGroupDef { return p.fieldGroup }
