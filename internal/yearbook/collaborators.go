package yearbook

import "context"

// Entity 是宿主提供的只读实体视图。
type Entity struct {
	ID      string
	Type    string
	Title   string
	Content string
}

// EntityTypes 根据实体 ID 查询实体类型。
type EntityTypes interface {
	EntityType(ctx context.Context, entityID string) (string, error)
}

// Taxonomy 返回实体在指定分类法下的有序术语标签；空切片是合法结果。
type Taxonomy interface {
	TermLabels(ctx context.Context, entityID, taxonomy string) ([]string, error)
}

// FieldAccessor 是自定义字段存储；Available 为 false 表示存储本身不存在。
type FieldAccessor interface {
	Available() bool
	FieldValue(ctx context.Context, entityID, key string) (FieldValue, error)
}

// Translator 在指定文本域中翻译消息，找不到译文时返回原文。
type Translator interface {
	Translate(domain, msg string) string
}

// SchemaRegistrar 接收实体类型与分类法的静态声明。
type SchemaRegistrar interface {
	RegisterEntityType(def EntityTypeDef) error
	RegisterTaxonomy(def TaxonomyDef) error
}

// FieldGroupRegistrar 接收自定义字段组声明。
type FieldGroupRegistrar interface {
	AddFieldGroup(group FieldGroupDef) error
}

// TextDomainLoader 加载插件文本域的语言包。
type TextDomainLoader interface {
	LoadTextDomain(domain, dir string) error
}

// AssetQueue 记录需要输出的样式与脚本。
type AssetQueue interface {
	EnqueueStyle(ctx context.Context, asset Asset)
	EnqueueScript(ctx context.Context, asset Asset)
}

// Asset 描述一个样式或脚本句柄。
type Asset struct {
	Handle   string
	Src      string
	Deps     []string
	Version  string
	Media    string
	InFooter bool
}

type fieldState uint8

const (
	fieldAbsent fieldState = iota
	fieldEmpty
	fieldNumber
)

// FieldValue 区分三种状态：不存在（Absent）、存在但为空（Empty）与数值。
// 零值即 Absent。
type FieldValue struct {
	state  fieldState
	number float64
}

// Absent 表示字段没有存储值，与存储的 0 或空值不同。
var Absent = FieldValue{}

// Number 构造一个数值字段。
func Number(v float64) FieldValue {
	return FieldValue{state: fieldNumber, number: v}
}

// Empty 构造一个存在但为空的字段。
func Empty() FieldValue {
	return FieldValue{state: fieldEmpty}
}

// IsAbsent 报告字段是否不存在。
func (v FieldValue) IsAbsent() bool {
	return v.state == fieldAbsent
}

// IsEmpty 报告字段是否存在但为空。
func (v FieldValue) IsEmpty() bool {
	return v.state == fieldEmpty
}

// Float 返回数值；Absent 与 Empty 都按 0 处理。
func (v FieldValue) Float() float64 {
	if v.state != fieldNumber {
		return 0
	}
	return v.number
}

func (v FieldValue) String() string {
	switch v.state {
	case fieldAbsent:
		return "absent"
	case fieldEmpty:
		return "empty"
	default:
		return formatNumber(v.number)
	}
}
