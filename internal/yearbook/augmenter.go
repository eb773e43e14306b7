package yearbook

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/wcms19/yearbook/internal/hooks"
)

// 字段键与原插件的字段组保持一致。
const (
	FieldAttendance     = "attendance"
	FieldDetentionHours = "detention_hours"
)

// MethodFilterContent 是 the_content 过滤器绑定的方法名。
const MethodFilterContent = "filter_the_content"

// Augmenter 为目标实体类型的渲染内容追加课程与学生详情区块。
// 它没有跨调用状态，所有数据都在单次渲染中向协作方查询。
type Augmenter struct {
	TargetType     string
	CourseTaxonomy string
	TextDomain     string
	Terms          Taxonomy
	Fields         FieldAccessor
	Translator     Translator
}

// OnContentFilter 返回追加元数据后的内容。实体类型不匹配或没有课程术语时原样返回；
// 没有术语时即使存在自定义字段也不会追加任何区块。协作方的错误原样返回。
func (a *Augmenter) OnContentFilter(ctx context.Context, content string, entity Entity) (string, error) {
	if entity.Type != a.TargetType {
		return content, nil
	}

	labels, err := a.Terms.TermLabels(ctx, entity.ID, a.CourseTaxonomy)
	if err != nil {
		return "", err
	}
	if len(labels) == 0 {
		return content, nil
	}

	var b strings.Builder
	b.WriteString(content)
	b.WriteString(`<div class="wcms19yb-courses">`)
	b.WriteString("Courses: ")
	for i, label := range labels {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(html.EscapeString(label))
	}
	b.WriteString(`</div>`)

	if a.Fields == nil || !a.Fields.Available() {
		return b.String(), nil
	}

	attendance, err := a.Fields.FieldValue(ctx, entity.ID, FieldAttendance)
	if err != nil {
		return "", err
	}
	detention, err := a.Fields.FieldValue(ctx, entity.ID, FieldDetentionHours)
	if err != nil {
		return "", err
	}

	b.WriteString(`<div class="wcms19yb-student-details">`)
	fmt.Fprintf(&b, "<h2>%s</h2>", a.t("Student Details"))
	if !attendance.IsAbsent() {
		fmt.Fprintf(&b, `<span class="attendance">%s</span> %d %%<br>`, a.t("Attendance:"), int(attendance.Float()))
	}
	if !detention.IsAbsent() {
		fmt.Fprintf(&b, `<span class="detention-hours">%s</span> %s hours<br>`, a.t("Detention:"), formatNumber(detention.Float()))
	}
	b.WriteString(`</div>`)

	return b.String(), nil
}

// Method 暴露 filter_the_content 给宿主；参数依次为内容与实体上下文。
func (a *Augmenter) Method(name string) (hooks.Func, bool) {
	if name != MethodFilterContent {
		return nil, false
	}
	return a.filterContent, true
}

func (a *Augmenter) filterContent(ctx context.Context, args ...any) (any, error) {
	if len(args) == 0 {
		return "", nil
	}
	content, ok := args[0].(string)
	if !ok || len(args) < 2 {
		return args[0], nil
	}
	switch entity := args[1].(type) {
	case Entity:
		return a.OnContentFilter(ctx, content, entity)
	case *Entity:
		if entity == nil {
			return args[0], nil
		}
		return a.OnContentFilter(ctx, content, *entity)
	default:
		return args[0], nil
	}
}

func (a *Augmenter) t(msg string) string {
	if a.Translator == nil {
		return msg
	}
	return a.Translator.Translate(a.TextDomain, msg)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
