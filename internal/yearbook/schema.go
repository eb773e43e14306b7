package yearbook

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wcms19/yearbook/internal/config"
)

// EntityTypeDef 是自定义实体类型的静态声明，构造后不再修改。
type EntityTypeDef struct {
	Key          string
	Label        string
	Labels       map[string]string
	Description  string
	Public       bool
	ShowInREST   bool
	HasArchive   bool
	Hierarchical bool
	Slug         string
	Supports     []string
}

// Validate 校验声明完整性。
func (d EntityTypeDef) Validate() error {
	if strings.TrimSpace(d.Key) == "" {
		return errors.New("entity type key is required")
	}
	if strings.TrimSpace(d.Label) == "" {
		return fmt.Errorf("entity type %s: label is required", d.Key)
	}
	if strings.Contains(d.Slug, "/") {
		return fmt.Errorf("entity type %s: slug must be a single segment", d.Key)
	}
	return nil
}

// TaxonomyDef 是分类法的静态声明。
type TaxonomyDef struct {
	Key          string
	Label        string
	Labels       map[string]string
	ObjectTypes  []string
	Public       bool
	Hierarchical bool
	ShowInREST   bool
	RESTBase     string
	Slug         string
}

// Validate 校验分类法至少绑定一个实体类型。
func (d TaxonomyDef) Validate() error {
	if strings.TrimSpace(d.Key) == "" {
		return errors.New("taxonomy key is required")
	}
	if len(d.ObjectTypes) == 0 {
		return fmt.Errorf("taxonomy %s: at least one object type is required", d.Key)
	}
	return nil
}

// FieldDef 描述字段组中的单个数值字段。
type FieldDef struct {
	Key          string
	Label        string
	Name         string
	Type         string
	Instructions string
	Placeholder  string
	Append       string
	Width        int
	Min          *float64
	Max          *float64
}

// LocationRule 决定字段组在哪些实体上生效。
type LocationRule struct {
	Param    string
	Operator string
	Value    string
}

// FieldGroupDef 是自定义字段组的静态声明。
type FieldGroupDef struct {
	Key      string
	Title    string
	Fields   []FieldDef
	Location []LocationRule
	Position string
	Active   bool
}

// Validate 校验字段名唯一且上下限有序。
func (g FieldGroupDef) Validate() error {
	if strings.TrimSpace(g.Key) == "" {
		return errors.New("field group key is required")
	}
	if len(g.Fields) == 0 {
		return fmt.Errorf("field group %s: no fields", g.Key)
	}
	seen := make(map[string]struct{}, len(g.Fields))
	for _, f := range g.Fields {
		if f.Key == "" || f.Name == "" {
			return fmt.Errorf("field group %s: field key and name are required", g.Key)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("field group %s: duplicate field %s", g.Key, f.Name)
		}
		seen[f.Name] = struct{}{}
		if f.Min != nil && f.Max != nil && *f.Min > *f.Max {
			return fmt.Errorf("field group %s: field %s min exceeds max", g.Key, f.Name)
		}
	}
	if len(g.Location) == 0 {
		return fmt.Errorf("field group %s: location is required", g.Key)
	}
	return nil
}

// Field 按字段名查找字段声明。
func (g FieldGroupDef) Field(name string) (FieldDef, bool) {
	for _, f := range g.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldDef{}, false
}

// StudentEntityType 构造学生实体类型声明。
func StudentEntityType(cfg config.PluginConfig) EntityTypeDef {
	return EntityTypeDef{
		Key:   cfg.EntityType,
		Label: "Year Book Students",
		Labels: map[string]string{
			"name":          "Year Book Students",
			"singular_name": "Year Book Student",
			"menu_name":     "My Year Book Students",
			"all_items":     "All Year Book Students",
			"add_new":       "Add new",
			"add_new_item":  "Add new Year Book Student",
			"edit_item":     "Edit Year Book Student",
			"new_item":      "New Year Book Student",
			"view_item":     "View Year Book Student",
			"search_items":  "Search Year Book Students",
			"not_found":     "No Year Book Students found",
		},
		Description: "Add students to year book",
		Public:      true,
		ShowInREST:  true,
		HasArchive:  true,
		Slug:        cfg.EntitySlug,
		Supports:    []string{"title", "editor", "thumbnail", "excerpt"},
	}
}

// CourseTaxonomy 构造课程分类法声明，绑定到学生实体类型。
func CourseTaxonomy(cfg config.PluginConfig) TaxonomyDef {
	return TaxonomyDef{
		Key:   cfg.CourseTaxonomy,
		Label: "Courses",
		Labels: map[string]string{
			"name":          "Courses",
			"singular_name": "Course",
			"menu_name":     "Courses",
			"all_items":     "All Courses",
			"edit_item":     "Edit Course",
			"add_new_item":  "Add new Course",
			"not_found":     "No Courses found",
			"no_terms":      "No Courses",
		},
		ObjectTypes: []string{cfg.EntityType},
		Public:      true,
		ShowInREST:  true,
		RESTBase:    cfg.CourseTaxonomy,
		Slug:        cfg.CourseTaxonomy,
	}
}

// StudentDetailsGroup 构造学生详情字段组：出勤率（0-100，%）与留校时长（≥0，小时）。
func StudentDetailsGroup(cfg config.PluginConfig) FieldGroupDef {
	return FieldGroupDef{
		Key:   "group_5ee86f78ca53a",
		Title: "Student Details",
		Fields: []FieldDef{
			{
				Key:         "field_5ee86fa1c5a89",
				Label:       "Attendance",
				Name:        FieldAttendance,
				Type:        "number",
				Placeholder: "Attendance in percent",
				Append:      "%",
				Width:       30,
				Min:         bound(0),
				Max:         bound(100),
			},
			{
				Key:          "field_5ee87011c5a8a",
				Label:        "Detention Hours",
				Name:         FieldDetentionHours,
				Type:         "number",
				Instructions: "Number of hours in detention",
				Append:       "hours",
				Width:        30,
				Min:          bound(0),
			},
		},
		Location: []LocationRule{
			{Param: "post_type", Operator: "==", Value: cfg.EntityType},
		},
		Position: "normal",
		Active:   true,
	}
}

func bound(v float64) *float64 {
	return &v
}
