package yearbook

import (
	"context"
	"strings"
)

type fakeTerms struct {
	labels map[string][]string
	err    error
	calls  int
}

func (f *fakeTerms) TermLabels(_ context.Context, entityID, taxonomy string) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.labels[entityID+"/"+taxonomy], nil
}

type fakeFields struct {
	available bool
	values    map[string]FieldValue
	err       error
}

func (f *fakeFields) Available() bool { return f.available }

func (f *fakeFields) FieldValue(_ context.Context, entityID, key string) (FieldValue, error) {
	if f.err != nil {
		return Absent, f.err
	}
	return f.values[entityID+"/"+key], nil
}

type upperTranslator struct{}

func (upperTranslator) Translate(_, msg string) string { return strings.ToUpper(msg) }

const (
	testStudentType = "wcms19yb_student"
	testCourses     = "wcms19yb_course"
)

func newTestAugmenter(terms *fakeTerms, fields FieldAccessor) *Augmenter {
	return &Augmenter{
		TargetType:     testStudentType,
		CourseTaxonomy: testCourses,
		TextDomain:     "wcms19-year-book",
		Terms:          terms,
		Fields:         fields,
	}
}

func student(id string) Entity {
	return Entity{ID: id, Type: testStudentType}
}
