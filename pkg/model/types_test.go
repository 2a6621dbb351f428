package model_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-urlpicker/pkg/model"
)

func TestFormModelValidate(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{{Name: "cta"}, {Name: "title"}}}
	if err := form.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	form.Fields = append(form.Fields, model.Field{Name: "cta"})
	if err := form.Validate(); !errors.Is(err, model.ErrDuplicateField) {
		t.Fatalf("expected ErrDuplicateField, got %v", err)
	}

	if err := (model.FormModel{Fields: []model.Field{{Name: " "}}}).Validate(); err == nil {
		t.Fatalf("expected error for unnamed field")
	}
}

func TestFormModelLinkFields(t *testing.T) {
	form := model.FormModel{Fields: []model.Field{
		{Name: "title", Type: model.FieldTypeString},
		{Name: "cta", Type: model.FieldTypeLink},
		{Name: "footer", Type: model.FieldTypeLink},
	}}
	if diff := cmp.Diff([]string{"cta", "footer"}, form.LinkFields()); diff != "" {
		t.Fatalf("link fields mismatch (-want +got):\n%s", diff)
	}
	if _, ok := form.Field("footer"); !ok {
		t.Fatalf("expected footer field")
	}
}

func TestApplyStopsOnError(t *testing.T) {
	form := &model.FormModel{}
	calls := 0
	boom := errors.New("boom")
	err := model.Apply(form,
		model.DecoratorFunc(func(*model.FormModel) error { calls++; return boom }),
		nil,
		model.DecoratorFunc(func(*model.FormModel) error { calls++; return nil }),
	)
	if !errors.Is(err, boom) || calls != 1 {
		t.Fatalf("Apply = %v after %d calls", err, calls)
	}
}
