package stack_test

import (
	"testing"

	"relstack/internal/model"
	"relstack/internal/stack"
)

func TestImageNameRoundTrip(t *testing.T) {
	m := stack.NewMapper("neewee")

	if got, want := m.ImageName("Billing", "1.2.3"), "neewee/billing:pre-release-v1.2.3"; got != want {
		t.Fatalf("ImageName = %q, want %q", got, want)
	}
}

func TestImageNameNormalization(t *testing.T) {
	m := stack.NewMapper("neewee")

	cases := []struct {
		name    string
		version string
		want    string
	}{
		{"Studio Backend", "1.0.0", "neewee/studio-backend:pre-release-v1.0.0"},
		{"bxs_masterdata", "2.1.0", "neewee/bxs-masterdata:pre-release-v2.1.0"},
		{"billing", "v2.0.0-pre", "neewee/billing:pre-release-v2.0.0"},
		{"billing", "3.0.", "neewee/billing:pre-release-v3.0"},
		{"billing", "", "neewee/billing:pre-release-vlatest"},
	}

	for _, tc := range cases {
		if got := m.ImageName(tc.name, tc.version); got != tc.want {
			t.Fatalf("ImageName(%q, %q) = %q, want %q", tc.name, tc.version, got, tc.want)
		}
	}
}

func TestBuildOrderAndDedupe(t *testing.T) {
	m := stack.NewMapper("neewee")

	records := []model.FormulaRecord{
		{Sheet: "s", Cell: "B2", Row: 2, RowName: "billing", Category: model.CategoryLookup},
		{Sheet: "s", Cell: "B3", Row: 3, RowName: "reporting", Category: model.CategoryDate},
		// 与首条同名（大小写不同），分类冲突：首次出现者胜出
		{Sheet: "s", Cell: "B4", Row: 4, RowName: "Billing", Category: model.CategoryText},
	}

	got := m.Build(records, "1.2.3")

	if len(got) != 2 {
		t.Fatalf("Build returned %d descriptors, want 2", len(got))
	}
	if got[0].ServiceName != "billing" || got[1].ServiceName != "reporting" {
		t.Fatalf("order = [%s, %s], want [billing, reporting]", got[0].ServiceName, got[1].ServiceName)
	}
	if got[0].ServiceCategory != model.ServiceData {
		t.Fatalf("billing category = %s, want %s (first occurrence wins)", got[0].ServiceCategory, model.ServiceData)
	}
	if got[1].DockerImage != "neewee/reporting:pre-release-v1.2.3" {
		t.Fatalf("reporting image = %q", got[1].DockerImage)
	}
}

func TestBuildSynthesizedName(t *testing.T) {
	m := stack.NewMapper("neewee")

	records := []model.FormulaRecord{
		{Sheet: "s", Cell: "C7", Row: 7, RowName: "", Category: model.CategoryUnknown},
	}

	got := m.Build(records, "1.0.0")
	if len(got) != 1 {
		t.Fatalf("Build returned %d descriptors, want 1", len(got))
	}
	if got[0].ServiceName != "service-7" {
		t.Fatalf("ServiceName = %q, want service-7", got[0].ServiceName)
	}
	if got[0].ServiceCategory != model.ServiceMisc {
		t.Fatalf("ServiceCategory = %s, want %s", got[0].ServiceCategory, model.ServiceMisc)
	}
}

func TestBuildEmptyInput(t *testing.T) {
	m := stack.NewMapper("neewee")

	if got := m.Build(nil, "1.0.0"); len(got) != 0 {
		t.Fatalf("Build(nil) returned %d descriptors, want 0", len(got))
	}
}

// 每个公式分类都必须映射到一个服务分类
func TestCategoryMappingComplete(t *testing.T) {
	m := stack.NewMapper("neewee")

	for i, c := range model.AllCategories {
		records := []model.FormulaRecord{
			{Sheet: "s", Cell: "B2", Row: i + 2, RowName: "svc", Category: c},
		}
		got := m.Build(records, "1.0.0")
		if len(got) != 1 || got[0].ServiceCategory == "" {
			t.Fatalf("category %s has no service mapping", c)
		}
	}
}
