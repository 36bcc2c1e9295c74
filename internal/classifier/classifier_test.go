package classifier_test

import (
	"testing"

	"relstack/internal/classifier"
	"relstack/internal/model"
)

func TestClassifyKnownFunctions(t *testing.T) {
	cases := []struct {
		formula string
		want    model.Category
	}{
		{"=VLOOKUP(A1,B:C,2,FALSE)", model.CategoryLookup},
		{"=HLOOKUP(A1,B2:E3,2)", model.CategoryLookup},
		{"=INDEX(A1:C10,2,3)", model.CategoryLookup},
		{"=MATCH(A1,B:B,0)", model.CategoryLookup},
		{`=IF(A1>0,"yes","no")`, model.CategoryConditional},
		{"=IFS(A1>0,1,A1<0,-1)", model.CategoryConditional},
		{"=SWITCH(A1,1,\"a\",2,\"b\")", model.CategoryConditional},
		{"=SUM(A1:A10)", model.CategoryAggregation},
		{"=AVERAGE(A1:A10)", model.CategoryAggregation},
		{"=COUNT(A1:A10)", model.CategoryAggregation},
		{"=COUNTIF(A1:A10,\">0\")", model.CategoryAggregation},
		{"=CONCATENATE(A1,B1)", model.CategoryText},
		{"=LEFT(A1,2)", model.CategoryText},
		{"=RIGHT(A1,2)", model.CategoryText},
		{"=TEXT(A1,\"0.00\")", model.CategoryText},
		{"=DATE(2026,1,1)", model.CategoryDate},
		{"=TODAY()", model.CategoryDate},
		{"=NOW()", model.CategoryDate},
		{"=INDIRECT(\"A\"&B1)", model.CategoryReference},
		{"=OFFSET(A1,1,1)", model.CategoryReference},
	}

	for _, tc := range cases {
		if got := classifier.Classify(tc.formula); got != tc.want {
			t.Fatalf("Classify(%q) = %s, want %s", tc.formula, got, tc.want)
		}
	}
}

func TestClassifyCaseAndWhitespace(t *testing.T) {
	cases := []struct {
		formula string
		want    model.Category
	}{
		{"= vlookup(A1,B:C,2)", model.CategoryLookup},
		{"  =SuM(A1:A3)", model.CategoryAggregation},
		{"=\ttoday ()", model.CategoryDate},
	}

	for _, tc := range cases {
		if got := classifier.Classify(tc.formula); got != tc.want {
			t.Fatalf("Classify(%q) = %s, want %s", tc.formula, got, tc.want)
		}
	}
}

// 嵌套公式由外层函数决定分类
func TestClassifyOuterFunctionWins(t *testing.T) {
	got := classifier.Classify("=IF(VLOOKUP(A1,B:C,2),1,0)")
	if got != model.CategoryConditional {
		t.Fatalf("Classify nested = %s, want %s", got, model.CategoryConditional)
	}
}

// 外层函数未识别时按规则表优先级匹配嵌套函数，而不是出现位置
func TestClassifyNestedByPriorityNotPosition(t *testing.T) {
	got := classifier.Classify("=MYFUNC(SUM(A1:A3),VLOOKUP(A1,B:C,2))")
	if got != model.CategoryLookup {
		t.Fatalf("Classify = %s, want %s (VLOOKUP outranks SUM in the table)", got, model.CategoryLookup)
	}
}

func TestClassifyPrefixVariants(t *testing.T) {
	cases := []struct {
		formula string
		want    model.Category
	}{
		{"=SUMIF(A1:A10,\">0\")", model.CategoryAggregation},
		{"=TEXTJOIN(\",\",TRUE,A1:A3)", model.CategoryText},
		{"=IFERROR(A1/B1,0)", model.CategoryConditional},
	}

	for _, tc := range cases {
		if got := classifier.Classify(tc.formula); got != tc.want {
			t.Fatalf("Classify(%q) = %s, want %s", tc.formula, got, tc.want)
		}
	}
}

func TestClassifyUnknown(t *testing.T) {
	cases := []string{
		"=MYCUSTOM(A1)",
		"=A1+B2",
		"=A1",
		"=",
		"plain text",
	}

	for _, formula := range cases {
		if got := classifier.Classify(formula); got != model.CategoryUnknown {
			t.Fatalf("Classify(%q) = %s, want %s", formula, got, model.CategoryUnknown)
		}
	}
}
