// Package classifier 按公式首个函数名对 Excel 公式进行分类
//
// 规则表按优先级排列，匹配口径：
//   - 首先取 = 之后的首个函数名（外层函数），命中规则表即采用
//   - 外层函数未命中时，按规则表优先级（而非出现位置）依次检查嵌套函数名
//   - 均未命中则归为 unknown，分类永不报错
package classifier

import (
	"regexp"
	"strings"

	"relstack/internal/model"
)

// pattern 规则项：函数名前缀 → 分类
type pattern struct {
	fn       string
	category model.Category
}

// patterns 规则表（固定优先级，前缀匹配函数名）
var patterns = []pattern{
	{"VLOOKUP", model.CategoryLookup},
	{"HLOOKUP", model.CategoryLookup},
	{"INDEX", model.CategoryLookup},
	{"MATCH", model.CategoryLookup},
	{"IFS", model.CategoryConditional},
	{"IF", model.CategoryConditional},
	{"SWITCH", model.CategoryConditional},
	{"SUM", model.CategoryAggregation},
	{"AVERAGE", model.CategoryAggregation},
	{"COUNTIF", model.CategoryAggregation},
	{"COUNT", model.CategoryAggregation},
	{"CONCATENATE", model.CategoryText},
	{"LEFT", model.CategoryText},
	{"RIGHT", model.CategoryText},
	{"TEXT", model.CategoryText},
	{"DATE", model.CategoryDate},
	{"TODAY", model.CategoryDate},
	{"NOW", model.CategoryDate},
	{"INDIRECT", model.CategoryReference},
	{"OFFSET", model.CategoryReference},
}

// reFuncToken 函数名：紧跟左括号的标识符
var reFuncToken = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_.]*)\s*\(`)

// Classify 对原始公式分类（纯函数，始终返回一个分类）
// 入参约定以 = 开头；不满足时同样按 unknown 处理
func Classify(rawFormula string) model.Category {
	leading, nested := tokenize(rawFormula)

	if leading != "" {
		if c, ok := match(leading); ok {
			return c
		}
	}

	// 外层未命中：按规则表优先级查嵌套函数
	for _, p := range patterns {
		for _, token := range nested {
			if strings.HasPrefix(token, p.fn) {
				return p.category
			}
		}
	}

	return model.CategoryUnknown
}

// match 按规则表优先级匹配单个函数名
func match(token string) (model.Category, bool) {
	for _, p := range patterns {
		if strings.HasPrefix(token, p.fn) {
			return p.category, true
		}
	}
	return model.CategoryUnknown, false
}

// tokenize 拆出外层函数名与全部嵌套函数名（统一大写）
func tokenize(rawFormula string) (leading string, nested []string) {
	body := strings.TrimSpace(rawFormula)
	body = strings.TrimPrefix(body, "=")
	body = strings.TrimSpace(body)
	upper := strings.ToUpper(body)

	matches := reFuncToken.FindAllStringSubmatchIndex(upper, -1)
	for _, m := range matches {
		token := upper[m[2]:m[3]]
		nested = append(nested, token)
	}

	// 外层函数：公式体起始处的函数名
	if len(matches) > 0 && strings.TrimSpace(upper[:matches[0][2]]) == "" {
		leading = upper[matches[0][2]:matches[0][3]]
	}

	return leading, nested
}
