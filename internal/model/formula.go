package model

// Category 公式分类（按公式首个函数名判定）
type Category string

const (
	CategoryLookup      Category = "lookup"      // 查找类 (VLOOKUP/HLOOKUP/INDEX/MATCH)
	CategoryConditional Category = "conditional" // 条件类 (IF/IFS/SWITCH)
	CategoryAggregation Category = "aggregation" // 聚合类 (SUM/AVERAGE/COUNT/COUNTIF)
	CategoryText        Category = "text"        // 文本类 (CONCATENATE/LEFT/RIGHT/TEXT)
	CategoryDate        Category = "date"        // 日期类 (DATE/TODAY/NOW)
	CategoryReference   Category = "reference"   // 引用类 (INDIRECT/OFFSET)
	CategoryUnknown     Category = "unknown"     // 未识别
)

// AllCategories 全部分类（封闭枚举，运行时不可扩展）
var AllCategories = []Category{
	CategoryLookup,
	CategoryConditional,
	CategoryAggregation,
	CategoryText,
	CategoryDate,
	CategoryReference,
	CategoryUnknown,
}

// FormulaRecord 单个公式单元格的提取记录
// 提取阶段填充位置与原始公式，分类阶段填充 Category，之后不再修改
type FormulaRecord struct {
	Sheet      string   `json:"sheet"`      // 所在工作表
	Cell       string   `json:"cell"`       // 单元格引用，如 B6
	Row        int      `json:"row"`        // 行号（1 起）
	RawFormula string   `json:"rawFormula"` // 原始公式，以 = 开头
	RowName    string   `json:"rowName"`    // 同行名称列的值（可能为空）
	Category   Category `json:"category"`   // 分类结果
}
