package excel

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"relstack/internal/model"
)

// 版本列向下扫描的安全上限，防止异常工作簿导致死循环
const maxVersionRows = 1000

// Workbook 工作簿包装：只负责读取公式、读取版本列、写入选中版本
type Workbook struct {
	file *excelize.File
}

// Open 从流加载工作簿
// 文件不是合法 xlsx 压缩包时返回 FormatError
func Open(reader io.Reader) (*Workbook, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, &FormatError{Err: err}
	}
	return &Workbook{file: file}, nil
}

// SheetNames 获取工作表列表
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// HasSheet 判断工作表是否存在
func (w *Workbook) HasSheet(name string) bool {
	for _, s := range w.file.GetSheetList() {
		if s == name {
			return true
		}
	}
	return false
}

// ExtractFormulas 提取目标工作表中所有公式单元格
// 输出顺序：按 targets 给定的表顺序，表内按行优先
// 缺失的工作表不视为致命错误，记入 missing 返回
func (w *Workbook) ExtractFormulas(targets []string, nameColumn string) (records []model.FormulaRecord, missing []string) {
	records = make([]model.FormulaRecord, 0)

	for _, sheet := range targets {
		if !w.HasSheet(sheet) {
			missing = append(missing, sheet)
			continue
		}
		records = append(records, w.extractSheetFormulas(sheet, nameColumn)...)
	}

	return records, missing
}

// extractSheetFormulas 提取单个工作表的公式
func (w *Workbook) extractSheetFormulas(sheet, nameColumn string) []model.FormulaRecord {
	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return nil
	}

	out := make([]model.FormulaRecord, 0)

	for i, row := range rows {
		rowNo := i + 1
		rowName := ""
		if nameColumn != "" {
			rowName, _ = w.file.GetCellValue(sheet, fmt.Sprintf("%s%d", nameColumn, rowNo))
			rowName = strings.TrimSpace(rowName)
		}

		for j := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, rowNo)
			if err != nil {
				continue
			}

			raw, ok := w.cellFormula(sheet, cell)
			if !ok {
				continue
			}

			out = append(out, model.FormulaRecord{
				Sheet:      sheet,
				Cell:       cell,
				Row:        rowNo,
				RawFormula: raw,
				RowName:    rowName,
			})
		}
	}

	return out
}

// cellFormula 读取单元格公式，统一为以 = 开头的原始形式
// 同时接受以 = 开头的纯文本单元格（与原始数据口径一致：内容以 = 开头即视为公式）
func (w *Workbook) cellFormula(sheet, cell string) (string, bool) {
	formula, err := w.file.GetCellFormula(sheet, cell)
	if err == nil && strings.TrimSpace(formula) != "" {
		formula = strings.TrimSpace(formula)
		if !strings.HasPrefix(formula, "=") {
			formula = "=" + formula
		}
		return formula, true
	}

	value, err := w.file.GetCellValue(sheet, cell)
	if err != nil {
		return "", false
	}
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "=") && len(value) > 1 {
		return value, true
	}

	return "", false
}

// ReleaseVersions 从版本索引表读取版本列表
// 从 startCell 向下读取，遇到首个空单元格停止
func (w *Workbook) ReleaseVersions(sheet, startCell string) ([]string, error) {
	if !w.HasSheet(sheet) {
		return nil, &NotFoundError{Kind: "sheet", Name: sheet}
	}

	col, row, err := excelize.CellNameToCoordinates(startCell)
	if err != nil {
		return nil, &NotFoundError{Kind: "cell", Name: startCell}
	}

	versions := make([]string, 0)
	for r := row; r < row+maxVersionRows; r++ {
		cell, err := excelize.CoordinatesToCellName(col, r)
		if err != nil {
			break
		}
		value, err := w.file.GetCellValue(sheet, cell)
		if err != nil {
			break
		}
		value = strings.TrimSpace(value)
		if value == "" {
			break
		}
		versions = append(versions, value)
	}

	return versions, nil
}

// SetReleaseVersion 将选中版本写入版本输入单元格（仅修改内存中的工作簿）
func (w *Workbook) SetReleaseVersion(sheet, cell, version string) error {
	if !w.HasSheet(sheet) {
		return &NotFoundError{Kind: "sheet", Name: sheet}
	}
	return w.file.SetCellValue(sheet, cell, version)
}

// Close 关闭文件
func (w *Workbook) Close() error {
	if w.file != nil {
		return w.file.Close()
	}
	return nil
}
