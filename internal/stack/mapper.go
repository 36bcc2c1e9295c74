// Package stack 由分类后的公式记录生成服务描述列表
package stack

import (
	"fmt"
	"strings"

	"relstack/internal/model"
)

// serviceCategoryByFormula 公式分类 → 服务分类（静态映射）
var serviceCategoryByFormula = map[model.Category]model.ServiceCategory{
	model.CategoryLookup:      model.ServiceData,
	model.CategoryConditional: model.ServiceLogic,
	model.CategoryAggregation: model.ServiceCalculation,
	model.CategoryText:        model.ServiceText,
	model.CategoryDate:        model.ServiceDate,
	model.CategoryReference:   model.ServiceReference,
	model.CategoryUnknown:     model.ServiceMisc,
}

// init 校验映射完整性：每个公式分类必须有对应的服务分类
func init() {
	for _, c := range model.AllCategories {
		if _, ok := serviceCategoryByFormula[c]; !ok {
			panic(fmt.Sprintf("stack: category %q has no service mapping", c))
		}
	}
}

// Mapper 服务栈映射器
type Mapper struct {
	imageRepo string
}

// NewMapper 创建映射器
func NewMapper(imageRepo string) *Mapper {
	return &Mapper{imageRepo: imageRepo}
}

// Build 将公式记录映射为服务描述列表
// 服务名取自记录的名称列，名称列为空时合成 service-<行号>
// 按服务名去重：同名冲突时首次出现者胜出（分类与顺序均以首次为准）
// 输出顺序 = 服务名在输入序列中的首次出现顺序；空输入返回空列表
func (m *Mapper) Build(records []model.FormulaRecord, version string) []model.ServiceDescriptor {
	out := make([]model.ServiceDescriptor, 0, len(records))
	seen := make(map[string]bool)

	for _, rec := range records {
		name := strings.TrimSpace(rec.RowName)
		if name == "" {
			name = fmt.Sprintf("service-%d", rec.Row)
		}

		key := normalizeServiceName(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		out = append(out, model.ServiceDescriptor{
			ServiceName:     name,
			ServiceCategory: serviceCategoryByFormula[rec.Category],
			DockerImage:     m.ImageName(name, version),
		})
	}

	return out
}

// ImageName 生成镜像地址：<repo>/<规范化服务名>:pre-release-v<规范化版本>
func (m *Mapper) ImageName(serviceName, version string) string {
	return fmt.Sprintf("%s/%s:pre-release-v%s",
		m.imageRepo, normalizeServiceName(serviceName), normalizeVersion(version))
}

// normalizeServiceName 服务名规范化：小写，空格与下划线统一为连字符
func normalizeServiceName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "_", "-")
	return name
}

// normalizeVersion 版本规范化：去掉 v 前缀、-pre 后缀与结尾的点
// 空版本回退为 latest
func normalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return "latest"
	}
	version = strings.TrimPrefix(version, "v")
	version = strings.TrimSuffix(version, "-pre")
	version = strings.TrimSuffix(version, ".")
	return version
}
