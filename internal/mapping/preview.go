package mapping

import (
	"fmt"

	"MovieSync/internal/model"
	"MovieSync/internal/utils/csvio"
)

// ColumnPreview 单列映射预览：原始列、目标标准字段、一条样例值
type ColumnPreview struct {
	SourceColumn string `json:"source_column"`
	TargetField  string `json:"target_field"`
	Sample       string `json:"sample"`
}

// PreviewReport 映射预览报告，供操作者在正式装载前核对
type PreviewReport struct {
	File         string           `json:"file"`
	Source       model.SourceType `json:"source"`
	TotalColumns int              `json:"total_columns"`
	TotalRows    int              `json:"total_rows"`
	Mappings     []ColumnPreview  `json:"mappings"`
	Unmapped     []string         `json:"unmapped"` // 将被丢弃的原始列
	Warnings     []string         `json:"warnings"` // 无任何映射的标准字段（装载时留空，不报错）
}

// PreviewFile 读取文件并生成映射预览
// source为空或auto时自动检测来源
func PreviewFile(path string, source model.SourceType) (*PreviewReport, error) {
	table, err := csvio.ReadTable(path)
	if err != nil {
		return nil, fmt.Errorf("读取待预览文件失败: %w", err)
	}

	if source == "" || source == model.SourceAuto {
		source = DetectSource(table.Headers)
	}
	colMap := BuildMapping(table.Headers, source)

	report := &PreviewReport{
		File:         path,
		Source:       source,
		TotalColumns: len(table.Headers),
		TotalRows:    table.NumRows(),
	}

	mappedTargets := make(map[string]bool)
	for _, h := range table.Headers {
		target, ok := colMap[h]
		if !ok {
			report.Unmapped = append(report.Unmapped, h)
			continue
		}
		mappedTargets[target] = true
		report.Mappings = append(report.Mappings, ColumnPreview{
			SourceColumn: h,
			TargetField:  target,
			Sample:       sampleValue(table, h),
		})
	}

	// 映射不到的标准字段只警告不失败（装载时按默认值补齐）
	for _, field := range model.StandardFields() {
		if !mappedTargets[field] {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("标准字段 %s 没有匹配到任何原始列，装载时将按默认值补齐", field))
		}
	}

	return report, nil
}

// sampleValue 取该列第一个非空值作为样例
func sampleValue(table *model.RawTable, column string) string {
	for _, row := range table.Rows {
		if v := row[column]; v != "" {
			return v
		}
	}
	return "N/A"
}
