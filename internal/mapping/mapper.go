package mapping

import (
	"strings"

	"MovieSync/internal/model"

	"github.com/google/uuid"
)

// numericDefaults 目标字段整列缺失时的补值
// rating/release_year 留空：rating由Transformer按中位数填充，release_year缺失属必填字段、整行会被清洗掉
var numericDefaults = map[string]string{
	model.FieldRuntime:    "0",
	model.FieldVoteCount:  "0",
	model.FieldPopularity: "0",
}

// BuildMapping 为给定表头构建 原始列名→标准字段 映射
// 先按来源画像精确匹配，未覆盖的标准字段再做模糊匹配（先全词后子串）
func BuildMapping(headers []string, source model.SourceType) map[string]string {
	colMap := make(map[string]string)
	mappedTargets := make(map[string]bool)

	// 1. 来源画像精确匹配
	profile := SourceProfiles[source]
	for _, h := range headers {
		if target, ok := profile[normalizeHeader(h)]; ok {
			colMap[h] = target
			mappedTargets[target] = true
		}
	}

	// 2. 未覆盖的标准字段走模糊匹配（按固定字段顺序保证确定性）
	for _, target := range fuzzyOrder {
		if mappedTargets[target] {
			continue
		}
		if h, ok := fuzzyMatch(headers, colMap, target); ok {
			colMap[h] = target
			mappedTargets[target] = true
		}
	}

	return colMap
}

// fuzzyMatch 为单个标准字段寻找候选列：先全词匹配，再大小写不敏感子串匹配
func fuzzyMatch(headers []string, colMap map[string]string, target string) (string, bool) {
	patterns := FuzzyPatterns[target]

	for _, p := range patterns {
		for _, h := range headers {
			if _, used := colMap[h]; used {
				continue
			}
			if normalizeHeader(h) == p {
				return h, true
			}
		}
	}
	for _, p := range patterns {
		// 过短的候选词（如id）只参与全词匹配，避免子串误伤其他列
		if len(p) < 4 {
			continue
		}
		for _, h := range headers {
			if _, used := colMap[h]; used {
				continue
			}
			if strings.Contains(normalizeHeader(h), p) {
				return h, true
			}
		}
	}
	return "", false
}

// ApplyMapping 把原始表转换为恰好九个标准字段的新表
// 未映射的原始列丢弃；整列缺失的目标字段按默认值补齐；
// 多个原始列映射到同一标准字段时，按表头顺序后者覆盖前者（last-wins）；
// genres统一归一化为竖线分隔；movie_id缺失时生成UUID
func ApplyMapping(table *model.RawTable, colMap map[string]string) *model.RawTable {
	out := &model.RawTable{Headers: model.StandardFields()}

	for _, row := range table.Rows {
		newRow := make(map[string]string, len(out.Headers))
		for _, field := range out.Headers {
			newRow[field] = numericDefaults[field] // 未声明默认值的字段为空串
		}

		// 按表头顺序应用映射，同目标字段后写覆盖先写
		for _, h := range table.Headers {
			target, ok := colMap[h]
			if !ok {
				continue
			}
			newRow[target] = strings.TrimSpace(row[h])
		}

		// release_date 形如 YYYY-MM-DD，上映年份只取前四位
		if y := newRow[model.FieldReleaseYear]; len(y) > 4 && strings.Contains(y, "-") {
			newRow[model.FieldReleaseYear] = y[:4]
		}

		newRow[model.FieldGenres] = NormalizeGenres(newRow[model.FieldGenres])
		if newRow[model.FieldMovieID] == "" {
			newRow[model.FieldMovieID] = uuid.NewString()
		}

		out.Rows = append(out.Rows, newRow)
	}

	return out
}

// NormalizeGenres 把逗号/分号/斜杠等分隔、或带列表括号引号的类型串归一化为竖线分隔
// 如 "['Action', 'Drama']" 或 "Action, Drama" → "Action|Drama"
func NormalizeGenres(raw string) string {
	s := strings.NewReplacer("[", "", "]", "", "'", "", `"`, "").Replace(raw)
	s = strings.NewReplacer(",", "|", ";", "|", "/", "|").Replace(s)

	var tokens []string
	for _, t := range strings.Split(s, "|") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}
	return strings.Join(tokens, "|")
}
