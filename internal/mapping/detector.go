package mapping

import (
	"strings"

	"MovieSync/internal/model"
)

// DetectSource 根据表头列名集合判定数据来源
// 纯函数且确定性：相同列名集合永远得到相同结果
// 规则：签名列重合数最多者胜出；平局按固定优先级；全部为0则返回custom（走模糊匹配）
func DetectSource(headers []string) model.SourceType {
	lower := make(map[string]bool, len(headers))
	for _, h := range headers {
		lower[normalizeHeader(h)] = true
	}

	best := model.SourceCustom
	bestScore := 0
	// 按固定优先级遍历，严格大于才替换，天然实现平局裁决
	for _, source := range detectPriority {
		score := 0
		for _, sig := range sourceSignatures[source] {
			if lower[sig] {
				score++
			}
		}
		if score > bestScore {
			best = source
			bestScore = score
		}
	}
	return best
}

// normalizeHeader 列名归一化：小写、去首尾空白、空格转下划线
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.ReplaceAll(h, " ", "_")
}
