package processor

import (
	"strings"
	"unicode"
)

// significantWords 提取参与相似度计算的词集合：
// 小写、去标点、按空白切词，丢掉长度 ≤ 3 的短词，再去重
func significantWords(s string) map[string]struct{} {
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	words := make(map[string]struct{})
	for _, w := range strings.Fields(b.String()) {
		if len([]rune(w)) <= 3 {
			continue
		}
		words[w] = struct{}{}
	}
	return words
}

// Similarity 计算两段标题的 Jaccard 相似度，取值 [0,1]。
// 任一侧有效词不足 2 个时直接判 0：太短的文本没有比较意义。
// 纯函数，满足 Similarity(a,b) == Similarity(b,a)。
func Similarity(a, b string) float64 {
	wa := significantWords(a)
	wb := significantWords(b)
	if len(wa) < 2 || len(wb) < 2 {
		return 0
	}

	inter := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			inter++
		}
	}
	union := len(wa) + len(wb) - inter
	return float64(inter) / float64(union)
}
