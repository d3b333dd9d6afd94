package processor

import (
	"regexp"
	"strings"
)

// Categories 对外暴露的固定分类列表（顺序即 API 返回顺序）
var Categories = []string{"politics", "technology", "business", "health", "environment", "general"}

// categoryRules 按优先级排列的关键词组。文本同时命中多组时取最靠前的组，
// 例如同时出现 "tech" 和 "climate" 的标题归为 technology。顺序不能调整。
var categoryRules = []struct {
	Label    string
	Keywords []string
}{
	{"technology", []string{
		"ai", "artificial intelligence", "tech", "software", "chip", "robot",
		"cyber", "crypto", "blockchain", "startup", "smartphone", "silicon",
		"algorithm", "internet", "quantum", "gadget",
	}},
	{"environment", []string{
		"climate", "carbon", "emission", "environment", "renewable", "pollution",
		"wildfire", "drought", "wildlife", "solar", "warming", "biodiversity",
	}},
	{"politics", []string{
		"election", "government", "senate", "congress", "president", "minister",
		"parliament", "policy", "vote", "campaign", "legislation", "sanction",
		"diplomat", "treaty",
	}},
	{"health", []string{
		"health", "vaccine", "hospital", "disease", "medical", "cancer", "virus",
		"outbreak", "patient", "epidemic", "drug",
	}},
	{"business", []string{
		"market", "stock", "economy", "inflation", "earnings", "bank", "trade",
		"merger", "investor", "revenue", "layoff", "tariff", "profit",
	}},
}

// 短关键词（如 ai）必须整词匹配，防止 rain / said 之类误命中
var shortKeywordRe = buildShortKeywordRe()

func buildShortKeywordRe() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp)
	for _, g := range categoryRules {
		for _, kw := range g.Keywords {
			if len(kw) < 4 && !strings.Contains(kw, " ") {
				res[kw] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
			}
		}
	}
	return res
}

// Categorize 依据标题+摘要给出分类，所有组都未命中时返回 general
func Categorize(headline, summary string) string {
	text := strings.ToLower(headline + " " + summary)
	for _, g := range categoryRules {
		for _, kw := range g.Keywords {
			if matchKeyword(text, kw) {
				return g.Label
			}
		}
	}
	return "general"
}

func matchKeyword(text, kw string) bool {
	if re, ok := shortKeywordRe[kw]; ok {
		return re.MatchString(text)
	}
	return strings.Contains(text, kw)
}
