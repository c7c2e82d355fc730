package common

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// ParseTerms 將以分號分隔的文字拆成詞彙列表，去除前後空白並忽略空詞
func ParseTerms(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	parts := strings.Split(text, ";")
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}
