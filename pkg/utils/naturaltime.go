package utils

import (
	"time"

	"github.com/dustin/go-humanize"
)

// NaturalTime 人类可读的相对时间，如 "3 hours ago"
func NaturalTime(t time.Time) string {
	return humanize.Time(t)
}

// TruncateWords 截取前 n 个词，用于消息预览
func TruncateWords(s string, n int) string {
	count := 0
	inWord := false
	for i, r := range s {
		if r == ' ' || r == '\n' || r == '\t' {
			inWord = false
			continue
		}
		if !inWord {
			count++
			inWord = true
			if count > n {
				return s[:i] + "…"
			}
		}
	}
	return s
}
