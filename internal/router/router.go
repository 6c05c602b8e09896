package router

import "strings"

// Category is the routing decision for an incoming question.
type Category string

const (
	CategoryAlarm   Category = "alarm"
	CategoryGeneral Category = "general"
)

var alarmKeywords = []string{
	"alarm", "alert", "error", "failure", "maintenance", "connection",
	"unit", "rf", "radio", "network", "fault", "down", "offline", "missing",
}

var historyKeywords = []string{
	"previous", "earlier", "before", "last time", "history",
	"what did", "what was", "what were", "asked", "said",
}

// Classify routes a question to the alarm or general category by
// case-insensitive substring match against a fixed keyword set.
// Questions without any alarm keyword always resolve to CategoryGeneral.
func Classify(question string) Category {
	q := strings.ToLower(question)
	for _, kw := range alarmKeywords {
		if strings.Contains(q, kw) {
			return CategoryAlarm
		}
	}
	return CategoryGeneral
}

// IsHistoryRelated reports whether the question asks about earlier turns
// of the conversation.
func IsHistoryRelated(question string) bool {
	q := strings.ToLower(question)
	for _, kw := range historyKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}
