package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     Category
	}{
		{"rf failure alarm", "The RF unit is showing a failure alarm", CategoryAlarm},
		{"uppercase keyword", "NETWORK outage in cluster 7", CategoryAlarm},
		{"mixed case", "Why is the cell OffLine?", CategoryAlarm},
		{"keyword inside word", "The radiofrequency report", CategoryAlarm},
		{"maintenance window", "When is the next maintenance window?", CategoryAlarm},
		{"plain greeting", "Hello, how are you?", CategoryGeneral},
		{"unrelated topic", "What's a good pasta recipe?", CategoryGeneral},
		{"empty question", "", CategoryGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.question))
		})
	}
}

func TestClassifyEveryAlarmKeyword(t *testing.T) {
	for _, kw := range alarmKeywords {
		assert.Equal(t, CategoryAlarm, Classify("tell me about the "+kw), "keyword %q", kw)
	}
}

func TestIsHistoryRelated(t *testing.T) {
	assert.True(t, IsHistoryRelated("What did I ask earlier?"))
	assert.True(t, IsHistoryRelated("Show me the history"))
	assert.False(t, IsHistoryRelated("Is the RF unit down?"))
}
