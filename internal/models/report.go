package models

import (
	"fmt"
	"time"
)

// InsightKind selects one of the generated playlist insights.
type InsightKind string

const (
	InsightSummary      InsightKind = "summary"
	InsightLearningPath InsightKind = "learning-path"
	InsightFAQ          InsightKind = "faq"
)

// Insight is free-form text produced by a text generation provider.
type Insight struct {
	Kind     InsightKind `json:"kind"`
	Text     string      `json:"text"`
	Provider string      `json:"provider"`
	Model    string      `json:"model"`
}

// PlaylistReport is what watch mode emails after a scheduled run.
type PlaylistReport struct {
	Date      time.Time       `json:"date"`
	Result    *AnalysisResult `json:"result"`
	Insights  []*Insight      `json:"insights"`
	BingeDays int             `json:"binge_days"`
	DailyTime string          `json:"daily_time"`
}

// BingeEstimate is the answer to "how long until I finish this playlist".
type BingeEstimate struct {
	PlaylistID   string `json:"playlist_id"`
	TotalSeconds int    `json:"total_seconds"`
	DailySeconds int    `json:"daily_seconds"`
	Days         int    `json:"days"`
}

func (b *BingeEstimate) Message() string {
	return fmt.Sprintf("It will take you approx. %d day(s) to finish.", b.Days)
}
