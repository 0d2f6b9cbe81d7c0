package models

// SummaryCards holds the formatted headline strings for an analytics summary.
type SummaryCards struct {
	ActiveTime string `json:"activeTime"`
	AvgSpeed   string `json:"avgSpeed"`
	Stability  string `json:"stability"`
	Intensity  string `json:"intensity"`
}

// SeriesPoint is one per-day row in an analytics summary series.
type SeriesPoint struct {
	Label        string  `json:"label"`
	ActiveMins   int     `json:"activeMins"`
	AvgSpeed     float64 `json:"avgSpeed"`
	Stability    int     `json:"stability"`
	TotalLogs    int     `json:"totalLogs"`
	AbnormalLogs int     `json:"abnormalLogs"`
}

// SummaryResponse is the response shape for the day/week/month summary routes.
type SummaryResponse struct {
	Range    string        `json:"range"`
	DateKey  string        `json:"dateKey,omitempty"`
	DateKeys []string      `json:"dateKeys,omitempty"`
	Year     int           `json:"year,omitempty"`
	Month    int           `json:"month,omitempty"`
	Cards    SummaryCards  `json:"cards"`
	Series   []SeriesPoint `json:"series"`
}

// TimelineAlert is one abnormal-sample entry in the today-analytics timeline.
type TimelineAlert struct {
	Time     string `json:"time"`
	Title    string `json:"title"`
	Severity string `json:"severity"`
}

// TodayAnalyticsResponse is the response shape for GET /api/v1/analytics/:userId.
type TodayAnalyticsResponse struct {
	Heatmap          [24]int         `json:"heatmap"`
	StabilityScore   int             `json:"stabilityScore"`
	CurrentIntensity string          `json:"currentIntensity"`
	LogsFound        int             `json:"logsFound"`
	Timeline         []TimelineAlert `json:"timeline"`
}

// LiveLocationResponse is the response shape for GET /api/v1/live/:userId.
type LiveLocationResponse struct {
	UserID    string  `json:"userId"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Timestamp string  `json:"ts"`
}
