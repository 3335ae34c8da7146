package dto

type StatusCount struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type MonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type AnalyticsSummaryResponse struct {
	StatusData  []StatusCount  `json:"statusData"`
	MonthlyData []MonthlyCount `json:"monthlyData"`
}

type ScholarshipApplicationCount struct {
	Scholarship string `json:"scholarship"`
	Count       int64  `json:"count"`
}
