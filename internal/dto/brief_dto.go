package dto

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

type TacticalItem struct {
	ApplicationID     string    `json:"applicationId"`
	Company           string    `json:"company"`
	Role              string    `json:"role"`
	Action            string    `json:"action"`
	Urgency           int       `json:"urgency"`
	RiskLevel         RiskLevel `json:"riskLevel"`
	DaysSinceActivity int       `json:"daysSinceActivity"`
}

type TacticalBrief struct {
	Date        string         `json:"date"`
	Items       []TacticalItem `json:"items"`
	TotalActive int            `json:"totalActive"`
}
