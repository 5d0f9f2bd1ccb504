package payroll

import "github.com/shopspring/decimal"

// GenerateResult reports how many rows a generation run wrote and how
// many it left alone because they were already CLOSED.
type GenerateResult struct {
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
}

type PayrollResponse struct {
	ID                 string          `json:"id"`
	WorkerID           string          `json:"worker_id"`
	WorkerName         string          `json:"worker_name,omitempty"`
	Year               int             `json:"year"`
	Month              int             `json:"month"`
	Status             string          `json:"status"`
	TotalHours         decimal.Decimal `json:"total_hours"`
	HourlyRateSnapshot int64           `json:"hourly_rate_snapshot"`
	Bonuses            decimal.Decimal `json:"bonuses"`
	GrossPay           decimal.Decimal `json:"gross_pay"`
	AdvancesDeducted   decimal.Decimal `json:"advances_deducted"`
	NetPay             decimal.Decimal `json:"net_pay"`
}

// MonthStatus summarizes a month's rows: EMPTY when there are none,
// CLOSED when every row is closed, DRAFT otherwise.
type MonthStatus string

const (
	MonthEmpty  MonthStatus = "EMPTY"
	MonthDraft  MonthStatus = "DRAFT"
	MonthClosed MonthStatus = "CLOSED"
)

type MonthStats struct {
	TotalEarned   decimal.Decimal `json:"total_earned"`
	TotalBonuses  decimal.Decimal `json:"total_bonuses"`
	TotalAdvances decimal.Decimal `json:"total_advances"`
	TotalPayout   decimal.Decimal `json:"total_payout"`
	Status        MonthStatus     `json:"status"`
}

type MonthResponse struct {
	Year     int               `json:"year"`
	Month    int               `json:"month"`
	Payrolls []PayrollResponse `json:"payrolls"`
	Stats    MonthStats        `json:"stats"`
}
