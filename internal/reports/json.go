package reports

import (
	"encoding/json"
)

// FormatDailyJSON formats a daily report as JSON.
func FormatDailyJSON(report *DailyReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
