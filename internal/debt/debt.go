// Package debt converts the daily study ledger into a cumulative review
// debt figure. Day boundaries are fixed to AEST (UTC+10) so the numbers
// do not shift with the server's locale.
package debt

import "time"

const (
	// DailyQuota is the review target per calendar day
	DailyQuota = 100
	// BreakdownDays bounds the recent-history breakdown
	BreakdownDays = 20
	// dateLayout is the ledger's day key format
	dateLayout = "2006-01-02"
)

var aest = time.FixedZone("AEST", 10*60*60)

// Location returns the fixed timezone that defines calendar days
func Location() *time.Location {
	return aest
}

// DateKey returns the ledger day key for an instant
func DateKey(t time.Time) string {
	return t.In(aest).Format(dateLayout)
}

// Ledger maps day keys (YYYY-MM-DD in AEST) to review counts
type Ledger map[string]int

// DayDebt is one breakdown entry. Debt is raw: negative means surplus.
type DayDebt struct {
	Date string `json:"date"`
	Debt int    `json:"debt"`
}

// Report is the debt computation result
type Report struct {
	TotalDebt int       `json:"total_debt"`
	Breakdown []DayDebt `json:"breakdown"`
}

// Compute derives the total debt and the recent breakdown from the
// ledger. Every day from the earliest ledger entry up to but excluding
// today contributes quota minus count (negative on surplus days). Today
// only ever reduces the total, and only by its surplus beyond the quota:
// an in-progress day is never charged a deficit. The total is clamped at
// zero; breakdown entries are not.
func Compute(ledger Ledger, today time.Time) Report {
	report := Report{Breakdown: []DayDebt{}}
	if len(ledger) == 0 {
		return report
	}

	// ISO day keys sort lexicographically, so min key = earliest day
	var earliestKey string
	for key := range ledger {
		if earliestKey == "" || key < earliestKey {
			earliestKey = key
		}
	}
	earliest, err := time.ParseInLocation(dateLayout, earliestKey, aest)
	if err != nil {
		return report
	}

	todayKey := DateKey(today)
	todayStart, _ := time.ParseInLocation(dateLayout, todayKey, aest)

	total := 0
	for d := earliest; d.Before(todayStart); d = d.AddDate(0, 0, 1) {
		total += DailyQuota - ledger[d.Format(dateLayout)]
	}

	// Today counts only as repayment, never as new debt
	if count := ledger[todayKey]; count > DailyQuota {
		total -= count - DailyQuota
	}
	if total < 0 {
		total = 0
	}
	report.TotalDebt = total

	// Walk backward from yesterday for up to BreakdownDays
	for d, i := todayStart.AddDate(0, 0, -1), 0; i < BreakdownDays && !d.Before(earliest); d, i = d.AddDate(0, 0, -1), i+1 {
		key := d.Format(dateLayout)
		report.Breakdown = append(report.Breakdown, DayDebt{
			Date: key,
			Debt: DailyQuota - ledger[key],
		})
	}

	return report
}
