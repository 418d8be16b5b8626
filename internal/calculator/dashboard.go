package calculator

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/mmynk/apartmanager/internal/models"
)

const (
	newestResidentLimit = 3
	topUnpaidLimit      = 5
	isoDate             = "2006-01-02"
)

// FeePeriod is the (month, year) pair of a billing cycle.
type FeePeriod struct {
	// Month is the unpadded month number as a string ("9", "10").
	Month string `json:"month"`
	Year  int    `json:"year"`
}

// Period returns the billing period containing now.
func Period(now time.Time) FeePeriod {
	return FeePeriod{Month: strconv.Itoa(int(now.Month())), Year: now.Year()}
}

// InPeriod reports whether fee belongs to p. Month is compared as a string,
// so a fee stored with month "09" never matches period "9".
func InPeriod(fee models.FeeItem, p FeePeriod) bool {
	return fee.Month == p.Month && fee.Year == p.Year
}

// ChartSlice is one status segment of the payment distribution chart.
type ChartSlice struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Color   string `json:"color"`
	Ratio   string `json:"ratio"`
	Percent int    `json:"percent"`
}

// chartSegments fixes display order, labels and colors. The slice label
// names the segment; the ratio label names the counted status.
var chartSegments = []struct {
	key        string
	label      string
	ratioLabel string
	color      string
	status     models.PaymentStatus
}{
	{"pending", "Pending", "Pending", "#f59e0b", models.StatusPending},
	{"paid", "Completed", "Paid", "#10b981", models.StatusPaid},
	{"overdue", "Overdue", "Overdue", "#ef4444", models.StatusOverdue},
}

// Summary holds the dashboard statistics for one snapshot.
type Summary struct {
	Period FeePeriod `json:"period"`

	// Current-period tallies.
	TotalPeriodCount int `json:"totalPeriodCount"`
	PaidCount        int `json:"paidCount"`
	PendingCount     int `json:"pendingCount"`
	OverdueThisMonth int `json:"overdueThisMonth"`

	// OverdueBacklog counts overdue fees outside the current period.
	OverdueBacklog int `json:"overdueBacklog"`
	OverdueTotal   int `json:"overdueTotal"`

	CompletionPct  float64 `json:"completionPct"`
	TotalCollected int64   `json:"totalCollected"`

	// OverdueApartmentCount counts distinct apartments over all overdue
	// fees, not only the current period.
	OverdueApartmentCount int `json:"overdueApartmentCount"`

	Chart           []ChartSlice      `json:"chart"`
	NewestResidents []models.Resident `json:"newestResidents"`
	TopUnpaid       []models.FeeItem  `json:"topUnpaid"`
}

// Summarize computes the dashboard statistics from the given snapshot.
// It does not modify its inputs.
func Summarize(fees []models.FeeItem, residents []models.Resident, now time.Time) Summary {
	period := Period(now)
	s := Summary{Period: period}

	overdueApartments := make(map[string]struct{})
	for _, f := range fees {
		overdue := f.Status == models.StatusOverdue
		if overdue {
			overdueApartments[f.ApartmentID] = struct{}{}
		}

		if !InPeriod(f, period) {
			if overdue {
				s.OverdueBacklog++
			}
			continue
		}

		s.TotalPeriodCount++
		switch {
		case f.Status == models.StatusPaid:
			s.PaidCount++
			s.TotalCollected += f.Total
		case overdue:
			s.OverdueThisMonth++
		default:
			s.PendingCount++
		}
	}

	s.OverdueTotal = s.OverdueThisMonth + s.OverdueBacklog
	s.CompletionPct = CompletionPct(s.PaidCount, s.TotalPeriodCount)
	s.OverdueApartmentCount = len(overdueApartments)
	s.Chart = Chart(fees)
	s.NewestResidents = NewestResidents(residents, now, newestResidentLimit)
	s.TopUnpaid = TopUnpaid(fees, topUnpaidLimit)

	return s
}

// CompletionPct returns paid/total*100, or 0 for an empty period.
func CompletionPct(paid, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(paid) / float64(total) * 100
}

// Chart returns the global PAID/PENDING/OVERDUE distribution across all fees.
func Chart(fees []models.FeeItem) []ChartSlice {
	counts := make(map[models.PaymentStatus]int, len(chartSegments))
	for _, f := range fees {
		counts[f.Status]++
	}

	total := 0
	for _, seg := range chartSegments {
		total += counts[seg.status]
	}
	// An empty chart reads n/1 with 0% slices.
	denom := total
	if denom == 0 {
		denom = 1
	}

	slices := make([]ChartSlice, 0, len(chartSegments))
	for _, seg := range chartSegments {
		n := counts[seg.status]
		slices = append(slices, ChartSlice{
			Key:     seg.key,
			Label:   seg.label,
			Count:   n,
			Color:   seg.color,
			Ratio:   seg.ratioLabel + ": " + strconv.Itoa(n) + "/" + strconv.Itoa(denom),
			Percent: int(math.Round(float64(n) / float64(denom) * 100)),
		})
	}
	return slices
}

// NewestResidents returns up to limit residents by entry date, newest first.
// Residents who moved in during the current month are preferred; when there
// are none the whole list is used. Equal dates keep their input order, and
// unparseable dates sort last.
func NewestResidents(residents []models.Resident, now time.Time, limit int) []models.Resident {
	period := Period(now)

	type dated struct {
		r models.Resident
		t time.Time
	}
	var thisMonth, all []dated
	for _, r := range residents {
		t, err := time.Parse(isoDate, r.EntryDate)
		if err != nil {
			t = time.Time{}
		}
		d := dated{r: r, t: t}
		all = append(all, d)
		if err == nil && t.Year() == period.Year && strconv.Itoa(int(t.Month())) == period.Month {
			thisMonth = append(thisMonth, d)
		}
	}

	pool := all
	if len(thisMonth) > 0 {
		pool = thisMonth
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].t.After(pool[j].t)
	})

	if len(pool) > limit {
		pool = pool[:limit]
	}
	out := make([]models.Resident, len(pool))
	for i, d := range pool {
		out[i] = d.r
	}
	return out
}

// TopUnpaid returns up to limit non-paid fees by total, largest first.
// Equal totals keep their input order.
func TopUnpaid(fees []models.FeeItem, limit int) []models.FeeItem {
	unpaid := make([]models.FeeItem, 0, len(fees))
	for _, f := range fees {
		if f.Status != models.StatusPaid {
			unpaid = append(unpaid, f)
		}
	}
	sort.SliceStable(unpaid, func(i, j int) bool {
		return unpaid[i].Total > unpaid[j].Total
	})
	if len(unpaid) > limit {
		unpaid = unpaid[:limit]
	}
	return unpaid
}
