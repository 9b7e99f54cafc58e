// Package billing computes what each vendor owes from the contact event
// ledger. Amounts are always derived at read time, never stored, so a
// misclassified event corrected in the ledger changes future reports
// automatically.
package billing

import (
	"time"

	"github.com/HawgLeg/equipscout/app/models"
	"github.com/HawgLeg/equipscout/app/repository"
)

// EventTypeStats tallies billable events per contact channel.
type EventTypeStats struct {
	Total   int `json:"total"`
	Call    int `json:"call"`
	Text    int `json:"text"`
	Email   int `json:"email"`
	Website int `json:"website"`
	Request int `json:"request"`
}

// Add counts one event. The switch is exhaustive over the closed event type
// enum so that a new type fails review here instead of silently dropping
// out of the per-channel columns.
func (s *EventTypeStats) Add(eventType string) {
	s.Total++
	switch eventType {
	case models.ContactEventCall:
		s.Call++
	case models.ContactEventText:
		s.Text++
	case models.ContactEventEmail:
		s.Email++
	case models.ContactEventWebsite:
		s.Website++
	case models.ContactEventRequest:
		s.Request++
	}
}

// VendorRow is one vendor's line in the billing report. Vendors outside
// ACTIVE billing status still show their raw counts for transparency but
// owe nothing.
type VendorRow struct {
	VendorUUID      string         `json:"vendor_id"`
	VendorName      string         `json:"vendor_name"`
	VendorEmail     string         `json:"vendor_email"`
	CPCRate         float64        `json:"cpc_rate"`
	BillingStatus   string         `json:"billing_status"`
	OnboardingDate  time.Time      `json:"onboarding_date"`
	LastContactedAt *time.Time     `json:"last_contacted_at"`
	AdminNotes      string         `json:"admin_notes,omitempty"`
	ThisWeek        EventTypeStats `json:"this_week"`
	ThisMonth       EventTypeStats `json:"this_month"`
	// AmountDueThisMonth = monthly billable total x cpcRate for ACTIVE
	// vendors, 0 otherwise. Never negative.
	AmountDueThisMonth float64 `json:"amount_due_this_month"`
}

// Totals are computed over ACTIVE vendors' events only: events of paused or
// opted-out vendors occurred but are not contractually billable.
type Totals struct {
	TotalBillableThisWeek  int     `json:"total_billable_this_week"`
	TotalBillableThisMonth int     `json:"total_billable_this_month"`
	TotalRevenue           float64 `json:"total_revenue"`
}

// Period states the window boundaries a report was computed for.
type Period struct {
	WeekStart  time.Time `json:"week_start"`
	MonthStart time.Time `json:"month_start"`
}

// Report is the full admin billing view.
type Report struct {
	Vendors []VendorRow `json:"vendors"`
	Totals  Totals      `json:"totals"`
	Period  Period      `json:"period"`
}

// WeekStart returns the start of the current billing week: Sunday 00:00 in
// now's location.
func WeekStart(now time.Time) time.Time {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -int(now.Weekday()))
}

// MonthStart returns the first of the current month, 00:00 in now's location.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// Aggregator builds billing reports from the ledger and the vendor billing
// configuration.
type Aggregator struct {
	vendors repository.VendorRepository
	events  repository.ContactEventRepository
	now     func() time.Time
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithClock injects a clock, used by tests.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// NewAggregator creates an aggregator over the given repositories.
func NewAggregator(vendors repository.VendorRepository, events repository.ContactEventRepository, opts ...Option) *Aggregator {
	a := &Aggregator{vendors: vendors, events: events, now: time.Now}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BuildReport computes the per-vendor billing rows and ACTIVE-only totals
// for the current week and month.
func (a *Aggregator) BuildReport() (*Report, error) {
	now := a.now()
	weekStart := WeekStart(now)
	monthStart := MonthStart(now)

	vendors, err := a.vendors.ListWithBilling()
	if err != nil {
		return nil, err
	}

	weekEvents, err := a.events.ListBillableSince(weekStart)
	if err != nil {
		return nil, err
	}
	monthEvents, err := a.events.ListBillableSince(monthStart)
	if err != nil {
		return nil, err
	}

	weekByVendor := tallyByVendor(weekEvents)
	monthByVendor := tallyByVendor(monthEvents)

	activeVendorIDs := make(map[uint]bool)
	for _, v := range vendors {
		if v.BillingStatus == models.BillingStatusActive {
			activeVendorIDs[v.ID] = true
		}
	}

	report := &Report{
		Vendors: make([]VendorRow, 0, len(vendors)),
		Period:  Period{WeekStart: weekStart, MonthStart: monthStart},
	}

	for _, vendor := range vendors {
		cpcRate := models.EffectiveCPCRate(vendor.Billing)

		row := VendorRow{
			VendorUUID:      vendor.UUID,
			VendorName:      vendor.Name,
			VendorEmail:     vendor.Email,
			CPCRate:         cpcRate,
			BillingStatus:   vendor.BillingStatus,
			OnboardingDate:  vendor.OnboardingDate,
			LastContactedAt: vendor.LastContactedAt,
			AdminNotes:      vendor.AdminNotes,
		}
		if stats, ok := weekByVendor[vendor.ID]; ok {
			row.ThisWeek = *stats
		}
		if stats, ok := monthByVendor[vendor.ID]; ok {
			row.ThisMonth = *stats
		}
		if vendor.BillingStatus == models.BillingStatusActive {
			row.AmountDueThisMonth = float64(row.ThisMonth.Total) * cpcRate
			report.Totals.TotalRevenue += row.AmountDueThisMonth
		}
		report.Vendors = append(report.Vendors, row)
	}

	for _, e := range weekEvents {
		if activeVendorIDs[e.VendorID] {
			report.Totals.TotalBillableThisWeek++
		}
	}
	for _, e := range monthEvents {
		if activeVendorIDs[e.VendorID] {
			report.Totals.TotalBillableThisMonth++
		}
	}

	return report, nil
}

func tallyByVendor(events []models.ContactEvent) map[uint]*EventTypeStats {
	byVendor := make(map[uint]*EventTypeStats)
	for _, e := range events {
		stats, ok := byVendor[e.VendorID]
		if !ok {
			stats = &EventTypeStats{}
			byVendor[e.VendorID] = stats
		}
		stats.Add(e.EventType)
	}
	return byVendor
}
