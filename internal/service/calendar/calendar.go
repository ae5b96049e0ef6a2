// Package calendar aggregates bookings for the admin dashboard and the
// month-grid views. Everything here is pure: same inputs, same outputs,
// no I/O.
package calendar

import (
	"strings"
	"time"

	"github.com/nekkositon/booking-api/internal/model"
)

// StatusFilterAll disables status filtering.
const StatusFilterAll = "all"

// Stats is the dashboard statistics tuple.
type Stats struct {
	// TotalEarnings sums service prices of completed bookings only.
	TotalEarnings int64 `json:"total_earnings"`
	// TotalClients counts distinct owning clients across all statuses.
	TotalClients  int `json:"total_clients"`
	PendingCount  int `json:"pending_count"`
	ApprovedCount int `json:"approved_count"`
}

// Day is one cell of the month grid.
type Day struct {
	Date         time.Time `json:"date"`
	InMonth      bool      `json:"in_month"`
	BookingCount int       `json:"booking_count"`
	IsToday      bool      `json:"is_today"`
	IsSelected   bool      `json:"is_selected"`
}

// DayKey truncates t to day granularity in loc. Every truncation in a single
// rendering pass must use the same location or buckets drift across midnight.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(model.DateOnly)
}

// DayBuckets groups bookings by calendar day, preserving input order within
// each bucket.
func DayBuckets(bookings []*model.BookingDetail, loc *time.Location) map[string][]*model.BookingDetail {
	buckets := make(map[string][]*model.BookingDetail, len(bookings))
	for _, b := range bookings {
		key := DayKey(b.BookingDate, loc)
		buckets[key] = append(buckets[key], b)
	}
	return buckets
}

// ComputeStats derives the dashboard statistics from the full booking set.
func ComputeStats(bookings []*model.BookingDetail) Stats {
	var stats Stats
	clients := make(map[string]struct{})

	for _, b := range bookings {
		clients[b.UserID] = struct{}{}
		switch b.Status {
		case model.BookingStatusCompleted:
			stats.TotalEarnings += b.ServicePrice
		case model.BookingStatusPending:
			stats.PendingCount++
		case model.BookingStatusApproved:
			stats.ApprovedCount++
		}
	}

	stats.TotalClients = len(clients)
	return stats
}

// MonthGrid enumerates every day from the Sunday of the week containing the
// first of ref's month through the Saturday of the week containing its last
// day, marking booking counts, today, and the selected day.
func MonthGrid(ref, today time.Time, selected *time.Time, bookings []*model.BookingDetail, loc *time.Location) []Day {
	buckets := DayBuckets(bookings, loc)

	monthStart := time.Date(ref.In(loc).Year(), ref.In(loc).Month(), 1, 0, 0, 0, 0, loc)
	monthEnd := monthStart.AddDate(0, 1, -1)

	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	gridEnd := monthEnd.AddDate(0, 0, int(time.Saturday-monthEnd.Weekday()))

	todayKey := DayKey(today, loc)
	selectedKey := ""
	if selected != nil {
		selectedKey = DayKey(*selected, loc)
	}

	var days []Day
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 1) {
		key := DayKey(day, loc)
		days = append(days, Day{
			Date:         day,
			InMonth:      day.Month() == monthStart.Month(),
			BookingCount: len(buckets[key]),
			IsToday:      key == todayKey,
			IsSelected:   selectedKey != "" && key == selectedKey,
		})
	}
	return days
}

// Filter applies a status filter (exact match or "all") conjoined with a
// case-insensitive text search over client name, client email, and service
// name.
func Filter(bookings []*model.BookingDetail, status, query string) []*model.BookingDetail {
	needle := strings.ToLower(strings.TrimSpace(query))

	filtered := make([]*model.BookingDetail, 0, len(bookings))
	for _, b := range bookings {
		if status != "" && status != StatusFilterAll && string(b.Status) != status {
			continue
		}
		if needle != "" && !matchesQuery(b, needle) {
			continue
		}
		filtered = append(filtered, b)
	}
	return filtered
}

func matchesQuery(b *model.BookingDetail, needle string) bool {
	return strings.Contains(strings.ToLower(b.ClientName), needle) ||
		strings.Contains(strings.ToLower(b.ClientEmail), needle) ||
		strings.Contains(strings.ToLower(b.ServiceName), needle)
}
