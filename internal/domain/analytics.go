package domain

import "time"

// FeedbackFilter narrows feedback aggregation. Zero values mean "no filter".
type FeedbackFilter struct {
	CollegeID uint
	EventID   uint
	From      time.Time
	To        time.Time
}

// ReportFilter narrows event-scoped reports. Zero values mean "no filter".
type ReportFilter struct {
	CollegeID uint
	EventType string
	From      time.Time
	To        time.Time
}

// RatingDistribution holds per-rating counts for ratings 1..5.
// Index 0 is unused so Counts[r] is the count for rating r.
type RatingDistribution [MaxRating + 1]int64

func (d RatingDistribution) Total() int64 {
	var total int64
	for r := MinRating; r <= MaxRating; r++ {
		total += d[r]
	}

	return total
}

// Mean returns the arithmetic mean rating, 0 for an empty distribution.
func (d RatingDistribution) Mean() float64 {
	total := d.Total()
	if total == 0 {
		return 0
	}

	var sum int64
	for r := MinRating; r <= MaxRating; r++ {
		sum += int64(r) * d[r]
	}

	return float64(sum) / float64(total)
}

// SatisfactionRate returns the percentage of ratings >= 4, one decimal.
func (d RatingDistribution) SatisfactionRate() float64 {
	total := d.Total()
	if total == 0 {
		return 0
	}

	satisfied := d[4] + d[5]

	return round1(float64(satisfied) / float64(total) * 100)
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}

type FeedbackAnalytics struct {
	Total            int64              `json:"total"`
	AverageRating    float64            `json:"average_rating"`
	SatisfactionRate float64            `json:"satisfaction_rate"`
	Distribution     map[int]int64      `json:"distribution"`
	TopEvents        []EventRatingStats `json:"top_events"`
	Recent           []Feedback         `json:"recent"`
}

type EventRatingStats struct {
	EventID       uint    `json:"event_id"`
	EventCode     string  `json:"event_code"`
	Title         string  `json:"title"`
	CollegeName   string  `json:"college_name"`
	AverageRating float64 `json:"average_rating"`
	FeedbackCount int64   `json:"feedback_count"`
}

type EventPopularity struct {
	EventID            uint      `json:"event_id"`
	EventCode          string    `json:"event_code"`
	Title              string    `json:"title"`
	CollegeName        string    `json:"college_name"`
	EventType          string    `json:"event_type"`
	StartDate          time.Time `json:"start_date"`
	TotalRegistrations int64     `json:"total_registrations"`
	TotalAttendance    int64     `json:"total_attendance"`
	AttendanceRate     float64   `json:"attendance_rate"`
	AverageRating      float64   `json:"avg_rating"`
}

type AttendanceBreakdown struct {
	Key                string  `json:"key"`
	Label              string  `json:"label"`
	EventCount         int64   `json:"event_count"`
	TotalRegistrations int64   `json:"total_registrations"`
	TotalAttendance    int64   `json:"total_attendance"`
	AttendanceRate     float64 `json:"attendance_rate"`
}

type AttendanceSummary struct {
	TotalEvents        int64                 `json:"total_events"`
	TotalRegistrations int64                 `json:"total_registrations"`
	TotalAttendance    int64                 `json:"total_attendance"`
	AttendanceRate     float64               `json:"overall_attendance_rate"`
	ByEventType        []AttendanceBreakdown `json:"attendance_by_event_type"`
	ByCollege          []AttendanceBreakdown `json:"attendance_by_college"`
}

type StudentParticipation struct {
	StudentID          uint    `json:"student_id"`
	StudentCode        string  `json:"student_code"`
	FullName           string  `json:"full_name"`
	CollegeName        string  `json:"college_name"`
	Department         string  `json:"department"`
	TotalRegistrations int64   `json:"total_registrations"`
	TotalAttendance    int64   `json:"total_attendance"`
	AttendanceRate     float64 `json:"attendance_rate"`
	AvgRatingGiven     float64 `json:"avg_rating_given"`
}

type CollegeActivity struct {
	CollegeID         uint    `json:"college_id"`
	CollegeCode       string  `json:"college_code"`
	CollegeName       string  `json:"college_name"`
	EventCount        int64   `json:"event_count"`
	RegistrationCount int64   `json:"registration_count"`
	AverageRating     float64 `json:"avg_rating"`
}

type DashboardSummary struct {
	TotalColleges       int64               `json:"total_colleges"`
	TotalStudents       int64               `json:"total_students"`
	TotalEvents         int64               `json:"total_events"`
	ActiveEvents        int64               `json:"active_events"`
	TotalRegistrations  int64               `json:"total_registrations"`
	RecentRegistrations int64               `json:"recent_registrations"`
	RecentAttendance    int64               `json:"recent_attendance"`
	RecentFeedback      int64               `json:"recent_feedback"`
	TopColleges         []CollegeActivity   `json:"top_colleges"`
	LatestRegistrations []EventRegistration `json:"latest_registrations"`
}

type StudentProfile struct {
	Student            Student             `json:"student"`
	TotalRegistrations int64               `json:"total_registrations"`
	TotalAttendance    int64               `json:"total_attendance"`
	AttendanceRate     float64             `json:"attendance_rate"`
	TotalFeedback      int64               `json:"total_feedback"`
	AvgRatingGiven     float64             `json:"avg_rating_given"`
	RecentActivity     []EventRegistration `json:"recent_registrations"`
}

// AttendanceRate is the shared rate computation for reports: attended
// over registered as a percentage, one decimal, 0 when nothing registered.
func AttendanceRate(attended, registered int64) float64 {
	if registered == 0 {
		return 0
	}

	return round1(float64(attended) / float64(registered) * 100)
}
