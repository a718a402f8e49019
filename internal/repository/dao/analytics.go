package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// AnalyticsDAO holds the read-side aggregation queries. Everything here
// is recomputed per request; there is no materialization.
type AnalyticsDAO struct {
	db *gorm.DB
}

func NewAnalyticsDAO(db *gorm.DB) *AnalyticsDAO {
	return &AnalyticsDAO{
		db: db,
	}
}

type FeedbackFilter struct {
	CollegeID uint
	EventID   uint
	From      time.Time
	To        time.Time
}

func (d *AnalyticsDAO) feedbackQuery(ctx context.Context, filter FeedbackFilter) *gorm.DB {
	query := d.db.WithContext(ctx).Model(&Feedback{}).
		Joins("JOIN events ON events.id = feedbacks.event_id")

	if filter.CollegeID != 0 {
		query = query.Where("events.college_id = ?", filter.CollegeID)
	}
	if filter.EventID != 0 {
		query = query.Where("feedbacks.event_id = ?", filter.EventID)
	}
	if !filter.From.IsZero() {
		query = query.Where("feedbacks.submitted_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("feedbacks.submitted_at <= ?", filter.To)
	}

	return query
}

type ratingCount struct {
	Rating int
	Count  int64
}

// RatingCounts returns the per-rating histogram for the filtered feedback
// set. Count, mean and satisfaction rate all derive from it.
func (d *AnalyticsDAO) RatingCounts(ctx context.Context, filter FeedbackFilter) (map[int]int64, error) {
	var rows []ratingCount

	err := d.feedbackQuery(ctx, filter).
		Select("feedbacks.rating AS rating, COUNT(*) AS count").
		Group("feedbacks.rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int64, len(rows))
	for _, row := range rows {
		counts[row.Rating] = row.Count
	}

	return counts, nil
}

type EventRatingRow struct {
	EventID       uint
	EventCode     string
	Title         string
	CollegeName   string
	AverageRating float64
	FeedbackCount int64
}

// TopRatedEvents ranks events by mean rating, excluding events with fewer
// than minReviews feedback rows so a single 5-star review cannot top the
// board.
func (d *AnalyticsDAO) TopRatedEvents(ctx context.Context, filter FeedbackFilter, minReviews, limit int) ([]EventRatingRow, error) {
	var rows []EventRatingRow

	err := d.feedbackQuery(ctx, filter).
		Select(`feedbacks.event_id AS event_id,
			events.event_code AS event_code,
			events.title AS title,
			colleges.name AS college_name,
			AVG(feedbacks.rating) AS average_rating,
			COUNT(*) AS feedback_count`).
		Joins("JOIN colleges ON colleges.id = events.college_id").
		Group("feedbacks.event_id, events.event_code, events.title, colleges.name").
		Having("COUNT(*) >= ?", minReviews).
		Order("average_rating DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (d *AnalyticsDAO) RecentFeedback(ctx context.Context, filter FeedbackFilter, limit int) ([]Feedback, error) {
	var feedback []Feedback

	query := d.db.WithContext(ctx).
		Preload("Event").
		Preload("Student").
		Order("submitted_at DESC").
		Limit(limit)

	if filter.EventID != 0 {
		query = query.Where("event_id = ?", filter.EventID)
	}
	if filter.CollegeID != 0 {
		query = query.Where("event_id IN (?)",
			d.db.Model(&Event{}).Select("id").Where("college_id = ?", filter.CollegeID))
	}
	if !filter.From.IsZero() {
		query = query.Where("submitted_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("submitted_at <= ?", filter.To)
	}

	result := query.Find(&feedback)
	if result.Error != nil {
		return nil, result.Error
	}

	return feedback, nil
}

type EventPopularityRow struct {
	EventID            uint
	EventCode          string
	Title              string
	CollegeName        string
	EventType          string
	StartDate          time.Time
	TotalRegistrations int64
	TotalAttendance    int64
	AverageRating      float64
}

type ReportFilter struct {
	CollegeID uint
	EventType string
	From      time.Time
	To        time.Time
}

func (d *AnalyticsDAO) eventsQuery(ctx context.Context, filter ReportFilter) *gorm.DB {
	query := d.db.WithContext(ctx).Model(&Event{})

	if filter.CollegeID != 0 {
		query = query.Where("events.college_id = ?", filter.CollegeID)
	}
	if filter.EventType != "" {
		query = query.Where("events.event_type = ?", filter.EventType)
	}
	if !filter.From.IsZero() {
		query = query.Where("events.start_date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("events.start_date <= ?", filter.To)
	}

	return query
}

func (d *AnalyticsDAO) EventPopularity(ctx context.Context, filter ReportFilter, limit int) ([]EventPopularityRow, error) {
	var rows []EventPopularityRow

	err := d.eventsQuery(ctx, filter).
		Select(`events.id AS event_id,
			events.event_code AS event_code,
			events.title AS title,
			colleges.name AS college_name,
			events.event_type AS event_type,
			events.start_date AS start_date,
			COUNT(DISTINCT r.id) FILTER (WHERE r.status = 'registered') AS total_registrations,
			COUNT(DISTINCT a.id) FILTER (WHERE a.attendance_status = 'present') AS total_attendance,
			COALESCE(AVG(f.rating), 0) AS average_rating`).
		Joins("JOIN colleges ON colleges.id = events.college_id").
		Joins("LEFT JOIN event_registrations r ON r.event_id = events.id").
		Joins("LEFT JOIN attendances a ON a.event_id = events.id").
		Joins("LEFT JOIN feedbacks f ON f.event_id = events.id").
		Group("events.id, events.event_code, events.title, colleges.name, events.event_type, events.start_date").
		Order("total_registrations DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

type AttendanceBreakdownRow struct {
	Key                string
	Label              string
	EventCount         int64
	TotalRegistrations int64
	TotalAttendance    int64
}

func (d *AnalyticsDAO) AttendanceByEventType(ctx context.Context, filter ReportFilter) ([]AttendanceBreakdownRow, error) {
	var rows []AttendanceBreakdownRow

	err := d.eventsQuery(ctx, filter).
		Select(`events.event_type AS key,
			events.event_type AS label,
			COUNT(DISTINCT events.id) AS event_count,
			COUNT(DISTINCT r.id) FILTER (WHERE r.status = 'registered') AS total_registrations,
			COUNT(DISTINCT a.id) FILTER (WHERE a.attendance_status = 'present') AS total_attendance`).
		Joins("LEFT JOIN event_registrations r ON r.event_id = events.id").
		Joins("LEFT JOIN attendances a ON a.event_id = events.id").
		Group("events.event_type").
		Order("events.event_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

func (d *AnalyticsDAO) AttendanceByCollege(ctx context.Context, filter ReportFilter) ([]AttendanceBreakdownRow, error) {
	var rows []AttendanceBreakdownRow

	err := d.eventsQuery(ctx, filter).
		Select(`colleges.code AS key,
			colleges.name AS label,
			COUNT(DISTINCT events.id) AS event_count,
			COUNT(DISTINCT r.id) FILTER (WHERE r.status = 'registered') AS total_registrations,
			COUNT(DISTINCT a.id) FILTER (WHERE a.attendance_status = 'present') AS total_attendance`).
		Joins("JOIN colleges ON colleges.id = events.college_id").
		Joins("LEFT JOIN event_registrations r ON r.event_id = events.id").
		Joins("LEFT JOIN attendances a ON a.event_id = events.id").
		Group("colleges.code, colleges.name").
		Order("colleges.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

type AttendanceTotals struct {
	TotalEvents        int64
	TotalRegistrations int64
	TotalAttendance    int64
}

func (d *AnalyticsDAO) AttendanceTotals(ctx context.Context, filter ReportFilter) (AttendanceTotals, error) {
	var totals AttendanceTotals

	if err := d.eventsQuery(ctx, filter).Count(&totals.TotalEvents).Error; err != nil {
		return AttendanceTotals{}, err
	}

	eventIDs := d.eventsQuery(ctx, filter).Select("events.id")

	err := d.db.WithContext(ctx).Model(&EventRegistration{}).
		Where("event_id IN (?) AND status = 'registered'", eventIDs).
		Count(&totals.TotalRegistrations).Error
	if err != nil {
		return AttendanceTotals{}, err
	}

	err = d.db.WithContext(ctx).Model(&Attendance{}).
		Where("event_id IN (?) AND attendance_status = 'present'", eventIDs).
		Count(&totals.TotalAttendance).Error
	if err != nil {
		return AttendanceTotals{}, err
	}

	return totals, nil
}

type StudentParticipationRow struct {
	StudentID          uint
	StudentCode        string
	FullName           string
	CollegeName        string
	Department         string
	TotalRegistrations int64
	TotalAttendance    int64
	AvgRatingGiven     float64
}

func (d *AnalyticsDAO) StudentParticipation(ctx context.Context, collegeID uint, department string, minEvents int) ([]StudentParticipationRow, error) {
	var rows []StudentParticipationRow

	query := d.db.WithContext(ctx).Model(&Student{}).
		Select(`students.id AS student_id,
			students.student_id AS student_code,
			students.first_name || ' ' || students.last_name AS full_name,
			colleges.name AS college_name,
			students.department AS department,
			COUNT(DISTINCT r.id) FILTER (WHERE r.status = 'registered') AS total_registrations,
			COUNT(DISTINCT a.id) FILTER (WHERE a.attendance_status = 'present') AS total_attendance,
			COALESCE(AVG(f.rating), 0) AS avg_rating_given`).
		Joins("JOIN colleges ON colleges.id = students.college_id").
		Joins("LEFT JOIN event_registrations r ON r.student_id = students.id").
		Joins("LEFT JOIN attendances a ON a.student_id = students.id").
		Joins("LEFT JOIN feedbacks f ON f.student_id = students.id").
		Group("students.id, students.student_id, students.first_name, students.last_name, colleges.name, students.department").
		Having("COUNT(DISTINCT r.id) FILTER (WHERE r.status = 'registered') >= ?", minEvents).
		Order("total_registrations DESC")

	if collegeID != 0 {
		query = query.Where("students.college_id = ?", collegeID)
	}
	if department != "" {
		query = query.Where("students.department = ?", department)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

type CollegeActivityRow struct {
	CollegeID         uint
	CollegeCode       string
	CollegeName       string
	EventCount        int64
	RegistrationCount int64
	AverageRating     float64
}

// TopColleges ranks colleges by active registrations. The rating average
// runs in its own subquery over the college's feedback rows; averaging
// across the registration join would weight each rating by the event's
// registration count.
func (d *AnalyticsDAO) TopColleges(ctx context.Context, limit int) ([]CollegeActivityRow, error) {
	var rows []CollegeActivityRow

	err := d.db.WithContext(ctx).Model(&College{}).
		Select(`colleges.id AS college_id,
			colleges.code AS college_code,
			colleges.name AS college_name,
			COUNT(DISTINCT events.id) AS event_count,
			COUNT(DISTINCT r.id) FILTER (WHERE r.status = 'registered') AS registration_count,
			COALESCE((SELECT AVG(f.rating)
				FROM feedbacks f
				JOIN events fe ON fe.id = f.event_id
				WHERE fe.college_id = colleges.id), 0) AS average_rating`).
		Joins("JOIN events ON events.college_id = colleges.id").
		Joins("LEFT JOIN event_registrations r ON r.event_id = events.id").
		Group("colleges.id, colleges.code, colleges.name").
		Order("registration_count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

type DashboardCounts struct {
	TotalColleges       int64
	TotalStudents       int64
	TotalEvents         int64
	ActiveEvents        int64
	TotalRegistrations  int64
	RecentRegistrations int64
	RecentAttendance    int64
	RecentFeedback      int64
}

// DashboardCounts gathers the headline totals plus activity since the
// given cutoff (the handler passes now-30d).
func (d *AnalyticsDAO) DashboardCounts(ctx context.Context, since time.Time) (DashboardCounts, error) {
	var counts DashboardCounts

	db := d.db.WithContext(ctx)
	steps := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&counts.TotalColleges, db.Model(&College{})},
		{&counts.TotalStudents, db.Model(&Student{})},
		{&counts.TotalEvents, db.Model(&Event{})},
		{&counts.ActiveEvents, db.Model(&Event{}).Where("status = 'active'")},
		{&counts.TotalRegistrations, db.Model(&EventRegistration{}).Where("status = 'registered'")},
		{&counts.RecentRegistrations, db.Model(&EventRegistration{}).Where("registration_date >= ?", since)},
		{&counts.RecentAttendance, db.Model(&Attendance{}).Where("check_in_time >= ?", since)},
		{&counts.RecentFeedback, db.Model(&Feedback{}).Where("submitted_at >= ?", since)},
	}
	for _, step := range steps {
		if err := step.query.Count(step.dest).Error; err != nil {
			return DashboardCounts{}, err
		}
	}

	return counts, nil
}

func (d *AnalyticsDAO) LatestRegistrations(ctx context.Context, since time.Time, limit int) ([]EventRegistration, error) {
	var registrations []EventRegistration

	result := d.db.WithContext(ctx).
		Preload("Student").
		Preload("Event").
		Preload("Event.College").
		Where("registration_date >= ?", since).
		Order("registration_date DESC").
		Limit(limit).
		Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

type StudentStats struct {
	TotalRegistrations int64
	TotalAttendance    int64
	TotalFeedback      int64
	AvgRatingGiven     float64
}

func (d *AnalyticsDAO) StudentStats(ctx context.Context, studentID uint) (StudentStats, error) {
	var stats StudentStats

	db := d.db.WithContext(ctx)

	err := db.Model(&EventRegistration{}).
		Where("student_id = ? AND status = 'registered'", studentID).
		Count(&stats.TotalRegistrations).Error
	if err != nil {
		return StudentStats{}, err
	}

	err = db.Model(&Attendance{}).
		Where("student_id = ? AND attendance_status = 'present'", studentID).
		Count(&stats.TotalAttendance).Error
	if err != nil {
		return StudentStats{}, err
	}

	err = db.Model(&Feedback{}).
		Where("student_id = ?", studentID).
		Count(&stats.TotalFeedback).Error
	if err != nil {
		return StudentStats{}, err
	}

	err = db.Model(&Feedback{}).
		Where("student_id = ?", studentID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&stats.AvgRatingGiven).Error
	if err != nil {
		return StudentStats{}, err
	}

	return stats, nil
}
