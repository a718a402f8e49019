package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/campushq/campus-events-api/internal/domain"
	"github.com/campushq/campus-events-api/internal/repository/dao"
)

type AnalyticsDAO interface {
	RatingCounts(ctx context.Context, filter dao.FeedbackFilter) (map[int]int64, error)
	TopRatedEvents(ctx context.Context, filter dao.FeedbackFilter, minReviews, limit int) ([]dao.EventRatingRow, error)
	RecentFeedback(ctx context.Context, filter dao.FeedbackFilter, limit int) ([]dao.Feedback, error)
	EventPopularity(ctx context.Context, filter dao.ReportFilter, limit int) ([]dao.EventPopularityRow, error)
	AttendanceTotals(ctx context.Context, filter dao.ReportFilter) (dao.AttendanceTotals, error)
	AttendanceByEventType(ctx context.Context, filter dao.ReportFilter) ([]dao.AttendanceBreakdownRow, error)
	AttendanceByCollege(ctx context.Context, filter dao.ReportFilter) ([]dao.AttendanceBreakdownRow, error)
	StudentParticipation(ctx context.Context, collegeID uint, department string, minEvents int) ([]dao.StudentParticipationRow, error)
	TopColleges(ctx context.Context, limit int) ([]dao.CollegeActivityRow, error)
	DashboardCounts(ctx context.Context, since time.Time) (dao.DashboardCounts, error)
	LatestRegistrations(ctx context.Context, since time.Time, limit int) ([]dao.EventRegistration, error)
	StudentStats(ctx context.Context, studentID uint) (dao.StudentStats, error)
}

type AnalyticsRepository struct {
	dao AnalyticsDAO
}

func NewAnalyticsRepository(dao AnalyticsDAO) *AnalyticsRepository {
	return &AnalyticsRepository{
		dao: dao,
	}
}

func feedbackFilterToDao(f domain.FeedbackFilter) dao.FeedbackFilter {
	return dao.FeedbackFilter{
		CollegeID: f.CollegeID,
		EventID:   f.EventID,
		From:      f.From,
		To:        f.To,
	}
}

// RatingDistribution fetches the histogram for the filter; buckets with
// no feedback come back zero-filled.
func (r *AnalyticsRepository) RatingDistribution(ctx context.Context, filter domain.FeedbackFilter) (domain.RatingDistribution, error) {
	counts, err := r.dao.RatingCounts(ctx, feedbackFilterToDao(filter))
	if err != nil {
		return domain.RatingDistribution{}, fmt.Errorf("r.dao.RatingCounts -> %w", err)
	}

	var distribution domain.RatingDistribution
	for rating := domain.MinRating; rating <= domain.MaxRating; rating++ {
		distribution[rating] = counts[rating]
	}

	return distribution, nil
}

func (r *AnalyticsRepository) TopRatedEvents(ctx context.Context, filter domain.FeedbackFilter, minReviews, limit int) ([]domain.EventRatingStats, error) {
	rows, err := r.dao.TopRatedEvents(ctx, feedbackFilterToDao(filter), minReviews, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.TopRatedEvents -> %w", err)
	}

	stats := make([]domain.EventRatingStats, len(rows))
	for i, row := range rows {
		stats[i] = domain.EventRatingStats{
			EventID:       row.EventID,
			EventCode:     row.EventCode,
			Title:         row.Title,
			CollegeName:   row.CollegeName,
			AverageRating: row.AverageRating,
			FeedbackCount: row.FeedbackCount,
		}
	}

	return stats, nil
}

func (r *AnalyticsRepository) RecentFeedback(ctx context.Context, filter domain.FeedbackFilter, limit int) ([]domain.Feedback, error) {
	rows, err := r.dao.RecentFeedback(ctx, feedbackFilterToDao(filter), limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.RecentFeedback -> %w", err)
	}

	feedback := make([]domain.Feedback, len(rows))
	for i, row := range rows {
		feedback[i] = feedbackDaoToDomain(row)
	}

	return feedback, nil
}

func (r *AnalyticsRepository) EventPopularity(ctx context.Context, filter domain.ReportFilter, limit int) ([]domain.EventPopularity, error) {
	rows, err := r.dao.EventPopularity(ctx, reportFilterToDao(filter), limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.EventPopularity -> %w", err)
	}

	popularity := make([]domain.EventPopularity, len(rows))
	for i, row := range rows {
		popularity[i] = domain.EventPopularity{
			EventID:            row.EventID,
			EventCode:          row.EventCode,
			Title:              row.Title,
			CollegeName:        row.CollegeName,
			EventType:          row.EventType,
			StartDate:          row.StartDate,
			TotalRegistrations: row.TotalRegistrations,
			TotalAttendance:    row.TotalAttendance,
			AttendanceRate:     domain.AttendanceRate(row.TotalAttendance, row.TotalRegistrations),
			AverageRating:      row.AverageRating,
		}
	}

	return popularity, nil
}

func (r *AnalyticsRepository) AttendanceSummary(ctx context.Context, filter domain.ReportFilter) (domain.AttendanceSummary, error) {
	daoFilter := reportFilterToDao(filter)

	totals, err := r.dao.AttendanceTotals(ctx, daoFilter)
	if err != nil {
		return domain.AttendanceSummary{}, fmt.Errorf("r.dao.AttendanceTotals -> %w", err)
	}

	byType, err := r.dao.AttendanceByEventType(ctx, daoFilter)
	if err != nil {
		return domain.AttendanceSummary{}, fmt.Errorf("r.dao.AttendanceByEventType -> %w", err)
	}

	byCollege, err := r.dao.AttendanceByCollege(ctx, daoFilter)
	if err != nil {
		return domain.AttendanceSummary{}, fmt.Errorf("r.dao.AttendanceByCollege -> %w", err)
	}

	return domain.AttendanceSummary{
		TotalEvents:        totals.TotalEvents,
		TotalRegistrations: totals.TotalRegistrations,
		TotalAttendance:    totals.TotalAttendance,
		AttendanceRate:     domain.AttendanceRate(totals.TotalAttendance, totals.TotalRegistrations),
		ByEventType:        breakdownRowsToDomain(byType),
		ByCollege:          breakdownRowsToDomain(byCollege),
	}, nil
}

func (r *AnalyticsRepository) StudentParticipation(ctx context.Context, collegeID uint, department string, minEvents int) ([]domain.StudentParticipation, error) {
	rows, err := r.dao.StudentParticipation(ctx, collegeID, department, minEvents)
	if err != nil {
		return nil, fmt.Errorf("r.dao.StudentParticipation -> %w", err)
	}

	participation := make([]domain.StudentParticipation, len(rows))
	for i, row := range rows {
		participation[i] = domain.StudentParticipation{
			StudentID:          row.StudentID,
			StudentCode:        row.StudentCode,
			FullName:           row.FullName,
			CollegeName:        row.CollegeName,
			Department:         row.Department,
			TotalRegistrations: row.TotalRegistrations,
			TotalAttendance:    row.TotalAttendance,
			AttendanceRate:     domain.AttendanceRate(row.TotalAttendance, row.TotalRegistrations),
			AvgRatingGiven:     row.AvgRatingGiven,
		}
	}

	return participation, nil
}

func (r *AnalyticsRepository) DashboardSummary(ctx context.Context, since time.Time, topN, latestN int) (domain.DashboardSummary, error) {
	counts, err := r.dao.DashboardCounts(ctx, since)
	if err != nil {
		return domain.DashboardSummary{}, fmt.Errorf("r.dao.DashboardCounts -> %w", err)
	}

	topColleges, err := r.dao.TopColleges(ctx, topN)
	if err != nil {
		return domain.DashboardSummary{}, fmt.Errorf("r.dao.TopColleges -> %w", err)
	}

	latest, err := r.dao.LatestRegistrations(ctx, since, latestN)
	if err != nil {
		return domain.DashboardSummary{}, fmt.Errorf("r.dao.LatestRegistrations -> %w", err)
	}

	colleges := make([]domain.CollegeActivity, len(topColleges))
	for i, row := range topColleges {
		colleges[i] = domain.CollegeActivity{
			CollegeID:         row.CollegeID,
			CollegeCode:       row.CollegeCode,
			CollegeName:       row.CollegeName,
			EventCount:        row.EventCount,
			RegistrationCount: row.RegistrationCount,
			AverageRating:     row.AverageRating,
		}
	}

	return domain.DashboardSummary{
		TotalColleges:       counts.TotalColleges,
		TotalStudents:       counts.TotalStudents,
		TotalEvents:         counts.TotalEvents,
		ActiveEvents:        counts.ActiveEvents,
		TotalRegistrations:  counts.TotalRegistrations,
		RecentRegistrations: counts.RecentRegistrations,
		RecentAttendance:    counts.RecentAttendance,
		RecentFeedback:      counts.RecentFeedback,
		TopColleges:         colleges,
		LatestRegistrations: registrationsDaoToDomain(latest),
	}, nil
}

func (r *AnalyticsRepository) StudentStats(ctx context.Context, studentID uint) (domain.StudentProfile, error) {
	stats, err := r.dao.StudentStats(ctx, studentID)
	if err != nil {
		return domain.StudentProfile{}, fmt.Errorf("r.dao.StudentStats -> %w", err)
	}

	return domain.StudentProfile{
		TotalRegistrations: stats.TotalRegistrations,
		TotalAttendance:    stats.TotalAttendance,
		AttendanceRate:     domain.AttendanceRate(stats.TotalAttendance, stats.TotalRegistrations),
		TotalFeedback:      stats.TotalFeedback,
		AvgRatingGiven:     stats.AvgRatingGiven,
	}, nil
}

func reportFilterToDao(f domain.ReportFilter) dao.ReportFilter {
	return dao.ReportFilter{
		CollegeID: f.CollegeID,
		EventType: f.EventType,
		From:      f.From,
		To:        f.To,
	}
}

func breakdownRowsToDomain(rows []dao.AttendanceBreakdownRow) []domain.AttendanceBreakdown {
	breakdowns := make([]domain.AttendanceBreakdown, len(rows))
	for i, row := range rows {
		breakdowns[i] = domain.AttendanceBreakdown{
			Key:                row.Key,
			Label:              row.Label,
			EventCount:         row.EventCount,
			TotalRegistrations: row.TotalRegistrations,
			TotalAttendance:    row.TotalAttendance,
			AttendanceRate:     domain.AttendanceRate(row.TotalAttendance, row.TotalRegistrations),
		}
	}

	return breakdowns
}
