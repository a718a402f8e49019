package service

import (
	"context"
	"fmt"
	"time"

	"github.com/campushq/campus-events-api/internal/domain"
)

const (
	// DefaultMinReviews is the sample-size floor for top-rated events
	// when the config does not say otherwise.
	DefaultMinReviews = 3

	defaultRecentLimit  = 10
	defaultReportLimit  = 10
	dashboardTopN       = 5
	dashboardLookback   = 30 * 24 * time.Hour
	recentActivityCount = 5
)

type AnalyticsRepository interface {
	RatingDistribution(ctx context.Context, filter domain.FeedbackFilter) (domain.RatingDistribution, error)
	TopRatedEvents(ctx context.Context, filter domain.FeedbackFilter, minReviews, limit int) ([]domain.EventRatingStats, error)
	RecentFeedback(ctx context.Context, filter domain.FeedbackFilter, limit int) ([]domain.Feedback, error)
	EventPopularity(ctx context.Context, filter domain.ReportFilter, limit int) ([]domain.EventPopularity, error)
	AttendanceSummary(ctx context.Context, filter domain.ReportFilter) (domain.AttendanceSummary, error)
	StudentParticipation(ctx context.Context, collegeID uint, department string, minEvents int) ([]domain.StudentParticipation, error)
	DashboardSummary(ctx context.Context, since time.Time, topN, latestN int) (domain.DashboardSummary, error)
	StudentStats(ctx context.Context, studentID uint) (domain.StudentProfile, error)
}

type AnalyticsStudentRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Student, error)
}

type AnalyticsEventRepository interface {
	FindRegistrationsByStudent(ctx context.Context, studentID uint) ([]domain.EventRegistration, error)
}

type AnalyticsService struct {
	repo        AnalyticsRepository
	studentRepo AnalyticsStudentRepository
	eventRepo   AnalyticsEventRepository

	minReviews  int
	recentLimit int
	now         func() time.Time
}

func NewAnalyticsService(repo AnalyticsRepository, studentRepo AnalyticsStudentRepository, eventRepo AnalyticsEventRepository, minReviews, recentLimit int) *AnalyticsService {
	if minReviews <= 0 {
		minReviews = DefaultMinReviews
	}
	if recentLimit <= 0 {
		recentLimit = defaultRecentLimit
	}

	return &AnalyticsService{
		repo:        repo,
		studentRepo: studentRepo,
		eventRepo:   eventRepo,
		minReviews:  minReviews,
		recentLimit: recentLimit,
		now:         time.Now,
	}
}

// FeedbackAnalytics derives every figure from one histogram query plus
// the two ranked queries. Count, mean and satisfaction rate are computed
// from the distribution rather than separate aggregate round-trips.
func (s *AnalyticsService) FeedbackAnalytics(ctx context.Context, filter domain.FeedbackFilter) (domain.FeedbackAnalytics, error) {
	distribution, err := s.repo.RatingDistribution(ctx, filter)
	if err != nil {
		return domain.FeedbackAnalytics{}, fmt.Errorf("s.repo.RatingDistribution -> %w", err)
	}

	topEvents, err := s.repo.TopRatedEvents(ctx, filter, s.minReviews, defaultReportLimit)
	if err != nil {
		return domain.FeedbackAnalytics{}, fmt.Errorf("s.repo.TopRatedEvents -> %w", err)
	}

	recent, err := s.repo.RecentFeedback(ctx, filter, s.recentLimit)
	if err != nil {
		return domain.FeedbackAnalytics{}, fmt.Errorf("s.repo.RecentFeedback -> %w", err)
	}

	histogram := make(map[int]int64, domain.MaxRating)
	for rating := domain.MinRating; rating <= domain.MaxRating; rating++ {
		histogram[rating] = distribution[rating]
	}

	return domain.FeedbackAnalytics{
		Total:            distribution.Total(),
		AverageRating:    distribution.Mean(),
		SatisfactionRate: distribution.SatisfactionRate(),
		Distribution:     histogram,
		TopEvents:        topEvents,
		Recent:           recent,
	}, nil
}

func (s *AnalyticsService) EventPopularity(ctx context.Context, filter domain.ReportFilter, limit int) ([]domain.EventPopularity, error) {
	if limit <= 0 {
		limit = defaultReportLimit
	}

	popularity, err := s.repo.EventPopularity(ctx, filter, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.EventPopularity -> %w", err)
	}

	return popularity, nil
}

func (s *AnalyticsService) AttendanceSummary(ctx context.Context, filter domain.ReportFilter) (domain.AttendanceSummary, error) {
	summary, err := s.repo.AttendanceSummary(ctx, filter)
	if err != nil {
		return domain.AttendanceSummary{}, fmt.Errorf("s.repo.AttendanceSummary -> %w", err)
	}

	return summary, nil
}

func (s *AnalyticsService) StudentParticipation(ctx context.Context, collegeID uint, department string, minEvents int) ([]domain.StudentParticipation, error) {
	if minEvents <= 0 {
		minEvents = 1
	}

	participation, err := s.repo.StudentParticipation(ctx, collegeID, department, minEvents)
	if err != nil {
		return nil, fmt.Errorf("s.repo.StudentParticipation -> %w", err)
	}

	return participation, nil
}

func (s *AnalyticsService) DashboardSummary(ctx context.Context) (domain.DashboardSummary, error) {
	since := s.now().Add(-dashboardLookback)

	summary, err := s.repo.DashboardSummary(ctx, since, dashboardTopN, s.recentLimit)
	if err != nil {
		return domain.DashboardSummary{}, fmt.Errorf("s.repo.DashboardSummary -> %w", err)
	}

	return summary, nil
}

func (s *AnalyticsService) StudentProfile(ctx context.Context, studentID uint) (domain.StudentProfile, error) {
	student, err := s.studentRepo.FindByID(ctx, studentID)
	if err != nil {
		return domain.StudentProfile{}, fmt.Errorf("s.studentRepo.FindByID -> %w", err)
	}

	profile, err := s.repo.StudentStats(ctx, studentID)
	if err != nil {
		return domain.StudentProfile{}, fmt.Errorf("s.repo.StudentStats -> %w", err)
	}
	profile.Student = student

	registrations, err := s.eventRepo.FindRegistrationsByStudent(ctx, studentID)
	if err != nil {
		return domain.StudentProfile{}, fmt.Errorf("s.eventRepo.FindRegistrationsByStudent -> %w", err)
	}
	if len(registrations) > recentActivityCount {
		registrations = registrations[:recentActivityCount]
	}
	profile.RecentActivity = registrations

	return profile, nil
}
