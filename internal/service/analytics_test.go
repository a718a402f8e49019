package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushq/campus-events-api/internal/domain"
)

type fakeAnalyticsRepo struct {
	distribution domain.RatingDistribution
	eventStats   []domain.EventRatingStats
	recent       []domain.Feedback
	profile      domain.StudentProfile

	gotMinReviews int
}

func (f *fakeAnalyticsRepo) RatingDistribution(_ context.Context, _ domain.FeedbackFilter) (domain.RatingDistribution, error) {
	return f.distribution, nil
}

func (f *fakeAnalyticsRepo) TopRatedEvents(_ context.Context, _ domain.FeedbackFilter, minReviews, limit int) ([]domain.EventRatingStats, error) {
	f.gotMinReviews = minReviews

	var top []domain.EventRatingStats
	for _, stats := range f.eventStats {
		if stats.FeedbackCount >= int64(minReviews) {
			top = append(top, stats)
		}
		if len(top) == limit {
			break
		}
	}

	return top, nil
}

func (f *fakeAnalyticsRepo) RecentFeedback(_ context.Context, _ domain.FeedbackFilter, limit int) ([]domain.Feedback, error) {
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}

	return f.recent, nil
}

func (f *fakeAnalyticsRepo) EventPopularity(_ context.Context, _ domain.ReportFilter, _ int) ([]domain.EventPopularity, error) {
	return nil, nil
}

func (f *fakeAnalyticsRepo) AttendanceSummary(_ context.Context, _ domain.ReportFilter) (domain.AttendanceSummary, error) {
	return domain.AttendanceSummary{}, nil
}

func (f *fakeAnalyticsRepo) StudentParticipation(_ context.Context, _ uint, _ string, _ int) ([]domain.StudentParticipation, error) {
	return nil, nil
}

func (f *fakeAnalyticsRepo) DashboardSummary(_ context.Context, _ time.Time, _, _ int) (domain.DashboardSummary, error) {
	return domain.DashboardSummary{}, nil
}

func (f *fakeAnalyticsRepo) StudentStats(_ context.Context, _ uint) (domain.StudentProfile, error) {
	return f.profile, nil
}

func TestFeedbackAnalytics(t *testing.T) {
	ctx := context.Background()

	t.Run("derives figures from the distribution", func(t *testing.T) {
		repo := &fakeAnalyticsRepo{}
		repo.distribution[5] = 1
		repo.distribution[4] = 1
		repo.distribution[3] = 1

		svc := NewAnalyticsService(repo, nil, nil, 0, 0)

		analytics, err := svc.FeedbackAnalytics(ctx, domain.FeedbackFilter{})

		require.NoError(t, err)
		assert.Equal(t, int64(3), analytics.Total)
		assert.InDelta(t, 4.0, analytics.AverageRating, 0.0001)
		assert.InDelta(t, 66.7, analytics.SatisfactionRate, 0.0001)
		assert.Equal(t, map[int]int64{1: 0, 2: 0, 3: 1, 4: 1, 5: 1}, analytics.Distribution)
	})

	t.Run("top events honor the review floor", func(t *testing.T) {
		repo := &fakeAnalyticsRepo{
			eventStats: []domain.EventRatingStats{
				{EventID: 1, AverageRating: 4.8, FeedbackCount: 12},
				{EventID: 2, AverageRating: 5.0, FeedbackCount: 2},
				{EventID: 3, AverageRating: 4.2, FeedbackCount: 3},
			},
		}

		svc := NewAnalyticsService(repo, nil, nil, 3, 10)

		analytics, err := svc.FeedbackAnalytics(ctx, domain.FeedbackFilter{})

		require.NoError(t, err)
		assert.Equal(t, 3, repo.gotMinReviews)
		require.Len(t, analytics.TopEvents, 2)
		for _, stats := range analytics.TopEvents {
			assert.GreaterOrEqual(t, stats.FeedbackCount, int64(3))
		}
	})

	t.Run("zero config falls back to defaults", func(t *testing.T) {
		repo := &fakeAnalyticsRepo{}
		svc := NewAnalyticsService(repo, nil, nil, 0, 0)

		_, err := svc.FeedbackAnalytics(ctx, domain.FeedbackFilter{})

		require.NoError(t, err)
		assert.Equal(t, DefaultMinReviews, repo.gotMinReviews)
	})

	t.Run("recent feedback is capped", func(t *testing.T) {
		repo := &fakeAnalyticsRepo{}
		for i := 0; i < 20; i++ {
			repo.recent = append(repo.recent, domain.Feedback{ID: uint(i + 1), Rating: 4})
		}

		svc := NewAnalyticsService(repo, nil, nil, 3, 10)

		analytics, err := svc.FeedbackAnalytics(ctx, domain.FeedbackFilter{})

		require.NoError(t, err)
		assert.Len(t, analytics.Recent, 10)
	})
}

func TestStudentProfile(t *testing.T) {
	ctx := context.Background()

	repo := &fakeAnalyticsRepo{
		profile: domain.StudentProfile{
			TotalRegistrations: 8,
			TotalAttendance:    6,
			AttendanceRate:     75.0,
		},
	}
	studentRepo := &fakeStudentRepo{students: map[uint]domain.Student{
		10: {ID: 10, StudentID: "STU-010", FirstName: "Asha", LastName: "Verma"},
	}}

	eventRepo := newFakeEventRepo()
	for i := 0; i < 8; i++ {
		eventRepo.registrations[regKey{uint(i + 1), 10}] = domain.EventRegistration{
			ID:        uint(i + 1),
			EventID:   uint(i + 1),
			StudentID: 10,
			Status:    domain.RegistrationStatusRegistered,
		}
	}

	svc := NewAnalyticsService(repo, studentRepo, eventRepo, 3, 10)

	profile, err := svc.StudentProfile(ctx, 10)

	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", profile.Student.FullName())
	assert.Equal(t, int64(8), profile.TotalRegistrations)
	assert.Len(t, profile.RecentActivity, 5)

	_, err = svc.StudentProfile(ctx, 404)
	assert.ErrorIs(t, err, ErrStudentNotFound)
}
