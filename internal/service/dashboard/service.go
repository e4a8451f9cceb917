package dashboard

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/jwalitptl/doctor-api/internal/model"
	"github.com/jwalitptl/doctor-api/internal/repository"
)

// ListLimit caps every list on the dashboard.
const ListLimit = 5

type Service struct {
	repo       repository.DashboardRepository
	activities repository.ActivityRepository
}

func NewService(repo repository.DashboardRepository, activities repository.ActivityRepository) *Service {
	return &Service{
		repo:       repo,
		activities: activities,
	}
}

func (s *Service) GetDashboard(ctx context.Context) (*model.Dashboard, error) {
	var (
		stats    *model.DashboardStats
		upcoming []*model.UpcomingAppointment
		alerts   []*model.Alert
		recent   []*model.Activity
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.repo.GetStats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		upcoming, err = s.repo.ListUpcomingAppointments(gctx, ListLimit)
		return err
	})
	g.Go(func() error {
		var err error
		alerts, err = s.repo.ListAlerts(gctx, ListLimit)
		return err
	})
	g.Go(func() error {
		var err error
		recent, err = s.activities.ListRecent(gctx, ListLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	}

	stats.SatisfactionRate = SatisfactionRate(stats.CompletedAppointments, stats.CancelledAppointments)

	dashboard := &model.Dashboard{
		Stats:                *stats,
		UpcomingAppointments: upcoming,
		Alerts:               alerts,
		RecentActivities:     recent,
	}
	if dashboard.UpcomingAppointments == nil {
		dashboard.UpcomingAppointments = []*model.UpcomingAppointment{}
	}
	if dashboard.Alerts == nil {
		dashboard.Alerts = []*model.Alert{}
	}
	if dashboard.RecentActivities == nil {
		dashboard.RecentActivities = []*model.Activity{}
	}
	return dashboard, nil
}

// SatisfactionRate is the rounded share of finished appointments that were
// completed rather than cancelled, or 100 when none are finished.
func SatisfactionRate(completed, cancelled int) int {
	finished := completed + cancelled
	if finished == 0 {
		return 100
	}
	return int(math.Round(100 * float64(completed) / float64(finished)))
}
