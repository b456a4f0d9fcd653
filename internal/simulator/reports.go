package simulator

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// VelocityReport summarizes sprint throughput for a project.
type VelocityReport struct {
	VelocityPerDay int `json:"velocity_per_day"`
	TotalPoints    int `json:"total_points"`
}

// GenerateVelocityReport divides completed story points by the sprint length.
// The seeded sprint's length was never configured and defaults to 0 days.
func (s *Service) GenerateVelocityReport(projectID string, points int) VelocityReport {
	project := s.loadProject(projectID)
	velocity := project.Sprint.VelocityPerDay(points)
	return VelocityReport{VelocityPerDay: velocity, TotalPoints: points}
}

// AggregationReport runs the analytics aggregation under the configured
// deadline. The simulated query outlasts it.
func (s *Service) AggregationReport(ctx context.Context) (map[string]any, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryDeadline)
	defer cancel()

	result, err := s.runAggregation(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate task metrics")
	}
	return result, nil
}

func (s *Service) runAggregation(ctx context.Context) (map[string]any, error) {
	timer := time.NewTimer(s.queryDuration)
	defer timer.Stop()

	select {
	case <-timer.C:
		return map[string]any{"result": "done"}, nil
	case <-ctx.Done():
		return nil, errors.WithStack(ctx.Err())
	}
}
