package simulator

import (
	"time"

	"github.com/sirupsen/logrus"

	"faultline/internal/config"
	"faultline/internal/domain"
)

// Service implements the fault simulators. Every scenario builds its domain
// state fresh per call; the only long-lived state is the set of thresholds
// taken from configuration. Simulators never catch their own induced
// failure; panics and errors propagate to the capture layer.
type Service struct {
	log *logrus.Logger

	exportDir     string
	probeAddr     string
	probeTimeout  time.Duration
	queryDeadline time.Duration
	queryDuration time.Duration
	maxTreeDepth  int
	byteBudget    int64
	defaultCount  int
}

func New(cfg config.Config, log *logrus.Logger) *Service {
	return &Service{
		log:           log,
		exportDir:     cfg.Export.Dir,
		probeAddr:     cfg.Probe.Addr,
		probeTimeout:  cfg.ProbeTimeout(),
		queryDeadline: cfg.QueryDeadline(),
		queryDuration: cfg.QueryDuration(),
		maxTreeDepth:  cfg.Tree.MaxDepth,
		byteBudget:    cfg.Import.BudgetBytes,
		defaultCount:  cfg.Import.DefaultCount,
	}
}

// DefaultImportCount is the bulk-import size used when the caller supplies none.
func (s *Service) DefaultImportCount() int {
	return s.defaultCount
}

func (s *Service) lookupUser(userID int64) *domain.User {
	return domain.SeedUsers()[userID]
}
