package diag

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/tripmate-api/internal/types"
)

const defaultCheckTimeout = 6 * time.Second

// Checker is an upstream that can prove it is reachable.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// Report is the /diag payload. Checks holds "<name>_ok" flags plus a status
// or error detail for each failed upstream.
type Report struct {
	OK     bool           `json:"ok"`
	Checks map[string]any `json:"checks"`
}

type DiagService struct {
	logger       *slog.Logger
	checkers     []Checker
	keyPresent   bool
	keyName      string
	checkTimeout time.Duration
}

func NewDiagService(checkers []Checker, directoryKeyPresent bool, logger *slog.Logger) *DiagService {
	return &DiagService{
		logger:       logger,
		checkers:     checkers,
		keyPresent:   directoryKeyPresent,
		keyName:      "opentripmap_key_present",
		checkTimeout: defaultCheckTimeout,
	}
}

// Run calls every checker concurrently. A failed check marks the report as
// not OK but never aborts the others.
func (s *DiagService) Run(ctx context.Context) Report {
	report := Report{OK: true, Checks: map[string]any{s.keyName: s.keyPresent}}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range s.checkers {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(gctx, s.checkTimeout)
			defer cancel()
			err := c.Check(cctx)

			mu.Lock()
			defer mu.Unlock()
			report.Checks[c.Name()+"_ok"] = err == nil
			if err == nil {
				return nil
			}
			report.OK = false
			if errors.Is(err, types.ErrNotConfigured) {
				report.Checks[c.Name()+"_err"] = "not configured"
			} else {
				report.Checks[c.Name()+"_err"] = err.Error()
			}
			s.logger.WarnContext(ctx, "Diagnostic check failed", slog.String("upstream", c.Name()), slog.Any("error", err))
			return nil
		})
	}
	_ = g.Wait()
	return report
}
