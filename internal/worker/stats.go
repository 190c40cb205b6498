package worker

import "log/slog"

// Stats counts the outcomes of one generator run.
type Stats struct {
	Attempted        int
	Created          int
	Failed4xx        int
	Failed5xx        int
	FailedTimeout    int
	NoLocalCandidate int
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("attempted", s.Attempted),
		slog.Int("created", s.Created),
		slog.Int("failed_4xx", s.Failed4xx),
		slog.Int("failed_5xx", s.Failed5xx),
		slog.Int("failed_timeout", s.FailedTimeout),
		slog.Int("no_local_candidate", s.NoLocalCandidate),
	)
}
