package repo

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Surojit012/DobbyCaption/internal/domain"
	"github.com/Surojit012/DobbyCaption/internal/infra"
	"github.com/Surojit012/DobbyCaption/internal/pipeline"
	"github.com/Surojit012/DobbyCaption/internal/sqlinline"
)

const defaultRecentLimit = 20

// RunRepositoryPG persists finished caption runs in PostgreSQL.
type RunRepositoryPG struct {
	sql    infra.SQLExecutor
	logger zerolog.Logger
}

func NewRunRepository(sql infra.SQLExecutor, logger zerolog.Logger) *RunRepositoryPG {
	return &RunRepositoryPG{sql: sql, logger: logger}
}

// Record stores one finished run. It is fire-and-forget: persistence failures
// are logged and never surfaced to the pipeline.
func (r *RunRepositoryPG) Record(ctx context.Context, run domain.Run) {
	_, err := r.sql.Exec(ctx, sqlinline.QInsertCaptionRun,
		run.ID,
		run.Tone.String(),
		string(run.State),
		run.Caption,
		run.Error,
		run.LatencyMS,
		run.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("run_id", run.ID).Msg("repo: failed to record run")
	}
}

// ListRecent returns the most recently recorded runs, newest first.
func (r *RunRepositoryPG) ListRecent(ctx context.Context, limit int) ([]domain.Run, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	rows, err := r.sql.Query(ctx, sqlinline.QSelectRecentRuns, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []domain.Run
	for rows.Next() {
		var run domain.Run
		var tone, state string
		if err := rows.Scan(&run.ID, &tone, &state, &run.Caption, &run.Error, &run.LatencyMS, &run.CreatedAt); err != nil {
			return nil, err
		}
		run.Tone = domain.Tone(tone)
		run.State = domain.RunState(state)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

var _ pipeline.Recorder = (*RunRepositoryPG)(nil)
