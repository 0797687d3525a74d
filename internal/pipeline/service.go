package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Surojit012/DobbyCaption/internal/domain"
	"github.com/Surojit012/DobbyCaption/internal/imageenc"
)

// Describer is the image-understanding stage.
type Describer interface {
	Describe(ctx context.Context, img imageenc.EncodedImage) (string, error)
}

// Captioner is the caption-generation stage.
type Captioner interface {
	Caption(ctx context.Context, description string, tone domain.Tone) (string, error)
}

// Recorder persists finished runs. Recording is fire-and-forget; it never
// fails a run.
type Recorder interface {
	Record(ctx context.Context, run domain.Run)
}

// NoopRecorder drops run records. Used when no database is configured.
type NoopRecorder struct{}

func (NoopRecorder) Record(context.Context, domain.Run) {}

// Snapshot is the presentation-layer view of the shared result slot.
type Snapshot struct {
	RunID   string          `json:"run_id,omitempty"`
	State   domain.RunState `json:"state"`
	Loading bool            `json:"loading"`
	Caption string          `json:"caption,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Options wires the pipeline stages and their collaborators.
type Options struct {
	Describer Describer
	Captioner Captioner
	Recorder  Recorder
	Logger    zerolog.Logger
}

// Service sequences encoder, description and caption stages for one image and
// tone, and owns the single shared result slot. Each run is bound to a
// monotonically increasing token; only the newest run's terminal state is
// committed to the slot, so a stale completion can never overwrite a newer
// one's result.
type Service struct {
	describer Describer
	captioner Captioner
	recorder  Recorder
	logger    zerolog.Logger

	mu     sync.Mutex
	seq    uint64
	newest uint64
	snap   Snapshot
}

func NewService(opts Options) *Service {
	recorder := opts.Recorder
	if recorder == nil {
		recorder = NoopRecorder{}
	}
	return &Service{
		describer: opts.Describer,
		captioner: opts.Captioner,
		recorder:  recorder,
		logger:    opts.Logger,
		snap:      Snapshot{State: domain.RunStateIdle},
	}
}

// Generate runs the full pipeline for one asset and tone. An empty asset is a
// no-op: the service stays in its current state and domain.ErrNoImage is
// returned. Any stage failure short-circuits the remaining stages; the run's
// user-facing error string is "Error: <underlying message>" and no partial
// result is exposed.
func (s *Service) Generate(ctx context.Context, asset domain.ImageAsset, tone domain.Tone) (domain.Run, error) {
	if asset.Empty() {
		return domain.Run{}, domain.ErrNoImage
	}

	token, runID := s.begin()
	start := time.Now()
	run := domain.Run{ID: runID, Tone: tone, CreatedAt: start}

	caption, err := s.execute(ctx, asset, tone, runID)
	run.LatencyMS = int(time.Since(start).Milliseconds())
	if err != nil {
		run.State = domain.RunStateFailed
		run.Error = "Error: " + err.Error()
		s.logger.Error().Err(err).Str("run_id", runID).Str("tone", tone.String()).Msg("pipeline: run failed")
	} else {
		run.State = domain.RunStateSucceeded
		run.Caption = caption
		s.logger.Info().Str("run_id", runID).Str("tone", tone.String()).Int("latency_ms", run.LatencyMS).Msg("pipeline: run succeeded")
	}

	s.commit(token, run)
	s.recorder.Record(ctx, run)
	return run, nil
}

func (s *Service) execute(ctx context.Context, asset domain.ImageAsset, tone domain.Tone, runID string) (string, error) {
	img, err := imageenc.EncodeAsset(asset)
	if err != nil {
		return "", err
	}
	description, err := s.describer.Describe(ctx, img)
	if err != nil {
		return "", err
	}
	s.logger.Debug().Str("run_id", runID).Msg("pipeline: description obtained")
	return s.captioner.Caption(ctx, description, tone)
}

// begin allocates the next run token, marks it newest and clears the previous
// result from the slot.
func (s *Service) begin() (uint64, string) {
	runID := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.newest = s.seq
	s.snap = Snapshot{RunID: runID, State: domain.RunStateRunning, Loading: true}
	return s.seq, runID
}

// commit writes the terminal state to the shared slot unless a newer run has
// started since; stale completions are dropped.
func (s *Service) commit(token uint64, run domain.Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.newest {
		s.logger.Debug().Str("run_id", run.ID).Msg("pipeline: stale run discarded")
		return
	}
	s.snap = Snapshot{
		RunID:   run.ID,
		State:   run.State,
		Loading: false,
		Caption: run.Caption,
		Error:   run.Error,
	}
}

// Snapshot returns a copy of the current visible state.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}
