package job

import "sync"

// Status is the lifecycle state of the current job.
type Status string

const (
	StatusReady      Status = "ready"
	StatusProcessing Status = "processing"
	StatusComplete   Status = "complete"
	StatusError      Status = "error"
)

// Stage checkpoints. Progress is not continuous; it only ever takes one of
// these values.
const (
	ProgressIdle         = 0
	ProgressAccepted     = 20
	ProgressExtracting   = 30
	ProgressTranscribing = 60
	ProgressSummarizing  = 80
	ProgressComplete     = 100
)

// State is the single shared record describing the current pipeline run.
type State struct {
	Status     Status `json:"status"`
	Progress   int    `json:"progress"`
	Message    string `json:"message"`
	Transcript string `json:"transcript"`
	Summary    string `json:"summary"`
}

// Tracker guards the one live job slot. Readers always get a whole-record
// snapshot; a concurrent poll never observes a half-written update.
type Tracker struct {
	mu    sync.RWMutex
	state State
}

// NewTracker creates a tracker in the ready state.
func NewTracker() *Tracker {
	return &Tracker{
		state: State{
			Status:   StatusReady,
			Progress: ProgressIdle,
			Message:  "Ready",
		},
	}
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// begin claims the job slot for a new run. It fails when a job is already
// processing; any terminal or ready state is overwritten with a fresh record.
func (t *Tracker) begin() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Status == StatusProcessing {
		return false
	}

	t.state = State{
		Status:   StatusProcessing,
		Progress: ProgressAccepted,
		Message:  "Processing started...",
	}
	return true
}

// stage records entry into the next pipeline phase.
func (t *Tracker) stage(progress int, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Status = StatusProcessing
	t.state.Progress = progress
	t.state.Message = message
}

// setTranscript stores the transcription result. Written exactly once per run.
func (t *Tracker) setTranscript(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Transcript = text
}

// setSummary stores the summarization result.
func (t *Tracker) setSummary(text string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Summary = text
}

// complete marks the run as finished. Progress 100 holds exactly here.
func (t *Tracker) complete() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Status = StatusComplete
	t.state.Progress = ProgressComplete
	t.state.Message = "Processing complete!"
}

// fail terminates the run with the given reason. Progress drops back to 0
// and the record stays frozen until the next accepted submission.
func (t *Tracker) fail(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Status = StatusError
	t.state.Progress = ProgressIdle
	t.state.Message = message
}
