package ballot

import (
	"sync"
	"time"

	"github.com/hard-gainer/buurtstemming/internal/model"
)

// Engine owns the voter roll and the tally of the current session
type Engine struct {
	mu    sync.Mutex
	roll  model.VoterRoll
	tally model.Tally
	now   func() time.Time

	// called under mu after every recorded vote, in recording order
	onRecorded func(vote model.Vote, tally model.Tally)
}

// NewEngine creates an engine with an empty tally
func NewEngine(roll model.VoterRoll) *Engine {
	return &Engine{
		roll: roll,
		now:  time.Now,
	}
}

// SetClock replaces the time source used to stamp votes and summaries
func (e *Engine) SetClock(now func() time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.now = now
}

// OnRecorded registers fn to run after each accepted vote while the engine
// lock is held. fn must not call back into the engine.
func (e *Engine) OnRecorded(fn func(vote model.Vote, tally model.Tally)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onRecorded = fn
}

// Roll returns the voter roll
func (e *Engine) Roll() model.VoterRoll {
	return e.roll
}

// Tally returns the current tally
func (e *Engine) Tally() model.Tally {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tally
}

// Cast validates and records a vote. On rejection the tally is unchanged.
func (e *Engine) Cast(houseNumber string, option model.Option) (model.Vote, model.Tally, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	accepted, err := Validate(e.roll, houseNumber, option, e.tally)
	if err != nil {
		return model.Vote{}, e.tally, err
	}

	vote := accepted.Vote(e.now())
	e.tally = RecordVote(e.tally, vote)
	if e.onRecorded != nil {
		e.onRecorded(vote, e.tally)
	}

	return vote, e.tally, nil
}

// View runs fn with the current tally while no vote can be recorded
func (e *Engine) View(fn func(tally model.Tally)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.tally)
}

// Summary renders the report for the current tally
func (e *Engine) Summary() string {
	e.mu.Lock()
	tally, now := e.tally, e.now()
	e.mu.Unlock()

	return Summarize(tally, e.roll, now)
}
