package ask

import (
	"math/rand/v2"
	"sync"
	"time"
)

const (
	// FrameInterval is how often the loader re-arms itself while loading.
	FrameInterval = 50 * time.Millisecond
	// PhraseInterval is how often the displayed phrase rotates.
	PhraseInterval = 2 * time.Second
	// TotalDuration is the time over which the bar climbs from 0 to 100.
	TotalDuration = 20 * time.Second
	// CompletionDelay keeps the loading flag up briefly after completion so
	// the exit animation can play.
	CompletionDelay = 200 * time.Millisecond
)

// ProgressFunc receives loading progress updates for display.
type ProgressFunc func(progress int, phraseIndex int)

// Loader drives the progress bar and rotating phrases shown while a
// generation request is pending. Progress is purely time based and decoupled
// from the actual request completion.
type Loader struct {
	mu          sync.Mutex
	loading     bool
	startedAt   time.Time
	lastRotate  time.Time
	phraseIndex int
	progress    int

	report ProgressFunc
	onStop func()
	frame  time.Duration
	rotate time.Duration
	total  time.Duration
	delay  time.Duration
}

func NewLoader(report ProgressFunc, onStop func()) *Loader {
	return &Loader{
		report: report,
		onStop: onStop,
		frame:  FrameInterval,
		rotate: PhraseInterval,
		total:  TotalDuration,
		delay:  CompletionDelay,
	}
}

// Start resets the loader and arms the first frame.
func (slf *Loader) Start() {
	slf.mu.Lock()
	slf.loading = true
	slf.startedAt = time.Now()
	slf.lastRotate = slf.startedAt
	slf.phraseIndex = rand.IntN(len(Phrases))
	slf.progress = 0
	idx := slf.phraseIndex
	slf.mu.Unlock()

	if slf.report != nil {
		slf.report(0, idx)
	}
	time.AfterFunc(slf.frame, slf.step)
}

func (slf *Loader) step() {
	slf.mu.Lock()
	// The loading flag is checked before anything else so a completion that
	// landed between frames stops the loop without a spurious update.
	if !slf.loading {
		slf.mu.Unlock()
		return
	}

	elapsed := time.Since(slf.startedAt)
	rotationDue := time.Since(slf.lastRotate) >= slf.rotate
	if rotationDue {
		slf.phraseIndex = rand.IntN(len(Phrases))
		slf.lastRotate = time.Now()
	}
	p := int(elapsed * 100 / slf.total)
	if p > 100 {
		p = 100
	}
	// progress is monotonic; a completion may already have pushed it to 100
	if p > slf.progress {
		slf.progress = p
	}

	progress, idx := slf.progress, slf.phraseIndex
	// Re-arm while still loading and either the bar has room to grow or a
	// rotation fired on this frame. The loop may outlive 100% by one rotation.
	rearm := slf.loading && (progress < 100 || rotationDue)
	slf.mu.Unlock()

	if slf.report != nil {
		slf.report(progress, idx)
	}
	if rearm {
		time.AfterFunc(slf.frame, slf.step)
	}
}

// Complete pushes the bar to 100 and, after a short delay, clears the loading
// flag and fires onStop. Both success and failure paths go through here.
func (slf *Loader) Complete() {
	slf.mu.Lock()
	slf.progress = 100
	idx := slf.phraseIndex
	slf.mu.Unlock()

	if slf.report != nil {
		slf.report(100, idx)
	}

	time.AfterFunc(slf.delay, func() {
		slf.mu.Lock()
		slf.loading = false
		slf.mu.Unlock()
		if slf.onStop != nil {
			slf.onStop()
		}
	})
}

// Loading reports whether a generation is currently in flight.
func (slf *Loader) Loading() bool {
	slf.mu.Lock()
	defer slf.mu.Unlock()
	return slf.loading
}

// State returns the current progress and phrase index.
func (slf *Loader) State() (progress int, phraseIndex int) {
	slf.mu.Lock()
	defer slf.mu.Unlock()
	return slf.progress, slf.phraseIndex
}
