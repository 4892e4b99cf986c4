package ask

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type progressLog struct {
	mu       sync.Mutex
	progress []int
	phrases  []int
	stopped  bool
}

func (l *progressLog) report(progress int, phraseIndex int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.progress = append(l.progress, progress)
	l.phrases = append(l.phrases, phraseIndex)
}

func (l *progressLog) onStop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopped = true
}

func (l *progressLog) snapshot() ([]int, []int, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]int(nil), l.progress...), append([]int(nil), l.phrases...), l.stopped
}

func testLoader(log *progressLog) *Loader {
	return &Loader{
		report: log.report,
		onStop: log.onStop,
		frame:  2 * time.Millisecond,
		rotate: 10 * time.Millisecond,
		total:  40 * time.Millisecond,
		delay:  5 * time.Millisecond,
	}
}

func TestLoader_ProgressIsMonotonicAndCapped(t *testing.T) {
	log := &progressLog{}
	loader := testLoader(log)

	loader.Start()
	time.Sleep(100 * time.Millisecond)

	progress, _, _ := log.snapshot()
	require.NotEmpty(t, progress)
	assert.Equal(t, 0, progress[0])

	last := -1
	for _, p := range progress {
		assert.GreaterOrEqual(t, p, last)
		assert.LessOrEqual(t, p, 100)
		last = p
	}
	assert.Equal(t, 100, last)
}

func TestLoader_PhrasesRotate(t *testing.T) {
	log := &progressLog{}
	loader := testLoader(log)

	loader.Start()
	time.Sleep(50 * time.Millisecond)

	_, phrases, _ := log.snapshot()
	require.NotEmpty(t, phrases)
	for _, idx := range phrases {
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, len(Phrases))
	}
}

func TestLoader_CompleteTearsDown(t *testing.T) {
	log := &progressLog{}
	loader := testLoader(log)

	loader.Start()
	time.Sleep(5 * time.Millisecond)
	assert.True(t, loader.Loading())

	loader.Complete()

	progress, _ := func() (int, int) { p, i := loader.State(); return p, i }()
	assert.Equal(t, 100, progress)

	// the flag only drops after the completion delay
	assert.Eventually(t, func() bool { return !loader.Loading() }, 200*time.Millisecond, 2*time.Millisecond)
	_, _, stopped := log.snapshot()
	assert.True(t, stopped)
}

func TestLoader_StopsWithoutSpuriousFrames(t *testing.T) {
	log := &progressLog{}
	loader := testLoader(log)

	loader.Start()
	loader.Complete()
	assert.Eventually(t, func() bool { return !loader.Loading() }, 200*time.Millisecond, 2*time.Millisecond)

	progress, _, _ := log.snapshot()
	count := len(progress)

	// the loop must not re-arm once the flag is down
	time.Sleep(30 * time.Millisecond)
	progress, _, _ = log.snapshot()
	assert.Equal(t, count, len(progress))
}
