package profiler

import (
	"log"
	"runtime"
	"time"
)

// Sample carries the interaction counters reported alongside frame statistics.
type Sample struct {
	// Contexts is the number of interaction contexts ticked this frame.
	Contexts int
	// Visible and Hidden are the culled entity counts summed over all contexts.
	Visible int
	Hidden  int
	// Animating is the number of contexts with an active focus transition.
	Animating int
}

// Profiler tracks frame rate, memory and interaction statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	last Sample
	now  func() time.Time
}

// NewProfiler creates a new Profiler.
//
// Parameters:
//   - interval: logging interval (1 second when <= 0)
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(interval time.Duration) *Profiler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: interval,
		now:            time.Now,
	}
}

// Tick should be called once per frame with that frame's interaction sample.
// Logs FPS, heap usage, allocation rate, GC pauses and the latest sample when the
// update interval has elapsed.
//
// Parameters:
//   - s: this frame's sample
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(s Sample) bool {
	p.frameCount++
	p.last = s
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	fps := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 GC pauses
	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			pause := p.memStats.PauseNs[i%256] / 1000
			if pause > maxPauseUs {
				maxPauseUs = pause
			}
		}
	}

	log.Printf("[Profiler] FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB | Scenes: %d | Entities: %d visible, %d culled | Animating: %d",
		fps, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB, s.Contexts, s.Visible, s.Hidden, s.Animating)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the most recent sample passed to Tick.
//
// Returns:
//   - Sample: the sample
func (p *Profiler) Last() Sample {
	return p.last
}
