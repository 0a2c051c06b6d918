package logging

// ProgressSampler thins row progress down to one event per percentage step.
// It is not safe for concurrent use.
type ProgressSampler struct {
	step     float64
	lastStep int
	finished bool
}

// NewProgressSampler reports progress every step percent; step <= 0 means 10.
func NewProgressSampler(step float64) *ProgressSampler {
	if step <= 0 || step > 100 {
		step = 10
	}
	return &ProgressSampler{step: step, lastStep: -1}
}

// Observe records done of total rows and returns the completion percentage
// with whether it opened a new step. Completion is reported exactly once.
// A nil sampler reports every call.
func (s *ProgressSampler) Observe(done, total int) (float64, bool) {
	if total <= 0 {
		return 0, false
	}
	if done > total {
		done = total
	}
	percent := float64(done) / float64(total) * 100
	if s == nil {
		return percent, true
	}
	if done == total {
		if s.finished {
			return percent, false
		}
		s.finished = true
		s.lastStep = int(100 / s.step)
		return percent, true
	}
	current := int(percent / s.step)
	if current <= s.lastStep {
		return percent, false
	}
	s.lastStep = current
	return percent, true
}
