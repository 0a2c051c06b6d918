package logging

import "testing"

func TestNewProgressSamplerStep(t *testing.T) {
	tests := []struct {
		step float64
		want float64
	}{
		{0, 10},
		{-5, 10},
		{150, 10},
		{25, 25},
	}
	for _, tt := range tests {
		if got := NewProgressSampler(tt.step).step; got != tt.want {
			t.Errorf("NewProgressSampler(%v).step = %v, want %v", tt.step, got, tt.want)
		}
	}
}

func TestProgressSamplerObserve(t *testing.T) {
	s := NewProgressSampler(25)
	steps := []struct {
		done, total int
		want        bool
	}{
		{1, 100, true},
		{10, 100, false},
		{24, 100, false},
		{25, 100, true},
		{30, 100, false},
		{60, 100, true},
		{99, 100, true},
		{100, 100, true},
		{100, 100, false},
		{120, 100, false},
	}
	for _, st := range steps {
		if _, got := s.Observe(st.done, st.total); got != st.want {
			t.Fatalf("Observe(%d, %d) = %v, want %v", st.done, st.total, got, st.want)
		}
	}
}

func TestProgressSamplerPercent(t *testing.T) {
	s := NewProgressSampler(10)
	if percent, _ := s.Observe(3, 12); percent != 25 {
		t.Fatalf("percent = %v, want 25", percent)
	}
	if percent, ok := s.Observe(5, 0); ok || percent != 0 {
		t.Fatalf("empty total = (%v, %v), want (0, false)", percent, ok)
	}
}

func TestNilProgressSamplerReportsEverything(t *testing.T) {
	var s *ProgressSampler
	for done := 1; done <= 3; done++ {
		if _, ok := s.Observe(done, 3); !ok {
			t.Fatalf("nil sampler suppressed %d/3", done)
		}
	}
}
