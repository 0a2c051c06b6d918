package matching

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"pplmatch/internal/faults"
	"pplmatch/internal/legislature"
	"pplmatch/internal/logging"
	"pplmatch/internal/similarity"
	"pplmatch/internal/speaker"
)

// Engine resolves batches of utterances against legislator records.
// It holds no per-run state and may serve concurrent Match calls.
type Engine struct {
	index      *legislature.Index
	scorer     similarity.Scorer
	normalizer *speaker.Normalizer
	opts       Options
	logger     *slog.Logger
}

// row is the Phase 1 state of one utterance.
type row struct {
	inScope bool
	session SessionKey
	norm    speaker.Normalized
}

// resolvable reports whether the row goes through Phase 3.
func (r *row) resolvable() bool {
	return r.inScope && r.norm.Category == speaker.CategoryPerson && r.norm.Name != ""
}

// NewEngine validates its collaborators and options. A missing period index
// is a configuration error; a missing or broken scorer is
// faults.ErrSimilarityUnavailable.
func NewEngine(index *legislature.Index, scorer similarity.Scorer, logger *slog.Logger, opts Options) (*Engine, error) {
	if index == nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "matching", "new engine", "no legislature period index", nil)
	}
	if err := similarity.Probe(scorer); err != nil {
		return nil, err
	}
	opts = opts.Normalized()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		index:      index,
		scorer:     scorer,
		normalizer: speaker.NewNormalizer(opts.Lexicon),
		opts:       opts,
		logger:     logging.NewComponentLogger(logger, "matching"),
	}, nil
}

// Options returns the normalized options the engine runs with.
func (e *Engine) Options() Options {
	out := e.opts
	out.Lexicon = e.opts.Lexicon.Clone()
	out.Legislatures = append([]int(nil), e.opts.Legislatures...)
	return out
}

// Normalizer returns the speaker normalizer built from the engine's lexicon.
func (e *Engine) Normalizer() *speaker.Normalizer {
	return e.normalizer
}

// Match resolves every utterance. The result slice has the same length and
// order as utterances. Only context cancellation produces an error; bad
// dates and unknown speakers are per-row outcomes.
func (e *Engine) Match(ctx context.Context, utterances []Utterance, legislators []Legislator) ([]Result, Summary, error) {
	started := time.Now()
	results := make([]Result, len(utterances))
	rows := make([]row, len(utterances))

	pools := buildPools(legislators, e.opts.InScope)

	if err := parallel(ctx, e.opts.Workers, len(utterances), func(i int) {
		rows[i], results[i] = e.classify(utterances[i])
	}); err != nil {
		return nil, Summary{}, err
	}

	anchors := buildAnchors(rows, pools)

	sessions, pending := groupSessions(rows)
	progress := e.newProgress(pending)
	memo := newFuzzyMemo()
	if err := parallel(ctx, e.opts.Workers, len(sessions), func(s int) {
		members := sessions[s]
		for _, i := range members {
			r := &rows[i]
			p := pools[r.session.Legislature]
			apply(&results[i], p, e.resolve(p, r, anchors, memo))
		}
		progress.advance(len(members))
	}); err != nil {
		return nil, Summary{}, err
	}

	summary := Summarize(results)
	level := slog.LevelDebug
	if e.opts.Verbose {
		level = slog.LevelInfo
	}
	e.logger.Log(ctx, level, "matching complete",
		logging.Args(
			logging.Rows(summary.Total),
			logging.Int("matched", summary.Matched()),
			logging.Int("deterministic", summary.Deterministic),
			logging.Int("fuzzy", summary.Fuzzy),
			logging.Int("contextual", summary.Contextual),
			logging.Int("ambiguous", summary.Ambiguous),
			logging.Int("roles", summary.Roles),
			logging.Int("crowds", summary.Crowds),
			logging.Int("empty", summary.Empty),
			logging.Int("unmatched", summary.Unmatched),
			logging.Int("legislatures", len(pools)),
			logging.Int("anchored_sessions", anchors.Sessions()),
			logging.Duration("elapsed", time.Since(started)),
		)...,
	)
	return results, summary, nil
}

// classify is Phase 1 for one utterance.
func (e *Engine) classify(u Utterance) (row, Result) {
	norm := e.normalizer.Normalize(u.Speaker)
	res := Result{
		SpeakerCategory:   string(norm.Category),
		SpeakerNormalized: norm.Name,
		Level:             LevelUnmatched,
	}
	var r row
	r.norm = norm

	leg, ok := e.index.Resolve(u.EventDate)
	if !ok || !e.opts.InScope(leg) {
		return r, res
	}
	r.inScope = true
	r.session = SessionKey{Legislature: leg, Date: legislature.CanonicalDate(u.EventDate)}
	res.Legislature = &leg

	switch norm.Category {
	case speaker.CategoryRole:
		res.Level = LevelRole
	case speaker.CategoryCrowd:
		res.Level = LevelCrowd
	case speaker.CategoryEmpty:
		res.Level = LevelEmpty
	}
	return r, res
}

// groupSessions returns the resolvable row indices grouped by session in
// first-appearance order, and the total number of such rows.
func groupSessions(rows []row) ([][]int, int) {
	order := make(map[SessionKey]int)
	var sessions [][]int
	total := 0
	for i := range rows {
		if !rows[i].resolvable() {
			continue
		}
		key := rows[i].session
		pos, ok := order[key]
		if !ok {
			pos = len(sessions)
			order[key] = pos
			sessions = append(sessions, nil)
		}
		sessions[pos] = append(sessions[pos], i)
		total++
	}
	return sessions, total
}

// parallel calls fn for every index in [0, n) on at most workers goroutines.
// It stops handing out work once ctx is done.
func parallel(ctx context.Context, workers, n int, fn func(i int)) error {
	if n == 0 {
		return ctx.Err()
	}
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				fn(i)
			}
		}()
	}
	var err error
feed:
	for i := 0; i < n; i++ {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()
	return err
}

// progress logs sampled Phase 3 progress when the engine is verbose.
type progress struct {
	mu      sync.Mutex
	logger  *slog.Logger
	sampler *logging.ProgressSampler
	total   int
	done    int
}

func (e *Engine) newProgress(total int) *progress {
	if !e.opts.Verbose || total == 0 {
		return nil
	}
	return &progress{
		logger:  e.logger,
		sampler: logging.NewProgressSampler(10),
		total:   total,
	}
}

func (p *progress) advance(n int) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done += n
	if percent, ok := p.sampler.Observe(p.done, p.total); ok {
		p.logger.Info("matching progress",
			logging.Int("rows_done", p.done),
			logging.Int("rows_total", p.total),
			logging.Float64("percent", percent),
		)
	}
}
