package vowel

// DefaultWindow is the number of frames a Classifier votes over.
const DefaultWindow = 5

type config struct {
	window int
}

// Option configures a Classifier.
type Option func(*config)

// WithWindow sets the history length. Values below 1 are clamped to 1.
func WithWindow(n int) Option {
	return func(c *config) {
		c.window = max(1, n)
	}
}

// Classifier smooths frame classifications over a ring buffer of the most
// recent results.
type Classifier struct {
	history []Result
	next    int
	count   int
}

// NewClassifier returns an empty classifier.
func NewClassifier(opts ...Option) *Classifier {
	cfg := config{window: DefaultWindow}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Classifier{history: make([]Result, cfg.window)}
}

// Update classifies one magnitude spectrum and returns the smoothed result.
func (c *Classifier) Update(mag []float64, sampleRate float64) Result {
	return c.Push(Analyze(mag, sampleRate))
}

// Push records r and returns the majority vowel over the history, ties going
// to the most recent, with the mean confidence. F1 and F2 are r's.
func (c *Classifier) Push(r Result) Result {
	if r.Vowel < 0 || r.Vowel >= numVowels {
		r.Vowel = None
	}
	c.history[c.next] = r
	c.next = (c.next + 1) % len(c.history)
	c.count = min(c.count+1, len(c.history))

	var votes [numVowels]int
	var conf float64
	best, bestVotes := None, 0
	// Newest first, so the first vowel to reach a count wins a tie.
	for i := range c.count {
		h := c.history[(c.next-1-i+2*len(c.history))%len(c.history)]
		conf += h.Confidence
		votes[h.Vowel]++
	}
	for i := range c.count {
		h := c.history[(c.next-1-i+2*len(c.history))%len(c.history)]
		if votes[h.Vowel] > bestVotes {
			best, bestVotes = h.Vowel, votes[h.Vowel]
		}
	}

	return Result{
		Vowel:      best,
		Confidence: conf / float64(c.count),
		F1:         r.F1,
		F2:         r.F2,
	}
}

// Clear empties the history.
func (c *Classifier) Clear() {
	clear(c.history)
	c.next = 0
	c.count = 0
}

// Len returns the number of results currently held.
func (c *Classifier) Len() int { return c.count }

// Window returns the history capacity.
func (c *Classifier) Window() int { return len(c.history) }
