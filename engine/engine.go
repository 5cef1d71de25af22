// SPDX-License-Identifier: EPL-2.0

package engine

// Default inference settings.
const (
	DefaultLanguage = "en"
	DefaultThreads  = 4
)

// Options is passed to every inference run.
type Options struct {
	// Language is an ISO 639-1 code, or "auto" where the engine supports it.
	Language string
	// Threads is a hint for local engines; remote ones ignore it.
	Threads int
	// Timestamps prefixes each segment with its time range.
	Timestamps bool
	// Translate asks for an English translation instead of a transcript.
	Translate bool
	// SampleRate of the samples handed to Run.
	SampleRate int
}

// DefaultOptions returns English, four threads, no timestamps and no
// translation.
func DefaultOptions() Options {
	return Options{
		Language: DefaultLanguage,
		Threads:  DefaultThreads,
	}
}

// Loader creates an inference context for a model. What model means is up
// to the backend: a file path for local engines, a model name for remote
// ones.
type Loader interface {
	Load(model string) (Context, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(model string) (Context, error)

func (f LoaderFunc) Load(model string) (Context, error) { return f(model) }

// Context is one loaded model. It is not safe for concurrent use; callers
// serialize Run and the segment accessors.
type Context interface {
	// Run performs inference over a mono signal and replaces the segments
	// of the previous run.
	Run(samples []float32, opts Options) error
	// SegmentCount is the number of segments produced by the last Run.
	SegmentCount() int
	// SegmentText returns segment i, 0 <= i < SegmentCount().
	SegmentText(i int) string
	// Close releases the model. Further calls are undefined.
	Close() error
}
