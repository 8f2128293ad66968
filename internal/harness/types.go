package harness

// Paths a case is run through.
const (
	PathResolver   = "resolver"
	PathTrajectory = "trajectory"
	PathJump       = "jump"
)

// TraceEvent records what one path produced for one case.
type TraceEvent struct {
	Case string `json:"case"`
	Path string `json:"path"`

	// Outputs maps the short kind name to the formatted value.
	Outputs map[string]string `json:"outputs,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if every path of every case matched its expectation.
	Pass bool `json:"pass"`

	// Trace contains one event per case and path, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event to the trace.
func (r *Result) AddTrace(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}
