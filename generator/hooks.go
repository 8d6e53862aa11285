package generator

import (
	"sort"
	"sync"

	"github.com/satishbabariya/quickform-go/schema"
)

// Phase names an extension point in the generation pipeline.
type Phase string

const (
	BeforeModel   Phase = "before-model"
	AfterModel    Phase = "after-model"
	BeforeProject Phase = "before-project"
	AfterProject  Phase = "after-project"
)

// HookContext is the view a hook receives at an extension point. A hook
// may append additional artifacts or extra context fields; it cannot
// remove or mutate artifacts already produced by the core pipeline.
type HookContext struct {
	// Schema is the full validated schema for the run.
	Schema *schema.Schema
	// Model is the model being generated; nil for project phases.
	Model *schema.Model

	produced []Artifact
	added    []Artifact
	extra    map[string]any
}

// Produced returns a copy of the artifacts generated so far in this scope.
func (c *HookContext) Produced() []Artifact {
	out := make([]Artifact, len(c.produced))
	copy(out, c.produced)
	return out
}

// AddArtifact appends an additional artifact to the run.
func (c *HookContext) AddArtifact(a Artifact) {
	c.added = append(c.added, a)
}

// Set records an extra context value exposed to templates under .Extra.
func (c *HookContext) Set(key string, value any) {
	if c.extra == nil {
		c.extra = make(map[string]any)
	}
	c.extra[key] = value
}

// HookFunc is a callback invoked synchronously at an extension point.
type HookFunc func(*HookContext) error

type registeredHook struct {
	priority int
	seq      int
	fn       HookFunc
}

// Registry holds hooks per phase as a prioritized chain: lower priority
// runs first, registration order breaks ties.
type Registry struct {
	mu      sync.Mutex
	seq     int
	entries map[Phase][]registeredHook
}

// NewRegistry creates an empty hook registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[Phase][]registeredHook)}
}

// Register adds a hook for the given phase.
func (r *Registry) Register(phase Phase, priority int, fn HookFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.entries[phase] = append(r.entries[phase], registeredHook{priority: priority, seq: r.seq, fn: fn})
}

// run invokes every hook registered for phase, in priority order. The
// first error aborts the remaining hooks of that phase.
func (r *Registry) run(phase Phase, hctx *HookContext) error {
	r.mu.Lock()
	hooks := make([]registeredHook, len(r.entries[phase]))
	copy(hooks, r.entries[phase])
	r.mu.Unlock()

	sort.SliceStable(hooks, func(i, j int) bool {
		if hooks[i].priority != hooks[j].priority {
			return hooks[i].priority < hooks[j].priority
		}
		return hooks[i].seq < hooks[j].seq
	})

	for _, h := range hooks {
		if err := h.fn(hctx); err != nil {
			model := ""
			if hctx.Model != nil {
				model = hctx.Model.Name
			}
			return &ExtensionError{Phase: phase, Model: model, Cause: err}
		}
	}
	return nil
}
