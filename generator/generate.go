package generator

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/satishbabariya/quickform-go/schema"
)

// Generator walks a validated schema and produces the complete ordered
// artifact set for one run. Per-model generation runs on a worker pool;
// the final artifact order is sorted by output path so repeated runs are
// directly diffable regardless of execution order.
type Generator struct {
	schema   *schema.Schema
	resolver *Resolver
	hooks    *Registry
	workers  int
}

// New creates a generator for a validated schema with built-in templates
// and no hooks.
func New(s *schema.Schema) *Generator {
	return &Generator{
		schema:   s,
		resolver: NewResolver(""),
		hooks:    NewRegistry(),
		workers:  runtime.GOMAXPROCS(0),
	}
}

// WithResolver sets the template resolver.
func (g *Generator) WithResolver(r *Resolver) *Generator {
	if r != nil {
		g.resolver = r
	}
	return g
}

// WithHooks sets the extension hook registry.
func (g *Generator) WithHooks(r *Registry) *Generator {
	if r != nil {
		g.hooks = r
	}
	return g
}

// WithWorkers sets the number of parallel per-model workers.
func (g *Generator) WithWorkers(n int) *Generator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// Result is the outcome of one generation run. Artifacts are sorted by
// path. A non-empty failure list means the run failed as a whole and
// nothing may be committed.
type Result struct {
	Artifacts []Artifact
	Failures  []Failure
}

// Err returns ErrGenerationFailed when any failure was recorded.
func (r *Result) Err() error {
	if len(r.Failures) > 0 {
		return ErrGenerationFailed
	}
	return nil
}

// modelOutput collects one model's artifacts and failures so the worker
// pool writes into disjoint slots.
type modelOutput struct {
	artifacts []Artifact
	failures  []Failure
}

// Run generates every artifact for the schema. Per-artifact failures are
// recorded and generation continues, so one bad template does not hide
// problems in the rest of the run.
func (g *Generator) Run(ctx context.Context) *Result {
	outputs := make([]modelOutput, len(g.schema.Models))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)

	for i := range g.schema.Models {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				outputs[i] = g.generateModel(&g.schema.Models[i])
				return nil
			}
		})
	}
	// The only error an errgroup goroutine returns is context
	// cancellation; render failures land in outputs.
	egErr := eg.Wait()

	result := &Result{}
	for _, out := range outputs {
		result.Artifacts = append(result.Artifacts, out.artifacts...)
		result.Failures = append(result.Failures, out.failures...)
	}
	if egErr != nil {
		result.Failures = append(result.Failures, Failure{Template: "run", Err: egErr})
		return result
	}

	g.generateProject(result)

	sort.Slice(result.Artifacts, func(i, j int) bool {
		return result.Artifacts[i].Path < result.Artifacts[j].Path
	})
	return result
}

func (g *Generator) generateModel(m *schema.Model) modelOutput {
	var out modelOutput

	hctx := &HookContext{Schema: g.schema, Model: m}
	if err := g.hooks.run(BeforeModel, hctx); err != nil {
		out.failures = append(out.failures, Failure{Template: string(BeforeModel), Model: m.Name, Err: err})
	}

	mctx := newModelContext(m, g.schema, hctx.extra)
	for _, spec := range ModelTemplates {
		if spec.Cond != nil && !spec.Cond(m, &g.schema.Config) {
			continue
		}
		artifact, err := g.renderOne(spec.ID, spec.Path(m), false, mctx)
		if err != nil {
			out.failures = append(out.failures, Failure{Template: spec.ID, Model: m.Name, Err: err})
			continue
		}
		out.artifacts = append(out.artifacts, artifact)
	}

	hctx.produced = out.artifacts
	if err := g.hooks.run(AfterModel, hctx); err != nil {
		out.failures = append(out.failures, Failure{Template: string(AfterModel), Model: m.Name, Err: err})
	}
	out.artifacts = append(out.artifacts, hctx.added...)
	return out
}

func (g *Generator) generateProject(result *Result) {
	hctx := &HookContext{Schema: g.schema, produced: result.Artifacts}
	if err := g.hooks.run(BeforeProject, hctx); err != nil {
		result.Failures = append(result.Failures, Failure{Template: string(BeforeProject), Err: err})
	}

	pctx := newProjectContext(g.schema, hctx.extra)
	for _, spec := range ProjectTemplates {
		if spec.Skip != nil && spec.Skip(g.schema) {
			continue
		}
		artifact, err := g.renderOne(spec.ID, spec.Path, spec.Mergeable, pctx)
		if err != nil {
			result.Failures = append(result.Failures, Failure{Template: spec.ID, Err: err})
			continue
		}
		result.Artifacts = append(result.Artifacts, artifact)
	}

	hctx.produced = result.Artifacts
	if err := g.hooks.run(AfterProject, hctx); err != nil {
		result.Failures = append(result.Failures, Failure{Template: string(AfterProject), Err: err})
	}
	result.Artifacts = append(result.Artifacts, hctx.added...)
}

func (g *Generator) renderOne(id, path string, mergeable bool, ctx any) (Artifact, error) {
	src, err := g.resolver.Resolve(id)
	if err != nil {
		return Artifact{}, err
	}
	rendered, err := Render(id, src, ctx)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{
		Path:      path,
		Content:   []byte(rendered),
		Template:  id,
		Mergeable: mergeable,
	}, nil
}
