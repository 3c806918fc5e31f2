// Package structures defines the nine fixed extraction pipelines, one per query
// type, plus the generic passthrough used for unrecognized types.
//
// A Structure is a named, ordered list of Modules and is built once at package
// init; Modules are stateless and safely shared across concurrent requests.
// Partial failure of any module never aborts a pipeline: the module's documented
// default stands, a diagnostic flag is recorded, and downstream modules still run.
package structures

import (
	"github.com/jonathan/talent-query/internal/extract"
	"github.com/jonathan/talent-query/internal/types"
)

// Input is the per-request context threaded through every module. Raw shrinks as
// block modules consume their spans. History is read-only context; modules may
// consult it but none currently changes behavior based on it (reference resolution
// is a documented future extension).
type Input struct {
	Raw     string
	Chunks  []types.Chunk
	Query   types.Query
	History []types.ConversationTurn

	// Cross-module scratch produced by earlier pipeline stages.
	Requirements  []extract.Requirement
	Roles         []extract.TeamRole
	Contradicting []types.EvidenceItem
}

// Module is a stateless extract/format pair. Run extracts its piece of data into
// out and returns the formatted text section for the flattened rendering; ok=false
// means the module degraded to its default.
type Module struct {
	Name string
	Run  func(in *Input, out *types.StructuredOutput) (section string, ok bool)
}

// Structure is one fixed pipeline producing one variant of StructuredOutput.
type Structure struct {
	Type    types.StructureType
	Modules []Module
	// Init pre-populates the variant payload so every sub-field has its explicit
	// empty default even when all modules degrade.
	Init func(in *Input, out *types.StructuredOutput)
	// Finalize ties together fields the pipeline produced (variant bookkeeping
	// like copying the conclusion into the variant payload).
	Finalize func(in *Input, out *types.StructuredOutput)
}

// Assemble runs the pipeline over the input. It never fails: module panics are
// recovered into diagnostics and the module's default stands. The returned
// sections are the non-empty formatted texts in pipeline order; diags lists every
// module that degraded.
func (s Structure) Assemble(in Input) (out *types.StructuredOutput, sections []string, diags []string) {
	out = types.NewStructuredOutput(s.Type)
	if s.Init != nil {
		s.Init(&in, out)
	}

	for _, m := range s.Modules {
		section, ok := runModule(m, &in, out)
		if !ok {
			diags = append(diags, m.Name)
		}
		if section != "" {
			sections = append(sections, section)
		}
	}

	if s.Finalize != nil {
		s.Finalize(&in, out)
	}
	return out, sections, diags
}

// runModule executes one module, absorbing panics into a degraded default.
func runModule(m Module, in *Input, out *types.StructuredOutput) (section string, ok bool) {
	defer func() {
		if recover() != nil {
			section, ok = "", false
		}
	}()
	return m.Run(in, out)
}
