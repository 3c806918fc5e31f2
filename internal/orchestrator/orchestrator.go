// Package orchestrator is the top-level entry point of the extraction core: it
// routes a classified request to its Structure, assembles the tagged-union result
// and renders the flattened text fallback.
//
// Processing never fails from the caller's point of view. Every per-module failure
// is absorbed into a default plus a diagnostic flag, and the request state always
// reaches COMPLETE with a valid, possibly mostly-empty, StructuredOutput.
package orchestrator

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/talent-query/internal/classify"
	"github.com/jonathan/talent-query/internal/logger"
	"github.com/jonathan/talent-query/internal/render"
	"github.com/jonathan/talent-query/internal/structures"
	"github.com/jonathan/talent-query/internal/types"
)

// State tracks a request through the assembly lifecycle. There is no failed
// terminal state: assembly degrades, it does not abort.
type State string

// Request states.
const (
	StateReceived   State = "RECEIVED"
	StateClassified State = "CLASSIFIED"
	StateRouted     State = "ROUTED"
	StateAssembling State = "ASSEMBLING"
	StateComplete   State = "COMPLETE"
)

// Request carries everything the orchestrator needs for one call. QueryType and
// BoundEntity are normally produced by the classifier; leaving QueryType empty
// makes the orchestrator classify internally.
type Request struct {
	Raw         string
	Chunks      []types.Chunk
	QueryText   string
	QueryType   types.QueryType
	BoundEntity string
	History     []types.ConversationTurn
}

// Result is the orchestrator's complete answer.
type Result struct {
	RequestID     string
	QueryType     types.QueryType
	Output        *types.StructuredOutput
	FormattedText string
	// Diagnostics names the modules that degraded to their default, plus any
	// contract-validation notes. Internal only, never a user-visible error.
	Diagnostics []string
	State       State
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Process runs one request through classification (if needed), routing and
// assembly. It never returns an error and never panics.
func Process(req Request) Result {
	res := Result{RequestID: uuid.NewString(), State: StateReceived}

	qt := req.QueryType
	entity := req.BoundEntity
	if qt == "" {
		qt, entity = classify.Classify(req.QueryText, req.History, req.Chunks)
	}
	res.QueryType = qt
	res.State = StateClassified

	structure := structures.ForQueryType(qt)
	res.State = StateRouted

	query := types.Query{
		Text:        req.QueryText,
		Language:    classify.DetectLanguage(req.QueryText),
		BoundEntity: entity,
	}

	res.State = StateAssembling
	out, sections, diags := structure.Assemble(structures.Input{
		Raw:     req.Raw,
		Chunks:  req.Chunks,
		Query:   query,
		History: req.History,
	})
	res.Output = out
	res.Diagnostics = diags
	res.FormattedText = render.Flatten(sections)

	// Contract sanity check at the boundary; violations are diagnostics, never
	// surfaced as failures.
	if err := validate.Struct(out); err != nil {
		res.Diagnostics = append(res.Diagnostics, "contract: "+err.Error())
	}

	res.State = StateComplete
	logger.Debug().
		Str("request_id", res.RequestID).
		Str("query_type", string(res.QueryType)).
		Str("structure_type", string(out.StructureType)).
		Int("degraded_modules", len(diags)).
		Msg("request assembled")
	return res
}
