package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/talent-query/internal/types"
)

// ClassifyQuery asks the lite-tier model to categorize a query into one of the
// nine known query types, for queries the keyword rules cannot place confidently.
// The model answers in JSON mode; the first balanced object in the response is
// parsed, so surrounding prose from a chatty model does not break the call.
func ClassifyQuery(ctx context.Context, c Client, query string) (types.QueryType, error) {
	text, err := c.GenerateJSON(ctx, buildClassifyPrompt(query), TierLite)
	if err != nil {
		return "", fmt.Errorf("classification call failed: %w", err)
	}

	obj := ExtractJSONObject(text)
	if obj == "" {
		return "", fmt.Errorf("no JSON object in classification response")
	}

	var parsed struct {
		QueryType string `json:"query_type"`
	}
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		return "", fmt.Errorf("failed to parse classification response: %w", err)
	}

	qt := types.QueryType(parsed.QueryType)
	if !qt.Valid() {
		return "", fmt.Errorf("model returned unknown query type %q", parsed.QueryType)
	}
	return qt, nil
}

func buildClassifyPrompt(query string) string {
	var sb strings.Builder
	sb.WriteString("Categorize this recruiter question about a pool of candidate CVs.\n")
	sb.WriteString("Respond with a JSON object of the form {\"query_type\": \"<type>\"} where <type> is one of:\n")
	for _, qt := range types.KnownQueryTypes {
		sb.WriteString("- ")
		sb.WriteString(string(qt))
		sb.WriteString("\n")
	}
	sb.WriteString("\nQuestion: ")
	sb.WriteString(query)
	sb.WriteString("\n")
	return sb.String()
}
