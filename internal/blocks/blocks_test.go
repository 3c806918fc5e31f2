package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_WellFormedBlock(t *testing.T) {
	raw := "Intro line\n:::thinking\nstep one\nstep two\n:::\nOutro line"

	body, remainder := Extract(raw, KindThinking)

	assert.Equal(t, "step one\nstep two", body)
	assert.Equal(t, "Intro line\nOutro line", remainder)
}

func TestExtract_MissingClosingMarker(t *testing.T) {
	raw := "Answer text\n:::thinking\nreasoning that was cut off"

	body, remainder := Extract(raw, KindThinking)

	assert.Equal(t, "reasoning that was cut off", body)
	assert.Equal(t, "Answer text", remainder)
}

func TestExtract_NoBlockPresent(t *testing.T) {
	raw := "Just a plain answer with no markers."

	body, remainder := Extract(raw, KindThinking)

	assert.Equal(t, "", body)
	assert.Equal(t, raw, remainder)
}

func TestExtract_InlineConclusion(t *testing.T) {
	raw := "Body text\n:::conclusion Strong hire for the backend role."

	body, remainder := Extract(raw, KindConclusion)

	assert.Equal(t, "Strong hire for the backend role.", body)
	assert.Equal(t, "Body text", remainder)
}

func TestExtract_InlineFormIsConclusionOnly(t *testing.T) {
	body, remainder := Extract(":::thinking stray text\nreasoning\n:::", KindThinking)

	assert.Equal(t, "reasoning", body)
	assert.Equal(t, "", remainder)
}

func TestExtract_InlineIgnoredWhenClosingMarkerFollows(t *testing.T) {
	body, _ := Extract(":::conclusion stray\nThe verdict.\n:::", KindConclusion)

	assert.Equal(t, "The verdict.", body)
}

func TestExtract_AnotherOpenerTerminatesWithoutConsuming(t *testing.T) {
	raw := ":::thinking\nreasoning\n:::conclusion\nthe verdict\n:::"

	body, remainder := Extract(raw, KindThinking)

	assert.Equal(t, "reasoning", body)
	// The conclusion opener must survive for the next extraction pass.
	assert.Contains(t, remainder, ":::conclusion")

	conclusion, rest := Extract(remainder, KindConclusion)
	assert.Equal(t, "the verdict", conclusion)
	assert.Equal(t, "", rest)
}

func TestExtract_LongerKindNotMatched(t *testing.T) {
	raw := ":::conclusions\nnot a conclusion block\n:::"

	body, _ := Extract(raw, KindConclusion)

	assert.Equal(t, "", body)
}

func TestExtract_EmptyInput(t *testing.T) {
	body, remainder := Extract("", KindThinking)

	assert.Equal(t, "", body)
	assert.Equal(t, "", remainder)
}

func TestExtract_MarkerMidLineIgnored(t *testing.T) {
	raw := "The marker :::thinking only counts at line start."

	body, remainder := Extract(raw, KindThinking)

	assert.Equal(t, "", body)
	assert.Equal(t, raw, remainder)
}

func TestExtractAll_ThinkingAndConclusion(t *testing.T) {
	raw := ":::thinking\nweighing the options\n:::\nMain answer body.\n:::conclusion\nGo with Anna.\n:::"

	thinking, conclusion, remainder := ExtractAll(raw)

	assert.Equal(t, "weighing the options", thinking)
	assert.Equal(t, "Go with Anna.", conclusion)
	assert.Equal(t, "Main answer body.", remainder)
}

func TestExtractAll_OnlyFreeText(t *testing.T) {
	raw := "No blocks at all, just prose."

	thinking, conclusion, remainder := ExtractAll(raw)

	assert.Equal(t, "", thinking)
	assert.Equal(t, "", conclusion)
	assert.Equal(t, raw, remainder)
}
