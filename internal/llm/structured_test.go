package llm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPayload struct {
	Title string   `json:"title"`
	Ideas []string `json:"ideas"`
}

func TestExtractJSON_CleanJSON(t *testing.T) {
	raw := `{"title":"Work & Projects","ideas":["finish the report"]}`
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "Work & Projects", result.Title)
	assert.Equal(t, []string{"finish the report"}, result.Ideas)
}

func TestExtractJSON_FencedJSON(t *testing.T) {
	raw := "```json\n{\"title\":\"Creative Seeds\",\"ideas\":[\"build a shed\"]}\n```"
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "Creative Seeds", result.Title)
}

func TestExtractJSON_SurroundingText(t *testing.T) {
	raw := "Here are your clusters:\n{\"title\":\"People\",\"ideas\":[\"call mom\"]}\nTake care!"
	result, err := ExtractJSON[testPayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "People", result.Title)
}

func TestExtractJSON_NestedBraces(t *testing.T) {
	type nested struct {
		Clusters []testPayload `json:"clusters"`
	}
	raw := `{"clusters":[{"title":"A","ideas":["x"]},{"title":"B","ideas":["y"]}]}`
	result, err := ExtractJSON[nested](raw, nil)
	require.NoError(t, err)
	require.Len(t, result.Clusters, 2)
	assert.Equal(t, "B", result.Clusters[1].Title)
}

func TestExtractJSON_GreedySpanAcrossTwoObjectsFails(t *testing.T) {
	// First '{' to last '}' covers both objects, which is not valid JSON.
	raw := `{"title":"A","ideas":["x"]} and also {"title":"B","ideas":["y"]}`
	_, err := ExtractJSON[testPayload](raw, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_NoJSON(t *testing.T) {
	raw := "I could not organize these thoughts."
	_, err := ExtractJSON[testPayload](raw, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_ClosingBeforeOpening(t *testing.T) {
	_, err := ExtractJSON[testPayload]("} nothing here {", nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_InvalidJSON(t *testing.T) {
	raw := `{"title":"A", broken}`
	_, err := ExtractJSON[testPayload](raw, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_WrongShape(t *testing.T) {
	raw := `{"title":"A","ideas":"not a list"}`
	_, err := ExtractJSON[testPayload](raw, nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_ValidationFailure(t *testing.T) {
	raw := `{"title":"","ideas":["x"]}`
	validator := func(p testPayload) error {
		if p.Title == "" {
			return fmt.Errorf("title is required")
		}
		return nil
	}
	_, err := ExtractJSON(raw, validator)
	assert.ErrorIs(t, err, ErrInvalidOutput)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Equal(t, FailureParse, Classify(err))
}

func TestExtractJSON_ValidationSuccess(t *testing.T) {
	raw := `{"title":"A","ideas":["x"]}`
	validator := func(p testPayload) error {
		if len(p.Ideas) == 0 {
			return fmt.Errorf("ideas are required")
		}
		return nil
	}
	result, err := ExtractJSON(raw, validator)
	require.NoError(t, err)
	assert.Equal(t, "A", result.Title)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, FailureTransport, Classify(ErrTimeout))
	assert.Equal(t, FailureTransport, Classify(ErrUnavailable))
	assert.Equal(t, FailureTransport, Classify(ErrNotConfigured))
	assert.Equal(t, FailureParse, Classify(fmt.Errorf("wrapped: %w", ErrInvalidOutput)))
	assert.Equal(t, FailureEmpty, Classify(ErrEmptyResult))
}
