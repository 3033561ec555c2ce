package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/mynameisDevendra/KURSnTbOT2/internal/models"
)

func respWith(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: "model", Parts: parts}}},
	}
}

func TestParseResponse_FunctionCall(t *testing.T) {
	resp := respWith(genai.FunctionCall{
		Name: models.ExtractionFunctionName,
		Args: map[string]any{
			"item":     "relays",
			"quantity": float64(5),
			"location": "Station X",
			"status":   "Issued",
		},
	})

	got, err := ParseResponse(resp)
	require.NoError(t, err)
	require.True(t, got.IsCall())
	assert.Equal(t, "relays", *got.Call.Item)
	assert.Equal(t, 5, *got.Call.Quantity)
	assert.Equal(t, "Station X", *got.Call.Location)
	assert.Equal(t, "Issued", *got.Call.Status)
	assert.Nil(t, got.Call.Category)
	assert.Nil(t, got.Call.Sentiment)
	assert.Empty(t, got.Text)
}

func TestParseResponse_CallWinsOverText(t *testing.T) {
	resp := respWith(
		genai.Text("Logging that for you."),
		genai.FunctionCall{Name: models.ExtractionFunctionName, Args: map[string]any{}},
	)

	got, err := ParseResponse(resp)
	require.NoError(t, err)
	assert.True(t, got.IsCall())
}

func TestParseResponse_Text(t *testing.T) {
	resp := respWith(genai.Text("High voltage usually means "), genai.Text("a broken rail. [SOURCE: DOUBT SOLVER]"))

	got, err := ParseResponse(resp)
	require.NoError(t, err)
	assert.False(t, got.IsCall())
	assert.Equal(t, "High voltage usually means a broken rail. [SOURCE: DOUBT SOLVER]", got.Text)
}

func TestParseResponse_Failures(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want error
	}{
		{name: "nil response", resp: nil, want: ErrEmptyResponse},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, want: ErrEmptyResponse},
		{
			name: "nil content",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}},
			want: ErrEmptyResponse,
		},
		{name: "no parts", resp: respWith(), want: ErrEmptyResponse},
		{name: "blank text", resp: respWith(genai.Text("  \n")), want: ErrEmptyResponse},
		{
			name: "unknown function",
			resp: respWith(genai.FunctionCall{Name: "delete_everything"}),
			want: ErrEmptyResponse,
		},
		{
			name: "safety stop",
			resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
				FinishReason: genai.FinishReasonSafety,
			}}},
			want: ErrBlocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseResponse(tt.resp)
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExtractionTool_Declaration(t *testing.T) {
	require.Len(t, ExtractionTool.FunctionDeclarations, 1)
	decl := ExtractionTool.FunctionDeclarations[0]
	assert.Equal(t, models.ExtractionFunctionName, decl.Name)
	assert.Empty(t, decl.Parameters.Required)

	for _, p := range []string{"category", "item", "quantity", "location", "status", "sentiment"} {
		assert.Contains(t, decl.Parameters.Properties, p)
	}
	assert.Equal(t, genai.TypeInteger, decl.Parameters.Properties["quantity"].Type)
}

func TestSystemInstruction_MentionsEveryMarker(t *testing.T) {
	for _, src := range models.Sources {
		for _, m := range src.Markers() {
			assert.Contains(t, SystemInstruction, m)
		}
	}
}

func TestRelaxedSafety(t *testing.T) {
	settings := relaxedSafety()
	assert.Len(t, settings, 4)
	for _, s := range settings {
		assert.Equal(t, genai.HarmBlockNone, s.Threshold)
	}
}

func TestUnavailable(t *testing.T) {
	got, err := Unavailable{Reason: "GEMINI_API_KEY missing"}.Generate(context.Background(), "hi")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNewClient_RequiresKey(t *testing.T) {
	_, err := NewClient(Config{}, zaptest.NewLogger(t))
	assert.Error(t, err)
}
