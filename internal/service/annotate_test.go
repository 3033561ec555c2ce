package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mynameisDevendra/KURSnTbOT2/internal/models"
)

func testLinks() models.LinkTable {
	return models.LinkTable{
		models.DoubtSolver: "https://nb/doubt",
		models.OEM:         "https://nb/oem",
		models.AssetData:   "https://nb/asset",
		models.Rules:       "https://nb/rules",
	}
}

func TestComposePrompt(t *testing.T) {
	t.Run("no reply passes text through", func(t *testing.T) {
		for _, text := range []string{"Issued 5 relays to Station X", "", "  [weird] (text) '"} {
			assert.Equal(t, text, ComposePrompt(text, ""))
		}
	})

	t.Run("reply embeds both texts", func(t *testing.T) {
		got := ComposePrompt("Received", "Need 4 axle counter cards at KRS")
		assert.NotEmpty(t, got)
		assert.Contains(t, got, "CONTEXT [Original Msg]: 'Need 4 axle counter cards at KRS'")
		assert.Contains(t, got, "ACTION [User Reply]: 'Received'")
		assert.Contains(t, got, "Extract Item from Context, Status from Action.")
	})
}

func TestAnnotate_NoMarkersUnchanged(t *testing.T) {
	for _, text := range []string{
		"Check the fuse first.",
		"Unknown tag stays [SOURCE: WIKI]",
		"",
	} {
		assert.Equal(t, text, Annotate(text, testLinks()))
	}
}

func TestAnnotate_SingleMarker(t *testing.T) {
	got := Annotate("Likely a rail fracture. [SOURCE: DOUBT SOLVER]", testLinks())

	assert.NotContains(t, got, "[SOURCE: DOUBT SOLVER]")
	assert.Equal(t, "Likely a rail fracture. \n\n🚦 [Troubleshooting Guide](https://nb/doubt)"+LoginTip, got)
}

func TestAnnotate_RepeatedMarkerLinkedOnce(t *testing.T) {
	got := Annotate("[SOURCE: OEM] reset the card [SOURCE: OEM]", testLinks())

	assert.NotContains(t, got, "[SOURCE: OEM]")
	assert.Equal(t, 1, strings.Count(got, "https://nb/oem"))
	assert.Equal(t, 1, strings.Count(got, "Tip:"))
}

func TestAnnotate_EnumerationOrderNotTextOrder(t *testing.T) {
	got := Annotate("See [SOURCE: RULES] and [SOURCE: ASSET_DATA] and [SOURCE: DOUBT SOLVER].", testLinks())

	doubt := strings.Index(got, "https://nb/doubt")
	asset := strings.Index(got, "https://nb/asset")
	rules := strings.Index(got, "https://nb/rules")
	assert.True(t, doubt >= 0 && asset > doubt && rules > asset, got)
	assert.NotContains(t, got, "[SOURCE:")
}

func TestAnnotate_DrawingsMapsToRules(t *testing.T) {
	got := Annotate("Refer Annexure II. [SOURCE: DRAWINGS] [SOURCE: RULES]", testLinks())

	assert.NotContains(t, got, "[SOURCE: DRAWINGS]")
	assert.NotContains(t, got, "[SOURCE: RULES]")
	assert.Equal(t, 1, strings.Count(got, "https://nb/rules"))
}

func TestAnnotate_UnknownTagKeptAlongsideKnown(t *testing.T) {
	got := Annotate("x [SOURCE: WIKI] y [SOURCE: OEM]", testLinks())

	assert.Contains(t, got, "[SOURCE: WIKI]")
	assert.Contains(t, got, "https://nb/oem")
}
