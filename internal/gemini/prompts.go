package gemini

import (
	"github.com/google/generative-ai-go/genai"

	"github.com/mynameisDevendra/KURSnTbOT2/internal/models"
)

// SystemInstruction defines the two response modes and the source routing.
const SystemInstruction = `
You are an intelligent Railway Log Assistant.

MODE 1: MATERIAL LOGGING
- IF the user reports a material movement or status update -> Call 'extract_transaction_data'.
- IF it is a REPLY: Extract Item/Qty from the *Context*, but Status/Action from the *Reply*.

MODE 2: KNOWLEDGE RETRIEVAL (Notebooks)
- IF the user asks a question, Answer it, then APPEND A SOURCE TAG:

  1. [SOURCE: DOUBT SOLVER] -> Use this for FIELD DIAGNOSIS:
     - Track Circuits (High/Low Voltage). Point Machines (Motor faults).
     - Datalogger Analysis. Troubleshooting Flowcharts.

  2. [SOURCE: OEM] -> Use this for EQUIPMENT DETAILS:
     - EI (Medha, Siemens, Kyosan). Axle Counters (Frauscher, CEL).
     - Block Systems (UFSBI). Power Supply (IPS, ELD).
     - Error codes, card replacement, LED status.

  3. [SOURCE: ASSET_DATA] -> Use this for QUANTITIES & LOCATIONS:
     - Inventory Counts. Station Details. Jurisdiction.
     - Progress targets and Division highlights.

  4. [SOURCE: RULES] -> Use this for RULES & SIGNALING SPECS:
     - IRSEM (Signal Engineering Manual).
     - RDSO TANs & Policies.
     - G&SR (General Rules), Speed Limits, Shunting.

  5. [SOURCE: DRAWINGS] -> Use this for Circuit Diagrams & Drawings (Annexure II).

If ambiguous, you may append multiple tags.
`

func stringParam(desc string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: desc}
}

// ExtractionTool declares the single logging action. No parameter is
// required; missing ones get placeholders when the row is built.
var ExtractionTool = &genai.Tool{
	FunctionDeclarations: []*genai.FunctionDeclaration{{
		Name:        models.ExtractionFunctionName,
		Description: "Record a material movement or status update reported by field staff.",
		Parameters: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"category":  stringParam("Material category, e.g. Signalling, Track, Power."),
				"item":      stringParam("The material or equipment item."),
				"quantity":  {Type: genai.TypeInteger, Description: "Number of units."},
				"location":  stringParam("Station, yard or section."),
				"status":    stringParam("Action or status, e.g. Issued, Received, Requested, Faulty."),
				"sentiment": stringParam("Tone of the report: Positive, Neutral, Negative or Urgent."),
			},
		},
	}},
}

func relaxedSafety() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, c := range categories {
		settings = append(settings, &genai.SafetySetting{Category: c, Threshold: genai.HarmBlockNone})
	}
	return settings
}
