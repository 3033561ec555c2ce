package models

// Source is a reference notebook an answer can cite.
type Source int

const (
	DoubtSolver Source = iota
	OEM
	AssetData
	Rules
)

// Sources lists every source in the order tags are checked.
var Sources = []Source{DoubtSolver, OEM, AssetData, Rules}

type sourceInfo struct {
	key     string
	markers []string
	emoji   string
	label   string
}

var sourceTable = map[Source]sourceInfo{
	DoubtSolver: {
		key:     "DOUBT_SOLVER",
		markers: []string{"[SOURCE: DOUBT SOLVER]"},
		emoji:   "🚦",
		label:   "Troubleshooting Guide",
	},
	OEM: {
		key:     "OEM",
		markers: []string{"[SOURCE: OEM]"},
		emoji:   "🔧",
		label:   "OEM Manuals",
	},
	AssetData: {
		key:     "ASSET_DATA",
		markers: []string{"[SOURCE: ASSET_DATA]"},
		emoji:   "📊",
		label:   "Asset Data",
	},
	Rules: {
		key: "RULES",
		// DRAWINGS is a later variant the model emits for circuit
		// drawings; those live in the rules notebook.
		markers: []string{"[SOURCE: RULES]", "[SOURCE: DRAWINGS]"},
		emoji:   "📖",
		label:   "Rules & Specs",
	},
}

// Key is the config/env name of the source, e.g. "ASSET_DATA".
func (s Source) Key() string { return sourceTable[s].key }

// Markers returns the literal tags that resolve to this source.
func (s Source) Markers() []string { return sourceTable[s].markers }

// String implements fmt.Stringer.
func (s Source) String() string {
	if info, ok := sourceTable[s]; ok {
		return info.key
	}
	return "UNKNOWN"
}

// LinkLine renders the markdown link appended below an answer.
func (s Source) LinkLine(url string) string {
	info := sourceTable[s]
	return info.emoji + " [" + info.label + "](" + url + ")"
}

// LinkTable maps each source to its notebook URL.
type LinkTable map[Source]string

// DefaultLinks are the notebooks the bot ships with.
func DefaultLinks() LinkTable {
	return LinkTable{
		DoubtSolver: "https://notebooklm.google.com/notebook/7dddc77d-86e6-4e76-9dce-bf30b93688bf",
		OEM:         "https://notebooklm.google.com/notebook/822125b0-47f0-4703-8a1c-ec44abf5eb17",
		AssetData:   "https://notebooklm.google.com/notebook/e064cf10-8a99-4712-a4e7-ff809415ec8e",
		Rules:       "https://notebooklm.google.com/notebook/27c3dfab-5300-4ce1-8cd9-fe1fb9bbb259",
	}
}
