// Package vom analyzes a rendered terminal screen into a Virtual Object
// Model: contiguous same-style text runs classified into interactive UI
// roles. Analysis is a pure function of (grid, cursor); components carry no
// identity across calls.
package vom

import (
	"github.com/guibef/interminai-plus/internal/emulator"
)

// Grid is the cell source the segmenter walks. The emulator's Screen
// satisfies it.
type Grid interface {
	Size() (rows, cols int)
	Cell(row, col int) (r rune, style emulator.Style, ok bool)
}

// Rect is a cluster's bounding box in cell coordinates. Height is always 1.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Cluster is a maximal run of cells in one row with identical style and
// non-empty trimmed text.
type Cluster struct {
	Text   string
	Style  emulator.Style
	Bounds Rect
}

// Role labels the probable UI semantics of a cluster.
type Role string

const (
	RoleButton       Role = "Button"
	RoleTab          Role = "Tab"
	RoleInput        Role = "Input"
	RoleStaticText   Role = "StaticText"
	RolePanel        Role = "Panel"
	RoleCheckbox     Role = "Checkbox"
	RoleMenuItem     Role = "MenuItem"
	RoleStatus       Role = "Status"
	RoleToolBlock    Role = "ToolBlock"
	RolePromptMarker Role = "PromptMarker"
	RoleProgressBar  Role = "ProgressBar"
	RoleLink         Role = "Link"
	RoleErrorMessage Role = "ErrorMessage"
	RoleDiffLine     Role = "DiffLine"
	RoleCodeBlock    Role = "CodeBlock"
	RoleRadio        Role = "Radio"
	RoleSelect       Role = "Select"
)

// idPrefixes maps each role to its component id prefix.
var idPrefixes = map[Role]string{
	RoleButton:       "btn",
	RoleInput:        "inp",
	RoleCheckbox:     "chk",
	RoleTab:          "tab",
	RoleMenuItem:     "menu",
	RoleLink:         "link",
	RoleProgressBar:  "prog",
	RoleStatus:       "stat",
	RoleErrorMessage: "err",
	RoleDiffLine:     "diff",
	RoleCodeBlock:    "code",
	RolePanel:        "pan",
	RoleToolBlock:    "tool",
	RolePromptMarker: "prom",
	RoleStaticText:   "txt",
	RoleRadio:        "rad",
	RoleSelect:       "sel",
}

// Component is a classified cluster. IDs are stable within a single analyze
// call only: the n-th cluster of a role (in row-major order) gets "@<prefix><n>".
type Component struct {
	ID       string  `json:"id"`
	Role     Role    `json:"role"`
	Text     string  `json:"text"`
	Bounds   Rect    `json:"bounds"`
	Selected bool    `json:"selected"`
	Checked  *bool   `json:"checked,omitempty"`
	Value    *string `json:"value,omitempty"`
}

// DefaultTabRowThreshold is the deepest row (0-indexed) at which an inverse
// cluster still reads as a tab rather than a menu item.
const DefaultTabRowThreshold = 2

// Options tunes classification.
type Options struct {
	TabRowThreshold int
}

// DefaultOptions returns the standard classifier tuning.
func DefaultOptions() Options {
	return Options{TabRowThreshold: DefaultTabRowThreshold}
}

// Analyze segments the grid and classifies every cluster.
func Analyze(g Grid, cursorRow, cursorCol int, opts Options) []Component {
	return classify(Segment(g), cursorRow, cursorCol, opts)
}
