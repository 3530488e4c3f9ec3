package vom

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/guibef/interminai-plus/internal/emulator"
)

// classify assigns one role per cluster using the first matching rule, then
// derives selection, checked state, value, and per-role ids.
func classify(clusters []Cluster, cursorRow, cursorCol int, opts Options) []Component {
	var components []Component
	counts := make(map[Role]int)

	for _, cl := range clusters {
		role := roleFor(cl, cursorRow, cursorCol, opts)
		counts[role]++

		comp := Component{
			ID:       "@" + idPrefixes[role] + strconv.Itoa(counts[role]),
			Role:     role,
			Text:     cl.Text,
			Bounds:   cl.Bounds,
			Selected: isSelected(cl.Text, cl.Style),
			Checked:  checkedState(cl.Text),
		}
		if role == RoleInput {
			v := cl.Text
			comp.Value = &v
		}
		components = append(components, comp)
	}
	return components
}

// roleFor runs the rule chain in priority order.
func roleFor(cl Cluster, cursorRow, cursorCol int, opts Options) Role {
	text := cl.Text
	b := cl.Bounds

	// The cursor sitting inside a cluster outranks every textual pattern.
	if cursorRow == b.Y && cursorCol >= b.X && cursorCol < b.X+b.Width {
		return RoleInput
	}
	if isButtonText(text) {
		return RoleButton
	}
	if cl.Style.Inverse {
		if b.Y <= opts.TabRowThreshold {
			return RoleTab
		}
		return RoleMenuItem
	}
	if cl.Style.Bg == emulator.Indexed(4) || cl.Style.Bg == emulator.Indexed(6) {
		return RoleTab
	}
	if isErrorMessage(text) {
		return RoleErrorMessage
	}
	if isInputField(text) {
		return RoleInput
	}
	if isCheckbox(text) {
		return RoleCheckbox
	}
	if isRadio(text) {
		return RoleRadio
	}
	if isSelect(text) {
		return RoleSelect
	}
	if isPromptMarker(text) {
		return RolePromptMarker
	}
	if isMenuItem(text) {
		return RoleMenuItem
	}
	if isLink(text) {
		return RoleLink
	}
	if isProgressBar(text) {
		return RoleProgressBar
	}
	if isDiffLine(text) {
		return RoleDiffLine
	}
	if isToolBlockBorder(text) {
		return RoleToolBlock
	}
	if isCodeBlockBorder(text) {
		return RoleCodeBlock
	}
	if isPanelBorder(text) {
		return RolePanel
	}
	if isStatusIndicator(text) {
		return RoleStatus
	}
	return RoleStaticText
}

// --- rule predicates ---

func isButtonText(text string) bool {
	if len([]rune(text)) <= 2 {
		return false
	}
	if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
		return containsAlpha(text) && !isCheckbox(text) && !isProgressInterior(bracketInterior(text))
	}
	if strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")") {
		inner := strings.TrimSuffix(strings.TrimPrefix(text, "("), ")")
		return strings.TrimSpace(inner) != "" && !isRadio(text)
	}
	return strings.HasPrefix(text, "<") && strings.HasSuffix(text, ">")
}

var errorPrefixes = []string{"Error:", "error:", "ERROR:", "Error ", "error ", "ERROR "}

func isErrorMessage(text string) bool {
	for _, p := range errorPrefixes {
		if strings.HasPrefix(text, p) {
			return true
		}
	}
	return strings.HasPrefix(text, "✗") || strings.HasPrefix(text, "✘")
}

func isInputField(text string) bool {
	if strings.Contains(text, "___") {
		return true
	}
	allUnderscores := len(text) > 0
	for _, r := range text {
		if r != '_' {
			allUnderscores = false
			break
		}
	}
	if allUnderscores {
		return true
	}
	return strings.HasSuffix(text, ": _") || strings.HasSuffix(text, ":_")
}

var checkboxMarkers = []string{"[x]", "[X]", "[ ]", "[✓]", "[✔]", "◼", "◻", "☐", "☑", "☒"}

func isCheckbox(text string) bool {
	for _, m := range checkboxMarkers {
		if text == m {
			return true
		}
	}
	return false
}

var radioMarkers = []string{"(x)", "(X)", "( )", "◉", "◯", "●", "○"}

func isRadio(text string) bool {
	for _, m := range radioMarkers {
		if text == m {
			return true
		}
	}
	return false
}

func isSelect(text string) bool {
	return strings.HasPrefix(text, "❯") || strings.HasPrefix(text, "›")
}

func isPromptMarker(text string) bool {
	return text == ">" || text == "> "
}

var menuPrefixes = []string{">", "❯", "›", "→", "▶", "• ", "* ", "- "}

func isMenuItem(text string) bool {
	for _, p := range menuPrefixes {
		if strings.HasPrefix(text, p) {
			return true
		}
	}
	return false
}

var urlSchemes = []string{"http://", "https://", "file://", "ftp://"}

// linkExtensions is the fixed extension set the file-path heuristic accepts.
var linkExtensions = []string{
	"go", "rs", "py", "js", "ts", "tsx", "jsx", "c", "h", "cpp",
	"hpp", "java", "rb", "sh", "md", "txt", "json", "yaml", "yml", "toml",
	"xml", "html", "css", "sql", "log", "conf", "cfg", "ini", "lock", "mod",
}

func isLink(text string) bool {
	for _, s := range urlSchemes {
		if strings.HasPrefix(text, s) {
			return true
		}
	}
	return isFilePath(text)
}

func isFilePath(text string) bool {
	if strings.HasPrefix(text, "/") && len(text) > 1 {
		return true
	}
	if strings.HasPrefix(text, "./") || strings.HasPrefix(text, "../") {
		return true
	}
	if !strings.Contains(text, "/") || strings.ContainsAny(text, " \t") {
		return false
	}
	dot := strings.LastIndexByte(text, '.')
	if dot < 0 || dot == len(text)-1 {
		return false
	}
	ext := strings.ToLower(text[dot+1:])
	for _, e := range linkExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Bar glyph sets for progress detection.
var (
	progressFilled = "█▓▒░■#="
	progressEmpty  = " -_·─"
	barChars       = "█▓▒░▏▎▍▌▋▊▉■"
)

func isProgressBar(text string) bool {
	if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
		return isProgressInterior(bracketInterior(text))
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return false
	}
	bar := 0
	for _, r := range runes {
		if strings.ContainsRune(barChars, r) {
			bar++
		}
	}
	return bar*2 > len(runes)
}

// isProgressInterior reports whether s reads as the inside of a bracketed
// progress bar: mostly fill/track glyphs with at least one filled cell.
func isProgressInterior(s string) bool {
	runes := []rune(s)
	if len(runes) == 0 {
		return false
	}
	filled, track := 0, 0
	for _, r := range runes {
		switch {
		case strings.ContainsRune(progressFilled, r):
			filled++
		case strings.ContainsRune(progressEmpty, r):
			track++
		}
	}
	return filled > 0 && (filled+track)*2 > len(runes)
}

func bracketInterior(text string) string {
	return strings.TrimSuffix(strings.TrimPrefix(text, "["), "]")
}

func isDiffLine(text string) bool {
	if strings.HasPrefix(text, "@@") {
		return true
	}
	runes := []rune(text)
	if len(runes) < 2 {
		return false
	}
	return (runes[0] == '+' || runes[0] == '-') && runes[1] != ' '
}

const toolBlockCorners = "╭╮╰╯"

func isToolBlockBorder(text string) bool {
	runes := []rune(text)
	if len(runes) == 0 {
		return false
	}
	return strings.ContainsRune(toolBlockCorners, runes[0]) ||
		strings.ContainsRune(toolBlockCorners, runes[len(runes)-1])
}

const cornerChars = "╭╮╰╯┌┐└┘╔╗╚╝"

func isCodeBlockBorder(text string) bool {
	if strings.ContainsAny(text, cornerChars) {
		return false
	}
	n := strings.Count(text, "│")
	return n >= 1 && n <= 3
}

// panelChars are the box-drawing glyphs a border line is made of.
const panelChars = "─│┌┐└┘├┤┬┴┼═║╔╗╚╝╠╣╦╩╬"

func isPanelBorder(text string) bool {
	total, box := 0, 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if strings.ContainsRune(panelChars, r) {
			box++
		}
	}
	return total > 0 && box*2 > total
}

const statusGlyphs = "⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏◐◓◑◒✓✔✗✘"

func isStatusIndicator(text string) bool {
	runes := []rune(text)
	return len(runes) > 0 && strings.ContainsRune(statusGlyphs, runes[0])
}

// --- derived attributes ---

func isSelected(text string, style emulator.Style) bool {
	if style.Inverse {
		return true
	}
	if strings.HasPrefix(text, "❯") || strings.HasPrefix(text, "›") || strings.HasPrefix(text, "◉") {
		return true
	}
	return strings.HasPrefix(text, ">") && !strings.HasPrefix(text, ">>")
}

var (
	checkedTrue  = []string{"[x]", "[X]", "(x)", "(X)", "☑", "✓", "✔", "◉", "●"}
	checkedFalse = []string{"[ ]", "( )", "☐", "◯", "○"}
)

func checkedState(text string) *bool {
	for _, m := range checkedTrue {
		if strings.Contains(text, m) {
			v := true
			return &v
		}
	}
	for _, m := range checkedFalse {
		if strings.Contains(text, m) {
			v := false
			return &v
		}
	}
	return nil
}

func containsAlpha(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
