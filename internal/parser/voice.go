package parser

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/manav03panchal/smarttask/internal/model"
)

// Field names a section of a voice command.
type Field int

const (
	FieldTitle Field = iota
	FieldDescription
	FieldDue
	FieldPriority
	FieldCategory
)

const punctuation = ".,;:!?"

// keywords maps spoken words (already accent folded) to the field they
// introduce.
var keywords = map[string]Field{
	"detail":    FieldDescription,
	"details":   FieldDescription,
	"detalle":   FieldDescription,
	"detalles":  FieldDescription,
	"due":       FieldDue,
	"date":      FieldDue,
	"fecha":     FieldDue,
	"priority":  FieldPriority,
	"prioridad": FieldPriority,
	"category":  FieldCategory,
	"categoria": FieldCategory,
}

// autoSaveWords end a command and ask for it to be saved right away. They
// only count once the title has at least one word.
var autoSaveWords = map[string]bool{
	"finish":   true,
	"save":     true,
	"terminar": true,
}

var priorityWords = map[string]model.Priority{
	"high":   model.PriorityHigh,
	"alta":   model.PriorityHigh,
	"medium": model.PriorityMedium,
	"media":  model.PriorityMedium,
	"normal": model.PriorityMedium,
	"low":    model.PriorityLow,
	"baja":   model.PriorityLow,
}

// CategoryAliases maps Spanish category names to the default English ones.
var CategoryAliases = map[string]string{
	"trabajo":  "Work",
	"personal": "Personal",
	"hogar":    "Home",
	"casa":     "Home",
	"estudio":  "Study",
	"salud":    "Health",
	"finanzas": "Finance",
}

// VoiceCommand is the structured result of a transcribed utterance. The
// raw section text is kept next to each parsed value.
type VoiceCommand struct {
	Title        string
	Description  string
	DueText      string
	DueDate      string // YYYY-MM-DD, empty when absent or unparsable
	DueErr       error
	PriorityText string
	Priority     model.Priority // empty when not recognised
	CategoryText string
	Category     string // matched category name, empty when none matched
	AutoSave     bool
}

// ParseVoiceCommand splits text on field keywords. Words before the first
// keyword form the title. A later keyword for the same field replaces the
// earlier section. categories are the known category names used for
// matching; Spanish aliases of the defaults are also understood.
func ParseVoiceCommand(text string, now time.Time, categories []string) VoiceCommand {
	var cmd VoiceCommand
	sections := map[Field][]string{}
	current := FieldTitle

	for _, word := range strings.Fields(text) {
		bare := strings.Trim(word, punctuation)
		key := FoldAccents(strings.ToLower(bare))
		if autoSaveWords[key] && len(sections[FieldTitle]) > 0 {
			cmd.AutoSave = true
			break
		}
		if f, ok := keywords[key]; ok {
			current = f
			sections[f] = nil
			continue
		}
		if current != FieldTitle {
			word = bare
		}
		if word == "" {
			continue
		}
		sections[current] = append(sections[current], word)
	}

	join := func(f Field) string {
		return strings.TrimRight(strings.Join(sections[f], " "), punctuation)
	}

	cmd.Title = join(FieldTitle)
	cmd.Description = join(FieldDescription)

	cmd.DueText = join(FieldDue)
	if cmd.DueText != "" {
		if t, err := ParseDueDate(cmd.DueText, now); err == nil {
			cmd.DueDate = FormatDueDate(t)
		} else {
			cmd.DueErr = err
		}
	}

	cmd.PriorityText = join(FieldPriority)
	cmd.Priority = matchPriority(cmd.PriorityText)

	cmd.CategoryText = join(FieldCategory)
	cmd.Category = MatchCategory(cmd.CategoryText, categories)

	return cmd
}

func matchPriority(text string) model.Priority {
	for _, w := range strings.Fields(FoldAccents(strings.ToLower(text))) {
		if p, ok := priorityWords[w]; ok {
			return p
		}
	}
	return ""
}

// MatchCategory finds the category named in text, ignoring case and
// accents. Known names win over aliases; "" means no match.
func MatchCategory(text string, categories []string) string {
	folded := FoldAccents(strings.ToLower(strings.TrimSpace(text)))
	if folded == "" {
		return ""
	}
	words := strings.Fields(folded)

	for _, name := range categories {
		fn := FoldAccents(strings.ToLower(name))
		if fn == folded || containsWord(words, fn) {
			return name
		}
	}
	for _, w := range words {
		alias, ok := CategoryAliases[w]
		if !ok {
			continue
		}
		for _, name := range categories {
			if strings.EqualFold(name, alias) {
				return name
			}
		}
	}
	return ""
}

func containsWord(words []string, target string) bool {
	for _, w := range words {
		if w == target {
			return true
		}
	}
	return false
}

// FoldAccents strips combining marks, so "Categoría" becomes "Categoria".
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
