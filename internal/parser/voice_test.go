package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/manav03panchal/smarttask/internal/model"
)

var defaultNames = []string{"Finance", "Health", "Home", "Personal", "Study", "Work"}

func TestParseVoiceCommandTitleOnly(t *testing.T) {
	cmd := ParseVoiceCommand("buy milk and bread", refNow, defaultNames)
	assert.Equal(t, "buy milk and bread", cmd.Title)
	assert.Empty(t, cmd.Description)
	assert.Empty(t, cmd.DueDate)
	assert.False(t, cmd.AutoSave)
}

func TestParseVoiceCommandSpanish(t *testing.T) {
	cmd := ParseVoiceCommand(
		"comprar leche detalle en el super fecha quince de diciembre prioridad alta categoría hogar terminar esto se ignora",
		refNow, defaultNames)

	assert.Equal(t, "comprar leche", cmd.Title)
	assert.Equal(t, "en el super", cmd.Description)
	assert.Equal(t, "quince de diciembre", cmd.DueText)
	assert.Equal(t, "2025-12-15", cmd.DueDate)
	assert.NoError(t, cmd.DueErr)
	assert.Equal(t, "alta", cmd.PriorityText)
	assert.Equal(t, model.PriorityHigh, cmd.Priority)
	assert.Equal(t, "hogar", cmd.CategoryText)
	assert.Equal(t, "Home", cmd.Category)
	assert.True(t, cmd.AutoSave)
}

func TestParseVoiceCommandEnglish(t *testing.T) {
	cmd := ParseVoiceCommand("Write report. Priority low, category work, due tomorrow, save", refNow, defaultNames)

	assert.Equal(t, "Write report", cmd.Title)
	assert.Equal(t, model.PriorityLow, cmd.Priority)
	assert.Equal(t, "Work", cmd.Category)
	assert.Equal(t, "2025-06-11", cmd.DueDate)
	assert.True(t, cmd.AutoSave)
}

func TestParseVoiceCommandUnparsable(t *testing.T) {
	cmd := ParseVoiceCommand("call mom due whenever zzz priority urgent category garden", refNow, defaultNames)

	assert.Equal(t, "call mom", cmd.Title)
	assert.Equal(t, "whenever zzz", cmd.DueText)
	assert.Empty(t, cmd.DueDate)
	assert.Error(t, cmd.DueErr)
	assert.Equal(t, model.Priority(""), cmd.Priority)
	assert.Equal(t, "garden", cmd.CategoryText)
	assert.Empty(t, cmd.Category)
}

func TestParseVoiceCommandLeadingAutoSaveWord(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTitle string
		wantDue   string
		wantSave  bool
	}{
		{"save_as_title", "Save receipts for taxes due tomorrow", "Save receipts for taxes", "2025-06-11", false},
		{"finish_as_title", "finish the essay due tomorrow", "finish the essay", "2025-06-11", false},
		{"trailing_save", "Save receipts due +3d save", "Save receipts", "2025-06-13", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := ParseVoiceCommand(tt.input, refNow, defaultNames)
			assert.Equal(t, tt.wantTitle, cmd.Title)
			assert.Equal(t, tt.wantDue, cmd.DueDate)
			assert.Equal(t, tt.wantSave, cmd.AutoSave)
		})
	}
}

func TestParseVoiceCommandRepeatedKeyword(t *testing.T) {
	cmd := ParseVoiceCommand("task priority low priority high", refNow, nil)
	assert.Equal(t, model.PriorityHigh, cmd.Priority)
	assert.Equal(t, "high", cmd.PriorityText)
}

func TestMatchCategory(t *testing.T) {
	names := []string{"Estudio", "Work"}

	tests := []struct {
		text string
		want string
	}{
		{"work", "Work"},
		{"WORK", "Work"},
		{"éstudio", "Estudio"},
		{"el estudio", "Estudio"},
		{"trabajo", "Work"},
		{"salud", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchCategory(tt.text, names))
		})
	}
}

func TestFoldAccents(t *testing.T) {
	assert.Equal(t, "categoria", FoldAccents("categoría"))
	assert.Equal(t, "Manana", FoldAccents("Mañana"))
	assert.Equal(t, "plain", FoldAccents("plain"))
}
