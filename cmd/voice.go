package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/smarttask/internal/app"
	"github.com/manav03panchal/smarttask/internal/output"
	"github.com/manav03panchal/smarttask/internal/parser"
)

var voiceFlagSave bool

// voiceCmd turns a spoken sentence into a task.
var voiceCmd = &cobra.Command{
	Use:   "voice TEXT...",
	Short: "Create a task from a transcribed voice command",
	Long: `Parse a transcribed sentence into task fields. Words before the first
keyword are the title; the keywords (English or Spanish) introduce the other
fields:

  details | detalle       description
  due | date | fecha      due date, in natural language
  priority | prioridad    high/alta, medium/media, low/baja
  category | categoria   matched against existing categories
  save | finish | terminar  save the task; anything after is ignored

Without a save keyword or --save the parsed fields are only shown.

Examples:
  smarttask voice "call the bank due next friday priority high category finance save"
  smarttask voice comprar leche fecha mañana prioridad alta terminar`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVoice,
}

func init() {
	voiceCmd.Flags().BoolVar(&voiceFlagSave, "save", false, "Save the task even without a save keyword")
	rootCmd.AddCommand(voiceCmd)
}

// voiceResponse is the JSON shape of the voice command.
type voiceResponse struct {
	Status      string             `json:"status"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	DueText     string             `json:"due_text,omitempty"`
	DueDate     string             `json:"due_date,omitempty"`
	Priority    string             `json:"priority,omitempty"`
	Category    string             `json:"category,omitempty"`
	AutoSave    bool               `json:"auto_save"`
	Task        *output.TaskOutput `json:"task,omitempty"`
}

func runVoice(cmd *cobra.Command, args []string) error {
	parsed, err := ctx.App.ParseVoice(strings.Join(args, " "))
	if err != nil {
		return err
	}

	resp := voiceResponse{
		Status:      "parsed",
		Title:       parsed.Title,
		Description: parsed.Description,
		DueText:     parsed.DueText,
		DueDate:     parsed.DueDate,
		Priority:    string(parsed.Priority),
		Category:    parsed.Category,
		AutoSave:    parsed.AutoSave,
	}

	if parsed.AutoSave || voiceFlagSave {
		task, err := ctx.App.CreateTask(app.VoiceInput(parsed))
		if err != nil {
			return err
		}
		names, err := ctx.Names()
		if err != nil {
			return err
		}
		resp.Status = "created"
		resp.Task = output.NewTaskOutput(task, names)
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(resp)
	}
	printVoice(ctx.CLIFormatter(), parsed, resp)
	return nil
}

func printVoice(cli *output.CLIFormatter, parsed parser.VoiceCommand, resp voiceResponse) {
	cli.Title("Heard")
	field := func(label, value string) {
		if value != "" {
			cli.Printf("  %-12s %s\n", label+":", value)
		}
	}
	field("Title", parsed.Title)
	field("Description", parsed.Description)
	switch {
	case parsed.DueDate != "":
		field("Due", parsed.DueDate)
	case parsed.DueText != "":
		field("Due", parsed.DueText+" "+cli.Note("(not understood)"))
	}
	switch {
	case parsed.Priority != "":
		field("Priority", cli.Priority(parsed.Priority))
	case parsed.PriorityText != "":
		field("Priority", parsed.PriorityText+" "+cli.Note("(not understood)"))
	}
	switch {
	case parsed.Category != "":
		field("Category", cli.CategoryName(parsed.Category))
	case parsed.CategoryText != "":
		field("Category", parsed.CategoryText+" "+cli.Note("(no such category)"))
	}
	cli.Println()

	if resp.Task != nil {
		cli.Success(fmt.Sprintf("Added task #%d '%s'", resp.Task.ID, resp.Task.Title))
		return
	}
	cli.Muted("Not saved. End with 'save' or pass --save to create the task.")
}
