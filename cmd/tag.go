package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/smarttask/internal/model"
	"github.com/manav03panchal/smarttask/internal/output"
)

var tagFlagColor string

// tagCmd manages tags.
var tagCmd = &cobra.Command{
	Use:     "tag",
	Aliases: []string{"tags"},
	Short:   "Manage tags",
	Long: `List, create and delete tags. Deleting a tag removes it from every task.
Tags named on 'smarttask add --tag' are created on the fly.

Examples:
  smarttask tag
  smarttask tag add urgent --color "#FF5733"
  smarttask tag delete urgent`,
	Args: cobra.NoArgs,
	RunE: runTagList,
}

var tagListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tags",
	Args:    cobra.NoArgs,
	RunE:    runTagList,
}

var tagAddCmd = &cobra.Command{
	Use:     "add NAME",
	Aliases: []string{"create"},
	Short:   "Create a tag",
	Args:    cobra.ExactArgs(1),
	RunE:    runTagAdd,
}

var tagDeleteCmd = &cobra.Command{
	Use:               "delete TAG",
	Aliases:           []string{"rm"},
	Short:             "Delete a tag",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeTags,
	RunE:              runTagDelete,
}

func init() {
	tagAddCmd.Flags().StringVar(&tagFlagColor, "color", model.DefaultTagColor, "Hex color (#RRGGBB)")
	addForceFlag(tagDeleteCmd)

	tagCmd.AddCommand(tagListCmd, tagAddCmd, tagDeleteCmd)
	rootCmd.AddCommand(tagCmd)
}

func runTagList(cmd *cobra.Command, args []string) error {
	tags, err := ctx.App.ListTags()
	if err != nil {
		return err
	}
	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintTags(tags)
	}
	ctx.CLIFormatter().PrintTags(tags)
	return nil
}

func runTagAdd(cmd *cobra.Command, args []string) error {
	tag, err := ctx.App.CreateTag(args[0], tagFlagColor)
	if err != nil {
		return err
	}
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(tagResponse("created", tag))
	}
	cli := ctx.CLIFormatter()
	cli.Success("Created tag " + cli.TagName(tag.Name, tag.Color))
	return nil
}

func runTagDelete(cmd *cobra.Command, args []string) error {
	if !confirm(fmt.Sprintf("Delete tag '%s' and remove it from all tasks?", args[0])) {
		ctx.CLIFormatter().Muted("Cancelled")
		return nil
	}
	tag, err := ctx.App.DeleteTag(args[0])
	if err != nil {
		return err
	}
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(tagResponse("deleted", tag))
	}
	ctx.CLIFormatter().Success(fmt.Sprintf("Deleted tag '%s'", tag.Name))
	return nil
}

func tagResponse(status string, tag *model.Tag) map[string]any {
	return map[string]any{
		"status": status,
		"tag":    output.TagOutput{ID: tag.ID, Name: tag.Name, Color: tag.Color},
	}
}
