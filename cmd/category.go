package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/manav03panchal/smarttask/internal/app"
	"github.com/manav03panchal/smarttask/internal/output"
)

var categoryFlagDescription string

// categoryCmd manages categories.
var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"categories", "cat"},
	Short:   "Manage categories",
	Long: `List, create, rename and delete categories. Names are unique ignoring
case. A category that still has tasks cannot be deleted.

Examples:
  smarttask category
  smarttask category add Errands --description "Things to pick up"
  smarttask category rename Errands Shopping
  smarttask category delete Shopping`,
	Args: cobra.NoArgs,
	RunE: runCategoryList,
}

var categoryListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List categories with task counts",
	Args:    cobra.NoArgs,
	RunE:    runCategoryList,
}

var categoryAddCmd = &cobra.Command{
	Use:     "add NAME",
	Aliases: []string{"create"},
	Short:   "Create a category",
	Args:    cobra.ExactArgs(1),
	RunE:    runCategoryAdd,
}

var categoryRenameCmd = &cobra.Command{
	Use:               "rename CATEGORY NEW_NAME",
	Short:             "Rename a category",
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeCategories,
	RunE:              runCategoryRename,
}

var categoryDeleteCmd = &cobra.Command{
	Use:               "delete CATEGORY",
	Aliases:           []string{"rm"},
	Short:             "Delete an unused category",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeCategories,
	RunE:              runCategoryDelete,
}

func init() {
	categoryAddCmd.Flags().StringVar(&categoryFlagDescription, "description", "", "Category description")
	addForceFlag(categoryDeleteCmd)

	categoryCmd.AddCommand(categoryListCmd, categoryAddCmd, categoryRenameCmd, categoryDeleteCmd)
	rootCmd.AddCommand(categoryCmd)
}

func runCategoryList(cmd *cobra.Command, args []string) error {
	cats, err := ctx.App.ListCategories()
	if err != nil {
		return err
	}
	tasks, err := ctx.App.ListTasks(app.TaskFilter{})
	if err != nil {
		return err
	}
	counts := make(map[int64]int)
	for _, t := range tasks {
		counts[t.CategoryID]++
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintCategories(cats, counts)
	}
	ctx.CLIFormatter().PrintCategories(cats, counts)
	return nil
}

func runCategoryAdd(cmd *cobra.Command, args []string) error {
	cat, err := ctx.App.CreateCategory(args[0], categoryFlagDescription)
	if err != nil {
		return err
	}
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(categoryResponse("created", cat.ID, cat.Name, cat.Description))
	}
	ctx.CLIFormatter().Success(fmt.Sprintf("Created category '%s'", cat.Name))
	return nil
}

func runCategoryRename(cmd *cobra.Command, args []string) error {
	old, err := ctx.App.GetCategory(args[0])
	if err != nil {
		return err
	}
	oldName := old.Name

	cat, err := ctx.App.RenameCategory(args[0], args[1])
	if err != nil {
		return err
	}
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(categoryResponse("renamed", cat.ID, cat.Name, cat.Description))
	}
	ctx.CLIFormatter().Success(fmt.Sprintf("Renamed category '%s' to '%s'", oldName, cat.Name))
	return nil
}

func runCategoryDelete(cmd *cobra.Command, args []string) error {
	cat, err := ctx.App.GetCategory(args[0])
	if err != nil {
		return err
	}
	if !confirm(fmt.Sprintf("Delete category '%s'?", cat.Name)) {
		ctx.CLIFormatter().Muted("Cancelled")
		return nil
	}

	cat, err = ctx.App.DeleteCategory(args[0])
	if err != nil {
		return err
	}
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(categoryResponse("deleted", cat.ID, cat.Name, cat.Description))
	}
	ctx.CLIFormatter().Success(fmt.Sprintf("Deleted category '%s'", cat.Name))
	return nil
}

func categoryResponse(status string, id int64, name, description string) map[string]any {
	return map[string]any{
		"status":   status,
		"category": output.CategoryOutput{ID: id, Name: name, Description: description},
	}
}
