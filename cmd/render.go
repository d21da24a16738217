package cmd

import (
	"fmt"

	"github.com/rooftally/rooftally/internal/formula"
	"github.com/rooftally/rooftally/internal/project"
	"github.com/spf13/cobra"
)

var (
	renderTemplateName string
	renderExpr         string
)

var renderCmd = &cobra.Command{
	Use:   "render <quote-id>",
	Short: "Render a document template against a quote's takeoff",
	Long: `Substitute {{ expression }} placeholders in a stored document
template with values from the quote's takeoff scalars. The quote must
have a derived takeoff; run 'rooftally takeoff' first.

Examples:
  # Render the built-in order summary
  rooftally render 1a2b3c4d --template "Order Summary"

  # Evaluate a one-off expression
  rooftally render 1a2b3c4d --expr "ceil(lf.ridge / 33)"`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderTemplateName, "template", "t", "", "Template name to render")
	renderCmd.Flags().StringVarP(&renderExpr, "expr", "e", "", "Single expression to evaluate instead of a template")
}

func runRender(cmd *cobra.Command, args []string) error {
	quote, err := loadQuoteByID(args[0])
	if err != nil {
		return err
	}
	if quote.Takeoff == nil {
		return fmt.Errorf("quote %s has no takeoff yet: run 'rooftally takeoff %s' first", quote.ID, quote.ID)
	}

	vars := formula.Scalars(quote.Takeoff.Scalars)

	if renderExpr != "" {
		v, err := formula.Eval(renderExpr, vars)
		if err != nil {
			return err
		}
		fmt.Println(formula.FormatValue(v))
		return nil
	}

	if renderTemplateName == "" {
		return fmt.Errorf("either --template or --expr is required")
	}

	store, err := project.LoadTemplates(project.DefaultTemplatePath())
	if err != nil {
		return err
	}
	tmpl := store.FindByName(renderTemplateName)
	if tmpl == nil {
		return fmt.Errorf("no template named %q: available: %v", renderTemplateName, store.Names())
	}

	out, err := formula.Render(tmpl.Body, vars)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
