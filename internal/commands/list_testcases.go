package evalboard

import (
	"fmt"
	"io"
	"strconv"

	"github.com/mwiater/evalboard/internal/evalapi"
	"github.com/mwiater/evalboard/internal/testcases"
	"github.com/mwiater/evalboard/internal/util"
	"github.com/spf13/cobra"
)

var (
	listTestCasesSearch   string
	listTestCasesCategory string
)

// listTestCasesCmd implements 'list test-cases' with free-text search and a category filter.
var listTestCasesCmd = &cobra.Command{
	Use:   "test-cases",
	Short: "List test cases, optionally searched and filtered by category",
	Long:  `The 'test-cases' subcommand lists test cases. --search matches name and description case-insensitively; --category narrows to one category.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := evalapi.NewFromConfig(config())
		list, err := client.TestCases.List(cmd.Context(), "")
		if err != nil {
			return err
		}
		visible := testcases.Filter(list, testcases.Query{Search: listTestCasesSearch, Category: listTestCasesCategory})
		return emit(cmd.OutOrStdout(), visible, func(out io.Writer) error {
			if len(visible) == 0 {
				fmt.Fprintln(out, "No test cases match.")
				return nil
			}
			rows := make([][]string, 0, len(visible))
			for _, tc := range visible {
				rows = append(rows, []string{
					strconv.Itoa(tc.ID),
					util.Truncate(tc.Name, 40),
					tc.Category,
					tc.Difficulty,
					util.FormatTimestamp(tc.CreatedAt),
				})
			}
			renderTable(out, []string{"ID", "Name", "Category", "Difficulty", "Created"}, rows)
			fmt.Fprintf(out, "%s\n", mutedText(fmt.Sprintf("%d of %d test cases", len(visible), len(list))))
			return nil
		})
	},
}

// listCategoriesCmd implements 'list categories'.
var listCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List test case categories",
	Long:  `The 'categories' subcommand lists the test case categories reported by the evaluation service.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := evalapi.NewFromConfig(config())
		categories, err := client.Categories.List(cmd.Context())
		if err != nil {
			return err
		}
		return emit(cmd.OutOrStdout(), categories, func(out io.Writer) error {
			fmt.Fprintln(out, headingText("Categories:"))
			for _, c := range categories {
				fmt.Fprintf(out, "  - %s\n", c)
			}
			return nil
		})
	},
}

func init() {
	listCmd.AddCommand(listTestCasesCmd, listCategoriesCmd)
	listTestCasesCmd.Flags().StringVar(&listTestCasesSearch, "search", "", "case-insensitive search over name and description")
	listTestCasesCmd.Flags().StringVar(&listTestCasesCategory, "category", testcases.AllCategories, "category to show, or all")
}
