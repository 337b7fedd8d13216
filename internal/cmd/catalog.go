package cmd

import (
	"fmt"

	"github.com/Iron-Ham/limber/internal/catalog"
	"github.com/Iron-Ham/limber/internal/routine"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List, validate or export the exercise catalog",
	Long: `List the exercises routines are drawn from.

The catalog is the built-in list unless --catalog or routine.catalog_file
names a YAML file of the form:

  exercises:
    - name: Pigeon Pose
      bilateral: true
    - name: Butterfly

Examples:
  # Show the active catalog with estimated routine times
  limber catalog

  # Check a catalog file; exits non-zero if it is invalid
  limber catalog --catalog stretches.yaml --validate

  # Write the built-in catalog out as a starting point
  limber catalog --export ~/.config/limber/stretches.yaml`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

var (
	catalogFile     string
	catalogValidate bool
	catalogExport   string
)

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().StringVar(&catalogFile, "catalog", "", "Exercise catalog YAML file (default: routine.catalog_file or built-in)")
	catalogCmd.Flags().BoolVar(&catalogValidate, "validate", false, "Only validate the catalog")
	catalogCmd.Flags().StringVar(&catalogExport, "export", "", "Write the catalog to this YAML file")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := resolveCatalogPath(catalogFile, cfg)
	c, err := loadCatalog(path)
	if err != nil {
		return err
	}
	source := path
	if source == "" {
		source = "built-in"
	}
	out := cmd.OutOrStdout()

	if catalogValidate {
		fmt.Fprintf(out, "%s: ok (%d exercises, %d bilateral)\n", source, len(c), c.BilateralCount())
		return nil
	}

	if catalogExport != "" {
		if err := catalog.Write(appFs, catalogExport, c); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %d exercises to %s\n", len(c), catalogExport)
		return nil
	}

	fmt.Fprintf(out, "Catalog: %s\n\n", source)
	for i, e := range c {
		marker := ""
		if e.Bilateral {
			marker = "  (left + right)"
		}
		fmt.Fprintf(out, "%3d. %s%s\n", i+1, e.Name, marker)
	}

	d := durations(cfg)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Estimated routine times:")
	for _, n := range cfg.Routine.AllowedLengths {
		if n > len(c) {
			fmt.Fprintf(out, "  %2d stretches: not enough exercises\n", n)
			continue
		}
		fmt.Fprintf(out, "  %2d stretches: %s\n", n, routine.EstimateDuration(n, c, d))
	}
	return nil
}
