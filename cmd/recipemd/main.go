package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"recipemd/internal/builder"
	"recipemd/internal/config"
	"recipemd/internal/importer"
	"recipemd/internal/parser"
	"recipemd/internal/registry"
	"recipemd/internal/validate"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "recipemd",
	Short: "Recipe corpus build tool",
	Long: `Converts a mixed recipe corpus (markdown cookbooks, Google Forms CSV
exports, and JSON records) into one normalized, validated collection
consumed by the browsing front-end.`,
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build recipes.json from the data directory",
	RunE:  runBuild,
}

var importCmd = &cobra.Command{
	Use:   "import <csv-file>",
	Short: "Import a Google Forms CSV export as recipe JSON files",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Build the users map from the user registry file",
	RunE:  runUsers,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the generated collection and report warnings",
	RunE:  runValidate,
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove generated files",
	RunE:  runClean,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(cleanCmd)

	buildCmd.Flags().StringP("data", "d", "", "Recipe sources directory")
	buildCmd.Flags().StringP("output", "o", "", "Collection output path")
	validateCmd.Flags().StringP("input", "i", "", "Collection path to validate")
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

func newParser() *parser.Parser {
	p := parser.New()
	p.DefaultCommentUser = config.GetDefaultCommentUser()
	p.FallbackCategory = config.GetFallbackCategory()
	return p
}

func runBuild(cmd *cobra.Command, args []string) error {
	if d, _ := cmd.Flags().GetString("data"); d != "" {
		config.SetDataDir(d)
	}
	if o, _ := cmd.Flags().GetString("output"); o != "" {
		config.SetOutput(o)
	}

	dataDir := config.GetDataDir()
	output := config.GetOutput()

	reg, err := registry.Load(config.GetUsersFile())
	if err != nil {
		return fmt.Errorf("load user registry: %w", err)
	}

	b := &builder.Builder{
		Parser:   newParser(),
		Registry: reg,
		Version:  config.GetCollectionVersion(),
	}

	stepf("Scanning %s", dataDir)
	result, err := b.BuildDir(dataDir)
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	for _, src := range result.Sources {
		dimf("%s: %d recipes", src.File, src.Recipes)
	}

	if err := builder.WriteCollection(output, result.Collection); err != nil {
		return err
	}

	c := result.Collection
	okf("Built %d recipes across %d categories", c.TotalRecipes, len(c.Categories))
	okf("Saved %s", output)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	csvPath := args[0]

	file, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	stepf("Parsing form responses from %s", csvPath)
	responses, err := importer.ParseCSV(file)
	if err != nil {
		return err
	}

	outputDir := config.GetDataDir()
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	for _, resp := range responses {
		r := importer.Convert(resp)

		// One array file per recipe, matching the existing source format.
		data, err := json.MarshalIndent([]any{r}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal recipe %s: %w", r.ID, err)
		}
		path := filepath.Join(outputDir, r.ID+".json")
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}

		okf("Created %s.json (%s / %s)", r.ID, r.Title, r.Category)
	}

	okf("Imported %d recipe(s) to %s", len(responses), outputDir)
	return nil
}

func runUsers(cmd *cobra.Command, args []string) error {
	usersFile := config.GetUsersFile()
	output := config.GetUsersOutput()

	users, err := registry.LoadUsers(usersFile)
	if err != nil {
		return err
	}

	stepf("Building users map from %s", usersFile)
	for _, u := range users {
		if u.Photo != "" {
			dimf("%s (%s)", u.Name, u.Photo)
		} else {
			dimf("%s (no photo)", u.Name)
		}
	}

	data, err := json.MarshalIndent(registry.New(users).Map(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal users map: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write users map: %w", err)
	}

	okf("Saved %d users to %s", len(users), output)
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	input := config.GetOutput()
	if i, _ := cmd.Flags().GetString("input"); i != "" {
		input = i
	}

	collection, err := builder.ReadCollection(input)
	if err != nil {
		return err
	}

	warnings := validate.Collection(collection)

	okf("Validated %s", input)
	dimf("Total recipes: %d", collection.TotalRecipes)
	dimf("Categories: %d", len(collection.Categories))
	dimf("Generated: %s", collection.GeneratedAt)

	if len(warnings) == 0 {
		okf("No validation warnings")
		return nil
	}

	warnf("Found %d validation warning(s):", len(warnings))
	shown := warnings
	if len(shown) > 10 {
		shown = shown[:10]
	}
	for _, w := range shown {
		warnf("  - %s", w)
	}
	if rest := len(warnings) - len(shown); rest > 0 {
		warnf("  ... and %d more", rest)
	}
	dimf("These are data quality issues in the source files, not build failures.")
	return nil
}

func runClean(cmd *cobra.Command, args []string) error {
	for _, path := range []string{config.GetOutput(), config.GetUsersOutput()} {
		if err := os.Remove(path); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("remove %s: %w", path, err)
		}
		okf("Removed %s", path)
	}
	return nil
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
