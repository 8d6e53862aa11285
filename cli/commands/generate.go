package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/satishbabariya/quickform-go/cli/internal/config"
	"github.com/satishbabariya/quickform-go/cli/internal/ui"
	"github.com/satishbabariya/quickform-go/cli/internal/watch"
	"github.com/satishbabariya/quickform-go/generator"
	"github.com/satishbabariya/quickform-go/output"
)

var generateCmd = &cobra.Command{
	Use:   "generate [schema-path]",
	Short: "Generate a project from a schema",
	Long: `Generate a complete project from your QuickForm schema.

This command will:
- Parse and validate your quickform.yaml schema
- Render model, controller, and project templates
- Write the generated project to the output directory

Flag defaults come from a .quickform config file (current directory or
home) and QUICKFORM_* environment variables; explicit flags win.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGenerate,
}

var (
	generateSchemaPath   string
	generateOutput       string
	generateTemplatesDir string
	generateOnConflict   string
	generateWorkers      int
	generateWatch        bool
	generateSaveConfig   bool
)

func init() {
	generateCmd.Flags().StringVarP(&generateSchemaPath, "schema", "s", defaultSchemaFile, "Path to schema file")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Output directory (default from config, \"generated\")")
	generateCmd.Flags().StringVarP(&generateTemplatesDir, "templates", "t", "", "Directory of override templates")
	generateCmd.Flags().StringVar(&generateOnConflict, "on-conflict", "", "Conflict policy: overwrite, skip, or merge (default from config, \"overwrite\")")
	generateCmd.Flags().IntVar(&generateWorkers, "workers", 0, "Parallel model workers (default GOMAXPROCS)")
	generateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "Regenerate on schema or template changes")
	generateCmd.Flags().BoolVar(&generateSaveConfig, "save-config", false, "Save the resolved settings as defaults for future runs")

	rootCmd.AddCommand(generateCmd)
}

// generateOptions is the fully resolved input for one generation run.
type generateOptions struct {
	schemaPath   string
	outputDir    string
	templatesDir string
	policy       output.Policy
	workers      int
}

// resolveGenerateOptions layers the config file under the explicit flags.
func resolveGenerateOptions(args []string) (generateOptions, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return generateOptions{}, fmt.Errorf("failed to load config: %w", err)
	}

	opts := generateOptions{
		schemaPath:   getSchemaPath(generateSchemaPath, args),
		outputDir:    cfg.OutputPath,
		templatesDir: cfg.TemplatesDir,
		workers:      cfg.Workers,
	}
	if generateSchemaPath == defaultSchemaFile && len(args) == 0 && cfg.SchemaPath != "" {
		opts.schemaPath = cfg.SchemaPath
	}
	if generateOutput != "" {
		opts.outputDir = generateOutput
	}
	if generateTemplatesDir != "" {
		opts.templatesDir = generateTemplatesDir
	}
	if generateWorkers > 0 {
		opts.workers = generateWorkers
	}

	policyName := cfg.OnConflict
	if generateOnConflict != "" {
		policyName = generateOnConflict
	}
	policy, err := output.ParsePolicy(policyName)
	if err != nil {
		return generateOptions{}, err
	}
	opts.policy = policy

	return opts, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	opts, err := resolveGenerateOptions(args)
	if err != nil {
		return err
	}

	if generateSaveConfig {
		saved := &config.Config{
			SchemaPath:   opts.schemaPath,
			OutputPath:   opts.outputDir,
			TemplatesDir: opts.templatesDir,
			OnConflict:   string(opts.policy),
			Workers:      opts.workers,
		}
		if err := config.SaveConfig(saved); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		ui.PrintInfo("Saved settings as defaults for future runs")
	}

	if generateWatch {
		return runGenerateWatch(opts)
	}

	ui.PrintHeader("QuickForm", "Generate Project")
	return runPipeline(opts, true)
}

// runPipeline executes one schema-to-disk generation run.
func runPipeline(opts generateOptions, verbose bool) error {
	spinner, _ := ui.PrintSpinner("Parsing schema...")

	s, err := loadValidatedSchema(opts.schemaPath)
	if err != nil {
		spinner.Stop()
		return err
	}

	spinner.UpdateText("Rendering templates...")

	gen := generator.New(s).
		WithResolver(generator.NewResolver(opts.templatesDir)).
		WithWorkers(opts.workers)
	result := gen.Run(context.Background())

	if len(result.Failures) > 0 {
		spinner.Stop()
		ui.PrintError("Generation failed:")
		for _, f := range result.Failures {
			fmt.Fprintf(os.Stderr, "  %s\n", f.String())
		}
		return result.Err()
	}

	spinner.UpdateText("Writing project...")

	writer := output.NewWriter(opts.outputDir, opts.policy)
	report, err := output.CommitRun(result, writer)
	if err != nil {
		spinner.Stop()
		return err
	}

	spinner.Stop()

	absPath, _ := filepath.Abs(opts.outputDir)
	ui.PrintSuccess("Generated %s at %s", s.Config.ProjectName, absPath)

	if !verbose {
		return nil
	}

	fmt.Println()
	info := pterm.Info.WithPrefix(pterm.Prefix{
		Text:  "INFO",
		Style: pterm.NewStyle(pterm.FgBlue),
	})
	info.Println(fmt.Sprintf("Schema: %s", opts.schemaPath))
	info.Println(fmt.Sprintf("Models: %d", len(s.Models)))
	info.Println(fmt.Sprintf("Files: %d written, %d merged, %d skipped",
		len(report.Written), len(report.Merged), len(report.Skipped)))
	fmt.Println()

	ui.PrintSection("Next Steps")
	ui.PrintList([]string{
		fmt.Sprintf("cd %s", opts.outputDir),
		"npm install",
		"npm run dev",
	})

	return nil
}

func runGenerateWatch(opts generateOptions) error {
	ui.PrintHeader("QuickForm", "Watch Mode")

	if _, err := os.Stat(opts.schemaPath); os.IsNotExist(err) {
		return fmt.Errorf("schema file not found: %s", opts.schemaPath)
	}

	regenerate := func() error {
		ui.PrintInfo("Change detected, regenerating...")
		// Validation errors in watch mode are reported but keep the
		// watcher alive so the next save can fix them.
		if err := runPipeline(opts, false); err != nil {
			ui.PrintError("%v", err)
		}
		return nil
	}

	if err := runPipeline(opts, false); err != nil {
		ui.PrintError("%v", err)
	}

	watcher, err := watch.NewWatcher(opts.schemaPath, opts.templatesDir, regenerate)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	ui.PrintSuccess("Watching %s for changes... (Press Ctrl+C to stop)", opts.schemaPath)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	ui.PrintInfo("\nStopping watch mode...")
	return nil
}
