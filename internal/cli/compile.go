package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/goqbc/internal/configloader"
	"github.com/yaklabco/goqbc/internal/logging"
	"github.com/yaklabco/goqbc/pkg/compile"
	"github.com/yaklabco/goqbc/pkg/config"
	"github.com/yaklabco/goqbc/pkg/reporter"
	"github.com/yaklabco/goqbc/pkg/runner"
)

// ErrCompileFailed is returned when the document had errors. It carries
// the exit code without printing a duplicate message: the reporter has
// already shown the diagnostics.
var ErrCompileFailed = errors.New("compile failed")

type compileFlags struct {
	output        string
	html          bool
	boostbook     bool
	indent        int
	lineWidth     int
	noPrettyPrint bool
	includePaths  []string
	defines       []string
	msErrors      bool
}

func newCompileCommand() *cobra.Command {
	flags := &compileFlags{}

	cmd := &cobra.Command{
		Use:   "compile INPUT",
		Short: "Compile a quickbook document",
		Long:  compileLongDescription,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, args[0], flags)
		},
	}

	addCompileFlags(cmd, flags)

	return cmd
}

const compileLongDescription = `Compile a quickbook document to BoostBook XML or HTML.

The output path defaults to the input path with its extension replaced
by the format's default (.xml or .html).

Examples:
  goqbc compile doc.qbk                   # BoostBook XML to doc.xml
  goqbc compile doc.qbk --html            # HTML to doc.html
  goqbc compile doc.qbk -o out/doc.xml    # Explicit output path
  goqbc compile doc.qbk -I libs/doc       # Extra include search path
  goqbc compile doc.qbk -D __linux__=1    # Predefine a macro`

func runCompile(cmd *cobra.Command, input string, flags *compileFlags) error {
	logger := logging.Default()

	if flags.html && flags.boostbook {
		return errors.New("--html and --boostbook are mutually exclusive")
	}

	// Map CLI flags onto a config overlay; only explicitly set flags
	// should override the discovered configuration.
	cliCfg := &config.Config{
		IncludePaths: flags.includePaths,
		Defines:      flags.defines,
		MSErrors:     flags.msErrors,
	}
	if flags.html {
		cliCfg.Format = compile.FormatHTML.String()
	}
	if flags.boostbook {
		cliCfg.Format = compile.FormatBoostbook.String()
	}
	if cmd.Flags().Changed("indent") {
		cliCfg.Indent = flags.indent
	}
	if cmd.Flags().Changed("linewidth") {
		cliCfg.LineWidth = flags.lineWidth
	}
	if flags.noPrettyPrint {
		pretty := false
		cliCfg.PrettyPrint = &pretty
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}
	finalCfg := loadResult.Config

	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		debug = false
	}
	if !debug && finalCfg.LogLevel != "" {
		logging.SetLevel(finalCfg.LogLevel)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}

	format, err := compile.ParseFormat(finalCfg.Format)
	if err != nil {
		return err
	}

	runOpts := runner.Options{
		Input:        input,
		Output:       flags.output,
		Format:       format,
		PrettyPrint:  finalCfg.PrettyPrintEnabled(),
		Indent:       finalCfg.Indent,
		LineWidth:    finalCfg.LineWidth,
		IncludePaths: finalCfg.IncludePaths,
		Defines:      finalCfg.Defines,
		Debug:        debug,
	}

	logger.Debug("starting compile",
		logging.FieldInput, runOpts.Input,
		logging.FieldFormat, format.String(),
		logging.FieldIncludePaths, runOpts.IncludePaths,
	)

	result, err := runner.Run(logging.WithLogger(ctx, logger), runOpts)
	if err != nil {
		return errors.Join(errors.New("compile run failed"), err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	style := reporter.StylePlain
	if finalCfg.MSErrors {
		style = reporter.StyleMS
	}
	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.ErrOrStderr(),
		Style:       style,
		Color:       colorMode,
		ShowContext: true,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	logger.Debug("compile finished",
		logging.FieldOutput, result.OutputPath,
		logging.FieldErrors, result.ErrorCount,
		logging.FieldWarnings, result.WarningCount,
		logging.FieldBytes, len(result.Output),
	)

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrCompileFailed
	}
	return nil
}

func addCompileFlags(cmd *cobra.Command, flags *compileFlags) {
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"output file (default: input with format extension)")
	cmd.Flags().BoolVar(&flags.html, "html", false, "generate HTML")
	cmd.Flags().BoolVar(&flags.boostbook, "boostbook", false, "generate BoostBook XML (default)")
	cmd.Flags().IntVar(&flags.indent, "indent", 2, "pretty-print indent width")
	cmd.Flags().IntVar(&flags.lineWidth, "linewidth", 80, "pretty-print maximum line width")
	cmd.Flags().BoolVar(&flags.noPrettyPrint, "no-pretty-print", false,
		"disable the layout pass over the output")
	cmd.Flags().StringSliceVarP(&flags.includePaths, "include-path", "I", nil,
		"directory to search for included files (repeatable)")
	cmd.Flags().StringSliceVarP(&flags.defines, "define", "D", nil,
		"predefine a macro as NAME=VALUE (repeatable)")
	cmd.Flags().BoolVar(&flags.msErrors, "ms-errors", false,
		"use Visual Studio style diagnostic messages")
}
