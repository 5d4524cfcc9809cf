package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/gencv/internal/config"
	"github.com/jonathan/gencv/internal/pipeline"
)

var mkresCommand = &cobra.Command{
	Use:   "mkres <template> [description]",
	Short: "Generate a resume for a job description",
	Long: `Generates a resume end to end: the job description is summarised into a search
query, every bullet of the content file is scored against it, the best bullets are
selected under the template's slot quotas and line budget, and the filled template
is written as .tex or compiled to PDF.

The description is the second argument, or comes from --desc-file or --job-url.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runMkres,
}

var (
	mkresJob      jobFlags
	mkresOutName  string
	mkresOutDir   string
	mkresOutput   string
	mkresProxyDir string
	mkresCompiler string
)

func init() {
	mkresJob.register(mkresCommand)
	mkresCommand.Flags().StringVar(&mkresOutName, "outname", "", "Output file name without extension (default <template>_<timestamp>)")
	mkresCommand.Flags().StringVar(&mkresOutDir, "outdir", "", "Output directory")
	mkresCommand.Flags().StringVar(&mkresOutput, "output", "", "Output mode: pdf, tex or all")
	mkresCommand.Flags().StringVar(&mkresProxyDir, "proxy-dir", "", "Empty scratch directory used to compile pdf output")
	mkresCommand.Flags().StringVar(&mkresCompiler, "compiler", "", "LaTeX compiler (default pdflatex)")

	rootCmd.AddCommand(mkresCommand)
}

func runMkres(cmd *cobra.Command, args []string) error {
	settings := cfg
	flags := cmd.Flags()
	if flags.Changed("outdir") {
		settings.OutputDir = config.ExpandHome(mkresOutDir)
	}
	if flags.Changed("output") {
		settings.Output = mkresOutput
	}
	if flags.Changed("proxy-dir") {
		settings.ProxyDir = config.ExpandHome(mkresProxyDir)
	}
	if flags.Changed("compiler") {
		settings.Compiler = mkresCompiler
	}

	opts, err := mkresJob.options(cmd, args, settings)
	if err != nil {
		return err
	}
	opts.OutName = mkresOutName
	if settings.Verbose {
		opts.Printer = printer(cmd)
	}

	res, err := pipeline.Run(context.Background(), opts)
	if err != nil {
		return err
	}
	if !settings.Verbose {
		path := res.Output.PDFPath
		if path == "" {
			path = res.Output.TexPath
		}
		printer(cmd).PrintSuccess("Resume written to %s", path)
	}
	return nil
}
