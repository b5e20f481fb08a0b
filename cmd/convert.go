package cmd

// The convert command orchestrates the pipeline:
// fetch → extract → convert → render → write.
// It handles flag validation, renderer selection, and single or --all runs.

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/qbformat/core"
	"github.com/gaurav-prasanna/qbformat/core/extract"
	"github.com/gaurav-prasanna/qbformat/core/fetch"
	"github.com/gaurav-prasanna/qbformat/core/output"
	"github.com/gaurav-prasanna/qbformat/core/pipeline"
	"github.com/gaurav-prasanna/qbformat/core/render"
	"github.com/gaurav-prasanna/qbformat/crawl"
)

// Flag variables.
var (
	flagAll        bool
	flagPDF        bool
	flagMarkdown   bool
	flagJSON       bool
	flagEmbeddings bool
	flagModel      string
	flagChunkSize  int
	flagOutputDir  string
	flagStdout     bool
	flagCopy       bool
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

var convertCmd = &cobra.Command{
	Use:   "convert [file|url|-]",
	Short: "Convert a question-bank export into flat quiz records",
	Long: `Convert reads an export (a JSON file, a saved HTML page, a URL or stdin),
reshapes every question item into a flat record and writes it in the
selected output format (JSON by default, Markdown, PDF or Embeddings).

Examples:
  qbformat convert dhaka.json
  qbformat convert dhaka.json --mode ict --markdown --output_dir ./out
  cat dhaka.json | qbformat convert - --stdout --copy
  qbformat convert ./exports --all --pdf
  qbformat convert dhaka.json --embeddings --model nomic-embed-text`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Batch flag.
	convertCmd.Flags().BoolVar(&flagAll, "all", false, "Convert every export under a directory or index page")

	// Output format flags (mutually exclusive).
	convertCmd.Flags().BoolVar(&flagJSON, "json", false, "Output JSON records (default)")
	convertCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output a Markdown review sheet")
	convertCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output a printable PDF")
	convertCmd.Flags().BoolVar(&flagEmbeddings, "embeddings", false, "Output embeddings")

	// Embedding-specific flags.
	convertCmd.Flags().StringVar(&flagModel, "model", "", "Embedding model (required with --embeddings)")
	convertCmd.Flags().IntVar(&flagChunkSize, "chunk_size", 512, "Word chunk size for embeddings")

	// Destination flags.
	convertCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
	convertCmd.Flags().BoolVar(&flagStdout, "stdout", false, "Print the output instead of writing a file")
	convertCmd.Flags().BoolVar(&flagCopy, "copy", false, "Copy the JSON records to the clipboard")
}

func runConvert(cmd *cobra.Command, args []string) error {
	source := fetch.Stdin
	if len(args) == 1 {
		source = args[0]
	}
	applyConfigDefaults(cmd)

	if err := validateFlags(source); err != nil {
		return err
	}

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	taxonomy := cfg.Taxonomy()
	fetcher := fetch.New().WithStdin(cmd.InOrStdin())
	extractor := extract.New()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if flagStdout {
		return runStdout(ctx, cmd.OutOrStdout(), source, taxonomy, fetcher, extractor, renderer)
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	if flagAll {
		return runAll(ctx, cmd.OutOrStdout(), source, taxonomy, fetcher, extractor, renderer, writer)
	}
	return runOnly(ctx, cmd.OutOrStdout(), source, taxonomy, fetcher, extractor, renderer, writer)
}

// applyConfigDefaults fills flags the user did not set from the loaded config.
func applyConfigDefaults(cmd *cobra.Command) {
	flags := cmd.Flags()
	if !flags.Changed("output_dir") {
		flagOutputDir = cfg.OutputDir
	}
	if !flags.Changed("model") {
		flagModel = cfg.Embeddings.Model
	}
	if !flags.Changed("chunk_size") {
		flagChunkSize = cfg.Embeddings.ChunkSize
	}
}

// runOnly processes a single source and writes one output file.
func runOnly(
	ctx context.Context,
	out io.Writer,
	source string,
	taxonomy core.Taxonomy,
	fetcher core.Fetcher,
	extractor core.Extractor,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	data, batch, err := processSource(ctx, source, taxonomy, fetcher, extractor, renderer)
	if err != nil {
		return err
	}
	if err := copyRecords(batch); err != nil {
		return err
	}

	name := fmt.Sprintf("%s %s", taxonomy, batch.SourceLabel)
	path, err := writer.WriteOnly(name, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "✓ Written: %s (%d records)\n", path, len(batch.Records))
	return nil
}

// runStdout processes a single source and prints the rendered output.
func runStdout(
	ctx context.Context,
	out io.Writer,
	source string,
	taxonomy core.Taxonomy,
	fetcher core.Fetcher,
	extractor core.Extractor,
	renderer core.Renderer,
) error {
	data, batch, err := processSource(ctx, source, taxonomy, fetcher, extractor, renderer)
	if err != nil {
		return err
	}
	if err := copyRecords(batch); err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out)
	return err
}

// runAll discovers every export under root and processes each through the pipeline.
func runAll(
	ctx context.Context,
	out io.Writer,
	root string,
	taxonomy core.Taxonomy,
	fetcher core.Fetcher,
	extractor core.Extractor,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	fmt.Fprintf(out, "Discovering exports from %s...\n", root)

	sources, err := crawl.DiscoverAll(ctx, root, fetcher)
	if err != nil {
		return fmt.Errorf("discovering sources: %w", err)
	}

	fmt.Fprintf(out, "Found %d sources to process\n", len(sources))

	var errCount int
	for i, source := range sources {
		fmt.Fprintf(out, "[%d/%d] Processing %s\n", i+1, len(sources), source)

		data, batch, err := processSource(ctx, source, taxonomy, fetcher, extractor, renderer)
		if err != nil {
			fmt.Fprintf(out, "  ✗ Error: %v\n", err)
			logger.Error("conversion failed", zap.String("source", source), zap.Error(err))
			errCount++
			continue
		}

		path, err := writer.WriteAll(source, data, renderer.Extension())
		if err != nil {
			fmt.Fprintf(out, "  ✗ Write error: %v\n", err)
			logger.Error("write failed", zap.String("source", source), zap.Error(err))
			errCount++
			continue
		}
		fmt.Fprintf(out, "  ✓ Written: %s (%d records)\n", path, len(batch.Records))
	}

	if errCount > 0 {
		fmt.Fprintf(out, "\n%d/%d sources failed\n", errCount, len(sources))
	}
	return nil
}

// processSource runs a single source through the full pipeline.
func processSource(
	ctx context.Context,
	source string,
	taxonomy core.Taxonomy,
	fetcher core.Fetcher,
	extractor core.Extractor,
	renderer core.Renderer,
) ([]byte, core.Batch, error) {
	// 1. Fetch
	result, err := fetcher.Fetch(ctx, source)
	if err != nil {
		return nil, core.Batch{}, fmt.Errorf("fetch: %w", err)
	}

	// 2. Extract the JSON payload
	payload, err := extractor.Extract(result.Body)
	if err != nil {
		return nil, core.Batch{}, fmt.Errorf("extract: %w", err)
	}

	// 3. Convert
	res, err := pipeline.ConvertText(payload, taxonomy)
	if err != nil {
		return nil, core.Batch{}, fmt.Errorf("convert %s: %w", source, err)
	}
	logDiagnostics(source, res)

	batch := core.Batch{
		Records:     res.Records,
		SourceLabel: res.SourceLabel,
		Taxonomy:    taxonomy,
		ConvertedAt: time.Now(),
	}

	// 4. Render to output format
	data, err := renderer.Render(batch)
	if err != nil {
		return nil, core.Batch{}, fmt.Errorf("render: %w", err)
	}
	return data, batch, nil
}

func logDiagnostics(source string, res pipeline.Result) {
	for _, d := range res.Unmatched() {
		logger.Warn("chapter not in taxonomy, kept as-is",
			zap.String("source", source),
			zap.Int("item", d.Index),
			zap.String("chapter", d.Chapter))
	}
	for _, d := range res.Diagnostics {
		if len(d.IgnoredTags) > 0 || len(d.OverwrittenTags) > 0 {
			logger.Debug("sub-question tags",
				zap.String("source", source),
				zap.Int("item", d.Index),
				zap.Strings("ignored", d.IgnoredTags),
				zap.Strings("overwritten", d.OverwrittenTags))
		}
	}
	logger.Info("converted",
		zap.String("source", source),
		zap.String("board", res.SourceLabel),
		zap.Int("records", len(res.Records)))
}

// copyRecords puts the JSON records on the clipboard when --copy is set.
func copyRecords(batch core.Batch) error {
	if !flagCopy {
		return nil
	}
	data, err := render.MarshalRecords(batch.Records)
	if err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	if err := writeClipboard(string(data)); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	logger.Info("copied records to clipboard", zap.Int("records", len(batch.Records)))
	return nil
}

// validateFlags checks that at most one output format is chosen and that
// the destination flags fit the source.
func validateFlags(source string) error {
	// Count output formats.
	formatCount := 0
	for _, set := range []bool{flagPDF, flagMarkdown, flagJSON, flagEmbeddings} {
		if set {
			formatCount++
		}
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}

	if flagAll && source == fetch.Stdin {
		return fmt.Errorf("--all needs a directory or index URL, not stdin")
	}
	if flagAll && (flagStdout || flagCopy) {
		return fmt.Errorf("--stdout and --copy cannot be combined with --all")
	}

	// --model is required with --embeddings.
	if flagEmbeddings && flagModel == "" {
		return fmt.Errorf("--model is required when using --embeddings")
	}
	if flagEmbeddings && flagChunkSize <= 0 {
		return fmt.Errorf("--chunk_size must be positive")
	}
	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() (core.Renderer, error) {
	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(cfg.PDF.FontPath), nil
	case flagEmbeddings:
		embedder := render.NewOllamaEmbedder(cfg.Embeddings.URL)
		return render.NewEmbeddingsRenderer(embedder, flagModel, flagChunkSize), nil
	default:
		return render.NewJSONRenderer(), nil
	}
}
