// Package main provides the CLI entry point for excelir.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/mkravets/excelir/pkg/excelir"
	"github.com/mkravets/excelir/pkg/excelir/builder"
	"github.com/mkravets/excelir/pkg/excelir/ir"
	"github.com/mkravets/excelir/pkg/excelir/output"
)

var (
	outputPath string
	pretty     bool
	asDocument bool
	author     string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "excelir",
		Short: "Analyze Excel workbooks into IR and rebuild them from it",
		Long: `excelir extracts the structure, data, formulas, styles, charts and
merged ranges of an xlsx workbook into a normalized JSON representation,
and reconstructs a workbook from a previously exported document.`,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [input.xlsx]",
		Short: "Extract a workbook into its intermediate representation",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	analyzeCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	analyzeCmd.Flags().BoolVar(&asDocument, "document", false, "Emit the export handoff document instead of the raw IR")
	analyzeCmd.Flags().StringVar(&author, "author", "", "Author recorded in the workbook metadata")

	exportCmd := &cobra.Command{
		Use:   "export [input.json] [output.xlsx]",
		Short: "Reconstruct a workbook from an exported document",
		Args:  cobra.ExactArgs(2),
		RunE:  runExport,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(analyzeCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func encodeIR(wb *ir.Workbook, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(wb, "", "  ")
	}
	return json.Marshal(wb)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	log, flush, err := excelir.SetupLogger("excelir", level, verbose)
	if err != nil {
		return fmt.Errorf("logger setup failed: %w", err)
	}
	defer flush()

	wb, report, err := excelir.Analyze(inputPath, excelir.Options{Author: author, Logger: log})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	var jsonData []byte
	if asDocument {
		jsonData, err = output.Encode(output.FromWorkbook(wb), pretty)
	} else {
		jsonData, err = encodeIR(wb, pretty)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		fmt.Println(string(jsonData))
	}

	for _, sheet := range wb.Sheets {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d rows, %d formulas, %d styled ranges, %d charts, %d merges\n",
			sheet.Name, len(sheet.Rows), len(sheet.Formulas),
			len(sheet.StyledRanges), len(sheet.Charts), len(sheet.Merges))
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Analyzed %s (%d sheets, %s)\n", inputPath, len(wb.Sheets), report)
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	inputPath, targetPath := args[0], args[1]

	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	log, flush, err := excelir.SetupLogger("excelir", level, verbose)
	if err != nil {
		return fmt.Errorf("logger setup failed: %w", err)
	}
	defer flush()

	doc, err := output.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read export document: %w", err)
	}

	report, err := builder.Write(doc, targetPath, log)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("Exported %s (%d sheets, %s)\n", targetPath, len(doc.Sheets), report)
	return nil
}
