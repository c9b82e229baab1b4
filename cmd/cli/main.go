package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"concilia/adapters/excel"
	"concilia/domain/reconcile"
	"concilia/domain/table"
	"concilia/internal/profile"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "concilia",
		Short: "Concilia reconciles two spreadsheets on a shared key column",
	}

	rootCmd.AddCommand(
		newReconcileCmd(),
		newPreviewCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newReconcileCmd() *cobra.Command {
	var key1, key2, output string

	cmd := &cobra.Command{
		Use:   "reconcile [first-file] [second-file]",
		Short: "Join two spreadsheets on their key columns",
		Long: `Normalize the chosen key column of each file, keep only keys present
in the second file, outer-join the rows and write the combined table.

Example: concilia reconcile cities.xlsx regions.xlsx --key1 City --key2 Town -o dados_completos.xlsx`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			first, err := readFile(args[0])
			if err != nil {
				return err
			}
			second, err := readFile(args[1])
			if err != nil {
				return err
			}

			result, err := reconcile.Run(first, second, key1, key2)
			if err != nil {
				return err
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			defer f.Close()

			if err := excel.WriteTable(f, result, excel.ResultSheet); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			fmt.Printf("Wrote %s: %d rows, %d columns\n", output, len(result.Rows), len(result.Columns))
			return nil
		},
	}

	cmd.Flags().StringVar(&key1, "key1", "", "key column in the first file (required)")
	cmd.Flags().StringVar(&key2, "key2", "", "key column in the second file (required)")
	cmd.Flags().StringVarP(&output, "output", "o", excel.ResultFilename, "output xlsx path")
	cmd.MarkFlagRequired("key1")
	cmd.MarkFlagRequired("key2")

	return cmd
}

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview [file]",
		Short: "Print a per-column profile of a spreadsheet as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readFile(args[0])
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(profile.Analyze(t))
		},
	}
}

func readFile(path string) (*table.Table, error) {
	reader, err := excel.NewDataReader(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return reader.ReadData(f)
}
