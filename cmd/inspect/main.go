package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/init-pkg/sheet-loader/domain/app"
	excel_parser_service "github.com/init-pkg/sheet-loader/internal/app/excel-parser/service"
)

// inspect prints what the importer would extract from a workbook, without
// touching any database.
//
// Usage: inspect [-sheet name] [-no-header] file.xlsx...
func main() {
	sheet := flag.String("sheet", "", "worksheet name (first worksheet when empty)")
	noHeader := flag.Bool("no-header", false, "treat row 1 as data")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	parser := excel_parser_service.New(log)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	failed := false
	for _, path := range flag.Args() {
		content, err := os.ReadFile(path)
		if err != nil {
			log.Error("cannot read file", "file", path, "error", err)
			failed = true
			continue
		}

		res, err := parser.Parse(context.Background(), content, app.ParseExcelOptions{
			Sheet:       *sheet,
			NoHeaderRow: *noHeader,
		})
		if err != nil {
			log.Error("cannot parse file", "file", path, "error", err)
			failed = true
			continue
		}

		if err := enc.Encode(map[string]any{
			"file":       path,
			"sheet":      res.Sheet,
			"columns":    res.Columns,
			"total_rows": res.TotalRows,
			"blank_rows": res.BlankRows,
			"records":    res.Records,
		}); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if failed {
		os.Exit(1)
	}
}
