package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/stammy5/ampere-docproc/internal/catalog"
	"github.com/stammy5/ampere-docproc/internal/common"
	"github.com/stammy5/ampere-docproc/internal/entity"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	_ = godotenv.Load()

	if len(os.Args) < 2 {
		logger.Error("usage: ratebook list | add <item> <unit> <rate> <category>")
		os.Exit(2)
	}

	cfg := common.LoadConfig()
	rates := catalog.New(cfg.Catalog.CSVPath, logger)
	rates.Load()

	switch os.Args[1] {
	case "list":
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ITEM\tUNIT\tRATE\tCATEGORY")
		for _, e := range rates.All() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Item, e.Unit, e.Rate, e.Category)
		}
		if err := w.Flush(); err != nil {
			logger.Error("write listing", "error", err)
			os.Exit(1)
		}
	case "add":
		if len(os.Args) != 6 {
			logger.Error("usage: ratebook add <item> <unit> <rate> <category>")
			os.Exit(2)
		}
		rates.Add(entity.RateEntry{
			Item:     os.Args[2],
			Unit:     os.Args[3],
			Rate:     os.Args[4],
			Category: os.Args[5],
		})
		if err := rates.Save(); err != nil {
			logger.Error("save rate book", "error", common.UserMessage(err))
			os.Exit(1)
		}
		logger.Info("rate book updated", "path", cfg.Catalog.CSVPath, "entries", rates.Len())
	default:
		logger.Error("unknown command", "command", os.Args[1])
		os.Exit(2)
	}
}
