package main

import (
	"errors"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"

	"github.com/samuelpedrajas/csv2yt2mp3/internal/history"
)

func showHistory(c *cli.Context) error {
	settings, err := loadSettings(c)
	if err != nil {
		return err
	}
	if settings.HistoryDB == "" {
		return errors.New("no history database configured (use --history-db or history_db)")
	}

	store, err := history.Open(settings.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(c.Context, c.Int("limit"))
	if err != nil {
		return err
	}

	renderHistory(os.Stdout, entries)
	return nil
}

func renderHistory(w io.Writer, entries []history.Entry) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Time", "Status", "Reason", "Artist", "Album", "Song", "URL"})
	table.SetRowLine(false)
	table.SetAutoWrapText(false)

	for _, e := range entries {
		table.Append([]string{
			e.At.Local().Format("2006-01-02 15:04:05"),
			e.Status,
			e.Reason,
			e.Artist,
			e.Album,
			e.Song,
			e.URL,
		})
	}
	table.Render()
}
