package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/samuelpedrajas/csv2yt2mp3/internal/config"
	"github.com/samuelpedrajas/csv2yt2mp3/internal/download"
	"github.com/samuelpedrajas/csv2yt2mp3/internal/history"
	ioutils "github.com/samuelpedrajas/csv2yt2mp3/internal/io"
	"github.com/samuelpedrajas/csv2yt2mp3/internal/model"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "\nImport cancelled.")
		} else {
			fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		}
		os.Exit(exitCode(err))
	}
}

// exitCode maps a run error to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "csv2yt2mp3",
		Usage:     "Download the songs listed in a CSV file from YouTube as tagged MP3s.",
		ArgsUsage: "[file.csv]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to a JSON settings file"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "show verbose output"},
			&cli.StringFlag{Name: "output", Usage: "library root (overrides download_dir)"},
			&cli.StringFlag{Name: "work-dir", Usage: "directory yt-dlp writes into (overrides work_dir)"},
			&cli.Float64Flag{Name: "max-minutes", Usage: "reject videos longer than this"},
			&cli.BoolFlag{Name: "include-album", Usage: "add the album to search queries"},
			&cli.BoolFlag{Name: "playlist", Usage: "write a playlist per album directory"},
			&cli.BoolFlag{Name: "cover-art", Usage: "embed the video thumbnail as cover art"},
			&cli.StringFlag{Name: "history-db", Usage: "SQLite file journaling every processed record"},
			&cli.StringFlag{Name: "search-api-key", EnvVars: []string{"YOUTUBE_API_KEY"}, Usage: "search with the YouTube Data API instead of the results page"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				cli.ShowAppHelp(c)
				return ioutils.ErrInvalidCSVPath
			}
			return importFile(c, c.Args().First())
		},
		Commands: []*cli.Command{
			{
				Name:  "import",
				Usage: "Download every song listed in a CSV file",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Required: true, Usage: "CSV with artist_name, album and song_name columns"},
				},
				Action: func(c *cli.Context) error {
					return importFile(c, c.String("file"))
				},
			},
			{
				Name:  "download",
				Usage: "Download a single song",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "artist", Required: true},
					&cli.StringFlag{Name: "album", Required: true},
					&cli.StringFlag{Name: "track", Required: true},
				},
				Action: func(c *cli.Context) error {
					rec := model.SongRecord{
						Artist: c.String("artist"),
						Album:  c.String("album"),
						Song:   c.String("track"),
					}
					return run(c, []model.SongRecord{rec})
				},
			},
			{
				Name:  "history",
				Usage: "Show recently processed songs",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "limit", Value: 20, Usage: "number of entries to show"},
				},
				Action: showHistory,
			},
		},
	}
}

// loadSettings reads --config and applies flag overrides.
func loadSettings(c *cli.Context) (*config.Settings, error) {
	settings := config.DefaultSettings()
	if path := c.String("config"); path != "" {
		var err error
		settings, err = config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if c.IsSet("output") {
		settings.DownloadDir = c.String("output")
	}
	if c.IsSet("work-dir") {
		settings.WorkDir = c.String("work-dir")
	}
	if c.IsSet("max-minutes") {
		settings.MaxMinutes = c.Float64("max-minutes")
	}
	if c.Bool("include-album") {
		settings.QueryIncludeAlbum = true
	}
	if c.Bool("playlist") {
		settings.CreatePlaylist = true
	}
	if c.Bool("cover-art") {
		settings.EmbedCoverArt = true
	}
	if c.IsSet("history-db") {
		settings.HistoryDB = c.String("history-db")
	}
	if key := c.String("search-api-key"); key != "" {
		settings.SearchAPIKey = key
	}

	return settings, settings.Validate()
}

func importFile(c *cli.Context, path string) error {
	records, err := ioutils.OpenSongRecords(path)
	if err != nil {
		return err
	}
	return run(c, records)
}

// run processes records and prints the outcome of each.
func run(c *cli.Context, records []model.SongRecord) error {
	settings, err := loadSettings(c)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink := newPrinter(os.Stdout, c.Bool("verbose"))

	components := download.Components{}
	if settings.HistoryDB != "" {
		store, err := history.Open(settings.HistoryDB)
		if err != nil {
			fmt.Fprintln(os.Stderr, warningStyle.Render("History disabled: "+err.Error()))
		} else {
			defer store.Close()
			components.History = store
		}
	}

	manager, err := download.NewManager(ctx, settings, components, sink)
	if err != nil {
		return err
	}
	if err := manager.Preflight(); err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("♪ csv2yt2mp3"))
	fmt.Println(dimStyle.Render(fmt.Sprintf("%d song(s) → %s", len(records), settings.DownloadDir)))
	fmt.Println()

	summary, err := manager.Import(ctx, records)

	fmt.Println()
	fmt.Println(summaryLine(summary))
	return err
}
