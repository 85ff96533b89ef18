package ioutils

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samuelpedrajas/csv2yt2mp3/internal/model"
)

// ErrInvalidCSVPath is returned when the input path is missing or is not
// a .csv file.
var ErrInvalidCSVPath = errors.New("incorrect file")

// Recognized header names. Matching ignores case and surrounding spaces.
var (
	artistColumns = []string{"artist_name"}
	albumColumns  = []string{"album", "album_name"}
	songColumns   = []string{"song_name"}
)

// ValidateCSVPath checks that path ends in .csv and exists.
func ValidateCSVPath(path string) error {
	if !strings.HasSuffix(path, ".csv") {
		return fmt.Errorf("%w: %s is not a .csv file", ErrInvalidCSVPath, path)
	}
	if !FileExists(path) {
		return fmt.Errorf("%w: %s does not exist", ErrInvalidCSVPath, path)
	}
	return nil
}

// OpenSongRecords validates path and reads every record from it.
func OpenSongRecords(path string) ([]model.SongRecord, error) {
	if err := ValidateCSVPath(path); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer file.Close()

	return ReadSongRecords(file)
}

// ReadSongRecords reads a header row followed by one record per row.
//
// The header must name an artist_name, an album (or album_name) and a
// song_name column; other columns are ignored. Rows shorter than the
// header yield empty fields.
func ReadSongRecords(r io.Reader) ([]model.SongRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("CSV file is empty")
		}
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	artistIdx := columnIndex(header, artistColumns)
	albumIdx := columnIndex(header, albumColumns)
	songIdx := columnIndex(header, songColumns)

	var missing []string
	if artistIdx < 0 {
		missing = append(missing, "artist_name")
	}
	if albumIdx < 0 {
		missing = append(missing, "album")
	}
	if songIdx < 0 {
		missing = append(missing, "song_name")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("CSV header is missing columns: %s", strings.Join(missing, ", "))
	}

	var records []model.SongRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV row %d: %w", len(records)+2, err)
		}

		records = append(records, model.SongRecord{
			Artist: field(row, artistIdx),
			Album:  field(row, albumIdx),
			Song:   field(row, songIdx),
		})
	}

	return records, nil
}

// columnIndex returns the index of the first header matching any name, or -1.
func columnIndex(header []string, names []string) int {
	for _, name := range names {
		for i, col := range header {
			col = strings.TrimPrefix(col, "\ufeff")
			if strings.EqualFold(strings.TrimSpace(col), name) {
				return i
			}
		}
	}
	return -1
}

func field(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
