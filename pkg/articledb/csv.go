package articledb

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
)

// csvColumns is the header expected from labeled article exports.
var csvColumns = []string{"title", "authors", "publish_date", "url", "text", "tags", "label"}

// StreamCSV streams labeled articles from a CSV export through out,
// skipping malformed records. Close the returned done channel to stop
// early; out is closed when the file is exhausted.
func StreamCSV(path string, out chan<- Article) (done chan struct{}, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}

	reader := csv.NewReader(bufio.NewReader(file))
	reader.FieldsPerRecord = len(csvColumns)

	header, err := reader.Read()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, want := range csvColumns {
		if header[i] != want {
			file.Close()
			return nil, fmt.Errorf("csv column %d: got %q, want %q", i, header[i], want)
		}
	}

	done = make(chan struct{})
	go func() {
		defer file.Close()
		defer close(out)
		for {
			select {
			case <-done:
				return
			default:
				rec, err := reader.Read()
				if errors.Is(err, io.EOF) {
					return
				}
				if err != nil {
					slog.Warn("skipping csv record", "err", err)
					continue
				}
				label, err := strconv.Atoi(rec[6])
				if err != nil {
					slog.Warn("skipping csv record: bad label", "label", rec[6])
					continue
				}
				out <- Article{
					Title:       rec[0],
					Authors:     rec[1],
					PublishDate: rec[2],
					URL:         rec[3],
					Text:        rec[4],
					Tags:        rec[5],
					Label:       label,
				}
			}
		}
	}()
	return done, nil
}
