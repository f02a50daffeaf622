package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/siherrmann/linker/core/fieldmap"
	"github.com/siherrmann/linker/core/record"
	"github.com/siherrmann/linker/helper"
)

// BuildFunc builds one entity from a data row
type BuildFunc[T any] func(row []string, fields *fieldmap.FieldMap) (*T, error)

// Result holds the entities of one source in input order
type Result[T any] struct {
	Entities []*T
	Rows     int // data rows read, header excluded
	Rejected int
	Failed   int
}

// OpenCSV opens a comma separated file, skipping a leading UTF-8 BOM.
// Rows may have varying lengths.
func OpenCSV(path string) (*csv.Reader, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	br := stripUTF8BOM(bufio.NewReader(f))

	r := csv.NewReader(br)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r, f.Close, nil
}

func stripUTF8BOM(r *bufio.Reader) *bufio.Reader {
	b, err := r.Peek(3)
	if err == nil && len(b) == 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		_, _ = r.Discard(3)
	}
	return r
}

// IngestFile ingests the file at path. If it cannot be opened the
// failure is logged once and an empty result is returned.
func IngestFile[T any](path string, labels []string, build BuildFunc[T], logger *slog.Logger) *Result[T] {
	if logger == nil {
		logger = slog.Default()
	}

	reader, closeFile, err := OpenCSV(path)
	if err != nil {
		logger.Error("Error opening source", slog.String("path", path), slog.String("error", err.Error()))
		return &Result[T]{Entities: []*T{}}
	}
	defer func() {
		if err := closeFile(); err != nil {
			logger.Warn("Error closing source", slog.String("path", path), slog.String("error", err.Error()))
		}
	}()

	result := Ingest(reader, labels, build, logger.With(slog.String("path", path)))
	logger.Info("Ingested source",
		slog.String("path", path),
		slog.Int("rows", result.Rows),
		slog.Int("entities", len(result.Entities)),
		slog.Int("rejected", result.Rejected),
		slog.Int("failed", result.Failed),
	)

	return result
}

// Ingest reads the header row into a field map and builds every
// following row on its own. Rows failing to build are logged and
// skipped, the remaining rows are still processed.
func Ingest[T any](reader *csv.Reader, labels []string, build BuildFunc[T], logger *slog.Logger) *Result[T] {
	if logger == nil {
		logger = slog.Default()
	}
	result := &Result[T]{Entities: []*T{}}

	header, err := reader.Read()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			logger.Error("Error reading header", slog.String("error", err.Error()))
		}
		return result
	}
	fields := fieldmap.New(header, labels)
	if missing := fields.Missing(labels); len(missing) > 0 {
		logger.Debug("Header misses known columns", slog.Any("labels", missing))
	}

	for rowNumber := 1; ; rowNumber++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var parseErr *csv.ParseError
		if err != nil && !errors.As(err, &parseErr) {
			logger.Error("Error reading source, stopping", slog.Int("row", rowNumber), slog.String("error", err.Error()))
			break
		}
		result.Rows++
		if err != nil {
			result.Failed++
			logger.Error("Error parsing row", slog.Int("row", rowNumber), slog.Int("line", parseErr.Line), slog.String("error", err.Error()))
			continue
		}

		entity, err := buildRow(build, row, fields)
		switch {
		case errors.Is(err, record.ErrRejected):
			result.Rejected++
			logger.Debug("Row rejected", slog.Int("row", rowNumber), slog.String("reason", err.Error()))
		case err != nil:
			result.Failed++
			line, _ := reader.FieldPos(0)
			logger.Error("Error building row", slog.Int("row", rowNumber), slog.Int("line", line), slog.String("error", err.Error()))
		case entity != nil:
			result.Entities = append(result.Entities, entity)
		}
	}

	return result
}

func buildRow[T any](build BuildFunc[T], row []string, fields *fieldmap.FieldMap) (entity *T, err error) {
	defer func() {
		if r := recover(); r != nil {
			entity = nil
			err = helper.NewError("build row", fmt.Errorf("panic: %v", r))
		}
	}()
	return build(row, fields)
}
