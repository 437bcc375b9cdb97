package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ougirez/coviddash/internal/domain"
	"github.com/ougirez/coviddash/internal/pkg/constants"
	"github.com/ougirez/coviddash/internal/pkg/logger"
)

const (
	columnISOCode  = "iso_code"
	columnLocation = "location"
	columnDate     = "date"
)

// Service parses raw source bytes into a domain.Dataset.
type Service struct{}

func NewDatasetService() *Service {
	return &Service{}
}

// Load parses the csv bytes. A missing required column fails the whole
// load; a row with an unparseable date is dropped and counted; an
// unparseable metric cell becomes a missing value for that metric only.
func (s *Service) Load(ctx context.Context, raw []byte) (*domain.Dataset, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %s: %w", err, constants.ErrSchema)
	}

	columns, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	byLocation := make(map[string][]*domain.Record)
	dropped := 0
	for {
		row, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			// malformed line, the reader continues on the next one
			dropped++
			continue
		}

		record, ok := parseRow(row, columns)
		if !ok {
			dropped++
			continue
		}

		byLocation[record.Location] = append(byLocation[record.Location], record)
	}

	if dropped > 0 {
		logger.Warnf(ctx, "dropped %d source rows with unparseable dates or malformed lines", dropped)
	}

	ds := domain.NewDataset(byLocation, dropped)
	logger.Infof(ctx, "loaded dataset: %d locations", ds.Len())
	return ds, nil
}

func columnIndex(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		columns[strings.TrimSpace(name)] = i
	}

	var missing []string
	required := []string{columnISOCode, columnLocation, columnDate}
	for _, metric := range domain.TrackedMetrics() {
		required = append(required, string(metric))
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns %s: %w", strings.Join(missing, ", "), constants.ErrSchema)
	}

	return columns, nil
}

func parseRow(row []string, columns map[string]int) (*domain.Record, bool) {
	date, ok := cell(row, columns[columnDate])
	if !ok {
		return nil, false
	}

	day, err := domain.ParseDay(date)
	if err != nil {
		return nil, false
	}

	record := &domain.Record{Date: day}
	record.ISOCode, _ = cell(row, columns[columnISOCode])
	record.Location, _ = cell(row, columns[columnLocation])
	if record.Location == "" {
		return nil, false
	}

	for _, metric := range domain.TrackedMetrics() {
		value, ok := cell(row, columns[string(metric)])
		if !ok {
			continue
		}
		record.SetMetric(metric, parseMetric(value))
	}

	return record, true
}

func cell(row []string, index int) (string, bool) {
	if index < 0 || index >= len(row) {
		return "", false
	}
	return strings.TrimSpace(row[index]), true
}

// parseMetric maps the empty string and unparseable numbers to missing.
func parseMetric(value string) domain.Metric {
	if value == "" {
		return domain.Metric{}
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return domain.Metric{}
	}

	return domain.SomeMetric(v)
}
