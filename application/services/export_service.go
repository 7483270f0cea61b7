package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"go.uber.org/zap"

	"fermentlog-backend/application/ports"
	apperrors "fermentlog-backend/pkg/errors"
)

const exportFanOutLimit = 100

// ExportService produces a CSV dump of everything a user owns: batches,
// per-batch events, reminders, and devices. All rows are materialized in
// memory first because the header is the union of every column that appears
// in the data.
type ExportService struct {
	batches   ports.BatchRepository
	events    ports.EventRepository
	reminders ports.ReminderRepository
	devices   ports.DeviceRepository
	logger    *zap.Logger
}

// NewExportService creates an ExportService.
func NewExportService(batches ports.BatchRepository, events ports.EventRepository, reminders ports.ReminderRepository, devices ports.DeviceRepository, logger *zap.Logger) *ExportService {
	return &ExportService{
		batches:   batches,
		events:    events,
		reminders: reminders,
		devices:   devices,
		logger:    logger,
	}
}

// ExportCSV reads all of the user's records and renders them as CSV. The
// first column is recordType; the remaining columns are the sorted union of
// every dotted field path found across all rows. The reads are independent,
// so a write racing the export may appear in some sections and not others.
func (s *ExportService) ExportCSV(ctx context.Context, userID string) ([]byte, error) {
	var rows []map[string]string

	batches, err := s.batches.ListByUser(ctx, userID, exportFanOutLimit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read batches for export")
	}
	for i := range batches {
		row, err := flattenRecord("batch", batches[i])
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)

		events, err := s.events.ListEvents(ctx, batches[i].BatchID, exportFanOutLimit)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to read events for export")
		}
		for j := range events {
			row, err := flattenRecord("event", events[j])
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
	}

	reminders, err := s.reminders.ListReminders(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read reminders for export")
	}
	for i := range reminders {
		row, err := flattenRecord("reminder", reminders[i])
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	devices, err := s.devices.ListDevices(ctx, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read devices for export")
	}
	for i := range devices {
		row, err := flattenRecord("device", devices[i])
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	s.logger.Info("export generated",
		zap.String("userId", userID),
		zap.Int("rows", len(rows)),
	)
	return renderCSV(rows)
}

// flattenRecord serializes the record through its JSON representation and
// flattens nested structures into dotted-path scalar columns. List elements
// are addressed by index (photoKeys.0, photoKeys.1, ...).
func flattenRecord(recordType string, record interface{}) (map[string]string, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to serialize record for export")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var tree map[string]interface{}
	if err := dec.Decode(&tree); err != nil {
		return nil, apperrors.Wrap(err, "failed to decode record for export")
	}

	row := map[string]string{"recordType": recordType}
	flattenInto(row, "", tree)
	return row, nil
}

func flattenInto(row map[string]string, prefix string, value interface{}) {
	switch v := value.(type) {
	case map[string]interface{}:
		for key, child := range v {
			flattenInto(row, joinPath(prefix, key), child)
		}
	case []interface{}:
		for i, child := range v {
			flattenInto(row, joinPath(prefix, strconv.Itoa(i)), child)
		}
	case nil:
		// Absent fields simply contribute no column.
	case json.Number:
		row[prefix] = v.String()
	case bool:
		row[prefix] = strconv.FormatBool(v)
	case string:
		row[prefix] = v
	default:
		row[prefix] = fmt.Sprintf("%v", v)
	}
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// renderCSV writes the header plus one line per row. Fields containing
// commas, quotes, or newlines are quoted per RFC 4180 by the csv writer.
func renderCSV(rows []map[string]string) ([]byte, error) {
	columns := map[string]struct{}{}
	for _, row := range rows {
		for col := range row {
			if col != "recordType" {
				columns[col] = struct{}{}
			}
		}
	}
	header := make([]string, 0, len(columns)+1)
	header = append(header, "recordType")
	rest := make([]string, 0, len(columns))
	for col := range columns {
		rest = append(rest, col)
	}
	sort.Strings(rest)
	header = append(header, rest...)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, apperrors.Wrap(err, "failed to write csv header")
	}
	for _, row := range rows {
		line := make([]string, len(header))
		for i, col := range header {
			line[i] = row[col]
		}
		if err := w.Write(line); err != nil {
			return nil, apperrors.Wrap(err, "failed to write csv row")
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.Wrap(err, "failed to flush csv")
	}
	return buf.Bytes(), nil
}
