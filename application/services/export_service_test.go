package services

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newExportFixture(t *testing.T) (*BatchService, *EventService, *DeviceService, *ExportService) {
	t.Helper()
	batches := newMemBatchRepo()
	events := newMemEventRepo()
	reminders := newMemReminderRepo()
	devices := newMemDeviceRepo()
	logger := zap.NewNop()
	return NewBatchService(batches, &fakeObjectStore{}, logger),
		NewEventService(batches, events, logger),
		NewDeviceService(devices, logger),
		NewExportService(batches, events, reminders, devices, logger)
}

func TestExportEmptyUserYieldsHeaderOnly(t *testing.T) {
	_, _, _, export := newExportFixture(t)

	out, err := export.ExportCSV(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "recordType\n", string(out))
}

func TestExportQuotesCommasInFields(t *testing.T) {
	batchSvc, _, _, export := newExportFixture(t)
	ctx := context.Background()

	_, err := batchSvc.CreateBatch(ctx, "user-1", CreateBatchInput{
		Name:           "Hot, hot sauce",
		Stage:          "primary",
		StartDate:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		TargetDuration: 72,
	})
	require.NoError(t, err)

	out, err := export.ExportCSV(ctx, "user-1")
	require.NoError(t, err)
	assert.Contains(t, string(out), `"Hot, hot sauce"`)

	// The output must still parse into aligned records.
	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	header, row := records[0], records[1]
	require.Equal(t, len(header), len(row))
	assert.Equal(t, "recordType", header[0])
	assert.Equal(t, "batch", row[0])

	nameIdx := -1
	for i, col := range header {
		if col == "name" {
			nameIdx = i
		}
	}
	require.NotEqual(t, -1, nameIdx)
	assert.Equal(t, "Hot, hot sauce", row[nameIdx])
}

func TestExportCoversAllRecordTypes(t *testing.T) {
	batchSvc, eventSvc, deviceSvc, export := newExportFixture(t)
	ctx := context.Background()

	batch, err := batchSvc.CreateBatch(ctx, "user-1", CreateBatchInput{
		Name:           "Sauerkraut",
		Stage:          "primary",
		StartDate:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		TargetDuration: 168,
	})
	require.NoError(t, err)
	_, err = batchSvc.AddPhotoToBatch(ctx, "user-1", batch.BatchID, "photos/user-1/x/crock.jpg")
	require.NoError(t, err)

	at := time.Date(2026, 8, 2, 8, 0, 0, 0, time.UTC)
	_, err = eventSvc.CreateEvent(ctx, "user-1", batch.BatchID, CreateEventInput{Kind: "burp", Timestamp: &at})
	require.NoError(t, err)

	_, err = deviceSvc.RegisterDevice(ctx, "user-1", RegisterDeviceInput{
		DeviceID: "phone-1", Platform: "ios", PushToken: "tok",
	})
	require.NoError(t, err)

	out, err := export.ExportCSV(ctx, "user-1")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + batch + event + device

	types := []string{records[1][0], records[2][0], records[3][0]}
	assert.Equal(t, []string{"batch", "event", "device"}, types)

	// Nested list fields flatten to indexed dotted paths.
	assert.Contains(t, records[0], "photoKeys.0")
	// Another user's export sees none of it.
	other, err := export.ExportCSV(ctx, "user-2")
	require.NoError(t, err)
	assert.Equal(t, "recordType\n", string(other))
}
