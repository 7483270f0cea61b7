// Package keys is the single source of truth for the composite key shapes of
// the single-table design. Every accessor and service builds keys here;
// nothing constructs key strings inline.
package keys

// Attribute names of the table's key schema.
const (
	AttrPK     = "PK"
	AttrSK     = "SK"
	AttrGSI1PK = "GSI1PK"
	AttrGSI1SK = "GSI1SK"
)

// Key prefixes.
const (
	PrefixUser     = "USER#"
	PrefixBatch    = "BATCH#"
	PrefixEvent    = "EVENT#"
	PrefixReminder = "REMINDER#"
	PrefixDevice   = "DEVICE#"
)

// UserKey returns the primary key of a user record.
func UserKey(userID string) (pk, sk string) {
	return PrefixUser + userID, PrefixUser + userID
}

// BatchKey returns the primary key of a batch record.
func BatchKey(userID, batchID string) (pk, sk string) {
	return PrefixUser + userID, PrefixBatch + batchID
}

// BatchGSI1 returns the secondary-index key of a batch record, enabling
// lookup by batch id without knowing the owner.
func BatchGSI1(batchID, userID string) (gsi1pk, gsi1sk string) {
	return PrefixBatch + batchID, PrefixUser + userID
}

// EventKey returns the primary key of an event record. The sort key embeds
// the RFC 3339 timestamp, so a partition scan is chronological.
func EventKey(batchID, timestamp string) (pk, sk string) {
	return PrefixBatch + batchID, PrefixEvent + timestamp
}

// ReminderKey returns the primary key of a reminder record.
func ReminderKey(userID, reminderID string) (pk, sk string) {
	return PrefixUser + userID, PrefixReminder + reminderID
}

// DeviceKey returns the primary key of a device record.
func DeviceKey(userID, deviceID string) (pk, sk string) {
	return PrefixUser + userID, PrefixDevice + deviceID
}
