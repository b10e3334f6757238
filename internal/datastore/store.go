package datastore

// Store abstracts the destination for exported post records, either a
// local SQLite file or a remote Datasette instance.
type Store interface {
	// Connect establishes a connection to the data store
	Connect() error

	// CreateTable creates a new table with the given schema if it doesn't exist
	CreateTable(schema string) error

	// BatchInsert upserts multiple records into the specified table
	BatchInsert(database string, table string, records []map[string]any) error

	// Close closes the connection to the data store
	Close() error
}
