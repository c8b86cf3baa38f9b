package secondary

// StoreLocker exposes the store-level operations the backup flow needs:
// a write-exclusive window for copying the live file, and wholesale
// replacement for restore. Implemented by the sqlite store handle.
type StoreLocker interface {
	// WithExclusive runs fn while holding a write-exclusive transaction
	// on the store, so the file at dbPath is quiescent for the duration.
	WithExclusive(fn func(dbPath string) error) error

	// Replace closes the store, swaps its file for srcPath's content,
	// and reopens it.
	Replace(srcPath string) error

	// Path returns the store's file path.
	Path() string
}

// BackupArchive defines the secondary port for the backup directory on
// the filesystem.
type BackupArchive interface {
	// Write copies the database file at srcPath into the archive under
	// a timestamped name and returns that name and the size in KB.
	Write(srcPath string) (name string, sizeKo float64, err error)

	// Resolve returns the absolute path of an archived file.
	Resolve(name string) (string, error)

	// Exists reports whether an archived file is present.
	Exists(name string) bool

	// Remove deletes an archived file.
	Remove(name string) error
}
