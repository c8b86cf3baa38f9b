package primary

import "context"

// BackupService defines the primary port for database backup and
// restore.
type BackupService interface {
	// CreateBackup copies the database into the backup directory under
	// a timestamped name and records the event.
	CreateBackup(ctx context.Context, commentaire string) (*Sauvegarde, error)

	// ListBackups lists recorded backups, newest first.
	ListBackups(ctx context.Context) ([]*Sauvegarde, error)

	// RestoreBackup replaces the live database with a backup's content.
	// The current database is itself backed up first.
	RestoreBackup(ctx context.Context, id int64) (*RestoreResult, error)

	// DeleteBackup removes a backup file and its record.
	DeleteBackup(ctx context.Context, id int64) error
}

// Sauvegarde represents a recorded backup in the primary port layer.
type Sauvegarde struct {
	ID             int64
	NomFichier     string
	Chemin         string
	DateSauvegarde string
	TailleKo       float64
	Commentaire    string
}

// RestoreResult captures the outcome of a restore.
type RestoreResult struct {
	Restored     *Sauvegarde
	SafetyBackup string // file written before the restore overwrote the live db
}
