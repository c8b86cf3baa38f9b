package app

import (
	"context"

	"github.com/example/budgetctl/internal/core/fault"
	"github.com/example/budgetctl/internal/ports/primary"
	"github.com/example/budgetctl/internal/ports/secondary"
)

// BackupServiceImpl implements the BackupService interface. Backups
// copy the live database under a write-exclusive window; restores swap
// the file wholesale after archiving the current one.
type BackupServiceImpl struct {
	sauvegardeRepo secondary.SauvegardeRepository
	store          secondary.StoreLocker
	archive        secondary.BackupArchive
}

// NewBackupService creates a new BackupService with injected dependencies.
func NewBackupService(
	sauvegardeRepo secondary.SauvegardeRepository,
	store secondary.StoreLocker,
	archive secondary.BackupArchive,
) *BackupServiceImpl {
	return &BackupServiceImpl{
		sauvegardeRepo: sauvegardeRepo,
		store:          store,
		archive:        archive,
	}
}

// CreateBackup copies the database into the backup directory under a
// timestamped name and records the event.
func (s *BackupServiceImpl) CreateBackup(ctx context.Context, commentaire string) (*primary.Sauvegarde, error) {
	var name string
	var sizeKo float64

	err := s.store.WithExclusive(func(dbPath string) error {
		var werr error
		name, sizeKo, werr = s.archive.Write(dbPath)
		return werr
	})
	if err != nil {
		return nil, err
	}

	chemin, err := s.archive.Resolve(name)
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to resolve backup path")
	}

	id, err := s.sauvegardeRepo.Create(ctx, &secondary.SauvegardeRecord{
		NomFichier:  name,
		Chemin:      chemin,
		TailleKo:    sizeKo,
		Commentaire: commentaire,
	})
	if err != nil {
		return nil, err
	}

	record, err := s.sauvegardeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return recordToSauvegarde(record), nil
}

// ListBackups lists recorded backups, newest first. Records whose file
// has disappeared are still listed; Restore refuses them.
func (s *BackupServiceImpl) ListBackups(ctx context.Context) ([]*primary.Sauvegarde, error) {
	records, err := s.sauvegardeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	sauvegardes := make([]*primary.Sauvegarde, len(records))
	for i, r := range records {
		sauvegardes[i] = recordToSauvegarde(r)
	}
	return sauvegardes, nil
}

// RestoreBackup replaces the live database with a backup's content.
// The current database is archived first as a safety net.
func (s *BackupServiceImpl) RestoreBackup(ctx context.Context, id int64) (*primary.RestoreResult, error) {
	record, err := s.sauvegardeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.archive.Exists(record.NomFichier) {
		return nil, fault.New(fault.KindNotFound, "Le fichier de sauvegarde %s n'existe plus", record.NomFichier)
	}

	var safety string
	err = s.store.WithExclusive(func(dbPath string) error {
		name, _, werr := s.archive.Write(dbPath)
		safety = name
		return werr
	})
	if err != nil {
		return nil, err
	}

	src, err := s.archive.Resolve(record.NomFichier)
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to resolve backup path")
	}
	if err := s.store.Replace(src); err != nil {
		return nil, err
	}

	return &primary.RestoreResult{
		Restored:     recordToSauvegarde(record),
		SafetyBackup: safety,
	}, nil
}

// DeleteBackup removes a backup file and its record.
func (s *BackupServiceImpl) DeleteBackup(ctx context.Context, id int64) error {
	record, err := s.sauvegardeRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if s.archive.Exists(record.NomFichier) {
		if err := s.archive.Remove(record.NomFichier); err != nil {
			return err
		}
	}

	return s.sauvegardeRepo.Delete(ctx, id)
}

// recordToSauvegarde converts a storage record to the primary port type.
func recordToSauvegarde(r *secondary.SauvegardeRecord) *primary.Sauvegarde {
	return &primary.Sauvegarde{
		ID:             r.ID,
		NomFichier:     r.NomFichier,
		Chemin:         r.Chemin,
		DateSauvegarde: r.DateSauvegarde,
		TailleKo:       r.TailleKo,
		Commentaire:    r.Commentaire,
	}
}
