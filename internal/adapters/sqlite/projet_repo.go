package sqlite

import (
	"context"
	"database/sql"

	"github.com/example/budgetctl/internal/core/fault"
	"github.com/example/budgetctl/internal/ports/secondary"
)

// ProjetRepository implements secondary.ProjetRepository with SQLite.
type ProjetRepository struct {
	conn Conn
}

// NewProjetRepository creates a new SQLite project repository.
func NewProjetRepository(conn Conn) *ProjetRepository {
	return &ProjetRepository{conn: conn}
}

func (r *ProjetRepository) db() *sql.DB {
	return r.conn.DB()
}

const projetSelectCols = "id, nom_projet, client_id, fap_redigee, porteur_projet, service_demandeur, date_debut, date_fin_estimee, date_mise_service, remarques, statut"

// scanProjet scans a project row into a ProjetRecord.
func scanProjet(scanner interface {
	Scan(dest ...any) error
}) (*secondary.ProjetRecord, error) {
	var (
		clientID        sql.NullInt64
		porteur         sql.NullString
		service         sql.NullString
		dateDebut       sql.NullString
		dateFinEstimee  sql.NullString
		dateMiseService sql.NullString
		remarques       sql.NullString
	)

	record := &secondary.ProjetRecord{}
	err := scanner.Scan(
		&record.ID, &record.Nom, &clientID, &record.FAPRedigee, &porteur,
		&service, &dateDebut, &dateFinEstimee, &dateMiseService,
		&remarques, &record.Statut,
	)
	if err != nil {
		return nil, err
	}

	record.ClientID = clientID.Int64
	record.PorteurProjet = porteur.String
	record.ServiceDemandeur = service.String
	record.DateDebut = dateDebut.String
	record.DateFinEstimee = dateFinEstimee.String
	record.DateMiseService = dateMiseService.String
	record.Remarques = remarques.String
	return record, nil
}

// Create persists a new project and returns its id.
func (r *ProjetRepository) Create(ctx context.Context, projet *secondary.ProjetRecord) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		`INSERT INTO projets (nom_projet, client_id, fap_redigee, porteur_projet, service_demandeur,
		 date_debut, date_fin_estimee, remarques, statut) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		projet.Nom, nullID(projet.ClientID), projet.FAPRedigee,
		nullString(projet.PorteurProjet), nullString(projet.ServiceDemandeur),
		nullString(projet.DateDebut), nullString(projet.DateFinEstimee),
		nullString(projet.Remarques), projet.Statut,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fault.New(fault.KindDuplicate, "Un projet nommé %q existe déjà", projet.Nom)
		}
		if isForeignKeyViolation(err) {
			return 0, fault.New(fault.KindNotFound, "Client %d introuvable", projet.ClientID)
		}
		return 0, fault.Wrap(fault.KindStorage, err, "failed to create projet")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fault.Wrap(fault.KindStorage, err, "failed to read projet id")
	}
	return id, nil
}

// GetByID retrieves a project by its id.
func (r *ProjetRepository) GetByID(ctx context.Context, id int64) (*secondary.ProjetRecord, error) {
	row := r.db().QueryRowContext(ctx,
		"SELECT "+projetSelectCols+" FROM projets WHERE id = ?", id)

	record, err := scanProjet(row)
	if err == sql.ErrNoRows {
		return nil, fault.New(fault.KindNotFound, "Projet %d introuvable", id)
	}
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to get projet")
	}
	return record, nil
}

// GetByNom retrieves a project by its unique name, nil if absent.
func (r *ProjetRepository) GetByNom(ctx context.Context, nom string) (*secondary.ProjetRecord, error) {
	row := r.db().QueryRowContext(ctx,
		"SELECT "+projetSelectCols+" FROM projets WHERE nom_projet = ?", nom)

	record, err := scanProjet(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to get projet by nom")
	}
	return record, nil
}

// List retrieves projects matching the filters, ordered by name.
func (r *ProjetRepository) List(ctx context.Context, filters secondary.ProjetFilters) ([]*secondary.ProjetRecord, error) {
	query := "SELECT " + projetSelectCols + " FROM projets WHERE 1=1"
	args := []any{}

	if filters.Statut != "" {
		query += " AND statut = ?"
		args = append(args, filters.Statut)
	}

	if filters.ClientID != 0 {
		query += " AND client_id = ?"
		args = append(args, filters.ClientID)
	}

	query += " ORDER BY nom_projet COLLATE NOCASE ASC"

	rows, err := r.db().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to list projets")
	}
	defer rows.Close()

	var projets []*secondary.ProjetRecord
	for rows.Next() {
		record, err := scanProjet(rows)
		if err != nil {
			return nil, fault.Wrap(fault.KindStorage, err, "failed to scan projet")
		}
		projets = append(projets, record)
	}

	return projets, rows.Err()
}

// Update updates an existing project.
func (r *ProjetRepository) Update(ctx context.Context, projet *secondary.ProjetRecord) error {
	res, err := r.db().ExecContext(ctx,
		`UPDATE projets
		 SET nom_projet = ?, client_id = ?, fap_redigee = ?, porteur_projet = ?,
		     service_demandeur = ?, date_debut = ?, date_fin_estimee = ?,
		     date_mise_service = ?, remarques = ?, statut = ?
		 WHERE id = ?`,
		projet.Nom, nullID(projet.ClientID), projet.FAPRedigee,
		nullString(projet.PorteurProjet), nullString(projet.ServiceDemandeur),
		nullString(projet.DateDebut), nullString(projet.DateFinEstimee),
		nullString(projet.DateMiseService), nullString(projet.Remarques),
		projet.Statut, projet.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fault.New(fault.KindDuplicate, "Un projet nommé %q existe déjà", projet.Nom)
		}
		if isForeignKeyViolation(err) {
			return fault.New(fault.KindNotFound, "Client %d introuvable", projet.ClientID)
		}
		return fault.Wrap(fault.KindStorage, err, "failed to update projet")
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fault.New(fault.KindNotFound, "Projet %d introuvable", projet.ID)
	}
	return nil
}

// Delete removes a project; investments and sourcing contacts cascade.
func (r *ProjetRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, "DELETE FROM projets WHERE id = ?", id)
	if err != nil {
		return fault.Wrap(fault.KindStorage, err, "failed to delete projet")
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fault.New(fault.KindNotFound, "Projet %d introuvable", id)
	}
	return nil
}

// ClientExists checks if a client exists.
func (r *ProjetRepository) ClientExists(ctx context.Context, clientID int64) (bool, error) {
	var one int
	err := r.db().QueryRowContext(ctx, "SELECT 1 FROM clients WHERE id = ?", clientID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fault.Wrap(fault.KindStorage, err, "failed to check client")
	}
	return true, nil
}

// ListInvestissements retrieves a project's planned investments.
func (r *ProjetRepository) ListInvestissements(ctx context.Context, projetID int64) ([]*secondary.InvestissementRecord, error) {
	rows, err := r.db().QueryContext(ctx,
		"SELECT id, projet_id, type, description, montant_estime FROM investissements_projets WHERE projet_id = ? ORDER BY id",
		projetID,
	)
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to list investissements")
	}
	defer rows.Close()

	var invs []*secondary.InvestissementRecord
	for rows.Next() {
		var desc sql.NullString
		inv := &secondary.InvestissementRecord{}
		if err := rows.Scan(&inv.ID, &inv.ProjetID, &inv.Type, &desc, &inv.MontantEstime); err != nil {
			return nil, fault.Wrap(fault.KindStorage, err, "failed to scan investissement")
		}
		inv.Description = desc.String
		invs = append(invs, inv)
	}

	return invs, rows.Err()
}

// AddInvestissement persists a new investment and returns its id.
func (r *ProjetRepository) AddInvestissement(ctx context.Context, inv *secondary.InvestissementRecord) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		"INSERT INTO investissements_projets (projet_id, type, description, montant_estime) VALUES (?, ?, ?, ?)",
		inv.ProjetID, inv.Type, nullString(inv.Description), inv.MontantEstime,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fault.New(fault.KindNotFound, "Projet %d introuvable", inv.ProjetID)
		}
		return 0, fault.Wrap(fault.KindStorage, err, "failed to add investissement")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fault.Wrap(fault.KindStorage, err, "failed to read investissement id")
	}
	return id, nil
}

// UpdateInvestissement updates an existing investment.
func (r *ProjetRepository) UpdateInvestissement(ctx context.Context, inv *secondary.InvestissementRecord) error {
	res, err := r.db().ExecContext(ctx,
		"UPDATE investissements_projets SET type = ?, description = ?, montant_estime = ? WHERE id = ?",
		inv.Type, nullString(inv.Description), inv.MontantEstime, inv.ID,
	)
	if err != nil {
		return fault.Wrap(fault.KindStorage, err, "failed to update investissement")
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fault.New(fault.KindNotFound, "Investissement %d introuvable", inv.ID)
	}
	return nil
}

// DeleteInvestissement removes an investment.
func (r *ProjetRepository) DeleteInvestissement(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, "DELETE FROM investissements_projets WHERE id = ?", id)
	if err != nil {
		return fault.Wrap(fault.KindStorage, err, "failed to delete investissement")
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fault.New(fault.KindNotFound, "Investissement %d introuvable", id)
	}
	return nil
}

// TotalInvestissements sums a project's estimated investments.
func (r *ProjetRepository) TotalInvestissements(ctx context.Context, projetID int64) (float64, error) {
	var total float64
	err := r.db().QueryRowContext(ctx,
		"SELECT COALESCE(SUM(montant_estime), 0) FROM investissements_projets WHERE projet_id = ?",
		projetID,
	).Scan(&total)
	if err != nil {
		return 0, fault.Wrap(fault.KindStorage, err, "failed to total investissements")
	}
	return total, nil
}

// ListContactsSourcing retrieves a project's sourcing contacts.
func (r *ProjetRepository) ListContactsSourcing(ctx context.Context, projetID int64) ([]*secondary.ContactSourcingRecord, error) {
	rows, err := r.db().QueryContext(ctx,
		`SELECT id, projet_id, nom, prenom, entreprise, telephone, email, notes
		 FROM contacts_sourcing WHERE projet_id = ? ORDER BY nom COLLATE NOCASE, prenom COLLATE NOCASE`,
		projetID,
	)
	if err != nil {
		return nil, fault.Wrap(fault.KindStorage, err, "failed to list contacts sourcing")
	}
	defer rows.Close()

	var contacts []*secondary.ContactSourcingRecord
	for rows.Next() {
		var entreprise, telephone, email, notes sql.NullString
		contact := &secondary.ContactSourcingRecord{}
		err := rows.Scan(&contact.ID, &contact.ProjetID, &contact.Nom, &contact.Prenom,
			&entreprise, &telephone, &email, &notes)
		if err != nil {
			return nil, fault.Wrap(fault.KindStorage, err, "failed to scan contact sourcing")
		}
		contact.Entreprise = entreprise.String
		contact.Telephone = telephone.String
		contact.Email = email.String
		contact.Notes = notes.String
		contacts = append(contacts, contact)
	}

	return contacts, rows.Err()
}

// AddContactSourcing persists a new sourcing contact and returns its id.
func (r *ProjetRepository) AddContactSourcing(ctx context.Context, contact *secondary.ContactSourcingRecord) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		"INSERT INTO contacts_sourcing (projet_id, nom, prenom, entreprise, telephone, email, notes) VALUES (?, ?, ?, ?, ?, ?, ?)",
		contact.ProjetID, contact.Nom, contact.Prenom, nullString(contact.Entreprise),
		nullString(contact.Telephone), nullString(contact.Email), nullString(contact.Notes),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fault.New(fault.KindNotFound, "Projet %d introuvable", contact.ProjetID)
		}
		return 0, fault.Wrap(fault.KindStorage, err, "failed to add contact sourcing")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fault.Wrap(fault.KindStorage, err, "failed to read contact sourcing id")
	}
	return id, nil
}

// UpdateContactSourcing updates an existing sourcing contact.
func (r *ProjetRepository) UpdateContactSourcing(ctx context.Context, contact *secondary.ContactSourcingRecord) error {
	res, err := r.db().ExecContext(ctx,
		"UPDATE contacts_sourcing SET nom = ?, prenom = ?, entreprise = ?, telephone = ?, email = ?, notes = ? WHERE id = ?",
		contact.Nom, contact.Prenom, nullString(contact.Entreprise),
		nullString(contact.Telephone), nullString(contact.Email),
		nullString(contact.Notes), contact.ID,
	)
	if err != nil {
		return fault.Wrap(fault.KindStorage, err, "failed to update contact sourcing")
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fault.New(fault.KindNotFound, "Contact sourcing %d introuvable", contact.ID)
	}
	return nil
}

// DeleteContactSourcing removes a sourcing contact.
func (r *ProjetRepository) DeleteContactSourcing(ctx context.Context, id int64) error {
	res, err := r.db().ExecContext(ctx, "DELETE FROM contacts_sourcing WHERE id = ?", id)
	if err != nil {
		return fault.Wrap(fault.KindStorage, err, "failed to delete contact sourcing")
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fault.New(fault.KindNotFound, "Contact sourcing %d introuvable", id)
	}
	return nil
}
