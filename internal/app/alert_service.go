package app

import (
	"context"
	"time"

	"github.com/example/budgetctl/internal/core/contrat"
	"github.com/example/budgetctl/internal/ports/primary"
	"github.com/example/budgetctl/internal/ports/secondary"
)

// DepletionRatio is the availability threshold under which a budget is
// reported as depleted.
const DepletionRatio = 0.10

// AlertServiceImpl implements the AlertService interface by composing
// the other repositories into one read-only sweep.
type AlertServiceImpl struct {
	contratRepo secondary.ContratRepository
	clientRepo  secondary.ClientRepository
	budgetRepo  secondary.BudgetRepository
	bcRepo      secondary.BonCommandeRepository
	now         func() time.Time
}

// NewAlertService creates a new AlertService with injected dependencies.
func NewAlertService(
	contratRepo secondary.ContratRepository,
	clientRepo secondary.ClientRepository,
	budgetRepo secondary.BudgetRepository,
	bcRepo secondary.BonCommandeRepository,
) *AlertServiceImpl {
	return &AlertServiceImpl{
		contratRepo: contratRepo,
		clientRepo:  clientRepo,
		budgetRepo:  budgetRepo,
		bcRepo:      bcRepo,
		now:         time.Now,
	}
}

// Alerts gathers everything needing attention: contracts expiring
// within the threshold, depleted budgets for the year, and draft BCs
// waiting for validation.
func (s *AlertServiceImpl) Alerts(ctx context.Context, req primary.AlertRequest) (*primary.AlertReport, error) {
	today := s.now()

	threshold := req.ThresholdMonths
	if threshold <= 0 {
		threshold = contrat.ExpiryWindowMonths
	}
	annee := req.Annee
	if annee == 0 {
		annee = today.Year()
	}

	report := &primary.AlertReport{}

	if err := s.collectContrats(ctx, report, today, threshold); err != nil {
		return nil, err
	}
	if err := s.collectBudgets(ctx, report, annee); err != nil {
		return nil, err
	}
	if err := s.collectPendingBCs(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

func (s *AlertServiceImpl) collectContrats(ctx context.Context, report *primary.AlertReport, today time.Time, thresholdMonths int) error {
	records, err := s.contratRepo.List(ctx, secondary.ContratFilters{})
	if err != nil {
		return err
	}

	for _, r := range records {
		fin, err := parseDate(r.DateFin, "date_fin")
		if err != nil {
			return err
		}
		if !contrat.ExpiresWithin(r.Resilie, fin, today, thresholdMonths) {
			continue
		}

		clientNom := ""
		if client, err := s.clientRepo.GetByID(ctx, r.ClientID); err == nil {
			clientNom = client.Nom
		}

		jours := int(fin.Sub(today.Truncate(24*time.Hour)).Hours() / 24)
		if jours < 0 {
			jours = 0
		}

		report.ContratsExpirants = append(report.ContratsExpirants, &primary.ContratAlert{
			Contrat: &primary.Contrat{
				ID:          r.ID,
				Numero:      r.Numero,
				ClientID:    r.ClientID,
				ContactID:   r.ContactID,
				DateDebut:   r.DateDebut,
				DateFin:     r.DateFin,
				Montant:     r.Montant,
				Description: r.Description,
				Statut:      contrat.ComputeStatut(r.Resilie, fin, today),
			},
			JoursRestants: jours,
			ClientNom:     clientNom,
		})
	}
	return nil
}

func (s *AlertServiceImpl) collectBudgets(ctx context.Context, report *primary.AlertReport, annee int) error {
	records, err := s.budgetRepo.ListLowAvailability(ctx, annee, DepletionRatio)
	if err != nil {
		return err
	}

	for _, r := range records {
		ratio := 0.0
		if r.MontantInitial > 0 {
			ratio = r.MontantDisponible / r.MontantInitial
		}
		report.BudgetsEpuises = append(report.BudgetsEpuises, &primary.BudgetAlert{
			Budget:          recordToBudget(r),
			RatioDisponible: ratio,
		})
	}
	return nil
}

func (s *AlertServiceImpl) collectPendingBCs(ctx context.Context, report *primary.AlertReport) error {
	draft := false
	records, err := s.bcRepo.List(ctx, secondary.BonCommandeFilters{Valide: &draft})
	if err != nil {
		return err
	}

	for _, r := range records {
		report.BCsEnAttente = append(report.BCsEnAttente, recordToBonCommande(r))
	}
	return nil
}
