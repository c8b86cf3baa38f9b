package app

import (
	"context"
	"sort"
	"testing"

	"github.com/example/budgetctl/internal/core/fault"
	"github.com/example/budgetctl/internal/ports/primary"
	"github.com/example/budgetctl/internal/ports/secondary"
)

// mockProjetRepository implements secondary.ProjetRepository for testing.
type mockProjetRepository struct {
	projets      map[int64]*secondary.ProjetRecord
	invs         map[int64]*secondary.InvestissementRecord
	sourcing     map[int64]*secondary.ContactSourcingRecord
	nextID       int64
	clientExists bool
}

func newMockProjetRepository() *mockProjetRepository {
	return &mockProjetRepository{
		projets:      make(map[int64]*secondary.ProjetRecord),
		invs:         make(map[int64]*secondary.InvestissementRecord),
		sourcing:     make(map[int64]*secondary.ContactSourcingRecord),
		clientExists: true,
	}
}

func (m *mockProjetRepository) Create(ctx context.Context, projet *secondary.ProjetRecord) (int64, error) {
	for _, p := range m.projets {
		if p.Nom == projet.Nom {
			return 0, fault.New(fault.KindDuplicate, "Un projet nommé %q existe déjà", projet.Nom)
		}
	}
	m.nextID++
	cp := *projet
	cp.ID = m.nextID
	m.projets[cp.ID] = &cp
	return cp.ID, nil
}

func (m *mockProjetRepository) GetByID(ctx context.Context, id int64) (*secondary.ProjetRecord, error) {
	if p, ok := m.projets[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, fault.New(fault.KindNotFound, "Projet %d introuvable", id)
}

func (m *mockProjetRepository) GetByNom(ctx context.Context, nom string) (*secondary.ProjetRecord, error) {
	for _, p := range m.projets {
		if p.Nom == nom {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockProjetRepository) List(ctx context.Context, filters secondary.ProjetFilters) ([]*secondary.ProjetRecord, error) {
	var result []*secondary.ProjetRecord
	for _, p := range m.projets {
		if filters.Statut != "" && p.Statut != filters.Statut {
			continue
		}
		if filters.ClientID != 0 && p.ClientID != filters.ClientID {
			continue
		}
		cp := *p
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Nom < result[j].Nom })
	return result, nil
}

func (m *mockProjetRepository) Update(ctx context.Context, projet *secondary.ProjetRecord) error {
	if _, ok := m.projets[projet.ID]; !ok {
		return fault.New(fault.KindNotFound, "Projet %d introuvable", projet.ID)
	}
	cp := *projet
	m.projets[projet.ID] = &cp
	return nil
}

func (m *mockProjetRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.projets[id]; !ok {
		return fault.New(fault.KindNotFound, "Projet %d introuvable", id)
	}
	delete(m.projets, id)
	for invID, inv := range m.invs {
		if inv.ProjetID == id {
			delete(m.invs, invID)
		}
	}
	for cID, c := range m.sourcing {
		if c.ProjetID == id {
			delete(m.sourcing, cID)
		}
	}
	return nil
}

func (m *mockProjetRepository) ClientExists(ctx context.Context, clientID int64) (bool, error) {
	return m.clientExists, nil
}

func (m *mockProjetRepository) ListInvestissements(ctx context.Context, projetID int64) ([]*secondary.InvestissementRecord, error) {
	var result []*secondary.InvestissementRecord
	for _, inv := range m.invs {
		if inv.ProjetID != projetID {
			continue
		}
		cp := *inv
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockProjetRepository) AddInvestissement(ctx context.Context, inv *secondary.InvestissementRecord) (int64, error) {
	m.nextID++
	cp := *inv
	cp.ID = m.nextID
	m.invs[cp.ID] = &cp
	return cp.ID, nil
}

func (m *mockProjetRepository) UpdateInvestissement(ctx context.Context, inv *secondary.InvestissementRecord) error {
	if _, ok := m.invs[inv.ID]; !ok {
		return fault.New(fault.KindNotFound, "Investissement %d introuvable", inv.ID)
	}
	cp := *inv
	m.invs[inv.ID] = &cp
	return nil
}

func (m *mockProjetRepository) DeleteInvestissement(ctx context.Context, id int64) error {
	if _, ok := m.invs[id]; !ok {
		return fault.New(fault.KindNotFound, "Investissement %d introuvable", id)
	}
	delete(m.invs, id)
	return nil
}

func (m *mockProjetRepository) TotalInvestissements(ctx context.Context, projetID int64) (float64, error) {
	total := 0.0
	for _, inv := range m.invs {
		if inv.ProjetID == projetID {
			total += inv.MontantEstime
		}
	}
	return total, nil
}

func (m *mockProjetRepository) ListContactsSourcing(ctx context.Context, projetID int64) ([]*secondary.ContactSourcingRecord, error) {
	var result []*secondary.ContactSourcingRecord
	for _, c := range m.sourcing {
		if c.ProjetID != projetID {
			continue
		}
		cp := *c
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockProjetRepository) AddContactSourcing(ctx context.Context, contact *secondary.ContactSourcingRecord) (int64, error) {
	m.nextID++
	cp := *contact
	cp.ID = m.nextID
	m.sourcing[cp.ID] = &cp
	return cp.ID, nil
}

func (m *mockProjetRepository) UpdateContactSourcing(ctx context.Context, contact *secondary.ContactSourcingRecord) error {
	if _, ok := m.sourcing[contact.ID]; !ok {
		return fault.New(fault.KindNotFound, "Contact sourcing %d introuvable", contact.ID)
	}
	cp := *contact
	m.sourcing[contact.ID] = &cp
	return nil
}

func (m *mockProjetRepository) DeleteContactSourcing(ctx context.Context, id int64) error {
	if _, ok := m.sourcing[id]; !ok {
		return fault.New(fault.KindNotFound, "Contact sourcing %d introuvable", id)
	}
	delete(m.sourcing, id)
	return nil
}

func newTestProjetService() (*ProjetServiceImpl, *mockProjetRepository) {
	repo := newMockProjetRepository()
	return NewProjetService(repo), repo
}

func TestProjetService_CreateProjet_Defaults(t *testing.T) {
	svc, _ := newTestProjetService()

	p, err := svc.CreateProjet(context.Background(), primary.CreateProjetRequest{
		Nom: "Refonte GED",
	})
	if err != nil {
		t.Fatalf("CreateProjet failed: %v", err)
	}
	if p.Statut != "En cours" {
		t.Errorf("expected default statut En cours, got %s", p.Statut)
	}
	if p.FAPRedigee {
		t.Error("expected FAP not written on a new project")
	}
}

func TestProjetService_CreateProjet_Validation(t *testing.T) {
	svc, _ := newTestProjetService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  primary.CreateProjetRequest
	}{
		{"empty nom", primary.CreateProjetRequest{}},
		{"unknown statut", primary.CreateProjetRequest{Nom: "x", Statut: "Abandonné"}},
		{"inverted dates", primary.CreateProjetRequest{Nom: "x", DateDebut: "2026-06-01", DateFinEstimee: "2026-01-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateProjet(ctx, tt.req); !fault.Is(err, fault.KindValidation) {
				t.Errorf("expected validation fault, got %v", err)
			}
		})
	}
}

func TestProjetService_Investissements(t *testing.T) {
	svc, _ := newTestProjetService()
	ctx := context.Background()

	p, err := svc.CreateProjet(ctx, primary.CreateProjetRequest{Nom: "Refonte GED"})
	if err != nil {
		t.Fatalf("CreateProjet failed: %v", err)
	}

	if _, err := svc.AddInvestissement(ctx, primary.AddInvestissementRequest{
		ProjetID: p.ID, Type: "Robot", MontantEstime: 100,
	}); !fault.Is(err, fault.KindValidation) {
		t.Errorf("expected validation fault for unknown type, got %v", err)
	}

	inv1, err := svc.AddInvestissement(ctx, primary.AddInvestissementRequest{
		ProjetID: p.ID, Type: "Matériel", Description: "Serveur", MontantEstime: 8000,
	})
	if err != nil {
		t.Fatalf("AddInvestissement failed: %v", err)
	}
	if _, err := svc.AddInvestissement(ctx, primary.AddInvestissementRequest{
		ProjetID: p.ID, Type: "Licence", MontantEstime: 2500,
	}); err != nil {
		t.Fatalf("AddInvestissement failed: %v", err)
	}

	loaded, err := svc.GetProjet(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetProjet failed: %v", err)
	}
	if len(loaded.Investissements) != 2 {
		t.Fatalf("expected 2 investissements, got %d", len(loaded.Investissements))
	}
	if loaded.TotalInvestissements != 10500 {
		t.Errorf("expected total 10500, got %.2f", loaded.TotalInvestissements)
	}

	montant := 9000.0
	updated, err := svc.UpdateInvestissement(ctx, primary.UpdateInvestissementRequest{
		ID: inv1.ID, ProjetID: p.ID, MontantEstime: &montant,
	})
	if err != nil {
		t.Fatalf("UpdateInvestissement failed: %v", err)
	}
	if updated.MontantEstime != 9000 || updated.Description != "Serveur" {
		t.Errorf("unexpected update result: %+v", updated)
	}

	// Subentity calls are scoped to their project.
	if _, err := svc.UpdateInvestissement(ctx, primary.UpdateInvestissementRequest{
		ID: inv1.ID, ProjetID: 999, MontantEstime: &montant,
	}); !fault.Is(err, fault.KindNotFound) {
		t.Errorf("expected not-found fault for wrong project, got %v", err)
	}
	if err := svc.DeleteInvestissement(ctx, 999, inv1.ID); !fault.Is(err, fault.KindNotFound) {
		t.Errorf("expected not-found fault for wrong project, got %v", err)
	}
	if err := svc.DeleteInvestissement(ctx, p.ID, inv1.ID); err != nil {
		t.Fatalf("DeleteInvestissement failed: %v", err)
	}
}

func TestProjetService_ContactsSourcing(t *testing.T) {
	svc, _ := newTestProjetService()
	ctx := context.Background()

	p, err := svc.CreateProjet(ctx, primary.CreateProjetRequest{Nom: "Refonte GED"})
	if err != nil {
		t.Fatalf("CreateProjet failed: %v", err)
	}

	if _, err := svc.AddContactSourcing(ctx, primary.AddContactSourcingRequest{
		ProjetID: p.ID, Nom: "Petit",
	}); !fault.Is(err, fault.KindValidation) {
		t.Errorf("expected validation fault for missing prenom, got %v", err)
	}

	c, err := svc.AddContactSourcing(ctx, primary.AddContactSourcingRequest{
		ProjetID: p.ID, Nom: "Petit", Prenom: "Marc", Entreprise: "Acme",
	})
	if err != nil {
		t.Fatalf("AddContactSourcing failed: %v", err)
	}

	entreprise := "Globex"
	updated, err := svc.UpdateContactSourcing(ctx, primary.UpdateContactSourcingRequest{
		ID: c.ID, ProjetID: p.ID, Entreprise: &entreprise,
	})
	if err != nil {
		t.Fatalf("UpdateContactSourcing failed: %v", err)
	}
	if updated.Entreprise != "Globex" || updated.Nom != "Petit" {
		t.Errorf("unexpected update result: %+v", updated)
	}

	if err := svc.DeleteContactSourcing(ctx, 999, c.ID); !fault.Is(err, fault.KindNotFound) {
		t.Errorf("expected not-found fault for wrong project, got %v", err)
	}
	if err := svc.DeleteContactSourcing(ctx, p.ID, c.ID); err != nil {
		t.Fatalf("DeleteContactSourcing failed: %v", err)
	}
}

func TestProjetService_ListProjets_Filters(t *testing.T) {
	svc, _ := newTestProjetService()
	ctx := context.Background()

	for _, req := range []primary.CreateProjetRequest{
		{Nom: "Alpha", Statut: "En cours", ClientID: 1},
		{Nom: "Beta", Statut: "Terminé", ClientID: 1},
		{Nom: "Gamma", Statut: "En cours", ClientID: 2},
	} {
		if _, err := svc.CreateProjet(ctx, req); err != nil {
			t.Fatalf("CreateProjet failed: %v", err)
		}
	}

	if _, err := svc.ListProjets(ctx, primary.ProjetFilters{Statut: "Annulé"}); !fault.Is(err, fault.KindValidation) {
		t.Errorf("expected validation fault for unknown statut, got %v", err)
	}

	enCours, err := svc.ListProjets(ctx, primary.ProjetFilters{Statut: "En cours"})
	if err != nil {
		t.Fatalf("ListProjets failed: %v", err)
	}
	if len(enCours) != 2 {
		t.Errorf("expected 2 projects en cours, got %d", len(enCours))
	}

	client1, err := svc.ListProjets(ctx, primary.ProjetFilters{ClientID: 1})
	if err != nil {
		t.Fatalf("ListProjets failed: %v", err)
	}
	if len(client1) != 2 || client1[0].Nom != "Alpha" {
		t.Errorf("unexpected client filter result: %+v", client1)
	}
}

func TestProjetService_GetProjetByNom(t *testing.T) {
	svc, _ := newTestProjetService()
	ctx := context.Background()

	if _, err := svc.CreateProjet(ctx, primary.CreateProjetRequest{Nom: "Refonte GED"}); err != nil {
		t.Fatalf("CreateProjet failed: %v", err)
	}

	p, err := svc.GetProjetByNom(ctx, "Refonte GED")
	if err != nil {
		t.Fatalf("GetProjetByNom failed: %v", err)
	}
	if p.Nom != "Refonte GED" {
		t.Errorf("unexpected projet: %+v", p)
	}

	if _, err := svc.GetProjetByNom(ctx, "Inconnu"); !fault.Is(err, fault.KindNotFound) {
		t.Errorf("expected not-found fault, got %v", err)
	}
}
