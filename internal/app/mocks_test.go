package app

import (
	"context"
	"sort"

	"github.com/example/budgetctl/internal/core/fault"
	"github.com/example/budgetctl/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockBudgetRepository implements secondary.BudgetRepository for testing.
type mockBudgetRepository struct {
	budgets    map[int64]*secondary.BudgetRecord
	nextID     int64
	validated  map[int64]int
	drafts     map[int64]int
	lowAvail   []*secondary.BudgetRecord
	createErr  error
	getErr     error
	deleteErr  error
	recomputed []int64
}

func newMockBudgetRepository() *mockBudgetRepository {
	return &mockBudgetRepository{
		budgets:   make(map[int64]*secondary.BudgetRecord),
		validated: make(map[int64]int),
		drafts:    make(map[int64]int),
	}
}

func (m *mockBudgetRepository) Create(ctx context.Context, budget *secondary.BudgetRecord) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	for _, b := range m.budgets {
		if b.Annee == budget.Annee && b.Nature == budget.Nature {
			return 0, fault.New(fault.KindDuplicate, "Un budget %s existe déjà pour %d", budget.Nature, budget.Annee)
		}
	}
	m.nextID++
	cp := *budget
	cp.ID = m.nextID
	cp.MontantDisponible = cp.MontantInitial - cp.MontantConsomme
	m.budgets[cp.ID] = &cp
	return cp.ID, nil
}

func (m *mockBudgetRepository) GetByID(ctx context.Context, id int64) (*secondary.BudgetRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if b, ok := m.budgets[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, fault.New(fault.KindNotFound, "Budget %d introuvable", id)
}

func (m *mockBudgetRepository) GetByAnneeNature(ctx context.Context, annee int, nature string) (*secondary.BudgetRecord, error) {
	for _, b := range m.budgets {
		if b.Annee == annee && b.Nature == nature {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockBudgetRepository) List(ctx context.Context, filters secondary.BudgetFilters) ([]*secondary.BudgetRecord, error) {
	var result []*secondary.BudgetRecord
	for _, b := range m.budgets {
		if filters.Annee != 0 && b.Annee != filters.Annee {
			continue
		}
		if filters.Nature != "" && b.Nature != filters.Nature {
			continue
		}
		cp := *b
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Annee != result[j].Annee {
			return result[i].Annee > result[j].Annee
		}
		return result[i].Nature < result[j].Nature
	})
	return result, nil
}

func (m *mockBudgetRepository) Update(ctx context.Context, budget *secondary.BudgetRecord) error {
	existing, ok := m.budgets[budget.ID]
	if !ok {
		return fault.New(fault.KindNotFound, "Budget %d introuvable", budget.ID)
	}
	existing.MontantInitial = budget.MontantInitial
	existing.ServiceDemandeur = budget.ServiceDemandeur
	existing.MontantDisponible = existing.MontantInitial - existing.MontantConsomme
	return nil
}

func (m *mockBudgetRepository) Delete(ctx context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.budgets[id]; !ok {
		return fault.New(fault.KindNotFound, "Budget %d introuvable", id)
	}
	delete(m.budgets, id)
	return nil
}

func (m *mockBudgetRepository) RecomputeAvailable(ctx context.Context, id int64) error {
	if _, ok := m.budgets[id]; !ok {
		return fault.New(fault.KindNotFound, "Budget %d introuvable", id)
	}
	m.recomputed = append(m.recomputed, id)
	return nil
}

func (m *mockBudgetRepository) CountBCs(ctx context.Context, budgetID int64) (int, int, error) {
	return m.validated[budgetID], m.drafts[budgetID], nil
}

func (m *mockBudgetRepository) DeleteDraftBCs(ctx context.Context, budgetID int64) (int, error) {
	n := m.drafts[budgetID]
	m.drafts[budgetID] = 0
	return n, nil
}

func (m *mockBudgetRepository) ListLowAvailability(ctx context.Context, annee int, ratio float64) ([]*secondary.BudgetRecord, error) {
	return m.lowAvail, nil
}

// mockBonCommandeRepository implements secondary.BonCommandeRepository
// for testing.
type mockBonCommandeRepository struct {
	bcs           map[int64]*secondary.BonCommandeRecord
	nextID        int64
	budgets       *mockBudgetRepository
	contratExists bool
	stats         []*secondary.BonCommandeStat
	validateErr   error
}

func newMockBonCommandeRepository(budgets *mockBudgetRepository) *mockBonCommandeRepository {
	return &mockBonCommandeRepository{
		bcs:           make(map[int64]*secondary.BonCommandeRecord),
		budgets:       budgets,
		contratExists: true,
	}
}

func (m *mockBonCommandeRepository) Create(ctx context.Context, bc *secondary.BonCommandeRecord) (int64, error) {
	for _, b := range m.bcs {
		if b.Numero == bc.Numero {
			return 0, fault.New(fault.KindDuplicate, "Un bon de commande %s existe déjà", bc.Numero)
		}
	}
	m.nextID++
	cp := *bc
	cp.ID = m.nextID
	cp.DateCreation = "2026-08-28T12:00:00Z"
	m.bcs[cp.ID] = &cp
	return cp.ID, nil
}

func (m *mockBonCommandeRepository) GetByID(ctx context.Context, id int64) (*secondary.BonCommandeRecord, error) {
	if bc, ok := m.bcs[id]; ok {
		cp := *bc
		return &cp, nil
	}
	return nil, fault.New(fault.KindNotFound, "Bon de commande %d introuvable", id)
}

func (m *mockBonCommandeRepository) GetByNumero(ctx context.Context, numero string) (*secondary.BonCommandeRecord, error) {
	for _, bc := range m.bcs {
		if bc.Numero == numero {
			cp := *bc
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockBonCommandeRepository) List(ctx context.Context, filters secondary.BonCommandeFilters) ([]*secondary.BonCommandeRecord, error) {
	var result []*secondary.BonCommandeRecord
	for _, bc := range m.bcs {
		if filters.Valide != nil && bc.Valide != *filters.Valide {
			continue
		}
		if filters.BudgetID != 0 && bc.BudgetID != filters.BudgetID {
			continue
		}
		cp := *bc
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Numero > result[j].Numero })
	return result, nil
}

func (m *mockBonCommandeRepository) Update(ctx context.Context, bc *secondary.BonCommandeRecord) error {
	existing, ok := m.bcs[bc.ID]
	if !ok || existing.Valide {
		return fault.New(fault.KindNotFound, "Bon de commande %d introuvable ou déjà validé", bc.ID)
	}
	cp := *bc
	cp.DateCreation = existing.DateCreation
	m.bcs[bc.ID] = &cp
	return nil
}

func (m *mockBonCommandeRepository) Delete(ctx context.Context, id int64) error {
	existing, ok := m.bcs[id]
	if !ok || existing.Valide {
		return fault.New(fault.KindNotFound, "Bon de commande %d introuvable ou déjà validé", id)
	}
	delete(m.bcs, id)
	return nil
}

func (m *mockBonCommandeRepository) LastNumeroForYear(ctx context.Context, annee int) (string, error) {
	last := ""
	for _, bc := range m.bcs {
		a, _, ok := parseNumeroForTest(bc.Numero)
		if ok && a == annee && bc.Numero > last {
			last = bc.Numero
		}
	}
	return last, nil
}

func (m *mockBonCommandeRepository) Validate(ctx context.Context, id int64) error {
	if m.validateErr != nil {
		return m.validateErr
	}
	bc, ok := m.bcs[id]
	if !ok {
		return fault.New(fault.KindNotFound, "Bon de commande %d introuvable", id)
	}
	if bc.Valide {
		return fault.New(fault.KindImmutable, "Le bon de commande %s est déjà validé", bc.Numero)
	}
	budget := m.budgets.budgets[bc.BudgetID]
	if bc.Montant > budget.MontantDisponible {
		return fault.New(fault.KindInsufficientBudget,
			"Budget insuffisant pour valider %s : montant %.2f €, disponible %.2f €",
			bc.Numero, bc.Montant, budget.MontantDisponible)
	}
	bc.Valide = true
	bc.DateValidation = "2026-08-28T12:00:00Z"
	budget.MontantConsomme += bc.Montant
	budget.MontantDisponible = budget.MontantInitial - budget.MontantConsomme
	return nil
}

func (m *mockBonCommandeRepository) BudgetExists(ctx context.Context, budgetID int64) (bool, error) {
	_, ok := m.budgets.budgets[budgetID]
	return ok, nil
}

func (m *mockBonCommandeRepository) ContratExists(ctx context.Context, contratID int64) (bool, error) {
	return m.contratExists, nil
}

func (m *mockBonCommandeRepository) StatsForYear(ctx context.Context, annee int) ([]*secondary.BonCommandeStat, error) {
	return m.stats, nil
}

func parseNumeroForTest(numero string) (int, int, bool) {
	if len(numero) != 12 || numero[:3] != "BC-" {
		return 0, 0, false
	}
	annee := 0
	seq := 0
	for _, c := range numero[3:7] {
		if c < '0' || c > '9' {
			return 0, 0, false
		}
		annee = annee*10 + int(c-'0')
	}
	for _, c := range numero[8:] {
		if c < '0' || c > '9' {
			return 0, 0, false
		}
		seq = seq*10 + int(c-'0')
	}
	return annee, seq, true
}

// mockClientRepository implements secondary.ClientRepository for testing.
type mockClientRepository struct {
	clients  map[int64]*secondary.ClientRecord
	nextID   int64
	blockers secondary.ClientBlockers
}

func newMockClientRepository() *mockClientRepository {
	return &mockClientRepository{clients: make(map[int64]*secondary.ClientRecord)}
}

func (m *mockClientRepository) Create(ctx context.Context, client *secondary.ClientRecord) (int64, error) {
	for _, c := range m.clients {
		if c.Nom == client.Nom {
			return 0, fault.New(fault.KindDuplicate, "Un client nommé %q existe déjà", client.Nom)
		}
	}
	m.nextID++
	cp := *client
	cp.ID = m.nextID
	cp.Actif = true
	m.clients[cp.ID] = &cp
	return cp.ID, nil
}

func (m *mockClientRepository) GetByID(ctx context.Context, id int64) (*secondary.ClientRecord, error) {
	if c, ok := m.clients[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, fault.New(fault.KindNotFound, "Client %d introuvable", id)
}

func (m *mockClientRepository) GetByNom(ctx context.Context, nom string) (*secondary.ClientRecord, error) {
	for _, c := range m.clients {
		if c.Nom == nom {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockClientRepository) List(ctx context.Context, filters secondary.ClientFilters) ([]*secondary.ClientRecord, error) {
	var result []*secondary.ClientRecord
	for _, c := range m.clients {
		if !filters.IncludeInactive && !c.Actif {
			continue
		}
		cp := *c
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Nom < result[j].Nom })
	return result, nil
}

func (m *mockClientRepository) Update(ctx context.Context, client *secondary.ClientRecord) error {
	existing, ok := m.clients[client.ID]
	if !ok {
		return fault.New(fault.KindNotFound, "Client %d introuvable", client.ID)
	}
	cp := *client
	cp.Actif = existing.Actif
	m.clients[client.ID] = &cp
	return nil
}

func (m *mockClientRepository) SetActif(ctx context.Context, id int64, actif bool) error {
	c, ok := m.clients[id]
	if !ok {
		return fault.New(fault.KindNotFound, "Client %d introuvable", id)
	}
	c.Actif = actif
	return nil
}

func (m *mockClientRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.clients[id]; !ok {
		return fault.New(fault.KindNotFound, "Client %d introuvable", id)
	}
	delete(m.clients, id)
	return nil
}

func (m *mockClientRepository) CountBlockers(ctx context.Context, id int64) (*secondary.ClientBlockers, error) {
	cp := m.blockers
	return &cp, nil
}

// mockContratRepository implements secondary.ContratRepository for testing.
type mockContratRepository struct {
	contrats     map[int64]*secondary.ContratRecord
	nextID       int64
	clientExists bool
	bcCounts     map[int64]int
}

func newMockContratRepository() *mockContratRepository {
	return &mockContratRepository{
		contrats:     make(map[int64]*secondary.ContratRecord),
		clientExists: true,
		bcCounts:     make(map[int64]int),
	}
}

func (m *mockContratRepository) Create(ctx context.Context, contrat *secondary.ContratRecord) (int64, error) {
	for _, c := range m.contrats {
		if c.Numero == contrat.Numero {
			return 0, fault.New(fault.KindDuplicate, "Un contrat numéro %q existe déjà", contrat.Numero)
		}
	}
	m.nextID++
	cp := *contrat
	cp.ID = m.nextID
	m.contrats[cp.ID] = &cp
	return cp.ID, nil
}

func (m *mockContratRepository) GetByID(ctx context.Context, id int64) (*secondary.ContratRecord, error) {
	if c, ok := m.contrats[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, fault.New(fault.KindNotFound, "Contrat %d introuvable", id)
}

func (m *mockContratRepository) GetByNumero(ctx context.Context, numero string) (*secondary.ContratRecord, error) {
	for _, c := range m.contrats {
		if c.Numero == numero {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *mockContratRepository) List(ctx context.Context, filters secondary.ContratFilters) ([]*secondary.ContratRecord, error) {
	var result []*secondary.ContratRecord
	for _, c := range m.contrats {
		if filters.ClientID != 0 && c.ClientID != filters.ClientID {
			continue
		}
		cp := *c
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DateFin == "" {
			return false
		}
		if result[j].DateFin == "" {
			return true
		}
		return result[i].DateFin < result[j].DateFin
	})
	return result, nil
}

func (m *mockContratRepository) Update(ctx context.Context, contrat *secondary.ContratRecord) error {
	existing, ok := m.contrats[contrat.ID]
	if !ok {
		return fault.New(fault.KindNotFound, "Contrat %d introuvable", contrat.ID)
	}
	cp := *contrat
	cp.Numero = existing.Numero
	cp.ClientID = existing.ClientID
	cp.Resilie = existing.Resilie
	m.contrats[contrat.ID] = &cp
	return nil
}

func (m *mockContratRepository) SetResilie(ctx context.Context, id int64) error {
	c, ok := m.contrats[id]
	if !ok {
		return fault.New(fault.KindNotFound, "Contrat %d introuvable", id)
	}
	c.Resilie = true
	return nil
}

func (m *mockContratRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.contrats[id]; !ok {
		return fault.New(fault.KindNotFound, "Contrat %d introuvable", id)
	}
	delete(m.contrats, id)
	return nil
}

func (m *mockContratRepository) CountBCs(ctx context.Context, contratID int64) (int, error) {
	return m.bcCounts[contratID], nil
}

func (m *mockContratRepository) ClientExists(ctx context.Context, clientID int64) (bool, error) {
	return m.clientExists, nil
}

// mockTodoRepository implements secondary.TodoRepository for testing.
type mockTodoRepository struct {
	todos         map[int64]*secondary.TodoRecord
	nextID        int64
	contratExists bool
}

func newMockTodoRepository() *mockTodoRepository {
	return &mockTodoRepository{
		todos:         make(map[int64]*secondary.TodoRecord),
		contratExists: true,
	}
}

func (m *mockTodoRepository) Create(ctx context.Context, todo *secondary.TodoRecord) (int64, error) {
	m.nextID++
	cp := *todo
	cp.ID = m.nextID
	m.todos[cp.ID] = &cp
	return cp.ID, nil
}

func (m *mockTodoRepository) GetByID(ctx context.Context, id int64) (*secondary.TodoRecord, error) {
	if t, ok := m.todos[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, fault.New(fault.KindNotFound, "Tâche %d introuvable", id)
}

func (m *mockTodoRepository) List(ctx context.Context, filters secondary.TodoFilters) ([]*secondary.TodoRecord, error) {
	var result []*secondary.TodoRecord
	for _, t := range m.todos {
		if filters.Complete != nil && t.Complete != *filters.Complete {
			continue
		}
		if filters.ContratID != 0 && t.ContratID != filters.ContratID {
			continue
		}
		cp := *t
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockTodoRepository) Update(ctx context.Context, todo *secondary.TodoRecord) error {
	existing, ok := m.todos[todo.ID]
	if !ok {
		return fault.New(fault.KindNotFound, "Tâche %d introuvable", todo.ID)
	}
	cp := *todo
	cp.Complete = existing.Complete
	cp.DateCompletion = existing.DateCompletion
	m.todos[todo.ID] = &cp
	return nil
}

func (m *mockTodoRepository) SetComplete(ctx context.Context, id int64, complete bool) error {
	t, ok := m.todos[id]
	if !ok {
		return fault.New(fault.KindNotFound, "Tâche %d introuvable", id)
	}
	t.Complete = complete
	if complete {
		t.DateCompletion = "2026-08-28T12:00:00Z"
	} else {
		t.DateCompletion = ""
	}
	return nil
}

func (m *mockTodoRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.todos[id]; !ok {
		return fault.New(fault.KindNotFound, "Tâche %d introuvable", id)
	}
	delete(m.todos, id)
	return nil
}

func (m *mockTodoRepository) HasOpenForContrat(ctx context.Context, contratID int64) (bool, error) {
	for _, t := range m.todos {
		if t.ContratID == contratID && !t.Complete {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTodoRepository) ContratExists(ctx context.Context, contratID int64) (bool, error) {
	return m.contratExists, nil
}
