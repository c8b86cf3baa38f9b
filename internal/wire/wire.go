// Package wire provides dependency injection for the budgetctl
// application. It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	cliadapter "github.com/example/budgetctl/internal/adapters/cli"
	"github.com/example/budgetctl/internal/adapters/filesystem"
	"github.com/example/budgetctl/internal/adapters/sqlite"
	"github.com/example/budgetctl/internal/app"
	"github.com/example/budgetctl/internal/config"
	"github.com/example/budgetctl/internal/db"
	"github.com/example/budgetctl/internal/ports/primary"
)

var (
	cfg                *config.Config
	store              *db.Store
	budgetService      primary.BudgetService
	bonCommandeService primary.BonCommandeService
	clientService      primary.ClientService
	contactService     primary.ContactService
	contratService     primary.ContratService
	projetService      primary.ProjetService
	todoService        primary.TodoService
	alertService       primary.AlertService
	backupService      primary.BackupService
	once               sync.Once
)

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// BudgetService returns the singleton BudgetService instance.
func BudgetService() primary.BudgetService {
	once.Do(initServices)
	return budgetService
}

// BonCommandeService returns the singleton BonCommandeService instance.
func BonCommandeService() primary.BonCommandeService {
	once.Do(initServices)
	return bonCommandeService
}

// ClientService returns the singleton ClientService instance.
func ClientService() primary.ClientService {
	once.Do(initServices)
	return clientService
}

// ContactService returns the singleton ContactService instance.
func ContactService() primary.ContactService {
	once.Do(initServices)
	return contactService
}

// ContratService returns the singleton ContratService instance.
func ContratService() primary.ContratService {
	once.Do(initServices)
	return contratService
}

// ProjetService returns the singleton ProjetService instance.
func ProjetService() primary.ProjetService {
	once.Do(initServices)
	return projetService
}

// TodoService returns the singleton TodoService instance.
func TodoService() primary.TodoService {
	once.Do(initServices)
	return todoService
}

// AlertService returns the singleton AlertService instance.
func AlertService() primary.AlertService {
	once.Do(initServices)
	return alertService
}

// BackupService returns the singleton BackupService instance.
func BackupService() primary.BackupService {
	once.Do(initServices)
	return backupService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	dataDir, err := config.DefaultDataDir()
	if err != nil {
		log.Fatalf("failed to locate data directory: %v", err)
	}
	cfg, err = config.Load(dataDir)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	store, err = db.Open(cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Repositories hold the store, not a captured *sql.DB: a restore
	// swaps the underlying handle and a captured one would be closed.
	budgetRepo := sqlite.NewBudgetRepository(store)
	bcRepo := sqlite.NewBonCommandeRepository(store)
	clientRepo := sqlite.NewClientRepository(store)
	contactRepo := sqlite.NewContactRepository(store)
	contratRepo := sqlite.NewContratRepository(store)
	projetRepo := sqlite.NewProjetRepository(store)
	todoRepo := sqlite.NewTodoRepository(store)
	sauvegardeRepo := sqlite.NewSauvegardeRepository(store)

	archive, err := filesystem.NewBackupArchive(cfg.BackupDir)
	if err != nil {
		log.Fatalf("failed to initialize backup directory: %v", err)
	}

	budgetService = app.NewBudgetService(budgetRepo, bcRepo)
	bonCommandeService = app.NewBonCommandeService(bcRepo, budgetRepo)
	clientService = app.NewClientService(clientRepo)
	contactService = app.NewContactService(contactRepo)
	contratService = app.NewContratService(contratRepo)
	projetService = app.NewProjetService(projetRepo)
	todoService = app.NewTodoService(todoRepo, contratRepo)
	alertService = app.NewAlertService(contratRepo, clientRepo, budgetRepo, bcRepo)
	backupService = app.NewBackupService(sauvegardeRepo, store, archive)
}

// BudgetAdapter returns a new BudgetAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func BudgetAdapter() *cliadapter.BudgetAdapter {
	return BudgetAdapterWithOutput(os.Stdout)
}

// BudgetAdapterWithOutput returns a new BudgetAdapter writing to the
// given output. This variant allows testing or alternate destinations.
func BudgetAdapterWithOutput(out io.Writer) *cliadapter.BudgetAdapter {
	once.Do(initServices)
	return cliadapter.NewBudgetAdapter(budgetService, out)
}

// BonCommandeAdapter returns a new BonCommandeAdapter writing to stdout.
func BonCommandeAdapter() *cliadapter.BonCommandeAdapter {
	return BonCommandeAdapterWithOutput(os.Stdout)
}

// BonCommandeAdapterWithOutput returns a new BonCommandeAdapter writing
// to the given output.
func BonCommandeAdapterWithOutput(out io.Writer) *cliadapter.BonCommandeAdapter {
	once.Do(initServices)
	return cliadapter.NewBonCommandeAdapter(bonCommandeService, out)
}
