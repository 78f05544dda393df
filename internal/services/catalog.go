package services

import (
	"context"
	"sync"
	"time"

	"timemirror.dev/internal/models"
	"timemirror.dev/pkg/sheetfeed"
)

// CatalogService serves hierarchical views of the ledger from a time-boxed
// cache. The cache holds the raw rows, not a built tree: trees are built
// fresh per call so callers can't mutate shared state.
type CatalogService struct {
	ledger   sheetfeed.Client
	settings *SettingsService
	ttl      time.Duration

	mu        sync.Mutex
	cached    []models.CatalogRow
	fetchedAt time.Time
}

// Rows returns the cached ledger rows, reloading from the authoritative
// ledger on miss or expiry.
func (service *CatalogService) Rows(ctx context.Context) ([]models.CatalogRow, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	if service.cached != nil && time.Since(service.fetchedAt) < service.ttl {
		return service.cached, nil
	}

	return service.loadLocked(ctx)
}

// Reload bypasses the cache and reads the authoritative ledger, refilling
// the cache with the result. Sync runs use this to guarantee freshness.
func (service *CatalogService) Reload(
	ctx context.Context,
) ([]models.CatalogRow, error) {
	service.mu.Lock()
	defer service.mu.Unlock()

	return service.loadLocked(ctx)
}

// Invalidate forces the next read to reload. Must be called after any
// ledger-affecting operation so selection flows never see stale views.
func (service *CatalogService) Invalidate() {
	service.mu.Lock()
	defer service.mu.Unlock()

	service.cached = nil
	service.fetchedAt = time.Time{}
}

func (service *CatalogService) loadLocked(
	ctx context.Context,
) ([]models.CatalogRow, error) {
	sheet, err := service.settings.LedgerSheet(ctx)
	if err != nil {
		return nil, err
	}

	cells, err := service.ledger.ReadAllRows(sheet)
	if err != nil {
		return nil, models.FetchError{Source: "ledger", Err: err}
	}

	rows := make([]models.CatalogRow, 0, len(cells))
	for _, line := range cells {
		rows = append(rows, models.CatalogRowFromCells(line))
	}

	service.cached = rows
	service.fetchedAt = time.Now()

	return rows, nil
}

func (service *CatalogService) Tree(ctx context.Context) (*models.CatalogTree, error) {
	rows, err := service.Rows(ctx)
	if err != nil {
		return nil, err
	}

	return BuildTree(rows), nil
}

func (service *CatalogService) ActiveTreeAt(
	ctx context.Context,
	asOf time.Time,
) (*models.CatalogTree, error) {
	rows, err := service.Rows(ctx)
	if err != nil {
		return nil, err
	}

	return ActiveTree(rows, asOf), nil
}

func (service *CatalogService) ActiveClientsAt(
	ctx context.Context,
	asOf time.Time,
) ([]string, error) {
	rows, err := service.Rows(ctx)
	if err != nil {
		return nil, err
	}

	return ActiveClients(rows, asOf), nil
}

func (service *CatalogService) ActiveProjectsAt(
	ctx context.Context,
	asOf time.Time,
) ([]string, error) {
	rows, err := service.Rows(ctx)
	if err != nil {
		return nil, err
	}

	return ActiveProjects(rows, asOf), nil
}

func (service *CatalogService) AllClients(ctx context.Context) ([]string, error) {
	rows, err := service.Rows(ctx)
	if err != nil {
		return nil, err
	}

	return Clients(rows), nil
}

func (service *CatalogService) AllProjects(ctx context.Context) ([]string, error) {
	rows, err := service.Rows(ctx)
	if err != nil {
		return nil, err
	}

	return Projects(rows), nil
}

// BuildTree groups ledger rows by client then project, preserving ledger
// order within each project's task list.
func BuildTree(rows []models.CatalogRow) *models.CatalogTree {
	tree := models.CatalogTree{Clients: []models.CatalogClient{}}
	clientIndex := map[string]int{}
	projectIndex := map[string]map[string]int{}

	for _, row := range rows {
		ci, ok := clientIndex[row.Client]
		if !ok {
			tree.Clients = append(tree.Clients, models.CatalogClient{
				Name:     row.Client,
				Projects: []models.CatalogProject{},
			})
			ci = len(tree.Clients) - 1
			clientIndex[row.Client] = ci
			projectIndex[row.Client] = map[string]int{}
		}

		pi, ok := projectIndex[row.Client][row.Project]
		if !ok {
			tree.Clients[ci].Projects = append(
				tree.Clients[ci].Projects,
				models.CatalogProject{
					Name:  row.Project,
					Tasks: []models.CatalogTask{},
				},
			)
			pi = len(tree.Clients[ci].Projects) - 1
			projectIndex[row.Client][row.Project] = pi
		}

		tree.Clients[ci].Projects[pi].Tasks = append(
			tree.Clients[ci].Projects[pi].Tasks,
			models.CatalogTask{
				Code:          row.Code,
				Task:          row.Task,
				Rate:          row.Rate,
				Description:   row.Description,
				Comments:      row.Comments,
				BudgetedHours: row.BudgetedHours,
				ValidFrom:     row.ValidFrom,
				ValidUntil:    row.ValidUntil,
			},
		)
	}

	return &tree
}

// ActiveTree builds the tree from only the rows whose validity window
// contains asOf.
func ActiveTree(rows []models.CatalogRow, asOf time.Time) *models.CatalogTree {
	active := []models.CatalogRow{}
	for _, row := range rows {
		if row.ActiveAt(asOf) {
			active = append(active, row)
		}
	}

	return BuildTree(active)
}

// Clients lists the distinct clients in order of first occurrence,
// regardless of validity windows.
func Clients(rows []models.CatalogRow) []string {
	clients := []string{}
	seen := map[string]bool{}

	for _, row := range rows {
		if seen[row.Client] {
			continue
		}

		seen[row.Client] = true
		clients = append(clients, row.Client)
	}

	return clients
}

func Projects(rows []models.CatalogRow) []string {
	projects := []string{}
	seen := map[string]bool{}

	for _, row := range rows {
		if seen[row.Project] {
			continue
		}

		seen[row.Project] = true
		projects = append(projects, row.Project)
	}

	return projects
}

// ActiveClients lists the distinct clients with at least one active row,
// in order of first occurrence.
func ActiveClients(rows []models.CatalogRow, asOf time.Time) []string {
	clients := []string{}
	seen := map[string]bool{}

	for _, row := range rows {
		if !row.ActiveAt(asOf) || seen[row.Client] {
			continue
		}

		seen[row.Client] = true
		clients = append(clients, row.Client)
	}

	return clients
}

func ActiveProjects(rows []models.CatalogRow, asOf time.Time) []string {
	projects := []string{}
	seen := map[string]bool{}

	for _, row := range rows {
		if !row.ActiveAt(asOf) || seen[row.Project] {
			continue
		}

		seen[row.Project] = true
		projects = append(projects, row.Project)
	}

	return projects
}

// SnapshotRows flattens ledger rows into warehouse-shaped snapshot rows
// stamped with now. Rows missing a mandatory field are skipped and reported
// by their ledger index; good rows always survive their bad siblings.
func SnapshotRows(
	rows []models.CatalogRow,
	now time.Time,
) ([]models.CatalogSnapshotRow, []models.RowError) {
	snapshot := []models.CatalogSnapshotRow{}
	rowErrors := []models.RowError{}

	for i, row := range rows {
		candidate := models.CatalogSnapshotRow{
			RecordedAt:    now,
			ModifiedAt:    now,
			Code:          row.Code,
			Client:        row.Client,
			Project:       row.Project,
			Task:          row.Task,
			Default:       row.Default,
			ValidFrom:     row.ValidFrom,
			ValidUntil:    row.ValidUntil,
			Rate:          row.Rate,
			Description:   row.Description,
			Comments:      row.Comments,
			BudgetedHours: row.BudgetedHours,
			CompanySize:   row.CompanySize,
			Categories:    row.CategoryList(),
		}

		if errs := candidate.Validate(i); len(errs) > 0 {
			rowErrors = append(rowErrors, errs...)
			continue
		}

		snapshot = append(snapshot, candidate)
	}

	return snapshot, rowErrors
}
