package repositories

import (
	"context"

	"github.com/xdoubleu/essentia/v2/pkg/database/postgres"
	"timemirror.dev/internal/models"
)

// WarehouseRepository appends to the analytical tables. Both tables are
// insert-only: no updates, no deletes, no dedup by id. Each row is written
// as its own statement so a rejected row never rolls back its siblings; a
// batch would run in one implicit transaction and lose already-inserted
// rows on the first provider fault.
type WarehouseRepository struct {
	db DB
}

func (repo *WarehouseRepository) InsertEvents(
	ctx context.Context,
	records []models.EventRecord,
) (*models.InsertResult, error) {
	query := `
		INSERT INTO timemirror.events (loaded_at, event_id, summary, description,
		starts_at, ends_at, client, project, task, rate, comments, company_size,
		categories, original_title, deleted, ical_uid, creator_email,
		created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		$15, $16, $17, $18, $19)
	`

	result := models.InsertResult{
		Inserted:  0,
		RowErrors: []models.RowError{},
	}

	for i, record := range records {
		if errs := record.Validate(i); len(errs) > 0 {
			result.RowErrors = append(result.RowErrors, errs...)
			continue
		}

		_, err := repo.db.Exec(
			ctx,
			query,
			record.LoadedAt,
			record.EventID,
			record.Summary,
			record.Description,
			record.StartsAt,
			record.EndsAt,
			record.Client,
			record.Project,
			record.Task,
			record.Rate,
			record.Comments,
			record.CompanySize,
			record.Categories,
			record.OriginalTitle,
			record.Deleted,
			record.ICalUID,
			record.CreatorEmail,
			record.CreatedAt,
			record.UpdatedAt,
		)
		if err != nil {
			result.RowErrors = append(result.RowErrors, models.RowError{
				Index:  i,
				Field:  "",
				Reason: postgres.PgxErrorToHTTPError(err).Error(),
			})
			continue
		}

		result.Inserted++
	}

	return &result, nil
}

func (repo *WarehouseRepository) InsertCatalogRows(
	ctx context.Context,
	rows []models.CatalogSnapshotRow,
) (*models.InsertResult, error) {
	query := `
		INSERT INTO timemirror.catalog_snapshots (recorded_at, modified_at, code,
		client, project, task, is_default, valid_from, valid_until, rate,
		description, comments, budgeted_hours, company_size, categories)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	result := models.InsertResult{
		Inserted:  0,
		RowErrors: []models.RowError{},
	}

	for i, row := range rows {
		if errs := row.Validate(i); len(errs) > 0 {
			result.RowErrors = append(result.RowErrors, errs...)
			continue
		}

		_, err := repo.db.Exec(
			ctx,
			query,
			row.RecordedAt,
			row.ModifiedAt,
			row.Code,
			row.Client,
			row.Project,
			row.Task,
			row.Default,
			row.ValidFrom,
			row.ValidUntil,
			row.Rate,
			row.Description,
			row.Comments,
			row.BudgetedHours,
			row.CompanySize,
			row.Categories,
		)
		if err != nil {
			result.RowErrors = append(result.RowErrors, models.RowError{
				Index:  i,
				Field:  "",
				Reason: postgres.PgxErrorToHTTPError(err).Error(),
			})
			continue
		}

		result.Inserted++
	}

	return &result, nil
}
