package repository

import (
	"encoding/json"
	"fmt"

	"pricecheck-web/internal/models"

	"github.com/jmoiron/sqlx"
)

type SourceRepository struct {
	db *sqlx.DB
}

func NewSourceRepository(db *sqlx.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

// sourceRow mirrors the data_sources table. Column mappings live in a JSON
// TEXT column and are marshalled at the repository boundary.
type sourceRow struct {
	models.DataSource
	ColumnMappingsJSON string `db:"column_mappings"`
}

func (r *SourceRepository) GetSources() ([]models.DataSource, error) {
	var rows []sourceRow
	query := "SELECT * FROM data_sources ORDER BY is_master DESC, position ASC"
	if err := r.db.Select(&rows, query); err != nil {
		return nil, err
	}

	sources := make([]models.DataSource, 0, len(rows))
	for _, row := range rows {
		source, err := row.toDataSource()
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}
	return sources, nil
}

func (r *SourceRepository) GetSourceByID(id int) (*models.DataSource, error) {
	var row sourceRow
	query := "SELECT * FROM data_sources WHERE id = ?"
	if err := r.db.Get(&row, query, id); err != nil {
		return nil, err
	}
	source, err := row.toDataSource()
	if err != nil {
		return nil, err
	}
	return &source, nil
}

func (r *SourceRepository) CreateSource(source *models.DataSource) error {
	mappings, err := json.Marshal(source.ColumnMappings)
	if err != nil {
		return fmt.Errorf("failed to marshal column mappings: %w", err)
	}

	query := `INSERT INTO data_sources (name, sheet_url, header_row, is_master, position, column_mappings)
	          VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.Exec(query, source.Name, source.SheetURL, source.HeaderRow, source.IsMaster, source.Position, string(mappings))
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	source.ID = int(id)
	return nil
}

func (r *SourceRepository) UpdateSource(source *models.DataSource) error {
	mappings, err := json.Marshal(source.ColumnMappings)
	if err != nil {
		return fmt.Errorf("failed to marshal column mappings: %w", err)
	}

	query := `UPDATE data_sources
	          SET name = ?, sheet_url = ?, header_row = ?, is_master = ?, position = ?, column_mappings = ?
	          WHERE id = ?`
	_, err = r.db.Exec(query, source.Name, source.SheetURL, source.HeaderRow, source.IsMaster, source.Position, string(mappings), source.ID)
	return err
}

func (r *SourceRepository) DeleteSource(id int) error {
	query := "DELETE FROM data_sources WHERE id = ?"
	_, err := r.db.Exec(query, id)
	return err
}

func (row sourceRow) toDataSource() (models.DataSource, error) {
	source := row.DataSource
	source.ColumnMappings = map[string]string{}
	if row.ColumnMappingsJSON != "" {
		if err := json.Unmarshal([]byte(row.ColumnMappingsJSON), &source.ColumnMappings); err != nil {
			return models.DataSource{}, fmt.Errorf("failed to unmarshal column mappings for source %q: %w", source.Name, err)
		}
	}
	return source, nil
}
