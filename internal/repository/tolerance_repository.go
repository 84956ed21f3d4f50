package repository

import (
	"pricecheck-web/internal/models"

	"github.com/jmoiron/sqlx"
)

type ToleranceRepository struct {
	db *sqlx.DB
}

func NewToleranceRepository(db *sqlx.DB) *ToleranceRepository {
	return &ToleranceRepository{db: db}
}

func (r *ToleranceRepository) GetTolerances(limit, offset int, search string) ([]models.BrandTolerance, int, error) {
	var tolerances []models.BrandTolerance
	var total int

	countQuery := "SELECT COUNT(*) FROM brand_tolerances"
	selectQuery := "SELECT * FROM brand_tolerances"

	whereClause := ""
	args := []interface{}{}
	if search != "" {
		whereClause = " WHERE brand_name LIKE ?"
		args = append(args, "%"+search+"%")
		countQuery += whereClause
		selectQuery += whereClause
	}

	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	selectQuery += " ORDER BY brand_name ASC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	if err := r.db.Select(&tolerances, selectQuery, args...); err != nil {
		return nil, 0, err
	}

	return tolerances, total, nil
}

func (r *ToleranceRepository) GetAllTolerances() ([]models.BrandTolerance, error) {
	var tolerances []models.BrandTolerance
	query := "SELECT * FROM brand_tolerances ORDER BY brand_name ASC"
	err := r.db.Select(&tolerances, query)
	return tolerances, err
}

func (r *ToleranceRepository) GetToleranceByID(id int) (*models.BrandTolerance, error) {
	var tolerance models.BrandTolerance
	query := "SELECT * FROM brand_tolerances WHERE id = ?"
	err := r.db.Get(&tolerance, query, id)
	if err != nil {
		return nil, err
	}
	return &tolerance, nil
}

func (r *ToleranceRepository) CreateTolerance(tolerance *models.BrandTolerance) error {
	query := `INSERT INTO brand_tolerances (brand_name, tolerance_cents)
	          VALUES (:brand_name, :tolerance_cents)`
	result, err := r.db.NamedExec(query, tolerance)
	if err != nil {
		return err
	}
	id, _ := result.LastInsertId()
	tolerance.ID = int(id)
	return nil
}

func (r *ToleranceRepository) UpdateTolerance(tolerance *models.BrandTolerance) error {
	query := `UPDATE brand_tolerances
	          SET brand_name = :brand_name, tolerance_cents = :tolerance_cents
	          WHERE id = :id`
	_, err := r.db.NamedExec(query, tolerance)
	return err
}

func (r *ToleranceRepository) DeleteTolerance(id int) error {
	query := "DELETE FROM brand_tolerances WHERE id = ?"
	_, err := r.db.Exec(query, id)
	return err
}
