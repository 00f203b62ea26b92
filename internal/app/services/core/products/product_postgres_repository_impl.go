package products

import (
	"context"
	"database/sql"

	"medika-service/internal/app/contracts"
	"medika-service/internal/app/models"
	"medika-service/internal/pkg/exceptions"
	"medika-service/internal/pkg/queries"
)

type productPostgresRepository struct {
	DB *sql.DB
}

func NewProductPostgresRepository(db *sql.DB) contracts.ProductRepository {
	return &productPostgresRepository{
		DB: db,
	}
}

func (repo *productPostgresRepository) FindByID(ctx context.Context, productID string) (*models.Product, error) {
	query := queries.GetProductByID
	var product models.Product
	err := repo.DB.QueryRowContext(ctx, query, productID).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Quantity,
		&product.IsAvailable,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &product, nil
}

func (repo *productPostgresRepository) FindAll(ctx context.Context, limit, offset int) ([]models.Product, int, error) {
	var total int
	if err := repo.DB.QueryRowContext(ctx, queries.CountProducts).Scan(&total); err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	rows, err := repo.DB.QueryContext(ctx, queries.GetAllProducts, limit, offset)
	if err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var model models.Product
		if err := rows.Scan(
			&model.ID,
			&model.Name,
			&model.Description,
			&model.Price,
			&model.Quantity,
			&model.IsAvailable,
			&model.CreatedAt,
			&model.UpdatedAt,
		); err != nil {
			return nil, 0, exceptions.ErrPostgresDBFindData(err)
		}
		products = append(products, model)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, exceptions.ErrPostgresDBFindData(err)
	}

	return products, total, nil
}
