package users

import (
	"context"
	"database/sql"

	"medika-service/internal/app/contracts"
	"medika-service/internal/app/models"
	"medika-service/internal/pkg/exceptions"
	"medika-service/internal/pkg/queries"
)

type userPostgresRepository struct {
	DB *sql.DB
}

func NewUserPostgresRepository(db *sql.DB) contracts.UserRepository {
	return &userPostgresRepository{
		DB: db,
	}
}

func (repo *userPostgresRepository) FindByID(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	err := repo.DB.QueryRowContext(ctx, queries.GetUserByID, userID).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Phone,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	} else if err != nil {
		return nil, exceptions.ErrPostgresDBFindData(err)
	}
	return &user, nil
}
