package queries

const (
	GetUserByID = `
		SELECT id, email, name, COALESCE(phone, ''), role, created_at, updated_at
		FROM users
		WHERE id = $1
	`
)
