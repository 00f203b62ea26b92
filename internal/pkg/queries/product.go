package queries

const (
	GetProductByID = `
		SELECT id, name, COALESCE(description, ''), price, quantity, is_available, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	GetAllProducts = `
		SELECT id, name, COALESCE(description, ''), price, quantity, is_available, created_at, updated_at
		FROM products
		WHERE is_available = TRUE
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	CountProducts = `
		SELECT COUNT(*) FROM products WHERE is_available = TRUE
	`

	// DecrementProductStock guards against oversell; zero rows affected means
	// the requested quantity exceeded what was left.
	DecrementProductStock = `
		UPDATE products
		SET quantity = quantity - $1, updated_at = NOW()
		WHERE id = $2 AND quantity >= $1
	`

	RestoreProductStock = `
		UPDATE products
		SET quantity = quantity + $1, updated_at = NOW()
		WHERE id = $2
	`
)
