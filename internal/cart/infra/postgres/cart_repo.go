package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/dwikikusuma/storefront/internal/cart/app"
	"github.com/dwikikusuma/storefront/internal/cart/domain"
	"github.com/dwikikusuma/storefront/pkg/postgres"
)

//go:embed schema.sql
var Schema string

// EnsureSchema creates the cart tables when they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("apply cart schema: %w", err)
	}
	return nil
}

const (
	getCartSQL    = `SELECT id, created_at, updated_at FROM carts WHERE id = $1`
	createCartSQL = `INSERT INTO carts (id) VALUES ($1) RETURNING id, created_at, updated_at`

	listItemsSQL = `
SELECT item_id, cart_id, name, description, image, price, quantity, created_at, updated_at
FROM cart_items
WHERE cart_id = $1
ORDER BY created_at, item_id`

	upsertItemIncrementSQL = `
INSERT INTO cart_items (item_id, cart_id, name, description, image, price, quantity)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (item_id, cart_id)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()`

	lockItemSQL   = `SELECT quantity FROM cart_items WHERE cart_id = $1 AND item_id = $2 FOR UPDATE`
	setQtySQL     = `UPDATE cart_items SET quantity = $3, updated_at = now() WHERE cart_id = $1 AND item_id = $2`
	deleteItemSQL = `DELETE FROM cart_items WHERE cart_id = $1 AND item_id = $2`
	touchCartSQL  = `UPDATE carts SET updated_at = now() WHERE id = $1`
)

type CartRepo struct {
	db *sql.DB
}

func NewCartRepo(db *sql.DB) *CartRepo {
	return &CartRepo{db: db}
}

func (r *CartRepo) Get(ctx context.Context, id string) (domain.Cart, error) {
	var cart domain.Cart
	err := r.db.QueryRowContext(ctx, getCartSQL, id).Scan(&cart.ID, &cart.CreatedAt, &cart.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Cart{}, app.ErrCartNotFound
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("get cart %s: %w", id, err)
	}
	return cart, nil
}

func (r *CartRepo) FindOrCreate(ctx context.Context, id string) (domain.Cart, error) {
	// 1) Try get
	cart, err := r.Get(ctx, id)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, app.ErrCartNotFound) {
		return domain.Cart{}, err
	}

	// 2) Not found => try create
	err = r.db.QueryRowContext(ctx, createCartSQL, id).Scan(&cart.ID, &cart.CreatedAt, &cart.UpdatedAt)
	if err == nil {
		return cart, nil
	}

	// 3) If someone else created concurrently => re-get
	if postgres.IsUniqueViolation(err) {
		return r.Get(ctx, id)
	}

	return domain.Cart{}, fmt.Errorf("create cart %s: %w", id, err)
}

func (r *CartRepo) ListItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	rows, err := r.db.QueryContext(ctx, listItemsSQL, cartID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.CartItem, 0)
	for rows.Next() {
		var it domain.CartItem
		if err := rows.Scan(
			&it.ItemID,
			&it.CartID,
			&it.Name,
			&it.Description,
			&it.Image,
			&it.Price,
			&it.Quantity,
			&it.CreatedAt,
			&it.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	return items, nil
}

func (r *CartRepo) UpsertItem(ctx context.Context, cartID string, item domain.CartItem, incrementBy int64) error {
	_, err := r.db.ExecContext(ctx, upsertItemIncrementSQL,
		item.ItemID,
		cartID,
		item.Name,
		item.Description,
		item.Image,
		item.Price,
		incrementBy,
	)
	if postgres.IsForeignKeyViolation(err) {
		return app.ErrCartNotFound
	}
	if err != nil {
		return fmt.Errorf("upsert cart item %s: %w", item.ItemID, err)
	}
	return r.touch(ctx, r.db, cartID)
}

// AdjustQuantity locks the row for the duration of the transaction, so two
// concurrent decrements of the same item apply one after the other.
func (r *CartRepo) AdjustQuantity(ctx context.Context, cartID, itemID string, delta int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin adjust: %w", err)
	}
	defer tx.Rollback()

	var qty int64
	err = tx.QueryRowContext(ctx, lockItemSQL, cartID, itemID).Scan(&qty)
	if errors.Is(err, sql.ErrNoRows) {
		return app.ErrItemNotFound
	}
	if err != nil {
		return fmt.Errorf("lock cart item %s: %w", itemID, err)
	}

	qty += delta
	if qty <= 0 {
		_, err = tx.ExecContext(ctx, deleteItemSQL, cartID, itemID)
	} else {
		_, err = tx.ExecContext(ctx, setQtySQL, cartID, itemID, qty)
	}
	if err != nil {
		return fmt.Errorf("adjust cart item %s: %w", itemID, err)
	}

	if err := r.touch(ctx, tx, cartID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *CartRepo) DeleteItem(ctx context.Context, cartID, itemID string) error {
	res, err := r.db.ExecContext(ctx, deleteItemSQL, cartID, itemID)
	if err != nil {
		return fmt.Errorf("delete cart item %s: %w", itemID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return app.ErrItemNotFound
	}
	return r.touch(ctx, r.db, cartID)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *CartRepo) touch(ctx context.Context, db execer, cartID string) error {
	if _, err := db.ExecContext(ctx, touchCartSQL, cartID); err != nil {
		return fmt.Errorf("touch cart %s: %w", cartID, err)
	}
	return nil
}
