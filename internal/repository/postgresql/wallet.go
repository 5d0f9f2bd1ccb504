package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/crewbase/crewbase-backend-go/internal/domain/wallet"
	"github.com/crewbase/crewbase-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type walletRepository struct {
	db *database.DB
}

func NewWalletRepository(db *database.DB) wallet.WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) Create(ctx context.Context, w wallet.Wallet) (wallet.Wallet, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		INSERT INTO wallets (id, user_id, organization_id, is_active)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, organization_id) DO UPDATE SET is_active = EXCLUDED.is_active
		RETURNING id, user_id, organization_id, is_active
	`

	var created wallet.Wallet
	err := q.QueryRow(ctx, query, w.ID, w.UserID, w.OrganizationID, w.IsActive).Scan(
		&created.ID, &created.UserID, &created.OrganizationID, &created.IsActive,
	)
	if err != nil {
		return wallet.Wallet{}, fmt.Errorf("failed to create wallet: %w", err)
	}
	return created, nil
}

func (r *walletRepository) GetByID(ctx context.Context, id string, organizationID string) (wallet.Wallet, error) {
	q := database.QuerierFromContext(ctx, r.db)

	var w wallet.Wallet
	err := q.QueryRow(ctx,
		`SELECT id, user_id, organization_id, is_active FROM wallets
		 WHERE id = $1 AND organization_id = $2`,
		id, organizationID,
	).Scan(&w.ID, &w.UserID, &w.OrganizationID, &w.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return wallet.Wallet{}, wallet.ErrWalletNotFound
		}
		return wallet.Wallet{}, fmt.Errorf("failed to get wallet: %w", err)
	}
	return w, nil
}

func (r *walletRepository) GetByUserID(ctx context.Context, userID string, organizationID string) (wallet.Wallet, error) {
	q := database.QuerierFromContext(ctx, r.db)

	var w wallet.Wallet
	err := q.QueryRow(ctx,
		`SELECT id, user_id, organization_id, is_active FROM wallets
		 WHERE user_id = $1 AND organization_id = $2`,
		userID, organizationID,
	).Scan(&w.ID, &w.UserID, &w.OrganizationID, &w.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return wallet.Wallet{}, wallet.ErrWalletNotFound
		}
		return wallet.Wallet{}, fmt.Errorf("failed to get wallet by user: %w", err)
	}
	return w, nil
}

func (r *walletRepository) GetByOrganizationID(ctx context.Context, organizationID string) ([]wallet.Wallet, error) {
	q := database.QuerierFromContext(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT id, user_id, organization_id, is_active FROM wallets
		 WHERE organization_id = $1 ORDER BY id`,
		organizationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []wallet.Wallet
	for rows.Next() {
		var w wallet.Wallet
		if err := rows.Scan(&w.ID, &w.UserID, &w.OrganizationID, &w.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan wallet: %w", err)
		}
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

const transactionColumns = `id, wallet_id, organization_id, type, category, amount, date, description, project_id, worker_id`

func scanTransaction(row pgx.Row) (wallet.WalletTransaction, error) {
	var t wallet.WalletTransaction
	err := row.Scan(
		&t.ID, &t.WalletID, &t.OrganizationID, &t.Type, &t.Category,
		&t.Amount, &t.Date, &t.Description, &t.ProjectID, &t.WorkerID,
	)
	return t, err
}

func (r *walletRepository) CreateTransaction(ctx context.Context, t wallet.WalletTransaction) (wallet.WalletTransaction, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `
		INSERT INTO wallet_transactions (
			id, wallet_id, organization_id, type, category, amount, date, description, project_id, worker_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + transactionColumns

	created, err := scanTransaction(q.QueryRow(ctx, query,
		t.ID, t.WalletID, t.OrganizationID, t.Type, t.Category,
		t.Amount, t.Date, t.Description, t.ProjectID, t.WorkerID,
	))
	if err != nil {
		return wallet.WalletTransaction{}, fmt.Errorf("failed to create wallet transaction: %w", err)
	}
	return created, nil
}

func (r *walletRepository) ListTransactions(ctx context.Context, walletID string, organizationID string, limit int) ([]wallet.WalletTransaction, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `SELECT ` + transactionColumns + ` FROM wallet_transactions
		WHERE wallet_id = $1 AND organization_id = $2
		ORDER BY date DESC, id DESC`
	args := []interface{}{walletID, organizationID}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallet transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func (r *walletRepository) ListRecentByOrganization(ctx context.Context, organizationID string, limit int) ([]wallet.WalletTransaction, error) {
	q := database.QuerierFromContext(ctx, r.db)

	query := `SELECT ` + transactionColumns + ` FROM wallet_transactions
		WHERE organization_id = $1
		ORDER BY date DESC, id DESC`
	args := []interface{}{organizationID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]wallet.WalletTransaction, error) {
	var txns []wallet.WalletTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet transaction: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

func (r *walletRepository) GetBalance(ctx context.Context, walletID string, organizationID string) (wallet.Balance, error) {
	q := database.QuerierFromContext(ctx, r.db)

	// The balance is never stored; it is always folded from the rows.
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'REFILL'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'EXPENSE'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'ADVANCE'), 0)
		FROM wallet_transactions
		WHERE wallet_id = $1 AND organization_id = $2
	`

	var b wallet.Balance
	err := q.QueryRow(ctx, query, walletID, organizationID).Scan(
		&b.TotalRefills, &b.TotalExpenses, &b.TotalAdvances,
	)
	if err != nil {
		return wallet.Balance{}, fmt.Errorf("failed to aggregate wallet balance: %w", err)
	}
	return b, nil
}

func (r *walletRepository) MonthlyExpenseSum(ctx context.Context, walletID string, organizationID string, year int, month int) (decimal.Decimal, error) {
	q := database.QuerierFromContext(ctx, r.db)

	var sum decimal.Decimal
	err := q.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM wallet_transactions
		 WHERE wallet_id = $1 AND organization_id = $2 AND type = 'EXPENSE'
		   AND EXTRACT(YEAR FROM date) = $3 AND EXTRACT(MONTH FROM date) = $4`,
		walletID, organizationID, year, month,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum monthly expenses: %w", err)
	}
	return sum, nil
}

func (r *walletRepository) AdvancesByWorkerForMonth(ctx context.Context, organizationID string, year int, month int) (map[string]decimal.Decimal, error) {
	q := database.QuerierFromContext(ctx, r.db)

	rows, err := q.Query(ctx,
		`SELECT worker_id, SUM(amount) FROM wallet_transactions
		 WHERE organization_id = $1 AND type = 'ADVANCE' AND worker_id IS NOT NULL
		   AND EXTRACT(YEAR FROM date) = $2 AND EXTRACT(MONTH FROM date) = $3
		 GROUP BY worker_id`,
		organizationID, year, month,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate advances: %w", err)
	}
	defer rows.Close()

	advances := make(map[string]decimal.Decimal)
	for rows.Next() {
		var workerID string
		var sum decimal.Decimal
		if err := rows.Scan(&workerID, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan advance sum: %w", err)
		}
		advances[workerID] = sum
	}
	return advances, rows.Err()
}

func (r *walletRepository) TotalAdvancesForWorker(ctx context.Context, workerID string, organizationID string) (decimal.Decimal, error) {
	q := database.QuerierFromContext(ctx, r.db)

	var sum decimal.Decimal
	err := q.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM wallet_transactions
		 WHERE organization_id = $1 AND type = 'ADVANCE' AND worker_id = $2`,
		organizationID, workerID,
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum worker advances: %w", err)
	}
	return sum, nil
}
