package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/morningstarxcdcode/dgc-platform/internal/domain"
)

type nftRepo struct {
	pool *pgxpool.Pool
}

func NewNFTRepository(pool *pgxpool.Pool) domain.NFTRepository {
	return &nftRepo{pool: pool}
}

func (r *nftRepo) Upsert(ctx context.Context, nft *domain.NFT) error {
	query := `
		INSERT INTO dgc_nft
			(token_id, name, description, image_url, content_url, content_type,
			 creator_address, owner_address, metadata_cid, provenance_hash,
			 model_version, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (token_id) DO UPDATE SET
			name=EXCLUDED.name, description=EXCLUDED.description,
			image_url=EXCLUDED.image_url, content_url=EXCLUDED.content_url,
			content_type=EXCLUDED.content_type,
			creator_address=EXCLUDED.creator_address,
			owner_address=EXCLUDED.owner_address,
			metadata_cid=EXCLUDED.metadata_cid,
			provenance_hash=EXCLUDED.provenance_hash,
			model_version=EXCLUDED.model_version
	`

	_, err := r.pool.Exec(ctx, query,
		nft.TokenID, nft.Name, nft.Description, nft.ImageURL, nft.ContentURL,
		string(nft.ContentType), nft.CreatorAddress, nft.OwnerAddress,
		nft.MetadataCID, nft.ProvenanceHash, nft.ModelVersion, nft.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrNFTConflict
		}
		return fmt.Errorf("upsert nft: %w", err)
	}
	return nil
}

func (r *nftRepo) GetByTokenID(ctx context.Context, tokenID int64) (*domain.NFT, error) {
	query := `
		SELECT token_id, name, description, image_url, content_url, content_type,
			   creator_address, owner_address, metadata_cid, provenance_hash,
			   model_version, created_at
		FROM dgc_nft
		WHERE token_id = $1
	`

	nft, err := scanNFT(r.pool.QueryRow(ctx, query, tokenID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNFTNotFound
		}
		return nil, fmt.Errorf("get nft by token id: %w", err)
	}
	return nft, nil
}

func (r *nftRepo) Delete(ctx context.Context, tokenID int64) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM dgc_nft WHERE token_id = $1`, tokenID)
	if err != nil {
		return fmt.Errorf("delete nft: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNFTNotFound
	}
	return nil
}

func (r *nftRepo) List(ctx context.Context, filter domain.NFTFilter) ([]*domain.NFT, int, error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	argPos := 1

	if filter.ContentType != "" {
		conditions = append(conditions, fmt.Sprintf("content_type = $%d", argPos))
		args = append(args, string(filter.ContentType))
		argPos++
	}
	if filter.Creator != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(creator_address) = LOWER($%d)", argPos))
		args = append(args, filter.Creator)
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM dgc_nft WHERE %s", whereClause)
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count nfts: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT token_id, name, description, image_url, content_url, content_type,
			   creator_address, owner_address, metadata_cid, provenance_hash,
			   model_version, created_at
		FROM dgc_nft
		WHERE %s
		ORDER BY created_at DESC, token_id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)

	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list nfts: %w", err)
	}
	defer rows.Close()

	var nfts []*domain.NFT
	for rows.Next() {
		nft, err := scanNFT(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan nft row: %w", err)
		}
		nfts = append(nfts, nft)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate nft rows: %w", err)
	}

	return nfts, total, nil
}

func (r *nftRepo) ListByCreator(ctx context.Context, creator string) ([]*domain.NFT, error) {
	query := `
		SELECT token_id, name, description, image_url, content_url, content_type,
			   creator_address, owner_address, metadata_cid, provenance_hash,
			   model_version, created_at
		FROM dgc_nft
		WHERE LOWER(creator_address) = LOWER($1)
		ORDER BY created_at DESC, token_id DESC
	`

	rows, err := r.pool.Query(ctx, query, creator)
	if err != nil {
		return nil, fmt.Errorf("list nfts by creator: %w", err)
	}
	defer rows.Close()

	var nfts []*domain.NFT
	for rows.Next() {
		nft, err := scanNFT(rows)
		if err != nil {
			return nil, fmt.Errorf("scan nft row: %w", err)
		}
		nfts = append(nfts, nft)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nft rows: %w", err)
	}

	return nfts, nil
}

func (r *nftRepo) CountCreators(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(DISTINCT LOWER(creator_address)) FROM dgc_nft`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count creators: %w", err)
	}
	return count, nil
}

func (r *nftRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM dgc_nft`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count nfts: %w", err)
	}
	return count, nil
}

func scanNFT(row pgx.Row) (*domain.NFT, error) {
	nft := &domain.NFT{}
	var contentType string

	err := row.Scan(
		&nft.TokenID, &nft.Name, &nft.Description, &nft.ImageURL, &nft.ContentURL,
		&contentType, &nft.CreatorAddress, &nft.OwnerAddress,
		&nft.MetadataCID, &nft.ProvenanceHash, &nft.ModelVersion, &nft.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	nft.ContentType = domain.ContentType(contentType)
	return nft, nil
}
