package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/linkhive/media-pipeline-go/internal/logger"
	"github.com/linkhive/media-pipeline-go/internal/model"
	"github.com/linkhive/media-pipeline-go/internal/port"
	"github.com/linkhive/media-pipeline-go/internal/usecase/media"

	"github.com/go-sql-driver/mysql"
)

const mysqlErrDuplicateEntry = 1062

// DescriptorRepository persists media descriptors in MySQL. All status
// writes go through compare-and-set statements so concurrent workers and
// retried jobs cannot trample each other's transitions.
type DescriptorRepository struct {
	db *sql.DB
}

// compile-time check: *DescriptorRepository must satisfy port.DescriptorRepository
var _ port.DescriptorRepository = (*DescriptorRepository)(nil)

func NewDescriptorRepository(db *sql.DB) *DescriptorRepository {
	return &DescriptorRepository{db: db}
}

const descriptorColumns = `
  id, owner, media_type, mime_type, media_uid, version, original_blob_name,
  status, processing_error, variants, aspect_ratio, dominant_color,
  width, height, duration, post_id, created_at, updated_at
`

func (r *DescriptorRepository) InsertPending(ctx context.Context, d *model.MediaDescriptor) error {
	logger.Infof(ctx, "creating database record for media %q, at status %q...", d.MediaUID, model.StatusPending)

	const query = `
      INSERT INTO media_descriptors
        (owner, media_type, mime_type, media_uid, version, original_blob_name, status, variants, post_id)
      VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	res, err := r.db.ExecContext(ctx, query,
		d.Owner, d.MediaType, d.MimeType,
		d.MediaUID, d.Version, d.OriginalBlobName,
		model.StatusPending, model.Variants{}, d.PostID,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
			// blob name already registered; the caller resolves idempotence
			return media.ErrConflict
		}
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = id
	d.Status = model.StatusPending
	return nil
}

func (r *DescriptorRepository) Transition(ctx context.Context, id int64, from []model.Status, to model.Status) error {
	logger.Infof(ctx, "transitioning media #%d to status %q...", id, to)

	query := fmt.Sprintf(`
      UPDATE media_descriptors
      SET status = ?
      WHERE id = ? AND status IN (%s)
    `, placeholders(len(from)))

	res, err := r.db.ExecContext(ctx, query, statusArgs(to, id, from)...)
	if err != nil {
		return err
	}
	return casOutcome(res)
}

func (r *DescriptorRepository) SetReady(ctx context.Context, id int64, variants model.Variants, meta model.ReadyMetadata) error {
	logger.Infof(ctx, "marking media #%d ready with %d variant(s)...", id, len(variants))

	const query = `
      UPDATE media_descriptors
      SET
        status           = ?,
        processing_error = NULL,
        variants         = ?,
        aspect_ratio     = ?,
        dominant_color   = ?,
        width            = ?,
        height           = ?,
        duration         = ?
      WHERE id = ? AND status = ?
    `
	res, err := r.db.ExecContext(ctx, query,
		model.StatusReady,
		variants,
		meta.AspectRatio,
		meta.DominantColor,
		meta.Width,
		meta.Height,
		meta.Duration,
		id, model.StatusProcessing,
	)
	if err != nil {
		return err
	}
	return casOutcome(res)
}

func (r *DescriptorRepository) SetFailed(ctx context.Context, id int64, from []model.Status, reason string) error {
	logger.Infof(ctx, "marking media #%d failed with reason %q...", id, reason)

	query := fmt.Sprintf(`
      UPDATE media_descriptors
      SET status = ?, processing_error = ?
      WHERE id = ? AND status IN (%s)
    `, placeholders(len(from)))

	args := []any{model.StatusFailed, reason, id}
	for _, s := range from {
		args = append(args, s)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return casOutcome(res)
}

func (r *DescriptorRepository) Reingest(ctx context.Context, id int64) error {
	logger.Infof(ctx, "re-entering the pipeline for media #%d...", id)

	const query = `
      UPDATE media_descriptors
      SET status = ?, version = version + 1, processing_error = NULL
      WHERE id = ? AND status IN (?, ?)
    `
	res, err := r.db.ExecContext(ctx, query,
		model.StatusUploaded, id,
		model.StatusReady, model.StatusFailed,
	)
	if err != nil {
		return err
	}
	return casOutcome(res)
}

func (r *DescriptorRepository) GetByID(ctx context.Context, id int64) (*model.MediaDescriptor, error) {
	logger.Infof(ctx, "fetching media #%d from the database...", id)

	query := `SELECT` + descriptorColumns + `FROM media_descriptors WHERE id = ?`
	return scanDescriptor(r.db.QueryRowContext(ctx, query, id))
}

func (r *DescriptorRepository) GetByBlobName(ctx context.Context, owner, blobName string) (*model.MediaDescriptor, error) {
	logger.Infof(ctx, "fetching media with blob name %q from the database...", blobName)

	query := `SELECT` + descriptorColumns + `FROM media_descriptors WHERE owner = ? AND original_blob_name = ?`
	return scanDescriptor(r.db.QueryRowContext(ctx, query, owner, blobName))
}

func (r *DescriptorRepository) GetByPost(ctx context.Context, postID int64) ([]*model.MediaDescriptor, error) {
	logger.Infof(ctx, "fetching medias for post #%d from the database...", postID)

	query := `SELECT` + descriptorColumns + `FROM media_descriptors WHERE post_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cErr := rows.Close(); cErr != nil {
			logger.Warnf(ctx, "could not close rows: %v", cErr)
		}
	}()

	var out []*model.MediaDescriptor
	for rows.Next() {
		d, err := scanDescriptor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DescriptorRepository) Delete(ctx context.Context, id int64) error {
	logger.Infof(ctx, "deleting media #%d from the database...", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM media_descriptors WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDescriptor(row rowScanner) (*model.MediaDescriptor, error) {
	var d model.MediaDescriptor
	if err := row.Scan(
		&d.ID, &d.Owner, &d.MediaType,
		&d.MimeType, &d.MediaUID, &d.Version,
		&d.OriginalBlobName, &d.Status, &d.ProcessingError,
		&d.Variants, &d.AspectRatio, &d.DominantColor,
		&d.Width, &d.Height, &d.Duration,
		&d.PostID, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// casOutcome turns a zero-row UPDATE into ErrConflict: either the row is
// gone or another writer moved the status first.
func casOutcome(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return media.ErrConflict
	}
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func statusArgs(to model.Status, id int64, from []model.Status) []any {
	args := []any{to, id}
	for _, s := range from {
		args = append(args, s)
	}
	return args
}
