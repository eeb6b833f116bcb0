package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"ewastewatch/internal/domain"
	"ewastewatch/internal/ports"
	"ewastewatch/internal/workflow"
)

// ReportRepository

const reportColumns = `id, image_ref, image_digest, image_content_type, image_size,
	lat, lng, address, waste_type, confidence, status, verification, created_at, updated_at`

func scanReport(row pgx.Row) (domain.Report, error) {
	var r domain.Report
	var v *verificationJSON
	err := row.Scan(&r.ID, &r.Image.Ref, &r.Image.Digest, &r.Image.ContentType, &r.Image.Size,
		&r.Location.Lat, &r.Location.Lng, &r.Location.Address, &r.WasteType, &r.Confidence,
		&r.Status, &v, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return r, err
	}
	r.VerificationResult = v.decode()
	r.CreatedAt = r.CreatedAt.UTC()
	r.UpdatedAt = r.UpdatedAt.UTC()
	return r, nil
}

func (db *DB) ListReports(ctx context.Context, f ports.ReportFilter) ([]domain.Report, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+reportColumns+`
		FROM reports
		WHERE ($1::text = '' OR status = $1::text)
		ORDER BY created_at DESC, id
		LIMIT NULLIF($2::int, 0)
	`, string(f.Status), f.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Report{}
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (db *DB) GetReport(ctx context.Context, id string) (domain.Report, error) {
	r, err := scanReport(db.Pool.QueryRow(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, id))
	return r, notFound(err, "report", id)
}

func (db *DB) UpdateReportStatus(ctx context.Context, id string, from, to domain.ReportStatus, at time.Time) (domain.Report, error) {
	r, err := scanReport(db.Pool.QueryRow(ctx, `
		UPDATE reports SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
		RETURNING `+reportColumns, id, string(from), string(to), at))
	if err == nil {
		return r, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return r, err
	}
	// either missing or moved on since it was read
	cur, gerr := db.GetReport(ctx, id)
	if gerr != nil {
		return domain.Report{}, gerr
	}
	return domain.Report{}, domain.Conflict(fmt.Sprintf("report %s is %s, expected %s", id, cur.Status, from))
}

func insertReport(ctx context.Context, tx pgx.Tx, r domain.Report) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO reports (`+reportColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, r.ID, r.Image.Ref, r.Image.Digest, r.Image.ContentType, r.Image.Size,
		r.Location.Lat, r.Location.Lng, r.Location.Address, string(r.WasteType), r.Confidence,
		string(r.Status), encodeVerification(r.VerificationResult), r.CreatedAt, r.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.Conflict(fmt.Sprintf("report %s already exists", r.ID))
	}
	return err
}

// DraftRepository

func (db *DB) CreateDraft(ctx context.Context, d workflow.Draft) (workflow.Draft, error) {
	d.Version = 1
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO report_drafts (id, version, state, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, d.ID, d.Version, string(d.State), encodeDraft(d), d.CreatedAt, d.UpdatedAt)
	if isUniqueViolation(err) {
		return workflow.Draft{}, domain.Conflict(fmt.Sprintf("draft %s already exists", d.ID))
	}
	if err != nil {
		return workflow.Draft{}, err
	}
	return d, nil
}

func (db *DB) GetDraft(ctx context.Context, id string) (workflow.Draft, error) {
	d := workflow.Draft{ID: id}
	var state string
	var reportID *string
	var payload draftJSON
	err := db.Pool.QueryRow(ctx, `
		SELECT version, state, payload, report_id, created_at, updated_at
		FROM report_drafts WHERE id = $1
	`, id).Scan(&d.Version, &state, &payload, &reportID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return workflow.Draft{}, notFound(err, "draft", id)
	}
	d.State = workflow.State(state)
	if reportID != nil {
		d.ReportID = *reportID
	}
	d.CreatedAt = d.CreatedAt.UTC()
	d.UpdatedAt = d.UpdatedAt.UTC()
	payload.decode(&d)
	return d, nil
}

func (db *DB) SaveDraft(ctx context.Context, d workflow.Draft) (workflow.Draft, error) {
	var saved workflow.Draft
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		saved, err = updateDraft(ctx, tx, d)
		return err
	})
	return saved, err
}

func (db *DB) SubmitDraft(ctx context.Context, d workflow.Draft, r domain.Report) (workflow.Draft, error) {
	var saved workflow.Draft
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		if err := insertReport(ctx, tx, r); err != nil {
			return err
		}
		var err error
		saved, err = updateDraft(ctx, tx, d)
		return err
	})
	return saved, err
}

// updateDraft writes d if its version is still current.
func updateDraft(ctx context.Context, tx pgx.Tx, d workflow.Draft) (workflow.Draft, error) {
	var reportID *string
	if d.ReportID != "" {
		reportID = &d.ReportID
	}
	tag, err := tx.Exec(ctx, `
		UPDATE report_drafts
		SET version = version + 1, state = $3, payload = $4, report_id = $5, updated_at = $6
		WHERE id = $1 AND version = $2
	`, d.ID, d.Version, string(d.State), encodeDraft(d), reportID, d.UpdatedAt)
	if err != nil {
		return workflow.Draft{}, err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM report_drafts WHERE id = $1)`, d.ID).Scan(&exists); err != nil {
			return workflow.Draft{}, err
		}
		if !exists {
			return workflow.Draft{}, domain.NotFound("draft", d.ID)
		}
		return workflow.Draft{}, domain.Conflict(fmt.Sprintf("draft %s was modified concurrently", d.ID))
	}
	d.Version++
	return d, nil
}

// ImageStore, used when no external image host is configured.

func (db *DB) PutImage(ctx context.Context, data []byte, contentType string) (domain.ImageRef, error) {
	if len(data) == 0 {
		return domain.ImageRef{}, domain.Validation("image", "image is empty")
	}
	digest := domain.DigestOf(data)
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO draft_images (digest, content_type, data) VALUES ($1, $2, $3)
		ON CONFLICT (digest) DO NOTHING
	`, digest, contentType, data)
	if err != nil {
		return domain.ImageRef{}, err
	}
	return domain.ImageRef{Ref: "db://" + digest, Digest: digest, ContentType: contentType, Size: len(data)}, nil
}

func (db *DB) GetImage(ctx context.Context, ref domain.ImageRef) ([]byte, error) {
	var data []byte
	err := db.Pool.QueryRow(ctx, `SELECT data FROM draft_images WHERE digest = $1`, ref.Digest).Scan(&data)
	return data, notFound(err, "image", ref.Ref)
}

// HotspotRepository

func (db *DB) ListHotspots(ctx context.Context) ([]domain.Hotspot, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id, lat, lng, radius_meters, severity, report_count, cleaned_count, last_report_date, is_predicted
		FROM hotspots
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []domain.Hotspot{}
	for rows.Next() {
		var h domain.Hotspot
		var last *time.Time
		if err := rows.Scan(&h.ID, &h.Center.Lat, &h.Center.Lng, &h.RadiusMeters, &h.Severity,
			&h.ReportCount, &h.CleanedCount, &last, &h.IsPredicted); err != nil {
			return nil, err
		}
		if last != nil {
			h.LastReportDate = last.UTC()
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// ReplaceHotspots swaps the whole set in one transaction so readers never see
// a partial recompute.
func (db *DB) ReplaceHotspots(ctx context.Context, hs []domain.Hotspot) error {
	return db.inTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM hotspots`); err != nil {
			return err
		}
		rows := make([][]any, 0, len(hs))
		for _, h := range hs {
			var last *time.Time
			if !h.LastReportDate.IsZero() {
				t := h.LastReportDate
				last = &t
			}
			rows = append(rows, []any{h.ID, h.Center.Lat, h.Center.Lng, h.RadiusMeters, string(h.Severity),
				h.ReportCount, h.CleanedCount, last, h.IsPredicted})
		}
		_, err := tx.CopyFrom(ctx, pgx.Identifier{"hotspots"},
			[]string{"id", "lat", "lng", "radius_meters", "severity", "report_count", "cleaned_count", "last_report_date", "is_predicted"},
			pgx.CopyFromRows(rows))
		return err
	})
}
