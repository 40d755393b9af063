package training

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/seirrozyx11/sikadVoltz-sub000/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// Repo is the session schedule store, on postgres. Plans are keyed by
// account id; at most one plan per account is active at a time.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// SavePlan persists a freshly generated plan, deactivating any previously
// active plan of the same account in the same transaction.
func (r *Repo) SavePlan(ctx context.Context, plan *Plan) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.savePlan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	goalJson, err := json.Marshal(plan.Goal)
	if err != nil {
		return nil, fmt.Errorf("marshal goal: %w", err)
	}
	settingsJson, err := json.Marshal(plan.Settings)
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}
	summaryJson, err := json.Marshal(plan.Summary)
	if err != nil {
		return nil, fmt.Errorf("marshal summary: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(
		ctx,
		`UPDATE training_plan SET is_active = FALSE WHERE account_id = $1 AND is_active;`,
		plan.AccountID,
	); err != nil {
		return nil, fmt.Errorf("deactivate previous plans: %w", err)
	}

	if err = tx.QueryRow(
		ctx,
		`INSERT INTO training_plan
				(account_id, plan_type, total_days, missed_count, total_missed_hours,
				 is_active, goal, settings, summary, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id;`,
		plan.AccountID, plan.Type, plan.TotalDays, plan.MissedCount, plan.TotalMissedHours,
		plan.IsActive, goalJson, settingsJson, summaryJson, plan.CreatedAt,
	).Scan(&plan.ID); err != nil {
		return nil, fmt.Errorf("insert plan: %w", err)
	}

	for i := range plan.Sessions {
		if err = r.insertSession(ctx, tx, plan.ID, &plan.Sessions[i]); err != nil {
			return nil, fmt.Errorf("insert session: %w", err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	span.SetAttributes(attribute.Int("plan.id", plan.ID))
	return plan, nil
}

func (r *Repo) insertSession(ctx context.Context, tx pgx.Tx, planID int, session *Session) error {
	var rescheduleJson []byte
	if session.Reschedule != nil {
		var err error
		rescheduleJson, err = json.Marshal(session.Reschedule)
		if err != nil {
			return fmt.Errorf("marshal reschedule info: %w", err)
		}
	}
	return tx.QueryRow(
		ctx,
		`INSERT INTO training_session
				(plan_id, session_date, planned_hours, adjusted_hours, completed_hours,
				 missed_hours, calories_burned, status, reschedule)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id;`,
		planID, session.Date, session.PlannedHours, session.AdjustedHours, session.CompletedHours,
		session.MissedHours, session.CaloriesBurned, session.Status, rescheduleJson,
	).Scan(&session.ID)
}

// GetActivePlan loads the single active plan of an account, with its
// sessions in schedule order and its adjustment history.
func (r *Repo) GetActivePlan(ctx context.Context, accountID string) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.getActivePlan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("account.id", accountID))
	return r.getPlan(ctx, accountID, true)
}

// GetLatestPlan loads the most recent plan regardless of active state, so
// an auto-paused plan can still be inspected and reset.
func (r *Repo) GetLatestPlan(ctx context.Context, accountID string) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.getLatestPlan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("account.id", accountID))
	return r.getPlan(ctx, accountID, false)
}

func (r *Repo) getPlan(ctx context.Context, accountID string, activeOnly bool) (*Plan, error) {
	query := `SELECT id, plan_type, total_days, missed_count, total_missed_hours,
				is_active, goal, settings, summary, created_at
			FROM training_plan
			WHERE account_id = $1`
	if activeOnly {
		query += ` AND is_active`
	}
	query += `
			ORDER BY created_at DESC
			LIMIT 1;`

	plan := &Plan{AccountID: accountID}
	var goalJson, settingsJson, summaryJson []byte
	err := r.db.QueryRow(
		ctx,
		query,
		accountID,
	).Scan(
		&plan.ID, &plan.Type, &plan.TotalDays, &plan.MissedCount, &plan.TotalMissedHours,
		&plan.IsActive, &goalJson, &settingsJson, &summaryJson, &plan.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query plan: %w", err)
	}

	if err = json.Unmarshal(goalJson, &plan.Goal); err != nil {
		return nil, fmt.Errorf("unmarshal goal: %w", err)
	}
	if err = json.Unmarshal(settingsJson, &plan.Settings); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	if err = json.Unmarshal(summaryJson, &plan.Summary); err != nil {
		return nil, fmt.Errorf("unmarshal summary: %w", err)
	}

	if plan.Sessions, err = r.planSessions(ctx, plan.ID); err != nil {
		return nil, err
	}
	if plan.Adjustments, err = r.planAdjustments(ctx, plan.ID); err != nil {
		return nil, err
	}

	return plan, nil
}

func (r *Repo) planSessions(ctx context.Context, planID int) ([]Session, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT id, session_date, planned_hours, adjusted_hours, completed_hours,
				missed_hours, calories_burned, status, reschedule
			FROM training_session
			WHERE plan_id = $1
			ORDER BY session_date, id;`,
		planID,
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		var rescheduleJson []byte
		if err := rows.Scan(
			&s.ID, &s.Date, &s.PlannedHours, &s.AdjustedHours, &s.CompletedHours,
			&s.MissedHours, &s.CaloriesBurned, &s.Status, &rescheduleJson,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if len(rescheduleJson) > 0 {
			s.Reschedule = &RescheduleInfo{}
			if err := json.Unmarshal(rescheduleJson, s.Reschedule); err != nil {
				return nil, fmt.Errorf("unmarshal reschedule info: %w", err)
			}
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *Repo) planAdjustments(ctx context.Context, planID int) ([]AdjustmentRecord, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT created_at, missed_hours, new_daily_target, reason, method
			FROM plan_adjustment
			WHERE plan_id = $1
			ORDER BY created_at, id;`,
		planID,
	)
	if err != nil {
		return nil, fmt.Errorf("query adjustments: %w", err)
	}
	defer rows.Close()

	var records []AdjustmentRecord
	for rows.Next() {
		var rec AdjustmentRecord
		if err := rows.Scan(
			&rec.Timestamp, &rec.MissedHours, &rec.NewDailyTarget, &rec.Reason, &rec.Method,
		); err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// UpdatePlan writes the plan counters, summary and all session rows back.
// New sessions (id 0, created by reschedule) are inserted, existing ones
// updated. Adjustment records are appended via AppendAdjustment.
func (r *Repo) UpdatePlan(ctx context.Context, plan *Plan) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.updatePlan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("plan.id", plan.ID))

	summaryJson, err := json.Marshal(plan.Summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	tag, err := tx.Exec(
		ctx,
		`UPDATE training_plan
			SET missed_count = $1, total_missed_hours = $2, is_active = $3, summary = $4
			WHERE id = $5;`,
		plan.MissedCount, plan.TotalMissedHours, plan.IsActive, summaryJson, plan.ID,
	)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}

	for i := range plan.Sessions {
		s := &plan.Sessions[i]
		if s.ID == 0 {
			if err = r.insertSession(ctx, tx, plan.ID, s); err != nil {
				return fmt.Errorf("insert session: %w", err)
			}
			continue
		}
		var rescheduleJson []byte
		if s.Reschedule != nil {
			if rescheduleJson, err = json.Marshal(s.Reschedule); err != nil {
				return fmt.Errorf("marshal reschedule info: %w", err)
			}
		}
		if _, err = tx.Exec(
			ctx,
			`UPDATE training_session
				SET session_date = $1, planned_hours = $2, adjusted_hours = $3,
					completed_hours = $4, missed_hours = $5, calories_burned = $6,
					status = $7, reschedule = $8
				WHERE id = $9 AND plan_id = $10;`,
			s.Date, s.PlannedHours, s.AdjustedHours, s.CompletedHours, s.MissedHours,
			s.CaloriesBurned, s.Status, rescheduleJson, s.ID, plan.ID,
		); err != nil {
			return fmt.Errorf("update session %d: %w", s.ID, err)
		}
	}

	return tx.Commit(ctx)
}

// AppendAdjustment stores one adjustment record. Records are append-only,
// there is no update or delete path.
func (r *Repo) AppendAdjustment(ctx context.Context, planID int, record AdjustmentRecord) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.appendAdjustment")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO plan_adjustment
				(plan_id, created_at, missed_hours, new_daily_target, reason, method)
			VALUES ($1, $2, $3, $4, $5, $6);`,
		planID, record.Timestamp, record.MissedHours, record.NewDailyTarget, record.Reason, record.Method,
	)
	return err
}

// ListActiveAccountIDs returns the accounts holding an active plan, for
// the periodic sweep.
func (r *Repo) ListActiveAccountIDs(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.training.listActiveAccountIds")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT DISTINCT account_id FROM training_plan WHERE is_active;`,
	)
	if err != nil {
		return nil, fmt.Errorf("query active accounts: %w", err)
	}
	defer rows.Close()

	var accountIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan account id: %w", err)
		}
		accountIDs = append(accountIDs, id)
	}
	return accountIDs, rows.Err()
}
