package postgres

import (
	"context"
	"time"

	"dashboard-analytics-service/internal/chatbot/core/domain"
	"dashboard-analytics-service/internal/chatbot/core/ports"
	"dashboard-analytics-service/internal/platform/daterange"
)

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

// ConversationRepository reads the chatbot row sets from Postgres.
type ConversationRepository struct {
	db DB
}

func NewConversationRepository(db DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

var _ ports.ConversationReaderPort = (*ConversationRepository)(nil)

const fetchMessagesSQL = `
SELECT session_id, created_at
FROM chatbot_messages
WHERE created_at >= $1 AND created_at < $2
ORDER BY created_at ASC`

const fetchFormSubmissionsSQL = `
SELECT created_at
FROM form_submissions
WHERE created_at >= $1 AND created_at < $2
ORDER BY created_at ASC`

const fetchPropertyRequestsSQL = `
SELECT created_at, COALESCE(status, '')
FROM property_requests
WHERE created_at >= $1 AND created_at < $2
ORDER BY created_at ASC`

// rangeBounds converts the inclusive calendar-date range into a
// half-open timestamp window covering To's full day.
func rangeBounds(r daterange.Range) (time.Time, time.Time) {
	return r.From, r.To.AddDate(0, 0, 1)
}

func (r *ConversationRepository) FetchMessages(ctx context.Context, rng daterange.Range) ([]domain.Message, error) {
	from, to := rangeBounds(rng)
	rows, err := r.db.QueryContext(ctx, fetchMessagesSQL, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.SessionID, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ConversationRepository) FetchFormSubmissions(ctx context.Context, rng daterange.Range) ([]domain.FormSubmission, error) {
	from, to := rangeBounds(rng)
	rows, err := r.db.QueryContext(ctx, fetchFormSubmissionsSQL, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FormSubmission
	for rows.Next() {
		var f domain.FormSubmission
		if err := rows.Scan(&f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ConversationRepository) FetchPropertyRequests(ctx context.Context, rng daterange.Range) ([]domain.PropertyRequest, error) {
	from, to := rangeBounds(rng)
	rows, err := r.db.QueryContext(ctx, fetchPropertyRequestsSQL, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PropertyRequest
	for rows.Next() {
		var q domain.PropertyRequest
		if err := rows.Scan(&q.CreatedAt, &q.Status); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
