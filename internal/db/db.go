// Package db provides PostgreSQL persistence for conversations and
// structured query results.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/talent-query/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// CreateConversation creates a new conversation record and returns its ID
func (db *DB) CreateConversation(ctx context.Context) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO conversations DEFAULT VALUES RETURNING id`,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return id, nil
}

// SaveTurn appends a turn to a conversation. The structured output, when
// present, is stored as JSON alongside the turn text.
func (db *DB) SaveTurn(ctx context.Context, conversationID uuid.UUID, turn types.ConversationTurn) error {
	var output []byte
	if turn.PriorOutput != nil {
		b, err := json.Marshal(turn.PriorOutput)
		if err != nil {
			return fmt.Errorf("failed to marshal turn output: %w", err)
		}
		output = b
	}

	_, err := db.pool.Exec(ctx,
		`INSERT INTO conversation_turns (conversation_id, role, text, output)
		 VALUES ($1, $2, $3, $4)`,
		conversationID, string(turn.Role), turn.Text, output,
	)
	if err != nil {
		return fmt.Errorf("failed to save turn: %w", err)
	}
	return nil
}

// RecentTurns loads the most recent turns of a conversation in
// chronological order, newest last.
func (db *DB) RecentTurns(ctx context.Context, conversationID uuid.UUID, limit int) ([]types.ConversationTurn, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := db.pool.Query(ctx,
		`SELECT role, text, output FROM (
		     SELECT role, text, output, created_at
		     FROM conversation_turns
		     WHERE conversation_id = $1
		     ORDER BY created_at DESC
		     LIMIT $2
		 ) recent ORDER BY created_at ASC`,
		conversationID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load turns: %w", err)
	}
	defer rows.Close()

	turns := []types.ConversationTurn{}
	for rows.Next() {
		var role, text string
		var output []byte
		if err := rows.Scan(&role, &text, &output); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}

		turn := types.ConversationTurn{Role: types.TurnRole(role), Text: text}
		if len(output) > 0 {
			var out types.StructuredOutput
			if err := json.Unmarshal(output, &out); err != nil {
				return nil, fmt.Errorf("failed to unmarshal turn output: %w", err)
			}
			turn.PriorOutput = &out
		}
		turns = append(turns, turn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate turns: %w", err)
	}
	return turns, nil
}

// SaveResult records a processed query result for auditing
func (db *DB) SaveResult(ctx context.Context, requestID uuid.UUID, queryType types.QueryType, output *types.StructuredOutput) error {
	jsonBytes, err := json.Marshal(output)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO query_results (request_id, query_type, output)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (request_id) DO UPDATE SET query_type = $2, output = $3, created_at = NOW()`,
		requestID, string(queryType), jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}
	return nil
}

// GetResult retrieves a stored result by request ID. Returns nil when the
// request is unknown.
func (db *DB) GetResult(ctx context.Context, requestID uuid.UUID) (*types.StructuredOutput, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT output FROM query_results WHERE request_id = $1`,
		requestID,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get result: %w", err)
	}

	var out types.StructuredOutput
	if err := json.Unmarshal(content, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result: %w", err)
	}
	return &out, nil
}
