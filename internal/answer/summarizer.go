// Package answer turns a query result back into plain English. Only a bounded
// preview of the result ever reaches the model, keeping payload size and model
// cost flat regardless of result size.
package answer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const DefaultPreviewRows = 50

type Summarizer interface {
	Summarize(ctx context.Context, question string, columns []string, rows [][]any) (string, error)
}

// Completer is the slice of the chat client the summarizer needs.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

const systemPrompt = "You write short, clear answers for non-technical users."

type preview struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

type ChatSummarizer struct {
	completer   Completer
	previewRows int
}

func NewChatSummarizer(completer Completer, previewRows int) *ChatSummarizer {
	if previewRows <= 0 {
		previewRows = DefaultPreviewRows
	}
	return &ChatSummarizer{completer: completer, previewRows: previewRows}
}

func (s *ChatSummarizer) Summarize(ctx context.Context, question string, columns []string, rows [][]any) (string, error) {
	previewJSON, err := buildPreviewJSON(columns, rows, s.previewRows)
	if err != nil {
		return "", fmt.Errorf("serialize result preview: %w", err)
	}

	userPrompt := fmt.Sprintf(
		"Question: %s\nResult JSON: %s\nWrite a concise answer in plain English.",
		question, previewJSON,
	)
	reply, err := s.completer.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", fmt.Errorf("summarize result: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

func buildPreviewJSON(columns []string, rows [][]any, maxRows int) (string, error) {
	if len(rows) > maxRows {
		rows = rows[:maxRows]
	}
	coerced := make([][]any, len(rows))
	for i, row := range rows {
		coerced[i] = make([]any, len(row))
		for j, value := range row {
			coerced[i][j] = coerceValue(value)
		}
	}
	if columns == nil {
		columns = []string{}
	}

	payload, err := json.Marshal(preview{Columns: columns, Rows: coerced})
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// Database-native values that JSON cannot carry are rendered as strings.
func coerceValue(value any) any {
	switch typed := value.(type) {
	case nil, bool, string,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number:
		return typed
	case []byte:
		return string(typed)
	case time.Time:
		return typed.Format(time.RFC3339)
	default:
		return fmt.Sprint(typed)
	}
}
