// Package nl2sql turns a natural-language question into candidate SQL by
// prompting a chat model with the live schema DDL. The returned text is
// untrusted model output; the guardrail decides whether it may execute.
package nl2sql

import (
	"context"
	"fmt"
	"strings"
)

type Request struct {
	Question  string
	SchemaDDL string
}

type Result struct {
	SQL   string
	Model string
}

type Translator interface {
	Translate(ctx context.Context, req Request) (Result, error)
}

// Completer is the slice of the chat client the translator needs.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Model() string
}

const systemPrompt = "You are a careful SQL generator for relational databases."

const promptTemplate = `You translate a user question into a single SQL SELECT query.

Rules:
- Output ONLY SQL (no prose, no backticks, no comments).
- Absolutely no DML/DDL (no INSERT/UPDATE/DELETE/ALTER/CREATE/DROP).
- Use explicit JOINs, short table aliases.
- Prefer safe defaults: if no limit is requested, add LIMIT 100.
- Use column and table names exactly as defined.

Here is the database DDL:
%s

Question:
%s
`

type ChatTranslator struct {
	completer Completer
}

func NewChatTranslator(completer Completer) *ChatTranslator {
	return &ChatTranslator{completer: completer}
}

func (t *ChatTranslator) Translate(ctx context.Context, req Request) (Result, error) {
	if strings.TrimSpace(req.Question) == "" {
		return Result{}, fmt.Errorf("question is required")
	}

	userPrompt := fmt.Sprintf(promptTemplate, req.SchemaDDL, strings.TrimSpace(req.Question))
	reply, err := t.completer.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return Result{}, fmt.Errorf("generate sql: %w", err)
	}

	sql := stripMarkdownSQL(reply)
	if strings.TrimSpace(sql) == "" {
		return Result{}, fmt.Errorf("model returned empty SQL")
	}
	return Result{SQL: sql, Model: t.completer.Model()}, nil
}

// Models add fences despite being told not to.
func stripMarkdownSQL(value string) string {
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```sql")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(trimmed, "```")
		return strings.TrimSpace(trimmed)
	}
	return trimmed
}
