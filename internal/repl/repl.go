// Package repl drives the question/answer session: one line in, the full
// pipeline (schema snapshot, SQL synthesis, guardrail, execution, summary)
// out. Every pipeline error is caught here, printed under an [ERROR] label,
// and the session continues.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pterm/pterm"

	"github.com/askdb/askdb/internal/answer"
	"github.com/askdb/askdb/internal/executor"
	"github.com/askdb/askdb/internal/nl2sql"
)

type SchemaSource interface {
	SnapshotDDL(ctx context.Context) (string, error)
}

type Approver interface {
	Approve(candidate string) (string, error)
}

type QueryRunner interface {
	Execute(ctx context.Context, sqlText string) (executor.Result, error)
}

type Dependencies struct {
	Logger     *slog.Logger
	Schema     SchemaSource
	Translator nl2sql.Translator
	Guard      Approver
	Executor   QueryRunner
	Summarizer answer.Summarizer
}

type Options struct {
	DatabaseName string
	Stdin        io.Reader
	Stdout       io.Writer
}

// Run reads questions until exit/quit or EOF. A failed question never ends
// the session.
func Run(ctx context.Context, deps Dependencies, opts Options) error {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	if opts.Stdin == nil {
		return fmt.Errorf("stdin is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	fmt.Fprintf(stdout, "Ask about %s (type 'exit' to quit).\n", opts.DatabaseName)

	scanner := bufio.NewScanner(opts.Stdin)
	for {
		fmt.Fprint(stdout, "\nQ> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read question: %w", err)
			}
			fmt.Fprintln(stdout)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		switch strings.ToLower(question) {
		case "exit", "quit":
			return nil
		}

		if err := answerQuestion(ctx, deps, logger, stdout, question); err != nil {
			fmt.Fprintf(stdout, "\n[ERROR]\n%v\n", err)
		}
	}
}

func answerQuestion(ctx context.Context, deps Dependencies, logger *slog.Logger, stdout io.Writer, question string) error {
	logger.Debug("processing question", slog.String("question", question))

	ddl, err := deps.Schema.SnapshotDDL(ctx)
	if err != nil {
		return err
	}

	translated, err := deps.Translator.Translate(ctx, nl2sql.Request{
		Question:  question,
		SchemaDDL: ddl,
	})
	if err != nil {
		return err
	}
	logger.Debug("candidate sql", slog.String("sql", translated.SQL), slog.String("model", translated.Model))

	approved, err := deps.Guard.Approve(translated.SQL)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "\n[SQL]\n%s\n", approved)

	result, err := deps.Executor.Execute(ctx, approved)
	if err != nil {
		return err
	}
	logger.Debug("query executed",
		slog.Int("rows", len(result.Rows)),
		slog.Duration("duration", result.Duration))
	fmt.Fprintf(stdout, "\n[RESULT]\n%s\n", renderResult(result))

	summary, err := deps.Summarizer.Summarize(ctx, question, result.Columns, result.Rows)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "\n[ANSWER]\n%s\n", summary)
	return nil
}

func renderResult(result executor.Result) string {
	if len(result.Columns) == 0 || len(result.Rows) == 0 {
		return "(no rows)"
	}

	data := pterm.TableData{result.Columns}
	for _, row := range result.Rows {
		cells := make([]string, len(row))
		for i, value := range row {
			cells[i] = formatCell(value)
		}
		data = append(data, cells)
	}

	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		// Table rendering is cosmetic; fall back to one row per line.
		var b strings.Builder
		for _, row := range data {
			b.WriteString(strings.Join(row, "\t"))
			b.WriteString("\n")
		}
		return strings.TrimRight(b.String(), "\n")
	}
	return strings.TrimRight(rendered, "\n")
}

func formatCell(value any) string {
	if value == nil {
		return "NULL"
	}
	return fmt.Sprint(value)
}
