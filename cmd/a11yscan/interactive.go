package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/acessolab/a11yscan/internal/config"
	"github.com/acessolab/a11yscan/internal/database"
	"github.com/acessolab/a11yscan/internal/model"
	"github.com/acessolab/a11yscan/internal/pipeline"
	"github.com/acessolab/a11yscan/internal/report"
)

// defaultTargetURL is evaluated when the user submits an empty URL.
const defaultTargetURL = "https://example.com"

// ErrInputClosed is returned when the input stream ends before the
// session finishes its prompts.
var ErrInputClosed = errors.New("input closed")

// affirmativeAnswers are the accepted ways of answering yes to the
// export prompt, lowercase.
var affirmativeAnswers = map[string]bool{
	"s":   true,
	"sim": true,
	"y":   true,
	"yes": true,
}

// InteractiveSession runs the prompt-driven evaluation flow: ask for a
// URL, evaluate it, print the report, and optionally export it as JSON.
type InteractiveSession struct {
	in     *bufio.Reader
	out    io.Writer
	cfg    *config.Config
	db     *database.AuditDB
	logger *slog.Logger
}

// SessionOption configures an InteractiveSession.
type SessionOption func(*InteractiveSession)

// WithSessionLogger sets the logger for the session.
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *InteractiveSession) {
		s.logger = logger
	}
}

// WithSessionDatabase enables recording each evaluation in the audit
// history database.
func WithSessionDatabase(db *database.AuditDB) SessionOption {
	return func(s *InteractiveSession) {
		s.db = db
	}
}

// NewInteractiveSession creates a session reading prompts from in and
// writing everything user-visible to out.
func NewInteractiveSession(in io.Reader, out io.Writer, cfg *config.Config, opts ...SessionOption) *InteractiveSession {
	s := &InteractiveSession{
		in:     bufio.NewReader(in),
		out:    out,
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one full interactive evaluation.
func (s *InteractiveSession) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Avaliador de Acessibilidade Web")
	fmt.Fprintln(s.out, "Alinhado com WCAG 2.2 e ABNT NBR 17225:2025")
	fmt.Fprintln(s.out)

	target, err := s.readTarget()
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "\nAvaliando acessibilidade de: %s\n\n", target)

	rep := model.NewReport(target)
	p := pipeline.DefaultPipeline(s.cfg, target, pipeline.WithLogger(s.logger))
	if err := p.Execute(ctx, rep); err != nil {
		// The failure is already recorded on the report and shown to
		// the user by the console writer.
		s.logger.Error("evaluation failed", "url", target, "error", err)
	}

	if _, err := report.NewConsoleWriter(s.out).Write(rep); err != nil {
		return fmt.Errorf("failed to print report: %w", err)
	}

	if s.db != nil && rep.Error == "" {
		if err := s.db.SaveAudit(ctx, rep); err != nil {
			s.logger.Warn("could not record audit", "url", target, "error", err)
		}
	}

	if rep.Error != "" {
		return nil
	}

	return s.offerExport(rep)
}

// readTarget prompts for the URL to evaluate, falling back to the
// default when the user submits an empty line.
func (s *InteractiveSession) readTarget() (string, error) {
	target, err := s.prompt("Digite a URL do website a ser avaliado: ")
	if err != nil {
		return "", err
	}
	if target == "" {
		target = defaultTargetURL
		fmt.Fprintf(s.out, "Usando URL padrão: %s\n\n", target)
	}
	return target, nil
}

// offerExport asks whether to export the report as JSON and writes the
// file when the user accepts.
func (s *InteractiveSession) offerExport(rep *model.Report) error {
	answer, err := s.prompt("\nDeseja exportar o relatório em JSON? (s/n): ")
	if err != nil {
		if errors.Is(err, ErrInputClosed) {
			return nil
		}
		return err
	}
	if !affirmativeAnswers[strings.ToLower(answer)] {
		return nil
	}

	name, err := s.prompt("Nome do arquivo (deixe em branco para usar padrão): ")
	if err != nil && !errors.Is(err, ErrInputClosed) {
		return err
	}

	path, err := report.ExportJSON(rep, name)
	if err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}

	fmt.Fprintf(s.out, "Relatório exportado para: %s\n", path)
	return nil
}

// prompt prints the given text and reads one trimmed line of input.
func (s *InteractiveSession) prompt(text string) (string, error) {
	fmt.Fprint(s.out, text)

	line, err := s.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line == "" {
			return "", ErrInputClosed
		}
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
	}
	return strings.TrimSpace(line), nil
}
