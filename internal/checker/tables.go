package checker

import (
	"context"

	"github.com/acessolab/a11yscan/internal/model"
)

// TableCheck verifies data-table markup: captions, header cells and
// scope attributes.
// WCAG 2.2 - 1.3.1 (Nível A), ABNT NBR 17225:2025 - 5.3.1.
type TableCheck struct{}

// NewTableCheck creates the table-structure check.
func NewTableCheck() *TableCheck {
	return &TableCheck{}
}

// Name returns the check's name.
func (c *TableCheck) Name() string {
	return "tabelas"
}

// Criterion returns the covered WCAG criterion.
func (c *TableCheck) Criterion() string {
	return "1.3.1"
}

// Analyze reports tables without captions, without header cells and
// header cells lacking scope.
func (c *TableCheck) Analyze(_ context.Context, page *model.Page) ([]model.Issue, error) {
	var issues []model.Issue

	for _, table := range page.Tables {
		if !table.HasCaption {
			issues = append(issues, model.NewIssue(
				"1.3.1 - Estrutura de Tabelas",
				"Tabela sem <caption>",
				model.SeverityModerate).
				WithElement(table.HTML).
				WithSuggestion("Adicione <caption> descrevendo o propósito da tabela").
				WithExample("<table>\n  <caption>Vendas por região em 2024</caption>\n  ...\n</table>"))
		}

		if table.HeaderCells == 0 {
			issues = append(issues, model.NewIssue(
				"1.3.1 - Estrutura de Tabelas",
				"Tabela sem elementos <th> para cabeçalhos",
				model.SeveritySerious).
				WithElement(table.HTML).
				WithSuggestion("Use <th> para células de cabeçalho e <thead> para agrupar").
				WithExample("<table>\n  <thead>\n    <tr><th>Coluna 1</th><th>Coluna 2</th></tr>\n  </thead>\n  <tbody>...</tbody>\n</table>"))
		}

		for _, th := range table.HeaderCellsWithoutScope {
			issues = append(issues, model.NewIssue(
				"1.3.1 - Estrutura de Tabelas",
				"Elemento <th> sem atributo scope",
				model.SeverityLow).
				WithElement(th).
				WithSuggestion("Adicione scope='col' ou scope='row' ao <th>").
				WithExample(`<th scope="col">Nome da Coluna</th>`))
		}
	}

	return issues, nil
}
