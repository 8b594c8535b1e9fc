package crawler

import (
	"strings"
	"testing"

	"github.com/acessolab/a11yscan/internal/fetch"
	"github.com/acessolab/a11yscan/internal/model"
)

func parsePage(t *testing.T, baseURL, body string) *model.Page {
	t.Helper()
	parser, err := NewParser(baseURL)
	if err != nil {
		t.Fatalf("NewParser() error = %v", err)
	}
	page, err := parser.Parse(&fetch.Page{URL: baseURL, StatusCode: 200, Body: []byte(body)})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return page
}

func TestParserDocumentBasics(t *testing.T) {
	t.Parallel()

	page := parsePage(t, "https://example.com", `<!DOCTYPE html>
<html lang="pt-BR">
<head>
  <title>Página Inicial</title>
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <meta name="description" content="Um site de exemplo">
</head>
<body>
  <h1>Bem-vindo</h1>
  <h2>Seção</h2>
</body>
</html>`)

	if page.Title != "Página Inicial" {
		t.Errorf("Title = %q, want %q", page.Title, "Página Inicial")
	}
	if page.Lang != "pt-BR" {
		t.Errorf("Lang = %q, want %q", page.Lang, "pt-BR")
	}
	if !page.HasViewportMeta {
		t.Error("HasViewportMeta = false, want true")
	}
	if !strings.Contains(page.Viewport, "width=device-width") {
		t.Errorf("Viewport = %q", page.Viewport)
	}
	if page.MetaTags["description"] != "Um site de exemplo" {
		t.Errorf("MetaTags[description] = %q", page.MetaTags["description"])
	}
	if len(page.Headings) != 2 {
		t.Fatalf("len(Headings) = %d, want 2", len(page.Headings))
	}
	if page.Headings[0].Level != 1 || page.Headings[0].Text != "Bem-vindo" {
		t.Errorf("Headings[0] = %+v", page.Headings[0])
	}
	if page.Hash == "" {
		t.Error("Hash should be computed")
	}
}

func TestParserImages(t *testing.T) {
	t.Parallel()

	page := parsePage(t, "https://example.com", `<html><body>
  <img src="a.png">
  <img src="b.png" alt="">
  <img src="c.png" alt="Gráfico de vendas">
  <img src="icon.png" alt="" class="icon-menu">
  <a href="/sobre">Sobre <img src="d.png" alt=""></a>
</body></html>`)

	if len(page.Images) != 5 {
		t.Fatalf("len(Images) = %d, want 5", len(page.Images))
	}
	if page.Images[0].HasAlt {
		t.Error("Images[0] has no alt attribute")
	}
	if !page.Images[1].HasAlt || page.Images[1].Alt != "" {
		t.Errorf("Images[1] = %+v, want empty alt present", page.Images[1])
	}
	if page.Images[2].Alt != "Gráfico de vendas" {
		t.Errorf("Images[2].Alt = %q", page.Images[2].Alt)
	}
	if page.Images[3].Classes != "icon-menu" {
		t.Errorf("Images[3].Classes = %q", page.Images[3].Classes)
	}
	if page.Images[3].InLinkWithText {
		t.Error("Images[3] is not inside a link")
	}
	if !page.Images[4].InLinkWithText {
		t.Error("Images[4] sits inside a link with text")
	}
}

func TestParserLinks(t *testing.T) {
	t.Parallel()

	page := parsePage(t, "https://example.com", `<html><body>
  <a href="/contato">Fale conosco</a>
  <a href="https://example.com/servicos">Serviços</a>
  <a href="https://other.example.org/x">Externo</a>
  <a href="#main-content" class="skip-link">Pular para conteúdo</a>
  <a href="/vazio"></a>
  <a href="/nova" target="_blank">Notícias</a>
  <a href="mailto:x@example.com">Email</a>
</body></html>`)

	if len(page.Links) != 7 {
		t.Fatalf("len(Links) = %d, want 7", len(page.Links))
	}
	if page.Links[0].Text != "Fale conosco" {
		t.Errorf("Links[0].Text = %q", page.Links[0].Text)
	}
	if page.Links[5].Target != "_blank" {
		t.Errorf("Links[5].Target = %q", page.Links[5].Target)
	}
	if len(page.SkipLinks) != 1 {
		t.Errorf("len(SkipLinks) = %d, want 1", len(page.SkipLinks))
	}

	// Internal links resolve relative hrefs and exclude other hosts,
	// fragments and mailto.
	want := map[string]bool{
		"https://example.com/contato":  true,
		"https://example.com/servicos": true,
		"https://example.com/vazio":    true,
		"https://example.com/nova":     true,
	}
	if len(page.InternalLinks) != len(want) {
		t.Fatalf("InternalLinks = %v", page.InternalLinks)
	}
	for _, link := range page.InternalLinks {
		if !want[link] {
			t.Errorf("unexpected internal link %q", link)
		}
	}
}

func TestParserForms(t *testing.T) {
	t.Parallel()

	page := parsePage(t, "https://example.com", `<html><body>
<form action="/buscar" method="post">
  <label for="q">Busca</label>
  <input type="text" id="q" name="q">
  <input type="email" name="email">
  <label>Mensagem <textarea name="msg"></textarea></label>
  <input type="text" name="tel" aria-label="Telefone">
  <input type="hidden" name="token" value="x">
  <input type="checkbox" name="aceito" required>
</form>
<select name="fora-do-form"></select>
</body></html>`)

	if len(page.Forms) != 1 {
		t.Fatalf("len(Forms) = %d, want 1", len(page.Forms))
	}
	form := page.Forms[0]
	if form.Method != "POST" {
		t.Errorf("Method = %q, want POST", form.Method)
	}
	if form.Action != "https://example.com/buscar" {
		t.Errorf("Action = %q", form.Action)
	}
	if len(form.Fields) != 6 {
		t.Fatalf("len(Fields) = %d, want 6", len(form.Fields))
	}

	byName := map[string]model.FormField{}
	for _, f := range form.Fields {
		byName[f.Name] = f
	}
	if !byName["q"].HasLabel {
		t.Error("field q has a label by for= reference")
	}
	if byName["email"].HasLabel || byName["email"].AriaLabel != "" {
		t.Error("field email has no label")
	}
	if !byName["msg"].HasLabel {
		t.Error("field msg is wrapped in a label")
	}
	if byName["tel"].AriaLabel != "Telefone" {
		t.Errorf("field tel AriaLabel = %q", byName["tel"].AriaLabel)
	}
	if !byName["token"].Hidden {
		t.Error("field token should be hidden")
	}
	if !byName["aceito"].Required {
		t.Error("field aceito should be required")
	}

	// Page-wide field list includes the select outside any form.
	if len(page.Fields) != 7 {
		t.Errorf("len(page.Fields) = %d, want 7", len(page.Fields))
	}
}

func TestParserTables(t *testing.T) {
	t.Parallel()

	page := parsePage(t, "https://example.com", `<html><body>
<table>
  <caption>Vendas</caption>
  <tr><th scope="col">Região</th><th>Total</th></tr>
  <tr><td>Sul</td><td>10</td></tr>
</table>
<table><tr><td>sem estrutura</td></tr></table>
</body></html>`)

	if len(page.Tables) != 2 {
		t.Fatalf("len(Tables) = %d, want 2", len(page.Tables))
	}
	first := page.Tables[0]
	if !first.HasCaption {
		t.Error("first table has a caption")
	}
	if first.HeaderCells != 2 {
		t.Errorf("HeaderCells = %d, want 2", first.HeaderCells)
	}
	if len(first.HeaderCellsWithoutScope) != 1 {
		t.Errorf("HeaderCellsWithoutScope = %v, want 1 entry", first.HeaderCellsWithoutScope)
	}
	if !strings.Contains(first.HeaderCellsWithoutScope[0], "Total") {
		t.Errorf("HeaderCellsWithoutScope[0] = %q, want th text included", first.HeaderCellsWithoutScope[0])
	}
	second := page.Tables[1]
	if second.HasCaption || second.HeaderCells != 0 {
		t.Errorf("second table = %+v", second)
	}
}

func TestParserMedia(t *testing.T) {
	t.Parallel()

	page := parsePage(t, "https://example.com", `<html><body>
<video autoplay><source src="v.mp4"></video>
<video controls><track kind="captions" src="legendas.vtt"></video>
<audio autoplay src="a.mp3"></audio>
</body></html>`)

	if len(page.Videos) != 2 {
		t.Fatalf("len(Videos) = %d, want 2", len(page.Videos))
	}
	if page.Videos[0].HasCaptions || !page.Videos[0].Autoplay {
		t.Errorf("Videos[0] = %+v", page.Videos[0])
	}
	if !page.Videos[1].HasCaptions || !page.Videos[1].HasControls {
		t.Errorf("Videos[1] = %+v", page.Videos[1])
	}
	if len(page.Audios) != 1 || !page.Audios[0].Autoplay {
		t.Errorf("Audios = %+v", page.Audios)
	}
}

func TestParserInteractiveAndAria(t *testing.T) {
	t.Parallel()

	page := parsePage(t, "https://example.com", `<html><body>
<div onclick="go()">Clique</div>
<span onclick="go()" tabindex="0" role="button">Ok</span>
<div role="navigation">menu</div>
<div role="banana">errado</div>
<h2 id="titulo">Título</h2>
<div aria-labelledby="titulo inexistente">conteúdo</div>
<div class="item-list"></div>
<div class="list-row"></div>
<p style="color: #777; background-color: #fff">texto</p>
</body></html>`)

	if len(page.ClickTargets) != 2 {
		t.Fatalf("len(ClickTargets) = %d, want 2", len(page.ClickTargets))
	}
	if page.ClickTargets[0].HasTabIndex || page.ClickTargets[0].Role != "" {
		t.Errorf("ClickTargets[0] = %+v", page.ClickTargets[0])
	}
	if !page.ClickTargets[1].HasTabIndex || page.ClickTargets[1].Role != "button" {
		t.Errorf("ClickTargets[1] = %+v", page.ClickTargets[1])
	}

	roles := map[string]bool{}
	for _, r := range page.RoledElements {
		roles[r.Role] = true
	}
	for _, want := range []string{"navigation", "banana", "button"} {
		if !roles[want] {
			t.Errorf("RoledElements missing role %q", want)
		}
	}

	if len(page.AriaRefs) != 1 {
		t.Fatalf("len(AriaRefs) = %d, want 1", len(page.AriaRefs))
	}
	if got := page.AriaRefs[0].IDs; len(got) != 2 || got[0] != "titulo" || got[1] != "inexistente" {
		t.Errorf("AriaRefs[0].IDs = %v", got)
	}
	if !page.IDs["titulo"] {
		t.Error("IDs should contain titulo")
	}
	if page.IDs["inexistente"] {
		t.Error("IDs should not contain inexistente")
	}

	if page.ListLikeDivs != 2 {
		t.Errorf("ListLikeDivs = %d, want 2", page.ListLikeDivs)
	}
	if len(page.StyledElements) != 1 {
		t.Fatalf("len(StyledElements) = %d, want 1", len(page.StyledElements))
	}
	if !strings.Contains(page.StyledElements[0].Style, "background-color") {
		t.Errorf("StyledElements[0].Style = %q", page.StyledElements[0].Style)
	}
}

func TestParserLandmarks(t *testing.T) {
	t.Parallel()

	t.Run("landmarks are distinct kinds", func(t *testing.T) {
		t.Parallel()
		page := parsePage(t, "https://example.com", `<html><body>
<header></header><nav></nav><nav></nav><main></main><footer></footer>
</body></html>`)
		if len(page.Landmarks) != 4 {
			t.Errorf("Landmarks = %v, want 4 distinct kinds", page.Landmarks)
		}
	})

	t.Run("no landmarks", func(t *testing.T) {
		t.Parallel()
		page := parsePage(t, "https://example.com", `<html><body><div>tudo em divs</div></body></html>`)
		if len(page.Landmarks) != 0 {
			t.Errorf("Landmarks = %v, want none", page.Landmarks)
		}
	})
}

func TestParserImageInputs(t *testing.T) {
	t.Parallel()

	page := parsePage(t, "https://example.com", `<html><body>
<input type="image" src="enviar.png">
<input type="image" src="ok.png" alt="Enviar">
</body></html>`)

	if len(page.ImageInputs) != 2 {
		t.Fatalf("len(ImageInputs) = %d, want 2", len(page.ImageInputs))
	}
	if page.ImageInputs[0].HasAlt {
		t.Error("ImageInputs[0] has no alt")
	}
	if !page.ImageInputs[1].HasAlt {
		t.Error("ImageInputs[1] has alt")
	}
}

func TestRenderStartTagTruncates(t *testing.T) {
	t.Parallel()

	longAlt := strings.Repeat("a", 300)
	page := parsePage(t, "https://example.com", `<html><body><img src="x.png" alt="`+longAlt+`"></body></html>`)
	if len(page.Images) != 1 {
		t.Fatalf("len(Images) = %d, want 1", len(page.Images))
	}
	if len(page.Images[0].HTML) > model.MaxElementSnippet {
		t.Errorf("snippet length = %d, want <= %d", len(page.Images[0].HTML), model.MaxElementSnippet)
	}
}
