package crawler

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/acessolab/a11yscan/internal/fetch"
	"github.com/acessolab/a11yscan/internal/model"
)

// Parser turns a fetched document into a model.Page. It walks the DOM
// once and pre-extracts every element group the accessibility checks
// inspect, so the checks themselves never touch the DOM.
type Parser struct {
	baseURL *url.URL
}

// landmarkTags are the HTML5 sectioning elements counted as landmarks.
var landmarkTags = []string{"header", "nav", "main", "footer", "aside", "section"}

// listLikeClass matches class names that suggest list content rendered
// with divs instead of ul/ol.
var listLikeClass = regexp.MustCompile(`(?i)list|item`)

// NewParser creates a parser that resolves relative URLs against baseURL.
func NewParser(baseURL string) (*Parser, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	return &Parser{baseURL: u}, nil
}

// Parse builds a model.Page from a fetched document.
func (p *Parser) Parse(fetched *fetch.Page) (*model.Page, error) {
	doc, err := html.Parse(bytes.NewReader(fetched.Body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	page := &model.Page{
		URL:         fetched.URL,
		StatusCode:  fetched.StatusCode,
		Headers:     fetched.Headers,
		ContentType: fetched.ContentType,
		MetaTags:    map[string]string{},
		IDs:         map[string]bool{},
		Raw:         fetched.Body,
	}
	page.ComputeHash()

	landmarks := map[string]bool{}
	var labelTargets []string
	var textContent strings.Builder

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			p.processElement(n, page, landmarks, &labelTargets)
		case html.TextNode:
			textContent.WriteString(n.Data)
			textContent.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	for _, tag := range landmarkTags {
		if landmarks[tag] {
			page.Landmarks = append(page.Landmarks, tag)
		}
	}

	// Label association by for= reference can only be settled after the
	// whole document has been seen.
	targeted := map[string]bool{}
	for _, id := range labelTargets {
		targeted[id] = true
	}
	for i := range page.Fields {
		if page.Fields[i].ID != "" && targeted[page.Fields[i].ID] {
			page.Fields[i].HasLabel = true
		}
	}
	for fi := range page.Forms {
		for i := range page.Forms[fi].Fields {
			f := &page.Forms[fi].Fields[i]
			if f.ID != "" && targeted[f.ID] {
				f.HasLabel = true
			}
		}
	}

	page.Snapshot = truncate(strings.Join(strings.Fields(textContent.String()), " "), model.MaxSnapshotSize)
	return page, nil
}

func (p *Parser) processElement(n *html.Node, page *model.Page, landmarks map[string]bool, labelTargets *[]string) {
	if id := getAttr(n, "id"); id != "" {
		page.IDs[id] = true
	}

	switch n.Data {
	case "html":
		page.Lang = getAttr(n, "lang")

	case "title":
		if !page.HasTitle {
			page.HasTitle = true
			page.Title = strings.TrimSpace(nodeText(n))
		}

	case "meta":
		name := getAttr(n, "name")
		content := getAttr(n, "content")
		if name != "" {
			page.MetaTags[name] = content
			if strings.EqualFold(name, "viewport") {
				page.HasViewportMeta = true
				page.Viewport = content
			}
		}

	case "h1", "h2", "h3", "h4", "h5", "h6":
		page.Headings = append(page.Headings, model.Heading{
			Level: int(n.Data[1] - '0'),
			Text:  strings.TrimSpace(nodeText(n)),
			HTML:  renderStartTag(n),
		})

	case "header", "nav", "main", "footer", "aside", "section":
		landmarks[n.Data] = true

	case "img":
		alt, hasAlt := lookupAttr(n, "alt")
		page.Images = append(page.Images, model.Image{
			Src:            getAttr(n, "src"),
			Alt:            alt,
			HasAlt:         hasAlt,
			Classes:        getAttr(n, "class"),
			InLinkWithText: inLinkWithText(n),
			HTML:           renderStartTag(n),
		})

	case "a":
		if _, hasHref := lookupAttr(n, "href"); !hasHref {
			break
		}
		link := model.Link{
			Href:      getAttr(n, "href"),
			Text:      strings.TrimSpace(nodeText(n)),
			AriaLabel: getAttr(n, "aria-label"),
			Title:     getAttr(n, "title"),
			Target:    getAttr(n, "target"),
			HasImage:  hasDescendant(n, "img"),
			HTML:      renderStartTag(n),
		}
		page.Links = append(page.Links, link)
		if strings.HasPrefix(link.Href, "#") {
			page.SkipLinks = append(page.SkipLinks, link)
		}
		if resolved := p.resolveURL(link.Href); resolved != "" && p.sameHost(resolved) {
			page.InternalLinks = append(page.InternalLinks, resolved)
		}

	case "form":
		form := model.Form{
			Action: p.resolveURL(getAttr(n, "action")),
			Method: strings.ToUpper(getAttr(n, "method")),
			HTML:   renderStartTag(n),
		}
		if form.Method == "" {
			form.Method = "GET"
		}
		collectFields(n, &form.Fields)
		page.Forms = append(page.Forms, form)

	case "input", "select", "textarea":
		field := newFormField(n)
		if n.Data == "input" && strings.EqualFold(field.Type, "image") {
			page.ImageInputs = append(page.ImageInputs, field)
		}
		page.Fields = append(page.Fields, field)

	case "label":
		if target := getAttr(n, "for"); target != "" {
			*labelTargets = append(*labelTargets, target)
		}

	case "table":
		page.Tables = append(page.Tables, summarizeTable(n))

	case "video", "audio":
		media := model.Media{
			Tag:         n.Data,
			Autoplay:    hasAttr(n, "autoplay"),
			HasControls: hasAttr(n, "controls"),
			HTML:        renderStartTag(n),
		}
		if n.Data == "video" {
			media.HasCaptions = hasCaptionTrack(n)
			page.Videos = append(page.Videos, media)
		} else {
			page.Audios = append(page.Audios, media)
		}

	case "div", "span":
		if hasAttr(n, "onclick") {
			tabindex, hasTabindex := lookupAttr(n, "tabindex")
			page.ClickTargets = append(page.ClickTargets, model.ClickTarget{
				Tag:         n.Data,
				Role:        getAttr(n, "role"),
				TabIndex:    tabindex,
				HasTabIndex: hasTabindex,
				HTML:        renderStartTag(n),
			})
		}
		if n.Data == "div" && listLikeClass.MatchString(getAttr(n, "class")) {
			page.ListLikeDivs++
		}
	}

	if style := getAttr(n, "style"); style != "" {
		page.StyledElements = append(page.StyledElements, model.StyledElement{
			Tag:   n.Data,
			Style: style,
			HTML:  renderStartTag(n),
		})
	}
	if role := getAttr(n, "role"); role != "" {
		page.RoledElements = append(page.RoledElements, model.RoledElement{
			Tag:  n.Data,
			Role: role,
			HTML: renderStartTag(n),
		})
	}
	if refs := getAttr(n, "aria-labelledby"); refs != "" {
		page.AriaRefs = append(page.AriaRefs, model.AriaRef{
			Attr: "aria-labelledby",
			IDs:  strings.Fields(refs),
			HTML: renderStartTag(n),
		})
	}
}

// newFormField extracts the attributes the form checks inspect.
// HasLabel is only partially settled here; association by for= reference
// is resolved after the full document walk.
func newFormField(n *html.Node) model.FormField {
	typ := getAttr(n, "type")
	if typ == "" {
		switch n.Data {
		case "textarea":
			typ = "textarea"
		case "select":
			typ = "select"
		default:
			typ = "text"
		}
	}
	_, hasAlt := lookupAttr(n, "alt")
	return model.FormField{
		Tag:            n.Data,
		Type:           typ,
		Name:           getAttr(n, "name"),
		ID:             getAttr(n, "id"),
		AriaLabel:      getAttr(n, "aria-label"),
		AriaLabelledBy: getAttr(n, "aria-labelledby"),
		AriaRequired:   getAttr(n, "aria-required"),
		TitleAttr:      getAttr(n, "title"),
		Required:       hasAttr(n, "required"),
		Hidden:         strings.EqualFold(typ, "hidden"),
		HasLabel:       hasAncestor(n, "label"),
		HasAlt:         hasAlt,
		HTML:           renderStartTag(n),
	}
}

// collectFields gathers form controls inside a form subtree.
func collectFields(n *html.Node, fields *[]model.FormField) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "input", "select", "textarea":
			*fields = append(*fields, newFormField(n))
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectFields(c, fields)
	}
}

// summarizeTable inspects a table subtree for caption and header markup.
func summarizeTable(table *html.Node) model.Table {
	t := model.Table{HTML: renderStartTag(table)}
	var scan func(n *html.Node)
	scan = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "caption":
				t.HasCaption = true
			case "th":
				t.HeaderCells++
				if !hasAttr(n, "scope") {
					t.HeaderCellsWithoutScope = append(t.HeaderCellsWithoutScope, renderElement(n))
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			scan(c)
		}
	}
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		scan(c)
	}
	return t
}

// hasCaptionTrack reports whether a video has a caption track child.
func hasCaptionTrack(video *html.Node) bool {
	for c := video.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "track" &&
			strings.EqualFold(getAttr(c, "kind"), "captions") {
			return true
		}
	}
	return false
}

// inLinkWithText reports whether an image sits inside a link that has
// its own text, which makes the image decorative.
func inLinkWithText(img *html.Node) bool {
	for a := img.Parent; a != nil; a = a.Parent {
		if a.Type == html.ElementNode && a.Data == "a" {
			return strings.TrimSpace(nodeText(a)) != ""
		}
	}
	return false
}

func hasAncestor(n *html.Node, tag string) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == tag {
			return true
		}
	}
	return false
}

func hasDescendant(n *html.Node, tag string) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return true
		}
		if hasDescendant(c, tag) {
			return true
		}
	}
	return false
}

// nodeText returns the concatenated text content of a subtree.
func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// renderStartTag renders an element's opening tag with its attributes,
// truncated so that issue snippets stay readable.
func renderStartTag(n *html.Node) string {
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(n.Data)
	for _, attr := range n.Attr {
		sb.WriteString(" ")
		sb.WriteString(attr.Key)
		sb.WriteString(`="`)
		sb.WriteString(attr.Val)
		sb.WriteString(`"`)
	}
	sb.WriteString(">")
	return truncate(sb.String(), model.MaxElementSnippet)
}

// renderElement renders an element with its text content, used where
// the text is what distinguishes otherwise identical tags.
func renderElement(n *html.Node) string {
	start := renderStartTag(n)
	text := strings.TrimSpace(nodeText(n))
	return truncate(fmt.Sprintf("%s%s</%s>", start, text, n.Data), model.MaxElementSnippet)
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}

// resolveURL resolves a relative URL against the base URL, skipping
// schemes that cannot be crawled.
func (p *Parser) resolveURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" ||
		strings.HasPrefix(href, "#") ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return p.baseURL.ResolveReference(u).String()
}

// sameHost reports whether a resolved URL points at the evaluated host.
func (p *Parser) sameHost(link string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Hostname(), p.baseURL.Hostname())
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

// lookupAttr retrieves an attribute value and whether it is present,
// which matters for attributes like alt where absence and emptiness are
// different problems.
func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val, true
		}
	}
	return "", false
}

// hasAttr reports whether an attribute is present regardless of value.
func hasAttr(n *html.Node, key string) bool {
	_, ok := lookupAttr(n, key)
	return ok
}
