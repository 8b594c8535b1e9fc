package model

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"
)

const (
	// MaxSnapshotSize limits how much of the body is kept as a text snapshot.
	MaxSnapshotSize = 1000

	// MaxElementSnippet limits rendered start-tag snippets attached to issues.
	MaxElementSnippet = 120
)

// Page represents a fetched and parsed HTML page. The parser pre-extracts
// everything the accessibility checks need so that each check can run
// without walking the DOM again.
type Page struct {
	// URL is the final URL after redirects.
	URL string

	// StatusCode is the HTTP response status.
	StatusCode int

	// Headers holds the response headers.
	Headers http.Header

	// ContentType is the Content-Type header value.
	ContentType string

	// Title is the text of the <title> element. HasTitle distinguishes
	// an absent tag from one with empty text.
	Title    string
	HasTitle bool

	// Lang is the lang attribute of the <html> element.
	Lang string

	// Viewport is the content of the viewport meta tag, empty when absent.
	Viewport string

	// HasViewportMeta reports whether a viewport meta tag exists at all,
	// distinguishing a missing tag from one with empty content.
	HasViewportMeta bool

	// MetaTags maps meta names to their content values.
	MetaTags map[string]string

	// Headings lists heading elements in document order.
	Headings []Heading

	// Landmarks lists HTML5 sectioning landmarks present on the page
	// (header, nav, main, footer, aside, section, article).
	Landmarks []string

	// Images lists all <img> elements.
	Images []Image

	// ImageInputs lists <input type="image"> elements.
	ImageInputs []FormField

	// Links lists all <a> elements.
	Links []Link

	// Forms lists all <form> elements with their fields.
	Forms []Form

	// Fields lists every form control on the page, including ones
	// outside any <form>.
	Fields []FormField

	// Tables lists all <table> elements.
	Tables []Table

	// Videos and Audios list media elements.
	Videos []Media
	Audios []Media

	// StyledElements lists elements carrying an inline style attribute.
	StyledElements []StyledElement

	// ClickTargets lists div and span elements with click handlers.
	ClickTargets []ClickTarget

	// RoledElements lists elements carrying a role attribute.
	RoledElements []RoledElement

	// AriaRefs lists aria-labelledby and aria-describedby references.
	AriaRefs []AriaRef

	// IDs is the set of element ids present on the page, used to
	// validate ARIA references.
	IDs map[string]bool

	// ListLikeDivs counts divs whose class names suggest list content.
	ListLikeDivs int

	// SkipLinks lists in-page anchors near the top of the document that
	// look like bypass links.
	SkipLinks []Link

	// InternalLinks lists absolute same-host URLs found on the page,
	// used by the crawler to discover further pages.
	InternalLinks []string

	// Raw is the response body.
	Raw []byte

	// Snapshot is a truncated text extract of the body.
	Snapshot string

	// Hash is the SHA-256 of the body, hex encoded.
	Hash string
}

// Heading is a heading element (h1..h6).
type Heading struct {
	Level int
	Text  string
	HTML  string
}

// Image is an <img> element with the context needed by the alt-text check.
type Image struct {
	Src    string
	Alt    string
	HasAlt bool
	// Classes holds the raw class attribute, inspected for decorative hints.
	Classes string
	// InLinkWithText reports whether the image sits inside a link that
	// already has its own text.
	InLinkWithText bool
	HTML           string
}

// Link is an <a> element.
type Link struct {
	Href      string
	Text      string
	AriaLabel string
	Title     string
	Target    string
	HasImage  bool
	HTML      string
}

// Form is a <form> element together with its fields.
type Form struct {
	Action string
	Method string
	Fields []FormField
	HTML   string
}

// FormField is a form control (input, select, textarea).
type FormField struct {
	Tag            string
	Type           string
	Name           string
	ID             string
	AriaLabel      string
	AriaLabelledBy string
	AriaRequired   string
	TitleAttr      string
	Required       bool
	Hidden         bool
	// HasLabel reports whether a <label> is associated with the field,
	// either by for= reference or by wrapping.
	HasLabel bool
	HasAlt   bool
	HTML     string
}

// Table is a <table> element summary.
type Table struct {
	HasCaption bool
	// HeaderCells counts <th> elements; zero means no header row markup.
	HeaderCells int
	// HeaderCellsWithoutScope holds the rendered start tags of <th>
	// elements lacking a scope attribute.
	HeaderCellsWithoutScope []string
	HTML                    string
}

// Media is a <video> or <audio> element summary.
type Media struct {
	Tag         string
	HasCaptions bool
	Autoplay    bool
	HasControls bool
	HTML        string
}

// StyledElement is any element with an inline style attribute.
type StyledElement struct {
	Tag   string
	Style string
	HTML  string
}

// ClickTarget is a div or span wired up as a click handler.
type ClickTarget struct {
	Tag         string
	Role        string
	TabIndex    string
	HasTabIndex bool
	HTML        string
}

// RoledElement is any element carrying an explicit ARIA role.
type RoledElement struct {
	Tag  string
	Role string
	HTML string
}

// AriaRef is an aria-labelledby or aria-describedby attribute value,
// split into the ids it references.
type AriaRef struct {
	Attr string
	IDs  []string
	HTML string
}

// ComputeHash fills the Hash field from the raw body.
func (p *Page) ComputeHash() {
	sum := sha256.Sum256(p.Raw)
	p.Hash = hex.EncodeToString(sum[:])
}
