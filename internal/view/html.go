package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strconv"

	"rentadmin/internal/form"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Default header/footer used when the store's shared fragments cannot
// be fetched.
const (
	DefaultHeader = `<nav class="site-nav"><a href="/">Dashboard</a> <a href="/properties">Properties</a> <a href="/customers">Customers</a> <a href="/billing">Billing</a></nav>`
	DefaultFooter = `<p class="site-footer">Property rental administration</p>`
)

// Page carries everything a template needs for one render. Tables are
// rebuilt per request; nothing here survives the response.
type Page struct {
	Title    string
	AppTitle string
	Header   template.HTML
	Footer   template.HTML

	Path     string
	TableKey string
	Query    string
	SortCol  int    // -1 when unsorted
	SortDir  string // "asc" or "desc"

	Table          *Table
	Form           *form.State
	AvailableCount int

	Card    *Card
	Confirm *Confirm

	ConfirmDeletes bool
}

// Card is the info overlay content: read-only lines plus the path of
// the scannable code, positioned where the operator last dragged it.
type Card struct {
	Lines  []string
	QRPath string
	X, Y   int
	Back   string
}

// Confirm describes a pending destructive action.
type Confirm struct {
	Resource string
	ID       int64
	Return   string
}

// SortLink builds the header link for column col, flipping direction
// when the column is already the active sort.
func (p *Page) SortLink(col int) string {
	dir := "asc"
	if p.SortCol == col && p.SortDir == "asc" {
		dir = "desc"
	}
	v := url.Values{}
	v.Set("sort", strconv.Itoa(col))
	v.Set("dir", dir)
	if p.Query != "" {
		v.Set("q", p.Query)
	}
	return p.Path + "?" + v.Encode()
}

// ExportLink builds an export URL carrying the current filter and sort
// so exports see exactly the visible rows.
func (p *Page) ExportLink(format string) string {
	v := url.Values{}
	v.Set("table", p.TableKey)
	if p.Query != "" {
		v.Set("q", p.Query)
	}
	if p.SortCol >= 0 {
		v.Set("sort", strconv.Itoa(p.SortCol))
		v.Set("dir", p.SortDir)
	}
	return fmt.Sprintf("/export/%s?%s", format, v.Encode())
}

// Pages renders the embedded page templates.
type Pages struct {
	tmpl *template.Template
}

func NewPages() (*Pages, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	return &Pages{tmpl: tmpl}, nil
}

// Render executes the named page template.
func (p *Pages) Render(w io.Writer, name string, data *Page) error {
	return p.tmpl.ExecuteTemplate(w, name, data)
}
