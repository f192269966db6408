package view

import (
	"bytes"
	"strings"
	"testing"

	"rentadmin/internal/form"
	"rentadmin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderPage(t *testing.T, name string, page *Page) string {
	t.Helper()
	pages, err := NewPages()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, pages.Render(&buf, name, page))
	return buf.String()
}

func samplePage() *Page {
	r := NewRenderer("₹")
	return &Page{
		Title:    "Properties",
		AppTitle: "Rental Admin",
		Header:   DefaultHeader,
		Footer:   DefaultFooter,
		Path:     "/properties",
		TableKey: models.ResourceProperties,
		SortCol:  -1,
		Table: r.PropertyTable([]models.Property{
			{ID: 1, Title: "Flat 2B", Price: 500, Status: models.StatusAvailable},
		}),
	}
}

func TestRenderDashboard(t *testing.T) {
	page := samplePage()
	page.AvailableCount = 3
	out := renderPage(t, "dashboard", page)
	assert.Contains(t, out, `id="avail-count">3<`)
	assert.Contains(t, out, "Rental Admin")
}

func TestRenderPropertiesTable(t *testing.T) {
	out := renderPage(t, "properties", samplePage())
	assert.Contains(t, out, `id="propTable"`)
	assert.Contains(t, out, "₹500")
	assert.Contains(t, out, `class="status status-available"`)
	// Each row action posts to the shared dispatch endpoint.
	assert.Contains(t, out, `action="/action"`)
	assert.Contains(t, out, `name="action" value="delete"`)
	assert.Contains(t, out, `name="action" value="info"`)
}

func TestRenderCustomersForm(t *testing.T) {
	page := samplePage()
	page.Path = "/customers"
	page.TableKey = models.ResourceBilling
	page.Table = NewRenderer("₹").CustomerTable(nil)
	page.Form = form.NewState([]models.Property{
		{ID: 1, Title: "Flat 2B", Price: 500, Status: models.StatusAvailable},
		{ID: 2, Title: "Villa", Price: 2200, Status: models.StatusRented},
	}, "₹")

	out := renderPage(t, "customers", page)
	assert.Contains(t, out, "Add Customer Details")
	assert.Contains(t, out, `<option value="1">`)
	assert.NotContains(t, out, `<option value="2"`, "rented properties are not offered")
	assert.NotContains(t, out, `class="cancel"`, "cancel link only appears in edit mode")
}

func TestRenderCustomersEditForm(t *testing.T) {
	props := []models.Property{{ID: 1, Title: "Flat 2B", Price: 500, Status: models.StatusAvailable}}
	cust := models.Customer{ID: 10, Name: "Asha", Contact: "555-0101", PropertyID: 4, Property: "Villa", Date: "2026-09-01"}

	page := samplePage()
	page.Path = "/customers"
	page.Table = NewRenderer("₹").CustomerTable([]models.Customer{cust})
	page.Form = form.EditState(cust, props, "₹")

	out := renderPage(t, "customers", page)
	assert.Contains(t, out, "Edit Customer Details")
	assert.Contains(t, out, `name="cust_id" value="10"`)
	assert.Contains(t, out, `<option value="4" selected>`)
	assert.Contains(t, out, `class="cancel"`)
}

func TestRenderConfirm(t *testing.T) {
	page := samplePage()
	page.Confirm = &Confirm{Resource: models.ResourceBilling, ID: 12, Return: "/customers"}
	out := renderPage(t, "confirm", page)
	assert.Contains(t, out, `name="confirmed" value="1"`)
	assert.Contains(t, out, `name="id" value="12"`)
	assert.Contains(t, out, `href="/customers"`)
}

func TestRenderInfoCard(t *testing.T) {
	page := samplePage()
	page.Card = &Card{
		Lines:  []string{"Title: Flat 2B", "Rent: ₹500"},
		QRPath: "/info/qr.png?resource=properties&id=1",
		X:      40, Y: 80,
		Back: "/properties",
	}
	out := renderPage(t, "info", page)
	assert.Contains(t, out, "left:40px;top:80px")
	assert.Contains(t, out, "Title: Flat 2B")
	assert.Contains(t, out, "/info/qr.png?resource=properties&amp;id=1")
}

func TestRenderPrintOmitsActions(t *testing.T) {
	out := renderPage(t, "print", samplePage())
	assert.Contains(t, out, "window.print()")
	assert.Contains(t, out, "₹500")
	assert.False(t, strings.Contains(out, "Action"), "print view carries no action column")
	assert.NotContains(t, out, "/static/style.css", "print view is a standalone document")
}

func TestSortLink(t *testing.T) {
	p := &Page{Path: "/properties", SortCol: -1}
	assert.Equal(t, "/properties?dir=asc&sort=1", p.SortLink(1))

	p.SortCol, p.SortDir = 1, "asc"
	assert.Equal(t, "/properties?dir=desc&sort=1", p.SortLink(1))

	p.SortDir = "desc"
	assert.Equal(t, "/properties?dir=asc&sort=1", p.SortLink(1))

	p.Query = "flat"
	assert.Contains(t, p.SortLink(2), "q=flat")
}

func TestExportLink(t *testing.T) {
	p := &Page{Path: "/properties", TableKey: models.ResourceProperties, SortCol: -1}
	assert.Equal(t, "/export/csv?table=properties", p.ExportLink("csv"))

	p.Query = "flat"
	p.SortCol, p.SortDir = 1, "desc"
	link := p.ExportLink("xlsx")
	assert.Contains(t, link, "/export/xlsx?")
	assert.Contains(t, link, "table=properties")
	assert.Contains(t, link, "q=flat")
	assert.Contains(t, link, "sort=1")
	assert.Contains(t, link, "dir=desc")
}
