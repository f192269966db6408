package export

import (
	"bytes"
	"strings"
	"testing"

	"rentadmin/internal/models"
	"rentadmin/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func exportTable() *view.Table {
	r := view.NewRenderer("₹")
	return r.PropertyTable([]models.Property{
		{ID: 1, Title: "Flat 2B", Price: 500, Status: models.StatusAvailable},
		{ID: 2, Title: "Villa, Garden Wing", Price: 2200, Status: models.StatusRented},
	})
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, exportTable()))

	lines := strings.Split(buf.String(), "\r\n")
	require.Len(t, lines, 4, "header, two rows, trailing terminator")
	assert.Equal(t, `"#","Title","Rent","Status"`, lines[0])
	assert.Equal(t, `"1","Flat 2B","₹500","available"`, lines[1])
	assert.Equal(t, `"2","Villa; Garden Wing","₹2200","rented"`, lines[2])
	assert.Empty(t, lines[3])

	assert.NotContains(t, buf.String(), "Delete", "actions are not data")
}

func TestWriteCSVSkipsHiddenRows(t *testing.T) {
	tbl := exportTable()
	tbl.Rows[1].Hidden = true

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, tbl))
	assert.NotContains(t, buf.String(), "Villa")
	assert.Contains(t, buf.String(), "Flat 2B")
}

func TestCSVFieldEscaping(t *testing.T) {
	assert.Equal(t, `"plain"`, csvField("plain"))
	assert.Equal(t, `"a;b"`, csvField("a,b"))
	assert.Equal(t, `"say ""hi"""`, csvField(`say "hi"`))
	assert.Equal(t, `"line one line two"`, csvField("line one\r\nline two"))
}

func TestWriteExcel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteExcel(&buf, exportTable()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Properties"}, f.GetSheetList())

	got, err := f.GetCellValue("Properties", "B1")
	require.NoError(t, err)
	assert.Equal(t, "Title", got)

	got, err = f.GetCellValue("Properties", "C2")
	require.NoError(t, err)
	assert.Equal(t, "₹500", got)

	got, err = f.GetCellValue("Properties", "D3")
	require.NoError(t, err)
	assert.Equal(t, "rented", got)
}

func TestWriteExcelSkipsHiddenRows(t *testing.T) {
	tbl := exportTable()
	tbl.Rows[0].Hidden = true

	var buf bytes.Buffer
	require.NoError(t, WriteExcel(&buf, tbl))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetCellValue("Properties", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Villa, Garden Wing", got)

	got, err = f.GetCellValue("Properties", "B3")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileName(t *testing.T) {
	name := FileName(models.ResourceProperties, "csv")
	assert.True(t, strings.HasPrefix(name, "properties_export_"))
	assert.True(t, strings.HasSuffix(name, ".csv"))
}
