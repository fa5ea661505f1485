package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"plan-measure/measure"
)

var list = []measure.Measurement{
	{ID: "a", Name: "Kitchen", Width: 200, Height: 40, AreaM2: 5},
	{ID: "b", Name: "Hall, east", Width: 100, Height: 150, AreaM2: 1.5},
	{ID: "c", Name: "Closet", Width: 33, Height: 33, AreaM2: 0.1089},
}

func TestRows(t *testing.T) {
	rows := Rows(list)

	require.Len(t, rows, 4)
	assert.Equal(t, Row{Name: "Kitchen", Area: 5}, rows[0])
	assert.Equal(t, Row{Name: "Closet", Area: 0.11}, rows[2])
	assert.Equal(t, Row{Name: TotalName, Area: 6.61}, rows[3])
}

func TestRowsEmpty(t *testing.T) {
	assert.Equal(t, []Row{{Name: TotalName, Area: 0}}, Rows(nil))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "CSV", list))

	want := "Name,Area (m²)\n" +
		"Kitchen,5.00\n" +
		"\"Hall, east\",1.50\n" +
		"Closet,0.11\n" +
		"Total,6.61\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "xlsx", list))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, Header, rows[0])
	assert.Equal(t, []string{"Kitchen", "5"}, rows[1])
	assert.Equal(t, []string{"Total", "6.61"}, rows[4])
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, "pdf", list))
}
