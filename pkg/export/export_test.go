package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Title:   "Timetable 10A",
		Headers: []string{"Period", "Monday", "Tuesday"},
		Rows: [][]string{
			{"8:00-9:00", "Math (Ana)", ""},
			{"9:00-10:00", "", "Physics, Lab (Budi)"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.Equal(t, "Period,Monday,Tuesday\n8:00-9:00,Math (Ana),\n9:00-10:00,,\"Physics, Lab (Budi)\"\n", string(out))
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRenderRejectsRaggedRows(t *testing.T) {
	data := sampleDataset()
	data.Rows = append(data.Rows, []string{"only-one"})

	_, err := NewCSVExporter().Render(data)
	require.Error(t, err)
	_, err = NewPDFExporter().Render(data)
	require.Error(t, err)
}

func TestColumnWidthsFillPage(t *testing.T) {
	widths := columnWidths(6)
	var total float64
	for _, w := range widths {
		total += w
	}
	assert.InDelta(t, pageWidthLandscape, total, 0.001)
	assert.Equal(t, firstColumnWidth, widths[0])
}
