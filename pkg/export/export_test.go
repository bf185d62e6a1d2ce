package export

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCSVExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"Day", "Present"},
		Rows: []map[string]string{
			{"Day": "2021-09-01", "Present": "12"},
			{"Day": "2021-09-02", "Present": "10"},
		},
	}

	payload, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	require.Equal(t, "Day,Present\n2021-09-01,12\n2021-09-02,10\n", string(payload))
}

func TestCSVExporterRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	data := Dataset{
		Headers: []string{"Day", "Present"},
		Rows:    []map[string]string{{"Day": "2021-09-01", "Present": "12"}},
	}

	payload, err := NewPDFExporter().Render(data, "Attendance")
	require.NoError(t, err)
	require.True(t, len(payload) > 0)
	require.Equal(t, "%PDF", string(payload[:4]))
}
