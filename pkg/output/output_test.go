package output_test

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/hospital-exact/pkg/output"
	"github.com/shouni/hospital-exact/pkg/types"
)

var sampleRecords = []types.HospitalRecord{
	{
		Name:    "District Hospital Thrissur",
		Address: "Round South, Thrissur",
		Email:   "dhtsr@kerala.gov.in",
		Phone:   "0487 2427778",
		Pincode: "680001",
	},
	{
		Name:    "Mother Hospital",
		Address: "Pullazhi \"Olarikkara\"",
		Website: "https://mother.example/",
	},
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.WriteCSV(&buf, sampleRecords))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Name,Address,Email,Phone,Website,Pincode", lines[0])
	assert.Equal(t, `District Hospital Thrissur,"Round South, Thrissur",dhtsr@kerala.gov.in,0487 2427778,,680001`, lines[1])
	assert.Equal(t, `Mother Hospital,"Pullazhi ""Olarikkara""",,,https://mother.example/,`, lines[2])
}

func TestWriteCSV_EmptyRecordsWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.WriteCSV(&buf, nil))
	assert.Equal(t, "Name,Address,Email,Phone,Website,Pincode\n", buf.String())
}

func TestSaveCSV(t *testing.T) {
	t.Run("round_trips_through_a_csv_reader", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "thrissur_hospitals.csv")
		require.NoError(t, output.SaveCSV(path, sampleRecords))

		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()

		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, types.Columns, rows[0])
		assert.Equal(t, sampleRecords[0].Row(), rows[1])
		assert.Equal(t, sampleRecords[1].Row(), rows[2])
	})

	t.Run("missing_directory", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "out.csv")
		err := output.SaveCSV(path, sampleRecords)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})
}

func TestRenderPreview(t *testing.T) {
	t.Run("limits_rows", func(t *testing.T) {
		var buf bytes.Buffer
		output.RenderPreview(&buf, sampleRecords, 1)
		assert.Contains(t, buf.String(), "District Hospital Thrissur")
		assert.NotContains(t, buf.String(), "Mother Hospital")
	})

	t.Run("n_larger_than_records", func(t *testing.T) {
		var buf bytes.Buffer
		output.RenderPreview(&buf, sampleRecords, output.DefaultPreviewRows)
		assert.Contains(t, buf.String(), "District Hospital Thrissur")
		assert.Contains(t, buf.String(), "Mother Hospital")
	})

	t.Run("nothing_to_render", func(t *testing.T) {
		var buf bytes.Buffer
		output.RenderPreview(&buf, nil, 5)
		output.RenderPreview(&buf, sampleRecords, 0)
		assert.Empty(t, buf.String())
	})
}
