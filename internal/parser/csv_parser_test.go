package parser

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMotions(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		rows     int
		findings []string
	}{
		{
			name:  "plain rows",
			input: "0,0,1,0,0,0,0\n1,0,0,0,0,0,inf\n",
			rows:  2,
		},
		{
			name:     "header and comments",
			input:    "# motions for the bracket\naxis_x,axis_y,axis_z,ref_x,ref_y,ref_z,pitch\n0, 0, 1, 0, 0, 0, 0\n\n# trailing\n",
			rows:     1,
			findings: []string{"Info: CSV row 1 treated as header."},
		},
		{
			name:  "trailing separators",
			input: "0,0,1,0,0,0,0,,\n",
			rows:  1,
		},
		{
			name:     "empty",
			input:    "# nothing here\n",
			rows:     0,
			findings: []string{"Warning: no motion rows found."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseMotions(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Len(t, parsed.Rows, tt.rows)
			for _, row := range parsed.Rows {
				assert.Len(t, row, MotionColumns)
			}
			if tt.findings == nil {
				assert.Empty(t, parsed.ParseErrors)
			} else {
				assert.Equal(t, tt.findings, parsed.ParseErrors)
			}
		})
	}
}

func TestParseMotionsValues(t *testing.T) {
	parsed, err := ParseMotions(strings.NewReader("0,0,1,2,3,4,0.5\n1,0,0,0,0,0,inf\n"))
	require.NoError(t, err)

	assert.Equal(t, []float64{0, 0, 1, 2, 3, 4, 0.5}, parsed.Rows[0])
	assert.True(t, math.IsInf(parsed.Rows[1][6], 1))
}

func TestParseMotionsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
	}{
		{"short row", "0,0,1,0,0,0\n", "CSV row 1 has 6 values"},
		{"long row", "0,0,1,0,0,0,0\n0,0,1,0,0,0,0,9\n", "CSV row 2 has 8 values"},
		{"bad number", "0,0,1,0,x,0,0\n", "CSV row 1 column 5"},
		{"header after data", "0,0,1,0,0,0,0\na,b,c,d,e,f,g\n", "CSV row 2 column 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMotions(strings.NewReader(tt.input))
			require.ErrorIs(t, err, ErrMalformedRow)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParseMotionFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "motions.csv")
	require.NoError(t, os.WriteFile(path, []byte("0,0,1,0,0,0,0\n"), 0o644))

	parsed, err := ParseMotionFile(path)
	require.NoError(t, err)
	assert.Len(t, parsed.Rows, 1)

	_, err = ParseMotionFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
