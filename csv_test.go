package digisim

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpCSV_ForwardFillsEveryColumnAtEveryRecordedTimestamp(t *testing.T) {
	dir := t.TempDir()
	n := New("mod4", WithOutputDir(dir))

	src, err := n.AddSource("x", 2, []Change{{At: 1, Value: 1}, {At: 2, Value: 2}})
	require.NoError(t, err)
	sink, err := n.AddSink("y", 0)
	require.NoError(t, err)
	n.Connect(src.Output(), sink)

	require.NoError(t, n.Run(3))

	f, err := os.Open(filepath.Join(dir, "mod4.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	header := rows[0]
	assert.Equal(t, []string{"Time", "Input to x", "Final Output from y"}, header)

	// x changes at t=0,1,2; y (its sink) changes at t=1,2. The dump always
	// adds a row at 0 (already present here) and one at max_time+1=3, each
	// forward-filling from the most recent sample.
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"0", "0", "0"}, rows[1])
	assert.Equal(t, []string{"1", "1", "1"}, rows[2])
	assert.Equal(t, []string{"2", "2", "2"}, rows[3])
	assert.Equal(t, []string{"3", "2", "2"}, rows[4])
}

func TestDumpCSV_CreatesOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "dir")
	n := New("t", WithOutputDir(dir))
	_, err := n.AddSource("x", 1, nil)
	require.NoError(t, err)

	require.NoError(t, n.Run(1))

	_, err = os.Stat(filepath.Join(dir, "t.csv"))
	require.NoError(t, err)
}
