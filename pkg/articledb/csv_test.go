package articledb

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "articles.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func collect(t *testing.T, path string) []Article {
	t.Helper()
	out := make(chan Article)
	done, err := StreamCSV(path, out)
	require.NoError(t, err)
	defer close(done)

	var got []Article
	for a := range out {
		got = append(got, a)
	}
	return got
}

func TestStreamCSV(t *testing.T) {
	path := writeCSV(t, `title,authors,publish_date,url,text,tags,label
Moon hoax,alice,2024-01-01,https://fakenews.com/moon,staged landing,space,0
Budget passes,bob,2024-01-02,https://localnews.org/budget,council approved,politics,1
`)

	got := collect(t, path)
	require.Len(t, got, 2)
	require.Equal(t, "Moon hoax", got[0].Title)
	require.Equal(t, 0, got[0].Label)
	require.Equal(t, "https://localnews.org/budget", got[1].URL)
	require.Equal(t, 1, got[1].Label)
}

func TestStreamCSVSkipsBadRecords(t *testing.T) {
	path := writeCSV(t, `title,authors,publish_date,url,text,tags,label
Good,alice,2024-01-01,https://a.com/1,text,tag,1
Bad label,bob,2024-01-02,https://a.com/2,text,tag,not-a-number
Short,row
Also good,carol,2024-01-03,https://a.com/3,text,tag,0
`)

	got := collect(t, path)
	require.Len(t, got, 2)
	require.Equal(t, "Good", got[0].Title)
	require.Equal(t, "Also good", got[1].Title)
}

func TestStreamCSVHeaderMismatch(t *testing.T) {
	path := writeCSV(t, "a,b,c,d,e,f,g\n")
	_, err := StreamCSV(path, make(chan Article))
	require.ErrorContains(t, err, "csv column")
}

func TestStreamCSVMissingFile(t *testing.T) {
	_, err := StreamCSV(filepath.Join(t.TempDir(), "nope.csv"), make(chan Article))
	require.Error(t, err)
}
