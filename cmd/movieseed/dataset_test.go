package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"movieinfo/memory"
	"movieinfo/movieinfo"
	"movieinfo/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `name,year,cast,release_date
Dark Knight Rises,2012,Christian Bale|Tom Hardy,2012-07-20
Batman Begins,2005,Christian Bale,
,2008,Heath Ledger,
Inception,not-a-year,Leonardo DiCaprio,
Memento,2000,Guy Pearce,2000-13-40
Tenet,2020, John David Washington | Robert Pattinson ,2020-08-26
`

func TestRowReader(t *testing.T) {
	rows, err := newRowReader(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	var (
		got []movieinfo.MovieInfo
		bad []int
	)
	for {
		m, line, err := rows.next()
		if errors.Is(err, errEndOfRows) {
			break
		}
		if err != nil {
			var rowErr *rowError
			require.ErrorAs(t, err, &rowErr)
			bad = append(bad, line)
			continue
		}
		got = append(got, m)
	}

	assert.Equal(t, []int{5, 6}, bad)
	require.Len(t, got, 4)
	assert.Equal(t, movieinfo.MovieInfo{
		Name:        "Dark Knight Rises",
		Year:        2012,
		Cast:        []string{"Christian Bale", "Tom Hardy"},
		ReleaseDate: movieinfo.MustParseDate("2012-07-20"),
	}, got[0])
	assert.True(t, got[1].ReleaseDate.IsZero())
	assert.Empty(t, got[2].Name)
	assert.Equal(t, []string{"John David Washington", "Robert Pattinson"}, got[3].Cast)
}

func TestNewRowReader_MissingColumns(t *testing.T) {
	_, err := newRowReader(strings.NewReader("title,year\nX,2000\n"))

	assert.EqualError(t, err, "missing required columns in csv header")
}

func TestSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movieinfos.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "all valid rows", limit: 0, want: 3},
		{name: "limited", limit: 2, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := memory.NewMovieInfoRepository()

			count, err := seed(context.Background(), movieinfo.NewUsecase(repo), path, tt.limit, logger.NOOPLogger)

			require.NoError(t, err)
			assert.Equal(t, tt.want, count)
			assert.Equal(t, tt.want, repo.Len())
		})
	}
}

func TestSeed_FromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movieinfos.csv" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	repo := memory.NewMovieInfoRepository()
	count, err := seed(context.Background(), movieinfo.NewUsecase(repo), srv.URL+"/movieinfos.csv", 0, logger.NOOPLogger)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	_, err = seed(context.Background(), movieinfo.NewUsecase(repo), srv.URL+"/missing.csv", 0, logger.NOOPLogger)
	assert.ErrorContains(t, err, "unexpected status: 404")
}
