package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"movieinfo/movieinfo"
)

var errEndOfRows = errors.New("end of rows")

// rowError marks a single bad row; reading may continue past it.
type rowError struct {
	err error
}

func (e *rowError) Error() string { return e.err.Error() }

func (e *rowError) Unwrap() error { return e.err }

const castSeparator = "|"

// openSource opens a local file, or downloads source when it is an http(s) URL.
func openSource(ctx context.Context, source string) (io.ReadCloser, error) {
	if source == "" {
		return nil, errors.New("dataset source is empty")
	}
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		return os.Open(source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	return resp.Body, nil
}

type rowReader struct {
	r       *csv.Reader
	line    int
	name    int
	year    int
	cast    int
	release int
}

func newRowReader(r io.Reader) (*rowReader, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	rr := &rowReader{r: reader, line: 1, name: -1, year: -1, cast: -1, release: -1}
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "name":
			rr.name = i
		case "year":
			rr.year = i
		case "cast":
			rr.cast = i
		case "release_date":
			rr.release = i
		}
	}
	if rr.name == -1 || rr.year == -1 || rr.cast == -1 {
		return nil, errors.New("missing required columns in csv header")
	}

	return rr, nil
}

// next returns the following row and its line number. A malformed row
// yields a *rowError; errEndOfRows ends iteration.
func (rr *rowReader) next() (movieinfo.MovieInfo, int, error) {
	record, err := rr.r.Read()
	rr.line++
	if errors.Is(err, io.EOF) {
		return movieinfo.MovieInfo{}, rr.line, errEndOfRows
	}
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return movieinfo.MovieInfo{}, rr.line, &rowError{err: err}
		}
		return movieinfo.MovieInfo{}, rr.line, err
	}

	m, err := rr.parse(record)
	if err != nil {
		return movieinfo.MovieInfo{}, rr.line, &rowError{err: err}
	}
	return m, rr.line, nil
}

func (rr *rowReader) parse(record []string) (movieinfo.MovieInfo, error) {
	field := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	year, err := strconv.Atoi(field(rr.year))
	if err != nil {
		return movieinfo.MovieInfo{}, fmt.Errorf("invalid year %q", field(rr.year))
	}

	var cast []string
	for _, member := range strings.Split(field(rr.cast), castSeparator) {
		if member = strings.TrimSpace(member); member != "" {
			cast = append(cast, member)
		}
	}

	m := movieinfo.MovieInfo{
		Name: field(rr.name),
		Year: year,
		Cast: cast,
	}
	if s := field(rr.release); s != "" {
		d, err := movieinfo.ParseDate(s)
		if err != nil {
			return movieinfo.MovieInfo{}, fmt.Errorf("invalid release_date %q", s)
		}
		m.ReleaseDate = d
	}
	return m, nil
}
