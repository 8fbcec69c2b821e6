package movieinfo_test

import (
	"testing"

	"movieinfo/errs"
	"movieinfo/movieinfo"

	"github.com/stretchr/testify/assert"
)

func TestMovieInfo_Validate(t *testing.T) {
	valid := movieinfo.MovieInfo{
		Name:        "The Dark Knight",
		Year:        2008,
		Cast:        []string{"Christian Bale", "Heath Ledger"},
		ReleaseDate: movieinfo.MustParseDate("2008-07-18"),
	}

	tests := []struct {
		name   string
		mutate func(m *movieinfo.MovieInfo)
		fields []string
	}{
		{name: "valid record", mutate: func(*movieinfo.MovieInfo) {}},
		{name: "release date is optional", mutate: func(m *movieinfo.MovieInfo) { m.ReleaseDate = movieinfo.Date{} }},
		{name: "blank name", mutate: func(m *movieinfo.MovieInfo) { m.Name = "   " }, fields: []string{"name"}},
		{name: "zero year", mutate: func(m *movieinfo.MovieInfo) { m.Year = 0 }, fields: []string{"year"}},
		{name: "negative year", mutate: func(m *movieinfo.MovieInfo) { m.Year = -1 }, fields: []string{"year"}},
		{name: "empty cast", mutate: func(m *movieinfo.MovieInfo) { m.Cast = nil }, fields: []string{"cast"}},
		{name: "blank cast member", mutate: func(m *movieinfo.MovieInfo) { m.Cast = []string{"Christian Bale", ""} }, fields: []string{"cast[1]"}},
		{
			name: "every violation is reported",
			mutate: func(m *movieinfo.MovieInfo) {
				m.Name = ""
				m.Year = 0
				m.Cast = []string{}
			},
			fields: []string{"name", "year", "cast"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			m.Cast = append([]string(nil), valid.Cast...)
			tt.mutate(&m)

			err := m.Validate()

			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
			assert.Equal(t, tt.fields, fieldNames(errs.ErrorFields(err)))
		})
	}
}

func TestMovieInfo_ValidateNew(t *testing.T) {
	m := movieinfo.MovieInfo{
		ID:   "abc",
		Name: "Batman Begins",
		Year: 2005,
		Cast: []string{"Christian Bale"},
	}

	err := m.ValidateNew()

	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
	assert.Equal(t, []string{"movieInfoId"}, fieldNames(errs.ErrorFields(err)))

	m.ID = ""
	assert.NoError(t, m.ValidateNew())
}

func fieldNames(fields []errs.FieldError) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	return names
}
