package movieinfo_test

import (
	"testing"

	"movieinfo/errs"
	"movieinfo/movieinfo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMergePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    movieinfo.MergePolicy
		wantErr bool
	}{
		{in: "", want: movieinfo.MergeNameAndCast},
		{in: "compat", want: movieinfo.MergeNameAndCast},
		{in: " FULL ", want: movieinfo.MergeAll},
		{in: "partial", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := movieinfo.ParseMergePolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergePolicy_Merge(t *testing.T) {
	stored := movieinfo.MovieInfo{
		ID:          "abc",
		Name:        "Dark Knight Rises",
		Year:        2012,
		Cast:        []string{"Christian Bale", "Tom Hardy"},
		ReleaseDate: movieinfo.MustParseDate("2012-07-20"),
	}
	incoming := movieinfo.MovieInfo{
		ID:          "other",
		Name:        "X",
		Year:        1999,
		Cast:        []string{"Y"},
		ReleaseDate: movieinfo.MustParseDate("2000-01-01"),
	}

	t.Run("compat keeps year and release date", func(t *testing.T) {
		merged := movieinfo.MergeNameAndCast.Merge(stored, incoming)

		assert.Equal(t, movieinfo.MovieInfo{
			ID:          "abc",
			Name:        "X",
			Year:        2012,
			Cast:        []string{"Y"},
			ReleaseDate: movieinfo.MustParseDate("2012-07-20"),
		}, merged)
	})

	t.Run("full takes every field but the id", func(t *testing.T) {
		merged := movieinfo.MergeAll.Merge(stored, incoming)

		assert.Equal(t, "abc", merged.ID)
		assert.Equal(t, "X", merged.Name)
		assert.Equal(t, 1999, merged.Year)
		assert.Equal(t, []string{"Y"}, merged.Cast)
		assert.Equal(t, "2000-01-01", merged.ReleaseDate.String())
	})

	t.Run("merged cast does not alias the input", func(t *testing.T) {
		in := incoming
		in.Cast = []string{"Y"}
		merged := movieinfo.MergeNameAndCast.Merge(stored, in)
		in.Cast[0] = "Z"

		assert.Equal(t, []string{"Y"}, merged.Cast)
	})
}

func TestMergePolicy_Validate(t *testing.T) {
	partial := movieinfo.MovieInfo{Name: "X", Cast: []string{"Y"}}

	assert.NoError(t, movieinfo.MergeNameAndCast.Validate(partial), "year is not written by compat merges")

	err := movieinfo.MergeAll.Validate(partial)
	assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
	assert.Equal(t, []string{"year"}, fieldNames(errs.ErrorFields(err)))

	err = movieinfo.MergeNameAndCast.Validate(movieinfo.MovieInfo{Year: 2000})
	assert.Equal(t, []string{"name", "cast"}, fieldNames(errs.ErrorFields(err)))
}
