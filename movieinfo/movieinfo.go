package movieinfo

import (
	"strconv"
	"strings"

	"movieinfo/errs"
)

var ErrNotFound = errs.Errorf(errs.ENOTFOUND, "movie info not found")

// MovieInfo is a movie record. ID is assigned by the store on first save
// and never changes afterwards.
type MovieInfo struct {
	ID          string   `json:"movieInfoId,omitempty"`
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Cast        []string `json:"cast"`
	ReleaseDate Date     `json:"release_date"`
}

// Validate checks the field constraints of a record and reports every
// violation at once.
func (m MovieInfo) Validate() error {
	return invalid(
		nameViolations(m),
		yearViolations(m),
		castViolations(m),
	)
}

// ValidateNew validates a record about to be created. The caller must not
// pick the identifier.
func (m MovieInfo) ValidateNew() error {
	var idViolations []errs.FieldError
	if m.ID != "" {
		idViolations = append(idViolations, errs.FieldError{Field: "movieInfoId", Error: "must not be set"})
	}

	return invalid(
		idViolations,
		nameViolations(m),
		yearViolations(m),
		castViolations(m),
	)
}

func nameViolations(m MovieInfo) []errs.FieldError {
	if strings.TrimSpace(m.Name) == "" {
		return []errs.FieldError{{Field: "name", Error: "must not be blank"}}
	}
	return nil
}

func yearViolations(m MovieInfo) []errs.FieldError {
	if m.Year <= 0 {
		return []errs.FieldError{{Field: "year", Error: "must be greater than 0"}}
	}
	return nil
}

func castViolations(m MovieInfo) []errs.FieldError {
	if len(m.Cast) == 0 {
		return []errs.FieldError{{Field: "cast", Error: "must contain at least one member"}}
	}

	var out []errs.FieldError
	for i, member := range m.Cast {
		if strings.TrimSpace(member) == "" {
			out = append(out, errs.FieldError{
				Field: "cast[" + strconv.Itoa(i) + "]",
				Error: "must not be blank",
			})
		}
	}
	return out
}

func invalid(groups ...[]errs.FieldError) error {
	var fields []errs.FieldError
	for _, g := range groups {
		fields = append(fields, g...)
	}
	if len(fields) == 0 {
		return nil
	}
	return errs.Invalid(fields...)
}
