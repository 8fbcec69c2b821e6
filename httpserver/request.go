package httpserver

import (
	"movieinfo/movieinfo"

	"github.com/labstack/echo/v4"
)

// movieInfoPath carries the :id path parameter of the movie info routes.
type movieInfoPath struct {
	ID string `param:"id" json:"movieInfoId" validate:"required,max=1024,printascii"`
}

// bindMovieInfoID reads and validates the record key before any store call.
func bindMovieInfoID(c echo.Context) (string, error) {
	var p movieInfoPath
	if err := (&echo.DefaultBinder{}).BindPathParams(c, &p); err != nil {
		return "", err
	}
	if err := c.Validate(&p); err != nil {
		return "", err
	}
	return p.ID, nil
}

// bindMovieInfo decodes a JSON movie info body. Only the body is read, so a
// movieInfoId in the path can never leak into the record.
func bindMovieInfo(c echo.Context) (movieinfo.MovieInfo, error) {
	var m movieinfo.MovieInfo
	if err := (&echo.DefaultBinder{}).BindBody(c, &m); err != nil {
		return movieinfo.MovieInfo{}, err
	}
	return m, nil
}
