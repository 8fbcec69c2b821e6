package httpserver

import (
	"encoding/json"
	"fmt"
	"iter"
	"net/http"

	"movieinfo/errs"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieInfoRoutes(g *echo.Group) {
	g.Use(s.requireMovieInfoService)
	g.POST("/movieinfos", s.handleAddMovieInfo)
	g.GET("/movieinfos", s.handleListMovieInfos)
	g.GET("/movieinfos/:id", s.handleGetMovieInfo)
	g.PUT("/movieinfos/:id", s.handleUpdateMovieInfo)
	g.DELETE("/movieinfos/:id", s.handleDeleteMovieInfo)
}

// requireMovieInfoService answers 501 until a service is injected.
func (s *Server) requireMovieInfoService(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.MovieInfoService == nil {
			return errs.Errorf(errs.ENOTIMPLEMENTED, "movie info service not configured")
		}
		return next(c)
	}
}

// handleAddMovieInfo godoc
// @Summary Add Movie Info
// @Tags movieinfos
// @Accept json
// @Produce json
// @Param body body movieinfo.MovieInfo true "Movie info without movieInfoId"
// @Success 201 {object} movieinfo.MovieInfo
// @Failure 400 {object} APIResponse
// @Router /v1/movieinfos [post]
func (s *Server) handleAddMovieInfo(c echo.Context) error {
	m, err := bindMovieInfo(c)
	if err != nil {
		return err
	}
	if err := m.ValidateNew(); err != nil {
		return err
	}

	created, err := s.MovieInfoService.AddMovieInfo(c.Request().Context(), m)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, created)
}

// handleGetMovieInfo godoc
// @Summary Get Movie Info
// @Tags movieinfos
// @Produce json
// @Param id path string true "Movie info id"
// @Success 200 {object} movieinfo.MovieInfo
// @Failure 404 {object} APIResponse
// @Router /v1/movieinfos/{id} [get]
func (s *Server) handleGetMovieInfo(c echo.Context) error {
	id, err := bindMovieInfoID(c)
	if err != nil {
		return err
	}

	m, err := s.MovieInfoService.GetMovieInfoByID(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, m)
}

// handleListMovieInfos godoc
// @Summary List Movie Infos
// @Description Streams every stored movie info as a JSON array
// @Tags movieinfos
// @Produce json
// @Success 200 {array} movieinfo.MovieInfo
// @Failure 500 {object} APIResponse
// @Router /v1/movieinfos [get]
func (s *Server) handleListMovieInfos(c echo.Context) error {
	next, stop := iter.Pull2(s.MovieInfoService.ListMovieInfos(c.Request().Context()))
	defer stop()

	// The status is only committed once the store has produced its first
	// result, so a store that fails up front still gets a proper error.
	m, err, ok := next()
	if ok && err != nil {
		return err
	}

	res := c.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	res.WriteHeader(http.StatusOK)
	if _, err := res.Write([]byte("[")); err != nil {
		return err
	}

	enc := json.NewEncoder(res)
	for n := 0; ok; n++ {
		if err != nil {
			return fmt.Errorf("list movie infos: stream broken after %d records: %w", n, err)
		}
		if n > 0 {
			if _, err := res.Write([]byte(",")); err != nil {
				return err
			}
		}
		if err := enc.Encode(m); err != nil {
			return err
		}
		res.Flush()

		m, err, ok = next()
	}

	_, err = res.Write([]byte("]"))
	return err
}

// handleUpdateMovieInfo godoc
// @Summary Update Movie Info
// @Description Merges the body into the stored record. Only name and cast are
// @Description taken unless the service runs with the full merge policy.
// @Tags movieinfos
// @Accept json
// @Produce json
// @Param id path string true "Movie info id"
// @Param body body movieinfo.MovieInfo true "Movie info"
// @Success 200 {object} movieinfo.MovieInfo
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /v1/movieinfos/{id} [put]
func (s *Server) handleUpdateMovieInfo(c echo.Context) error {
	id, err := bindMovieInfoID(c)
	if err != nil {
		return err
	}
	m, err := bindMovieInfo(c)
	if err != nil {
		return err
	}

	updated, err := s.MovieInfoService.UpdateMovieInfo(c.Request().Context(), id, m)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, updated)
}

// handleDeleteMovieInfo godoc
// @Summary Delete Movie Info
// @Tags movieinfos
// @Param id path string true "Movie info id"
// @Success 204
// @Failure 404 {object} APIResponse
// @Router /v1/movieinfos/{id} [delete]
func (s *Server) handleDeleteMovieInfo(c echo.Context) error {
	id, err := bindMovieInfoID(c)
	if err != nil {
		return err
	}

	if err := s.MovieInfoService.DeleteMovieInfo(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}
