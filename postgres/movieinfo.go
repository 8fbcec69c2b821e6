package postgres

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"movieinfo/movieinfo"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MovieInfoModel represents the database model for movie infos
type MovieInfoModel struct {
	ID          string         `gorm:"primaryKey"`
	Name        string         `gorm:"not null"`
	Year        int            `gorm:"type:bigint;not null"`
	Cast        pq.StringArray `gorm:"column:cast;type:text[];not null"`
	ReleaseDate *time.Time     `gorm:"type:date"`
}

// TableName specifies the table name for GORM
func (MovieInfoModel) TableName() string {
	return "movie_infos"
}

// MovieInfoRepository implements movieinfo.Repository interface
type MovieInfoRepository struct {
	db    *gorm.DB
	newID func() string
}

func NewMovieInfoRepository(db *gorm.DB) *MovieInfoRepository {
	return &MovieInfoRepository{db: db, newID: uuid.NewString}
}

func (r *MovieInfoRepository) Create(ctx context.Context, m movieinfo.MovieInfo) (movieinfo.MovieInfo, error) {
	m.ID = r.newID()
	model := toMovieInfoModel(m)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return movieinfo.MovieInfo{}, fmt.Errorf("postgres: create movie info: %w", err)
	}
	return m, nil
}

func (r *MovieInfoRepository) FindByID(ctx context.Context, id string) (movieinfo.MovieInfo, error) {
	var model MovieInfoModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return movieinfo.MovieInfo{}, movieinfo.ErrNotFound
	}
	if err != nil {
		return movieinfo.MovieInfo{}, fmt.Errorf("postgres: find movie info: %w", err)
	}
	return model.toMovieInfo(), nil
}

// FindAll streams rows ordered by id. The query runs when iteration starts
// and the cursor is closed when it ends.
func (r *MovieInfoRepository) FindAll(ctx context.Context) iter.Seq2[movieinfo.MovieInfo, error] {
	return func(yield func(movieinfo.MovieInfo, error) bool) {
		db := r.db.WithContext(ctx)
		rows, err := db.Model(&MovieInfoModel{}).Order("id").Rows()
		if err != nil {
			yield(movieinfo.MovieInfo{}, fmt.Errorf("postgres: list movie infos: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var model MovieInfoModel
			if err := db.ScanRows(rows, &model); err != nil {
				yield(movieinfo.MovieInfo{}, fmt.Errorf("postgres: scan movie info: %w", err))
				return
			}
			if !yield(model.toMovieInfo(), nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(movieinfo.MovieInfo{}, fmt.Errorf("postgres: list movie infos: %w", err))
		}
	}
}

func (r *MovieInfoRepository) Save(ctx context.Context, m movieinfo.MovieInfo) (movieinfo.MovieInfo, error) {
	if m.ID == "" {
		m.ID = r.newID()
	}
	model := toMovieInfoModel(m)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&model).Error
	if err != nil {
		return movieinfo.MovieInfo{}, fmt.Errorf("postgres: save movie info: %w", err)
	}
	return m, nil
}

func (r *MovieInfoRepository) DeleteByID(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&MovieInfoModel{}).Error
	if err != nil {
		return fmt.Errorf("postgres: delete movie info: %w", err)
	}
	return nil
}

func toMovieInfoModel(m movieinfo.MovieInfo) MovieInfoModel {
	model := MovieInfoModel{
		ID:   m.ID,
		Name: m.Name,
		Year: m.Year,
		Cast: pq.StringArray(m.Cast),
	}
	if !m.ReleaseDate.IsZero() {
		t := m.ReleaseDate.Time()
		model.ReleaseDate = &t
	}
	return model
}

func (model MovieInfoModel) toMovieInfo() movieinfo.MovieInfo {
	m := movieinfo.MovieInfo{
		ID:   model.ID,
		Name: model.Name,
		Year: model.Year,
		Cast: []string(model.Cast),
	}
	if model.ReleaseDate != nil {
		m.ReleaseDate = movieinfo.DateOf(*model.ReleaseDate)
	}
	return m
}
