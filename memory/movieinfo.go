package memory

import (
	"context"
	"iter"
	"sync"

	"movieinfo/movieinfo"

	"github.com/google/uuid"
)

// MovieInfoRepository keeps movie infos in process memory. It implements
// movieinfo.Repository and is meant for local runs and tests.
type MovieInfoRepository struct {
	mu    sync.RWMutex
	items map[string]movieinfo.MovieInfo
	newID func() string
}

func NewMovieInfoRepository() *MovieInfoRepository {
	return &MovieInfoRepository{
		items: map[string]movieinfo.MovieInfo{},
		newID: uuid.NewString,
	}
}

func (r *MovieInfoRepository) Create(ctx context.Context, m movieinfo.MovieInfo) (movieinfo.MovieInfo, error) {
	if err := ctx.Err(); err != nil {
		return movieinfo.MovieInfo{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	m.ID = r.newID()
	r.items[m.ID] = clone(m)
	return clone(m), nil
}

func (r *MovieInfoRepository) FindByID(ctx context.Context, id string) (movieinfo.MovieInfo, error) {
	if err := ctx.Err(); err != nil {
		return movieinfo.MovieInfo{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[id]
	if !ok {
		return movieinfo.MovieInfo{}, movieinfo.ErrNotFound
	}
	return clone(m), nil
}

// FindAll iterates over a snapshot taken when iteration starts.
func (r *MovieInfoRepository) FindAll(ctx context.Context) iter.Seq2[movieinfo.MovieInfo, error] {
	return func(yield func(movieinfo.MovieInfo, error) bool) {
		r.mu.RLock()
		snapshot := make([]movieinfo.MovieInfo, 0, len(r.items))
		for _, m := range r.items {
			snapshot = append(snapshot, clone(m))
		}
		r.mu.RUnlock()

		for _, m := range snapshot {
			if err := ctx.Err(); err != nil {
				yield(movieinfo.MovieInfo{}, err)
				return
			}
			if !yield(m, nil) {
				return
			}
		}
	}
}

func (r *MovieInfoRepository) Save(ctx context.Context, m movieinfo.MovieInfo) (movieinfo.MovieInfo, error) {
	if err := ctx.Err(); err != nil {
		return movieinfo.MovieInfo{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if m.ID == "" {
		m.ID = r.newID()
	}
	r.items[m.ID] = clone(m)
	return clone(m), nil
}

func (r *MovieInfoRepository) DeleteByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

// Len returns the number of stored records.
func (r *MovieInfoRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

func clone(m movieinfo.MovieInfo) movieinfo.MovieInfo {
	m.Cast = append([]string(nil), m.Cast...)
	return m
}
