package movieinfo

import (
	"context"
	"iter"
)

type Service interface {
	AddMovieInfo(ctx context.Context, m MovieInfo) (MovieInfo, error)
	GetMovieInfoByID(ctx context.Context, id string) (MovieInfo, error)
	ListMovieInfos(ctx context.Context) iter.Seq2[MovieInfo, error]
	UpdateMovieInfo(ctx context.Context, id string, m MovieInfo) (MovieInfo, error)
	DeleteMovieInfo(ctx context.Context, id string) error
}

// Repository is the document store holding movie infos.
//
// FindByID returns ErrNotFound when no record has the id. FindAll yields
// records lazily in store order and stops at the first error. Save assigns
// a fresh id when the record has none. DeleteByID does not fail for an
// absent id.
type Repository interface {
	Create(ctx context.Context, m MovieInfo) (MovieInfo, error)
	FindByID(ctx context.Context, id string) (MovieInfo, error)
	FindAll(ctx context.Context) iter.Seq2[MovieInfo, error]
	Save(ctx context.Context, m MovieInfo) (MovieInfo, error)
	DeleteByID(ctx context.Context, id string) error
}

type Usecase struct {
	r      Repository
	policy MergePolicy
}

type Option func(uc *Usecase)

func WithMergePolicy(p MergePolicy) Option {
	return func(uc *Usecase) {
		uc.policy = p
	}
}

func NewUsecase(r Repository, opts ...Option) *Usecase {
	uc := &Usecase{
		r:      r,
		policy: MergeNameAndCast,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

func (uc *Usecase) AddMovieInfo(ctx context.Context, m MovieInfo) (MovieInfo, error) {
	if err := m.ValidateNew(); err != nil {
		return MovieInfo{}, err
	}
	return uc.r.Create(ctx, m)
}

func (uc *Usecase) GetMovieInfoByID(ctx context.Context, id string) (MovieInfo, error) {
	return uc.r.FindByID(ctx, id)
}

func (uc *Usecase) ListMovieInfos(ctx context.Context) iter.Seq2[MovieInfo, error] {
	return uc.r.FindAll(ctx)
}

func (uc *Usecase) UpdateMovieInfo(ctx context.Context, id string, m MovieInfo) (MovieInfo, error) {
	if err := uc.policy.Validate(m); err != nil {
		return MovieInfo{}, err
	}

	stored, err := uc.r.FindByID(ctx, id)
	if err != nil {
		return MovieInfo{}, err
	}

	return uc.r.Save(ctx, uc.policy.Merge(stored, m))
}

// DeleteMovieInfo removes the record and reports ErrNotFound when there was
// nothing to remove.
func (uc *Usecase) DeleteMovieInfo(ctx context.Context, id string) error {
	if _, err := uc.r.FindByID(ctx, id); err != nil {
		return err
	}
	return uc.r.DeleteByID(ctx, id)
}
