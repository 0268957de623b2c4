package queries

import "context"

type BranchQueries interface {
	List(ctx context.Context) ([]*BranchView, error)
}

type BranchReadStore interface {
	List(ctx context.Context) ([]*BranchView, error)
}

type branchQueriesImpl struct {
	store BranchReadStore
}

func NewBranchQueries(store BranchReadStore) BranchQueries {
	return &branchQueriesImpl{store: store}
}

func (q *branchQueriesImpl) List(ctx context.Context) ([]*BranchView, error) {
	return q.store.List(ctx)
}
