package record

import "context"

// Store is the CRUD surface of Model for callers that accept interfaces.
type Store interface {
	Find(ctx context.Context, id any) (Record, bool, error)
	FindBy(ctx context.Context, field string, value any) (Record, bool, error)
	Where(ctx context.Context, field string, value any) ([]Record, error)
	Create(ctx context.Context, fields Record) (int64, error)
	Update(ctx context.Context, id any, fields Record) (bool, error)
	Delete(ctx context.Context, id any) (bool, error)
	Search(ctx context.Context, keyword string, page, perPage int) (Page[Record], error)
	Paginate(ctx context.Context, page, perPage int) (Page[Record], error)
}

var _ Store = (*Model)(nil)
