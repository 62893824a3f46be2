package provider

import "context"

// Repository describes persistence operations for provider records. Mutating
// operations report the number of affected rows so callers can distinguish a
// committed save from a silent no-op.
type Repository interface {
	List(ctx context.Context) ([]Provider, error)
	FindByID(ctx context.Context, id string) (*Provider, error)
	Add(ctx context.Context, p *Provider) (int64, error)
	Update(ctx context.Context, p *Provider) (int64, error)
	Remove(ctx context.Context, id string) (int64, error)
}
