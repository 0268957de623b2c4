package branch

import "github.com/google/uuid"

type Branch struct {
	id      uuid.UUID
	name    string
	city    string
	address string
}

func Reconstruct(id uuid.UUID, name, city, address string) *Branch {
	return &Branch{
		id:      id,
		name:    name,
		city:    city,
		address: address,
	}
}

func (b *Branch) ID() uuid.UUID   { return b.id }
func (b *Branch) Name() string    { return b.name }
func (b *Branch) City() string    { return b.city }
func (b *Branch) Address() string { return b.address }
