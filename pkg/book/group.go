package book

import (
	"context"

	"github.com/ledgerline/ledgerline-go/pkg/api"
)

// Group is a client-side view of one account group. Like Account it
// holds a non-owning back-reference to its Book.
type Group struct {
	book    *Book
	payload api.GroupPayload
}

// ID returns the group's stable identifier.
func (g *Group) ID() string {
	return g.payload.ID
}

// Name returns the group's display name.
func (g *Group) Name() string {
	return g.payload.Name
}

// NormalizedName returns the normalized lookup form of the name.
func (g *Group) NormalizedName() NormalizedName {
	return Normalize(g.payload.Name)
}

// Hidden reports whether the group is hidden from reports.
func (g *Group) Hidden() bool {
	return g.payload.Hidden
}

// Property returns a group property, or "" when unset.
func (g *Group) Property(key string) string {
	return g.payload.Properties[key]
}

// Book returns the owning ledger view.
func (g *Group) Book() *Book {
	return g.book
}

// Parent resolves the parent group through the Book's cache, or nil
// for a top-level group.
func (g *Group) Parent(ctx context.Context) (*Group, error) {
	if g.payload.ParentID == "" {
		return nil, nil
	}
	return g.book.Group(ctx, g.payload.ParentID)
}

// Accounts returns the cached accounts belonging to this group.
func (g *Group) Accounts(ctx context.Context) ([]*Account, error) {
	all, err := g.book.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	var result []*Account
	for _, a := range all {
		for _, id := range a.payload.Groups {
			if id == g.payload.ID {
				result = append(result, a)
				break
			}
		}
	}
	return result, nil
}

// NewGroup holds the fields for creating an account group.
type NewGroup struct {
	Name       string
	ParentID   string
	Hidden     bool
	Properties map[string]string
}

func (ng NewGroup) payload() api.GroupPayload {
	return api.GroupPayload{
		Name:       ng.Name,
		ParentID:   ng.ParentID,
		Hidden:     ng.Hidden,
		Properties: ng.Properties,
	}
}
