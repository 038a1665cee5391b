package model

import (
	"fmt"

	"github.com/acolin/asso-ledger/internal/apperr"
)

// AccountKind tags the target of a ledger entry or transfer endpoint.
type AccountKind string

const (
	AccountAssociation AccountKind = "association"
	AccountArtist      AccountKind = "artist"
	AccountProject     AccountKind = "project"
)

// AssociationLabel is the display name used when an endpoint is the
// association's own cash account.
const AssociationLabel = "association"

// AccountRef is a tagged reference: the association's own cash, a specific
// artist, or a specific project. Exactly one variant is active; ID is zero
// for the association.
type AccountRef struct {
	Kind AccountKind `json:"kind"`
	ID   int64       `json:"id,omitempty"`
}

func AssociationRef() AccountRef {
	return AccountRef{Kind: AccountAssociation}
}

func ArtistRef(id int64) AccountRef {
	return AccountRef{Kind: AccountArtist, ID: id}
}

func ProjectRef(id int64) AccountRef {
	return AccountRef{Kind: AccountProject, ID: id}
}

func (r AccountRef) Validate() error {
	switch r.Kind {
	case AccountAssociation:
		if r.ID != 0 {
			return fmt.Errorf("%w: association account carries no id", apperr.ErrValidation)
		}
	case AccountArtist, AccountProject:
		if r.ID <= 0 {
			return fmt.Errorf("%w: %s account requires an id", apperr.ErrValidation, r.Kind)
		}
	default:
		return fmt.Errorf("%w: unknown account kind %q", apperr.ErrValidation, r.Kind)
	}
	return nil
}

func (r AccountRef) Equal(o AccountRef) bool {
	return r.Kind == o.Kind && r.ID == o.ID
}

// Columns splits the reference into the two nullable FK columns backing it.
// Both nil means the association's own cash.
func (r AccountRef) Columns() (artistID, projectID *int64) {
	switch r.Kind {
	case AccountArtist:
		id := r.ID
		return &id, nil
	case AccountProject:
		id := r.ID
		return nil, &id
	}
	return nil, nil
}

// AccountRefFromColumns rebuilds the tagged reference from storage. Rows with
// both FK columns set are rejected upstream; the artist branch wins here only
// to keep the function total.
func AccountRefFromColumns(artistID, projectID *int64) AccountRef {
	switch {
	case artistID != nil:
		return ArtistRef(*artistID)
	case projectID != nil:
		return ProjectRef(*projectID)
	}
	return AssociationRef()
}
