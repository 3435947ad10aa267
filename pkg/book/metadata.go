package book

import (
	"time"

	"github.com/ledgerline/ledgerline-go/pkg/api"
)

// Permission is the level of access the authenticated user has on a ledger.
type Permission string

const (
	PermissionOwner  Permission = "owner"
	PermissionEditor Permission = "editor"
	PermissionPoster Permission = "poster"
	PermissionViewer Permission = "viewer"
	PermissionNone   Permission = "none"
)

// DecimalSeparator is the ledger's display separator for decimal values.
type DecimalSeparator string

const (
	DecimalSeparatorDot   DecimalSeparator = "dot"
	DecimalSeparatorComma DecimalSeparator = "comma"
)

// Metadata is the scalar metadata tier of a ledger: everything the
// ledger resource carries besides its accounts and groups. It is
// populated as a whole from a single fetch and never partially updated.
type Metadata struct {
	Name             string
	OwnerName        string
	Permission       Permission
	CollectionID     string
	FractionDigits   int
	DatePattern      string
	DecimalSeparator DecimalSeparator
	TimeZone         string
	TimeZoneOffset   int // minutes from UTC
	LastUpdate       time.Time
	Properties       map[string]string
}

func metadataFromPayload(p *api.LedgerPayload) Metadata {
	props := make(map[string]string, len(p.Properties))
	for k, v := range p.Properties {
		props[k] = v
	}

	var lastUpdate time.Time
	if p.LastUpdateMs > 0 {
		lastUpdate = time.UnixMilli(p.LastUpdateMs)
	}

	return Metadata{
		Name:             p.Name,
		OwnerName:        p.OwnerName,
		Permission:       Permission(p.Permission),
		CollectionID:     p.CollectionID,
		FractionDigits:   p.FractionDigits,
		DatePattern:      p.DatePattern,
		DecimalSeparator: DecimalSeparator(p.DecimalSeparator),
		TimeZone:         p.TimeZone,
		TimeZoneOffset:   p.TimeZoneOffset,
		LastUpdate:       lastUpdate,
		Properties:       props,
	}
}
