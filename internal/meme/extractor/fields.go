// Package extractor maps raw gateway field lists into typed field sets.
// Every function here is total: unknown names are skipped and missing names keep zero values.
package extractor

import (
	"github.com/shopspring/decimal"

	"radix-meme/pkg/radix"
)

// ComponentFieldSet holds every component state field the protocol components expose.
// The registry and the token components each populate a subset.
type ComponentFieldSet struct {
	Address        string
	OwnerBadge     string
	MaxTokenSupply decimal.Decimal
	MaxXrd         decimal.Decimal
	Multiplier     string
	Tokens         string
	TokenManager   string
	CurrentSupply  decimal.Decimal
	MaxSupply      decimal.Decimal
}

// TokenMetadata holds the display metadata of a token resource.
type TokenMetadata struct {
	Name        string
	Symbol      string
	Description string
	IconURL     string
	ImageURL    string
	Telegram    string
	X           string
	Website     string
}

type componentSetter func(*ComponentFieldSet, radix.ScalarValue)

var componentSetters = map[string]componentSetter{
	"address":             func(s *ComponentFieldSet, v radix.ScalarValue) { s.Address = v.String() },
	"owner_badge_manager": func(s *ComponentFieldSet, v radix.ScalarValue) { s.OwnerBadge = v.String() },
	"max_token_supply":    func(s *ComponentFieldSet, v radix.ScalarValue) { s.MaxTokenSupply = ParseAmount(v) },
	"max_xrd":             func(s *ComponentFieldSet, v radix.ScalarValue) { s.MaxXrd = ParseAmount(v) },
	"multiplier":          func(s *ComponentFieldSet, v radix.ScalarValue) { s.Multiplier = v.String() },
	"tokens":              func(s *ComponentFieldSet, v radix.ScalarValue) { s.Tokens = v.String() },
	"token_manager":       func(s *ComponentFieldSet, v radix.ScalarValue) { s.TokenManager = v.String() },
	"current_supply":      func(s *ComponentFieldSet, v radix.ScalarValue) { s.CurrentSupply = ParseAmount(v) },
	"max_supply":          func(s *ComponentFieldSet, v radix.ScalarValue) { s.MaxSupply = ParseAmount(v) },
}

type metadataSetter func(*TokenMetadata, string)

var metadataSetters = map[string]metadataSetter{
	"name":        func(m *TokenMetadata, v string) { m.Name = v },
	"symbol":      func(m *TokenMetadata, v string) { m.Symbol = v },
	"description": func(m *TokenMetadata, v string) { m.Description = v },
	"icon_url":    func(m *TokenMetadata, v string) { m.IconURL = v },
	"image_url":   func(m *TokenMetadata, v string) { m.ImageURL = v },
	"telegram":    func(m *TokenMetadata, v string) { m.Telegram = v },
	"x":           func(m *TokenMetadata, v string) { m.X = v },
	"website":     func(m *TokenMetadata, v string) { m.Website = v },
}

// ComponentFields extracts the recognized component state fields. Later duplicates win.
func ComponentFields(fields []radix.ProgrammaticField) ComponentFieldSet {
	var set ComponentFieldSet
	for _, field := range fields {
		if setter, ok := componentSetters[field.FieldName]; ok {
			setter(&set, field.Value)
		}
	}
	return set
}

// MetadataFields extracts the recognized display metadata entries.
func MetadataFields(items []radix.MetadataItem) TokenMetadata {
	var meta TokenMetadata
	for _, item := range items {
		if setter, ok := metadataSetters[item.Key]; ok {
			setter(&meta, item.Value.Typed.Value.String())
		}
	}
	return meta
}

// ParseAmount parses a ledger decimal, returning zero for empty or malformed input.
func ParseAmount(v radix.ScalarValue) decimal.Decimal {
	if v == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}
