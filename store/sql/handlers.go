package sqlstore

import (
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// stringIDHandlers wires records keyed by a uuid stored as text.
func stringIDHandlers[T any](newRecord func() T, id func(T) *string) repository.ModelHandlers[T] {
	return repository.ModelHandlers[T]{
		NewRecord: newRecord,
		GetID: func(record T) uuid.UUID {
			field := id(record)
			if field == nil {
				return uuid.Nil
			}
			return parseUUID(*field)
		},
		SetID: func(record T, value uuid.UUID) {
			if field := id(record); field != nil {
				*field = value.String()
			}
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record T) string {
			field := id(record)
			if field == nil {
				return ""
			}
			return strings.TrimSpace(*field)
		},
	}
}

func productHandlers() repository.ModelHandlers[*productRecord] {
	return stringIDHandlers(
		func() *productRecord { return &productRecord{} },
		func(record *productRecord) *string {
			if record == nil {
				return nil
			}
			return &record.ID
		},
	)
}

func recipeHandlers() repository.ModelHandlers[*recipeRecord] {
	return stringIDHandlers(
		func() *recipeRecord { return &recipeRecord{} },
		func(record *recipeRecord) *string {
			if record == nil {
				return nil
			}
			return &record.ID
		},
	)
}

func inquiryHandlers() repository.ModelHandlers[*inquiryRecord] {
	return stringIDHandlers(
		func() *inquiryRecord { return &inquiryRecord{} },
		func(record *inquiryRecord) *string {
			if record == nil {
				return nil
			}
			return &record.ID
		},
	)
}

func parseUUID(value string) uuid.UUID {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return parsed
}
