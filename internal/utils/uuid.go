package utils

import (
	"github.com/google/uuid"

	"github.com/vmartynenko/go-soupsync/models"
)

type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a time-ordered UUIDv7, falling back to v4 if the clock
// source is unavailable.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// GenerateLocalID returns a placeholder id for a locally-created record. The
// prefix lets the engine tell placeholder ids from server-assigned ones.
func (g *UUIDGenerator) GenerateLocalID() string {
	return models.LocalIDPrefix + g.Generate()
}
