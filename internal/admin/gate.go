// Package admin holds the shared-code gate in front of catalog editing,
// the form/body validation for edits, and the JSON admin API.
//
// The gate is a single shared code. Anyone who knows it gets in; there are
// no accounts.
package admin

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type Gate struct {
	hash []byte
}

func NewGate(code string) (*Gate, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(code)), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin code: %w", err)
	}
	return &Gate{hash: hash}, nil
}

func (g *Gate) Check(input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(g.hash, []byte(input)) == nil
}
