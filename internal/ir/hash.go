package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix allows a future algorithm migration.
const (
	DomainScenario = "scenariocast/scenario/v1"
	DomainRun      = "scenariocast/run/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data). The null separator
// prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ScenarioID computes the content-addressed ID of one generated scenario.
// It is stable across runs given the same case position, description and
// tokens. Converted values are not part of the identity.
func ScenarioID(caseIndex int, description string, tokens []string) (string, error) {
	obj := Object{
		"case":        Int(caseIndex),
		"description": String(description),
		"tokens":      Strings(tokens),
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("ScenarioID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainScenario, canonical), nil
}

// RunDigest computes a digest over an ordered list of scenario IDs. Two
// runs with the same digest generated the same scenarios in the same order.
func RunDigest(scenarioIDs []string) (string, error) {
	canonical, err := MarshalCanonical(Strings(scenarioIDs))
	if err != nil {
		return "", fmt.Errorf("RunDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainRun, canonical), nil
}

// MustScenarioID is like ScenarioID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustScenarioID(caseIndex int, description string, tokens []string) string {
	id, err := ScenarioID(caseIndex, description, tokens)
	if err != nil {
		panic(err)
	}
	return id
}
