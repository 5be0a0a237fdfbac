// Package stub ships deterministic in-process adapters for every step
// category. They produce structurally valid outputs without network calls,
// which makes them the default provider for development installs and the
// workhorse of the pipeline test suite.
package stub

import (
	"fmt"
	"hash/fnv"
	"strings"

	"clipforge/internal/integrations"
	"clipforge/internal/stage"
)

// Register adds one stub adapter per step category to the registry.
func Register(registry *integrations.Registry) error {
	for _, adapter := range []stage.Adapter{
		scriptAdapter{},
		voiceAdapter{},
		mediaAdapter{},
		videoAIAdapter{},
		assemblyAdapter{},
	} {
		if err := registry.Register(adapter); err != nil {
			return err
		}
	}
	return nil
}

const providerName = "stub"

func fingerprint(parts ...string) string {
	hasher := fnv.New64a()
	for _, part := range parts {
		hasher.Write([]byte(part))
		hasher.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", hasher.Sum64())
}

func titleCase(prompt string) string {
	words := strings.Fields(strings.ToLower(prompt))
	if len(words) > 6 {
		words = words[:6]
	}
	for i, word := range words {
		runes := []rune(word)
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
