// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"strings"
)

const BackendOpenAI = "openai"

// NormalizeBackend accepts the names of servers that speak the OpenAI
// transcription API and maps them to BackendOpenAI.
func NormalizeBackend(raw string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(raw))
	switch backend {
	case "", BackendOpenAI, "whisper-server", "whisper.cpp", "localai":
		return BackendOpenAI, nil
	default:
		return "", fmt.Errorf("invalid backend %q (expected %s|whisper-server|localai)", raw, BackendOpenAI)
	}
}
