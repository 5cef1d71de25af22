// SPDX-License-Identifier: EPL-2.0

// Package config loads wavscribe settings.
//
// Values are resolved, lowest precedence first, from DefaultConfig, a
// wavscribe.yaml (or the file given with --config), WAVSCRIBE_* environment
// variables and finally command line flags that were set explicitly. Nested
// keys map to environment names by upper-casing and replacing dots, so
// engine.base_url becomes WAVSCRIBE_ENGINE_BASE_URL. OPENAI_API_KEY is also
// accepted for engine.api_key.
//
//	engine:
//	  backend: openai
//	  model: whisper-1
//	  base_url: http://localhost:8080/v1
//	  language: en
//	decode:
//	  strict_extensible: true
//	server:
//	  listen_addr: ":8080"
//	log_level: debug
package config
