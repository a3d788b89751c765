// Package config provides configuration management for the relay.
//
// Configuration is read from an optional YAML file, filled with defaults,
// overridden from the environment and validated. It is resolved once at
// process start and treated as immutable afterwards.
//
// # Configuration Loading
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("relay.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("relay.yaml")
//
//  3. From the environment only (empty path):
//     cfg, err := config.LoadConfigWithEnvOverrides("")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention RELAY_SECTION_FIELD:
//
//   - RELAY_SERVER_LISTEN_ADDRESS overrides server.listen_address
//   - RELAY_GATEWAY_MODEL overrides gateway.model
//   - RELAY_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// The short names HUGGINGFACE_API_KEY, HF_TOKEN, OPENAI_API_KEY, HF_MODEL,
// HF_BASE_URL, PORT, FRONTEND_ORIGIN, SYSTEM_PROMPT and ENABLE_EMOJI are
// also recognized.
//
// # Configuration Precedence
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Example Configuration
//
//	server:
//	  listen_address: ":8000"
//	  static_dir: "public"
//	  cors:
//	    allowed_origins: ["http://localhost:5173"]
//
//	gateway:
//	  base_url: "https://router.huggingface.co/v1"
//	  model: "openai/gpt-oss-2b-fireworks-ai"
//	  timeout: "60s"
//
//	persona:
//	  system_prompt_file: "persona.txt"
//	  emoji_enabled: true
//
//	session:
//	  max_history: 20
//	  max_stored_messages: 200
//	  idle_ttl: "6h"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "json"
package config
