// Package config loads runtime configuration for the idolcode client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment: IDOLCODE_BACKEND_URL, IDOLCODE_DATA_DIR,
//     IDOLCODE_LOG_LEVEL, IDOLCODE_REQUEST_TIMEOUT. A .env file in the
//     working directory is loaded first; real environment variables win.
//  4. Command-line flags -a, -d, -l, -t.
//
// # JSON schema
//
// Durations accept "3s" style strings or integer nanoseconds:
//
//	{
//	  "backend_url": "https://api.idolcode.dev",
//	  "health_retries": 5,
//	  "health_retry_delay": "5s",
//	  "search_debounce": "300ms"
//	}
//
// Fields missing from the file keep their previous value.
package config
