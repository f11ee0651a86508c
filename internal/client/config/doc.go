// Package config loads runtime configuration for the portfolio console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A dotenv file: -env <path>, or ./.env when it exists.
//  3. Environment variables (PORTFOLIO_*, plus VITE_API_BASE_URL as a
//     fallback for the base URL).
//  4. Optional JSON or YAML file selected with -c or -config.
//  5. Command-line flags -a, -t and -s.
//
// Example YAML file:
//
//	api_base_url: https://api.example.com
//	request_timeout: 10s
//	store: redis
//	redis:
//	  addr: localhost:6379
//	log:
//	  level: debug
package config
