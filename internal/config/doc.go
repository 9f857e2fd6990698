// Package config defines the service configuration and loads it from an
// HCL file. Attributes may call env(name, default) to read the process
// environment, plus a few conversion and string helpers:
//
//	listen_addr    = env("PIPECHECK_ADDR", ":8000")
//	max_body_bytes = tonumber(env("PIPECHECK_MAX_BODY", "1048576"))
//
//	cors {
//	  allow_origins = split(",", env("PIPECHECK_ORIGINS", "http://localhost:3000"))
//	}
//
// Anything left out of the file keeps its value from Default.
package config
