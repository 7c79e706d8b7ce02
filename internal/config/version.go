package config

// Version is the matjar-search binary version.
// Set at build time via: -ldflags "-X github.com/matjarly/matjar/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
