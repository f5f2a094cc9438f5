package version

// Version is stamped at build time with -ldflags "-X .../internal/version.Version=...".
// Version 在构建时通过 -ldflags 注入。
var Version = "dev"
