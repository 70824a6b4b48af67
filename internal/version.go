package internal

// Version is overwritten at build time via -ldflags "-X github.com/fivedtech/mail-relay/internal.Version=..."
var Version = "dev"
