package httpapi

import (
	"github.com/adanna/bankcore/internal/storage/memory"
	"github.com/adanna/bankcore/internal/storage/postgres"
)

// Compile-time checks that both store implementations satisfy the wiring
// surface.
var (
	_ Store = (*memory.Store)(nil)
	_ Store = (*postgres.Store)(nil)
)
