// Package core contains the canonical scheme-management contracts, entities,
// and orchestration logic: the handler/definition registries, the per-type
// options cache, post-configure hook fan-out, and the callback-path
// uniqueness validator. Transport and protocol-handler adapters must depend
// on this package; core must not depend on them.
package core
