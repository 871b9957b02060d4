// Package ports declares what the console needs from the outside world: the
// settings API it reads and writes, and the readiness checks it reports.
// Adapters under internal/adapters implement these; internal/app depends on
// nothing else.
package ports
