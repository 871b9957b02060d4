// Package domain contains shared domain types used across the settings
// sub-packages. Panel documents live in domain/settings; this root package
// holds sentinel errors and the field-level validation error that the
// outbound and inbound adapters translate to and from.
package domain
