// Package settings holds the configuration documents edited by the console
// settings panels: notification preferences and the password generation
// style. The documents are opaque to the panel machinery except for the
// fields a renderer needs to seed its form.
package settings
