// Package types defines the shared interfaces and value types used
// across nixsync, most notably the FS abstraction that every
// filesystem mutation goes through.
package types
