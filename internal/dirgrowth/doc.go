// Package dirgrowth measures how many bytes under a directory tree were
// last modified inside a time window.
//
// It walks directory trees using fastwalk for parallel traversal, classifies
// every regular file against an optional [start, end] window and reduces the
// in-window sizes into a single total with an order-independent combine.
package dirgrowth
