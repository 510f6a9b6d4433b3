/*
Package kind provides the explicit kind hierarchy that drives handler resolution.
Every kind names a single parent, and lookups walk from the most specific kind up to its root.
*/
package kind
