// Package resolver answers the authorization server's "find client by id"
// question from an ordered chain of client sources.
//
// Statically configured clients and persisted clients are translated into one
// Descriptor shape at the source boundary. The first source that knows the id
// wins; only when every source reports the client absent is the result absent.
package resolver
