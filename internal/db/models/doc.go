// Package models contains the persisted entity shapes of the account service.
//
// Every entity lives in its own collection (table). Satellite entities (claims,
// logins, tokens and role memberships) reference their owner by id instead of
// being nested into the owner document, so that claim based lookups can be
// indexed independently. OAuth clients embed their secrets.
package models
