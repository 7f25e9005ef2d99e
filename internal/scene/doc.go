// Package scene owns diagram elements and the mutation nonce.
//
// The mutation nonce is the only authoritative invalidation signal for
// anything derived from scene content. Every content-affecting change goes
// through a Scene method, which replaces the affected elements and the
// element slice wholesale and then bumps the nonce. Slices returned by
// earlier calls are never written again, so callers may hold them as
// snapshots and compare them by identity.
//
// Nothing outside this package writes the nonce.
package scene
