// Package route maps between canonical client paths and navigation targets.
//
// Canonical shareable paths:
//
//	/u/<username>     → profile
//	/l/<listId>       → list-detail
//	/album/<albumId>  → album-detail
//	/lists /diary /log /login /admin
//	/                 → home
//
// [Decode] never fails: anything it does not recognise resolves to [NotFound].
// [Encode] is its inverse for every [Addressable] target, so
// Decode(Encode(t)) is [Equivalent] to t.
package route
