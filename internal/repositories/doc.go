// Package repositories implements SQLite persistence for the client's local
// state.
//
//   - [MetadataRepository] : key/value rows in the metadata table
//   - [TokenRepository] : the persisted credential token, stored as one
//     metadata row under [TokenKey]
package repositories
