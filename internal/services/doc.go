// Package services talks to the music diary backend.
//
// # API Service
//
// [APIService] sends JSON requests to <base_url><prefix>/<endpoint>. Every
// request waits on a client-side [rate.Limiter], carries an X-Request-ID and,
// when a credential token is known, an Authorization: Bearer header set
// through [oauth2.Token.SetAuthHeader].
//
// # Error Handling
//
// Non-2xx responses become an [*APIError] whose message is the server's
// "error" or "detail" field, so it can be shown verbatim. APIError unwraps to
// a sentinel from the shared package:
//   - [shared.ErrNotFound] : 404
//   - [shared.ErrUnauthorized] : 401
//   - [shared.ErrAPIRequest] : everything else
//
// Transport failures are wrapped with "request failed" and never carry a
// status.
package services
