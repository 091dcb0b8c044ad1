// package repositories provides the persistence layer for the application.
//
// All durable state lives in a single key-value table with JSON-encoded
// values, mirroring the storage layout the app was designed around:
//
//	session.user      -> current User, absent when unauthenticated
//	users.all         -> ordered list of User
//	credentials.all   -> mapping email -> password digest
//	wishlist.<userId> -> ordered list of Movie for that user
//	app.language      -> persisted language code
//	app.theme         -> persisted theme name
package repositories
