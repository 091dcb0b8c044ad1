// Package models defines domain entities for the moviedeck client.
//
// The package contains two categories of types:
//
// 1. Catalog DTOs: structs mirroring The Movie Database API payloads
//   - [Movie] : A catalog item as it appears in listings and wishlists
//   - [MovieDetail] : Full movie record including resolved genres
//   - [MoviePage] : A paginated listing response
//   - [Genre], [Video] : Taxonomy and trailer assets
//
// 2. Account types: locally owned records
//   - [User] : Identity record stored in the local user list
//   - [RegisterData], [LoginCredentials] : Operation inputs
//   - [AuthResult] : Success/failure outcome with a user-facing message
//
// Catalog DTOs are consumed as given by the external API and never redesigned;
// account types are owned by this application.
package models
