// Package server provides the HTTP server for the Persona API.
//
// This package implements the core HTTP server that handles all Persona REST
// API requests. It uses gorilla/mux for routing and provides middleware for
// authentication and request handling.
//
// # Server Setup
//
//	srv := server.NewServer(db, cfg, signingKey, host, port)
//	endpoints.RegisterAll(srv)
//	if err := srv.Start(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Components
//
// The Server struct holds:
//
//   - Signer: HMAC signer for access tokens
//   - Auth: bearer-token authentication middleware
//   - Stores: storage interfaces for identities, users, permissions,
//     priorities, OAuth clients and access logs
//   - Resolver: context/locale identity resolution
//
// # Endpoints
//
// API endpoints are registered via the endpoints subpackage:
//
//	endpoints.RegisterAll(srv)
//
// This registers the Persona API surface including:
//
//   - /authn/login - API key authentication
//   - /api/v1/identities - identity CRUD and field permissions
//   - /api/v1/users/{user_id}/identity - contextual identity resolution
//   - /oauth/authorize, /oauth/token, /oauth/userinfo - OAuth flow
//   - /admin - administration endpoints
//   - /whoami - token introspection
package server
