// Package http implements the REST transport of the task manager.
//
// It wires chi routes for accounts, sessions, avatars and tasks, and the
// middleware in front of them: panic recovery, trace ids, access logging,
// request timeouts and bearer-token authentication. Handlers decode input,
// call the service layer and translate its errors into status codes with a
// {"error": "..."} body.
package http
