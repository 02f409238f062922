// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of the task manager.
//
// Each invocation runs exactly one command against the server through an
// [adapter.ServerAdapter]. The bearer token returned by signup or login is
// persisted in a local file so that subsequent invocations stay signed in
// until logout.
package client
