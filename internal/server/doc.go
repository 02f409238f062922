// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the task manager REST API and the gRPC health
// endpoint side by side.
//
// Listeners are bound in [NewServer], so a busy port fails at startup rather
// than after the process reports itself ready. [Server.RunServer] blocks until
// SIGINT, SIGTERM or SIGQUIT and then drains both transports in parallel.
package server
