// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

// Package supervisor builds the Suture v4 supervision tree that keeps
// the HTTP server and the model maintenance services running, with
// restart-on-failure semantics and graceful shutdown.
package supervisor
