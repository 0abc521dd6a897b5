// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

// Package api provides the HTTP surface of the matching service: Chi
// routing, request decoding and validation, the standardized response
// envelope, and handlers for the recommendation and model management
// endpoints.
package api
