// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

// Package metrics defines the Prometheus collectors for the service.
// Collectors are registered with the default registry via promauto and
// exposed at /metrics.
package metrics
