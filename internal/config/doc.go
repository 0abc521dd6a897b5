// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

// Package config loads and validates the service configuration with
// Koanf v2, layering built-in defaults, an optional YAML file, and
// TALENTMATCH_-prefixed environment variables.
package config
