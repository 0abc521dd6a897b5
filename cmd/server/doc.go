// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

// Command server runs the TalentMatch HTTP service under a Suture
// supervision tree.
package main
