// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

// Package recommend implements the matching core: a weighted interaction
// matrix, user-user cosine similarity, a collaborative scorer, a
// profile-parametrized content scorer, and a hybrid ranker that blends the
// two into ranked, explained recommendations.
//
// Two directions are supported. Project search ranks candidate projects for
// a developer and blends collaborative and content scores. Talent search
// ranks candidate developers for a project and is content-only.
//
// Trained state lives in an immutable ModelSnapshot published through a
// Registry. Scoring reads exactly one snapshot per request and never
// mutates it, so training and serving need no shared locks. When no
// snapshot has been published, project search falls back to a curated
// popularity ranking and talent search proceeds content-only.
package recommend
