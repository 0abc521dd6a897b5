// TalentMatch - Developer and Project Matching Service
// Copyright 2026 WorkDev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/workdev/talentmatch

package recommend

import "errors"

var (
	// ErrNoTrainingData is returned when training is requested with no
	// usable interaction events.
	ErrNoTrainingData = errors.New("recommend: no training data")

	// ErrTrainingInProgress is returned when a training run is already
	// executing. Callers should retry after the current run finishes.
	ErrTrainingInProgress = errors.New("recommend: training already in progress")

	// ErrModelNotTrained is returned by operations that require a
	// published snapshot when none exists.
	ErrModelNotTrained = errors.New("recommend: model not trained")

	// ErrModelNotFound is returned when no persisted snapshot exists at
	// the configured location.
	ErrModelNotFound = errors.New("recommend: no persisted model found")

	// ErrUnknownItem is returned when an item id is not present in the
	// current snapshot.
	ErrUnknownItem = errors.New("recommend: item not in model")

	// ErrPersistenceDisabled is returned when snapshot save or load is
	// requested but no model directory is configured.
	ErrPersistenceDisabled = errors.New("recommend: model persistence disabled")
)
