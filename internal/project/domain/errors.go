package domain

import "errors"

var (
	ErrNotFound            = errors.New("project not found")
	ErrScreenNotFound      = errors.New("screen not found")
	ErrGroupNotFound       = errors.New("screen group not found")
	ErrElementNotFound     = errors.New("element not found")
	ErrInteractionNotFound = errors.New("interaction not found")
	ErrAssetNotFound       = errors.New("asset not found")

	// ErrHierarchyViolation covers cycles, self-parenting and cross-scope
	// reparent attempts. The mutation is rejected atomically.
	ErrHierarchyViolation = errors.New("hierarchy violation")

	// ErrDuplicateTrigger is returned when a second interaction with an
	// already-bound trigger is added to an element.
	ErrDuplicateTrigger = errors.New("duplicate interaction trigger")

	// ErrInvalidImport marks a document that is not a usable project export
	// (not JSON, or missing a string name / screens array).
	ErrInvalidImport = errors.New("invalid import document")

	// ErrGroupTooSmall is returned when a grouping operation receives fewer
	// than two ids.
	ErrGroupTooSmall = errors.New("grouping requires at least two ids")

	// ErrConfirmRequired is returned when a bulk delete is attempted without
	// a matching confirmation token.
	ErrConfirmRequired = errors.New("bulk delete requires confirmation")

	// ErrInvalidKind is returned when a bulk operation names an entity kind
	// it does not support.
	ErrInvalidKind = errors.New("invalid entity kind")
)
