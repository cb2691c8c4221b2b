package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/protoboard/protoboard-backend/internal/project/domain"
)

type createReq struct {
	Name        string `json:"name"`
	IsTemporary bool   `json:"is_temporary"`
}

type idsReq struct {
	IDs          []string `json:"ids"`
	ConfirmToken string   `json:"confirm_token,omitempty"`
}

type groupReq struct {
	Name string   `json:"name,omitempty"`
	IDs  []string `json:"ids"`
}

type addScreenReq struct {
	Name    string `json:"name,omitempty"`
	GroupID string `json:"group_id,omitempty"`
}

type addGroupReq struct {
	Name     string `json:"name,omitempty"`
	ParentID string `json:"parent_id,omitempty"`
}

type addElementReq struct {
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type activeScreenReq struct {
	ScreenID string `json:"screen_id"`
}

type addInteractionReq struct {
	Trigger string `json:"trigger,omitempty"`
}

type addAssetReq struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Source string `json:"source"`
}

type planDeleteReq struct {
	Kind     string   `json:"kind"`
	ScreenID string   `json:"screen_id,omitempty"`
	IDs      []string `json:"ids"`
}

// ownerID returns the authenticated user, as set by the auth middleware.
func ownerID(c *gin.Context) string {
	return c.GetString("firebase_uid")
}

// respondErr maps domain errors onto the response envelope. Structural
// violations are conflicts; malformed input is a bad request; anything
// unknown is a 500.
func respondErr(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrScreenNotFound),
		errors.Is(err, domain.ErrGroupNotFound),
		errors.Is(err, domain.ErrElementNotFound),
		errors.Is(err, domain.ErrInteractionNotFound),
		errors.Is(err, domain.ErrAssetNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrHierarchyViolation),
		errors.Is(err, domain.ErrDuplicateTrigger),
		errors.Is(err, domain.ErrConfirmRequired),
		errors.Is(err, domain.ErrGroupTooSmall):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidImport),
		errors.Is(err, domain.ErrInvalidKind):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"ok": false, "error": err.Error()})
}
