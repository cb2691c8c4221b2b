package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/protoboard/protoboard-backend/internal/project/domain"
	"github.com/protoboard/protoboard-backend/internal/project/mutation"
	"github.com/protoboard/protoboard-backend/internal/project/selection"
)

func (h *Handler) addScreen(c *gin.Context) {
	var req addScreenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	var screenID string
	p, err := h.apply(c, func(p *domain.Project) (*domain.Project, error) {
		next, id, err := mutation.AddScreen(p, req.Name, req.GroupID)
		screenID = id
		return next, err
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "screen_id": screenID, "project": p})
}

func (h *Handler) updateScreen(c *gin.Context) {
	var patch mutation.ScreenPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	p, err := h.apply(c, func(p *domain.Project) (*domain.Project, error) {
		return mutation.UpdateScreen(p, c.Param("screen_id"), patch)
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) deleteScreens(c *gin.Context) {
	var req idsReq
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	p, err := h.svc.DeleteEntities(c.Request.Context(), ownerID(c), c.Param("public_id"),
		selection.KindScreens, "", req.IDs, req.ConfirmToken,
		func(p *domain.Project) (*domain.Project, error) {
			return mutation.DeleteScreens(p, req.IDs)
		})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) duplicateScreen(c *gin.Context) {
	var screenID string
	p, err := h.apply(c, func(p *domain.Project) (*domain.Project, error) {
		next, id, err := mutation.DuplicateScreen(p, c.Param("screen_id"))
		screenID = id
		return next, err
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "screen_id": screenID, "project": p})
}

func (h *Handler) groupScreens(c *gin.Context) {
	var req groupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	var groupID string
	p, err := h.apply(c, func(p *domain.Project) (*domain.Project, error) {
		next, id, err := mutation.GroupScreens(p, req.Name, req.IDs)
		groupID = id
		return next, err
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "group_id": groupID, "project": p})
}

func (h *Handler) moveScreensToRoot(c *gin.Context) {
	var req idsReq
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	p, err := h.apply(c, func(p *domain.Project) (*domain.Project, error) {
		return mutation.MoveScreensToRoot(p, req.IDs)
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) setActiveScreen(c *gin.Context) {
	var req activeScreenReq
	if err := c.ShouldBindJSON(&req); err != nil || req.ScreenID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	p, err := h.apply(c, func(p *domain.Project) (*domain.Project, error) {
		return mutation.SetActiveScreen(p, req.ScreenID)
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) addScreenGroup(c *gin.Context) {
	var req addGroupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	var groupID string
	p, err := h.apply(c, func(p *domain.Project) (*domain.Project, error) {
		next, id, err := mutation.AddScreenGroup(p, req.Name, req.ParentID)
		groupID = id
		return next, err
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "group_id": groupID, "project": p})
}

func (h *Handler) updateScreenGroup(c *gin.Context) {
	var patch mutation.GroupPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	p, err := h.apply(c, func(p *domain.Project) (*domain.Project, error) {
		return mutation.UpdateScreenGroup(p, c.Param("group_id"), patch)
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) deleteScreenGroup(c *gin.Context) {
	groupID := c.Param("group_id")
	p, err := h.svc.DeleteEntities(c.Request.Context(), ownerID(c), c.Param("public_id"),
		"screen_group", "", []string{groupID}, "",
		func(p *domain.Project) (*domain.Project, error) {
			return mutation.DeleteScreenGroup(p, groupID)
		})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) moveGroupsToRoot(c *gin.Context) {
	var req idsReq
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	p, err := h.apply(c, func(p *domain.Project) (*domain.Project, error) {
		return mutation.MoveGroupsToRoot(p, req.IDs)
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}
