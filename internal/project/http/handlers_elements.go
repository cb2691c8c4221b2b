package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/protoboard/protoboard-backend/internal/project/domain"
	"github.com/protoboard/protoboard-backend/internal/project/interaction"
	"github.com/protoboard/protoboard-backend/internal/project/mutation"
	"github.com/protoboard/protoboard-backend/internal/project/selection"
)

func (h *Handler) addElement(c *gin.Context) {
	var req addElementReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if !domain.ValidElementType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "unknown element type"})
		return
	}
	var elementID string
	p, err := h.apply(c, func(p *domain.Project) (*domain.Project, error) {
		next, id, err := mutation.AddElement(p, c.Param("screen_id"), req.Type, req.X, req.Y)
		elementID = id
		return next, err
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "element_id": elementID, "project": p})
}

func (h *Handler) updateElement(c *gin.Context) {
	var patch mutation.ElementPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	p, err := h.apply(c, func(p *domain.Project) (*domain.Project, error) {
		return mutation.UpdateElement(p, c.Param("screen_id"), c.Param("element_id"), patch)
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) deleteElements(c *gin.Context) {
	var req idsReq
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	screenID := c.Param("screen_id")
	p, err := h.svc.DeleteEntities(c.Request.Context(), ownerID(c), c.Param("public_id"),
		selection.KindElements, screenID, req.IDs, req.ConfirmToken,
		func(p *domain.Project) (*domain.Project, error) {
			return mutation.DeleteElements(p, screenID, req.IDs)
		})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) duplicateElement(c *gin.Context) {
	var elementID string
	p, err := h.apply(c, func(p *domain.Project) (*domain.Project, error) {
		next, id, err := mutation.DuplicateElement(p, c.Param("screen_id"), c.Param("element_id"))
		elementID = id
		return next, err
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "element_id": elementID, "project": p})
}

func (h *Handler) groupElements(c *gin.Context) {
	var req groupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	var containerID string
	p, err := h.apply(c, func(p *domain.Project) (*domain.Project, error) {
		next, id, err := mutation.GroupElements(p, c.Param("screen_id"), req.IDs)
		containerID = id
		return next, err
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "element_id": containerID, "project": p})
}

func (h *Handler) moveElementsToRoot(c *gin.Context) {
	var req idsReq
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	p, err := h.apply(c, func(p *domain.Project) (*domain.Project, error) {
		return mutation.MoveElementsToRoot(p, c.Param("screen_id"), req.IDs)
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) addInteraction(c *gin.Context) {
	var req addInteractionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	var interactionID string
	p, err := h.apply(c, func(p *domain.Project) (*domain.Project, error) {
		next, id, err := mutation.AddInteraction(p, c.Param("screen_id"), c.Param("element_id"), req.Trigger)
		interactionID = id
		return next, err
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "interaction_id": interactionID, "project": p})
}

func (h *Handler) updateInteraction(c *gin.Context) {
	var patch interaction.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	p, err := h.apply(c, func(p *domain.Project) (*domain.Project, error) {
		return mutation.UpdateInteraction(p, c.Param("screen_id"), c.Param("element_id"), c.Param("interaction_id"), patch)
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) removeInteraction(c *gin.Context) {
	p, err := h.apply(c, func(p *domain.Project) (*domain.Project, error) {
		return mutation.RemoveInteraction(p, c.Param("screen_id"), c.Param("element_id"), c.Param("interaction_id"))
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) addAsset(c *gin.Context) {
	var req addAssetReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	var assetID string
	p, err := h.apply(c, func(p *domain.Project) (*domain.Project, error) {
		next, id, err := mutation.AddAsset(p, req.Name, req.Type, req.Source)
		assetID = id
		return next, err
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "asset_id": assetID, "project": p})
}

func (h *Handler) removeAsset(c *gin.Context) {
	p, err := h.apply(c, func(p *domain.Project) (*domain.Project, error) {
		return mutation.RemoveAsset(p, c.Param("asset_id"))
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}
