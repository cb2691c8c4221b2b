package http

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/protoboard/protoboard-backend/internal/project/domain"
	"github.com/protoboard/protoboard-backend/internal/project/interaction"
	"github.com/protoboard/protoboard-backend/internal/project/mutation"
	"github.com/protoboard/protoboard-backend/internal/project/selection"
)

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.svc.Create(c.Request.Context(), ownerID(c), strings.TrimSpace(req.Name), req.IsTemporary)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), ownerID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), ownerID(c), c.Param("public_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) update(c *gin.Context) {
	var patch mutation.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	p, err := h.apply(c, func(p *domain.Project) (*domain.Project, error) {
		return mutation.UpdateProject(p, patch)
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), ownerID(c), c.Param("public_id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) duplicate(c *gin.Context) {
	p, err := h.svc.Duplicate(c.Request.Context(), ownerID(c), c.Param("public_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) importDocument(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	p, err := h.svc.ImportDocument(c.Request.Context(), ownerID(c), data)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) importArchive(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	results, err := h.svc.ImportArchive(c.Request.Context(), ownerID(c), data)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "results": results})
}

func (h *Handler) exportDocument(c *gin.Context) {
	doc, err := h.svc.ExportDocument(c.Request.Context(), ownerID(c), c.Param("public_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+c.Param("public_id")+".json")
	c.Data(http.StatusOK, "application/json", doc)
}

func (h *Handler) exportArchive(c *gin.Context) {
	data, err := h.svc.ExportArchive(c.Request.Context(), ownerID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=projects.zip")
	c.Data(http.StatusOK, "application/zip", data)
}

func (h *Handler) auditLog(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	entries, err := h.svc.AuditLog(c.Request.Context(), ownerID(c), c.Param("public_id"), limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "entries": entries})
}

func (h *Handler) navigationGraph(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), ownerID(c), c.Param("public_id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "graph": interaction.NavigationGraph(p)})
}

func (h *Handler) planDelete(c *gin.Context) {
	var req planDeleteReq
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	intent, err := h.svc.PlanDelete(c.Request.Context(), ownerID(c), c.Param("public_id"), req.Kind, req.ScreenID, req.IDs)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "intent": intent})
}

func (h *Handler) resolveSelection(c *gin.Context) {
	var sel selection.Selection
	if err := c.ShouldBindJSON(&sel); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	surface, ids := selection.Target(sel)
	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"surface":      surface,
		"target_ids":   ids,
		"bulk_actions": selection.BulkActions(surface),
	})
}

// apply runs a pure mutation through the service against the project in the
// URL.
func (h *Handler) apply(c *gin.Context, fn func(*domain.Project) (*domain.Project, error)) (*domain.Project, error) {
	return h.svc.Apply(c.Request.Context(), ownerID(c), c.Param("public_id"), fn)
}
