package http

import (
	"github.com/gin-gonic/gin"

	"github.com/protoboard/protoboard-backend/internal/project/service"
)

// Handler exposes the mutation API to the property panels and menus.
type Handler struct {
	svc *service.ProjectService
}

// Register wires all project routes onto the given group.
func Register(rg *gin.RouterGroup, svc *service.ProjectService) {
	h := &Handler{svc: svc}

	rg.POST("/selection/resolve", h.resolveSelection)

	p := rg.Group("/projects")
	p.POST("", h.create)
	p.GET("", h.list)
	p.POST("/import", h.importDocument)
	p.POST("/import/archive", h.importArchive)
	p.GET("/export/archive", h.exportArchive)

	p.GET("/:public_id", h.get)
	p.PATCH("/:public_id", h.update)
	p.DELETE("/:public_id", h.delete)
	p.POST("/:public_id/duplicate", h.duplicate)
	p.GET("/:public_id/export", h.exportDocument)
	p.GET("/:public_id/audit", h.auditLog)
	p.GET("/:public_id/navigation", h.navigationGraph)
	p.POST("/:public_id/delete-plan", h.planDelete)
	p.PUT("/:public_id/active-screen", h.setActiveScreen)

	p.POST("/:public_id/screens", h.addScreen)
	p.DELETE("/:public_id/screens", h.deleteScreens)
	p.POST("/:public_id/screens/group", h.groupScreens)
	p.POST("/:public_id/screens/move-to-root", h.moveScreensToRoot)
	p.PATCH("/:public_id/screens/:screen_id", h.updateScreen)
	p.POST("/:public_id/screens/:screen_id/duplicate", h.duplicateScreen)

	p.POST("/:public_id/screen-groups", h.addScreenGroup)
	p.POST("/:public_id/screen-groups/move-to-root", h.moveGroupsToRoot)
	p.PATCH("/:public_id/screen-groups/:group_id", h.updateScreenGroup)
	p.DELETE("/:public_id/screen-groups/:group_id", h.deleteScreenGroup)

	p.POST("/:public_id/screens/:screen_id/elements", h.addElement)
	p.DELETE("/:public_id/screens/:screen_id/elements", h.deleteElements)
	p.POST("/:public_id/screens/:screen_id/elements/group", h.groupElements)
	p.POST("/:public_id/screens/:screen_id/elements/move-to-root", h.moveElementsToRoot)
	p.PATCH("/:public_id/screens/:screen_id/elements/:element_id", h.updateElement)
	p.POST("/:public_id/screens/:screen_id/elements/:element_id/duplicate", h.duplicateElement)

	p.POST("/:public_id/screens/:screen_id/elements/:element_id/interactions", h.addInteraction)
	p.PATCH("/:public_id/screens/:screen_id/elements/:element_id/interactions/:interaction_id", h.updateInteraction)
	p.DELETE("/:public_id/screens/:screen_id/elements/:element_id/interactions/:interaction_id", h.removeInteraction)

	p.POST("/:public_id/assets", h.addAsset)
	p.DELETE("/:public_id/assets/:asset_id", h.removeAsset)
}
