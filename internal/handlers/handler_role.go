package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/youssefkhaled23/factory-system-backend/internal/core/ports/services"
	"github.com/youssefkhaled23/factory-system-backend/internal/dto"
)

type roleHandler struct {
	roleService portssvc.RoleSvcFacade
}

func registerRoleRoutes(rg *gin.RouterGroup, roleService portssvc.RoleSvcFacade) {
	h := &roleHandler{roleService: roleService}

	roles := rg.Group("/roles")
	{
		roles.GET("", h.listRoles)
	}
}

// listRoles godoc
// @Summary List roles
// @Tags roles
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.Results{results=[]dto.RoleResponse}}
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /roles [get]
func (h *roleHandler) listRoles(c *gin.Context) {
	roles, err := h.roleService.ListRoles(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewAPIResponse("Roles retrieved successfully", dto.ToRoleResponses(roles)))
}
