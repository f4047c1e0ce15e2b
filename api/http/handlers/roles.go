package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/askexpert/api/http/presenter"
	"github.com/artem13815/askexpert/pkg/expert"
)

type RolesHandler struct {
	roles *expert.Registry
}

func NewRolesHandler(roles *expert.Registry) *RolesHandler { return &RolesHandler{roles: roles} }

// List returns the expert roles in display order.
// @Summary List expert roles
// @Tags    ask
// @Produce json
// @Success 200 {array} expert.Entry
// @Router  /roles [get]
func (h *RolesHandler) List(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, h.roles.Entries())
}
