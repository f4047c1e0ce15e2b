package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/artem13815/askexpert/api/http/view"
	"github.com/artem13815/askexpert/pkg/answer"
	"github.com/artem13815/askexpert/pkg/expert"
)

// FormHandler serves the server-rendered question form.
type FormHandler struct {
	roles   *expert.Registry
	svc     answer.UseCase
	timeout time.Duration
	title   string
}

func NewFormHandler(roles *expert.Registry, svc answer.UseCase, timeout time.Duration, title string) *FormHandler {
	return &FormHandler{roles: roles, svc: svc, timeout: timeout, title: title}
}

func (h *FormHandler) Show(c *fiber.Ctx) error {
	return h.render(c, view.Page{
		Roles: view.RoleOptions(h.roles.Labels(), ""),
	})
}

// Submit handles the form post. Blank text shows a warning and never
// reaches the model.
func (h *FormHandler) Submit(c *fiber.Ctx) error {
	// Form values alias fasthttp buffers; the ask may outlive this handler.
	role := utils.CopyString(c.FormValue("role"))
	text := utils.CopyString(c.FormValue("text"))
	page := view.Page{
		Roles: view.RoleOptions(h.roles.Labels(), role),
		Text:  text,
	}
	if isBlank(text) {
		page.Warning = answer.EmptyInputMessage
		return h.render(c, page)
	}

	out, err := askWithin(c.UserContext(), h.svc, h.timeout, answer.Request{Text: text, Role: role})
	if err != nil {
		page.Result = &view.Result{Text: answer.UserMessage(err), IsError: true}
		return h.render(c, page)
	}
	page.Result = &view.Result{Text: out.Text}
	return h.render(c, page)
}

func (h *FormHandler) render(c *fiber.Ctx, page view.Page) error {
	page.Title = h.title
	var buf bytes.Buffer
	if err := view.Render(&buf, page); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Status(http.StatusOK).Send(buf.Bytes())
}
