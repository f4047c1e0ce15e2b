package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/askexpert/api/http/presenter"
	"github.com/artem13815/askexpert/pkg/answer"
)

type AskHandler struct {
	svc     answer.UseCase
	timeout time.Duration
}

func NewAskHandler(svc answer.UseCase, timeout time.Duration) *AskHandler {
	return &AskHandler{svc: svc, timeout: timeout}
}

type askRequest struct {
	Role string `json:"role" example:"A（Python家庭教師）"`
	Text string `json:"text" example:"辞書の使い方を教えて"`
}

// Ask sends the text to the model framed by the selected expert role.
// @Summary Ask the selected expert
// @Description Unknown roles fall back to a generic assistant instruction. Whitespace-only text is rejected without calling the model.
// @Tags    ask
// @Accept  json
// @Produce json
// @Param   input body askRequest true "Role label and question text"
// @Success 200 {object} answer.Answer
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Failure 503 {object} presenter.ErrorResponse
// @Failure 504 {object} presenter.ErrorResponse
// @Router  /ask [post]
func (h *AskHandler) Ask(c *fiber.Ctx) error {
	var req askRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON")
	}
	if isBlank(req.Text) {
		return presenter.Fail(c, http.StatusBadRequest, answer.KindEmptyInput.String(), answer.EmptyInputMessage)
	}
	out, err := askWithin(c.UserContext(), h.svc, h.timeout, answer.Request{Text: req.Text, Role: req.Role})
	if err != nil {
		kind := answer.KindOf(err)
		return presenter.Fail(c, statusFor(kind), kind.String(), answer.UserMessage(err))
	}
	return presenter.JSON(c, http.StatusOK, out)
}
