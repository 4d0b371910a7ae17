package handler

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/plantparty/outreach/internal/config"
	"github.com/plantparty/outreach/internal/dto"
	"github.com/plantparty/outreach/internal/middleware"
	"github.com/plantparty/outreach/internal/pipeline"
	"github.com/plantparty/outreach/internal/usecase"
	"github.com/plantparty/outreach/internal/util"
)

const proposalPath = "/api/project/proposal"

const infoPage = `<!DOCTYPE html>
<html>
<head><title>Outreach</title></head>
<body>
<h1>Outreach</h1>
<p>Finds local officials and community leaders who could support a sustainability project,
then drafts a short bio and an outreach email for each of them.</p>
<p>POST a JSON body to <code>/api/project/proposal</code>:</p>
<pre>{
  "project_overview": "A community garden on the vacant lot behind the library",
  "location": {"city": "Pembrook", "state": "NC", "country": "USA", "postal_code": "28202"}
}</pre>
</body>
</html>`

type ProposalHandler struct {
	uc      *usecase.ProposalUsecase
	timeout time.Duration
}

func NewProposalHandler(uc *usecase.ProposalUsecase, timeout time.Duration) *ProposalHandler {
	return &ProposalHandler{uc: uc, timeout: timeout}
}

func (h *ProposalHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/", h.Index)
	app.Get("/api/info", h.Info)
	app.Post(proposalPath, middleware.RateLimiter(5, 1*time.Minute), h.Proposal)
}

func (h *ProposalHandler) Index(c *fiber.Ctx) error {
	c.Type("html")
	return c.SendString(infoPage)
}

// Info describes the service for API clients; proposal_url is absolute when APP_URL is set.
func (h *ProposalHandler) Info(c *fiber.Ctx) error {
	appConfig := config.LoadAppConfig()
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get service info",
		Data: fiber.Map{
			"name":         appConfig.Name,
			"env":          appConfig.Env,
			"proposal_url": strings.TrimRight(appConfig.BaseURL, "/") + proposalPath,
		},
	})
}

func (h *ProposalHandler) Proposal(c *fiber.Ctx) error {
	var req dto.ProposalRequest
	if err := c.BodyParser(&req); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid request body",
		}, err)
	}
	if fieldErrs := req.Validate(); fieldErrs != nil {
		formErr := util.NewFormError("invalid proposal", fieldErrs)
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: formErr.Message,
			Details: formErr.Errors,
		}, formErr)
	}

	ctx := c.UserContext()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result, err := h.uc.Run(ctx, req.ToModel())
	if err != nil {
		return h.runError(c, err)
	}
	c.Set("X-Run-ID", result.RunID)

	if !result.Accepted {
		return c.JSON(dto.FeedbackResponse{Feedback: result.Feedback})
	}
	return c.JSON(dto.NewPeopleListResponse(result.Candidates))
}

func (h *ProposalHandler) runError(c *fiber.Ctx, err error) error {
	var (
		genErr   *pipeline.GenerationError
		parseErr *pipeline.GenerationParseError
	)
	switch {
	case errors.Is(err, pipeline.ErrInvalidInput):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "invalid proposal",
		}, err)
	case errors.Is(err, context.DeadlineExceeded):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusGatewayTimeout,
			Message: "proposal processing timed out",
		}, err)
	case errors.As(err, &genErr), errors.As(err, &parseErr):
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadGateway,
			Message: "could not check the project description, try again later",
		}, err)
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Message: "failed to process proposal",
	}, err)
}
