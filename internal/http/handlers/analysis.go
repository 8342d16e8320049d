package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/neurotutor-backend/internal/http/response"
	"github.com/yungbote/neurotutor-backend/internal/platform/apierr"
	"github.com/yungbote/neurotutor-backend/internal/platform/ctxutil"
	"github.com/yungbote/neurotutor-backend/internal/platform/dbctx"
	"github.com/yungbote/neurotutor-backend/internal/services"
)

type AnalysisHandler struct {
	analysis services.AnalysisService
}

func NewAnalysisHandler(analysis services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysis}
}

// GET /api/analysis
func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	p, ok := ctxutil.GetPrincipal(c.Request.Context())
	if !ok {
		response.RespondAPIError(c, apierr.Unauthorized(nil))
		return
	}
	out, err := h.analysis.GetAnalysis(dbctx.Context{Ctx: c.Request.Context()}, p)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, out)
}
