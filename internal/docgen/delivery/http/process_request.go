package http

import (
	"github.com/gin-gonic/gin"
)

func (h *handler) processGenerateDocumentRequest(c *gin.Context) (generateDocumentReq, error) {
	var req generateDocumentReq

	ctx := c.Request.Context()
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(ctx, "docgen.delivery.http.processGenerateDocumentRequest: ShouldBindJSON failed: %v", err)
		return req, errInvalidRequest
	}

	return req, nil
}

func (h *handler) processRegeneratePreviewRequest(c *gin.Context) (regeneratePreviewReq, error) {
	var req regeneratePreviewReq

	ctx := c.Request.Context()
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(ctx, "docgen.delivery.http.processRegeneratePreviewRequest: ShouldBindJSON failed: %v", err)
		return req, errInvalidRequest
	}

	return req, nil
}
