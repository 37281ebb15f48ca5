package http

import (
	"docgen-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// @Summary Generate a service report document
// @Description Assemble a filled, stamped PDF from a report record and return it with a PNG preview
// @Tags Document
// @Accept json
// @Produce json
// @Param body body generateDocumentReq true "Report record"
// @Success 200 {object} generateDocumentResp
// @Failure 400 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/documents/generate [post]
func (h *handler) GenerateDocument(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processGenerateDocumentRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "docgen.delivery.http.GenerateDocument: processGenerateDocumentRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	o, err := h.uc.Generate(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "docgen.delivery.http.GenerateDocument: usecase Generate failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, h.newGenerateDocumentResp(o))
}

// @Summary Regenerate a document preview
// @Description Re-render the first-page PNG preview of an existing PDF
// @Tags Document
// @Accept json
// @Produce json
// @Param body body regeneratePreviewReq true "PDF filename"
// @Success 200 {object} regeneratePreviewResp
// @Failure 400 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/documents/preview [post]
func (h *handler) RegeneratePreview(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processRegeneratePreviewRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "docgen.delivery.http.RegeneratePreview: processRegeneratePreviewRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	o, err := h.uc.RegeneratePreview(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "docgen.delivery.http.RegeneratePreview: usecase RegeneratePreview failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, h.newRegeneratePreviewResp(o))
}
