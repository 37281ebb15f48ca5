package http

import (
	"docgen-srv/internal/docgen"
	"docgen-srv/internal/model"
)

type checklistItem struct {
	Task string `json:"task"`
	Done bool   `json:"done"`
}

type generateDocumentReq struct {
	Date            string           `json:"date" binding:"required"`
	Address         string           `json:"address" binding:"required"`
	MachineName     string           `json:"machine_name"`
	MachineNumber   string           `json:"machine_number"`
	InventoryNumber string           `json:"inventory_number"`
	Classification  string           `json:"classification"`
	Material        string           `json:"material"`
	Recommendations string           `json:"recommendations"`
	Defects         string           `json:"defects"`
	AdditionalWorks string           `json:"additionalWorks"`
	Comments        string           `json:"comments"`
	Works           model.WorksField `json:"works"`
	ChecklistItems  []checklistItem  `json:"checklistItems"`
	FirstName       string           `json:"firstName"`
	LastName        string           `json:"lastName"`
	Photos          []string         `json:"photos"`
}

func (r generateDocumentReq) toInput() docgen.GenerateInput {
	items := make([]model.ChecklistItem, 0, len(r.ChecklistItems))
	for _, item := range r.ChecklistItems {
		items = append(items, model.ChecklistItem{Task: item.Task, Done: item.Done})
	}

	return docgen.GenerateInput{
		Record: model.ReportRecord{
			Date:            r.Date,
			Address:         r.Address,
			MachineName:     r.MachineName,
			MachineNumber:   r.MachineNumber,
			InventoryNumber: r.InventoryNumber,
			Classification:  r.Classification,
			Material:        r.Material,
			Recommendations: r.Recommendations,
			Defects:         r.Defects,
			AdditionalWorks: r.AdditionalWorks,
			Comments:        r.Comments,
			Works:           r.Works,
			ChecklistItems:  items,
			FirstName:       r.FirstName,
			LastName:        r.LastName,
			Photos:          r.Photos,
		},
	}
}

type regeneratePreviewReq struct {
	PdfFilename string `json:"pdf_filename" binding:"required"`
}

func (r regeneratePreviewReq) toInput() docgen.RegeneratePreviewInput {
	return docgen.RegeneratePreviewInput{
		PdfFilename: r.PdfFilename,
	}
}

type generateDocumentResp struct {
	Success         bool   `json:"success"`
	PdfFilename     string `json:"pdf_filename"`
	PreviewFilename string `json:"preview_filename"`
	PdfContent      []byte `json:"pdf_content"`
	PreviewContent  []byte `json:"preview_content"`
	ErrorMessage    string `json:"error_message,omitempty"`
}

func (h *handler) newGenerateDocumentResp(o docgen.GenerateOutput) generateDocumentResp {
	return generateDocumentResp{
		Success:         o.Success,
		PdfFilename:     o.PdfFilename,
		PreviewFilename: o.PreviewFilename,
		PdfContent:      o.PdfContent,
		PreviewContent:  o.PreviewContent,
		ErrorMessage:    o.ErrorMessage,
	}
}

type regeneratePreviewResp struct {
	PreviewFilename string `json:"preview_filename"`
	PreviewContent  []byte `json:"preview_content"`
}

func (h *handler) newRegeneratePreviewResp(o docgen.RegeneratePreviewOutput) regeneratePreviewResp {
	return regeneratePreviewResp{
		PreviewFilename: o.PreviewFilename,
		PreviewContent:  o.PreviewContent,
	}
}
