package usecase

import (
	"context"
	"strings"

	"docgen-srv/internal/model"
	"docgen-srv/pkg/docx"
)

// Placeholder tokens of the report template.
const (
	tokenDate            = "[дата]"
	tokenAddress         = "[адрес]"
	tokenMachineName     = "[назв_обор]"
	tokenMachineNumber   = "[номер_обор]"
	tokenInventoryNumber = "[инв_номер]"
	tokenClassification  = "[классификация]"
	tokenMaterial        = "[материалы]"
	tokenRecommendations = "[рекомендации]"
	tokenDefects         = "[дефекты]"
	tokenAdditionalWorks = "[доп_работы]"
	tokenComments        = "[комментарии]"
	tokenChecklist       = "[работы]"
	tokenFullName        = "[фио]"
	tokenPhotos          = "[вставка]"
)

// fill substitutes every placeholder in the template's table cells with
// record values, then replaces the photo placeholder cell with embedded
// photo paragraphs.
func (uc *implUseCase) fill(ctx context.Context, doc *docx.Document, rec *model.ReportRecord, genID string) error {
	replacements := []struct {
		token string
		value string
	}{
		{tokenDate, rec.Date},
		{tokenAddress, rec.Address},
		{tokenMachineName, rec.MachineName},
		{tokenMachineNumber, rec.MachineNumber},
		{tokenInventoryNumber, rec.InventoryNumber},
		{tokenClassification, rec.ClassificationLabel()},
		{tokenMaterial, rec.Material},
		{tokenRecommendations, rec.Recommendations},
		{tokenDefects, rec.Defects},
		{tokenAdditionalWorks, rec.AdditionalWorks},
		{tokenComments, rec.Comments},
		{tokenChecklist, rec.DoneChecklist()},
		{tokenFullName, rec.FullName()},
	}

	for i := 0; i < doc.CellCount(); i++ {
		cell := doc.Cell(i)
		text := cell.Text()

		if strings.Contains(text, tokenPhotos) {
			if err := uc.insertPhotos(ctx, doc, i, rec, genID); err != nil {
				return err
			}
			continue
		}

		changed := false
		for _, r := range replacements {
			if strings.Contains(text, r.token) {
				text = strings.ReplaceAll(text, r.token, r.value)
				changed = true
			}
		}
		if changed {
			cell.SetText(text)
		}
	}

	return nil
}
