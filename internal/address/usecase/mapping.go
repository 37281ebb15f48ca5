package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"docgen-srv/internal/address"
)

// GenerateMapping extracts all technical addresses from the database and
// writes an addressMapping.js skeleton for the frontend team to fill in by
// hand. Existing files are overwritten.
func (uc *implUseCase) GenerateMapping(ctx context.Context, input address.GenerateMappingInput) (address.GenerateMappingOutput, error) {
	if input.OutputPath == "" {
		return address.GenerateMappingOutput{}, address.ErrOutputRequired
	}

	addresses, err := uc.repo.ListAddresses(ctx)
	if err != nil {
		uc.l.Errorf(ctx, "address.usecase.GenerateMapping: failed to list addresses: %v", err)
		return address.GenerateMappingOutput{}, err
	}
	if len(addresses) == 0 {
		return address.GenerateMappingOutput{}, address.ErrNoAddresses
	}

	content := renderMapping(addresses, time.Now())

	if err := os.MkdirAll(filepath.Dir(input.OutputPath), 0o755); err != nil {
		return address.GenerateMappingOutput{}, err
	}
	if err := os.WriteFile(input.OutputPath, []byte(content), 0o644); err != nil {
		uc.l.Errorf(ctx, "address.usecase.GenerateMapping: failed to write %s: %v", input.OutputPath, err)
		return address.GenerateMappingOutput{}, err
	}

	uc.l.Infof(ctx, "address.usecase.GenerateMapping: wrote %d addresses to %s", len(addresses), input.OutputPath)
	return address.GenerateMappingOutput{
		OutputPath:   input.OutputPath,
		AddressCount: len(addresses),
	}, nil
}

// renderMapping builds the JS module text. The format is fixed: the
// frontend imports both addressMapping and getAddressData from it.
func renderMapping(addresses []string, now time.Time) string {
	var b strings.Builder

	b.WriteString("// Маппинг технических адресов на реальные адреса с координатами\n")
	b.WriteString("// Формат: \"техническийАдрес\": { address: \"Человеческий адрес\", coordinates: [широта, долгота] }\n")
	fmt.Fprintf(&b, "// Автоматически сгенерировано: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "// Всего адресов: %d\n", len(addresses))
	b.WriteString("\n")
	b.WriteString("export const addressMapping = {\n")

	b.WriteString("  // Пример заполнения (можете удалить после заполнения своих данных)\n")
	b.WriteString("  \"1234_Москва_ул_Ленина_1\": {\n")
	b.WriteString("    address: \"Москва, ул. Ленина, д. 1\",\n")
	b.WriteString("    coordinates: [55.751244, 37.618423] // Координаты можно найти на Яндекс.Картах\n")
	b.WriteString("  },\n")
	b.WriteString("\n")
	b.WriteString("  // ========== Адреса из базы данных (требуют заполнения) ==========\n")

	for i, addr := range addresses {
		escaped := strings.ReplaceAll(addr, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `"`, `\"`)

		fmt.Fprintf(&b, "  \"%s\": {\n", escaped)
		b.WriteString("    address: \"\", // TODO: Укажите человекочитаемый адрес\n")
		b.WriteString("    coordinates: [] // TODO: Укажите [широта, долгота]\n")
		if i < len(addresses)-1 {
			b.WriteString("  },\n")
		} else {
			b.WriteString("  }\n")
		}

		// Blank line every 10 entries keeps the file scannable by hand.
		if (i+1)%10 == 0 {
			b.WriteString("\n")
		}
	}

	b.WriteString("};\n")
	b.WriteString("\n")
	b.WriteString("// Функция для получения данных адреса по техническому адресу\n")
	b.WriteString("export const getAddressData = (technicalAddress) => {\n")
	b.WriteString("  if (!technicalAddress) return null;\n")
	b.WriteString("  \n")
	b.WriteString("  // Попробуем найти точное совпадение\n")
	b.WriteString("  if (addressMapping[technicalAddress]) {\n")
	b.WriteString("    return addressMapping[technicalAddress];\n")
	b.WriteString("  }\n")
	b.WriteString("  \n")
	b.WriteString("  // Если не нашли, вернем null\n")
	b.WriteString("  return null;\n")
	b.WriteString("};\n")

	return b.String()
}
