package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ChecklistItem is a single entry of the work checklist filled in the mobile client.
type ChecklistItem struct {
	Task string `json:"task"`
	Done bool   `json:"done"`
}

// ReportRecord carries everything needed to assemble one service report
// document. Field names follow the upstream client payload, which mixes
// snake_case and camelCase historically.
type ReportRecord struct {
	Date            string          `json:"date"`
	Address         string          `json:"address"`
	MachineName     string          `json:"machine_name"`
	MachineNumber   string          `json:"machine_number"`
	InventoryNumber string          `json:"inventory_number"`
	Classification  string          `json:"classification"`
	Material        string          `json:"material"`
	Recommendations string          `json:"recommendations"`
	Defects         string          `json:"defects"`
	AdditionalWorks string          `json:"additionalWorks"`
	Comments        string          `json:"comments"`
	Works           WorksField      `json:"works"`
	ChecklistItems  []ChecklistItem `json:"checklistItems"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	// Photos are data URIs (data:image/...;base64,...) or bare base64 payloads.
	Photos []string `json:"photos"`
}

// WorksField accepts either a plain string or a list of work descriptions.
// A list is normalized to a bulleted block, one "• " line per entry.
type WorksField string

func (w *WorksField) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*w = WorksField(s)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("works must be a string or a list of strings")
	}
	if len(list) == 0 {
		*w = ""
		return nil
	}
	*w = WorksField("\n• " + strings.Join(list, "\n• "))
	return nil
}

// FullName renders the technician name as it is printed on the document.
func (r *ReportRecord) FullName() string {
	return r.LastName + " " + r.FirstName
}

// DoneChecklist renders completed checklist entries as a bulleted block.
// Unfinished entries are omitted; an empty result means nothing was done.
func (r *ReportRecord) DoneChecklist() string {
	var lines []string
	for _, item := range r.ChecklistItems {
		if item.Done {
			lines = append(lines, "• "+item.Task)
		}
	}
	return strings.Join(lines, "\n")
}

// ClassificationLabel expands the emergency-call code to its printed form.
// Other codes are printed as-is.
func (r *ReportRecord) ClassificationLabel() string {
	if r.Classification == "АВ" {
		return "Аварийный вызов"
	}
	return r.Classification
}
