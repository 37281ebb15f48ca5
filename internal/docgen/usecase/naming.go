package usecase

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"docgen-srv/internal/model"
)

const baseNamePrefix = "Акт выполненных работ"

// allocation is a reserved set of output paths sharing one document name.
type allocation struct {
	Name        string
	DocxPath    string
	PdfPath     string
	PreviewPath string
}

// allocateName picks the first free name for the record and reserves it by
// creating the docx file exclusively. Counter 0 carries no suffix, every
// retry appends " (n)". A name is free only when none of the three output
// paths exist.
func (uc *implUseCase) allocateName(rec *model.ReportRecord) (allocation, error) {
	base := fmt.Sprintf("%s %s %s", baseNamePrefix, strings.ReplaceAll(rec.Date, ":", "."), rec.Address)

	lock := uc.lockFor(base)
	lock.Lock()
	defer lock.Unlock()

	for counter := 0; ; counter++ {
		suffix := ""
		if counter > 0 {
			suffix = fmt.Sprintf(" (%d)", counter)
		}
		name := base + suffix

		a := allocation{
			Name:        name,
			DocxPath:    filepath.Join(uc.config.ReportsDir, name+".docx"),
			PdfPath:     filepath.Join(uc.config.ReportsDir, name+".pdf"),
			PreviewPath: filepath.Join(uc.config.PreviewsDir, name+".png"),
		}

		if pathExists(a.PdfPath) || pathExists(a.PreviewPath) {
			continue
		}

		// Exclusive create doubles as the reservation: a concurrent
		// generation racing for the same name loses here and moves on
		// to the next counter.
		f, err := os.OpenFile(a.DocxPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			if os.IsExist(err) {
				continue
			}
			return allocation{}, fmt.Errorf("failed to reserve output name %q: %w", name, err)
		}
		if err := f.Close(); err != nil {
			return allocation{}, err
		}
		return a, nil
	}
}

func (uc *implUseCase) lockFor(key string) *sync.Mutex {
	uc.nameMu.Lock()
	defer uc.nameMu.Unlock()

	lock, ok := uc.nameLocks[key]
	if !ok {
		lock = &sync.Mutex{}
		uc.nameLocks[key] = lock
	}
	return lock
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
