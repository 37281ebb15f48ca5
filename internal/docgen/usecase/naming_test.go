package usecase

import (
	"os"
	"path/filepath"
	"testing"

	"docgen-srv/internal/model"
)

func TestAllocateName(t *testing.T) {
	rec := &model.ReportRecord{
		Date:    "2025-03-14 10:30:00",
		Address: "ул. Ленина, 1",
	}
	base := "Акт выполненных работ 2025-03-14 10.30.00 ул. Ленина, 1"

	t.Run("first allocation carries no suffix", func(t *testing.T) {
		uc := newTestUseCase(t, "", nil, nil, nil)
		if err := os.MkdirAll(uc.config.ReportsDir, 0o755); err != nil {
			t.Fatal(err)
		}

		a, err := uc.allocateName(rec)
		if err != nil {
			t.Fatalf("allocateName failed: %v", err)
		}
		if a.Name != base {
			t.Errorf("name = %q, want %q", a.Name, base)
		}
		if _, err := os.Stat(a.DocxPath); err != nil {
			t.Errorf("reservation file missing: %v", err)
		}
	})

	t.Run("retries count up", func(t *testing.T) {
		uc := newTestUseCase(t, "", nil, nil, nil)
		if err := os.MkdirAll(uc.config.ReportsDir, 0o755); err != nil {
			t.Fatal(err)
		}

		for counter := 0; counter < 3; counter++ {
			a, err := uc.allocateName(rec)
			if err != nil {
				t.Fatalf("allocateName %d failed: %v", counter, err)
			}
			if want := fmtName(base, counter); a.Name != want {
				t.Errorf("allocation %d name = %q, want %q", counter, a.Name, want)
			}
		}
	})

	t.Run("existing pdf blocks the name", func(t *testing.T) {
		uc := newTestUseCase(t, "", nil, nil, nil)
		if err := os.MkdirAll(uc.config.ReportsDir, 0o755); err != nil {
			t.Fatal(err)
		}
		touch(t, filepath.Join(uc.config.ReportsDir, base+".pdf"))

		a, err := uc.allocateName(rec)
		if err != nil {
			t.Fatalf("allocateName failed: %v", err)
		}
		if want := fmtName(base, 1); a.Name != want {
			t.Errorf("name = %q, want %q", a.Name, want)
		}
	})

	t.Run("existing preview blocks the name", func(t *testing.T) {
		uc := newTestUseCase(t, "", nil, nil, nil)
		if err := os.MkdirAll(uc.config.ReportsDir, 0o755); err != nil {
			t.Fatal(err)
		}
		touch(t, filepath.Join(uc.config.PreviewsDir, base+".png"))

		a, err := uc.allocateName(rec)
		if err != nil {
			t.Fatalf("allocateName failed: %v", err)
		}
		if want := fmtName(base, 1); a.Name != want {
			t.Errorf("name = %q, want %q", a.Name, want)
		}
	})

	t.Run("paths land in configured directories", func(t *testing.T) {
		uc := newTestUseCase(t, "", nil, nil, nil)
		if err := os.MkdirAll(uc.config.ReportsDir, 0o755); err != nil {
			t.Fatal(err)
		}

		a, err := uc.allocateName(rec)
		if err != nil {
			t.Fatalf("allocateName failed: %v", err)
		}
		if got, want := a.PdfPath, filepath.Join(uc.config.ReportsDir, base+".pdf"); got != want {
			t.Errorf("pdf path = %q, want %q", got, want)
		}
		if got, want := a.PreviewPath, filepath.Join(uc.config.PreviewsDir, base+".png"); got != want {
			t.Errorf("preview path = %q, want %q", got, want)
		}
	})
}

func TestAllocateNameConcurrent(t *testing.T) {
	rec := &model.ReportRecord{Date: "2025-03-14 10:30:00", Address: "пр. Мира, 5"}

	uc := newTestUseCase(t, "", nil, nil, nil)
	if err := os.MkdirAll(uc.config.ReportsDir, 0o755); err != nil {
		t.Fatal(err)
	}

	const n = 8
	names := make(chan string, n)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			a, err := uc.allocateName(rec)
			if err != nil {
				errs <- err
				return
			}
			names <- a.Name
		}()
	}

	seen := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		select {
		case err := <-errs:
			t.Fatalf("allocateName failed: %v", err)
		case name := <-names:
			if seen[name] {
				t.Fatalf("name %q allocated twice", name)
			}
			seen[name] = true
		}
	}
}
