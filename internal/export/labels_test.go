package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/SpritePack/internal/model"
)

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, buildTestResult()); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportLabels_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	if err := ExportLabels(path, model.NewResult[model.Asset]()); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}

func TestExportLabels_MultiplePages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many_labels.pdf")

	if err := ExportLabels(path, buildGridResult(labelsPerPage+5)); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
}

func TestCollectLabelInfos(t *testing.T) {
	labels := CollectLabelInfos(buildTestResult())

	if len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(labels))
	}

	names := []string{labels[0].Name, labels[1].Name, labels[2].Name}
	if names[0] != "wide" || names[1] != "tall" || names[2] != "small" {
		t.Errorf("labels should follow placement order, got %v", names)
	}
	if labels[1].Position != [2]float64{1, 21} || labels[1].Dimensions != [2]float64{20, 50} {
		t.Errorf("unexpected record for tall: %+v", labels[1].CoordinateRecord)
	}
	if labels[0].Path != "art/wide.png" {
		t.Errorf("expected path art/wide.png, got %q", labels[0].Path)
	}
}

func TestLabelInfo_JSONShape(t *testing.T) {
	info := CollectLabelInfos(buildTestResult())[2]

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	want := `{"name":"small","position":[51,1],"dimensions":[10,10]}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestCollectLabelInfos_BrokenOrder(t *testing.T) {
	result := buildTestResult()
	result.Order = []string{"wide", "ghost", "wide"}

	labels := CollectLabelInfos(result)
	if len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(labels))
	}
	names := []string{labels[0].Name, labels[1].Name, labels[2].Name}
	if names[0] != "small" || names[1] != "tall" || names[2] != "wide" {
		t.Errorf("labels should fall back to name order, got %v", names)
	}
}

func TestTruncate_KeepsRunesWhole(t *testing.T) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 9)

	for _, s := range []string{
		strings.Repeat("é", 80),
		"drache_" + strings.Repeat("ü", 41) + "_sprite",
		strings.Repeat("精灵", 30),
	} {
		got := truncate(pdf, s, 20)
		if !utf8.ValidString(got) {
			t.Errorf("truncate(%q) produced invalid UTF-8 %q", s, got)
		}
		if !strings.HasSuffix(got, "...") || len(got) >= len(s) {
			t.Errorf("truncate(%q) = %q, expected a shortened name with an ellipsis", s, got)
		}
	}
}

func TestExportLabels_MultiByteNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "utf8.pdf")
	r := model.NewResult[model.Asset]()
	place(&r, strings.Repeat("é", 60), 0, 0, 10, 10, "art/"+strings.Repeat("ß", 50)+".png")

	if err := ExportLabels(path, r); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
}
