package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ─── Delimiter Detection Tests ─────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Name,Width,Height\nhero,64,32\ncoin,16,16\n")
	if d := DetectCSVDelimiter(data); d != ',' {
		t.Errorf("expected comma, got %q", d)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Name;Width;Height\nhero;64;32\ncoin;16;16\n")
	if d := DetectCSVDelimiter(data); d != ';' {
		t.Errorf("expected semicolon, got %q", d)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Name\tWidth\tHeight\nhero\t64\t32\n")
	if d := DetectCSVDelimiter(data); d != '\t' {
		t.Errorf("expected tab, got %q", d)
	}
}

func TestDetectCSVDelimiter_Pipe(t *testing.T) {
	data := []byte("Name|Width|Height\nhero|64|32\n")
	if d := DetectCSVDelimiter(data); d != '|' {
		t.Errorf("expected pipe, got %q", d)
	}
}

// ─── Column Detection Tests ────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, ok := DetectColumns([]string{"Name", "Width", "Height", "Path"})
	if !ok {
		t.Fatal("expected header to be detected")
	}
	if mapping.Name != 0 || mapping.Width != 1 || mapping.Height != 2 || mapping.Path != 3 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_AliasesAndOrder(t *testing.T) {
	mapping, ok := DetectColumns([]string{" FILE ", "h", "w", "Sprite"})
	if !ok {
		t.Fatal("expected header to be detected")
	}
	if mapping.Path != 0 || mapping.Height != 1 || mapping.Width != 2 || mapping.Name != 3 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, ok := DetectColumns([]string{"hero", "64", "32"})
	if ok {
		t.Error("numeric row should not be a header")
	}
	if mapping.Name != 0 || mapping.Width != 1 || mapping.Height != 2 || mapping.Path != 3 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Name,Width,Height,Path\nhero,64,32,art/hero.png\ncoin,16,16,art/coin.png\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if !result.OK() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	rects := result.Catalog.Rects()
	if len(rects) != 2 {
		t.Fatalf("expected 2 sprites, got %d", len(rects))
	}
	if rects[0].Name != "hero" || rects[0].Width != 64 || rects[0].Height != 32 {
		t.Errorf("unexpected first sprite %+v", rects[0])
	}
	if rects[0].Payload.Path != "art/hero.png" {
		t.Errorf("expected path art/hero.png, got %q", rects[0].Payload.Path)
	}
	if rects[1].Name != "coin" {
		t.Errorf("expected coin second, got %s", rects[1].Name)
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	data := "hero,64,32\ncoin,16,16\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if result.Catalog.Len() != 2 {
		t.Fatalf("expected 2 sprites, got %d (errors: %v)", result.Catalog.Len(), result.Errors)
	}
	if result.Catalog.Rects()[0].Payload.Path != "" {
		t.Error("path should be empty when the column is absent")
	}
}

func TestImportCSVFromReader_UnknownHeaderSkipped(t *testing.T) {
	data := "Sprite Key,Breite,Hoehe\nhero,64,32\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if result.Catalog.Len() != 1 {
		t.Fatalf("expected 1 sprite, got %d (errors: %v)", result.Catalog.Len(), result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a warning about the skipped header")
	}
}

func TestImportCSVFromReader_PixelSuffix(t *testing.T) {
	data := "hero,64px,32 px\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if !result.OK() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	r := result.Catalog.Rects()[0]
	if r.Width != 64 || r.Height != 32 {
		t.Errorf("expected 64x32, got %gx%g", r.Width, r.Height)
	}
}

func TestImportCSVFromReader_DuplicateName(t *testing.T) {
	data := "hero,64,32\ncoin,16,16\nhero,10,10\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if result.Catalog.Len() != 2 {
		t.Errorf("expected 2 sprites, got %d", result.Catalog.Len())
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Line 3") {
		t.Errorf("expected one duplicate error on line 3, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_InvalidValues(t *testing.T) {
	data := "e,12,12\na,abc,10\nb,10,\nc,-5,10\nd,10,0\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if result.Catalog.Len() != 1 {
		t.Errorf("expected 1 valid sprite, got %d", result.Catalog.Len())
	}
	if len(result.Errors) != 4 {
		t.Errorf("expected 4 errors, got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestImportCSVFromReader_NonFiniteValues(t *testing.T) {
	data := "Name,Width,Height\nok,8,8\na,NaN,10\nb,10,Inf\nc,-inf,10\nd,+Infinitypx,4\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if result.Catalog.Len() != 1 {
		t.Fatalf("expected 1 valid sprite, got %d", result.Catalog.Len())
	}
	want := []string{
		"Line 3: Invalid width 'NaN'",
		"Line 4: Invalid height 'Inf'",
		"Line 5: Invalid width '-inf'",
		"Line 6: Invalid width '+Infinitypx'",
	}
	if strings.Join(result.Errors, "\n") != strings.Join(want, "\n") {
		t.Errorf("got errors %v, want %v", result.Errors, want)
	}
}

func TestParseDimension(t *testing.T) {
	for _, s := range []string{"64", " 64px ", "12.5PX"} {
		if _, err := parseDimension(s); err != nil {
			t.Errorf("parseDimension(%q) returned error: %v", s, err)
		}
	}
	for _, s := range []string{"", "abc", "NaN", "inf", "-Inf", "infinity px"} {
		if _, err := parseDimension(s); err == nil {
			t.Errorf("parseDimension(%q) should fail", s)
		}
	}
}

func TestImportCSVFromReader_EmptyName(t *testing.T) {
	data := ",20,20\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if result.Catalog.Len() != 1 {
		t.Fatalf("expected 1 sprite, got %d", result.Catalog.Len())
	}
	if result.Catalog.Rects()[0].Name != "sprite 1" {
		t.Errorf("expected generated name 'sprite 1', got %q", result.Catalog.Rects()[0].Name)
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected 1 warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_EmptyRows(t *testing.T) {
	data := "hero,64,32\n,,\n\ncoin,16,16\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if result.Catalog.Len() != 2 {
		t.Errorf("expected 2 sprites, got %d (errors: %v)", result.Catalog.Len(), result.Errors)
	}
}

func TestImportCSVFromReader_MissingRequiredColumn(t *testing.T) {
	data := "Name,Width,Path\nhero,64,hero.png\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	if result.OK() {
		t.Fatal("expected an error for missing Height column")
	}
	if !strings.Contains(result.Errors[0], "Height") {
		t.Errorf("error should name the missing column, got %s", result.Errors[0])
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')
	if result.OK() {
		t.Error("expected error for empty input")
	}
}

func TestImportCSV_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sprites.csv")
	if err := os.WriteFile(path, []byte("Name;Width;Height\nhero;64;32\n"), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)
	if !result.OK() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Catalog.Len() != 1 {
		t.Errorf("expected 1 sprite, got %d", result.Catalog.Len())
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "semicolon") {
		t.Errorf("expected semicolon warning, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "missing.csv"))
	if result.OK() {
		t.Error("expected error for missing file")
	}
}

func TestImport_DispatchByExtension(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "a.csv")
	tomlPath := filepath.Join(dir, "a.toml")
	if err := os.WriteFile(csvPath, []byte("hero,64,32\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(tomlPath, []byte("[[sprite]]\nname = \"hero\"\nwidth = 64\nheight = 32\n"), 0644); err != nil {
		t.Fatal(err)
	}

	for _, p := range []string{csvPath, tomlPath} {
		result := Import(p)
		if !result.OK() || result.Catalog.Len() != 1 {
			t.Errorf("%s: expected 1 sprite, got %d (errors: %v)", p, result.Catalog.Len(), result.Errors)
		}
	}

	result := Import(filepath.Join(dir, "a.png"))
	if result.OK() {
		t.Error("expected error for unsupported extension")
	}
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sprites.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Name", "Width", "Height", "Path"},
		{"hero", 64, 32, "art/hero.png"},
		{"coin", 16, 16, "art/coin.png"},
	})

	result := ImportExcel(path)
	if !result.OK() {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	rects := result.Catalog.Rects()
	if len(rects) != 2 {
		t.Fatalf("expected 2 sprites, got %d", len(rects))
	}
	if rects[0].Name != "hero" || rects[0].Width != 64 {
		t.Errorf("unexpected first sprite %+v", rects[0])
	}
	if rects[1].Payload.Path != "art/coin.png" {
		t.Errorf("expected art/coin.png, got %q", rects[1].Payload.Path)
	}
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"hero", 64, 32},
		{"coin", 16, 16},
	})

	result := Import(path)
	if result.Catalog.Len() != 2 {
		t.Fatalf("expected 2 sprites, got %d (errors: %v)", result.Catalog.Len(), result.Errors)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	if result.OK() {
		t.Error("expected error for missing file")
	}
}
