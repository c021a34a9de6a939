package extract

import (
	"errors"
	"strings"
	"testing"
)

// devicePage builds a status page in the centered-div layout with the given
// rows. Each row is rendered as name, separator and value cells.
func devicePage(rows ...[3]string) string {
	var sb strings.Builder
	sb.WriteString(`<html><head><title>Device Information</title></head><body>`)
	sb.WriteString(`<table><tr><td><div align="center"><table>`)
	for _, r := range rows {
		sb.WriteString("<tr><td>" + r[0] + "</td><td>" + r[1] + "</td><td>" + r[2] + "</td></tr>\n")
	}
	sb.WriteString(`</table></div></td></tr></table></body></html>`)
	return sb.String()
}

// TestParseCenteredDiv tests the default layout against the stock status page shape.
func TestParseCenteredDiv(t *testing.T) {
	t.Parallel()

	t.Run("extracts MAC and serial", func(t *testing.T) {
		t.Parallel()

		page := devicePage(
			[3]string{"Host Name", "", "SEP00AABBCCDD01"},
			[3]string{" MAC Address ", ":", " AA:BB:CC:DD:EE:01 "},
			[3]string{"Serial Number", ":", "SN001"},
			[3]string{"Model Number", ":", "CP-7945G"},
		)

		f, err := Parse([]byte(page), "text/html", CenteredDivLayout{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.MAC != "AA:BB:CC:DD:EE:01" {
			t.Errorf("MAC = %q, expected AA:BB:CC:DD:EE:01", f.MAC)
		}
		if f.Serial != "SN001" {
			t.Errorf("Serial = %q, expected SN001", f.Serial)
		}
	})

	t.Run("nil layout defaults to centered div", func(t *testing.T) {
		t.Parallel()

		page := devicePage([3]string{"MAC", "", "AA"}, [3]string{"Serial", "", "S"})
		f, err := Parse([]byte(page), "", nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.MAC != "AA" || f.Serial != "S" {
			t.Errorf("got %+v", f)
		}
	})

	t.Run("cell text includes nested markup", func(t *testing.T) {
		t.Parallel()

		page := devicePage(
			[3]string{"<b>MAC Address</b>", "", "<b>00:11:22:33:44:55</b>"},
			[3]string{"<b>Serial Number</b>", "", "<span>FCH1234</span><span>ABCD</span>"},
		)

		f, err := Parse([]byte(page), "text/html; charset=utf-8", CenteredDivLayout{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.MAC != "00:11:22:33:44:55" {
			t.Errorf("MAC = %q", f.MAC)
		}
		if f.Serial != "FCH1234ABCD" {
			t.Errorf("Serial = %q, expected FCH1234ABCD", f.Serial)
		}
	})

	t.Run("matching is case sensitive", func(t *testing.T) {
		t.Parallel()

		page := devicePage(
			[3]string{"MAC Address", "", "AA"},
			[3]string{"serial number", "", "lowercase"},
		)

		f, err := Parse([]byte(page), "", CenteredDivLayout{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Serial != "" {
			t.Errorf("Serial = %q, expected lowercase label to be ignored", f.Serial)
		}
	})

	t.Run("later rows overwrite earlier ones", func(t *testing.T) {
		t.Parallel()

		page := devicePage(
			[3]string{"MAC Address", "", "FIRST"},
			[3]string{"MAC Address (alt)", "", "SECOND"},
		)

		f, err := Parse([]byte(page), "", CenteredDivLayout{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.MAC != "SECOND" {
			t.Errorf("MAC = %q, expected SECOND", f.MAC)
		}
	})

	t.Run("rows without three cells are skipped", func(t *testing.T) {
		t.Parallel()

		page := `<html><body><table><tr><td><div align="center"><table>
			<tr><td colspan="3">Device Information</td></tr>
			<tr><td>MAC Address</td><td>AA:BB</td></tr>
			<tr><td>MAC Address</td><td></td><td>CC:DD</td></tr>
			<tr><td>Serial Number</td><td></td><td>SN9</td><td>extra</td></tr>
		</table></div></td></tr></table></body></html>`

		f, err := Parse([]byte(page), "", CenteredDivLayout{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.MAC != "CC:DD" {
			t.Errorf("MAC = %q, expected CC:DD", f.MAC)
		}
		if f.Serial != "" {
			t.Errorf("Serial = %q, expected four-cell row to be skipped", f.Serial)
		}
	})

	t.Run("missing serial is not an error", func(t *testing.T) {
		t.Parallel()

		page := devicePage([3]string{"MAC Address", "", "AA"})
		f, err := Parse([]byte(page), "", CenteredDivLayout{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Serial != "" {
			t.Errorf("Serial = %q, expected empty", f.Serial)
		}
	})
}

// TestParseFailures tests the classified errors for mismatched pages.
func TestParseFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		page     string
		layout   Layout
		expected error
	}{
		{
			name:     "empty body",
			page:     "",
			layout:   CenteredDivLayout{},
			expected: ErrTableNotFound,
		},
		{
			name:     "login page without tables",
			page:     `<html><body><form><input name="user"></form></body></html>`,
			layout:   CenteredDivLayout{},
			expected: ErrTableNotFound,
		},
		{
			name:     "table without centered div",
			page:     `<html><body><table><tr><td>MAC</td><td></td><td>AA</td></tr></table></body></html>`,
			layout:   CenteredDivLayout{},
			expected: ErrTableNotFound,
		},
		{
			name:     "centered div without rows",
			page:     `<html><body><table><tr><td><div align="center">nothing here</div></td></tr></table></body></html>`,
			layout:   CenteredDivLayout{},
			expected: ErrTableNotFound,
		},
		{
			name:     "rows without MAC label",
			page:     devicePage([3]string{"Serial Number", "", "SN1"}),
			layout:   CenteredDivLayout{},
			expected: ErrMACNotFound,
		},
		{
			name:     "MAC label with empty value",
			page:     devicePage([3]string{"MAC Address", "", "   "}),
			layout:   CenteredDivLayout{},
			expected: ErrMACNotFound,
		},
		{
			name:     "table index out of range",
			page:     devicePage([3]string{"MAC Address", "", "AA"}),
			layout:   TableIndexLayout{Index: 5},
			expected: ErrTableNotFound,
		},
		{
			name:     "auto without tables",
			page:     `<html><body><p>hello</p></body></html>`,
			layout:   AutoLayout{},
			expected: ErrTableNotFound,
		},
		{
			name:     "auto without MAC anywhere",
			page:     `<html><body><table><tr><td>a</td><td>b</td><td>c</td></tr></table></body></html>`,
			layout:   AutoLayout{},
			expected: ErrMACNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.page), "text/html", tt.layout)
			if !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
		})
	}
}

// TestTableIndexLayout tests positional table lookup.
func TestTableIndexLayout(t *testing.T) {
	t.Parallel()

	page := `<html><body>
		<table><tr><td>Navigation</td><td></td><td>Home</td></tr></table>
		<table>
			<tr><td>MAC Address</td><td>:</td><td>11:22:33:44:55:66</td></tr>
			<tr><td>Serial Number</td><td>:</td><td>PUC1</td></tr>
		</table>
	</body></html>`

	f, err := Parse([]byte(page), "", TableIndexLayout{Index: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.MAC != "11:22:33:44:55:66" || f.Serial != "PUC1" {
		t.Errorf("got %+v", f)
	}

	if _, err := Parse([]byte(page), "", TableIndexLayout{Index: 0}); !errors.Is(err, ErrMACNotFound) {
		t.Errorf("expected ErrMACNotFound for the navigation table, got %v", err)
	}
}

// TestAutoLayout tests the fallback search across tables.
func TestAutoLayout(t *testing.T) {
	t.Parallel()

	t.Run("prefers the centered div", func(t *testing.T) {
		t.Parallel()

		page := devicePage([3]string{"MAC Address", "", "CENTER"})
		f, err := Parse([]byte(page), "", AutoLayout{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.MAC != "CENTER" {
			t.Errorf("MAC = %q, expected CENTER", f.MAC)
		}
	})

	t.Run("falls back to the first table with a MAC row", func(t *testing.T) {
		t.Parallel()

		page := `<html><body>
			<table><tr><td>Status</td><td></td><td>Registered</td></tr></table>
			<table><tr><th>MAC Address</th><th></th><th>FALLBACK</th></tr>
			       <tr><td>Serial Number</td><td></td><td>SN2</td></tr></table>
		</body></html>`

		f, err := Parse([]byte(page), "", AutoLayout{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.MAC != "FALLBACK" || f.Serial != "SN2" {
			t.Errorf("got %+v", f)
		}
	})
}

// TestParseCharset tests decoding of non-UTF-8 pages.
func TestParseCharset(t *testing.T) {
	t.Parallel()

	// "Série" encoded in ISO-8859-1 (0xE9 for é).
	page := []byte(devicePage(
		[3]string{"MAC Address", "", "AA"},
		[3]string{"Serial Number", "", "S\xe9rie"},
	))

	f, err := Parse(page, "text/html; charset=iso-8859-1", CenteredDivLayout{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Serial != "Série" {
		t.Errorf("Serial = %q, expected Série", f.Serial)
	}
}

// TestParseLayout tests layout lookup by name.
func TestParseLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		index    int
		expected string
		wantErr  bool
	}{
		{"centered-div", 0, LayoutCenteredDiv, false},
		{"", 0, LayoutCenteredDiv, false},
		{"Table-Index", 2, LayoutTableIndex, false},
		{"auto", 0, LayoutAuto, false},
		{"table-index", -1, "", true},
		{"xpath", 0, "", true},
	}

	for _, tt := range tests {
		layout, err := ParseLayout(tt.name, tt.index)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownLayout) {
				t.Errorf("ParseLayout(%q, %d): expected ErrUnknownLayout, got %v", tt.name, tt.index, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLayout(%q, %d): unexpected error %v", tt.name, tt.index, err)
			continue
		}
		if layout.Name() != tt.expected {
			t.Errorf("ParseLayout(%q).Name() = %q, expected %q", tt.name, layout.Name(), tt.expected)
		}
	}

	layout, _ := ParseLayout(LayoutTableIndex, 3) //nolint:errcheck // checked above
	if tl, ok := layout.(TableIndexLayout); !ok || tl.Index != 3 {
		t.Errorf("expected TableIndexLayout{Index: 3}, got %#v", layout)
	}
}
