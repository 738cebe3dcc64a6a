package common

import "testing"

func TestProjectFmt(t *testing.T) {
	if FmtMdnov.Ext() != ".mdnov" || FmtNovx.Ext() != ".novx" {
		t.Error("unexpected extensions")
	}
	if FmtMdnov.Other() != FmtNovx || FmtNovx.Other() != FmtMdnov {
		t.Error("Other() must flip the format")
	}
	if FmtMdnov.String() != "mdnov" || FmtNovx.String() != "novx" {
		t.Error("unexpected format names")
	}
}

func TestProjectFmt_ExtPanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Ext() should panic for unknown format")
		}
	}()
	ProjectFmt(99).Ext()
}

func TestFormatError(t *testing.T) {
	e := &FormatError{Field: "date", Value: "2024-13-40"}
	if e.Error() != `invalid date value "2024-13-40"` {
		t.Errorf("unexpected message: %s", e.Error())
	}
}

func TestUnsupportedVersionError(t *testing.T) {
	newer := &UnsupportedVersionError{Path: "a.novx", Version: "2.0", Newer: true}
	older := &UnsupportedVersionError{Path: "a.novx", Version: "0.7"}
	if newer.Error() == older.Error() {
		t.Error("newer and older versions must report differently")
	}
}
