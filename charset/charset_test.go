package charset

import (
	"bytes"
	"testing"
)

func TestLookup(t *testing.T) {
	for _, name := range []string{"", "UTF-8", "utf8", "GB18030", "gbk", "windows-1256", "ISO-8859-6", "Big5"} {
		if _, err := Lookup(name); err != nil {
			t.Errorf("Lookup(%q) error = %v", name, err)
		}
	}
	if _, err := Lookup("klingon-42"); err == nil {
		t.Error("expected error for unknown charset")
	}
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		charset string
		text    string
	}{
		{"utf8 chinese", "UTF-8", "这 是 测试"},
		{"gb18030 chinese", "GB18030", "这 是 测试"},
		{"cp1256 arabic", "windows-1256", "هذا اختبار"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := Encode(tt.charset, tt.text)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			got, err := Decode(tt.charset, raw)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if got != tt.text {
				t.Errorf("round trip = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestEncode_GB18030Bytes(t *testing.T) {
	// 测 is 0xB2 0xE2 in GB2312-compatible code pages.
	raw, err := Encode("GB18030", "测")
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !bytes.Equal(raw, []byte{0xB2, 0xE2}) {
		t.Errorf("Encode() = % x, want b2 e2", raw)
	}
}

func TestEncode_Unrepresentable(t *testing.T) {
	if _, err := Encode("windows-1256", "测试"); err == nil {
		t.Error("expected error encoding CJK into an Arabic code page")
	}
}
