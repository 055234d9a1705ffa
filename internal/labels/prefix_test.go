package labels

import "testing"

func TestRepairPrefixes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"missing dot", "39 CLT", "3.9 CLT"},
		{"space", "3 9 CLT", "3.9 CLT"},
		{"hyphen", "3-9 CLT", "3.9 CLT"},
		{"underscore", "3_9", "3.9"},
		{"colon", "3:9", "3.9"},
		{"comma", "3,9", "3.9"},
		{"slash", "3/9", "3.9"},
		{"3.1 family", "31 E180", "3.1 E180"},
		{"4.7 family", "4 7 CLA MATT", "4.7 CLA MATT"},
		{"5.7 family", "5-7 BRZ", "5.7 BRZ"},
		{"canonical untouched", "3.9 CLT Q180", "3.9 CLT Q180"},
		{"tag digits untouched", "TAG 339000", "TAG 339000"},
		{"embedded run untouched", "1390 4711", "1390 4711"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RepairPrefixes(tt.input)
			if got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRepairPrefixesIdempotent(t *testing.T) {
	inputs := []string{
		"39 CLT Q18O",
		"3 9 9",
		"3 39",
		"57 39",
		"5 739",
		"4 5 7",
		"3 57",
		"TAG 339000 3-1",
		"3.9 3.1 4.7 5.7",
	}

	for _, in := range inputs {
		once := RepairPrefixes(in)
		twice := RepairPrefixes(once)
		if once != twice {
			t.Errorf("RepairPrefixes(%q): once=%q, twice=%q", in, once, twice)
		}
	}
}
