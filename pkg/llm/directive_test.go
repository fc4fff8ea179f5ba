package llm

import "testing"

func TestExtractMockupDirective(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantPrompt  string
		wantCleaned string
		wantFound   bool
	}{
		{
			name:        "directive at end",
			text:        "Here is your logo. [GENERATE_MOCKUP: a red fox logo, flat vector]",
			wantPrompt:  "a red fox logo, flat vector",
			wantCleaned: "Here is your logo.",
			wantFound:   true,
		},
		{
			name:        "directive mid-text",
			text:        "Before [GENERATE_MOCKUP: poster] after.",
			wantPrompt:  "poster",
			wantCleaned: "Before after.",
			wantFound:   true,
		},
		{
			name:        "no directive left untouched",
			text:        "Plain  text with  double spaces [not a directive].",
			wantPrompt:  "",
			wantCleaned: "Plain  text with  double spaces [not a directive].",
			wantFound:   false,
		},
		{
			name:        "only first directive honored",
			text:        "a [GENERATE_MOCKUP: one] b [GENERATE_MOCKUP: two] c",
			wantPrompt:  "one",
			wantCleaned: "a b [GENERATE_MOCKUP: two] c",
			wantFound:   true,
		},
		{
			name:        "prompt captured verbatim including punctuation",
			text:        "[GENERATE_MOCKUP: vintage jazz poster, 60s style!]",
			wantPrompt:  "vintage jazz poster, 60s style!",
			wantCleaned: "",
			wantFound:   true,
		},
		{
			name:        "whitespace after keyword not part of prompt",
			text:        "x [GENERATE_MOCKUP:   tight crop]",
			wantPrompt:  "tight crop",
			wantCleaned: "x",
			wantFound:   true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			prompt, cleaned, found := ExtractMockupDirective(tc.text)
			if prompt != tc.wantPrompt {
				t.Errorf("prompt = %q, want %q", prompt, tc.wantPrompt)
			}
			if cleaned != tc.wantCleaned {
				t.Errorf("cleaned = %q, want %q", cleaned, tc.wantCleaned)
			}
			if found != tc.wantFound {
				t.Errorf("found = %v, want %v", found, tc.wantFound)
			}
		})
	}
}
