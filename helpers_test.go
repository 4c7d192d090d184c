package main

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanLatex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "\\begin{document}\n\\end{document}", "\\begin{document}\n\\end{document}"},
		{"latex fence", "```latex\n\\section{Skills}\nGo\n```", "\\section{Skills}\nGo"},
		{"tex fence", "```tex\n\\item a\n```\n", "\\item a"},
		{"bare fence", "```\n\\item a\n```", "\\item a"},
		{"crlf fence", "```latex\r\n\\item a\r\n```", "\\item a"},
		{"surrounding space", "  \n\\item a\n\n", "\\item a"},
		{"inner blank lines kept", "```latex\n\\item a\n\n\\item b\n```", "\\item a\n\n\\item b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanLatex(tt.input))
		})
	}
}

func TestExtractResumeText(t *testing.T) {
	for _, mime := range []string{mimePlain, mimeTeX, mimeXTeX} {
		text, err := ExtractResumeText(mime, []byte("\\name{Ada}\n"))
		require.NoError(t, err, mime)
		assert.Equal(t, "\\name{Ada}\n", text)
	}

	_, err := ExtractResumeText("image/png", []byte{0x89})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")

	_, err = ExtractResumeText(mimePDF, []byte("not a pdf"))
	assert.Error(t, err)

	_, err = ExtractResumeText(mimeDocx, []byte("not a zip"))
	assert.Error(t, err)
}

func TestTailoredObjectKey(t *testing.T) {
	sessionID := uuid.MustParse("7b0c1d2e-0000-4000-8000-000000000001")
	resumeID := uuid.MustParse("7b0c1d2e-0000-4000-8000-000000000002")

	assert.Equal(t,
		"tailored/7b0c1d2e-0000-4000-8000-000000000001/7b0c1d2e-0000-4000-8000-000000000002.tex",
		tailoredObjectKey(sessionID, resumeID))
}
