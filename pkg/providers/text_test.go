package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"blank", "  \n ", ""},
		{"plain", "A desert planet.", "A desert planet."},
		{"tags", "<p>Paul <b>Atreides</b></p><p>Arrakis</p>", "Paul Atreides\nArrakis"},
		{"line breaks", "one<br>two<BR/>three", "one\ntwo\nthree"},
		{"entities", "Tom &amp; Jerry &mdash; &quot;classic&quot;&nbsp;show", "Tom & Jerry — \"classic\" show"},
		{"collapses spaces", "too    many   spaces", "too many spaces"},
		{"keeps one paragraph break", "first\r\n\r\n\r\nsecond", "first\n\nsecond"},
		{"attribution", "Bounty hunters in space.\n\n[Written by MAL Rewrite]", "Bounty hunters in space."},
		{"source attribution", "A story. (Source: ANN)", "A story."},
		{"attribution only at end", "[Written by MAL Rewrite] is the credit line. Fine.", "[Written by MAL Rewrite] is the credit line. Fine."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CleanText(tt.input))
		})
	}
}

func TestOptionalText(t *testing.T) {
	t.Parallel()

	assert.Nil(t, OptionalText("<p> </p>"))
	assert.Equal(t, "x", *OptionalText("<i>x</i>"))
}

func TestCleanText_Headings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Synopsis\nA hunter's tale.", CleanText("<h2>Synopsis</h2>A hunter&#39;s tale."))
}
