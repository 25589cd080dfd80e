package sanitize

import (
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		given string
		want  string
	}{
		{name: "plain text untouched", given: "¿Qué es una mitocondria?", want: "¿Qué es una mitocondria?"},
		{name: "single reference", given: "El sol es una estrella[^3^].", want: "El sol es una estrella."},
		{name: "repeated references", given: "Dato[^1^][^2^][^10^] final", want: "Dato final"},
		{name: "reference mid sentence", given: "a [^3^] b", want: "a  b"},
		{name: "non numeric marker kept", given: "a [^x^] b", want: "a [^x^] b"},
		{name: "newlines become spaces", given: "uno\ndos\r\ntres", want: "uno dos  tres"},
		{name: "backticks removed", given: "usa `go run`", want: "usa go run"},
		{name: "double quotes removed", given: `He said "hi"`, want: "He said hi"},
		{name: "asterisks removed", given: "**negrita** y *cursiva*", want: "negrita y cursiva"},
		{
			name:  "everything at once",
			given: "He said \"hi\"\nand *smiled*[^1^]",
			want:  "He said hi and smiled",
		},
		{name: "single quotes and braces untouched", given: "it's {ok}", want: "it's {ok}"},
		{name: "empty", given: "", want: ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			testboil.FailTestIfDiff(t, Text(tc.given), tc.want)
		})
	}
}
