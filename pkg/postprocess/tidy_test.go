package postprocess_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/goqbc/pkg/postprocess"
)

func TestTidy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		indent int
		width  int
		want   string
	}{
		{
			name:   "block tags on own lines",
			input:  "<section id=\"intro\"><title>Intro</title><para>Hello world.</para></section>",
			indent: 2,
			width:  80,
			want: "<section id=\"intro\">\n" +
				"  <title>\n" +
				"    Intro\n" +
				"  </title>\n" +
				"  <para>\n" +
				"    Hello world.\n" +
				"  </para>\n" +
				"</section>\n",
		},
		{
			name:   "inline tags stay in flow",
			input:  "<para>an <emphasis>important</emphasis> point</para>",
			indent: 2,
			width:  80,
			want: "<para>\n" +
				"  an <emphasis>important</emphasis> point\n" +
				"</para>\n",
		},
		{
			name:   "glued inline markup never splits from its word",
			input:  "<para>see <ulink url=\"https://example.org\">this</ulink>.</para>",
			indent: 2,
			width:  80,
			want: "<para>\n" +
				"  see <ulink url=\"https://example.org\">this</ulink>.\n" +
				"</para>\n",
		},
		{
			name:   "long text wraps at width",
			input:  "<para>one two three four five six</para>",
			indent: 1,
			width:  12,
			want: "<para>\n" +
				" one two\n" +
				" three four\n" +
				" five six\n" +
				"</para>\n",
		},
		{
			name:   "verbatim content is untouched",
			input:  "<para>before</para><programlisting>int  main()\n{\n    return 0;\n}</programlisting>",
			indent: 2,
			width:  80,
			want: "<para>\n" +
				"  before\n" +
				"</para>\n" +
				"<programlisting>int  main()\n{\n    return 0;\n}</programlisting>\n",
		},
		{
			name:   "declaration on its own line",
			input:  "<?xml version=\"1.0\"?><para>x</para>",
			indent: 2,
			width:  80,
			want: "<?xml version=\"1.0\"?>\n" +
				"<para>\n" +
				"  x\n" +
				"</para>\n",
		},
		{
			name:   "self closing block tag",
			input:  "<section id=\"a\"><xi:include href=\"ref.xml\" /></section>",
			indent: 2,
			width:  80,
			want: "<section id=\"a\">\n" +
				"  <xi:include href=\"ref.xml\" />\n" +
				"</section>\n",
		},
		{
			name:   "quoted angle bracket inside attribute",
			input:  "<para><ulink url=\"a>b\">x</ulink></para>",
			indent: 2,
			width:  80,
			want: "<para>\n" +
				"  <ulink url=\"a>b\">x</ulink>\n" +
				"</para>\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got, err := postprocess.Tidy([]byte(testCase.input), testCase.indent, testCase.width)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, string(got))
		})
	}
}

func TestTidyIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"<section id=\"s\"><title>T</title><para>a b c <emphasis>d</emphasis> e</para></section>",
		"<para>one two three four five six seven eight nine ten eleven twelve thirteen</para>",
		"<programlisting>  raw\n\tstuff  </programlisting>",
		"<article id=\"x\"><para>nested <code>inline()</code> run</para></article>",
	}

	for _, input := range inputs {
		once, err := postprocess.Tidy([]byte(input), 2, 40)
		require.NoError(t, err)

		twice, err := postprocess.Tidy(once, 2, 40)
		require.NoError(t, err)

		assert.Equal(t, string(once), string(twice), "input %q", input)
	}
}

func TestTidyPreservesContent(t *testing.T) {
	t.Parallel()

	input := "<section id=\"s\"><title>Some Title</title>" +
		"<para>alpha beta <emphasis role=\"bold\">gamma</emphasis> delta epsilon zeta</para>" +
		"<programlisting>code  body</programlisting></section>"

	got, err := postprocess.Tidy([]byte(input), 2, 20)
	require.NoError(t, err)

	strip := func(s string) string {
		return strings.Join(strings.Fields(s), " ")
	}
	assert.Equal(t, strip(input), strip(string(got)))
}

func TestTidyMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "unterminated tag", input: "<para"},
		{name: "bare angle bracket", input: "a < b"},
		{name: "mismatched close", input: "<para>x</section>"},
		{name: "unclosed element", input: "<para>x"},
		{name: "unterminated declaration", input: "<?xml version=\"1.0\""},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := postprocess.Tidy([]byte(testCase.input), 2, 80)
			assert.ErrorIs(t, err, postprocess.ErrMalformed)
		})
	}
}
