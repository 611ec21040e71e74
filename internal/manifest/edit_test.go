package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/blockbind/internal/testutil"
)

const libSources = `list(APPEND howto_sources
    square_ff_impl.cc
)
`

const grcInstall = `install(FILES
    howto_square_ff.block.yml DESTINATION share/gnuradio/grc/blocks
)
`

var installAnchors = Anchors{Suffix: "DESTINATION[^()]+"}

func TestAppendValue_AfterLastEntry(t *testing.T) {
	b := New("CMakeLists.txt", libSources)

	n, err := b.AppendValue("list", "square2_ff_impl.cc", Anchors{Prefix: "APPEND howto_sources"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, `list(APPEND howto_sources
    square_ff_impl.cc
    square2_ff_impl.cc
)
`, b.Text())
	assert.True(t, b.Modified())
}

func TestAppendValue_BeforeSuffixAnchor(t *testing.T) {
	b := New("grc/CMakeLists.txt", grcInstall)

	n, err := b.AppendValue("install", "howto_square2_ff.block.yml", installAnchors)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	testutil.AssertGolden(t, "append_install", []byte(b.Text()))
}

func TestAppendValue_NoMatch(t *testing.T) {
	b := New("CMakeLists.txt", libSources)

	n, err := b.AppendValue("list", "x.cc", Anchors{Prefix: "APPEND other_sources"})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, NoMatch, Classify(n))
	assert.False(t, b.Modified())
}

func TestAppendValue_OnlyFirstStatement(t *testing.T) {
	text := libSources + "\n" + libSources
	b := New("CMakeLists.txt", text)

	n, err := b.AppendValue("list", "new_impl.cc", Anchors{Prefix: "APPEND howto_sources"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, `list(APPEND howto_sources
    square_ff_impl.cc
    new_impl.cc
)

`+libSources, b.Text())
}

func TestAppendValue_InvalidAnchor(t *testing.T) {
	b := New("CMakeLists.txt", libSources)

	_, err := b.AppendValue("list", "x.cc", Anchors{Prefix: "APPEND ("})
	assert.Error(t, err)
	assert.False(t, b.Modified())
}

func TestAppendRemove_RoundTrip(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		stmt    string
		anchors Anchors
	}{
		{"multi-line list", libSources, "list", Anchors{Prefix: "APPEND howto_sources"}},
		{"single-line list", "list(APPEND srcs a.cc)\n", "list", Anchors{Prefix: "APPEND srcs"}},
		{"empty list", "list(APPEND srcs)\n", "list", Anchors{Prefix: "APPEND srcs"}},
		{"empty statement", "set(x)\n", "set", Anchors{}},
		{"install with destination", grcInstall, "install", installAnchors},
		{"indented statement", "if(X)\n  set(srcs\n      a.cc\n  )\nendif()\n", "set", Anchors{Prefix: "srcs"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := New("CMakeLists.txt", tc.text)

			n, err := b.AppendValue(tc.stmt, "added_file.cc", tc.anchors)
			require.NoError(t, err)
			require.Equal(t, 1, n)
			require.Contains(t, b.Text(), "added_file.cc")

			n, err = b.RemoveValue(tc.stmt, "added_file.cc", tc.anchors)
			require.NoError(t, err)
			assert.Equal(t, 1, n)
			assert.Equal(t, tc.text, b.Text())
			assert.False(t, b.Modified())

			n, err = b.RemoveValue(tc.stmt, "added_file.cc", tc.anchors)
			require.NoError(t, err)
			assert.Equal(t, 0, n)
			assert.Equal(t, tc.text, b.Text())
		})
	}
}

func TestRemoveValue_FirstEntry(t *testing.T) {
	b := New("CMakeLists.txt", "set(srcs a.cc b.cc)\n")

	n, err := b.RemoveValue("set", "srcs", Anchors{})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "set(a.cc b.cc)\n", b.Text())
}

func TestRemoveValue_SoleEntry(t *testing.T) {
	b := New("CMakeLists.txt", "set(a.cc)\n")

	n, err := b.RemoveValue("set", "a.cc", Anchors{})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "set()\n", b.Text())
}

func TestRemoveValue_WholeWordOnly(t *testing.T) {
	b := New("CMakeLists.txt", "set(srcs a.cc2)\n")

	n, err := b.RemoveValue("set", "a.cc", Anchors{})
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.False(t, b.Modified())
}

func TestDeleteEntry(t *testing.T) {
	text := `GR_ADD_TEST(qa_square_ff ${PYTHON_EXECUTABLE} ${CMAKE_CURRENT_SOURCE_DIR}/qa_square_ff.py)
GR_ADD_TEST(qa_other ${PYTHON_EXECUTABLE} ${CMAKE_CURRENT_SOURCE_DIR}/qa_other.py)
`
	b := New("python/CMakeLists.txt", text)

	n, err := b.DeleteEntry("GR_ADD_TEST", `qa_square_ff`)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "GR_ADD_TEST(qa_other ${PYTHON_EXECUTABLE} ${CMAKE_CURRENT_SOURCE_DIR}/qa_other.py)\n", b.Text())

	n, err = b.DeleteEntry("GR_ADD_TEST", `qa_square_ff`)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestDisableFile_StartsLine(t *testing.T) {
	b := New("lib/CMakeLists.txt", `list(APPEND howto_sources
    square_ff_impl.cc
    other_impl.cc
)
`)

	n := b.DisableFile("square_ff_impl.cc")
	assert.Equal(t, 1, n)
	assert.Equal(t, `list(APPEND howto_sources
    #square_ff_impl.cc
    other_impl.cc
)
`, b.Text())
	assert.Empty(t, b.Warnings())
}

func TestDisableFile_Idempotent(t *testing.T) {
	b := New("lib/CMakeLists.txt", libSources)

	require.Equal(t, 1, b.DisableFile("square_ff_impl.cc"))
	once := b.Text()

	assert.Equal(t, 0, b.DisableFile("square_ff_impl.cc"))
	assert.Equal(t, once, b.Text())

	warnings := b.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, NoMatch, warnings[0].Outcome())
}

func TestDisableFile_SiblingOnSameLine(t *testing.T) {
	b := New("CMakeLists.txt", "set(srcs a.cc b.cc)\n")

	n := b.DisableFile("b.cc")
	assert.Equal(t, 1, n)
	assert.Equal(t, "set(srcs a.cc \n    #b.cc\n    )\n", b.Text())
}

func TestDisableFile_LongerNameStartsLine(t *testing.T) {
	b := New("CMakeLists.txt", "set(srcs\n    a.cc_old b.cc a.cc\n)\n")

	n := b.DisableFile("a.cc")
	assert.Equal(t, 1, n)
	assert.Equal(t, "set(srcs\n    a.cc_old b.cc \n    #a.cc\n    )\n", b.Text())
}

func TestDisableFile_SeveralOccurrences(t *testing.T) {
	b := New("CMakeLists.txt", `set(srcs
    a.cc
)
set(more
    a.cc
)
`)

	n := b.DisableFile("a.cc")
	assert.Equal(t, 2, n)
	assert.Equal(t, `set(srcs
    #a.cc
    )
set(more
    a.cc
)
`, b.Text())

	warnings := b.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, Ambiguous, warnings[0].Outcome())
	assert.Equal(t, 2, warnings[0].Count)
}

func TestCommentOutLines(t *testing.T) {
	b := New("python/CMakeLists.txt", `GR_ADD_TEST(qa_square_ff ${PYTHON_EXECUTABLE} qa_square_ff.py)
#GR_ADD_TEST(qa_square_ff_old ${PYTHON_EXECUTABLE} qa_square_ff_old.py)
GR_ADD_TEST(qa_other ${PYTHON_EXECUTABLE} qa_other.py)
`)

	n, err := b.CommentOutLines(`qa_square_ff`, "#")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, `#GR_ADD_TEST(qa_square_ff ${PYTHON_EXECUTABLE} qa_square_ff.py)
#GR_ADD_TEST(qa_square_ff_old ${PYTHON_EXECUTABLE} qa_square_ff_old.py)
GR_ADD_TEST(qa_other ${PYTHON_EXECUTABLE} qa_other.py)
`, b.Text())
}

func TestRemoveDoubleNewlines(t *testing.T) {
	b := New("CMakeLists.txt", "a\n\n\n\nb\n\n\nc\n\nd")

	assert.Equal(t, 2, b.RemoveDoubleNewlines())
	assert.Equal(t, "a\n\nb\n\nc\n\nd", b.Text())
	assert.Equal(t, 0, b.RemoveDoubleNewlines())
}

func TestDeleteLines(t *testing.T) {
	b := New("python/__init__.py", "from .square_ff import square_ff\nimport other\nfrom .square2_ff import *\n")

	n, err := b.DeleteLines(`^\s*from\s+\.?square_ff\s+import`)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, "import other\nfrom .square2_ff import *\n", b.Text())
}
